package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/PaesslerAG/jsonpath"
	"github.com/google/subcommands"

	"github.com/epeers/fundboard/internal/models"
)

type showCmd struct {
	path string
	data string
}

func (*showCmd) Name() string     { return "show" }
func (*showCmd) Synopsis() string { return "print the dashboard document or part of it" }
func (*showCmd) Usage() string {
	return `fundboard show [-path <jsonpath>] [-data <data.json>]

  Prints the stored dashboard document, or the result of a JSONPath query
  against it, e.g. -path '$.nav.ytd' or -path '$.allocation.strategies[*].name'.
`
}

func (p *showCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.path, "path", "", "JSONPath expression to evaluate against the document.")
	f.StringVar(&p.data, "data", "", "Path to a local data.json. Uses the configured store when empty.")
}

func (p *showCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	doc, err := p.load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	if err := showDocument(os.Stdout, doc, p.path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (p *showCmd) load(ctx context.Context) (models.Document, error) {
	if p.data != "" {
		content, err := os.ReadFile(p.data)
		if err != nil {
			return models.Document{}, err
		}
		return models.ParseDocument(content)
	}

	svc, _, closeStore, err := openService(ctx)
	if err != nil {
		return models.Document{}, err
	}
	defer closeStore()
	return svc.GetDocument(ctx)
}

// showDocument writes doc, or the value selected by path, as indented JSON.
func showDocument(w io.Writer, doc models.Document, path string) error {
	if path == "" {
		return writeDocument(w, doc)
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return err
	}

	selected, err := jsonpath.Get(path, v)
	if err != nil {
		return fmt.Errorf("failed to evaluate %q: %w", path, err)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(selected)
}
