package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/google/subcommands"
	log "github.com/sirupsen/logrus"

	"github.com/epeers/fundboard/internal/ingest"
	"github.com/epeers/fundboard/internal/models"
	"github.com/epeers/fundboard/internal/repository"
	"github.com/epeers/fundboard/internal/services"
)

type ingestCmd struct {
	archive string
	data    string
	out     string
	dryRun  bool
}

func (*ingestCmd) Name() string     { return "ingest" }
func (*ingestCmd) Synopsis() string { return "merge a zip of fund extracts into the dashboard document" }
func (*ingestCmd) Usage() string {
	return `fundboard ingest -archive <zip> [-data <data.json>] [-out <file>] [-dry-run]

  Reads nav.csv, metrics.csv, performance_ratio.csv, asset_class_exposure.csv
  and balance.csv from the archive and merges them into the dashboard
  document. With -data the document is a local file, rewritten in place
  unless -out is given; without it the configured store is used.
  -dry-run prints the merged document instead of saving it.
`
}

func (p *ingestCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&p.archive, "archive", "", "Path to the zip archive of CSV extracts.")
	f.StringVar(&p.data, "data", "", "Path to a local data.json. Uses the configured store when empty.")
	f.StringVar(&p.out, "out", "", "Where to write the merged document (defaults to -data).")
	f.BoolVar(&p.dryRun, "dry-run", false, "Print the merged document to stdout without saving it.")
}

func (p *ingestCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if p.archive == "" {
		fmt.Fprintln(os.Stderr, "-archive is required")
		f.Usage()
		return subcommands.ExitUsageError
	}

	archive, err := os.ReadFile(p.archive)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if p.data != "" {
		err = ingestFile(archive, p.data, p.out, p.dryRun, os.Stdout)
	} else {
		err = p.ingestStore(ctx, archive)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (p *ingestCmd) ingestStore(ctx context.Context, archive []byte) error {
	svc, _, closeStore, err := openService(ctx)
	if err != nil {
		return err
	}
	defer closeStore()

	ctx, wc := services.NewWarningContext(ctx)
	resp, err := svc.IngestArchive(ctx, archive, p.dryRun)
	if err != nil {
		return err
	}
	logWarnings(wc.GetWarnings())

	if p.dryRun {
		return writeDocument(os.Stdout, resp.Document)
	}
	log.Infof("merged %d extracts into %s (archive kept as %s)", len(resp.Extracts), svc.DocumentKey(), resp.ArchiveKey)
	return nil
}

// ingestFile merges an archive into the document at dataPath and writes the
// result to outPath (dataPath when empty), or to stdout on a dry run. A
// missing dataPath starts from an empty document.
func ingestFile(archive []byte, dataPath, outPath string, dryRun bool, stdout io.Writer) error {
	current := models.NewDocument()
	content, err := os.ReadFile(dataPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		log.Warnf("%s does not exist, starting from an empty document", dataPath)
	case err != nil:
		return err
	default:
		if current, err = models.ParseDocument(content); err != nil {
			return fmt.Errorf("failed to parse %s: %w", dataPath, err)
		}
	}

	result, err := ingest.Run(archive, current)
	if err != nil {
		return err
	}
	logWarnings(result.Warnings)

	if dryRun {
		return writeDocument(stdout, result.Document)
	}

	if outPath == "" {
		outPath = dataPath
	}
	encoded, err := result.Document.Encode()
	if err != nil {
		return err
	}
	if err := repository.WriteFileAtomic(outPath, encoded); err != nil {
		return err
	}
	log.Infof("merged %v into %s", result.Extracts, outPath)
	return nil
}

func writeDocument(w io.Writer, doc models.Document) error {
	encoded, err := doc.Encode()
	if err != nil {
		return err
	}
	_, err = w.Write(encoded)
	return err
}

func logWarnings(warnings []models.Warning) {
	for _, w := range warnings {
		log.WithField("code", w.Code).Warn(w.Message)
	}
}
