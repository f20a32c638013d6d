package services

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// TrackTime logs how long an operation took. Use as
// defer TrackTime("IngestArchive", time.Now(), fields).
func TrackTime(operation string, start time.Time, fields ...log.Fields) {
	entry := log.WithField("elapsed_ms", time.Since(start).Milliseconds())
	for _, f := range fields {
		entry = entry.WithFields(f)
	}
	entry.Debugf("%s finished", operation)
}
