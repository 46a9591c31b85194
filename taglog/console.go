package taglog

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// WriteConsole prints the record as a single JSON line, the way the web
// container tag logs to its console.
func WriteConsole(record Record) {
	line, err := json.Marshal(record)
	if err != nil {
		log.WithError(err).Error("Failed to marshal tag log record for console.")
		return
	}
	log.Info(string(line))
}
