// Package logging configures the application-wide structured logger.
// We use logrus rather than the standard library "log" because structured
// fields (logrus.Fields) make production logs searchable — you can filter by
// round_id or player_id instead of grepping free text.
package logging

import (
	"os"

	"github.com/sirupsen/logrus"
)

// Log is the shared logger instance. It is set once by Bootstrap at startup
// and read-only afterwards, so concurrent use from handlers is safe.
var Log *logrus.Logger

// Bootstrap initializes the shared logger. env controls the verbosity:
// development runs at debug level with human-readable output, everything else
// at info level with JSON output for log collectors.
func Bootstrap(env string) {
	Log = logrus.New()
	Log.SetOutput(os.Stdout)

	if env == "development" {
		Log.SetLevel(logrus.DebugLevel)
		Log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		return
	}
	Log.SetLevel(logrus.InfoLevel)
	Log.SetFormatter(&logrus.JSONFormatter{})
}
