package crispr

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

// stderr is for logging to Stderr (without an annoying timestamp)
var stderr = &logrus.Logger{
	Out:       os.Stderr,
	Formatter: &logrus.TextFormatter{DisableTimestamp: true},
	Hooks:     make(logrus.LevelHooks),
	Level:     logrus.InfoLevel,
}

// SetVerbose turns on debug logging.
func SetVerbose(verbose bool) {
	if verbose {
		stderr.SetLevel(logrus.DebugLevel)
	} else {
		stderr.SetLevel(logrus.InfoLevel)
	}
}

// SetLogOutput redirects warnings and errors, eg to silence them in tests.
func SetLogOutput(w io.Writer) {
	stderr.SetOutput(w)
}
