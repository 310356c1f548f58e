package main

import (
	"io"
	"os"

	"github.com/alexflint/word2tex/mathtex"
	"github.com/alexflint/word2tex/texdoc"
	"github.com/rs/zerolog"
	"golang.org/x/term"
)

// newLogger logs human-readable lines when stderr is a terminal and JSON
// otherwise
func newLogger(verbose bool) zerolog.Logger {
	var w io.Writer = os.Stderr
	if term.IsTerminal(int(os.Stderr.Fd())) {
		w = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return zerolog.New(w).Level(level).With().Timestamp().Logger()
}

func logDiagnostic(log *zerolog.Logger, d mathtex.Diagnostic) *zerolog.Event {
	ev := log.Warn()
	if d.Severity == mathtex.Info {
		ev = log.Info()
	}
	return ev.Str("stage", d.Stage).Ints("positions", d.Positions)
}

func logDiagnostics(log *zerolog.Logger, diags []mathtex.Diagnostic) {
	for _, d := range diags {
		logDiagnostic(log, d).Msg(d.Message)
	}
}

func logDocumentDiagnostics(log *zerolog.Logger, diags []texdoc.Diagnostic) {
	for _, d := range diags {
		logDiagnostic(log, d.Diagnostic).Int("paragraph", d.Paragraph).Msg(d.Message)
	}
}
