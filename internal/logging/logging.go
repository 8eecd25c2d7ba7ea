package logging

import (
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// Setup builds the root logger. JSON goes to stdout; when logFile is
// non-empty the same stream is also appended to that file. An unopenable
// file degrades to stdout-only rather than failing startup.
func Setup(level, logFile string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = os.Stdout
	if logFile != "" {
		f, ferr := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if ferr == nil {
			w = zerolog.MultiLevelWriter(os.Stdout, f)
		}
	}

	logger := zerolog.New(w).Level(lvl).With().Timestamp().Logger()
	if logFile != "" && w == os.Stdout {
		logger.Warn().Str("log_file", logFile).Msg("could not open log file, logging to stdout only")
	}
	return logger
}
