package logging

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"techgear/internal/config"
)

const (
	DefaultMaxSizeMB  = 50
	DefaultMaxBackups = 5
	DefaultMaxAgeDays = 30
	DefaultCompress   = true

	timeFormat = "2006-01-02 15:04:05"
)

// Apply configure le niveau global et les sorties des logs.
// Console toujours, fichier rotatif en plus quand logFilePath est renseigné.
func Apply(level string, loader *config.Loader, logFilePath string) {
	applyLevel(level)
	log.Logger = zerolog.New(writer(os.Stdout, loader, logFilePath)).With().Timestamp().Logger()
}

// LevelForVerbosity convertit le nombre de -v en niveau (base si aucun flag)
func LevelForVerbosity(base string, verbose int) string {
	switch {
	case verbose >= 2:
		return "trace"
	case verbose == 1:
		return "debug"
	default:
		return base
	}
}

func applyLevel(level string) {
	switch level {
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func writer(out io.Writer, loader *config.Loader, logFilePath string) io.Writer {
	consoleOutput := zerolog.ConsoleWriter{Out: out, TimeFormat: timeFormat}
	if logFilePath == "" {
		return consoleOutput
	}

	if err := ensureLogDir(logFilePath); err != nil {
		log.Error().Err(err).Str("path", logFilePath).Msg("Failed to prepare log directory; logging to console only")
		return consoleOutput
	}

	fileConsole := zerolog.ConsoleWriter{
		Out:        rotatingFile(loader, logFilePath),
		TimeFormat: timeFormat,
		NoColor:    true,
	}
	return zerolog.MultiLevelWriter(consoleOutput, fileConsole)
}

func rotatingFile(loader *config.Loader, logFilePath string) *lumberjack.Logger {
	maxSize := DefaultMaxSizeMB
	maxBackups := DefaultMaxBackups
	maxAgeDays := DefaultMaxAgeDays
	compress := DefaultCompress

	if loader != nil {
		if val := loader.Int("LOG_MAX_SIZE_MB", DefaultMaxSizeMB); val > 0 {
			maxSize = val
		}
		if val := loader.Int("LOG_MAX_BACKUPS", DefaultMaxBackups); val >= 0 {
			maxBackups = val
		}
		if val := loader.Int("LOG_MAX_AGE_DAYS", DefaultMaxAgeDays); val >= 0 {
			maxAgeDays = val
		}
		compress = loader.Bool("LOG_COMPRESS", DefaultCompress)
	}

	return &lumberjack.Logger{
		Filename:   logFilePath,
		MaxSize:    maxSize,
		MaxBackups: maxBackups,
		MaxAge:     maxAgeDays,
		Compress:   compress,
	}
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
