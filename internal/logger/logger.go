package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the global logger. It discards output until Init is called.
var Logger = log.New(io.Discard)

// Config holds logger configuration.
type Config struct {
	Debug bool
	Level string
	Dir   string
}

// Init points the global logger at a rotating file under cfg.Dir.
// In debug mode output is mirrored to stderr.
func Init(cfg Config) error {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(cfg.Dir, "habitr.log"),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	var writer io.Writer = fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	Logger = log.NewWithOptions(writer, log.Options{
		ReportCaller:    cfg.Debug,
		ReportTimestamp: true,
		Level:           ParseLevel(cfg.Level, cfg.Debug),
		Prefix:          "habitr",
	})
	return nil
}

// ParseLevel maps a level name to a log level. Debug forces DebugLevel;
// unknown names fall back to WarnLevel.
func ParseLevel(name string, debug bool) log.Level {
	if debug {
		return log.DebugLevel
	}
	lvl, err := log.ParseLevel(name)
	if err != nil {
		return log.WarnLevel
	}
	return lvl
}

// Debug logs a debug message
func Debug(msg string, keyvals ...interface{}) {
	Logger.Debug(msg, keyvals...)
}

// Info logs an info message
func Info(msg string, keyvals ...interface{}) {
	Logger.Info(msg, keyvals...)
}

// Warn logs a warning message
func Warn(msg string, keyvals ...interface{}) {
	Logger.Warn(msg, keyvals...)
}

// Error logs an error message
func Error(msg string, keyvals ...interface{}) {
	Logger.Error(msg, keyvals...)
}
