package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/julianstephens/praylist/internal/constants"
)

// Config holds logger configuration
type Config struct {
	Debug     bool
	ConfigDir string
}

// Handle owns a logger and the rotating file behind it.
type Handle struct {
	*log.Logger
	file *lumberjack.Logger
}

// New creates a logger writing to <ConfigDir>/logs/praylist.log.
// The caller owns the returned handle and must Close it at shutdown.
func New(cfg Config) (*Handle, error) {
	logDir := filepath.Join(cfg.ConfigDir, constants.LogDirName)
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, err
	}

	fileWriter := &lumberjack.Logger{
		Filename:   filepath.Join(logDir, constants.LogFileName),
		MaxSize:    10, // megabytes
		MaxBackups: 3,
		MaxAge:     28, // days
		Compress:   true,
	}

	level := log.WarnLevel
	if cfg.Debug {
		level = log.DebugLevel
	}

	// Debug mode also mirrors to stderr; otherwise the file is the only sink.
	var writer io.Writer = fileWriter
	if cfg.Debug {
		writer = io.MultiWriter(os.Stderr, fileWriter)
	}

	return &Handle{
		Logger: log.NewWithOptions(writer, log.Options{
			ReportCaller:    cfg.Debug,
			ReportTimestamp: true,
			Level:           level,
			Prefix:          constants.AppName,
		}),
		file: fileWriter,
	}, nil
}

// Discard returns a logger that drops everything. Used by tests and by
// callers that have no log directory.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// Close flushes and closes the log file.
func (h *Handle) Close() error {
	if h == nil || h.file == nil {
		return nil
	}
	return h.file.Close()
}
