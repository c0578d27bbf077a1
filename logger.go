package wiring

import (
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the package's diagnostic logger.
// By default it writes error-level messages to stderr.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = NewDiagnosticLogger(zapcore.Lock(os.Stderr), zapcore.ErrorLevel)
		}
	})
	return logger
}

// SetLogger configures the package's logger.
// This must be called before any timing operations.
func SetLogger(l *zap.Logger) {
	logger = l
}

// NewDiagnosticLogger builds a console logger with the plain
// "<op> failed: <error>" line first and structured fields after it.
func NewDiagnosticLogger(w zapcore.WriteSyncer, level zapcore.LevelEnabler) *zap.Logger {
	cfg := zapcore.EncoderConfig{
		MessageKey:     "msg",
		LevelKey:       "",
		TimeKey:        "",
		NameKey:        "logger",
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeDuration: zapcore.StringDurationEncoder,
	}
	return zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(cfg), w, level))
}
