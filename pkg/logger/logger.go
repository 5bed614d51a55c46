// pkg/logger/logger.go

package logger

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	log      *zap.Logger
	logLevel = zap.NewAtomicLevelAt(zap.InfoLevel)
)

// candidateLogPaths lists log file locations in order of preference.
// The system path requires root, which a bootstrap run has anyway; the
// home fallback keeps --help and tests working for unprivileged users.
func candidateLogPaths() []string {
	paths := []string{"/var/log/puppet-bootstrap/puppet-bootstrap.log"}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".puppet-bootstrap", "puppet-bootstrap.log"))
	}
	return paths
}

// FindWritableLogPath returns the first log path whose directory can be
// created and whose file can be opened for appending.
func FindWritableLogPath() (string, error) {
	var lastErr error
	for _, path := range candidateLogPaths() {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			lastErr = err
			continue
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			lastErr = err
			continue
		}
		_ = f.Close()
		return path, nil
	}
	return "", lastErr
}

// L returns the global logger, initializing a console fallback if needed.
func L() *zap.Logger {
	if log == nil {
		log = NewFallbackLogger()
		zap.ReplaceGlobals(log)
	}
	return log
}

// Sync flushes any buffered log entries. Call before the process exits.
func Sync() error {
	if log == nil {
		return nil
	}
	return log.Sync()
}

// SetLevel adjusts the level of the global logger. Wired to --loglevel.
func SetLevel(level zapcore.Level) {
	logLevel.SetLevel(level)
}

// ParseLogLevel maps a string to a zap level, defaulting to Info.
func ParseLogLevel(s string) zapcore.Level {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return zapcore.InfoLevel
	}
	return level
}
