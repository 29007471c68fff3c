// pkg/logger/logger.go

package logger

import (
	"os"
	"path/filepath"

	"github.com/uptrace/opentelemetry-go-extra/otelzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// L returns the process-wide logger, or nil if not yet initialized.
func L() *zap.Logger {
	return log
}

// InitializeWithFallback sets up the console+file tee, falling back to
// console-only when no writable log path exists. Operational logs go to
// stderr so the discovery transcript owns stdout.
func InitializeWithFallback() {
	path, err := findWritableLogPath()
	if err != nil {
		log = NewFallbackLogger()
		replaceGlobals(log)
		return
	}

	jsonCfg := zap.NewProductionEncoderConfig()
	jsonCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	jsonCfg.EncodeLevel = zapcore.CapitalLevelEncoder

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		log = NewFallbackLogger()
		replaceGlobals(log)
		return
	}

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()), zapcore.Lock(os.Stderr), ParseLogLevel(os.Getenv("LOG_LEVEL"))),
		zapcore.NewCore(zapcore.NewJSONEncoder(jsonCfg), zapcore.AddSync(file), zap.InfoLevel),
	)

	log = zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
	replaceGlobals(log)
	log.Debug("Logger initialized", zap.String("log_path", path))
}

// NewFallbackLogger builds a console-only logger for environments where no
// log file can be written.
func NewFallbackLogger() *zap.Logger {
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(DefaultConsoleEncoderConfig()),
		zapcore.AddSync(os.Stderr),
		ParseLogLevel(os.Getenv("LOG_LEVEL")),
	)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel))
}

// InitFallback is safe to call repeatedly; it only installs a logger when
// none exists yet.
func InitFallback() {
	if log != nil {
		return
	}
	log = NewFallbackLogger()
	replaceGlobals(log)
}

func replaceGlobals(l *zap.Logger) {
	zap.ReplaceGlobals(l)
	otelzap.ReplaceGlobals(otelzap.New(l))
}

func DefaultConsoleEncoderConfig() zapcore.EncoderConfig {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	return cfg
}

// ParseLogLevel maps the LOG_LEVEL environment value to a zap level,
// defaulting to Info.
func ParseLogLevel(level string) zapcore.Level {
	switch level {
	case "TRACE", "DEBUG":
		return zapcore.DebugLevel
	case "WARN":
		return zapcore.WarnLevel
	case "ERROR":
		return zapcore.ErrorLevel
	case "FATAL":
		return zapcore.FatalLevel
	default:
		return zapcore.InfoLevel
	}
}

func findWritableLogPath() (string, error) {
	candidates := []string{
		"/var/log/cyberMonkey/scout.log",
		filepath.Join(os.Getenv("HOME"), ".scout", "scout.log"),
	}
	for _, path := range candidates {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0700); err != nil {
			continue
		}
		file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
		if err != nil {
			continue
		}
		file.Close()
		return path, nil
	}
	return "", os.ErrPermission
}
