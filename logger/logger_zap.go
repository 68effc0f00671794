package logger

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	logger *zap.SugaredLogger
	masker = NewMasker()
)

// InitZap logger with default writer to stdout
func InitZap(opts ...OptionFunc) {
	opt := Option{
		MultiWriter: []io.Writer{os.Stdout},
		Level:       zapcore.DebugLevel,
	}
	for _, o := range opts {
		o(&opt)
	}
	masker = NewMasker(opt.MaskKeywords...)

	encoder := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
		MessageKey:   "message",
		LevelKey:     "level",
		EncodeLevel:  zapcore.CapitalLevelEncoder,
		TimeKey:      "time",
		EncodeTime:   zapcore.ISO8601TimeEncoder,
		CallerKey:    "caller",
		EncodeCaller: zapcore.ShortCallerEncoder,
	})

	var cores []zapcore.Core
	for _, w := range opt.MultiWriter {
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(w), opt.Level))
	}
	logger = zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(2)).Sugar()
}

// Log with context and scope field
func Log(level zapcore.Level, message string, context string, scope string) {
	if logger == nil {
		return
	}
	entry := logger.With(
		zap.String("context", context),
		zap.String("scope", scope),
	)
	write(level, entry, masker.Mask(message))
}

// LogWithField func
func LogWithField(level zapcore.Level, fields map[string]interface{}) {
	if logger == nil {
		return
	}
	var message interface{}
	var args []interface{}
	for k, v := range fields {
		if k == "message" {
			message = v
			continue
		}
		if s, ok := v.(string); ok {
			v = masker.Mask(s)
		}
		args = append(args, k, v)
	}
	write(level, logger.With(args...), masker.Mask(fmt.Sprint(message)))
}

// LogE error
func LogE(message string) {
	Log(zapcore.ErrorLevel, message, "", "")
}

// LogEf error with format
func LogEf(format string, i ...interface{}) {
	Log(zapcore.ErrorLevel, fmt.Sprintf(format, i...), "", "")
}

// LogI info
func LogI(message string) {
	Log(zapcore.InfoLevel, message, "", "")
}

// LogIf info with format
func LogIf(format string, i ...interface{}) {
	Log(zapcore.InfoLevel, fmt.Sprintf(format, i...), "", "")
}

// Sync flush buffered log entries
func Sync() {
	if logger != nil {
		_ = logger.Sync()
	}
}

func write(level zapcore.Level, entry *zap.SugaredLogger, msg interface{}) {
	switch level {
	case zapcore.DebugLevel:
		entry.Debug(msg)
	case zapcore.InfoLevel:
		entry.Info(msg)
	case zapcore.WarnLevel:
		entry.Warn(msg)
	case zapcore.ErrorLevel:
		entry.Error(msg)
	case zapcore.FatalLevel:
		entry.Fatal(msg)
	case zapcore.PanicLevel:
		entry.Panic(msg)
	}
}
