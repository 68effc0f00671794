package logger

import (
	"io"

	"go.uber.org/zap/zapcore"
)

type (
	// Option for init logger option
	Option struct {
		MultiWriter  []io.Writer
		Level        zapcore.Level
		MaskKeywords []string
	}

	// OptionFunc func
	OptionFunc func(*Option)
)

// OptionAddWriter option func
func OptionAddWriter(w io.Writer) OptionFunc {
	return func(o *Option) {
		o.MultiWriter = append(o.MultiWriter, w)
	}
}

// OptionSetWriter option func, override all log writer
func OptionSetWriter(w ...io.Writer) OptionFunc {
	return func(o *Option) {
		o.MultiWriter = w
	}
}

// OptionSetLevel option func
func OptionSetLevel(level zapcore.Level) OptionFunc {
	return func(o *Option) {
		o.Level = level
	}
}

// OptionSetMaskKeywords option func, keys whose values are replaced before writing
func OptionSetMaskKeywords(keywords ...string) OptionFunc {
	return func(o *Option) {
		o.MaskKeywords = keywords
	}
}
