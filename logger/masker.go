package logger

import (
	"fmt"
	"regexp"
)

const maskValue = "xxxxx"

// DefaultMaskKeywords keys hidden from log output by default
var DefaultMaskKeywords = []string{"accessToken", "assertion", "password", "clientSecret"}

// Masker hide sensitive values in log text
type Masker interface {
	Mask(text string) string
}

type maskImpl struct {
	patterns []*regexp.Regexp
}

// NewMasker create new logger masker for keywords, DefaultMaskKeywords when empty.
// Matches json (`"key": value`), query (`key=value`) and header (`key: value`) shapes.
func NewMasker(keywords ...string) Masker {
	if len(keywords) == 0 {
		keywords = DefaultMaskKeywords
	}
	m := &maskImpl{}
	for _, k := range keywords {
		k = regexp.QuoteMeta(k)
		m.patterns = append(m.patterns,
			regexp.MustCompile(fmt.Sprintf(`("%s"\s*:\s*)("(?:[^"\\]|\\.)*"|[^,}\s]+)`, k)),
			regexp.MustCompile(fmt.Sprintf(`(\b%s=)([^&\s]+)`, k)),
			regexp.MustCompile(fmt.Sprintf(`(\b%s:\s*)([^\s,]+)`, k)),
		)
	}
	return m
}

func (m *maskImpl) Mask(text string) string {
	for _, p := range m.patterns {
		text = p.ReplaceAllString(text, `${1}"`+maskValue+`"`)
	}
	return text
}
