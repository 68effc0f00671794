package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_maskImpl_Mask(t *testing.T) {
	tests := []struct {
		name     string
		keywords []string
		text     string
		want     string
	}{
		{
			name: "json string value",
			text: `{"accessToken":"abc.def","tokenType":"bearer"}`,
			want: `{"accessToken":"xxxxx","tokenType":"bearer"}`,
		},
		{
			name:     "json with spaces and number",
			keywords: []string{"password", "ccNumber"},
			text:     `{"password" : "usss", "numb":1, "ccNumber": 123123982347827}`,
			want:     `{"password" : "xxxxx", "numb":1, "ccNumber": "xxxxx"}`,
		},
		{
			name: "query string",
			text: `user=test&assertion=eyJhbGciOi&x=1`,
			want: `user=test&assertion="xxxxx"&x=1`,
		},
		{
			name: "no keyword",
			text: `{"botInfo":{"chatBot":"kore"}}`,
			want: `{"botInfo":{"chatBot":"kore"}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewMasker(tt.keywords...).Mask(tt.text))
		})
	}
}
