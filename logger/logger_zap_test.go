package logger_test

import (
	"bytes"
	"testing"

	"github.com/golangid/botkit/logger"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestInitZap(t *testing.T) {
	buf := new(bytes.Buffer)
	logger.InitZap(logger.OptionSetWriter(buf))
	defer logger.InitZap()

	logger.LogI("test message")
	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestLog(t *testing.T) {
	buf := new(bytes.Buffer)
	logger.InitZap(logger.OptionSetWriter(buf))
	defer logger.InitZap()

	logger.Log(zapcore.WarnLevel, "testing log", "test_context", "test_scope")
	assert.Contains(t, buf.String(), `"testing log"`)
	assert.Contains(t, buf.String(), `"context":"test_context"`)
	assert.Contains(t, buf.String(), `"scope":"test_scope"`)
}

func TestLogMasksSecrets(t *testing.T) {
	buf := new(bytes.Buffer)
	logger.InitZap(logger.OptionSetWriter(buf))
	defer logger.InitZap()

	logger.LogEf("sign in failed assertion=%s", "eyJhbGciOiJIUzI1NiJ9")
	assert.NotContains(t, buf.String(), "eyJhbGciOiJIUzI1NiJ9")
}

func TestLogLevelFilter(t *testing.T) {
	buf := new(bytes.Buffer)
	logger.InitZap(logger.OptionSetWriter(buf), logger.OptionSetLevel(zapcore.ErrorLevel))
	defer logger.InitZap()

	logger.LogI("hidden")
	logger.LogE("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestLogWithField(t *testing.T) {
	buf := new(bytes.Buffer)
	logger.InitZap(logger.OptionSetWriter(buf))
	defer logger.InitZap()

	logger.LogWithField(zapcore.InfoLevel, map[string]interface{}{
		"message":  "frame received",
		"threadId": "t-1",
	})
	assert.Contains(t, buf.String(), `"threadId":"t-1"`)
	assert.Contains(t, buf.String(), "frame received")
}
