package log

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugToggle(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	Debug("hidden %s", "message")
	assert.Empty(t, buf.String(), "debug output should be suppressed by default")

	SetDebug(true)
	defer SetDebug(false)

	Debug("visible %s", "message")
	assert.Contains(t, buf.String(), "visible message")
}

func TestLogWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger.SetOutput(&buf)
	defer logger.SetOutput(os.Stderr)

	LogWithFields(F("directory", "/tmp/shots")).Info("watching")

	out := buf.String()
	assert.True(t, strings.Contains(out, "watching"))
	assert.True(t, strings.Contains(out, "directory"))
}
