package internal

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want LogLevel
	}{
		{"ERROR", LogLevelError},
		{"warn", LogLevelWarn},
		{" debug ", LogLevelDebug},
		{"TRACE", LogLevelTrace},
		{"", LogLevelInfo},
		{"verbose", LogLevelInfo},
	}
	for _, test := range tests {
		assert.Equal(t, test.want, ParseLogLevel(test.in), test.in)
	}
}

func TestLoggerFiltersAndTags(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(LogLevelInfo)
	logger.SetOutput(log.New(&buf, "", 0))

	db := logger.With("DBConnector")
	db.Info("extracted %d rows", 3)
	db.Debug("hidden")

	assert.Equal(t, "[INFO] [DBConnector] extracted 3 rows\n", buf.String())
	assert.Equal(t, LogLevelInfo, db.GetLevel())
}
