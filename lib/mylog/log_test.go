package mylog

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSeverity(t *testing.T) {
	testCases := []struct {
		level    string
		expected Severity
	}{
		{level: "debug", expected: SeverityDebug},
		{level: "WARN", expected: SeverityWarn},
		{level: "error", expected: SeverityError},
		{level: "INFO", expected: SeverityInfo},
		{level: "verbose", expected: SeverityInfo},
		{level: "", expected: SeverityInfo},
	}
	for _, tc := range testCases {
		t.Run(tc.level, func(t *testing.T) {
			assert.Equal(t, tc.expected, ParseSeverity(tc.level))
		})
	}
}

func TestCloudLogger(t *testing.T) {
	defer SetMinSeverity(SeverityDebug)

	newSut := func(out *bytes.Buffer) cloudLogger {
		return cloudLogger{component: "cart", mutex: &sync.Mutex{}, out: out}
	}

	t.Run("writes one json record per line", func(t *testing.T) {
		// setup
		out := &bytes.Buffer{}
		sut := newSut(out)
		SetMinSeverity(SeverityDebug)

		// when
		sut.Log(context.Background(), "session-1", SeverityWarn, "cart of %s is empty", "session-1")

		// then
		lines := strings.Split(strings.TrimSpace(out.String()), "\n")
		assert.Len(t, lines, 1)
		record := cloudRecord{}
		assert.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
		assert.Equal(t, "WARN", record.Severity)
		assert.Equal(t, "cart of session-1 is empty", record.Message)
		assert.Equal(t, "cart", record.Component)
		assert.Equal(t, map[string]string{"aggregate": "session-1"}, record.Labels)
	})

	t.Run("drops records below min severity", func(t *testing.T) {
		// setup
		out := &bytes.Buffer{}
		sut := newSut(out)
		SetMinSeverity(SeverityWarn)

		// when
		sut.Log(context.Background(), "", SeverityInfo, "ignored")
		sut.Log(context.Background(), "", SeverityError, "kept")

		// then
		assert.NotContains(t, out.String(), "ignored")
		assert.Contains(t, out.String(), `"message":"kept"`)
		assert.NotContains(t, out.String(), "labels")
	})
}
