package mylog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/MarcGrol/pharmacare/lib/mycontext"
)

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") != "" {
		New = newCloudLogger
	}
}

// Cloud Logging parses one JSON object per stdout line.
type cloudLogger struct {
	component string
	mutex     *sync.Mutex
	out       io.Writer
}

var stdoutMutex sync.Mutex

func newCloudLogger(component string) Logger {
	return cloudLogger{
		component: component,
		mutex:     &stdoutMutex,
		out:       os.Stdout,
	}
}

type cloudRecord struct {
	Severity  string            `json:"severity"`
	Message   string            `json:"message"`
	Component string            `json:"component,omitempty"`
	Trace     string            `json:"logging.googleapis.com/trace,omitempty"`
	Labels    map[string]string `json:"logging.googleapis.com/labels,omitempty"`
}

func (l cloudLogger) Log(ctx context.Context, traceLabel string, severity Severity, format string, a ...any) {
	if !enabled(severity) {
		return
	}

	record := cloudRecord{
		Severity:  string(severity),
		Message:   fmt.Sprintf(format, a...),
		Component: l.component,
		Trace:     mycontext.TraceFromContext(ctx),
	}
	if traceLabel != "" {
		record.Labels = map[string]string{"aggregate": traceLabel}
	}

	line, err := json.Marshal(record)
	if err != nil {
		line = []byte(fmt.Sprintf(`{"severity":"ERROR","message":%q}`, "unloggable record: "+err.Error()))
	}

	l.mutex.Lock()
	defer l.mutex.Unlock()
	fmt.Fprintf(l.out, "%s\n", line)
}
