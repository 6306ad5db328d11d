package myqueue

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync"

	"github.com/MarcGrol/pharmacare/lib/mylog"
)

// loopbackQueue mimics Cloud Tasks by replaying each task as a PUT on the local router.
type loopbackQueue struct {
	handler http.Handler
	logger  mylog.Logger
	wg      sync.WaitGroup
}

func init() {
	if os.Getenv("GOOGLE_CLOUD_PROJECT") == "" {
		New = newLoopbackQueue
	}
}

func newLoopbackQueue(c context.Context, handler http.Handler) (TaskQueuer, func(), error) {
	q := NewLoopback(handler)
	return q, q.Wait, nil
}

func NewLoopback(handler http.Handler) *loopbackQueue {
	return &loopbackQueue{
		handler: handler,
		logger:  mylog.New("queue"),
	}
}

func (q *loopbackQueue) Enqueue(c context.Context, task Task) error {
	if q.handler == nil {
		return nil
	}

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.dispatch(context.WithoutCancel(c), task)
	}()

	return nil
}

func (q *loopbackQueue) dispatch(c context.Context, task Task) {
	req, err := http.NewRequestWithContext(c, http.MethodPut, task.WebhookURLPath, bytes.NewReader(task.Payload))
	if err != nil {
		q.logger.Log(c, task.UID, mylog.SeverityError, "Error creating request for task %s: %s", task.UID, err)
		return
	}
	resp := httptest.NewRecorder()
	q.handler.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		q.logger.Log(c, task.UID, mylog.SeverityWarn, "Task %s on %s failed with status %d: %s", task.UID, task.WebhookURLPath, resp.Code, resp.Body.String())
	}
}

// Wait blocks until all dispatched tasks are done.
func (q *loopbackQueue) Wait() {
	q.wg.Wait()
}
