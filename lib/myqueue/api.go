package myqueue

import (
	"context"
	"net/http"
)

type Task struct {
	UID            string
	WebhookURLPath string
	Payload        []byte
}

// New creates the queue for the environment. Locally tasks are dispatched on the given handler.
var New func(c context.Context, loopback http.Handler) (TaskQueuer, func(), error)

//go:generate mockgen -source=api.go -package myqueue -destination queuer_mock.go TaskQueuer
type TaskQueuer interface {
	Enqueue(c context.Context, task Task) error
}
