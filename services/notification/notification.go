// Package notification carries the user facing messages (toasts) that cart and favorites
// mutations emit.
package notification

import (
	"context"
	"sync"

	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/services/storefront/storefrontevents"
)

type Kind string

const (
	KindCartItemAdded       Kind = "cart.item.added"
	KindCartQuantityUpdated Kind = "cart.quantity.updated"
	KindCartItemRemoved     Kind = "cart.item.removed"
	KindCartCleared         Kind = "cart.cleared"
	KindFavoritesAdded      Kind = "favorites.added"
	KindFavoritesRemoved    Kind = "favorites.removed"
)

const inboxCapacity = 50

type Notification struct {
	Kind        Kind   `json:"kind"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

//go:generate mockgen -source=notification.go -package notification -destination notifier_mock.go Notifier
type Notifier interface {
	Notify(c context.Context, n Notification)
}

// Inbox keeps the toasts of one session until the browser drains them.
// When full, the oldest toast is dropped.
type Inbox struct {
	sync.Mutex
	pending []Notification
}

func NewInbox() *Inbox {
	return &Inbox{
		pending: []Notification{},
	}
}

func (i *Inbox) Notify(c context.Context, n Notification) {
	i.Lock()
	defer i.Unlock()

	if len(i.pending) >= inboxCapacity {
		i.pending = i.pending[1:]
	}
	i.pending = append(i.pending, n)
}

// Drain returns the pending toasts, oldest first, and empties the inbox.
func (i *Inbox) Drain() []Notification {
	i.Lock()
	defer i.Unlock()

	drained := i.pending
	i.pending = []Notification{}
	return drained
}

type Fanout []Notifier

func (f Fanout) Notify(c context.Context, n Notification) {
	for _, notifier := range f {
		notifier.Notify(c, n)
	}
}

type publishingNotifier struct {
	publisher  mypublisher.Publisher
	sessionUID string
	logger     mylog.Logger
}

// NewPublishingNotifier emits every toast of a session as an event on the storefront topic.
func NewPublishingNotifier(publisher mypublisher.Publisher, sessionUID string) Notifier {
	return &publishingNotifier{
		publisher:  publisher,
		sessionUID: sessionUID,
		logger:     mylog.New("notification"),
	}
}

func (p *publishingNotifier) Notify(c context.Context, n Notification) {
	err := p.publisher.Publish(c, storefrontevents.TopicName, storefrontevents.ToastEmitted{
		SessionUID:  p.sessionUID,
		Kind:        string(n.Kind),
		Title:       n.Title,
		Description: n.Description,
	})
	if err != nil {
		p.logger.Log(c, p.sessionUID, mylog.SeverityError, "Error publishing toast %s: %s", n.Kind, err)
	}
}
