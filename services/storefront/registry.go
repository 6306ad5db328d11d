// Package storefront keeps the cart and favorites of every live browser session.
package storefront

import (
	"context"
	"sync"
	"time"

	"github.com/MarcGrol/pharmacare/lib/mylocalstorage"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/lib/mysession"
	"github.com/MarcGrol/pharmacare/lib/mytime"
	"github.com/MarcGrol/pharmacare/services/cart"
	"github.com/MarcGrol/pharmacare/services/favorites"
	"github.com/MarcGrol/pharmacare/services/notification"
)

type entry struct {
	session  mysession.Session
	inbox    *notification.Inbox
	notifier notification.Notifier
	cart     *cart.Store

	favoritesOnce sync.Once
	favorites     *favorites.Store

	lastSeen time.Time
}

type Registry struct {
	sync.Mutex
	sessions    map[string]*entry
	storage     mylocalstorage.Storage
	publisher   mypublisher.Publisher
	nower       mytime.Nower
	idleTimeout time.Duration
	logger      mylog.Logger
}

func NewRegistry(storage mylocalstorage.Storage, publisher mypublisher.Publisher, nower mytime.Nower, idleTimeout time.Duration) *Registry {
	return &Registry{
		sessions:    map[string]*entry{},
		storage:     storage,
		publisher:   publisher,
		nower:       nower,
		idleTimeout: idleTimeout,
		logger:      mylog.New("storefront"),
	}
}

// resolve returns the entry of the session, creating it on first use.
func (r *Registry) resolve(c context.Context, session mysession.Session) *entry {
	r.Lock()
	defer r.Unlock()

	e, found := r.sessions[session.UID]
	if !found {
		inbox := notification.NewInbox()
		notifier := notification.Fanout{inbox, notification.NewPublishingNotifier(r.publisher, session.UID)}
		e = &entry{
			session:  session,
			inbox:    inbox,
			notifier: notifier,
			cart:     cart.NewStore(notifier),
		}
		r.sessions[session.UID] = e
		r.logger.Log(c, session.UID, mylog.SeverityDebug, "Started session for profile %s", session.ProfileUID)
	}
	e.lastSeen = r.nower.Now()

	return e
}

func (r *Registry) CartStore(c context.Context, session mysession.Session) *cart.Store {
	return r.resolve(c, session).cart
}

// FavoritesStore hydrates outside the registry lock, so slow storage only delays its own session.
func (r *Registry) FavoritesStore(c context.Context, session mysession.Session) *favorites.Store {
	e := r.resolve(c, session)
	e.favoritesOnce.Do(func() {
		e.favorites = favorites.NewStore(c, r.storage, e.session.ProfileUID, e.notifier)
	})
	return e.favorites
}

func (r *Registry) DrainToasts(session mysession.Session) []notification.Notification {
	r.Lock()
	e, found := r.sessions[session.UID]
	r.Unlock()

	if !found {
		return []notification.Notification{}
	}
	return e.inbox.Drain()
}

// End drops the in-memory state of a session. Favorites stay in local storage.
func (r *Registry) End(c context.Context, sessionUID string) bool {
	r.Lock()
	defer r.Unlock()

	_, found := r.sessions[sessionUID]
	delete(r.sessions, sessionUID)
	if found {
		r.logger.Log(c, sessionUID, mylog.SeverityDebug, "Ended session")
	}
	return found
}

func (r *Registry) ExpireIdle(c context.Context) int {
	r.Lock()
	defer r.Unlock()

	deadline := r.nower.Now().Add(-r.idleTimeout)
	count := 0
	for uid, e := range r.sessions {
		if e.lastSeen.Before(deadline) {
			delete(r.sessions, uid)
			count++
		}
	}
	if count > 0 {
		r.logger.Log(c, "", mylog.SeverityInfo, "Expired %d idle sessions", count)
	}
	return count
}

func (r *Registry) Count() int {
	r.Lock()
	defer r.Unlock()

	return len(r.sessions)
}

// RunJanitor expires idle sessions every interval until the context is done.
func (r *Registry) RunJanitor(c context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-c.Done():
			return
		case <-ticker.C:
			r.ExpireIdle(c)
		}
	}
}
