package cart

import (
	"context"
	"errors"

	"github.com/MarcGrol/pharmacare/lib/mysession"
	"github.com/MarcGrol/pharmacare/services/notification"
)

var ErrNoSession = errors.New("cart: no session in context")

//go:generate mockgen -source=provider.go -package cart -destination resolver_mock.go Resolver
type Resolver interface {
	CartStore(c context.Context, session mysession.Session) *Store
	DrainToasts(session mysession.Session) []notification.Notification
}

// Provider hands out the cart store of the session of a request.
type Provider struct {
	resolver Resolver
}

func NewProvider(resolver Resolver) Provider {
	return Provider{
		resolver: resolver,
	}
}

func (p Provider) Get(c context.Context) (*Store, error) {
	session, found := mysession.FromContext(c)
	if !found {
		return nil, ErrNoSession
	}
	return p.resolver.CartStore(c, session), nil
}

// MustGet panics outside a session; the recovery middleware turns that into a 500.
func (p Provider) MustGet(c context.Context) *Store {
	store, err := p.Get(c)
	if err != nil {
		panic(err)
	}
	return store
}

func (p Provider) DrainToasts(c context.Context) []notification.Notification {
	return p.resolver.DrainToasts(mysession.MustFromContext(c))
}
