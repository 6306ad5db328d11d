package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/MarcGrol/pharmacare/services/catalogapi"
	"github.com/MarcGrol/pharmacare/services/notification"
)

// Store holds the cart of one session. Every mutation completes, including its
// notification, before another call of the same session observes the cart.
type Store struct {
	sync.Mutex
	cart     Cart
	notifier notification.Notifier
}

func NewStore(notifier notification.Notifier) *Store {
	return &Store{
		notifier: notifier,
	}
}

func (s *Store) apply(c context.Context, transition func(Cart) (Cart, Change)) {
	s.Lock()
	defer s.Unlock()

	var change Change
	s.cart, change = transition(s.cart)

	toast, found := toastFor(change)
	if found {
		s.notifier.Notify(c, toast)
	}
}

// AddToCart ignores quantities below one.
func (s *Store) AddToCart(c context.Context, product catalogapi.Product, quantity int) {
	s.apply(c, func(cart Cart) (Cart, Change) {
		return cart.Add(product, quantity)
	})
}

func (s *Store) RemoveFromCart(c context.Context, productUID string) {
	s.apply(c, func(cart Cart) (Cart, Change) {
		return cart.Remove(productUID)
	})
}

func (s *Store) UpdateQuantity(c context.Context, productUID string, quantity int) {
	s.apply(c, func(cart Cart) (Cart, Change) {
		return cart.UpdateQuantity(productUID, quantity)
	})
}

func (s *Store) ClearCart(c context.Context) {
	s.apply(c, func(cart Cart) (Cart, Change) {
		return cart.Clear()
	})
}

// ClearOrdered empties the part of the cart that was ordered and notifies like ClearCart.
func (s *Store) ClearOrdered(c context.Context, ordered Cart) {
	s.apply(c, func(cart Cart) (Cart, Change) {
		return cart.ClearOrdered(ordered)
	})
}

// Snapshot returns the current cart; it is immutable so it can be read without the lock.
func (s *Store) Snapshot() Cart {
	s.Lock()
	defer s.Unlock()

	return s.cart
}

func (s *Store) Items() []Line {
	return s.Snapshot().Lines()
}

func (s *Store) GetTotalPrice() decimal.Decimal {
	return s.Snapshot().TotalPrice()
}

func (s *Store) GetTotalItems() int {
	return s.Snapshot().TotalItems()
}

func toastFor(change Change) (notification.Notification, bool) {
	switch change.Type {
	case LineAdded:
		return notification.Notification{
			Kind:        notification.KindCartItemAdded,
			Title:       "Produit ajouté",
			Description: fmt.Sprintf("%s ajouté au panier", change.Line.Product.Name),
		}, true
	case QuantityIncreased:
		return notification.Notification{
			Kind:        notification.KindCartQuantityUpdated,
			Title:       "Produit mis à jour",
			Description: fmt.Sprintf("Quantité de %s mise à jour dans le panier", change.Line.Product.Name),
		}, true
	case LineRemoved:
		return notification.Notification{
			Kind:        notification.KindCartItemRemoved,
			Title:       "Produit supprimé",
			Description: fmt.Sprintf("%s supprimé du panier", change.Line.Product.Name),
		}, true
	case Cleared:
		return notification.Notification{
			Kind:        notification.KindCartCleared,
			Title:       "Panier vidé",
			Description: "Tous les produits ont été supprimés du panier",
		}, true
	default:
		return notification.Notification{}, false
	}
}
