package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/services/storefront/storefrontevents"
)

func TestInbox(t *testing.T) {
	c := context.TODO()

	t.Run("Drain returns toasts in order and empties", func(t *testing.T) {
		// given
		inbox := NewInbox()
		inbox.Notify(c, Notification{Kind: KindCartItemAdded, Title: "Produit ajouté"})
		inbox.Notify(c, Notification{Kind: KindCartCleared, Title: "Panier vidé"})

		// when
		drained := inbox.Drain()

		// then
		assert.Equal(t, []Notification{
			{Kind: KindCartItemAdded, Title: "Produit ajouté"},
			{Kind: KindCartCleared, Title: "Panier vidé"},
		}, drained)
		assert.Empty(t, inbox.Drain())
	})

	t.Run("Oldest toast is dropped when full", func(t *testing.T) {
		// given
		inbox := NewInbox()
		for i := 0; i < inboxCapacity+1; i++ {
			inbox.Notify(c, Notification{Kind: KindFavoritesAdded, Description: fmt.Sprintf("%d", i)})
		}

		// when
		drained := inbox.Drain()

		// then
		assert.Len(t, drained, inboxCapacity)
		assert.Equal(t, "1", drained[0].Description)
		assert.Equal(t, fmt.Sprintf("%d", inboxCapacity), drained[inboxCapacity-1].Description)
	})
}

func TestFanout(t *testing.T) {
	// setup
	c := context.TODO()
	ctrl := gomock.NewController(t)
	first := NewMockNotifier(ctrl)
	second := NewMockNotifier(ctrl)
	toast := Notification{Kind: KindCartItemRemoved, Title: "Produit supprimé"}

	// given
	first.EXPECT().Notify(gomock.Any(), toast)
	second.EXPECT().Notify(gomock.Any(), toast)

	// when
	Fanout{first, second}.Notify(c, toast)
}

func TestPublishingNotifier(t *testing.T) {
	// setup
	c := context.TODO()
	ctrl := gomock.NewController(t)
	publisher := mypublisher.NewMockPublisher(ctrl)

	t.Run("Toast is published on storefront topic", func(t *testing.T) {
		// given
		publisher.EXPECT().Publish(gomock.Any(), "storefront", storefrontevents.ToastEmitted{
			SessionUID:  "session-1",
			Kind:        "favorites.added",
			Title:       "Ajouté aux favoris",
			Description: "Panadol ajouté à vos favoris",
		}).Return(nil)

		// when
		NewPublishingNotifier(publisher, "session-1").Notify(c, Notification{
			Kind:        KindFavoritesAdded,
			Title:       "Ajouté aux favoris",
			Description: "Panadol ajouté à vos favoris",
		})
	})

	t.Run("Publish failure is swallowed", func(t *testing.T) {
		// given
		publisher.EXPECT().Publish(gomock.Any(), "storefront", gomock.Any()).Return(fmt.Errorf("outbox down"))

		// when
		NewPublishingNotifier(publisher, "session-1").Notify(c, Notification{Kind: KindCartCleared})
	})
}
