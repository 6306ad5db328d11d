package storefront

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"

	"github.com/MarcGrol/pharmacare/lib/mylocalstorage"
	"github.com/MarcGrol/pharmacare/lib/mypublisher"
	"github.com/MarcGrol/pharmacare/lib/mysession"
	"github.com/MarcGrol/pharmacare/lib/mystore"
	"github.com/MarcGrol/pharmacare/lib/mytime"
	"github.com/MarcGrol/pharmacare/services/catalogapi"
	"github.com/MarcGrol/pharmacare/services/storefront/storefrontevents"
)

var (
	t0       = time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC)
	panadol  = catalogapi.Product{UID: "1", Name: "Panadol Extra", Price: decimal.RequireFromString("45.00")}
	session1 = mysession.Session{UID: "session-1", ProfileUID: "profile-1"}
	session2 = mysession.Session{UID: "session-2", ProfileUID: "profile-2"}
)

func TestRegistry(t *testing.T) {
	c := context.TODO()

	t.Run("Same session gets same stores", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, nower := setup(t, ctrl)
		nower.EXPECT().Now().Return(t0).AnyTimes()

		// then
		assert.Same(t, sut.CartStore(c, session1), sut.CartStore(c, session1))
		assert.Same(t, sut.FavoritesStore(c, session1), sut.FavoritesStore(c, session1))
		assert.NotSame(t, sut.CartStore(c, session1), sut.CartStore(c, session2))
		assert.Equal(t, 2, sut.Count())
	})

	t.Run("Toasts go to inbox and topic", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, publisher, nower := setup(t, ctrl)
		nower.EXPECT().Now().Return(t0).AnyTimes()

		// given
		publisher.EXPECT().Publish(gomock.Any(), storefrontevents.TopicName, storefrontevents.ToastEmitted{
			SessionUID:  "session-1",
			Kind:        "cart.item.added",
			Title:       "Produit ajouté",
			Description: "Panadol Extra ajouté au panier",
		}).Return(nil)

		// when
		sut.CartStore(c, session1).AddToCart(c, panadol, 1)

		// then
		assert.Len(t, sut.DrainToasts(session1), 1)
		assert.Empty(t, sut.DrainToasts(session1))
		assert.Empty(t, sut.DrainToasts(session2))
	})

	t.Run("End drops cart but favorites survive", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, publisher, nower := setup(t, ctrl)
		nower.EXPECT().Now().Return(t0).AnyTimes()
		publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

		// given
		sut.CartStore(c, session1).AddToCart(c, panadol, 2)
		sut.FavoritesStore(c, session1).ToggleFavorite(c, "1", "Panadol Extra")

		// when
		ended := sut.End(c, session1.UID)

		// then
		assert.True(t, ended)
		assert.False(t, sut.End(c, session1.UID))

		next := mysession.Session{UID: "session-3", ProfileUID: session1.ProfileUID}
		assert.Equal(t, 0, sut.CartStore(c, next).GetTotalItems())
		assert.Equal(t, []string{"1"}, sut.FavoritesStore(c, next).Favorites())
	})

	t.Run("Idle sessions expire", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()

		// setup
		sut, _, nower := setup(t, ctrl)

		// given
		nower.EXPECT().Now().Return(t0)
		sut.CartStore(c, session1)
		nower.EXPECT().Now().Return(t0.Add(90 * time.Minute))
		sut.CartStore(c, session2)

		// when
		nower.EXPECT().Now().Return(t0.Add(2*time.Hour + time.Minute))
		expired := sut.ExpireIdle(c)

		// then
		assert.Equal(t, 1, expired)
		assert.Equal(t, 1, sut.Count())
	})
}

func TestRunJanitorStopsOnCancel(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	// setup
	sut, _, _ := setup(t, ctrl)
	c, cancel := context.WithCancel(context.TODO())

	// when
	done := make(chan struct{})
	go func() {
		sut.RunJanitor(c, time.Hour)
		close(done)
	}()
	cancel()

	// then
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

func setup(t *testing.T, ctrl *gomock.Controller) (*Registry, *mypublisher.MockPublisher, *mytime.MockNower) {
	items, _, err := mystore.NewInMemoryStore[mylocalstorage.Item](context.TODO())
	assert.NoError(t, err)

	publisher := mypublisher.NewMockPublisher(ctrl)
	nower := mytime.NewMockNower(ctrl)

	return NewRegistry(mylocalstorage.NewStoreStorage(items), publisher, nower, 2*time.Hour), publisher, nower
}
