package mylocalstorage

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MarcGrol/pharmacare/lib/mystore"
)

func TestInMemoryStorage(t *testing.T) {
	StorageContract{
		storage: func() Storage {
			store, _, _ := mystore.NewInMemoryStore[Item](context.Background())
			return NewStoreStorage(store)
		},
	}.Test(t)
}

func TestRedisStorage(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}

	StorageContract{
		storage: func() Storage {
			storage, err := RedisConfig{URL: url, ReadTimeout: 3, WriteTimeout: 3, DialTimeout: 5}.New()
			assert.NoError(t, err)
			return storage
		},
	}.Test(t)
}

type StorageContract struct {
	storage func() Storage
}

func (c StorageContract) Test(t *testing.T) {
	t.Run("can set, get and remove an item", func(t *testing.T) {
		var (
			sut     = c.storage()
			ctx     = context.Background()
			profile = "contract-profile-1"
			key     = "pharmaCare_favorites"
		)

		assert.NoError(t, sut.SetItem(ctx, profile, key, `["1","3"]`))

		value, found, err := sut.GetItem(ctx, profile, key)
		assert.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, `["1","3"]`, value)

		assert.NoError(t, sut.SetItem(ctx, profile, key, `["3"]`))
		value, _, err = sut.GetItem(ctx, profile, key)
		assert.NoError(t, err)
		assert.Equal(t, `["3"]`, value)

		assert.NoError(t, sut.RemoveItem(ctx, profile, key))
		_, found, err = sut.GetItem(ctx, profile, key)
		assert.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("keeps profiles apart", func(t *testing.T) {
		var (
			sut = c.storage()
			ctx = context.Background()
			key = "pharmaCare_favorites"
		)

		assert.NoError(t, sut.SetItem(ctx, "contract-profile-2", key, `["1"]`))

		_, found, err := sut.GetItem(ctx, "contract-profile-3", key)
		assert.NoError(t, err)
		assert.False(t, found)

		assert.NoError(t, sut.RemoveItem(ctx, "contract-profile-2", key))
	})

	t.Run("removing an absent item is no error", func(t *testing.T) {
		var (
			sut = c.storage()
			ctx = context.Background()
		)

		assert.NoError(t, sut.RemoveItem(ctx, "contract-profile-4", "unknown"))
	})
}
