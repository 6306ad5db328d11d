// Package mylocalstorage keeps small string values per browser profile, the way a browser keeps
// them in its local storage.
package mylocalstorage

import (
	"context"

	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/lib/mystore"
)

//go:generate mockgen -source=api.go -package mylocalstorage -destination storage_mock.go Storage
type Storage interface {
	GetItem(c context.Context, profileUID string, key string) (string, bool, error)
	SetItem(c context.Context, profileUID string, key string, value string) error
	RemoveItem(c context.Context, profileUID string, key string) error
}

// New uses redis when a redis url is configured and the entity store otherwise.
func New(c context.Context, redisConfig RedisConfig) (Storage, func(), error) {
	logger := mylog.New("localstorage")

	if redisConfig.URL != "" {
		storage, err := redisConfig.New()
		if err != nil {
			return nil, nil, err
		}
		logger.Log(c, "", mylog.SeverityInfo, "Using redis local storage")
		return storage, storage.close, nil
	}

	store, cleanup, err := mystore.New[Item](c)
	if err != nil {
		return nil, nil, err
	}
	return NewStoreStorage(store), cleanup, nil
}
