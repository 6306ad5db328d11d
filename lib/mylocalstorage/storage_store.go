package mylocalstorage

import (
	"context"
	"fmt"

	"github.com/MarcGrol/pharmacare/lib/mystore"
)

type Item struct {
	ProfileUID string
	Key        string
	Value      string `datastore:",noindex"`
}

type storeStorage struct {
	store mystore.Store[Item]
}

func NewStoreStorage(store mystore.Store[Item]) Storage {
	return &storeStorage{
		store: store,
	}
}

func itemUID(profileUID string, key string) string {
	return profileUID + ":" + key
}

func (s *storeStorage) GetItem(c context.Context, profileUID string, key string) (string, bool, error) {
	item, found, err := s.store.Get(c, itemUID(profileUID, key))
	if err != nil {
		return "", false, fmt.Errorf("error fetching item %s of profile %s: %s", key, profileUID, err)
	}
	if !found {
		return "", false, nil
	}
	return item.Value, true, nil
}

func (s *storeStorage) SetItem(c context.Context, profileUID string, key string, value string) error {
	err := s.store.Put(c, itemUID(profileUID, key), Item{
		ProfileUID: profileUID,
		Key:        key,
		Value:      value,
	})
	if err != nil {
		return fmt.Errorf("error storing item %s of profile %s: %s", key, profileUID, err)
	}
	return nil
}

func (s *storeStorage) RemoveItem(c context.Context, profileUID string, key string) error {
	_, err := s.store.Delete(c, itemUID(profileUID, key))
	if err != nil {
		return fmt.Errorf("error removing item %s of profile %s: %s", key, profileUID, err)
	}
	return nil
}
