package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/MarcGrol/pharmacare/lib/mylocalstorage"
	"github.com/MarcGrol/pharmacare/lib/mylog"
	"github.com/MarcGrol/pharmacare/services/notification"
)

// StorageKey is the local storage key under which a profile keeps its favorites.
const StorageKey = "pharmaCare_favorites"

// Store keeps the favorites of one session and writes every change through to the
// local storage of its profile.
type Store struct {
	sync.Mutex
	set        Set
	profileUID string
	storage    mylocalstorage.Storage
	notifier   notification.Notifier
	logger     mylog.Logger
}

// NewStore hydrates from local storage. Missing or unreadable data starts an empty set.
func NewStore(c context.Context, storage mylocalstorage.Storage, profileUID string, notifier notification.Notifier) *Store {
	s := &Store{
		profileUID: profileUID,
		storage:    storage,
		notifier:   notifier,
		logger:     mylog.New("favorites"),
	}
	s.set = s.load(c)
	return s
}

func (s *Store) load(c context.Context) Set {
	value, found, err := s.storage.GetItem(c, s.profileUID, StorageKey)
	if err != nil {
		s.logger.Log(c, s.profileUID, mylog.SeverityWarn, "Error reading favorites: %s", err)
		return NewSet()
	}
	if !found {
		return NewSet()
	}

	uids := []string{}
	err = json.Unmarshal([]byte(value), &uids)
	if err != nil {
		s.logger.Log(c, s.profileUID, mylog.SeverityWarn, "Ignoring corrupt favorites %q: %s", value, err)
		return NewSet()
	}
	return NewSet(uids...)
}

// save failures are logged only: the in-memory set stays the truth for the session.
func (s *Store) save(c context.Context) {
	jsonBytes, err := json.Marshal(s.set.UIDs())
	if err != nil {
		s.logger.Log(c, s.profileUID, mylog.SeverityError, "Error serializing favorites: %s", err)
		return
	}
	err = s.storage.SetItem(c, s.profileUID, StorageKey, string(jsonBytes))
	if err != nil {
		s.logger.Log(c, s.profileUID, mylog.SeverityError, "Error writing favorites: %s", err)
	}
}

func (s *Store) AddToFavorites(c context.Context, productUID string) {
	s.Lock()
	defer s.Unlock()

	s.set = s.set.Add(productUID)
	s.save(c)
}

func (s *Store) RemoveFromFavorites(c context.Context, productUID string) {
	s.Lock()
	defer s.Unlock()

	s.set = s.set.Remove(productUID)
	s.save(c)
}

// ToggleFavorite returns whether the product is a favorite afterwards.
func (s *Store) ToggleFavorite(c context.Context, productUID string, displayName string) bool {
	s.Lock()
	defer s.Unlock()

	name := displayName
	if name == "" {
		name = "Produit"
	}

	if s.set.Contains(productUID) {
		s.set = s.set.Remove(productUID)
		s.save(c)
		s.notifier.Notify(c, notification.Notification{
			Kind:        notification.KindFavoritesRemoved,
			Title:       "Retiré des favoris",
			Description: fmt.Sprintf("%s retiré de vos favoris", name),
		})
		return false
	}

	s.set = s.set.Add(productUID)
	s.save(c)
	s.notifier.Notify(c, notification.Notification{
		Kind:        notification.KindFavoritesAdded,
		Title:       "Ajouté aux favoris",
		Description: fmt.Sprintf("%s ajouté à vos favoris", name),
	})
	return true
}

func (s *Store) IsFavorite(productUID string) bool {
	s.Lock()
	defer s.Unlock()

	return s.set.Contains(productUID)
}

func (s *Store) GetFavoritesCount() int {
	s.Lock()
	defer s.Unlock()

	return s.set.Len()
}

func (s *Store) Favorites() []string {
	s.Lock()
	defer s.Unlock()

	return s.set.UIDs()
}
