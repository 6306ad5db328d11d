package mystore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"cloud.google.com/go/datastore"

	"github.com/MarcGrol/pharmacare/lib/mylog"
)

const (
	maxTransactionAttempts = 3
	listLimit              = 500
)

type gcloudStore[T any] struct {
	client *datastore.Client
	kind   string
	logger mylog.Logger
}

func newGcloudStore[T any](c context.Context) (*gcloudStore[T], func(), error) {
	client, err := datastore.NewClient(c, os.Getenv("GOOGLE_CLOUD_PROJECT"))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating datastore-client: %s", err)
	}

	kind := kindOf[T]()
	return &gcloudStore[T]{
			client: client,
			kind:   kind,
			logger: mylog.New("store-" + strings.ToLower(kind)),
		}, func() {
			client.Close()
		}, nil
}

// kindOf names the datastore kind after the unqualified type name.
func kindOf[T any]() string {
	kind := fmt.Sprintf("%T", *new(T))
	if idx := strings.LastIndex(kind, "."); idx >= 0 {
		kind = kind[idx+1:]
	}
	return kind
}

func (s *gcloudStore[T]) key(uid string) *datastore.Key {
	return datastore.NameKey(s.kind, uid, nil)
}

func transactionFrom(c context.Context) *datastore.Transaction {
	tx, _ := c.Value(ctxTransactionKey{}).(*datastore.Transaction)
	return tx
}

// RunInTransaction retries on contention, so f must be idempotent.
func (s *gcloudStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if transactionFrom(c) != nil {
		return f(c)
	}

	var err error
	for attempt := 1; attempt <= maxTransactionAttempts; attempt++ {
		err = s.runOnce(c, f)
		if !errors.Is(err, datastore.ErrConcurrentTransaction) {
			return err
		}
		s.logger.Log(c, "", mylog.SeverityWarn, "Concurrent transaction on %s (attempt %d of %d)", s.kind, attempt, maxTransactionAttempts)
	}
	return err
}

func (s *gcloudStore[T]) runOnce(c context.Context, f func(c context.Context) error) error {
	tx, err := s.client.NewTransaction(c)
	if err != nil {
		return fmt.Errorf("error creating transaction: %s", err)
	}

	err = f(context.WithValue(c, ctxTransactionKey{}, tx))
	if err != nil {
		rollbackErr := tx.Rollback()
		if rollbackErr != nil {
			s.logger.Log(c, "", mylog.SeverityError, "Error rolling back %s transaction: %s", s.kind, rollbackErr)
		}
		return err
	}

	_, err = tx.Commit()
	if err != nil {
		s.logger.Log(c, "", mylog.SeverityError, "Error committing %s transaction: %s", s.kind, err)
		return err
	}
	return nil
}

func (s *gcloudStore[T]) Put(c context.Context, uid string, value T) error {
	var err error
	if tx := transactionFrom(c); tx != nil {
		_, err = tx.Put(s.key(uid), &value)
	} else {
		_, err = s.client.Put(c, s.key(uid), &value)
	}
	if err != nil {
		return fmt.Errorf("error storing %s %s: %s", s.kind, uid, err)
	}
	return nil
}

func (s *gcloudStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	value := new(T)

	var err error
	if tx := transactionFrom(c); tx != nil {
		err = tx.Get(s.key(uid), value)
	} else {
		err = s.client.Get(c, s.key(uid), value)
	}
	if errors.Is(err, datastore.ErrNoSuchEntity) {
		return *value, false, nil
	}
	if err != nil {
		return *value, false, fmt.Errorf("error fetching %s %s: %s", s.kind, uid, err)
	}
	return *value, true, nil
}

func (s *gcloudStore[T]) Delete(c context.Context, uid string) (bool, error) {
	_, exists, err := s.Get(c, uid)
	if err != nil || !exists {
		return false, err
	}

	if tx := transactionFrom(c); tx != nil {
		err = tx.Delete(s.key(uid))
	} else {
		err = s.client.Delete(c, s.key(uid))
	}
	if err != nil {
		return false, fmt.Errorf("error deleting %s %s: %s", s.kind, uid, err)
	}
	return true, nil
}

func (s *gcloudStore[T]) List(c context.Context) ([]T, error) {
	return s.getAll(c, datastore.NewQuery(s.kind).Limit(listLimit))
}

func (s *gcloudStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	q := datastore.NewQuery(s.kind)
	for _, f := range filters {
		q = q.FilterField(f.Field, f.Compare, f.Value)
	}
	if orderByField != "" {
		q = q.Order(orderByField)
	}
	return s.getAll(c, q)
}

func (s *gcloudStore[T]) getAll(c context.Context, q *datastore.Query) ([]T, error) {
	if tx := transactionFrom(c); tx != nil {
		q = q.Transaction(tx)
	}

	found := []T{}
	_, err := s.client.GetAll(c, q, &found)
	if err != nil {
		return nil, fmt.Errorf("error querying %s: %s", s.kind, err)
	}
	return found, nil
}
