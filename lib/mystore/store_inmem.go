package mystore

import (
	"context"
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"
)

type InMemoryStore[T any] struct {
	sync.Mutex
	Items map[string]T
}

func NewInMemoryStore[T any](c context.Context) (*InMemoryStore[T], func(), error) {
	return &InMemoryStore[T]{
		Items: make(map[string]T),
	}, func() {}, nil
}

// RunInTransaction holds the lock of this store only. Writes to other stores from within f take their own lock.
func (s *InMemoryStore[T]) RunInTransaction(c context.Context, f func(c context.Context) error) error {
	if s.inTransaction(c) {
		return f(c)
	}

	s.Lock()
	defer s.Unlock()

	return f(context.WithValue(c, ctxTransactionKey{}, s))
}

func (s *InMemoryStore[T]) inTransaction(c context.Context) bool {
	owner, ok := c.Value(ctxTransactionKey{}).(*InMemoryStore[T])
	return ok && owner == s
}

func (s *InMemoryStore[T]) lockUnlessTransactional(c context.Context) func() {
	if s.inTransaction(c) {
		return func() {}
	}
	s.Lock()
	return s.Unlock
}

func (s *InMemoryStore[T]) Put(c context.Context, uid string, value T) error {
	defer s.lockUnlessTransactional(c)()

	s.Items[uid] = value

	return nil
}

func (s *InMemoryStore[T]) Get(c context.Context, uid string) (T, bool, error) {
	defer s.lockUnlessTransactional(c)()

	result, exists := s.Items[uid]

	return result, exists, nil
}

func (s *InMemoryStore[T]) Delete(c context.Context, uid string) (bool, error) {
	defer s.lockUnlessTransactional(c)()

	_, exists := s.Items[uid]
	delete(s.Items, uid)

	return exists, nil
}

func (s *InMemoryStore[T]) List(c context.Context) ([]T, error) {
	defer s.lockUnlessTransactional(c)()

	result := make([]T, 0, len(s.Items))
	for _, v := range s.Items {
		result = append(result, v)
	}

	return result, nil
}

// Query supports equality filters on exported fields and ordering on a string, int or time field.
func (s *InMemoryStore[T]) Query(c context.Context, filters []Filter, orderByField string) ([]T, error) {
	all, err := s.List(c)
	if err != nil {
		return nil, err
	}

	result := make([]T, 0, len(all))
	for _, item := range all {
		matches, err := matchesAll(item, filters)
		if err != nil {
			return nil, err
		}
		if matches {
			result = append(result, item)
		}
	}

	if orderByField != "" {
		sort.SliceStable(result, func(i, j int) bool {
			return less(fieldOf(result[i], orderByField), fieldOf(result[j], orderByField))
		})
	}

	return result, nil
}

func matchesAll(item any, filters []Filter) (bool, error) {
	for _, f := range filters {
		if f.Compare != "=" {
			return false, fmt.Errorf("compare operator %q not supported in memory", f.Compare)
		}
		value := fieldOf(item, f.Field)
		if !value.IsValid() || !reflect.DeepEqual(value.Interface(), f.Value) {
			return false, nil
		}
	}
	return true, nil
}

func fieldOf(item any, name string) reflect.Value {
	v := reflect.Indirect(reflect.ValueOf(item))
	if v.Kind() != reflect.Struct {
		return reflect.Value{}
	}
	return v.FieldByName(name)
}

func less(a, b reflect.Value) bool {
	if !a.IsValid() || !b.IsValid() {
		return false
	}
	switch a.Kind() {
	case reflect.String:
		return a.String() < b.String()
	case reflect.Int, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	}
	at, aok := a.Interface().(time.Time)
	bt, bok := b.Interface().(time.Time)
	if aok && bok {
		return at.Before(bt)
	}
	return false
}
