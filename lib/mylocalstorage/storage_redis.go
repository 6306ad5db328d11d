package mylocalstorage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type RedisConfig struct {
	URL          string `envconfig:"REDIS_URL"`
	ReadTimeout  int    `envconfig:"REDIS_READ_TIMEOUT" default:"3"`
	WriteTimeout int    `envconfig:"REDIS_WRITE_TIMEOUT" default:"3"`
	DialTimeout  int    `envconfig:"REDIS_DIAL_TIMEOUT" default:"5"`
}

func (r RedisConfig) New() (*redisStorage, error) {
	opts, err := redis.ParseURL(r.URL)
	if err != nil {
		return nil, fmt.Errorf("error parsing redis url: %s", err)
	}

	opts.ReadTimeout = time.Duration(r.ReadTimeout) * time.Second
	opts.WriteTimeout = time.Duration(r.WriteTimeout) * time.Second
	opts.DialTimeout = time.Duration(r.DialTimeout) * time.Second

	client := redis.NewClient(opts)

	err = client.Ping(context.Background()).Err()
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("error connecting to redis: %s", err)
	}

	return &redisStorage{
		client: client,
	}, nil
}

type redisStorage struct {
	client *redis.Client
}

func (s *redisStorage) close() {
	s.client.Close()
}

func (s *redisStorage) GetItem(c context.Context, profileUID string, key string) (string, bool, error) {
	value, err := s.client.Get(c, itemUID(profileUID, key)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("error fetching item %s of profile %s from redis: %s", key, profileUID, err)
	}
	return value, true, nil
}

func (s *redisStorage) SetItem(c context.Context, profileUID string, key string, value string) error {
	err := s.client.Set(c, itemUID(profileUID, key), value, 0).Err()
	if err != nil {
		return fmt.Errorf("error storing item %s of profile %s in redis: %s", key, profileUID, err)
	}
	return nil
}

func (s *redisStorage) RemoveItem(c context.Context, profileUID string, key string) error {
	err := s.client.Del(c, itemUID(profileUID, key)).Err()
	if err != nil {
		return fmt.Errorf("error removing item %s of profile %s from redis: %s", key, profileUID, err)
	}
	return nil
}
