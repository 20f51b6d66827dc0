package share

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/coocood/freecache"
	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	keyPrefix = "share::"

	megabyte           = 1024 * 1024
	defaultCacheSizeMB = 16
	localCacheExpire   = 10 * 60 // seconds
	DefaultTTL         = 30 * 24 * time.Hour
	maxStoredInputSize = 16 * 1024
)

var ErrShareNotFound = errors.New("share not found")

// Store keeps shared results in redis, with a small in-process cache in front
// for the read path, since shared links get opened many times.
type Store struct {
	redisClient *redis.Client
	cache       *freecache.Cache
	ttl         time.Duration
}

func NewStore(redisClient *redis.Client, ttl time.Duration, cacheSizeMB int) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if cacheSizeMB <= 0 {
		cacheSizeMB = defaultCacheSizeMB
	}
	return &Store{
		redisClient: redisClient,
		cache:       freecache.NewCache(cacheSizeMB * megabyte),
		ttl:         ttl,
	}
}

func (s *Store) Save(ctx context.Context, record *Record) error {
	recordJson, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("marshal share record: %w", err)
	}

	if err := s.redisClient.Set(ctx, keyPrefix+record.ID, recordJson, s.ttl).Err(); err != nil {
		return fmt.Errorf("store share %s: %w", record.ID, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	record := &Record{}

	cacheKey := []byte(keyPrefix + id)
	if recordBytes, err := s.cache.Get(cacheKey); err == nil {
		if err := json.Unmarshal(recordBytes, record); err == nil {
			return record, nil
		} else {
			log.Errorf("unmarshal share %s from local cache: %s", id, err)
		}
	}

	recordJson, err := s.redisClient.Get(ctx, keyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrShareNotFound
		}
		return nil, fmt.Errorf("get share %s: %w", id, err)
	}

	if err := json.Unmarshal(recordJson, record); err != nil {
		return nil, fmt.Errorf("unmarshal share %s: %w", id, err)
	}

	if err := s.cache.Set(cacheKey, recordJson, localCacheExpire); err != nil {
		log.Errorf("set share %s in local cache: %s", id, err)
	}

	return record, nil
}
