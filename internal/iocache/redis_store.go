package iocache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rotnitxe/kpknfit/internal/contract"
	"github.com/rotnitxe/kpknfit/schema"
)

const (
	redisTimeout  = 2 * time.Second
	redisEntryTTL = 7 * 24 * time.Hour
	redisScanSize = 500
)

// redisKV is the subset of the go-redis client the memo store needs.
type redisKV interface {
	HSet(ctx context.Context, key string, values ...any) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
	Scan(ctx context.Context, cursor uint64, match string, count int64) *redis.ScanCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Close() error
}

// RedisStore keeps memoized results in Redis hashes that expire after a week.
type RedisStore struct {
	client redisKV
	prefix string
}

var _ contract.CacheStore = &RedisStore{} // Compile-time check

// NewRedisStore connects to Redis. connStr is either a redis:// URL or host:port.
func NewRedisStore(connStr, namespace string) (*RedisStore, error) {
	opts, err := redisOptions(connStr)
	if err != nil {
		return nil, err
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis database. Check that the server is running and connection parameters are valid: %w", err)
	}
	return newRedisStoreWithClient(client, namespace), nil
}

func newRedisStoreWithClient(client redisKV, namespace string) *RedisStore {
	return &RedisStore{client: client, prefix: "kpkn:" + namespace + ":"}
}

// redisOptions parses a redis:// URL or a bare host:port address.
func redisOptions(connStr string) (*redis.Options, error) {
	if strings.HasPrefix(connStr, "redis://") || strings.HasPrefix(connStr, "rediss://") {
		opts, err := redis.ParseURL(connStr)
		if err != nil {
			return nil, fmt.Errorf("invalid redis URL: %w", err)
		}
		return opts, nil
	}
	if connStr == "" {
		return nil, fmt.Errorf("a connection string is required when using %s backend", schema.RedisBackend)
	}
	return &redis.Options{Addr: connStr}, nil
}

// Get retrieves a value by key from the store.
func (rs *RedisStore) Get(key string) ([]byte, int, int64, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	fields, err := rs.client.HGetAll(ctx, rs.prefix+key).Result()
	if err != nil {
		return nil, 0, 0, err
	}
	if len(fields) == 0 {
		return nil, 0, 0, contract.ErrNotFound
	}
	version, err := strconv.Atoi(fields["version"])
	if err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt memo version for %s: %w", key, err)
	}
	ts, err := strconv.ParseInt(fields["ts"], 10, 64)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("corrupt memo timestamp for %s: %w", key, err)
	}
	return []byte(fields["value"]), version, ts, nil
}

// Set stores a key/value pair and refreshes its expiry.
func (rs *RedisStore) Set(key string, value []byte, version int, timestamp int64) error {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	k := rs.prefix + key
	if err := rs.client.HSet(ctx, k, "value", value, "version", version, "ts", timestamp).Err(); err != nil {
		return err
	}
	return rs.client.Expire(ctx, k, redisEntryTTL).Err()
}

// Clear deletes every key under the store prefix.
func (rs *RedisStore) Clear() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*redisTimeout)
	defer cancel()
	return rs.scan(ctx, func(keys []string) error {
		return rs.client.Del(ctx, keys...).Err()
	})
}

// GetStatus counts the entries under the store prefix.
func (rs *RedisStore) GetStatus() (schema.CacheStatus, error) {
	status := schema.CacheStatus{Backend: string(schema.RedisBackend), Connected: true}

	ctx, cancel := context.WithTimeout(context.Background(), 5*redisTimeout)
	defer cancel()
	err := rs.scan(ctx, func(keys []string) error {
		for _, k := range keys {
			fields, err := rs.client.HGetAll(ctx, k).Result()
			if err != nil {
				return err
			}
			ts, err := strconv.ParseInt(fields["ts"], 10, 64)
			if err != nil {
				continue
			}
			t := time.Unix(ts, 0)
			if status.TotalEntries == 0 || t.After(status.LastEntryTime) {
				status.LastEntryTime = t
			}
			if status.TotalEntries == 0 || t.Before(status.OldestEntryTime) {
				status.OldestEntryTime = t
			}
			status.TotalEntries++
			status.TableSizeBytes += int64(len(fields["value"]))
		}
		return nil
	})
	if err != nil {
		return status, fmt.Errorf("failed to scan redis keys: %w", err)
	}
	return status, nil
}

// Close closes the client.
func (rs *RedisStore) Close() error {
	return rs.client.Close()
}

// scan walks every key under the prefix in batches.
func (rs *RedisStore) scan(ctx context.Context, fn func(keys []string) error) error {
	var cursor uint64
	for {
		keys, next, err := rs.client.Scan(ctx, cursor, rs.prefix+"*", redisScanSize).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := fn(keys); err != nil {
				return err
			}
		}
		if next == 0 {
			return nil
		}
		cursor = next
	}
}
