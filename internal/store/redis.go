package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iwvelando/loan-amortizer/pkg/constants"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// RedisConfig selects and configures the Redis plan store.
type RedisConfig struct {
	Address   string `yaml:"address"`
	Password  string `yaml:"password"`
	DB        int    `yaml:"db"`
	KeyPrefix string `yaml:"keyPrefix"`
	TTL       string `yaml:"ttl"` // e.g. "720h"; empty keeps plans forever
}

// Enabled reports whether a Redis address is configured.
func (c RedisConfig) Enabled() bool {
	return c.Address != ""
}

// NewClient builds a Redis client from the configuration.
func (c RedisConfig) NewClient() *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     c.Address,
		Password: c.Password,
		DB:       c.DB,
	})
}

// RedisStore keeps encoded plans in Redis under a key prefix.
type RedisStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
	now    func() time.Time
	logger *zap.Logger
}

// NewRedisStore wraps a Redis client. An empty prefix uses the default.
func NewRedisStore(client redis.Cmdable, prefix string, ttl time.Duration, logger *zap.Logger) *RedisStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	if prefix == "" {
		prefix = constants.DefaultPlanKeyPrefix
	}
	return &RedisStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
		now:    time.Now,
		logger: logger,
	}
}

// NewRedisStoreFromConfig creates the client and store described by cfg.
func NewRedisStoreFromConfig(cfg RedisConfig, logger *zap.Logger) (*RedisStore, error) {
	var ttl time.Duration
	if cfg.TTL != "" {
		parsed, err := time.ParseDuration(cfg.TTL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis ttl %q: %w", cfg.TTL, err)
		}
		ttl = parsed
	}
	return NewRedisStore(cfg.NewClient(), cfg.KeyPrefix, ttl, logger), nil
}

func (r *RedisStore) key(id string) string {
	return r.prefix + id
}

// Ping checks connectivity to Redis.
func (r *RedisStore) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Save stores the plan and returns its ID.
func (r *RedisStore) Save(ctx context.Context, plan Plan) (string, error) {
	plan, data, err := prepare(plan, r.now)
	if err != nil {
		return "", err
	}
	if err := r.client.Set(ctx, r.key(plan.ID), data, r.ttl).Err(); err != nil {
		return "", fmt.Errorf("failed to save plan %s: %w", plan.ID, err)
	}
	r.logger.Debug("saved plan",
		zap.String("op", "store.RedisStore.Save"),
		zap.String("key", r.key(plan.ID)),
		zap.Duration("ttl", r.ttl),
	)
	return plan.ID, nil
}

// Load returns the plan stored under id.
func (r *RedisStore) Load(ctx context.Context, id string) (Plan, error) {
	data, err := r.client.Get(ctx, r.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Plan{}, ErrPlanNotFound
	}
	if err != nil {
		return Plan{}, fmt.Errorf("failed to load plan %s: %w", id, err)
	}
	return decode(id, data)
}

// Delete removes the plan stored under id.
func (r *RedisStore) Delete(ctx context.Context, id string) error {
	removed, err := r.client.Del(ctx, r.key(id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete plan %s: %w", id, err)
	}
	if removed == 0 {
		return ErrPlanNotFound
	}
	return nil
}
