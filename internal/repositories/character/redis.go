package character

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-sheets/internal/redis"
)

const (
	characterKeyPrefix = "character:"
	indexKeyPrefix     = "character:index:"
)

type redisRepository struct {
	client redisclient.Client
}

// RedisConfig contains configuration for the Redis character repository.
type RedisConfig struct {
	Client redisclient.Client
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed character repository. Each record is a
// string key; a per-category sorted set with all scores 0 keeps keys in
// lexicographic order for List.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &redisRepository{
		client: cfg.Client,
	}, nil
}

func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	stored, key, err := prepareSave(input)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal character")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, recordKey(stored.Type, key), data, 0)
	pipe.ZAdd(ctx, indexKey(stored.Type), redis.Z{Score: 0, Member: key})

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to save character %s", key)
	}

	slog.DebugContext(ctx, "character saved",
		"backend", "redis",
		"category", stored.Type,
		"key", key)

	return &SaveOutput{Character: stored, Key: key}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	key, err := validateSelector(input.Category, input.Name)
	if err != nil {
		return nil, err
	}

	result, err := r.client.Get(ctx, recordKey(input.Category, key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("character %s not found", key).
				WithMeta("category", string(input.Category))
		}
		return nil, errors.Wrapf(err, "failed to get character %s", key)
	}

	c, err := decodeDocument(result, input.Category)
	if err != nil {
		return nil, err
	}
	return &GetOutput{Character: c}, nil
}

func (r *redisRepository) Delete(ctx context.Context, input DeleteInput) (*DeleteOutput, error) {
	key, err := validateSelector(input.Category, input.Name)
	if err != nil {
		return nil, err
	}

	pipe := r.client.TxPipeline()
	del := pipe.Del(ctx, recordKey(input.Category, key))
	pipe.ZRem(ctx, indexKey(input.Category), key)

	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to delete character %s", key)
	}

	if del.Val() == 0 {
		return nil, errors.NotFoundf("character %s not found", key).
			WithMeta("category", string(input.Category))
	}

	slog.DebugContext(ctx, "character deleted",
		"backend", "redis",
		"category", input.Category,
		"key", key)

	return &DeleteOutput{}, nil
}

func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	if err := validateCategory(input.Category); err != nil {
		return nil, err
	}

	keys, err := r.client.ZRange(ctx, indexKey(input.Category), 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list %s", input.Category)
	}

	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = entities.NameFromKey(key)
	}
	return &ListOutput{Names: names}, nil
}

func recordKey(category entities.Category, key string) string {
	return characterKeyPrefix + string(category) + ":" + key
}

func indexKey(category entities.Category) string {
	return indexKeyPrefix + string(category)
}
