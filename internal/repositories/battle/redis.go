package battle

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KirkDiggler/rpg-sheets/internal/entities"
	"github.com/KirkDiggler/rpg-sheets/internal/errors"
	redisclient "github.com/KirkDiggler/rpg-sheets/internal/redis"
)

const (
	// Key pattern: battle:{namespace}:{battle_id}
	battleKeyPrefix = "battle:"
	defaultIdleTTL  = 12 * time.Hour
)

// RedisConfig holds the configuration for the Redis repository
type RedisConfig struct {
	Client redisclient.Client
	// IdleTTL is how long an untouched battle is kept; every write renews it
	IdleTTL time.Duration
	// Namespace scopes keys to one server process so a restarted server
	// starts with no battles
	Namespace string
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.IdleTTL < 0 {
		return errors.InvalidArgument("idle TTL cannot be negative")
	}
	return nil
}

type redisRepository struct {
	client    redisclient.Client
	ttl       time.Duration
	namespace string
}

// NewRedis creates a Redis repository for battle sessions. Sessions of an
// earlier process are invisible under a new Namespace and expire with the
// idle TTL.
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	ttl := cfg.IdleTTL
	if ttl == 0 {
		ttl = defaultIdleTTL
	}

	return &redisRepository{
		client:    cfg.Client,
		ttl:       ttl,
		namespace: cfg.Namespace,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Create stores a new battle unless the id is taken
func (r *redisRepository) Create(ctx context.Context, input *CreateInput) (*CreateOutput, error) {
	data, err := r.encode(input)
	if err != nil {
		return nil, err
	}

	created, err := r.client.SetNX(ctx, r.buildKey(input.Battle.ID), data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to store battle in Redis")
	}
	if !created {
		return nil, errors.AlreadyExists("battle already exists").
			WithMeta("battle_id", input.Battle.ID)
	}

	return &CreateOutput{Battle: input.Battle.Clone()}, nil
}

// Get retrieves a battle by ID
func (r *redisRepository) Get(ctx context.Context, input *GetInput) (*GetOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	data, err := r.client.Get(ctx, r.buildKey(input.BattleID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errors.NotFoundf("battle %s not found", input.BattleID)
		}
		return nil, errors.Wrapf(err, "failed to get battle from Redis")
	}

	var b entities.Battle
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeDataLoss, "failed to decode battle")
	}

	return &GetOutput{Battle: &b}, nil
}

// Update replaces an existing battle and renews its idle TTL
func (r *redisRepository) Update(ctx context.Context, input *UpdateInput) (*UpdateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}

	data, err := r.encode(&CreateInput{Battle: input.Battle})
	if err != nil {
		return nil, err
	}

	updated, err := r.client.SetXX(ctx, r.buildKey(input.Battle.ID), data, r.ttl).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update battle in Redis")
	}
	if !updated {
		return nil, errors.NotFoundf("battle %s not found", input.Battle.ID)
	}

	return &UpdateOutput{Battle: input.Battle.Clone()}, nil
}

// Delete removes a battle
func (r *redisRepository) Delete(ctx context.Context, input *DeleteInput) (*DeleteOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.BattleID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	deleted, err := r.client.Del(ctx, r.buildKey(input.BattleID)).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to delete battle from Redis")
	}
	if deleted == 0 {
		return nil, errors.NotFoundf("battle %s not found", input.BattleID)
	}

	return &DeleteOutput{}, nil
}

func (r *redisRepository) encode(input *CreateInput) ([]byte, error) {
	if input == nil {
		return nil, errors.InvalidArgument(errInputRequired)
	}
	if input.Battle == nil {
		return nil, errors.InvalidArgument(errBattleNil)
	}
	if input.Battle.ID == "" {
		return nil, errors.InvalidArgument(errBattleIDEmpty)
	}

	data, err := json.Marshal(input.Battle)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal battle")
	}
	return data, nil
}

// buildKey creates the Redis key for a battle
func (r *redisRepository) buildKey(battleID string) string {
	if r.namespace == "" {
		return battleKeyPrefix + battleID
	}
	return battleKeyPrefix + r.namespace + ":" + battleID
}
