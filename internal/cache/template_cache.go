package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ltalk/backend/internal/models"
	"go.uber.org/zap"
)

const (
	templateKeyPrefix  = "sentence_template:"
	DefaultTemplateTTL = 24 * time.Hour
)

// TemplateStore is the durable storage behind the cache
type TemplateStore interface {
	GetByWordID(ctx context.Context, wordID int) (*models.SentenceTemplate, error)
	Upsert(ctx context.Context, tpl *models.SentenceTemplate) error
}

// RedisClient is the subset of *redis.Client used by the cache
type RedisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
}

// TemplateCache keeps sentence templates in Redis in front of the database
//
// Reads go to Redis first and fill it on a miss; writes go to the database first.
// Redis failures are logged and never fail a call.
type TemplateCache struct {
	store  TemplateStore
	redis  RedisClient
	ttl    time.Duration
	logger *zap.Logger
}

// NewTemplateCache creates a new template cache
func NewTemplateCache(store TemplateStore, client RedisClient, ttl time.Duration, logger *zap.Logger) *TemplateCache {
	if ttl <= 0 {
		ttl = DefaultTemplateTTL
	}
	return &TemplateCache{
		store:  store,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

// GetByWordID retrieves the template of a word
//
// If no template exists, "nil" is returned without error.
func (c *TemplateCache) GetByWordID(ctx context.Context, wordID int) (*models.SentenceTemplate, error) {
	key := templateKey(wordID)

	data, err := c.redis.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var tpl models.SentenceTemplate
		if err := json.Unmarshal(data, &tpl); err == nil {
			return &tpl, nil
		}
		c.logger.Warn("discarding malformed cached template", zap.String("key", key))
	case !errors.Is(err, redis.Nil):
		c.logger.Warn("failed to read template from redis", zap.String("key", key), zap.Error(err))
	}

	tpl, err := c.store.GetByWordID(ctx, wordID)
	if err != nil {
		return nil, fmt.Errorf("failed to get sentence template: %w", err)
	}
	if tpl != nil {
		c.set(ctx, tpl)
	}
	return tpl, nil
}

// Upsert stores the template in the database and refreshes the cached copy
func (c *TemplateCache) Upsert(ctx context.Context, tpl *models.SentenceTemplate) error {
	if err := c.store.Upsert(ctx, tpl); err != nil {
		return err
	}
	c.set(ctx, tpl)
	return nil
}

func (c *TemplateCache) set(ctx context.Context, tpl *models.SentenceTemplate) {
	data, err := json.Marshal(tpl)
	if err != nil {
		c.logger.Warn("failed to encode template", zap.Int("word_id", tpl.WordID), zap.Error(err))
		return
	}
	if err := c.redis.Set(ctx, templateKey(tpl.WordID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to write template to redis", zap.Int("word_id", tpl.WordID), zap.Error(err))
	}
}

func templateKey(wordID int) string {
	return templateKeyPrefix + strconv.Itoa(wordID)
}
