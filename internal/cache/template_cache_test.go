package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/ltalk/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// mockRedis is a mock implementation of RedisClient
type mockRedis struct {
	values  map[string]string
	getErr  error
	setErr  error
	lastTTL time.Duration
	sets    int
}

func (m *mockRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	if m.getErr != nil {
		return redis.NewStringResult("", m.getErr)
	}
	value, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(value, nil)
}

func (m *mockRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	m.sets++
	m.lastTTL = expiration
	if m.setErr != nil {
		return redis.NewStatusResult("", m.setErr)
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = string(value.([]byte))
	return redis.NewStatusResult("OK", nil)
}

// mockStore is a mock implementation of TemplateStore
type mockStore struct {
	template *models.SentenceTemplate
	err      error
	reads    int
	upserts  int
}

func (m *mockStore) GetByWordID(ctx context.Context, wordID int) (*models.SentenceTemplate, error) {
	m.reads++
	if m.err != nil {
		return nil, m.err
	}
	return m.template, nil
}

func (m *mockStore) Upsert(ctx context.Context, tpl *models.SentenceTemplate) error {
	m.upserts++
	if m.err != nil {
		return m.err
	}
	m.template = tpl
	return nil
}

func cachedValue(t *testing.T, tpl *models.SentenceTemplate) string {
	data, err := json.Marshal(tpl)
	require.NoError(t, err)
	return string(data)
}

func TestTemplateCache_GetByWordID(t *testing.T) {
	tpl := &models.SentenceTemplate{WordID: 3, Sentence: "Aš valgau ___", CorrectForm: "obuolius"}

	tests := []struct {
		name          string
		redis         *mockRedis
		store         *mockStore
		expected      *models.SentenceTemplate
		expectedReads int
		expectedSets  int
		hasError      bool
	}{
		{
			name:          "hit",
			redis:         &mockRedis{values: map[string]string{"sentence_template:3": cachedValue(t, tpl)}},
			store:         &mockStore{},
			expected:      tpl,
			expectedReads: 0,
		},
		{
			name:          "miss fills the cache",
			redis:         &mockRedis{},
			store:         &mockStore{template: tpl},
			expected:      tpl,
			expectedReads: 1,
			expectedSets:  1,
		},
		{
			name:          "miss without template",
			redis:         &mockRedis{},
			store:         &mockStore{},
			expected:      nil,
			expectedReads: 1,
		},
		{
			name:          "redis error falls through to the store",
			redis:         &mockRedis{getErr: errors.New("connection refused")},
			store:         &mockStore{template: tpl},
			expected:      tpl,
			expectedReads: 1,
			expectedSets:  1,
		},
		{
			name:          "malformed cache entry",
			redis:         &mockRedis{values: map[string]string{"sentence_template:3": "{not json"}},
			store:         &mockStore{template: tpl},
			expected:      tpl,
			expectedReads: 1,
			expectedSets:  1,
		},
		{
			name:          "store error",
			redis:         &mockRedis{},
			store:         &mockStore{err: errors.New("db error")},
			expectedReads: 1,
			hasError:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := zap.NewDevelopment()
			cache := NewTemplateCache(tt.store, tt.redis, 0, logger)

			result, err := cache.GetByWordID(context.Background(), 3)

			assert.Equal(t, tt.expectedReads, tt.store.reads)
			assert.Equal(t, tt.expectedSets, tt.redis.sets)
			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.expected == nil {
				assert.Nil(t, result)
				return
			}
			require.NotNil(t, result)
			assert.Equal(t, tt.expected.Sentence, result.Sentence)
			assert.Equal(t, tt.expected.CorrectForm, result.CorrectForm)
		})
	}
}

func TestTemplateCache_Upsert(t *testing.T) {
	tpl := &models.SentenceTemplate{WordID: 3, Sentence: "Aš valgau ___", CorrectForm: "obuolius"}

	t.Run("writes through", func(t *testing.T) {
		logger, _ := zap.NewDevelopment()
		client := &mockRedis{}
		store := &mockStore{}
		cache := NewTemplateCache(store, client, time.Hour, logger)

		require.NoError(t, cache.Upsert(context.Background(), tpl))

		assert.Equal(t, 1, store.upserts)
		assert.Equal(t, time.Hour, client.lastTTL)
		assert.Contains(t, client.values["sentence_template:3"], "obuolius")
	})

	t.Run("redis error is ignored", func(t *testing.T) {
		logger, _ := zap.NewDevelopment()
		client := &mockRedis{setErr: errors.New("connection refused")}
		cache := NewTemplateCache(&mockStore{}, client, 0, logger)

		assert.NoError(t, cache.Upsert(context.Background(), tpl))
		assert.Equal(t, DefaultTemplateTTL, client.lastTTL)
	})

	t.Run("store error skips the cache", func(t *testing.T) {
		logger, _ := zap.NewDevelopment()
		client := &mockRedis{}
		cache := NewTemplateCache(&mockStore{err: errors.New("db error")}, client, 0, logger)

		assert.Error(t, cache.Upsert(context.Background(), tpl))
		assert.Zero(t, client.sets)
	})
}
