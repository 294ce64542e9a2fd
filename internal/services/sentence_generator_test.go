package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ltalk/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestSentenceGenerator_GenerateFillInGap(t *testing.T) {
	word := models.Word{ID: 3, Word: "obuolius", Infinitive: "obuolys", Translation: "apples"}
	cached := &models.SentenceTemplate{WordID: 3, Sentence: "Aš valgau ___ kasdien", CorrectForm: "obuolius"}

	tests := []struct {
		name             string
		model            *mockTextGenerator
		templates        *mockTemplateRepository
		priorCalls       int
		expectedSource   GapSource
		expectedSentence string
		expectedForm     string
		expectedCalls    int32
		expectedUpserts  int
	}{
		{
			name: "model output with prose",
			model: &mockTextGenerator{
				response: "Sure! ```json\n{\"sentence_template\": \"Aš mėgstu ___ labai\", \"correct_form\": \"obuolius\"}\n```",
			},
			templates:        &mockTemplateRepository{},
			expectedSource:   GapSourceModel,
			expectedSentence: "Aš mėgstu ___ labai",
			expectedForm:     "obuolius",
			expectedCalls:    1,
			expectedUpserts:  1,
		},
		{
			name:             "model error falls back to cache",
			model:            &mockTextGenerator{err: errors.New("model unavailable")},
			templates:        &mockTemplateRepository{templates: map[int]*models.SentenceTemplate{3: cached}},
			expectedSource:   GapSourceCache,
			expectedSentence: cached.Sentence,
			expectedForm:     cached.CorrectForm,
			expectedCalls:    1,
		},
		{
			name:             "model error without cache uses placeholder",
			model:            &mockTextGenerator{err: errors.New("model unavailable")},
			templates:        &mockTemplateRepository{},
			expectedSource:   GapSourcePlaceholder,
			expectedSentence: "Fill in the word: ___ (obuolius)",
			expectedForm:     "obuolius",
			expectedCalls:    1,
		},
		{
			name:             "unparseable output uses placeholder",
			model:            &mockTextGenerator{response: "I cannot help with that"},
			templates:        &mockTemplateRepository{},
			expectedSource:   GapSourcePlaceholder,
			expectedSentence: "Fill in the word: ___ (obuolius)",
			expectedForm:     "obuolius",
			expectedCalls:    1,
		},
		{
			name:             "sentence without gap is rejected",
			model:            &mockTextGenerator{response: `{"sentence_template": "Aš valgau obuolius", "correct_form": "obuolius"}`},
			templates:        &mockTemplateRepository{templates: map[int]*models.SentenceTemplate{3: cached}},
			expectedSource:   GapSourceCache,
			expectedSentence: cached.Sentence,
			expectedForm:     cached.CorrectForm,
			expectedCalls:    1,
		},
		{
			name:             "near limit with cache skips the model",
			model:            &mockTextGenerator{response: `{"sentence_template": "Aš mėgstu ___ labai", "correct_form": "obuolius"}`},
			templates:        &mockTemplateRepository{templates: map[int]*models.SentenceTemplate{3: cached}},
			priorCalls:       12,
			expectedSource:   GapSourceCache,
			expectedSentence: cached.Sentence,
			expectedForm:     cached.CorrectForm,
			expectedCalls:    0,
		},
		{
			name:             "near limit without cache still calls the model",
			model:            &mockTextGenerator{response: `{"sentence_template": "Aš mėgstu ___ labai", "correct_form": "obuolius"}`},
			templates:        &mockTemplateRepository{},
			priorCalls:       12,
			expectedSource:   GapSourceModel,
			expectedSentence: "Aš mėgstu ___ labai",
			expectedForm:     "obuolius",
			expectedCalls:    1,
			expectedUpserts:  1,
		},
		{
			name:             "cache read error is treated as a miss",
			model:            &mockTextGenerator{err: errors.New("model unavailable")},
			templates:        &mockTemplateRepository{getErr: errors.New("db error")},
			expectedSource:   GapSourcePlaceholder,
			expectedSentence: "Fill in the word: ___ (obuolius)",
			expectedForm:     "obuolius",
			expectedCalls:    1,
		},
		{
			name:             "upsert error keeps the model result",
			model:            &mockTextGenerator{response: `{"sentence_template": "Aš mėgstu ___ labai", "correct_form": "obuolius"}`},
			templates:        &mockTemplateRepository{upsertErr: errors.New("db error")},
			expectedSource:   GapSourceModel,
			expectedSentence: "Aš mėgstu ___ labai",
			expectedForm:     "obuolius",
			expectedCalls:    1,
			expectedUpserts:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := zap.NewDevelopment()
			limiter := newTestLimiter(newFakeClock())
			fillLimiter(limiter, tt.priorCalls)
			gen := NewSentenceGenerator(tt.model, tt.templates, limiter, "", logger)

			result := gen.GenerateFillInGap(context.Background(), word)

			assert.Equal(t, tt.expectedSource, result.Source)
			assert.Equal(t, tt.expectedSentence, result.Sentence)
			assert.Equal(t, tt.expectedForm, result.CorrectForm)
			assert.Equal(t, tt.expectedCalls, tt.model.calls.Load())
			assert.Equal(t, tt.expectedUpserts, tt.templates.upserts)
		})
	}
}

func TestSentenceGenerator_CachedAfterSafeLimit(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	limiter := newTestLimiter(newFakeClock())
	model := &mockTextGenerator{response: `{"sentence_template": "Čia yra ___ namas", "correct_form": "didelis"}`}
	templates := &mockTemplateRepository{}
	gen := NewSentenceGenerator(model, templates, limiter, "", logger)

	words := testWords(13)
	for _, word := range words[:12] {
		assert.Equal(t, GapSourceModel, gen.GenerateFillInGap(context.Background(), word).Source)
	}

	// the 13th word has no template, so the model is still called
	assert.Equal(t, GapSourceModel, gen.GenerateFillInGap(context.Background(), words[12]).Source)

	// repeated words are now served from cache
	for _, word := range words[:3] {
		assert.Equal(t, GapSourceCache, gen.GenerateFillInGap(context.Background(), word).Source)
	}
	assert.Equal(t, int32(13), model.calls.Load())
}

// gatedTemplates holds every reader until all of them have looked up their template
type gatedTemplates struct {
	*mockTemplateRepository
	ready sync.WaitGroup
}

func (g *gatedTemplates) GetByWordID(ctx context.Context, wordID int) (*models.SentenceTemplate, error) {
	tpl, err := g.mockTemplateRepository.GetByWordID(ctx, wordID)
	g.ready.Done()
	g.ready.Wait()
	return tpl, err
}

func TestSentenceGenerator_ConcurrentCallersRespectSafeLimit(t *testing.T) {
	const callers = 6

	limiter := newTestLimiter(newFakeClock())
	fillLimiter(limiter, 11)

	words := testWords(callers)
	stored := make(map[int]*models.SentenceTemplate, callers)
	for _, word := range words {
		stored[word.ID] = &models.SentenceTemplate{WordID: word.ID, Sentence: "Čia yra ___ dabar", CorrectForm: word.Word}
	}
	templates := &gatedTemplates{mockTemplateRepository: &mockTemplateRepository{templates: stored}}
	templates.ready.Add(callers)

	model := &mockTextGenerator{response: `{"sentence_template": "Aš matau ___ čia", "correct_form": "žodį"}`}
	gen := NewSentenceGenerator(model, templates, limiter, "", zap.NewNop())

	sources := make([]GapSource, callers)
	var wg sync.WaitGroup
	for i, word := range words {
		wg.Add(1)
		go func(i int, word models.Word) {
			defer wg.Done()
			sources[i] = gen.GenerateFillInGap(context.Background(), word).Source
		}(i, word)
	}
	wg.Wait()

	assert.LessOrEqual(t, model.calls.Load(), int32(1))
	assert.LessOrEqual(t, limiter.Recent(), 12)

	cachedCount := 0
	for _, source := range sources {
		if source == GapSourceCache {
			cachedCount++
		}
	}
	assert.GreaterOrEqual(t, cachedCount, callers-1)
}
