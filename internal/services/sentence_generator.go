package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ltalk/backend/internal/genai"
	"github.com/ltalk/backend/internal/models"
	"go.uber.org/zap"
)

// TextGenerator is the interface that wraps the text generation call of a generative model
type TextGenerator interface {
	// GenerateText sends "prompt" to the model and returns its raw text answer
	//
	// The answer may contain prose around any requested JSON.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// SentenceTemplateRepository is the interface that wraps methods for SentenceTemplate data access
type SentenceTemplateRepository interface {
	// GetByWordID retrieves the cached gap sentence of a word
	//
	// If no template exists, "nil" is returned without error.
	GetByWordID(ctx context.Context, wordID int) (*models.SentenceTemplate, error)
	// Upsert stores the template of a word, replacing the previous one
	Upsert(ctx context.Context, tpl *models.SentenceTemplate) error
}

// GapSource tells where a gap sentence came from
type GapSource string

const (
	GapSourceModel       GapSource = "model"
	GapSourceCache       GapSource = "cache"
	GapSourcePlaceholder GapSource = "placeholder"
)

// GapSentence is a fill-in-the-gap sentence for a single word
type GapSentence struct {
	Sentence    string
	CorrectForm string
	Source      GapSource
}

type gapPayload struct {
	SentenceTemplate string `json:"sentence_template"`
	CorrectForm      string `json:"correct_form"`
}

// sentenceGenerator implements SentenceGenerator
type sentenceGenerator struct {
	model     TextGenerator
	templates SentenceTemplateRepository
	limiter   *GenerationLimiter
	language  string
	logger    *zap.Logger
}

// NewSentenceGenerator creates a new gap sentence generator
func NewSentenceGenerator(
	model TextGenerator,
	templates SentenceTemplateRepository,
	limiter *GenerationLimiter,
	language string,
	logger *zap.Logger,
) *sentenceGenerator {
	if language == "" {
		language = DefaultTargetLanguage
	}
	return &sentenceGenerator{
		model:     model,
		templates: templates,
		limiter:   limiter,
		language:  language,
		logger:    logger,
	}
}

// GenerateFillInGap returns a gap sentence for the word
//
// When the safe limit is reached and a cached template exists, the template is used
// without calling the model. Otherwise the model is called, waiting first if the hard
// limit is reached. Model failures fall back to the cached template and then to a
// placeholder sentence, so no error is ever returned.
func (g *sentenceGenerator) GenerateFillInGap(ctx context.Context, word models.Word) GapSentence {
	cached, err := g.templates.GetByWordID(ctx, word.ID)
	if err != nil {
		g.logger.Warn("failed to read sentence template", zap.Int("word_id", word.ID), zap.Error(err))
		cached = nil
	}

	useCached, err := g.limiter.Reserve(ctx, cached != nil)
	if err != nil {
		g.logger.Warn("failed to wait for generation slot", zap.Int("word_id", word.ID), zap.Error(err))
		if cached != nil {
			return fromTemplate(cached)
		}
		return placeholderGap(word)
	}
	if useCached {
		g.logger.Debug("generation near limit, using cached template", zap.Int("word_id", word.ID))
		return fromTemplate(cached)
	}

	payload, err := g.requestGap(ctx, word)
	if err != nil {
		g.logger.Warn("failed to generate gap sentence",
			zap.Int("word_id", word.ID),
			zap.String("word", word.Word),
			zap.Error(err),
		)
		if cached != nil {
			return fromTemplate(cached)
		}
		return placeholderGap(word)
	}

	tpl := &models.SentenceTemplate{
		WordID:      word.ID,
		Sentence:    payload.SentenceTemplate,
		CorrectForm: payload.CorrectForm,
	}
	if err := g.templates.Upsert(ctx, tpl); err != nil {
		g.logger.Warn("failed to store sentence template", zap.Int("word_id", word.ID), zap.Error(err))
	}

	return GapSentence{
		Sentence:    payload.SentenceTemplate,
		CorrectForm: payload.CorrectForm,
		Source:      GapSourceModel,
	}
}

func (g *sentenceGenerator) requestGap(ctx context.Context, word models.Word) (*gapPayload, error) {
	text, err := g.model.GenerateText(ctx, fillInGapPrompt(g.language, word))
	if err != nil {
		return nil, err
	}

	var payload gapPayload
	if err := genai.ExtractObject(text).Decode(&payload); err != nil {
		return nil, err
	}
	payload.SentenceTemplate = strings.TrimSpace(payload.SentenceTemplate)
	payload.CorrectForm = strings.TrimSpace(payload.CorrectForm)
	if !isUsableGap(payload) {
		return nil, fmt.Errorf("trivial gap sentence %q", payload.SentenceTemplate)
	}

	return &payload, nil
}

// isUsableGap requires a gap marker, at least three tokens and a non-empty answer
func isUsableGap(p gapPayload) bool {
	return p.CorrectForm != "" &&
		strings.Contains(p.SentenceTemplate, models.GapMarker) &&
		len(strings.Fields(p.SentenceTemplate)) >= 3
}

func fromTemplate(tpl *models.SentenceTemplate) GapSentence {
	return GapSentence{
		Sentence:    tpl.Sentence,
		CorrectForm: tpl.CorrectForm,
		Source:      GapSourceCache,
	}
}

func placeholderGap(word models.Word) GapSentence {
	return GapSentence{
		Sentence:    fmt.Sprintf("Fill in the word: %s (%s)", models.GapMarker, word.Word),
		CorrectForm: word.Word,
		Source:      GapSourcePlaceholder,
	}
}
