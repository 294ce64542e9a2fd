package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ltalk/backend/internal/models"
	"go.uber.org/zap"
)

// mockTxRunner is a mock implementation of TxRunner
type mockTxRunner struct {
	err   error
	calls int
}

func (m *mockTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	if m.err != nil {
		return m.err
	}
	return fn(ctx)
}

// mockMasteryRepository is a mock implementation of MasteryRepository
type mockMasteryRepository struct {
	records   map[int]*models.MasteryRecord
	progress  []models.MasteryResponse
	err       error
	updateErr error
	updates   int
}

func (m *mockMasteryRepository) GetOrCreateForUpdate(ctx context.Context, userID, wordID int) (*models.MasteryRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.records == nil {
		m.records = make(map[int]*models.MasteryRecord)
	}
	record, ok := m.records[wordID]
	if !ok {
		record = &models.MasteryRecord{ID: len(m.records) + 1, UserID: userID, WordID: wordID}
		m.records[wordID] = record
	}
	copied := *record
	return &copied, nil
}

func (m *mockMasteryRepository) Update(ctx context.Context, record *models.MasteryRecord) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	m.updates++
	copied := *record
	m.records[record.WordID] = &copied
	return nil
}

func (m *mockMasteryRepository) GetByUserAndWord(ctx context.Context, userID, wordID int) (*models.MasteryRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.records[wordID], nil
}

func (m *mockMasteryRepository) GetByUserAndWordIDs(ctx context.Context, userID int, wordIDs []int) (map[int]*models.MasteryRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	result := make(map[int]*models.MasteryRecord)
	for _, id := range wordIDs {
		if record, ok := m.records[id]; ok {
			result[id] = record
		}
	}
	return result, nil
}

func (m *mockMasteryRepository) ListByUser(ctx context.Context, userID int) ([]models.MasteryResponse, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.progress, nil
}

// mockTextGenerator is a mock implementation of TextGenerator and ImageTextGenerator
type mockTextGenerator struct {
	response string
	err      error
	respond  func(prompt string) (string, error)
	calls    atomic.Int32
}

func (m *mockTextGenerator) GenerateText(ctx context.Context, prompt string) (string, error) {
	m.calls.Add(1)
	if m.respond != nil {
		return m.respond(prompt)
	}
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}

func (m *mockTextGenerator) GenerateTextWithImage(ctx context.Context, prompt string, image []byte, mimeType string) (string, error) {
	return m.GenerateText(ctx, prompt)
}

// mockTemplateRepository is a mock implementation of SentenceTemplateRepository
type mockTemplateRepository struct {
	mu        sync.Mutex
	templates map[int]*models.SentenceTemplate
	getErr    error
	upsertErr error
	upserts   int
}

func (m *mockTemplateRepository) GetByWordID(ctx context.Context, wordID int) (*models.SentenceTemplate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.templates[wordID], nil
}

func (m *mockTemplateRepository) Upsert(ctx context.Context, tpl *models.SentenceTemplate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upserts++
	if m.upsertErr != nil {
		return m.upsertErr
	}
	if m.templates == nil {
		m.templates = make(map[int]*models.SentenceTemplate)
	}
	m.templates[tpl.WordID] = tpl
	return nil
}

// mockWordRepository is a mock implementation of WordRepository
type mockWordRepository struct {
	words     []models.Word
	err       error
	upsertErr error
	upserted  []models.Word
}

func (m *mockWordRepository) UpsertByWord(ctx context.Context, words []models.Word) ([]models.Word, error) {
	if m.upsertErr != nil {
		return nil, m.upsertErr
	}
	stored := make([]models.Word, len(words))
	for i, word := range words {
		word.ID = 100 + i
		stored[i] = word
	}
	m.upserted = stored
	return stored, nil
}

func (m *mockWordRepository) GetByWordSetID(ctx context.Context, wordSetID int) ([]models.Word, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.words, nil
}

// mockWordSetRepository is a mock implementation of WordSetRepository
type mockWordSetRepository struct {
	wordSet    *models.WordSet
	items      []models.WordSetListItem
	publicList []models.WordSetListItem
	err        error
	affected   bool
	createdID  int
	created    []*models.WordSet
	linked     map[int][]int
}

func (m *mockWordSetRepository) GetByID(ctx context.Context, id int) (*models.WordSet, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.wordSet == nil {
		return nil, nil
	}
	copied := *m.wordSet
	return &copied, nil
}

func (m *mockWordSetRepository) Create(ctx context.Context, wordSet *models.WordSet) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.created = append(m.created, wordSet)
	return m.createdID, nil
}

func (m *mockWordSetRepository) AddWords(ctx context.Context, wordSetID int, wordIDs []int) error {
	if m.err != nil {
		return m.err
	}
	if m.linked == nil {
		m.linked = make(map[int][]int)
	}
	m.linked[wordSetID] = append(m.linked[wordSetID], wordIDs...)
	return nil
}

func (m *mockWordSetRepository) ListByUser(ctx context.Context, userID int) ([]models.WordSetListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.items, nil
}

func (m *mockWordSetRepository) ListPublic(ctx context.Context, excludeUserID int) ([]models.WordSetListItem, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.publicList, nil
}

func (m *mockWordSetRepository) UpdateVisibility(ctx context.Context, id, userID int, isPublic bool) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.affected, nil
}

func (m *mockWordSetRepository) Delete(ctx context.Context, id, userID int) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.affected, nil
}

// mockExerciseRepository is a mock implementation of ExerciseRepository
type mockExerciseRepository struct {
	exercise *models.Exercise
	err      error
	created  *models.Exercise
}

func (m *mockExerciseRepository) Create(ctx context.Context, exercise *models.Exercise) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.created = exercise
	return 42, nil
}

func (m *mockExerciseRepository) GetByID(ctx context.Context, id int) (*models.Exercise, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.exercise, nil
}

// mockSubmissionRepository is a mock implementation of SubmissionRepository
type mockSubmissionRepository struct {
	records   []models.SubmissionRecord
	created   []*models.SubmissionRecord
	err       error
	lastLimit int
}

func (m *mockSubmissionRepository) Create(ctx context.Context, record *models.SubmissionRecord) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	m.created = append(m.created, record)
	return len(m.created), nil
}

func (m *mockSubmissionRepository) ListByUser(ctx context.Context, userID, limit int) ([]models.SubmissionRecord, error) {
	m.lastLimit = limit
	if m.err != nil {
		return nil, m.err
	}
	return m.records, nil
}

// mockDueWords is a mock implementation of DueWordsProvider
type mockDueWords struct {
	due map[int]bool // nil means every word is due
	err error
}

func (m *mockDueWords) DueWords(ctx context.Context, userID int, words []models.Word) ([]models.Word, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.due == nil {
		return words, nil
	}
	result := []models.Word{}
	for _, word := range words {
		if m.due[word.ID] {
			result = append(result, word)
		}
	}
	return result, nil
}

// mockGapGenerator is a mock implementation of GapSentenceGenerator
type mockGapGenerator struct {
	inFlight    atomic.Int32
	maxInFlight atomic.Int32
	delay       time.Duration
}

func (m *mockGapGenerator) GenerateFillInGap(ctx context.Context, word models.Word) GapSentence {
	current := m.inFlight.Add(1)
	defer m.inFlight.Add(-1)
	for {
		seen := m.maxInFlight.Load()
		if current <= seen || m.maxInFlight.CompareAndSwap(seen, current) {
			break
		}
	}
	if m.delay > 0 {
		time.Sleep(m.delay)
	}
	return GapSentence{
		Sentence:    "Aš matau " + models.GapMarker + " čia",
		CorrectForm: word.Word,
		Source:      GapSourceModel,
	}
}

// mockAttemptRecorder is a mock implementation of AttemptRecorder
type mockAttemptRecorder struct {
	attempts map[int]bool
	err      error
}

func (m *mockAttemptRecorder) RecordAttempt(ctx context.Context, userID, wordID int, wasCorrect bool) (*models.MasteryRecord, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.attempts == nil {
		m.attempts = make(map[int]bool)
	}
	m.attempts[wordID] = wasCorrect
	return &models.MasteryRecord{UserID: userID, WordID: wordID}, nil
}

// fakeClock drives GenerationLimiter time in tests
type fakeClock struct {
	mu    sync.Mutex
	now   time.Time
	slept []time.Duration
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func (c *fakeClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.slept = append(c.slept, d)
	c.now = c.now.Add(d)
	return nil
}

func (c *fakeClock) Slept() []time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]time.Duration(nil), c.slept...)
}

func newTestLimiter(clock *fakeClock) *GenerationLimiter {
	limiter := NewGenerationLimiter(GenerationLimiterConfig{}, zap.NewNop())
	limiter.now = clock.Now
	limiter.sleep = clock.Sleep
	return limiter
}

// fillLimiter records n calls at the current fake time
func fillLimiter(limiter *GenerationLimiter, n int) {
	for i := 0; i < n; i++ {
		_ = limiter.Acquire(context.Background())
	}
}

func testWords(n int) []models.Word {
	words := make([]models.Word, n)
	for i := range words {
		words[i] = models.Word{
			ID:          i + 1,
			Word:        "žodis" + models.PositionKey(i),
			Infinitive:  "žodis",
			Translation: "word" + models.PositionKey(i),
		}
	}
	return words
}
