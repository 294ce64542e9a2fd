package services

import (
	"context"
	"errors"
	"testing"

	"github.com/ltalk/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewMasteryService(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	repo := &mockMasteryRepository{}
	tx := &mockTxRunner{}

	svc := NewMasteryService(repo, tx, logger)

	assert.NotNil(t, svc)
	assert.Equal(t, repo, svc.repo)
	assert.Equal(t, tx, svc.txRunner)
	assert.Equal(t, logger, svc.logger)
}

func TestMasteryService_RecordAttempt(t *testing.T) {
	tests := []struct {
		name            string
		sequence        []bool
		expectedCorrect int
		expectedWrong   int
		expectedLearned bool
	}{
		{
			name:            "first correct attempt creates record",
			sequence:        []bool{true},
			expectedCorrect: 1,
		},
		{
			name:            "three correct attempts learn the word",
			sequence:        []bool{true, true, true},
			expectedCorrect: 3,
			expectedLearned: true,
		},
		{
			name:            "accuracy below threshold",
			sequence:        []bool{true, false, true, false, true},
			expectedCorrect: 3,
			expectedWrong:   2,
		},
		{
			name:            "learned word becomes due again",
			sequence:        []bool{true, true, true, false, false},
			expectedCorrect: 3,
			expectedWrong:   2,
		},
		{
			name:            "seven of ten is learned",
			sequence:        []bool{true, true, true, true, true, true, true, false, false, false},
			expectedCorrect: 7,
			expectedWrong:   3,
			expectedLearned: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := zap.NewDevelopment()
			repo := &mockMasteryRepository{}
			tx := &mockTxRunner{}
			svc := NewMasteryService(repo, tx, logger)

			var record *models.MasteryRecord
			for _, wasCorrect := range tt.sequence {
				var err error
				record, err = svc.RecordAttempt(context.Background(), 1, 7, wasCorrect)
				require.NoError(t, err)
			}

			assert.Equal(t, tt.expectedCorrect, record.CorrectAttempts)
			assert.Equal(t, tt.expectedWrong, record.IncorrectAttempts)
			assert.Equal(t, tt.expectedLearned, record.Learned)
			assert.Equal(t, len(tt.sequence), tx.calls)
			assert.Equal(t, len(tt.sequence), repo.updates)

			due, err := svc.IsDue(context.Background(), 1, 7)
			require.NoError(t, err)
			assert.Equal(t, !tt.expectedLearned, due)
		})
	}
}

func TestMasteryService_RecordAttempt_Errors(t *testing.T) {
	tests := []struct {
		name string
		repo *mockMasteryRepository
		tx   *mockTxRunner
	}{
		{
			name: "transaction error",
			repo: &mockMasteryRepository{},
			tx:   &mockTxRunner{err: errors.New("tx error")},
		},
		{
			name: "lookup error",
			repo: &mockMasteryRepository{err: errors.New("db error")},
			tx:   &mockTxRunner{},
		},
		{
			name: "update error",
			repo: &mockMasteryRepository{updateErr: errors.New("db error")},
			tx:   &mockTxRunner{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := zap.NewDevelopment()
			svc := NewMasteryService(tt.repo, tt.tx, logger)

			record, err := svc.RecordAttempt(context.Background(), 1, 7, true)

			assert.Error(t, err)
			assert.Nil(t, record)
		})
	}
}

func TestMasteryService_IsDue(t *testing.T) {
	tests := []struct {
		name     string
		repo     *mockMasteryRepository
		expected bool
		hasError bool
	}{
		{
			name:     "no record",
			repo:     &mockMasteryRepository{},
			expected: true,
		},
		{
			name: "not learned",
			repo: &mockMasteryRepository{records: map[int]*models.MasteryRecord{
				7: {WordID: 7, CorrectAttempts: 2},
			}},
			expected: true,
		},
		{
			name: "learned",
			repo: &mockMasteryRepository{records: map[int]*models.MasteryRecord{
				7: {WordID: 7, CorrectAttempts: 3, Learned: true},
			}},
			expected: false,
		},
		{
			name:     "repository error",
			repo:     &mockMasteryRepository{err: errors.New("db error")},
			hasError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := zap.NewDevelopment()
			svc := NewMasteryService(tt.repo, &mockTxRunner{}, logger)

			due, err := svc.IsDue(context.Background(), 1, 7)

			if tt.hasError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, due)
		})
	}
}

func TestMasteryService_DueWords(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	words := testWords(4)
	repo := &mockMasteryRepository{records: map[int]*models.MasteryRecord{
		2: {WordID: 2, CorrectAttempts: 5, Learned: true},
		3: {WordID: 3, CorrectAttempts: 1, IncorrectAttempts: 3},
	}}
	svc := NewMasteryService(repo, &mockTxRunner{}, logger)

	due, err := svc.DueWords(context.Background(), 1, words)

	require.NoError(t, err)
	require.Len(t, due, 3)
	assert.Equal(t, []int{1, 3, 4}, []int{due[0].ID, due[1].ID, due[2].ID})

	empty, err := svc.DueWords(context.Background(), 1, nil)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	repo.err = errors.New("db error")
	_, err = svc.DueWords(context.Background(), 1, words)
	assert.Error(t, err)
}

func TestMasteryService_ListProgress(t *testing.T) {
	logger, _ := zap.NewDevelopment()
	repo := &mockMasteryRepository{progress: []models.MasteryResponse{
		{WordID: 1, Word: "namas", Translation: "house", CorrectAttempts: 3, Learned: true, Accuracy: 1},
	}}
	svc := NewMasteryService(repo, &mockTxRunner{}, logger)

	items, err := svc.ListProgress(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	repo.err = errors.New("db error")
	_, err = svc.ListProgress(context.Background(), 1)
	assert.Error(t, err)
}
