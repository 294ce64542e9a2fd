package services

import (
	"testing"

	"github.com/ltalk/backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestFillInGapPrompt(t *testing.T) {
	prompt := fillInGapPrompt("Lithuanian", models.Word{Word: "obuolys", Translation: "apple"})

	assert.Contains(t, prompt, "Lithuanian")
	assert.Contains(t, prompt, "'obuolys' in an inflected form other than its dictionary form")
	assert.Contains(t, prompt, models.GapMarker)
	assert.Contains(t, prompt, "sentence_template")
	assert.NotContains(t, prompt, "the same or a different")
}

func TestMultipleChoicePrompt(t *testing.T) {
	prompt := multipleChoicePrompt("Lithuanian", testWords(2))

	assert.Contains(t, prompt, "- žodis0: word0\n")
	assert.Contains(t, prompt, "- žodis1: word1\n")
	assert.Contains(t, prompt, "exactly 4 answer choices")
}
