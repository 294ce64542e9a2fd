package services

import (
	"fmt"
	"strings"

	"github.com/ltalk/backend/internal/models"
)

// DefaultTargetLanguage is the language of the practiced vocabulary
const DefaultTargetLanguage = "Lithuanian"

func fillInGapPrompt(language string, word models.Word) string {
	return fmt.Sprintf(
		"Create a simple, beginner-level %[1]s sentence that uses the word '%[2]s' in an inflected form other than its dictionary form. "+
			"The sentence must give enough context to make clear which word belongs in the gap. "+
			"Do not change the part of speech of the word; only change its inflection if needed. "+
			"Replace the word in the sentence with '___' (three underscores). "+
			"Format the response as a JSON object with keys 'sentence_template' and 'correct_form'. "+
			"Example: {\"sentence_template\": \"Aš mėgstu ___\", \"correct_form\": \"obuolius\"}. "+
			"Only return the JSON object.",
		language, word.Word,
	)
}

func multipleChoicePrompt(language string, words []models.Word) string {
	var sb strings.Builder
	for _, word := range words {
		fmt.Fprintf(&sb, "- %s: %s\n", word.Word, word.Translation)
	}
	return fmt.Sprintf(
		"For each of the following %[1]s words create one multiple-choice question asking for the translation of the word. "+
			"Each question must include the %[1]s word, exactly 4 answer choices and the correct choice, "+
			"which must be the given translation.\n%[2]s"+
			"Format the response as a JSON array of objects with keys 'question', 'choices' and 'correct', "+
			"one object per word in the same order. Only return the JSON array.",
		language, sb.String(),
	)
}

func explanationPrompt(language, sentence, correctForm, userAnswer string) string {
	return fmt.Sprintf(
		"In the %s sentence template \"%s\", the correct word is '%s'. "+
			"A user answered '%s'. Explain briefly in simple terms why '%s' is incorrect in this context. "+
			"Focus on the grammatical reason (e.g., case, number). "+
			"Keep the explanation concise and suitable for a language learner. Start the explanation directly.",
		language, sentence, correctForm, userAnswer, userAnswer,
	)
}

func photoWordsPrompt(language string) string {
	return fmt.Sprintf(
		"Extract every %[1]s word visible in this image. For each word return its form as written, "+
			"its dictionary form and its English translation. "+
			"Format the response as a JSON array of objects with keys 'word', 'infinitive' and 'translation'. "+
			"Only return the JSON array.",
		language,
	)
}

// correctAnswerFeedback is the feedback used when no model explanation is available
func correctAnswerFeedback(answer string) string {
	return fmt.Sprintf("The correct answer is \"%s\".", answer)
}
