package types

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validQuestion() QuestionRecord {
	return QuestionRecord{
		Question: "What is the capital of France?",
		Options:  []string{"London", "Paris", "Berlin", "Madrid"},
		Correct:  1,
	}
}

func TestValidate(t *testing.T) {
	q := validQuestion()
	require.NoError(t, q.Validate())

	q = validQuestion()
	q.Question = ""
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.Options = q.Options[:3]
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.Options = append(q.Options, "Rome")
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.Options[2] = ""
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.Correct = 4
	assert.Error(t, q.Validate())

	q = validQuestion()
	q.Correct = -1
	assert.Error(t, q.Validate())
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("shorts")
	require.NoError(t, err)
	assert.Equal(t, FormatShorts, f)

	f, err = ParseFormat("full")
	require.NoError(t, err)
	assert.Equal(t, FormatFull, f)

	_, err = ParseFormat("widescreen")
	assert.Error(t, err)
}

func writeQuizFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quiz.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadQuiz(t *testing.T) {
	path := writeQuizFile(t, `{
		"title": "Capitals Quiz",
		"language": "english",
		"questions": [
			{"question": "Capital of France?", "options": ["London", "Paris", "Berlin", "Madrid"], "correct": 1}
		]
	}`)

	quiz, err := LoadQuiz(path)
	require.NoError(t, err)
	assert.Equal(t, "Capitals Quiz", quiz.Title)
	require.Len(t, quiz.Questions, 1)
	assert.Equal(t, 1, quiz.Questions[0].Correct)
}

func TestLoadQuizMissingFile(t *testing.T) {
	_, err := LoadQuiz(filepath.Join(t.TempDir(), "nope.json"))
	assert.Error(t, err)
}

func TestLoadQuizMalformed(t *testing.T) {
	path := writeQuizFile(t, `{"title": "broken"`)
	_, err := LoadQuiz(path)
	assert.Error(t, err)
}

func TestLoadQuizEmpty(t *testing.T) {
	path := writeQuizFile(t, `{"title": "empty", "questions": []}`)
	_, err := LoadQuiz(path)
	assert.Error(t, err)
}

func TestLoadQuizOutOfRangeCorrect(t *testing.T) {
	path := writeQuizFile(t, `{
		"title": "bad",
		"questions": [
			{"question": "Q?", "options": ["a", "b", "c", "d"], "correct": 4}
		]
	}`)
	_, err := LoadQuiz(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
