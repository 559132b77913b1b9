package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validQuestion() Question {
	return Question{
		Question: "What is the capital of France?",
		Options:  []string{"Paris", "London", "Berlin", "Madrid"},
		Answer:   "Paris",
	}
}

func TestQuestionValidate(t *testing.T) {
	t.Run("valid question", func(t *testing.T) {
		q := validQuestion()
		assert.NoError(t, q.Validate())
	})

	t.Run("empty question text", func(t *testing.T) {
		q := validQuestion()
		q.Question = ""
		assert.Error(t, q.Validate())
	})

	t.Run("wrong option count", func(t *testing.T) {
		q := validQuestion()
		q.Options = q.Options[:3]
		assert.Error(t, q.Validate())
	})

	t.Run("duplicate options", func(t *testing.T) {
		q := validQuestion()
		q.Options = []string{"Paris", "Paris", "Berlin", "Madrid"}
		assert.Error(t, q.Validate())
	})

	t.Run("answer not in options", func(t *testing.T) {
		q := validQuestion()
		q.Answer = "Rome"
		assert.Error(t, q.Validate())
	})

	t.Run("answer match is case sensitive", func(t *testing.T) {
		q := validQuestion()
		q.Answer = "paris"
		assert.Error(t, q.Validate())
	})
}

func TestQuizValidate(t *testing.T) {
	quiz := &Quiz{
		Title:     "Geography",
		Questions: []Question{validQuestion()},
	}
	assert.NoError(t, quiz.Validate())

	quiz.Title = ""
	assert.Error(t, quiz.Validate())

	quiz.Title = "Geography"
	quiz.Questions = nil
	assert.Error(t, quiz.Validate())
}

func TestIsValidDifficulty(t *testing.T) {
	assert.True(t, IsValidDifficulty("easy"))
	assert.True(t, IsValidDifficulty("Medium"))
	assert.True(t, IsValidDifficulty("hard"))
	assert.False(t, IsValidDifficulty("extreme"))
	assert.False(t, IsValidDifficulty(""))
}
