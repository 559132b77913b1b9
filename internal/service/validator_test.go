package service

import (
	"testing"

	"quizard/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quizRequest() *domain.GenerationRequest {
	return &domain.GenerationRequest{
		Prompt:        "Quiz me on the solar system",
		Title:         "Solar System",
		QuestionCount: 2,
		Difficulty:    domain.DifficultyMedium,
	}
}

const validQuizArray = `[
  {"message":"Here's your quiz!","question":"Which planet is known as the Red Planet?","options":["Mars","Venus","Saturn","Jupiter"],"answer":"Mars"},
  {"message":"Next!","question":"What is the largest planet?","options":["Jupiter","Earth","Neptune","Mercury"],"answer":"Jupiter"}
]`

func TestValidate_QuizArray(t *testing.T) {
	v := NewResponseValidator()

	result, err := v.Validate(quizRequest(), validQuizArray)

	require.NoError(t, err)
	assert.Equal(t, domain.ResultQuizGenerated, result.Kind)
	require.NotNil(t, result.Quiz)
	assert.Equal(t, "Solar System", result.Quiz.Title)
	require.Len(t, result.Quiz.Questions, 2)
	// Content must survive the round trip untouched.
	assert.Equal(t, "Which planet is known as the Red Planet?", result.Quiz.Questions[0].Question)
	assert.Equal(t, []string{"Mars", "Venus", "Saturn", "Jupiter"}, result.Quiz.Questions[0].Options)
	assert.Equal(t, "Mars", result.Quiz.Questions[0].Answer)
}

func TestValidate_Conversational(t *testing.T) {
	v := NewResponseValidator()
	req := &domain.GenerationRequest{Prompt: "hello", QuestionCount: 5, Difficulty: domain.DifficultyEasy}

	raw := `[{"message":"Hi! How can I help you today?","question":null,"options":null,"answer":null}]`
	result, err := v.Validate(req, raw)

	require.NoError(t, err)
	assert.Equal(t, domain.ResultConversational, result.Kind)
	assert.Equal(t, "Hi! How can I help you today?", result.Message)
	assert.Nil(t, result.Quiz)
}

func TestValidate_Idempotent(t *testing.T) {
	v := NewResponseValidator()

	first, err1 := v.Validate(quizRequest(), validQuizArray)
	second, err2 := v.Validate(quizRequest(), validQuizArray)

	require.NoError(t, err1)
	require.NoError(t, err2)
	assert.Equal(t, first, second)
}

func TestValidate_NotJSON(t *testing.T) {
	v := NewResponseValidator()

	result, err := v.Validate(quizRequest(), "not json")

	assert.Nil(t, result)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidFormat))
}

func TestValidate_MarkdownFencedJSON(t *testing.T) {
	v := NewResponseValidator()

	result, err := v.Validate(quizRequest(), "```json\n"+validQuizArray+"\n```")

	assert.Nil(t, result)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidFormat))
}

func TestValidate_MissingTitle(t *testing.T) {
	v := NewResponseValidator()
	req := quizRequest()
	req.Title = ""

	result, err := v.Validate(req, validQuizArray)

	assert.Nil(t, result)
	assert.True(t, domain.IsCode(err, domain.CodeMissingTitle))
}

func TestValidate_QuestionCountMismatch(t *testing.T) {
	v := NewResponseValidator()
	req := quizRequest()
	req.QuestionCount = 5

	result, err := v.Validate(req, validQuizArray)

	assert.Nil(t, result)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidSchema))
}

func TestValidate_MissingAnswerField(t *testing.T) {
	v := NewResponseValidator()
	req := quizRequest()
	req.QuestionCount = 1

	raw := `[{"message":"Here!","question":"Which planet is red?","options":["Mars","Venus","Saturn","Jupiter"]}]`
	result, err := v.Validate(req, raw)

	// Never a partially populated quiz.
	assert.Nil(t, result)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidSchema))
}

func TestValidate_AnswerNotInOptions(t *testing.T) {
	v := NewResponseValidator()
	req := quizRequest()
	req.QuestionCount = 1

	raw := `[{"message":"Here!","question":"Which planet is red?","options":["Venus","Saturn","Jupiter","Neptune"],"answer":"Mars"}]`
	result, err := v.Validate(req, raw)

	assert.Nil(t, result)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidSchema))
}

func TestValidate_AnswerCaseSensitive(t *testing.T) {
	v := NewResponseValidator()
	req := quizRequest()
	req.QuestionCount = 1

	raw := `[{"message":"Here!","question":"Which planet is red?","options":["Mars","Venus","Saturn","Jupiter"],"answer":"mars"}]`
	result, err := v.Validate(req, raw)

	assert.Nil(t, result)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidSchema))
}

func TestValidate_DuplicateOptions(t *testing.T) {
	v := NewResponseValidator()
	req := quizRequest()
	req.QuestionCount = 1

	raw := `[{"message":"Here!","question":"Which planet is red?","options":["Mars","Mars","Saturn","Jupiter"],"answer":"Mars"}]`
	result, err := v.Validate(req, raw)

	assert.Nil(t, result)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidSchema))
}

func TestValidate_EmptyArray(t *testing.T) {
	v := NewResponseValidator()

	result, err := v.Validate(quizRequest(), `[]`)

	assert.Nil(t, result)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidSchema))
}

func statefulRequest() *domain.GenerationRequest {
	return &domain.GenerationRequest{
		Prompt:        "make a quiz about gravity",
		Title:         "Physics Chat",
		QuestionCount: 1,
		Difficulty:    domain.DifficultyEasy,
		History:       []domain.Message{domain.NewUserMessage("hello")},
	}
}

func TestValidate_StatefulMessage(t *testing.T) {
	v := NewResponseValidator()

	raw := `{"type":"message","role":"ai","content":[{"message":"Gravity pulls objects together."}]}`
	result, err := v.Validate(statefulRequest(), raw)

	require.NoError(t, err)
	assert.Equal(t, domain.ResultConversational, result.Kind)
	assert.Equal(t, "Gravity pulls objects together.", result.Message)
}

func TestValidate_StatefulQuiz(t *testing.T) {
	v := NewResponseValidator()

	raw := `{"type":"quiz","role":"ai","content":[{"message":"Here!","question":"What pulls objects together?","options":["Gravity","Magnetism","Friction","Inertia"],"answer":"Gravity"}]}`
	result, err := v.Validate(statefulRequest(), raw)

	require.NoError(t, err)
	assert.Equal(t, domain.ResultQuizGenerated, result.Kind)
	require.NotNil(t, result.Quiz)
	assert.Equal(t, "Physics Chat", result.Quiz.Title)
	require.Len(t, result.Quiz.Questions, 1)
}

func TestValidate_StatefulUnknownType(t *testing.T) {
	v := NewResponseValidator()

	raw := `{"type":"markdown","role":"ai","content":[{"message":"hi"}]}`
	result, err := v.Validate(statefulRequest(), raw)

	assert.Nil(t, result)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidSchema))
}

func TestValidate_StatefulMissingType(t *testing.T) {
	v := NewResponseValidator()

	raw := `{"role":"ai","content":[{"message":"hi"}]}`
	result, err := v.Validate(statefulRequest(), raw)

	assert.Nil(t, result)
	assert.True(t, domain.IsCode(err, domain.CodeInvalidSchema))
}
