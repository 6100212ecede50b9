package seed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBank = `[
  {"question": "d/dx x^2?", "options": ["x", "2x", "x^2"], "correct_answer": "2x", "topic": "Calculus", "set_id": "s1", "set_name": "Set 1"},
  {"question": "2+2?", "options": ["3", "4"], "correct_answer": "5", "set_id": "s2", "set_name": "Set 2", "difficulty": "Easy"},
  {"question": "sin 0?", "options": ["0", "1"], "correct_answer": "0", "explanation": "sin 0 = 0", "set_id": "s1", "set_name": "Set 1"},
  {"question": "no set", "options": ["a", "b"]}
]`

func TestBuildTests(t *testing.T) {
	bank, err := LoadBank(strings.NewReader(sampleBank))
	require.NoError(t, err)

	subject := Subject{Name: "Mathematics", TitlePrefix: "CSCA Mathematics Mock", DefaultTopic: "Algebra & Calculus"}
	tests := BuildTests(subject, bank)
	require.Len(t, tests, 3)

	assert.Equal(t, "CSCA Mathematics Mock Set 1", tests[0].Title)
	assert.Equal(t, "CSCA Mathematics Mock Set 2", tests[1].Title)
	assert.Equal(t, "CSCA Mathematics Mock Standard Set", tests[2].Title)

	first := tests[0]
	assert.Equal(t, "Mathematics", first.Subject)
	assert.Equal(t, 60, first.Duration)
	assert.Equal(t, 100, first.TotalMarks)
	require.Len(t, first.Questions, 2)
	assert.Equal(t, 1, first.Questions[0].CorrectIdx)
	assert.Equal(t, 2, first.Questions[0].Marks)
	assert.Equal(t, "Calculus", *first.Questions[0].Topic)
	assert.Equal(t, "Medium", *first.Questions[0].Difficulty)
	assert.Equal(t, "", *first.Questions[0].Explanation)
	assert.Equal(t, "Algebra & Calculus", *first.Questions[1].Topic)
	assert.Equal(t, "sin 0 = 0", *first.Questions[1].Explanation)

	// answer not among the options
	assert.Equal(t, 0, tests[1].Questions[0].CorrectIdx)
	assert.Equal(t, "Easy", *tests[1].Questions[0].Difficulty)
	assert.Equal(t, []string{"3", "4"}, []string(tests[1].Questions[0].Options))
}

func TestBuildTests_ChineseDuration(t *testing.T) {
	bank := []BankQuestion{{Question: "q", Options: []string{"a", "b"}, CorrectAnswer: "b"}}
	tests := BuildTests(Subject{Name: "Professional Chinese (Science)", TitlePrefix: "CSCA Prof. Chinese (Sci/Eng)"}, bank)
	require.Len(t, tests, 1)
	assert.Equal(t, 90, tests[0].Duration)
	assert.Equal(t, 1, tests[0].Questions[0].CorrectIdx)
}

func TestBuildTests_MissingOptions(t *testing.T) {
	tests := BuildTests(Subject{Name: "Physics"}, []BankQuestion{{Question: "q", CorrectAnswer: "x"}})
	require.Len(t, tests, 1)
	assert.NotNil(t, tests[0].Questions[0].Options)
	assert.Empty(t, tests[0].Questions[0].Options)
	assert.Equal(t, 0, tests[0].Questions[0].CorrectIdx)
}

func TestLoadBank_Invalid(t *testing.T) {
	_, err := LoadBank(strings.NewReader(`{"question": "not a list"}`))
	assert.Error(t, err)
}

func TestDefaultSubjects(t *testing.T) {
	assert.Len(t, DefaultSubjects, 8)
	for _, s := range DefaultSubjects {
		assert.NotEmpty(t, s.File)
		assert.NotEmpty(t, s.DefaultTopic)
	}
}
