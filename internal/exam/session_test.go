package exam

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleQuestions() []Question {
	return []Question{
		{ID: "q1", Content: "1+1?", Options: []string{"1", "2", "3"}},
		{ID: "q2", Content: "2+2?", Options: []string{"4", "5", "6", "7"}},
		{ID: "q3", Content: "3+3?", Options: []string{"6", "9"}},
	}
}

func TestSession_InitializeResetsEverything(t *testing.T) {
	s := NewSession("t1", 1, sampleQuestions())
	require.NoError(t, s.SelectAnswer("q1", 1))
	require.NoError(t, s.ToggleMark("q2"))
	s.GoNext()
	s.Tick()
	_, err := s.Submit()
	require.NoError(t, err)

	s.Initialize("t2", 2, sampleQuestions())

	snap := s.Snapshot()
	assert.Equal(t, "t2", snap.TestID)
	assert.Equal(t, 0, snap.Index)
	assert.Equal(t, 120, snap.TimeLeft)
	assert.False(t, snap.Submitted)
	assert.Empty(t, snap.Answers)
	assert.Empty(t, snap.Marked)
	assert.Equal(t, 0, s.ElapsedSeconds())
}

func TestSession_SelectAnswer(t *testing.T) {
	s := NewSession("t1", 60, sampleQuestions())

	require.NoError(t, s.SelectAnswer("q1", 0))
	require.NoError(t, s.SelectAnswer("q1", 2))
	idx, ok := s.SelectedOption("q1")
	assert.True(t, ok)
	assert.Equal(t, 2, idx)
	assert.Equal(t, 1, s.AnsweredCount())

	assert.ErrorIs(t, s.SelectAnswer("nope", 0), ErrUnknownQuestion)
	assert.ErrorIs(t, s.SelectAnswer("q3", 2), ErrInvalidOption)
	assert.ErrorIs(t, s.SelectAnswer("q3", -1), ErrInvalidOption)

	_, ok = s.SelectedOption("q2")
	assert.False(t, ok)
}

func TestSession_NavigationIsClamped(t *testing.T) {
	s := NewSession("t1", 60, sampleQuestions())

	s.GoPrevious()
	assert.Equal(t, 0, s.Snapshot().Index)

	for i := 0; i < 5; i++ {
		s.GoNext()
	}
	assert.Equal(t, 2, s.Snapshot().Index)
	q, ok := s.CurrentQuestion()
	require.True(t, ok)
	assert.Equal(t, "q3", q.ID)

	s.JumpTo(-4)
	assert.Equal(t, 0, s.Snapshot().Index)
	s.JumpTo(1)
	assert.Equal(t, 1, s.Snapshot().Index)
	s.JumpTo(99)
	assert.Equal(t, 2, s.Snapshot().Index)
}

func TestSession_EmptyQuestionSet(t *testing.T) {
	s := NewSession("t1", 60, nil)
	s.GoNext()
	s.GoPrevious()
	assert.Equal(t, 0, s.Snapshot().Index)
	_, ok := s.CurrentQuestion()
	assert.False(t, ok)
}

func TestSession_TickNeverGoesBelowZero(t *testing.T) {
	s := NewSession("t1", 1, sampleQuestions())

	expiredAt := -1
	for i := 1; i <= 100; i++ {
		if s.Tick() {
			require.Equal(t, -1, expiredAt, "expiry reported twice")
			expiredAt = i
		}
		assert.GreaterOrEqual(t, s.TimeLeft(), 0)
	}
	assert.Equal(t, 60, expiredAt)
	assert.Equal(t, 0, s.TimeLeft())
	assert.Equal(t, 60, s.ElapsedSeconds())
}

func TestSession_ToggleMark(t *testing.T) {
	s := NewSession("t1", 60, sampleQuestions())
	require.NoError(t, s.ToggleMark("q2"))
	assert.True(t, s.IsMarked("q2"))
	require.NoError(t, s.ToggleMark("q2"))
	assert.False(t, s.IsMarked("q2"))
	assert.ErrorIs(t, s.ToggleMark("zz"), ErrUnknownQuestion)
}

func TestSession_SubmitIsOneWay(t *testing.T) {
	s := NewSession("t1", 60, sampleQuestions())
	require.NoError(t, s.SelectAnswer("q1", 1))
	require.NoError(t, s.SelectAnswer("q3", 0))
	for i := 0; i < 90; i++ {
		s.Tick()
	}

	sub, err := s.Submit()
	require.NoError(t, err)
	assert.Equal(t, Submission{TestID: "t1", Answers: map[string]int{"q1": 1, "q3": 0}, TimeTaken: 90}, sub)

	// The payload is a copy.
	sub.Answers["q2"] = 3
	_, ok := s.SelectedOption("q2")
	assert.False(t, ok)

	_, err = s.Submit()
	assert.ErrorIs(t, err, ErrAlreadySubmitted)
	assert.ErrorIs(t, s.SelectAnswer("q2", 0), ErrAlreadySubmitted)
	assert.False(t, s.Tick())
	assert.Equal(t, 3510, s.TimeLeft())
}

func TestSession_SnapshotIsACopy(t *testing.T) {
	s := NewSession("t1", 60, sampleQuestions())
	require.NoError(t, s.SelectAnswer("q1", 1))
	require.NoError(t, s.ToggleMark("q1"))

	snap := s.Snapshot()
	snap.Answers["q1"] = 0
	snap.Marked["q2"] = true

	idx, _ := s.SelectedOption("q1")
	assert.Equal(t, 1, idx)
	assert.False(t, s.IsMarked("q2"))
}
