package service

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/event"
	"github.com/lshigami/examprep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

// exampleTest has marks [2,2,2] and correct indices [1,1,2].
func exampleTest() *model.Test {
	return &model.Test{
		ID:         "example",
		Title:      "Physics Mock",
		Subject:    "Physics",
		Duration:   60,
		TotalMarks: 6,
		Questions: []model.Question{
			{ID: "q1", TestID: "example", Options: datatypes.JSONSlice[string]{"a", "b", "c"}, CorrectIdx: 1, Marks: 2},
			{ID: "q2", TestID: "example", Options: datatypes.JSONSlice[string]{"a", "b", "c"}, CorrectIdx: 1, Marks: 2},
			{ID: "q3", TestID: "example", Options: datatypes.JSONSlice[string]{"a", "b", "c"}, CorrectIdx: 2, Marks: 2},
		},
	}
}

type submissionFixture struct {
	tests     *fakeTestRepo
	attempts  *fakeAttemptRepo
	users     *fakeUserRepo
	publisher *fakePublisher
	svc       TestSubmissionService
}

func newSubmissionFixture(t *testing.T, allowGuest bool, users ...*model.User) *submissionFixture {
	t.Helper()
	cfg := testConfig()
	cfg.Grading.AllowGuest = allowGuest

	f := &submissionFixture{
		tests:     newFakeTestRepo(exampleTest(), sampleTest()),
		users:     newFakeUserRepo(users...),
		publisher: &fakePublisher{},
	}
	f.attempts = &fakeAttemptRepo{tests: f.tests, users: f.users}
	f.svc = NewTestSubmissionService(f.tests, f.attempts, f.users, f.publisher, cfg)
	return f
}

func exampleRequest() dto.SubmitTestRequest {
	return dto.SubmitTestRequest{
		TestID:    "example",
		Answers:   map[string]any{"q1": float64(1), "q2": float64(0), "q3": float64(2)},
		TimeTaken: float64(754),
	}
}

func TestSubmitAttempt_ExampleScenario(t *testing.T) {
	f := newSubmissionFixture(t, true, &model.User{ID: "u1", Email: "u1@example.com", Name: "Student One"})

	resp, err := f.svc.SubmitAttempt(context.Background(), exampleRequest(), "u1")
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, 4, resp.Score)
	assert.Equal(t, 6, resp.TotalMarks)
	assert.Equal(t, 67, resp.Percentage)
	assert.NotEmpty(t, resp.AttemptID)

	require.Len(t, f.attempts.attempts, 1)
	stored := f.attempts.attempts[0]
	assert.Equal(t, resp.AttemptID, stored.ID)
	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, "example", stored.TestID)
	assert.Equal(t, 4, stored.Score)
	assert.Equal(t, 754, stored.TimeTaken)
	assert.Equal(t, model.AnswerMap{"q1": 1, "q2": 0, "q3": 2}, stored.AnswerMap())

	require.Len(t, f.publisher.events, 1)
	assert.Equal(t, event.TypeAttemptCompleted, f.publisher.events[0].Type)
	payload, ok := f.publisher.events[0].Payload.(event.AttemptCompleted)
	require.True(t, ok)
	assert.Equal(t, resp.AttemptID, payload.AttemptID)
	assert.Equal(t, 67, payload.Percentage)
}

func TestSubmitAttempt_NaNTimeIsRecordedAsZero(t *testing.T) {
	f := newSubmissionFixture(t, true)
	req := exampleRequest()
	req.TimeTaken = math.NaN()

	resp, err := f.svc.SubmitAttempt(context.Background(), req, "")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	require.Len(t, f.attempts.attempts, 1)
	assert.Equal(t, 0, f.attempts.attempts[0].TimeTaken)
}

func TestSubmitAttempt_MissingTimeIsRecordedAsZero(t *testing.T) {
	f := newSubmissionFixture(t, true)
	req := exampleRequest()
	req.TimeTaken = nil

	_, err := f.svc.SubmitAttempt(context.Background(), req, "")
	require.NoError(t, err)
	assert.Equal(t, 0, f.attempts.attempts[0].TimeTaken)
}

func TestSubmitAttempt_UnknownTestCreatesNoAttempt(t *testing.T) {
	f := newSubmissionFixture(t, true)
	req := exampleRequest()
	req.TestID = "missing"

	resp, err := f.svc.SubmitAttempt(context.Background(), req, "")
	assert.Nil(t, resp)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.attempts.attempts)
	assert.Empty(t, f.publisher.events)
}

func TestSubmitAttempt_NonIndexNumbersScoreNothing(t *testing.T) {
	f := newSubmissionFixture(t, true)
	req := exampleRequest()
	req.Answers = map[string]any{"q1": float64(1), "q2": float64(-1), "q3": 2.5}

	resp, err := f.svc.SubmitAttempt(context.Background(), req, "")
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Score)
	assert.Equal(t, 6, resp.TotalMarks)
	assert.Equal(t, 33, resp.Percentage)

	require.Len(t, f.attempts.attempts, 1)
	assert.Equal(t, model.AnswerMap{"q1": 1}, f.attempts.attempts[0].AnswerMap())
}

func TestSubmitAttempt_InvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*dto.SubmitTestRequest)
	}{
		{name: "missing test id", mutate: func(r *dto.SubmitTestRequest) { r.TestID = "" }},
		{name: "blank test id", mutate: func(r *dto.SubmitTestRequest) { r.TestID = "   " }},
		{name: "missing answers", mutate: func(r *dto.SubmitTestRequest) { r.Answers = nil }},
		{name: "malformed answer", mutate: func(r *dto.SubmitTestRequest) { r.Answers["q1"] = "B" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			f := newSubmissionFixture(t, true)
			req := exampleRequest()
			tc.mutate(&req)

			_, err := f.svc.SubmitAttempt(context.Background(), req, "")
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, f.attempts.attempts)
			assert.Zero(t, f.tests.calls)
		})
	}
}

func TestSubmitAttempt_EmptyAnswersScoresZero(t *testing.T) {
	f := newSubmissionFixture(t, true)
	req := exampleRequest()
	req.Answers = map[string]any{}

	resp, err := f.svc.SubmitAttempt(context.Background(), req, "")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Score)
	assert.Equal(t, 0, resp.Percentage)
}

func TestSubmitAttempt_DuplicateSubmissionsAreDistinct(t *testing.T) {
	f := newSubmissionFixture(t, true, &model.User{ID: "u1", Email: "u1@example.com"})

	first, err := f.svc.SubmitAttempt(context.Background(), exampleRequest(), "u1")
	require.NoError(t, err)
	second, err := f.svc.SubmitAttempt(context.Background(), exampleRequest(), "u1")
	require.NoError(t, err)

	assert.NotEqual(t, first.AttemptID, second.AttemptID)
	assert.Equal(t, first.Score, second.Score)
	assert.Len(t, f.attempts.attempts, 2)
}

func TestSubmitAttempt_ClientScoreIsIgnored(t *testing.T) {
	f := newSubmissionFixture(t, true)
	req := exampleRequest()
	req.Answers = map[string]any{"q1": float64(0), "q2": float64(0), "q3": float64(0)}

	resp, err := f.svc.SubmitAttempt(context.Background(), req, "")
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Score)
}

func TestSubmitAttempt_UserResolution(t *testing.T) {
	member := &model.User{ID: "member", Email: "member@example.com", Name: "Member"}

	t.Run("session user wins over payload", func(t *testing.T) {
		f := newSubmissionFixture(t, true, member, &model.User{ID: "other", Email: "other@example.com"})
		req := exampleRequest()
		req.UserID = strPtr("other")

		_, err := f.svc.SubmitAttempt(context.Background(), req, "member")
		require.NoError(t, err)
		assert.Equal(t, "member", f.attempts.attempts[0].UserID)
	})

	t.Run("guest user is created once and reused", func(t *testing.T) {
		f := newSubmissionFixture(t, true)

		_, err := f.svc.SubmitAttempt(context.Background(), exampleRequest(), "")
		require.NoError(t, err)
		_, err = f.svc.SubmitAttempt(context.Background(), exampleRequest(), "")
		require.NoError(t, err)

		guest, err := f.users.FindByEmail(context.Background(), "student@csca-prep.com")
		require.NoError(t, err)
		assert.Equal(t, "Default Student", guest.Name)
		assert.Len(t, f.users.byID, 1)
		assert.Equal(t, guest.ID, f.attempts.attempts[0].UserID)
		assert.Equal(t, guest.ID, f.attempts.attempts[1].UserID)
	})

	t.Run("existing payload user is honored without a session", func(t *testing.T) {
		f := newSubmissionFixture(t, true, member)
		req := exampleRequest()
		req.UserID = strPtr("member")

		_, err := f.svc.SubmitAttempt(context.Background(), req, "")
		require.NoError(t, err)
		assert.Equal(t, "member", f.attempts.attempts[0].UserID)
	})

	t.Run("unknown payload user falls back to guest", func(t *testing.T) {
		f := newSubmissionFixture(t, true)
		req := exampleRequest()
		req.UserID = strPtr("ghost")

		_, err := f.svc.SubmitAttempt(context.Background(), req, "")
		require.NoError(t, err)
		guest, err := f.users.FindByEmail(context.Background(), "student@csca-prep.com")
		require.NoError(t, err)
		assert.Equal(t, guest.ID, f.attempts.attempts[0].UserID)
	})

	t.Run("guest disabled rejects anonymous submission", func(t *testing.T) {
		f := newSubmissionFixture(t, false, member)
		req := exampleRequest()
		req.UserID = strPtr("member")

		_, err := f.svc.SubmitAttempt(context.Background(), req, "")
		assert.ErrorIs(t, err, ErrUnauthorized)
		assert.Empty(t, f.attempts.attempts)
	})

	t.Run("guest disabled still accepts session user", func(t *testing.T) {
		f := newSubmissionFixture(t, false, member)

		_, err := f.svc.SubmitAttempt(context.Background(), exampleRequest(), "member")
		require.NoError(t, err)
	})

	t.Run("guest lookup failure is an internal error", func(t *testing.T) {
		f := newSubmissionFixture(t, true)
		f.users.failAll = errors.New("connection refused")

		_, err := f.svc.SubmitAttempt(context.Background(), exampleRequest(), "")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrUnauthorized)
		assert.Empty(t, f.attempts.attempts)
	})
}

func TestSubmitAttempt_StorageFailure(t *testing.T) {
	f := newSubmissionFixture(t, true)
	f.attempts.createErr = errors.New("disk full")

	resp, err := f.svc.SubmitAttempt(context.Background(), exampleRequest(), "")
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidInput)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Empty(t, f.publisher.events)
}

func TestSubmitAttempt_PublishFailureDoesNotFailSubmission(t *testing.T) {
	f := newSubmissionFixture(t, true)
	f.publisher.err = errors.New("broker down")

	resp, err := f.svc.SubmitAttempt(context.Background(), exampleRequest(), "")
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Len(t, f.attempts.attempts, 1)
}

func TestSubmitAttempt_ZeroTotalMarks(t *testing.T) {
	f := newSubmissionFixture(t, true)
	zero := exampleTest()
	zero.ID = "zero"
	zero.TotalMarks = 0
	f.tests.tests["zero"] = zero
	req := exampleRequest()
	req.TestID = "zero"

	resp, err := f.svc.SubmitAttempt(context.Background(), req, "")
	require.NoError(t, err)
	assert.Equal(t, 4, resp.Score)
	assert.Equal(t, 0, resp.Percentage)
}
