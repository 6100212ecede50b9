package service

import (
	"context"
	"testing"

	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validTestCreate() dto.TestCreateDTO {
	return dto.TestCreateDTO{
		Title:      "Chemistry Mock 1",
		Subject:    "Chemistry",
		Duration:   60,
		TotalMarks: 4,
		Questions: []dto.QuestionCreateDTO{
			{Content: "H2O is?", Options: []string{"water", "salt"}, CorrectIdx: 0, Marks: 2, Topic: strPtr("Inorganic Chemistry")},
			{Content: "NaCl is?", Options: []string{"water", "salt", "sugar"}, CorrectIdx: 1, Marks: 2},
		},
	}
}

func TestAdminTestService_CreateTest(t *testing.T) {
	tests := newFakeTestRepo()
	svc := NewAdminTestService(tests, &fakeAttemptRepo{tests: tests}, newFakeUserRepo())

	summary, err := svc.CreateTest(context.Background(), validTestCreate())
	require.NoError(t, err)
	assert.NotEmpty(t, summary.ID)
	assert.Equal(t, 2, summary.QuestionCount)
	assert.Equal(t, "Chemistry", summary.Subject)

	require.Len(t, tests.created, 1)
	created := tests.created[0]
	assert.Equal(t, []string{"water", "salt", "sugar"}, []string(created.Questions[1].Options))
	assert.Equal(t, 1, created.Questions[1].CorrectIdx)
	require.NotNil(t, created.Questions[0].Topic)
	assert.Equal(t, "Inorganic Chemistry", *created.Questions[0].Topic)
}

func TestAdminTestService_CreateTestValidation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*dto.TestCreateDTO)
	}{
		{name: "no questions", mutate: func(r *dto.TestCreateDTO) { r.Questions = nil }},
		{name: "blank title", mutate: func(r *dto.TestCreateDTO) { r.Title = " " }},
		{name: "zero duration", mutate: func(r *dto.TestCreateDTO) { r.Duration = 0 }},
		{name: "one option", mutate: func(r *dto.TestCreateDTO) { r.Questions[0].Options = []string{"only"} }},
		{name: "correct index out of range", mutate: func(r *dto.TestCreateDTO) { r.Questions[1].CorrectIdx = 3 }},
		{name: "negative correct index", mutate: func(r *dto.TestCreateDTO) { r.Questions[1].CorrectIdx = -1 }},
		{name: "zero marks", mutate: func(r *dto.TestCreateDTO) { r.Questions[0].Marks = 0 }},
		{name: "empty content", mutate: func(r *dto.TestCreateDTO) { r.Questions[0].Content = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tests := newFakeTestRepo()
			svc := NewAdminTestService(tests, &fakeAttemptRepo{tests: tests}, newFakeUserRepo())
			req := validTestCreate()
			tc.mutate(&req)

			_, err := svc.CreateTest(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Empty(t, tests.created)
		})
	}
}

func TestAdminTestService_Overview(t *testing.T) {
	repo := seededAttemptRepo(t)
	repo.users.byID["admin"] = &model.User{ID: "admin", Email: "admin@example.com", Role: model.RoleAdmin}
	addAttempt(t, repo, "u1", "test-1", 3, model.AnswerMap{}) // 50%
	addAttempt(t, repo, "u2", "example", 4, model.AnswerMap{}) // 66.7%

	svc := NewAdminTestService(repo.tests, repo, repo.users)
	overview, err := svc.GetOverview(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), overview.TotalStudents)
	assert.Equal(t, int64(2), overview.TotalAttempts)
	assert.Equal(t, int64(2), overview.TotalTests)
	assert.Equal(t, 58, overview.AvgPercentage)
	require.Len(t, overview.RecentAttempts, 2)
	assert.Equal(t, "Student Two", overview.RecentAttempts[0].StudentName)
	assert.Equal(t, 67, overview.RecentAttempts[0].Percentage)
}

func TestAdminTestService_ListLeads(t *testing.T) {
	repo := seededAttemptRepo(t)
	repo.users.byID["admin"] = &model.User{ID: "admin", Email: "admin@example.com", Role: model.RoleAdmin}
	svc := NewAdminTestService(repo.tests, repo, repo.users)

	leads, err := svc.ListLeads(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, leads, 2)

	leads, err = svc.ListLeads(context.Background(), "TWO")
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Equal(t, "u2@example.com", leads[0].Email)
}
