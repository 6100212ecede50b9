package repository

import (
	"context"
	"testing"

	"github.com/lshigami/examprep/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestTestRepository_QuestionsComeBackInIDOrder(t *testing.T) {
	repo := NewTestRepository(newTestDB(t))
	ctx := context.Background()

	test := &model.Test{
		ID:         "t1",
		Title:      "Physics Mock 1",
		Subject:    "Physics",
		Duration:   60,
		TotalMarks: 6,
		Questions: []model.Question{
			{ID: "q3", Content: "Third", Options: datatypes.JSONSlice[string]{"a", "b"}, CorrectIdx: 1, Marks: 2},
			{ID: "q1", Content: "First", Options: datatypes.JSONSlice[string]{"a", "b", "c"}, CorrectIdx: 2, Marks: 2, Topic: strPtr("Kinematics")},
			{ID: "q2", Content: "Second", Options: datatypes.JSONSlice[string]{"a", "b"}, CorrectIdx: 0, Marks: 2},
		},
	}
	require.NoError(t, repo.Create(ctx, test))

	for i := 0; i < 2; i++ {
		got, err := repo.FindByIDWithQuestions(ctx, "t1")
		require.NoError(t, err)
		require.Len(t, got.Questions, 3)
		assert.Equal(t, "q1", got.Questions[0].ID)
		assert.Equal(t, "q2", got.Questions[1].ID)
		assert.Equal(t, "q3", got.Questions[2].ID)
		assert.Equal(t, datatypes.JSONSlice[string]{"a", "b", "c"}, got.Questions[0].Options)
		assert.Equal(t, 2, got.Questions[0].CorrectIdx)
		assert.Equal(t, "Kinematics", got.Questions[0].TopicOr(""))
		assert.Equal(t, "t1", got.Questions[2].TestID)
	}

	_, err := repo.FindByIDWithQuestions(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTestRepository_FindAllWithQuestionCount(t *testing.T) {
	repo := NewTestRepository(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Test{
		ID: "phys", Title: "Physics Mock 1", Subject: "Physics", Duration: 60, TotalMarks: 4,
		Questions: []model.Question{
			{Content: "a", Options: datatypes.JSONSlice[string]{"x"}, Marks: 2},
			{Content: "b", Options: datatypes.JSONSlice[string]{"x"}, Marks: 2},
		},
	}))
	require.NoError(t, repo.Create(ctx, &model.Test{ID: "math", Title: "Mathematics Mock 1", Subject: "Mathematics", Duration: 60, TotalMarks: 0}))

	all, err := repo.FindAllWithQuestionCount(ctx, "")
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "math", all[0].ID)
	assert.Equal(t, 0, all[0].QuestionCount)
	assert.Equal(t, "phys", all[1].ID)
	assert.Equal(t, 2, all[1].QuestionCount)

	physics, err := repo.FindAllWithQuestionCount(ctx, "Physics")
	require.NoError(t, err)
	require.Len(t, physics, 1)
	assert.Equal(t, "Physics Mock 1", physics[0].Title)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}
