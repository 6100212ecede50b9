package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/examprep/config"
	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/model"
	"github.com/lshigami/examprep/internal/repository"
	"gorm.io/datatypes"
)

func strPtr(s string) *string { return &s }

func testConfig() *config.Config {
	return &config.Config{
		Grading: config.Grading{
			AllowGuest:    true,
			GuestEmail:    "student@csca-prep.com",
			GuestName:     "Default Student",
			PassThreshold: 60,
			Subjects:      []string{"Mathematics", "Physics", "Chemistry"},
		},
	}
}

// sampleTest is the three question test used throughout: marks 2, 3, 1 with
// correct indices 1, 0, 2.
func sampleTest() *model.Test {
	return &model.Test{
		ID:         "test-1",
		Title:      "Mathematics Mock 1",
		Subject:    "Mathematics",
		Duration:   60,
		TotalMarks: 6,
		Questions: []model.Question{
			{ID: "q1", TestID: "test-1", Content: "1+1?", Options: datatypes.JSONSlice[string]{"1", "2", "3"}, CorrectIdx: 1, Marks: 2, Topic: strPtr("Functions")},
			{ID: "q2", TestID: "test-1", Content: "2+2?", Options: datatypes.JSONSlice[string]{"4", "5", "6"}, CorrectIdx: 0, Marks: 3, Topic: strPtr("Geometry")},
			{ID: "q3", TestID: "test-1", Content: "3+3?", Options: datatypes.JSONSlice[string]{"5", "7", "6"}, CorrectIdx: 2, Marks: 1},
		},
	}
}

type fakeTestRepo struct {
	mu      sync.Mutex
	tests   map[string]*model.Test
	created []*model.Test
	findErr error
	calls   int
}

func newFakeTestRepo(tests ...*model.Test) *fakeTestRepo {
	r := &fakeTestRepo{tests: map[string]*model.Test{}}
	for _, t := range tests {
		r.tests[t.ID] = t
	}
	return r
}

func (r *fakeTestRepo) Create(ctx context.Context, test *model.Test) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if test.ID == "" {
		test.ID = uuid.NewString()
	}
	test.CreatedAt = time.Now()
	r.tests[test.ID] = test
	r.created = append(r.created, test)
	return nil
}

func (r *fakeTestRepo) FindByIDWithQuestions(ctx context.Context, id string) (*model.Test, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.findErr != nil {
		return nil, r.findErr
	}
	t, ok := r.tests[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return t, nil
}

func (r *fakeTestRepo) FindAllWithQuestionCount(ctx context.Context, subject string) ([]repository.TestWithQuestionCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []repository.TestWithQuestionCount
	for _, t := range r.tests {
		if subject != "" && t.Subject != subject {
			continue
		}
		out = append(out, repository.TestWithQuestionCount{Test: *t, QuestionCount: len(t.Questions)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out, nil
}

func (r *fakeTestRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.tests)), nil
}

type fakeAttemptRepo struct {
	mu        sync.Mutex
	attempts  []*model.Attempt
	tests     *fakeTestRepo
	users     *fakeUserRepo
	createErr error
}

func (r *fakeAttemptRepo) Create(ctx context.Context, attempt *model.Attempt) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	attempt.ID = uuid.NewString()
	attempt.CompletedAt = time.Now()
	stored := *attempt
	r.attempts = append(r.attempts, &stored)
	return nil
}

// hydrate fills the associations the way the gorm preloads do.
func (r *fakeAttemptRepo) hydrate(a model.Attempt) model.Attempt {
	if r.tests != nil {
		if t, ok := r.tests.tests[a.TestID]; ok {
			a.Test = *t
		}
	}
	if r.users != nil {
		if u, ok := r.users.byID[a.UserID]; ok {
			a.User = *u
		}
	}
	return a
}

func (r *fakeAttemptRepo) FindByID(ctx context.Context, id string) (*model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.attempts {
		if a.ID == id {
			h := r.hydrate(*a)
			return &h, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeAttemptRepo) FindAllByUser(ctx context.Context, userID string) ([]model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Attempt
	for _, a := range r.attempts {
		if a.UserID == userID {
			out = append(out, r.hydrate(*a))
		}
	}
	return out, nil
}

func (r *fakeAttemptRepo) FindRecent(ctx context.Context, limit int) ([]model.Attempt, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Attempt
	for i := len(r.attempts) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.hydrate(*r.attempts[i]))
	}
	return out, nil
}

func (r *fakeAttemptRepo) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.attempts)), nil
}

func (r *fakeAttemptRepo) AveragePercentage(ctx context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sum, n := 0.0, 0
	for _, a := range r.attempts {
		h := r.hydrate(*a)
		if h.Test.TotalMarks == 0 {
			continue
		}
		sum += float64(h.Score) * 100 / float64(h.Test.TotalMarks)
		n++
	}
	if n == 0 {
		return 0, nil
	}
	return sum / float64(n), nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*model.User
	failAll error
}

func newFakeUserRepo(users ...*model.User) *fakeUserRepo {
	r := &fakeUserRepo{byID: map[string]*model.User{}}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.byID {
		if u.Email == user.Email {
			return errors.New("duplicate key value violates unique constraint")
		}
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	if user.Role == "" {
		user.Role = model.RoleStudent
	}
	user.CreatedAt = time.Now()
	r.byID[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	u, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failAll != nil {
		return nil, r.failAll
	}
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *fakeUserRepo) FirstOrCreateByEmail(ctx context.Context, user *model.User) (*model.User, error) {
	if r.failAll != nil {
		return nil, r.failAll
	}
	if u, err := r.FindByEmail(ctx, user.Email); err == nil {
		return u, nil
	}
	created := *user
	if err := r.Create(ctx, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *fakeUserRepo) CountByRole(ctx context.Context, role string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, u := range r.byID {
		if u.Role == role {
			n++
		}
	}
	return n, nil
}

func (r *fakeUserRepo) FindStudentsWithAttemptCount(ctx context.Context, search string) ([]repository.UserWithAttemptCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	search = strings.ToLower(search)
	var out []repository.UserWithAttemptCount
	for _, u := range r.byID {
		if u.Role != model.RoleStudent {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(u.Name+" "+u.Email), search) {
			continue
		}
		out = append(out, repository.UserWithAttemptCount{User: *u})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

type publishedEvent struct {
	Type    string
	Payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(ctx context.Context, eventType string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{Type: eventType, Payload: payload})
	return nil
}

type fakeAdvisor struct {
	advice map[string]string
	err    error
	seen   []dto.TopicPerformanceDTO
}

func (a *fakeAdvisor) Advise(ctx context.Context, subject string, weak []dto.TopicPerformanceDTO) (map[string]string, error) {
	a.seen = weak
	return a.advice, a.err
}
