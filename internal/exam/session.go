// Package exam holds the client side of a timed exam: the session state and
// the controller that drives its timer, dialogs and submission.
package exam

import (
	"errors"
	"fmt"
)

var (
	ErrAlreadySubmitted = errors.New("exam already submitted")
	ErrUnknownQuestion  = errors.New("unknown question")
	ErrInvalidOption    = errors.New("option index out of range")
)

// Question is a question as shown to the student.
type Question struct {
	ID      string   `json:"id"`
	Content string   `json:"content"`
	Options []string `json:"options"`
}

// Submission is the payload sent once when the session ends.
type Submission struct {
	TestID    string         `json:"testId"`
	Answers   map[string]int `json:"answers"`
	TimeTaken int            `json:"timeTaken"`
}

// Snapshot is a read-only copy of the session state.
type Snapshot struct {
	TestID        string
	Index         int
	QuestionCount int
	TimeLeft      int
	Submitted     bool
	Answers       map[string]int
	Marked        map[string]bool
}

// Session is the state of one exam sitting. It is not safe for concurrent
// use; Controller serializes access to it.
type Session struct {
	testID    string
	duration  int // seconds
	questions []Question
	positions map[string]int

	index     int
	answers   map[string]int
	marked    map[string]bool
	timeLeft  int
	submitted bool
}

func NewSession(testID string, durationMinutes int, questions []Question) *Session {
	s := &Session{}
	s.Initialize(testID, durationMinutes, questions)
	return s
}

// Initialize discards all previous state and starts the clock at the full
// duration.
func (s *Session) Initialize(testID string, durationMinutes int, questions []Question) {
	if durationMinutes < 0 {
		durationMinutes = 0
	}
	s.testID = testID
	s.duration = durationMinutes * 60
	s.questions = append([]Question(nil), questions...)
	s.positions = make(map[string]int, len(questions))
	for i, q := range s.questions {
		s.positions[q.ID] = i
	}
	s.index = 0
	s.answers = make(map[string]int)
	s.marked = make(map[string]bool)
	s.timeLeft = s.duration
	s.submitted = false
}

// SelectAnswer records (or overwrites) the chosen option for a question.
func (s *Session) SelectAnswer(questionID string, option int) error {
	if s.submitted {
		return ErrAlreadySubmitted
	}
	pos, ok := s.positions[questionID]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if option < 0 || option >= len(s.questions[pos].Options) {
		return fmt.Errorf("%w: %d for question %s", ErrInvalidOption, option, questionID)
	}
	s.answers[questionID] = option
	return nil
}

func (s *Session) GoNext() {
	s.JumpTo(s.index + 1)
}

func (s *Session) GoPrevious() {
	s.JumpTo(s.index - 1)
}

// JumpTo moves to index, clamped to the question range.
func (s *Session) JumpTo(index int) {
	last := len(s.questions) - 1
	if index > last {
		index = last
	}
	if index < 0 {
		index = 0
	}
	s.index = index
}

func (s *Session) ToggleMark(questionID string) error {
	if _, ok := s.positions[questionID]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownQuestion, questionID)
	}
	if s.marked[questionID] {
		delete(s.marked, questionID)
	} else {
		s.marked[questionID] = true
	}
	return nil
}

// Tick removes one second from the clock, never going below zero. It reports
// whether this tick is the one that ran the time out.
func (s *Session) Tick() bool {
	if s.submitted || s.timeLeft == 0 {
		return false
	}
	s.timeLeft--
	return s.timeLeft == 0
}

// Payload builds the submission without ending the session.
func (s *Session) Payload() Submission {
	answers := make(map[string]int, len(s.answers))
	for k, v := range s.answers {
		answers[k] = v
	}
	return Submission{
		TestID:    s.testID,
		Answers:   answers,
		TimeTaken: s.ElapsedSeconds(),
	}
}

// Submit ends the session. It can only happen once per Initialize.
func (s *Session) Submit() (Submission, error) {
	if s.submitted {
		return Submission{}, ErrAlreadySubmitted
	}
	payload := s.Payload()
	s.submitted = true
	return payload, nil
}

func (s *Session) Snapshot() Snapshot {
	marked := make(map[string]bool, len(s.marked))
	for k := range s.marked {
		marked[k] = true
	}
	return Snapshot{
		TestID:        s.testID,
		Index:         s.index,
		QuestionCount: len(s.questions),
		TimeLeft:      s.timeLeft,
		Submitted:     s.submitted,
		Answers:       s.Payload().Answers,
		Marked:        marked,
	}
}

// CurrentQuestion returns the question at the current index; ok is false for
// a session without questions.
func (s *Session) CurrentQuestion() (Question, bool) {
	if len(s.questions) == 0 {
		return Question{}, false
	}
	return s.questions[s.index], true
}

func (s *Session) Questions() []Question {
	return append([]Question(nil), s.questions...)
}

func (s *Session) SelectedOption(questionID string) (int, bool) {
	idx, ok := s.answers[questionID]
	return idx, ok
}

func (s *Session) AnsweredCount() int {
	return len(s.answers)
}

func (s *Session) IsMarked(questionID string) bool {
	return s.marked[questionID]
}

func (s *Session) TimeLeft() int {
	return s.timeLeft
}

func (s *Session) Submitted() bool {
	return s.submitted
}

func (s *Session) ElapsedSeconds() int {
	return s.duration - s.timeLeft
}
