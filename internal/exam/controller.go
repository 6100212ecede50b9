package exam

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

type Phase string

const (
	PhaseActive     Phase = "active"
	PhaseConfirm    Phase = "confirm"
	PhaseTerminate  Phase = "terminate"
	PhaseSubmitting Phase = "submitting"
	PhaseResult     Phase = "result"
	PhaseFailed     Phase = "failed"
	PhaseTerminated Phase = "terminated"
)

const DefaultTickInterval = time.Second

var (
	ErrTerminated     = errors.New("exam was terminated")
	ErrNotSubmittable = errors.New("exam cannot be submitted from the current dialog")
)

// Result is the server's answer to a successful submission.
type Result struct {
	Score      int    `json:"score"`
	TotalMarks int    `json:"totalMarks"`
	Percentage int    `json:"percentage"`
	AttemptID  string `json:"attemptId"`
}

// Submitter sends a finished session to the grading service.
type Submitter interface {
	Submit(ctx context.Context, submission Submission) (*Result, error)
}

// View is what the UI renders.
type View struct {
	Snapshot
	Phase    Phase
	Question Question
	Result   *Result
	Error    string
}

// Controller owns a Session and everything around it: the countdown, the
// confirm/terminate/result dialogs and the single submission.
type Controller struct {
	mu        sync.Mutex
	session   *Session
	submitter Submitter
	interval  time.Duration
	phase     Phase
	result    *Result
	lastErr   string
	wake      chan struct{}
	onChange  func(View)
}

type Option func(*Controller)

func WithTickInterval(d time.Duration) Option {
	return func(c *Controller) { c.interval = d }
}

// WithOnChange registers a callback invoked, outside the lock, after every
// state change.
func WithOnChange(fn func(View)) Option {
	return func(c *Controller) { c.onChange = fn }
}

func NewController(session *Session, submitter Submitter, opts ...Option) *Controller {
	c := &Controller{
		session:   session,
		submitter: submitter,
		interval:  DefaultTickInterval,
		phase:     PhaseActive,
		wake:      make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Run drives the countdown until ctx is done. The ticker only runs while the
// exam is active, not submitted and has time left; any other state parks Run
// until the state changes again. An active exam with no time left is
// submitted straight away.
func (c *Controller) Run(ctx context.Context) error {
	for {
		if testID, ok := c.expired(); ok {
			c.autoSubmit(ctx, testID)
		}
		if !c.timerRunning() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-c.wake:
				continue
			}
		}

		ticker := time.NewTicker(c.interval)
		for c.timerRunning() {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return ctx.Err()
			case <-c.wake:
			case <-ticker.C:
				c.Tick(ctx)
			}
		}
		ticker.Stop()
	}
}

func (c *Controller) timerRunning() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.timerRunningLocked()
}

func (c *Controller) timerRunningLocked() bool {
	return c.phase == PhaseActive && !c.session.Submitted() && c.session.TimeLeft() > 0
}

func (c *Controller) expired() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	ok := c.phase == PhaseActive && !c.session.Submitted() && c.session.TimeLeft() <= 0
	return c.session.testID, ok
}

func (c *Controller) autoSubmit(ctx context.Context, testID string) {
	log.Info().Str("testID", testID).Msg("Time is up, submitting exam")
	if err := c.ConfirmSubmit(ctx); err != nil && !errors.Is(err, ErrAlreadySubmitted) {
		log.Warn().Err(err).Msg("Automatic submission failed")
	}
}

// Tick advances the clock by one second when the timer is running. When the
// time runs out the exam is submitted without confirmation.
func (c *Controller) Tick(ctx context.Context) {
	c.mu.Lock()
	if !c.timerRunningLocked() {
		c.mu.Unlock()
		return
	}
	expired := c.session.Tick()
	testID := c.session.testID
	c.mu.Unlock()
	c.changed()

	if expired {
		c.autoSubmit(ctx, testID)
	}
}

// HandleKey applies the keyboard shortcuts. Keys are ignored unless the exam
// is active.
func (c *Controller) HandleKey(key string) {
	c.mu.Lock()
	if c.phase != PhaseActive || c.session.Submitted() {
		c.mu.Unlock()
		return
	}
	switch key {
	case "ArrowLeft":
		c.session.GoPrevious()
	case "ArrowRight":
		c.session.GoNext()
	case "1", "2", "3", "4":
		option := int(key[0] - '1')
		if q, ok := c.session.CurrentQuestion(); ok && option < len(q.Options) {
			_ = c.session.SelectAnswer(q.ID, option)
		}
	default:
		c.mu.Unlock()
		return
	}
	c.mu.Unlock()
	c.changed()
}

func (c *Controller) SelectAnswer(questionID string, option int) error {
	return c.mutate(func(s *Session) error { return s.SelectAnswer(questionID, option) })
}

func (c *Controller) GoNext() {
	_ = c.mutate(func(s *Session) error { s.GoNext(); return nil })
}

func (c *Controller) GoPrevious() {
	_ = c.mutate(func(s *Session) error { s.GoPrevious(); return nil })
}

func (c *Controller) JumpTo(index int) {
	_ = c.mutate(func(s *Session) error { s.JumpTo(index); return nil })
}

func (c *Controller) ToggleMark(questionID string) error {
	return c.mutate(func(s *Session) error { return s.ToggleMark(questionID) })
}

// mutate applies fn while the exam is active.
func (c *Controller) mutate(fn func(*Session) error) error {
	c.mu.Lock()
	if c.phase == PhaseTerminated {
		c.mu.Unlock()
		return ErrTerminated
	}
	if c.phase != PhaseActive || c.session.Submitted() {
		c.mu.Unlock()
		return ErrAlreadySubmitted
	}
	err := fn(c.session)
	c.mu.Unlock()
	if err == nil {
		c.changed()
	}
	return err
}

// RequestSubmit opens the confirmation dialog.
func (c *Controller) RequestSubmit() {
	c.setPhaseFrom(PhaseConfirm, PhaseActive)
}

// RequestTerminate opens the terminate dialog.
func (c *Controller) RequestTerminate() {
	c.setPhaseFrom(PhaseTerminate, PhaseActive)
}

// CancelDialog closes the confirm or terminate dialog and resumes the timer.
func (c *Controller) CancelDialog() {
	c.setPhaseFrom(PhaseActive, PhaseConfirm, PhaseTerminate)
}

// DismissError closes the failure dialog. The answers are still there and the
// exam can be submitted again.
func (c *Controller) DismissError() {
	c.mu.Lock()
	if c.phase == PhaseFailed {
		c.lastErr = ""
	}
	c.mu.Unlock()
	c.setPhaseFrom(PhaseActive, PhaseFailed)
}

// ConfirmTerminate abandons the exam. Nothing is sent to the server.
func (c *Controller) ConfirmTerminate() {
	c.mu.Lock()
	if c.phase == PhaseSubmitting || c.phase == PhaseResult || c.phase == PhaseTerminated {
		c.mu.Unlock()
		return
	}
	c.session.Initialize("", 0, nil)
	c.phase = PhaseTerminated
	c.mu.Unlock()
	c.changed()
}

func (c *Controller) setPhaseFrom(to Phase, from ...Phase) {
	c.mu.Lock()
	allowed := false
	for _, p := range from {
		if c.phase == p {
			allowed = true
			break
		}
	}
	if !allowed || c.session.Submitted() {
		c.mu.Unlock()
		return
	}
	c.phase = to
	c.mu.Unlock()
	c.changed()
}

// ConfirmSubmit sends the session to the grading service. It is accepted from
// the active exam (time ran out), the confirmation dialog and the failure
// dialog. While the request is in flight the timer is stopped and further
// submissions are refused. On failure the answers are kept and the exam moves
// to PhaseFailed.
func (c *Controller) ConfirmSubmit(ctx context.Context) error {
	c.mu.Lock()
	switch {
	case c.phase == PhaseTerminated:
		c.mu.Unlock()
		return ErrTerminated
	case c.phase == PhaseSubmitting || c.session.Submitted():
		c.mu.Unlock()
		return ErrAlreadySubmitted
	case c.phase != PhaseActive && c.phase != PhaseConfirm && c.phase != PhaseFailed:
		c.mu.Unlock()
		return ErrNotSubmittable
	}
	payload := c.session.Payload()
	c.phase = PhaseSubmitting
	c.lastErr = ""
	c.mu.Unlock()
	c.changed()

	result, err := c.submitter.Submit(ctx, payload)

	c.mu.Lock()
	if err != nil {
		c.phase = PhaseFailed
		c.lastErr = err.Error()
		c.mu.Unlock()
		log.Warn().Err(err).Str("testID", payload.TestID).Msg("Exam submission failed")
		c.changed()
		return err
	}
	_, _ = c.session.Submit()
	c.result = result
	c.phase = PhaseResult
	c.mu.Unlock()
	c.changed()
	return nil
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) Result() *Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.result
}

func (c *Controller) View() View {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewLocked()
}

func (c *Controller) viewLocked() View {
	q, _ := c.session.CurrentQuestion()
	return View{
		Snapshot: c.session.Snapshot(),
		Phase:    c.phase,
		Question: q,
		Result:   c.result,
		Error:    c.lastErr,
	}
}

// changed wakes Run so it can start or stop the ticker and notifies the
// listener.
func (c *Controller) changed() {
	select {
	case c.wake <- struct{}{}:
	default:
	}
	if c.onChange != nil {
		c.onChange(c.View())
	}
}
