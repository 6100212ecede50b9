// Package client talks to the exam prep HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/lshigami/examprep/internal/dto"
	"github.com/lshigami/examprep/internal/exam"
	"github.com/rs/zerolog/log"
)

// APIError is a non-2xx response.
type APIError struct {
	Status  int
	Message string
	Details string
}

func (e *APIError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s (%d): %s", e.Message, e.Status, e.Details)
	}
	return fmt.Sprintf("%s (%d)", e.Message, e.Status)
}

type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithToken(token string) Option {
	return func(c *Client) { c.token = token }
}

// New returns a client for the API rooted at baseURL, e.g.
// http://localhost:8080/api/v1.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login signs in and keeps the session token for later requests.
func (c *Client) Login(ctx context.Context, email, password string) error {
	var resp dto.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", dto.LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return err
	}
	c.token = resp.Token
	log.Debug().Str("role", resp.Role).Msg("Signed in")
	return nil
}

func (c *Client) ListTests(ctx context.Context, subject string) ([]dto.TestSummaryDTO, error) {
	path := "/tests"
	if subject != "" {
		path += "?subject=" + url.QueryEscape(subject)
	}
	var tests []dto.TestSummaryDTO
	if err := c.do(ctx, http.MethodGet, path, nil, &tests); err != nil {
		return nil, err
	}
	return tests, nil
}

func (c *Client) GetExam(ctx context.Context, testID string) (*dto.ExamDTO, error) {
	var e dto.ExamDTO
	if err := c.do(ctx, http.MethodGet, "/tests/"+url.PathEscape(testID), nil, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

// Submit sends a finished session for grading. It satisfies exam.Submitter.
func (c *Client) Submit(ctx context.Context, submission exam.Submission) (*exam.Result, error) {
	var resp dto.SubmitTestResponse
	if err := c.do(ctx, http.MethodPost, "/submit-test", submission, &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, fmt.Errorf("submission was not accepted")
	}
	return &exam.Result{
		Score:      resp.Score,
		TotalMarks: resp.TotalMarks,
		Percentage: resp.Percentage,
		AttemptID:  resp.AttemptID,
	}, nil
}

func (c *Client) GetAttemptResult(ctx context.Context, attemptID string) (*dto.AttemptResultDTO, error) {
	var result dto.AttemptResultDTO
	if err := c.do(ctx, http.MethodGet, "/attempts/"+url.PathEscape(attemptID), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Questions converts an exam view into session questions.
func Questions(e *dto.ExamDTO) []exam.Question {
	questions := make([]exam.Question, 0, len(e.Questions))
	for _, q := range e.Questions {
		questions = append(questions, exam.Question{ID: q.ID, Content: q.Content, Options: q.Options})
	}
	return questions
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		var body dto.ErrorResponse
		if json.Unmarshal(raw, &body) == nil && body.Error != "" {
			apiErr.Message = body.Error
			apiErr.Details = body.Details
		}
		return apiErr
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
