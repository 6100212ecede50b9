package dto

import "time"

// TestSummaryDTO is used for listing tests available to users.
type TestSummaryDTO struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Subject       string    `json:"subject"`
	Duration      int       `json:"duration"`
	TotalMarks    int       `json:"total_marks"`
	QuestionCount int       `json:"question_count"`
	CreatedAt     time.Time `json:"created_at"`
}

// ExamQuestionDTO is what a student sees during an exam. It never carries the
// correct option.
type ExamQuestionDTO struct {
	ID      string   `json:"id"`
	Content string   `json:"content"`
	Options []string `json:"options"`
}

type ExamDTO struct {
	ID        string            `json:"id"`
	Title     string            `json:"title"`
	Subject   string            `json:"subject"`
	Duration  int               `json:"duration"`
	Questions []ExamQuestionDTO `json:"questions"`
}

type SubmitTestResponse struct {
	Success    bool   `json:"success"`
	Score      int    `json:"score"`
	TotalMarks int    `json:"totalMarks"`
	Percentage int    `json:"percentage"`
	AttemptID  string `json:"attemptId"`
}

// AttemptSummaryDTO is one row of a user's attempt history.
type AttemptSummaryDTO struct {
	ID          string    `json:"id"`
	TestID      string    `json:"test_id"`
	TestTitle   string    `json:"test_title"`
	Subject     string    `json:"subject"`
	Score       int       `json:"score"`
	TotalMarks  int       `json:"total_marks"`
	Percentage  int       `json:"percentage"`
	TimeTaken   int       `json:"time_taken"`
	CompletedAt time.Time `json:"completed_at"`
}

type QuestionReviewDTO struct {
	ID          string   `json:"id"`
	Content     string   `json:"content"`
	Options     []string `json:"options"`
	SelectedIdx *int     `json:"selected_idx,omitempty"`
	CorrectIdx  int      `json:"correct_idx"`
	IsCorrect   bool     `json:"is_correct"`
	Marks       int      `json:"marks"`
	Topic       string   `json:"topic"`
	Explanation *string  `json:"explanation,omitempty"`
	Difficulty  *string  `json:"difficulty,omitempty"`
}

type TopicPerformanceDTO struct {
	Topic       string `json:"topic"`
	DisplayName string `json:"display_name"`
	Correct     int    `json:"correct"`
	Total       int    `json:"total"`
	Score       int    `json:"score"`
	Percentage  int    `json:"percentage"`
	Weak        bool   `json:"weak"`
}

// AttemptResultDTO is the full review of a completed attempt.
type AttemptResultDTO struct {
	ID             string                `json:"id"`
	TestID         string                `json:"test_id"`
	TestTitle      string                `json:"test_title"`
	Subject        string                `json:"subject"`
	Score          int                   `json:"score"`
	TotalMarks     int                   `json:"total_marks"`
	Percentage     int                   `json:"percentage"`
	Passed         bool                  `json:"passed"`
	TimeTaken      int                   `json:"time_taken"`
	CorrectCount   int                   `json:"correct_count"`
	IncorrectCount int                   `json:"incorrect_count"`
	CompletedAt    time.Time             `json:"completed_at"`
	Questions      []QuestionReviewDTO   `json:"questions"`
	Topics         []TopicPerformanceDTO `json:"topics"`
}

type RecommendationDTO struct {
	Topic       string `json:"topic"`
	DisplayName string `json:"display_name"`
	Percentage  int    `json:"percentage"`
	Advice      string `json:"advice"`
	Source      string `json:"source"` // "gemini" or "static"
}
