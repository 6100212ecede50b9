package dto

import "time"

// QuestionCreateDTO is used within TestCreateDTO for admin test creation.
type QuestionCreateDTO struct {
	Content     string   `json:"content" binding:"required"`
	Options     []string `json:"options" binding:"required,min=2"`
	CorrectIdx  int      `json:"correct_idx" binding:"min=0"`
	Marks       int      `json:"marks" binding:"required,gt=0"`
	Topic       *string  `json:"topic"`
	Explanation *string  `json:"explanation"`
	Difficulty  *string  `json:"difficulty"`
}

// TestCreateDTO is for admin to create a new test with all its questions.
type TestCreateDTO struct {
	Title      string              `json:"title" binding:"required"`
	Subject    string              `json:"subject" binding:"required"`
	Duration   int                 `json:"duration" binding:"required,gt=0"`
	TotalMarks int                 `json:"total_marks" binding:"required,gt=0"`
	Questions  []QuestionCreateDTO `json:"questions" binding:"required,min=1,dive"`
}

type RecentAttemptDTO struct {
	ID          string    `json:"id"`
	StudentName string    `json:"student_name"`
	TestTitle   string    `json:"test_title"`
	Score       int       `json:"score"`
	TotalMarks  int       `json:"total_marks"`
	Percentage  int       `json:"percentage"`
	CompletedAt time.Time `json:"completed_at"`
}

type AdminOverviewDTO struct {
	TotalStudents  int64              `json:"total_students"`
	TotalAttempts  int64              `json:"total_attempts"`
	TotalTests     int64              `json:"total_tests"`
	AvgPercentage  int                `json:"avg_percentage"`
	RecentAttempts []RecentAttemptDTO `json:"recent_attempts"`
}

// LeadDTO is a student contact row of the admin leads table.
type LeadDTO struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Whatsapp     *string   `json:"whatsapp,omitempty"`
	Major        *string   `json:"major,omitempty"`
	AttemptCount int64     `json:"attempt_count"`
	CreatedAt    time.Time `json:"created_at"`
}
