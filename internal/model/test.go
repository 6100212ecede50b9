package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Test struct {
	ID         string     `gorm:"primaryKey;size:36" json:"id"`
	Title      string     `json:"title" gorm:"not null"`
	Subject    string     `json:"subject" gorm:"not null;index"`
	Duration   int        `json:"duration" gorm:"not null"` // minutes
	TotalMarks int        `json:"total_marks" gorm:"not null"`
	Questions  []Question `json:"questions,omitempty" gorm:"foreignKey:TestID;constraint:OnDelete:CASCADE;"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (t *Test) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// MarksSum is the sum of the marks of the loaded questions.
func (t *Test) MarksSum() int {
	sum := 0
	for _, q := range t.Questions {
		sum += q.Marks
	}
	return sum
}
