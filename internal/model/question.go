package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Question struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	TestID      string                      `json:"test_id" gorm:"size:36;not null;index"`
	Content     string                      `json:"content" gorm:"type:text;not null"`
	Options     datatypes.JSONSlice[string] `json:"options" gorm:"type:jsonb;not null"`
	CorrectIdx  int                         `json:"correct_idx" gorm:"not null"`
	Marks       int                         `json:"marks" gorm:"not null;default:1"`
	Topic       *string                     `json:"topic,omitempty"`
	Explanation *string                     `json:"explanation,omitempty" gorm:"type:text"`
	Difficulty  *string                     `json:"difficulty,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
}

func (q *Question) BeforeCreate(tx *gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}

// TopicOr returns the topic label, or fallback when the question has none.
func (q *Question) TopicOr(fallback string) string {
	if q.Topic == nil || *q.Topic == "" {
		return fallback
	}
	return *q.Topic
}
