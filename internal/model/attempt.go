package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AnswerMap maps a question id to the selected option index. A question that
// was not answered has no entry.
type AnswerMap map[string]int

// Attempt is written once per submission and never updated.
type Attempt struct {
	ID          string                        `gorm:"primaryKey;size:36" json:"id"`
	UserID      string                        `json:"user_id" gorm:"size:36;not null;index"`
	User        User                          `json:"user,omitempty" gorm:"foreignKey:UserID"`
	TestID      string                        `json:"test_id" gorm:"size:36;not null;index"`
	Test        Test                          `json:"test,omitempty" gorm:"foreignKey:TestID"`
	Score       int                           `json:"score" gorm:"not null"`
	Answers     datatypes.JSONType[AnswerMap] `json:"answers" gorm:"type:jsonb;not null"`
	TimeTaken   int                           `json:"time_taken" gorm:"not null;default:0"` // seconds
	CompletedAt time.Time                     `json:"completed_at" gorm:"autoCreateTime;index"`
}

func (a *Attempt) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// AnswerMap returns the stored answers, never nil.
func (a *Attempt) AnswerMap() AnswerMap {
	answers := a.Answers.Data()
	if answers == nil {
		return AnswerMap{}
	}
	return answers
}
