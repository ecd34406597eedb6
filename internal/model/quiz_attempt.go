package model

import "time"

// QuizAttempt 一次答题记录，聚合字段由答题日志重算得出
// swagger:model QuizAttempt
type QuizAttempt struct {
	BaseModel

	QuizID         uint       `gorm:"not null;index" json:"quiz_id"`
	UserID         *uint      `gorm:"index" json:"user_id,omitempty"` // nil 表示游客
	TotalPoints    int        `gorm:"not null;default:0" json:"total_points"`
	Score          int        `gorm:"not null;default:0" json:"score"`
	CorrectAnswers int        `gorm:"not null;default:0" json:"correct_answers"`
	WrongAnswers   int        `gorm:"not null;default:0" json:"wrong_answers"`
	Percentage     float64    `gorm:"not null;default:0" json:"percentage"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
	TimeTaken      *int       `json:"time_taken,omitempty"` // 秒
	Quiz           *Quiz      `gorm:"foreignKey:QuizID" json:"quiz,omitempty"`
}

func (QuizAttempt) TableName() string {
	return "quiz_attempts"
}

func (a *QuizAttempt) IsCompleted() bool {
	return a.CompletedAt != nil
}
