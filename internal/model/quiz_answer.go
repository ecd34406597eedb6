package model

// QuizAnswer 答题日志，只追加不修改；同一次尝试中每题只允许一条
type QuizAnswer struct {
	BaseModel

	AttemptID  uint `gorm:"not null;uniqueIndex:idx_quiz_answer_attempt_question,priority:1" json:"attempt_id"`
	QuestionID uint `gorm:"not null;uniqueIndex:idx_quiz_answer_attempt_question,priority:2" json:"question_id"`
	OptionID   uint `gorm:"not null" json:"option_id"`
	IsCorrect  bool `gorm:"not null" json:"is_correct"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}
