package model

// swagger:model QuizOption
type QuizOption struct {
	BaseModel

	QuestionID  uint   `gorm:"not null;uniqueIndex:idx_quiz_option_order,priority:1" json:"question_id"`
	OptionText  string `gorm:"size:500;not null" json:"option_text"`
	OrderNumber int    `gorm:"not null;uniqueIndex:idx_quiz_option_order,priority:2" json:"order_number"`
	IsCorrect   bool   `gorm:"not null;default:false" json:"-"`
}

func (QuizOption) TableName() string {
	return "quiz_options"
}
