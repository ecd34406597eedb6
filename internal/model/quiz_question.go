package model

const DefaultQuestionPoints = 100

// swagger:model QuizQuestion
type QuizQuestion struct {
	BaseModel

	QuizID      uint         `gorm:"not null;uniqueIndex:idx_quiz_question_order,priority:1" json:"quiz_id"`
	Question    string       `gorm:"type:text;not null" json:"question"`
	Image       string       `gorm:"size:255" json:"image"`
	OrderNumber int          `gorm:"not null;uniqueIndex:idx_quiz_question_order,priority:2" json:"order_number"`
	Points      int          `gorm:"not null;default:100" json:"points"`
	Explanation string       `gorm:"type:text" json:"explanation"`
	Options     []QuizOption `gorm:"foreignKey:QuestionID" json:"options,omitempty"`
}

func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// CorrectOption 返回第一个被标记为正确的选项（按显示顺序），以及被标记为正确的选项总数
func (q *QuizQuestion) CorrectOption() (*QuizOption, int) {
	var first *QuizOption
	count := 0
	for i := range q.Options {
		if !q.Options[i].IsCorrect {
			continue
		}
		count++
		if first == nil || q.Options[i].OrderNumber < first.OrderNumber {
			first = &q.Options[i]
		}
	}
	return first, count
}
