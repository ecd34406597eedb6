package model

type QuizStatus string

const (
	QuizStatusDraft     QuizStatus = "draft"
	QuizStatusPublished QuizStatus = "published"
	QuizStatusArchive   QuizStatus = "archive"
)

// Quiz 由内容管理维护，答题引擎只读
// swagger:model Quiz
type Quiz struct {
	BaseModel

	Title            string         `gorm:"size:255;not null" json:"title"`
	Slug             string         `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	Description      string         `gorm:"type:text" json:"description"`
	Thumbnail        string         `gorm:"size:255" json:"thumbnail"`
	Status           QuizStatus     `gorm:"size:20;not null;default:'draft';index" json:"status"`
	TimeLimit        int            `gorm:"default:0" json:"time_limit"` // 秒，0 表示不限时
	ShuffleQuestions bool           `gorm:"default:false" json:"shuffle_questions"`
	TotalQuestions   int            `gorm:"default:0" json:"total_questions"`
	Questions        []QuizQuestion `gorm:"foreignKey:QuizID" json:"questions,omitempty"`
}

func (Quiz) TableName() string {
	return "quizzes"
}

func (q *Quiz) IsPublished() bool {
	return q.Status == QuizStatusPublished
}
