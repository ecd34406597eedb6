package repository

import (
	"budaya_backend/internal/model"
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// QuizAttemptRepository 负责答题记录与答题日志
type QuizAttemptRepository struct {
	DB *gorm.DB
}

func NewQuizAttemptRepository(db *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: db}
}

// WithTx 返回绑定到事务的仓储
func (r *QuizAttemptRepository) WithTx(tx *gorm.DB) *QuizAttemptRepository {
	return &QuizAttemptRepository{DB: tx}
}

// AttemptAggregates 从答题日志汇总出的统计值
type AttemptAggregates struct {
	CorrectAnswers int `gorm:"column:correct_answers"`
	WrongAnswers   int `gorm:"column:wrong_answers"`
	Score          int `gorm:"column:score"`
}

// AnswerReviewRow 答题日志关联题目与所选选项后的行
type AnswerReviewRow struct {
	AnswerID    uint   `gorm:"column:answer_id"`
	QuestionID  uint   `gorm:"column:question_id"`
	OptionID    uint   `gorm:"column:option_id"`
	IsCorrect   bool   `gorm:"column:is_correct"`
	Question    string `gorm:"column:question"`
	Image       string `gorm:"column:image"`
	Explanation string `gorm:"column:explanation"`
	OrderNumber int    `gorm:"column:order_number"`
	OptionText  string `gorm:"column:option_text"`
}

func (r *QuizAttemptRepository) Create(ctx context.Context, attempt *model.QuizAttempt) error {
	return r.DB.WithContext(ctx).Create(attempt).Error
}

func (r *QuizAttemptRepository) FindByID(ctx context.Context, id uint) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	if err := r.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *QuizAttemptRepository) FindByIDWithQuiz(ctx context.Context, id uint) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	if err := r.DB.WithContext(ctx).Preload("Quiz").First(&a, id).Error; err != nil {
		return nil, err
	}
	return &a, nil
}

// FindByIDForUpdate 在事务内加行锁读取（sqlite 忽略锁子句）
func (r *QuizAttemptRepository) FindByIDForUpdate(ctx context.Context, id uint) (*model.QuizAttempt, error) {
	var a model.QuizAttempt
	err := r.DB.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&a, id).Error
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *QuizAttemptRepository) HasAnswer(ctx context.Context, attemptID, questionID uint) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).Model(&model.QuizAnswer{}).
		Where("attempt_id = ? AND question_id = ?", attemptID, questionID).
		Count(&count).Error
	return count > 0, err
}

func (r *QuizAttemptRepository) CreateAnswer(ctx context.Context, answer *model.QuizAnswer) error {
	return r.DB.WithContext(ctx).Create(answer).Error
}

// ComputeAggregates 重新扫描该尝试的全部答题日志
func (r *QuizAttemptRepository) ComputeAggregates(ctx context.Context, attemptID uint) (AttemptAggregates, error) {
	var agg AttemptAggregates
	err := r.DB.WithContext(ctx).
		Table("quiz_answers AS a").
		Select(`COALESCE(SUM(CASE WHEN a.is_correct THEN 1 ELSE 0 END), 0) AS correct_answers,
			COALESCE(SUM(CASE WHEN a.is_correct THEN 0 ELSE 1 END), 0) AS wrong_answers,
			COALESCE(SUM(CASE WHEN a.is_correct THEN q.points ELSE 0 END), 0) AS score`).
		Joins("JOIN quiz_questions AS q ON q.id = a.question_id").
		Where("a.attempt_id = ? AND a.deleted_at IS NULL", attemptID).
		Scan(&agg).Error
	return agg, err
}

func (r *QuizAttemptRepository) UpdateAggregates(ctx context.Context, attemptID uint, agg AttemptAggregates, percentage float64) error {
	return r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Where("id = ?", attemptID).
		Updates(map[string]interface{}{
			"score":           agg.Score,
			"correct_answers": agg.CorrectAnswers,
			"wrong_answers":   agg.WrongAnswers,
			"percentage":      percentage,
		}).Error
}

func (r *QuizAttemptRepository) MarkCompleted(ctx context.Context, attemptID uint, completedAt time.Time, timeTaken int) error {
	return r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).
		Where("id = ?", attemptID).
		Updates(map[string]interface{}{
			"completed_at": completedAt,
			"time_taken":   timeTaken,
		}).Error
}

// GetAnswersForReview 按题号排序，用于结果回顾
func (r *QuizAttemptRepository) GetAnswersForReview(ctx context.Context, attemptID uint) ([]AnswerReviewRow, error) {
	var rows []AnswerReviewRow
	err := r.DB.WithContext(ctx).
		Table("quiz_answers AS a").
		Select(`a.id AS answer_id, a.question_id, a.option_id, a.is_correct,
			q.question, q.image, q.explanation, q.order_number,
			o.option_text`).
		Joins("JOIN quiz_questions AS q ON q.id = a.question_id").
		Joins("JOIN quiz_options AS o ON o.id = a.option_id").
		Where("a.attempt_id = ? AND a.deleted_at IS NULL", attemptID).
		Order("q.order_number asc, a.id asc").
		Scan(&rows).Error
	return rows, err
}

func (r *QuizAttemptRepository) ListByUser(ctx context.Context, userID uint, page, limit int) ([]model.QuizAttempt, int64, error) {
	var attempts []model.QuizAttempt
	var total int64
	query := r.DB.WithContext(ctx).Model(&model.QuizAttempt{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	offset := (page - 1) * limit
	err := query.Preload("Quiz").
		Order("started_at desc, id desc").
		Offset(offset).Limit(limit).
		Find(&attempts).Error
	return attempts, total, err
}
