package repository

import (
	"budaya_backend/internal/model"
	"context"

	"gorm.io/gorm"
)

// QuizRepository 题库只读访问
type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

func (r *QuizRepository) FindPublishedBySlug(ctx context.Context, slug string) (*model.Quiz, error) {
	var quiz model.Quiz
	err := r.DB.WithContext(ctx).
		Where("slug = ? AND status = ?", slug, model.QuizStatusPublished).
		First(&quiz).Error
	if err != nil {
		return nil, err
	}
	return &quiz, nil
}

// GetQuestionsWithOptions 题目与选项均按显示顺序升序
func (r *QuizRepository) GetQuestionsWithOptions(ctx context.Context, quizID uint) ([]model.QuizQuestion, error) {
	var qs []model.QuizQuestion
	err := r.DB.WithContext(ctx).
		Preload("Options", func(db *gorm.DB) *gorm.DB {
			return db.Order("order_number asc, id asc")
		}).
		Where("quiz_id = ?", quizID).
		Order("order_number asc, id asc").
		Find(&qs).Error
	return qs, err
}
