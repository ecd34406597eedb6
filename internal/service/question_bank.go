package service

import (
	"budaya_backend/internal/model"
	"budaya_backend/internal/repository"
	"budaya_backend/internal/util"
	"budaya_backend/pkg/logger"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	quizBankSlugKeyPrefix      = "quiz:bank:slug:"
	quizBankQuestionsKeyPrefix = "quiz:bank:questions:"
)

// 缓存快照需要保留 is_correct，模型上的 json 标签会隐藏它
type cachedOption struct {
	ID          uint   `json:"id"`
	QuestionID  uint   `json:"question_id"`
	OptionText  string `json:"option_text"`
	OrderNumber int    `json:"order_number"`
	IsCorrect   bool   `json:"is_correct"`
}

type cachedQuestion struct {
	ID          uint           `json:"id"`
	QuizID      uint           `json:"quiz_id"`
	Question    string         `json:"question"`
	Image       string         `json:"image"`
	OrderNumber int            `json:"order_number"`
	Points      int            `json:"points"`
	Explanation string         `json:"explanation"`
	Options     []cachedOption `json:"options"`
}

// QuestionBank 题库只读接口，Redis 可用时缓存已发布测验与题目
type QuestionBank struct {
	QuizRepo *repository.QuizRepository
	Redis    *redis.Client
	cacheTTL atomic.Int64
}

func NewQuestionBank(quizRepo *repository.QuizRepository, rdb *redis.Client, cacheTTL time.Duration) *QuestionBank {
	b := &QuestionBank{QuizRepo: quizRepo, Redis: rdb}
	b.SetCacheTTL(cacheTTL)
	return b
}

// SetCacheTTL 为 0 时关闭缓存
func (b *QuestionBank) SetCacheTTL(ttl time.Duration) {
	b.cacheTTL.Store(int64(ttl))
}

func (b *QuestionBank) cacheEnabled() (time.Duration, bool) {
	ttl := time.Duration(b.cacheTTL.Load())
	return ttl, b.Redis != nil && ttl > 0
}

// PublishedQuizBySlug 草稿与归档状态的测验一律视为不存在
func (b *QuestionBank) PublishedQuizBySlug(ctx context.Context, slug string) (*model.Quiz, error) {
	key := quizBankSlugKeyPrefix + slug
	var quiz model.Quiz
	if b.getCached(ctx, key, &quiz) && quiz.IsPublished() {
		return &quiz, nil
	}

	found, err := b.QuizRepo.FindPublishedBySlug(ctx, slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrQuizNotFound
		}
		return nil, fmt.Errorf("find quiz %q: %w", slug, err)
	}
	b.setCached(ctx, key, found)
	return found, nil
}

// QuestionsForQuiz 题目与选项均按显示顺序，包含 is_correct，只供服务端使用
func (b *QuestionBank) QuestionsForQuiz(ctx context.Context, quizID uint) ([]model.QuizQuestion, error) {
	key := fmt.Sprintf("%s%d", quizBankQuestionsKeyPrefix, quizID)
	var cached []cachedQuestion
	if b.getCached(ctx, key, &cached) {
		return fromCachedQuestions(cached), nil
	}

	questions, err := b.QuizRepo.GetQuestionsWithOptions(ctx, quizID)
	if err != nil {
		return nil, fmt.Errorf("load questions for quiz %d: %w", quizID, err)
	}
	b.setCached(ctx, key, toCachedQuestions(questions))
	return questions, nil
}

// FindQuestion 在测验题目中定位题目
func (b *QuestionBank) FindQuestion(ctx context.Context, quizID, questionID uint) (*model.QuizQuestion, error) {
	questions, err := b.QuestionsForQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	for i := range questions {
		if questions[i].ID == questionID {
			return &questions[i], nil
		}
	}
	return nil, util.ErrQuestionNotFound
}

func (b *QuestionBank) getCached(ctx context.Context, key string, dst interface{}) bool {
	if _, ok := b.cacheEnabled(); !ok {
		return false
	}
	val, err := b.Redis.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.FromContext(ctx).Warn("Question bank cache read failed", zap.String("key", key), zap.Error(err))
		return false
	}
	if err := json.Unmarshal([]byte(val), dst); err != nil {
		logger.FromContext(ctx).Warn("Question bank cache corrupted", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (b *QuestionBank) setCached(ctx context.Context, key string, v interface{}) {
	ttl, ok := b.cacheEnabled()
	if !ok {
		return
	}
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := b.Redis.Set(ctx, key, data, ttl).Err(); err != nil {
		logger.FromContext(ctx).Warn("Question bank cache write failed", zap.String("key", key), zap.Error(err))
	}
}

func toCachedQuestions(questions []model.QuizQuestion) []cachedQuestion {
	out := make([]cachedQuestion, 0, len(questions))
	for _, q := range questions {
		cq := cachedQuestion{
			ID:          q.ID,
			QuizID:      q.QuizID,
			Question:    q.Question,
			Image:       q.Image,
			OrderNumber: q.OrderNumber,
			Points:      q.Points,
			Explanation: q.Explanation,
		}
		for _, o := range q.Options {
			cq.Options = append(cq.Options, cachedOption{
				ID:          o.ID,
				QuestionID:  o.QuestionID,
				OptionText:  o.OptionText,
				OrderNumber: o.OrderNumber,
				IsCorrect:   o.IsCorrect,
			})
		}
		out = append(out, cq)
	}
	return out
}

func fromCachedQuestions(cached []cachedQuestion) []model.QuizQuestion {
	out := make([]model.QuizQuestion, 0, len(cached))
	for _, cq := range cached {
		q := model.QuizQuestion{
			QuizID:      cq.QuizID,
			Question:    cq.Question,
			Image:       cq.Image,
			OrderNumber: cq.OrderNumber,
			Points:      cq.Points,
			Explanation: cq.Explanation,
		}
		q.ID = cq.ID
		for _, co := range cq.Options {
			o := model.QuizOption{
				QuestionID:  co.QuestionID,
				OptionText:  co.OptionText,
				OrderNumber: co.OrderNumber,
				IsCorrect:   co.IsCorrect,
			}
			o.ID = co.ID
			q.Options = append(q.Options, o)
		}
		out = append(out, q)
	}
	return out
}
