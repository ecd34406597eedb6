package service

import (
	"budaya_backend/internal/config"
	"budaya_backend/internal/model"
	"budaya_backend/internal/repository"
	"budaya_backend/internal/util"
	"budaya_backend/pkg/logger"
	"budaya_backend/pkg/monitoring"
	"budaya_backend/pkg/tracing"
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StartAttemptRequest struct {
	Shuffle bool `json:"shuffle"`
}

type SubmitAnswerRequest struct {
	QuestionID uint `json:"question_id" binding:"required,min=1"`
	OptionID   uint `json:"option_id" binding:"required,min=1"`
}

type CompleteAttemptRequest struct {
	TimeTaken *int `json:"time_taken" binding:"required,min=0"`
}

// 客户端 DTO 不包含任何正确性字段

type OptionDTO struct {
	ID          uint   `json:"id"`
	Text        string `json:"text"`
	OrderNumber int    `json:"order_number"`
}

type QuestionDTO struct {
	ID          uint        `json:"id"`
	Text        string      `json:"text"`
	Image       string      `json:"image,omitempty"`
	OrderNumber int         `json:"order_number"`
	Points      int         `json:"points"`
	Options     []OptionDTO `json:"options"`
}

type StartAttemptResult struct {
	AttemptID      uint          `json:"attempt_id"`
	QuizID         uint          `json:"quiz_id"`
	QuizTitle      string        `json:"quiz_title"`
	QuizSlug       string        `json:"quiz_slug"`
	TimeLimit      int           `json:"time_limit"`
	TotalPoints    int           `json:"total_points"`
	TotalQuestions int           `json:"total_questions"`
	StartedAt      time.Time     `json:"started_at"`
	Questions      []QuestionDTO `json:"questions"`
}

type SubmitAnswerResult struct {
	IsCorrect         bool   `json:"is_correct"`
	CorrectOptionID   *uint  `json:"correct_option_id"`
	CorrectOptionText string `json:"correct_option_text"`
	Explanation       string `json:"explanation"`
	PointsEarned      int    `json:"points_earned"`
	CurrentScore      int    `json:"current_score"`
}

type AttemptSummary struct {
	AttemptID      uint       `json:"attempt_id"`
	QuizTitle      string     `json:"quiz_title"`
	QuizSlug       string     `json:"quiz_slug"`
	TotalQuestions int        `json:"total_questions"`
	TimeLimit      int        `json:"time_limit"`
	Score          int        `json:"score"`
	TotalPoints    int        `json:"total_points"`
	CorrectAnswers int        `json:"correct_answers"`
	WrongAnswers   int        `json:"wrong_answers"`
	Percentage     float64    `json:"percentage"`
	StartedAt      time.Time  `json:"started_at"`
	CompletedAt    *time.Time `json:"completed_at"`
	TimeTaken      *int       `json:"time_taken"`
}

type AnswerReview struct {
	QuestionID        uint   `json:"question_id"`
	QuestionNumber    int    `json:"question_number"`
	QuestionText      string `json:"question_text"`
	Image             string `json:"image,omitempty"`
	IsCorrect         bool   `json:"is_correct"`
	SelectedOptionID  uint   `json:"selected_option_id"`
	UserAnswerText    string `json:"user_answer_text"`
	CorrectAnswerText string `json:"correct_answer_text"`
	Explanation       string `json:"explanation"`
}

type AttemptResult struct {
	AttemptSummary
	Answers []AnswerReview `json:"answers"`
}

// QuizAttemptService 答题引擎：开始、提交、完成、回顾
type QuizAttemptService struct {
	DB          *gorm.DB
	Bank        *QuestionBank
	AttemptRepo *repository.QuizAttemptRepository
	Storage     *StorageService
	Locker      AttemptLocker

	mu       sync.RWMutex
	settings config.QuizConfig
}

func NewQuizAttemptService(
	db *gorm.DB,
	bank *QuestionBank,
	attemptRepo *repository.QuizAttemptRepository,
	storage *StorageService,
	locker AttemptLocker,
	cfg config.QuizConfig,
) *QuizAttemptService {
	return &QuizAttemptService{
		DB:          db,
		Bank:        bank,
		AttemptRepo: attemptRepo,
		Storage:     storage,
		Locker:      locker,
		settings:    cfg,
	}
}

// UpdateSettings 配置热更新回调，锁后端不随热更新切换
func (s *QuizAttemptService) UpdateSettings(cfg config.QuizConfig) {
	s.mu.Lock()
	s.settings = cfg
	s.mu.Unlock()
	s.Bank.SetCacheTTL(cfg.CacheTTL)
}

func (s *QuizAttemptService) currentSettings() config.QuizConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

func (s *QuizAttemptService) lockOptions() LockOptions {
	cfg := s.currentSettings()
	return LockOptions{TTL: cfg.LockTTL, Wait: cfg.LockWait}
}

// scorePercentage 保留两位小数，总分为 0 时返回 0
func scorePercentage(score, totalPoints int) float64 {
	if totalPoints <= 0 {
		return 0
	}
	return math.Round(float64(score)/float64(totalPoints)*10000) / 100
}

// StartAttempt 为已发布测验创建一次答题
func (s *QuizAttemptService) StartAttempt(ctx context.Context, slug string, userID *uint, shuffle bool) (res *StartAttemptResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuizAttemptService.StartAttempt", attribute.String("quiz.slug", slug))
	defer func() { tracing.EndSpan(span, err) }()

	quiz, err := s.Bank.PublishedQuizBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	questions, err := s.Bank.QuestionsForQuiz(ctx, quiz.ID)
	if err != nil {
		return nil, err
	}

	totalPoints := 0
	for _, q := range questions {
		totalPoints += q.Points
	}

	attempt := &model.QuizAttempt{
		QuizID:      quiz.ID,
		UserID:      userID,
		TotalPoints: totalPoints,
		StartedAt:   time.Now(),
	}
	if err := s.AttemptRepo.Create(ctx, attempt); err != nil {
		return nil, fmt.Errorf("create attempt: %w", err)
	}

	dtos := make([]QuestionDTO, 0, len(questions))
	for _, q := range questions {
		dtos = append(dtos, s.toQuestionDTO(ctx, q))
	}
	if shuffle || quiz.ShuffleQuestions || s.currentSettings().ShuffleByDefault {
		rand.Shuffle(len(dtos), func(i, j int) { dtos[i], dtos[j] = dtos[j], dtos[i] })
	}

	monitoring.QuizAttemptsStarted.WithLabelValues(quiz.Slug).Inc()
	span.SetAttributes(attribute.Int("attempt.id", int(attempt.ID)))

	return &StartAttemptResult{
		AttemptID:      attempt.ID,
		QuizID:         quiz.ID,
		QuizTitle:      quiz.Title,
		QuizSlug:       quiz.Slug,
		TimeLimit:      quiz.TimeLimit,
		TotalPoints:    totalPoints,
		TotalQuestions: len(questions),
		StartedAt:      attempt.StartedAt,
		Questions:      dtos,
	}, nil
}

func (s *QuizAttemptService) toQuestionDTO(ctx context.Context, q model.QuizQuestion) QuestionDTO {
	dto := QuestionDTO{
		ID:          q.ID,
		Text:        q.Question,
		Image:       s.resolveImage(ctx, q.Image),
		OrderNumber: q.OrderNumber,
		Points:      q.Points,
		Options:     make([]OptionDTO, 0, len(q.Options)),
	}
	for _, o := range q.Options {
		dto.Options = append(dto.Options, OptionDTO{
			ID:          o.ID,
			Text:        o.OptionText,
			OrderNumber: o.OrderNumber,
		})
	}
	return dto
}

func (s *QuizAttemptService) resolveImage(ctx context.Context, ref string) string {
	if s.Storage == nil || ref == "" {
		return ref
	}
	u, err := s.Storage.ResolveImage(ctx, ref)
	if err != nil {
		logger.FromContext(ctx).Warn("Failed to resolve question image", zap.String("image", ref), zap.Error(err))
		return ref
	}
	return u
}

func (s *QuizAttemptService) findAttempt(ctx context.Context, attemptID uint) (*model.QuizAttempt, error) {
	attempt, err := s.AttemptRepo.FindByIDWithQuiz(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("find attempt %d: %w", attemptID, err)
	}
	return attempt, nil
}

// correctOptionOf 多个正确选项时取顺序最靠前的一个
func correctOptionOf(ctx context.Context, q *model.QuizQuestion) *model.QuizOption {
	opt, count := q.CorrectOption()
	switch {
	case count == 0:
		logger.FromContext(ctx).Warn("Question has no correct option", zap.Uint("question_id", q.ID))
	case count > 1:
		logger.FromContext(ctx).Warn("Question has multiple correct options",
			zap.Uint("question_id", q.ID),
			zap.Int("count", count),
		)
	}
	return opt
}

// SubmitAnswer 记录一题作答，并从答题日志重算本次答题的统计
func (s *QuizAttemptService) SubmitAnswer(ctx context.Context, attemptID, questionID, optionID uint) (res *SubmitAnswerResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuizAttemptService.SubmitAnswer",
		attribute.Int("attempt.id", int(attemptID)),
		attribute.Int("question.id", int(questionID)),
	)
	defer func() { tracing.EndSpan(span, err) }()

	attempt, err := s.AttemptRepo.FindByID(ctx, attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, fmt.Errorf("find attempt %d: %w", attemptID, err)
	}
	if attempt.IsCompleted() {
		return nil, util.ErrAttemptCompleted
	}

	question, err := s.Bank.FindQuestion(ctx, attempt.QuizID, questionID)
	if err != nil {
		return nil, err
	}
	var option *model.QuizOption
	for i := range question.Options {
		if question.Options[i].ID == optionID {
			option = &question.Options[i]
			break
		}
	}
	if option == nil {
		return nil, util.ErrOptionNotFound
	}

	unlock, err := s.Locker.Lock(ctx, attemptID, s.lockOptions())
	if err != nil {
		return nil, err
	}
	defer unlock()

	var agg repository.AttemptAggregates
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.AttemptRepo.WithTx(tx)

		locked, err := repo.FindByIDForUpdate(ctx, attemptID)
		if err != nil {
			return err
		}
		if locked.IsCompleted() {
			return util.ErrAttemptCompleted
		}

		answered, err := repo.HasAnswer(ctx, attemptID, questionID)
		if err != nil {
			return err
		}
		if answered {
			return util.ErrAlreadyAnswered
		}

		answer := &model.QuizAnswer{
			AttemptID:  attemptID,
			QuestionID: questionID,
			OptionID:   optionID,
			IsCorrect:  option.IsCorrect,
		}
		if err := repo.CreateAnswer(ctx, answer); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return util.ErrAlreadyAnswered
			}
			return err
		}

		agg, err = repo.ComputeAggregates(ctx, attemptID)
		if err != nil {
			return err
		}
		return repo.UpdateAggregates(ctx, attemptID, agg, scorePercentage(agg.Score, locked.TotalPoints))
	})
	if err != nil {
		if errors.Is(err, util.ErrAlreadyAnswered) || errors.Is(err, util.ErrAttemptCompleted) {
			return nil, err
		}
		return nil, fmt.Errorf("record answer for attempt %d: %w", attemptID, err)
	}

	monitoring.QuizAnswersSubmitted.WithLabelValues(monitoring.AnswerResult(option.IsCorrect)).Inc()

	res = &SubmitAnswerResult{
		IsCorrect:    option.IsCorrect,
		Explanation:  question.Explanation,
		CurrentScore: agg.Score,
	}
	if option.IsCorrect {
		res.PointsEarned = question.Points
	}
	if correct := correctOptionOf(ctx, question); correct != nil {
		id := correct.ID
		res.CorrectOptionID = &id
		res.CorrectOptionText = correct.OptionText
	}
	return res, nil
}

// CompleteAttempt 记录完成时间与用时，重复调用会覆盖
func (s *QuizAttemptService) CompleteAttempt(ctx context.Context, attemptID uint, timeTaken int) (res *AttemptSummary, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuizAttemptService.CompleteAttempt", attribute.Int("attempt.id", int(attemptID)))
	defer func() { tracing.EndSpan(span, err) }()

	if timeTaken < 0 {
		return nil, fmt.Errorf("time_taken must not be negative: %w", util.ErrInvalidInput)
	}
	if _, err := s.findAttempt(ctx, attemptID); err != nil {
		return nil, err
	}

	unlock, err := s.Locker.Lock(ctx, attemptID, s.lockOptions())
	if err != nil {
		return nil, err
	}
	defer unlock()

	if err := s.AttemptRepo.MarkCompleted(ctx, attemptID, time.Now(), timeTaken); err != nil {
		return nil, fmt.Errorf("complete attempt %d: %w", attemptID, err)
	}

	attempt, err := s.findAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	questions, err := s.Bank.QuestionsForQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}
	summary := summarize(attempt, questions)

	monitoring.QuizAttemptsCompleted.WithLabelValues(summary.QuizSlug).Inc()
	monitoring.QuizScorePercentage.Observe(summary.Percentage)
	return summary, nil
}

// summarize 题目数以题库为准，不读 quizzes.total_questions
func summarize(attempt *model.QuizAttempt, questions []model.QuizQuestion) *AttemptSummary {
	summary := &AttemptSummary{
		AttemptID:      attempt.ID,
		Score:          attempt.Score,
		TotalPoints:    attempt.TotalPoints,
		CorrectAnswers: attempt.CorrectAnswers,
		WrongAnswers:   attempt.WrongAnswers,
		Percentage:     attempt.Percentage,
		StartedAt:      attempt.StartedAt,
		CompletedAt:    attempt.CompletedAt,
		TimeTaken:      attempt.TimeTaken,
	}
	if attempt.Quiz != nil {
		summary.QuizTitle = attempt.Quiz.Title
		summary.QuizSlug = attempt.Quiz.Slug
		summary.TimeLimit = attempt.Quiz.TimeLimit
	}
	summary.TotalQuestions = len(questions)
	return summary
}

// GetAttemptResult 只读，不修改任何数据
func (s *QuizAttemptService) GetAttemptResult(ctx context.Context, attemptID uint) (res *AttemptResult, err error) {
	ctx, span := tracing.StartSpan(ctx, "QuizAttemptService.GetAttemptResult", attribute.Int("attempt.id", int(attemptID)))
	defer func() { tracing.EndSpan(span, err) }()

	attempt, err := s.findAttempt(ctx, attemptID)
	if err != nil {
		return nil, err
	}
	questions, err := s.Bank.QuestionsForQuiz(ctx, attempt.QuizID)
	if err != nil {
		return nil, err
	}
	summary := summarize(attempt, questions)

	rows, err := s.AttemptRepo.GetAnswersForReview(ctx, attemptID)
	if err != nil {
		return nil, fmt.Errorf("load answers for attempt %d: %w", attemptID, err)
	}
	byID := make(map[uint]*model.QuizQuestion, len(questions))
	for i := range questions {
		byID[questions[i].ID] = &questions[i]
	}

	answers := make([]AnswerReview, 0, len(rows))
	for _, row := range rows {
		review := AnswerReview{
			QuestionID:       row.QuestionID,
			QuestionNumber:   row.OrderNumber,
			QuestionText:     row.Question,
			Image:            s.resolveImage(ctx, row.Image),
			IsCorrect:        row.IsCorrect,
			SelectedOptionID: row.OptionID,
			UserAnswerText:   row.OptionText,
			Explanation:      row.Explanation,
		}
		if q, ok := byID[row.QuestionID]; ok {
			if correct := correctOptionOf(ctx, q); correct != nil {
				review.CorrectAnswerText = correct.OptionText
			}
		}
		answers = append(answers, review)
	}

	return &AttemptResult{AttemptSummary: *summary, Answers: answers}, nil
}

// ListUserAttempts 当前用户的答题历史，按开始时间倒序
func (s *QuizAttemptService) ListUserAttempts(ctx context.Context, userID uint, page, limit int) ([]AttemptSummary, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	attempts, total, err := s.AttemptRepo.ListByUser(ctx, userID, page, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list attempts of user %d: %w", userID, err)
	}

	list := make([]AttemptSummary, 0, len(attempts))
	for i := range attempts {
		a := &attempts[i]
		item := AttemptSummary{
			AttemptID:      a.ID,
			Score:          a.Score,
			TotalPoints:    a.TotalPoints,
			CorrectAnswers: a.CorrectAnswers,
			WrongAnswers:   a.WrongAnswers,
			Percentage:     a.Percentage,
			StartedAt:      a.StartedAt,
			CompletedAt:    a.CompletedAt,
			TimeTaken:      a.TimeTaken,
		}
		if a.Quiz != nil {
			item.QuizTitle = a.Quiz.Title
			item.QuizSlug = a.Quiz.Slug
			item.TimeLimit = a.Quiz.TimeLimit
			item.TotalQuestions = a.Quiz.TotalQuestions
		}
		list = append(list, item)
	}
	return list, total, nil
}
