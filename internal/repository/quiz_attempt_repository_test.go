package repository

import (
	"budaya_backend/internal/model"
	"budaya_backend/internal/testutil"
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"
)

func TestQuizAttemptRepository(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewQuizAttemptRepository(db)

	quiz := testutil.SeedJelajahCandi(t, db)
	q1, q2 := quiz.Questions[0], quiz.Questions[1]

	attempt := &model.QuizAttempt{
		QuizID:      quiz.ID,
		UserID:      testutil.PtrUint(3),
		TotalPoints: 150,
		StartedAt:   time.Now(),
	}
	if err := repo.Create(ctx, attempt); err != nil {
		t.Fatalf("Create: %v", err)
	}

	agg, err := repo.ComputeAggregates(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("ComputeAggregates (empty): %v", err)
	}
	if agg != (AttemptAggregates{}) {
		t.Fatalf("empty aggregates = %+v", agg)
	}

	answers := []*model.QuizAnswer{
		{AttemptID: attempt.ID, QuestionID: q1.ID, OptionID: testutil.CorrectOption(t, q1).ID, IsCorrect: true},
		{AttemptID: attempt.ID, QuestionID: q2.ID, OptionID: testutil.WrongOption(t, q2).ID, IsCorrect: false},
	}
	for _, a := range answers {
		if err := repo.CreateAnswer(ctx, a); err != nil {
			t.Fatalf("CreateAnswer: %v", err)
		}
	}

	dup := &model.QuizAnswer{AttemptID: attempt.ID, QuestionID: q1.ID, OptionID: testutil.WrongOption(t, q1).ID}
	if err := repo.CreateAnswer(ctx, dup); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("duplicate answer: err = %v, want ErrDuplicatedKey", err)
	}

	if ok, err := repo.HasAnswer(ctx, attempt.ID, q1.ID); err != nil || !ok {
		t.Fatalf("HasAnswer = %v, %v", ok, err)
	}

	agg, err = repo.ComputeAggregates(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("ComputeAggregates: %v", err)
	}
	want := AttemptAggregates{CorrectAnswers: 1, WrongAnswers: 1, Score: 100}
	if agg != want {
		t.Fatalf("aggregates = %+v, want %+v", agg, want)
	}

	if err := repo.UpdateAggregates(ctx, attempt.ID, agg, 66.67); err != nil {
		t.Fatalf("UpdateAggregates: %v", err)
	}
	now := time.Now()
	if err := repo.MarkCompleted(ctx, attempt.ID, now, 120); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	got, err := repo.FindByIDWithQuiz(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("FindByIDWithQuiz: %v", err)
	}
	if got.Score != 100 || got.CorrectAnswers != 1 || got.WrongAnswers != 1 || got.Percentage != 66.67 {
		t.Fatalf("unexpected attempt aggregates: %+v", got)
	}
	if got.CompletedAt == nil || got.TimeTaken == nil || *got.TimeTaken != 120 {
		t.Fatalf("attempt not completed: %+v", got)
	}
	if got.Quiz == nil || got.Quiz.Slug != "jelajah-candi" {
		t.Fatalf("quiz not preloaded: %+v", got.Quiz)
	}

	rows, err := repo.GetAnswersForReview(ctx, attempt.ID)
	if err != nil {
		t.Fatalf("GetAnswersForReview: %v", err)
	}
	if len(rows) != 2 || rows[0].OrderNumber != 1 || rows[1].OrderNumber != 2 {
		t.Fatalf("unexpected review rows: %+v", rows)
	}
	if rows[0].OptionText != "Jawa Tengah" || !rows[0].IsCorrect || rows[0].Image != "quiz/borobudur.jpg" {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].OptionText != "Buddha" || rows[1].IsCorrect {
		t.Fatalf("row 1 = %+v", rows[1])
	}

	if _, err := repo.FindByIDForUpdate(ctx, attempt.ID); err != nil {
		t.Fatalf("FindByIDForUpdate: %v", err)
	}
}

func TestQuizAttemptRepositoryListByUser(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewQuizAttemptRepository(db)
	quiz := testutil.SeedJelajahCandi(t, db)

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		a := &model.QuizAttempt{QuizID: quiz.ID, UserID: testutil.PtrUint(1), StartedAt: base.Add(time.Duration(i) * time.Minute)}
		if err := repo.Create(ctx, a); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	if err := repo.Create(ctx, &model.QuizAttempt{QuizID: quiz.ID, StartedAt: base}); err != nil {
		t.Fatalf("Create guest: %v", err)
	}

	list, total, err := repo.ListByUser(ctx, 1, 1, 2)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if total != 3 || len(list) != 2 {
		t.Fatalf("total=%d len=%d, want 3/2", total, len(list))
	}
	if !list[0].StartedAt.After(list[1].StartedAt) {
		t.Fatal("attempts not ordered newest first")
	}
	if list[0].Quiz == nil {
		t.Fatal("quiz not preloaded")
	}
}
