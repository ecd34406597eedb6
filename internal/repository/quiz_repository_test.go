package repository

import (
	"budaya_backend/internal/model"
	"budaya_backend/internal/testutil"
	"context"
	"errors"
	"testing"

	"gorm.io/gorm"
)

func TestQuizRepository(t *testing.T) {
	db := testutil.DB(t)
	ctx := context.Background()
	repo := NewQuizRepository(db)

	quiz := testutil.SeedJelajahCandi(t, db)
	testutil.SeedQuiz(t, db, "draft-quiz", model.QuizStatusDraft, testutil.QuestionSpec{
		Text: "q", Points: 10, Options: []testutil.OptionSpec{{Text: "a", Correct: true}},
	})

	got, err := repo.FindPublishedBySlug(ctx, "jelajah-candi")
	if err != nil || got.ID != quiz.ID {
		t.Fatalf("FindPublishedBySlug: got=%v err=%v", got, err)
	}
	if _, err := repo.FindPublishedBySlug(ctx, "draft-quiz"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("draft quiz: err = %v, want ErrRecordNotFound", err)
	}
	if _, err := repo.FindPublishedBySlug(ctx, "missing"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("missing quiz: err = %v, want ErrRecordNotFound", err)
	}

	qs, err := repo.GetQuestionsWithOptions(ctx, quiz.ID)
	if err != nil {
		t.Fatalf("GetQuestionsWithOptions: %v", err)
	}
	if len(qs) != 2 || qs[0].OrderNumber != 1 || qs[1].OrderNumber != 2 {
		t.Fatalf("unexpected question order: %+v", qs)
	}
	for _, q := range qs {
		for i := 1; i < len(q.Options); i++ {
			if q.Options[i-1].OrderNumber > q.Options[i].OrderNumber {
				t.Fatalf("options of question %d not ordered", q.ID)
			}
		}
	}
	if !qs[0].Options[0].IsCorrect {
		t.Fatal("is_correct flag not loaded")
	}
}
