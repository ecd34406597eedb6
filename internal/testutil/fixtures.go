package testutil

import (
	"budaya_backend/internal/model"
	"testing"

	"gorm.io/gorm"
)

// OptionSpec / QuestionSpec 描述待写入的题目
type OptionSpec struct {
	Text    string
	Correct bool
}

type QuestionSpec struct {
	Text        string
	Image       string
	Points      int
	Explanation string
	Options     []OptionSpec
}

func SeedQuiz(tb testing.TB, db *gorm.DB, slug string, status model.QuizStatus, questions ...QuestionSpec) *model.Quiz {
	tb.Helper()

	quiz := &model.Quiz{
		Title:          "Quiz " + slug,
		Slug:           slug,
		Status:         status,
		TotalQuestions: len(questions),
	}
	for i, qs := range questions {
		if qs.Points == 0 {
			qs.Points = model.DefaultQuestionPoints
		}
		q := model.QuizQuestion{
			Question:    qs.Text,
			Image:       qs.Image,
			OrderNumber: i + 1,
			Points:      qs.Points,
			Explanation: qs.Explanation,
		}
		for j, opt := range qs.Options {
			q.Options = append(q.Options, model.QuizOption{
				OptionText:  opt.Text,
				OrderNumber: j + 1,
				IsCorrect:   opt.Correct,
			})
		}
		quiz.Questions = append(quiz.Questions, q)
	}

	if err := db.Create(quiz).Error; err != nil {
		tb.Fatalf("seed quiz: %v", err)
	}
	return quiz
}

// SeedJelajahCandi 两题：100 分与 50 分，正确答案分别是第一个与第二个选项
func SeedJelajahCandi(tb testing.TB, db *gorm.DB) *model.Quiz {
	tb.Helper()
	return SeedQuiz(tb, db, "jelajah-candi", model.QuizStatusPublished,
		QuestionSpec{
			Text:        "Di provinsi manakah Candi Borobudur berada?",
			Image:       "quiz/borobudur.jpg",
			Points:      100,
			Explanation: "Borobudur terletak di Magelang, Jawa Tengah.",
			Options: []OptionSpec{
				{Text: "Jawa Tengah", Correct: true},
				{Text: "Jawa Timur"},
				{Text: "Bali"},
			},
		},
		QuestionSpec{
			Text:        "Candi Prambanan bercorak agama apa?",
			Points:      50,
			Explanation: "Prambanan adalah kompleks candi Hindu.",
			Options: []OptionSpec{
				{Text: "Buddha"},
				{Text: "Hindu", Correct: true},
			},
		},
	)
}

// CorrectOption / WrongOption 在种子数据中查找选项
func CorrectOption(tb testing.TB, q model.QuizQuestion) model.QuizOption {
	tb.Helper()
	for _, o := range q.Options {
		if o.IsCorrect {
			return o
		}
	}
	tb.Fatalf("question %d has no correct option", q.ID)
	return model.QuizOption{}
}

func WrongOption(tb testing.TB, q model.QuizQuestion) model.QuizOption {
	tb.Helper()
	for _, o := range q.Options {
		if !o.IsCorrect {
			return o
		}
	}
	tb.Fatalf("question %d has no wrong option", q.ID)
	return model.QuizOption{}
}

func PtrUint(v uint) *uint { return &v }
