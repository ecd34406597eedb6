package database

import (
	"budaya_backend/internal/model"
	"log"

	"gorm.io/gorm"
)

type seedOption struct {
	text    string
	correct bool
}

type seedQuestion struct {
	text        string
	points      int
	explanation string
	options     []seedOption
}

type seedQuiz struct {
	title     string
	slug      string
	status    model.QuizStatus
	timeLimit int
	questions []seedQuestion
}

var demoQuizzes = []seedQuiz{
	{
		title:     "Jelajah Candi",
		slug:      "jelajah-candi",
		status:    model.QuizStatusPublished,
		timeLimit: 300,
		questions: []seedQuestion{
			{
				text:        "Di provinsi manakah Candi Borobudur berada?",
				points:      100,
				explanation: "Borobudur terletak di Magelang, Jawa Tengah.",
				options: []seedOption{
					{text: "Jawa Tengah", correct: true},
					{text: "Jawa Timur"},
					{text: "DI Yogyakarta"},
					{text: "Bali"},
				},
			},
			{
				text:        "Candi Prambanan bercorak agama apa?",
				points:      50,
				explanation: "Prambanan adalah kompleks candi Hindu terbesar di Indonesia.",
				options: []seedOption{
					{text: "Buddha"},
					{text: "Hindu", correct: true},
					{text: "Islam"},
				},
			},
		},
	},
	{
		title:  "Tari Nusantara",
		slug:   "tari-nusantara",
		status: model.QuizStatusDraft,
		questions: []seedQuestion{
			{
				text:   "Tari Saman berasal dari daerah?",
				points: 100,
				options: []seedOption{
					{text: "Aceh", correct: true},
					{text: "Papua"},
				},
			},
		},
	},
}

// SeedDemoQuizzes 在题库为空时写入演示测验
func SeedDemoQuizzes(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Quiz{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		for _, sq := range demoQuizzes {
			quiz := &model.Quiz{
				Title:          sq.title,
				Slug:           sq.slug,
				Status:         sq.status,
				TimeLimit:      sq.timeLimit,
				TotalQuestions: len(sq.questions),
			}
			for i, q := range sq.questions {
				question := model.QuizQuestion{
					Question:    q.text,
					OrderNumber: i + 1,
					Points:      q.points,
					Explanation: q.explanation,
				}
				for j, o := range q.options {
					question.Options = append(question.Options, model.QuizOption{
						OptionText:  o.text,
						OrderNumber: j + 1,
						IsCorrect:   o.correct,
					})
				}
				quiz.Questions = append(quiz.Questions, question)
			}
			if err := tx.Create(quiz).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	log.Println("Demo quizzes seeded")
	return nil
}
