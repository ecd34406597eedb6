package controller

import (
	"budaya_backend/internal/config"
	"budaya_backend/internal/middleware"
	"budaya_backend/internal/model"
	"budaya_backend/internal/repository"
	"budaya_backend/internal/service"
	"budaya_backend/internal/testutil"
	"budaya_backend/internal/util"
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const testSecret = "controller-test-secret"

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testutil.DB(t)
	cfg := &config.Config{
		JWT:     config.JWTConfig{Secret: testSecret},
		Storage: config.StorageConfig{Type: util.StorageLocal},
		Quiz:    config.QuizConfig{LockBackend: util.LockBackendLocal, LockWait: 5 * time.Second},
	}
	storage, err := service.NewStorageService(cfg)
	if err != nil {
		t.Fatalf("NewStorageService: %v", err)
	}
	svc := service.NewQuizAttemptService(
		db,
		service.NewQuestionBank(repository.NewQuizRepository(db), nil, 0),
		repository.NewQuizAttemptRepository(db),
		storage,
		service.NewLocalAttemptLocker(),
		cfg.Quiz,
	)
	c := NewQuizController(svc)
	h := NewHealthController(db, nil)

	r := gin.New()
	api := r.Group("/api")
	api.GET("/health", h.HealthCheck)
	api.POST("/quizzes/:slug/attempts", middleware.TryAuthMiddleware(cfg), c.StartAttempt)
	api.GET("/quiz-attempts/mine", middleware.AuthMiddleware(cfg), c.ListMyAttempts)
	api.POST("/quiz-attempts/:id/answers", c.SubmitAnswer)
	api.POST("/quiz-attempts/:id/complete", c.CompleteAttempt)
	api.GET("/quiz-attempts/:id/result", c.GetAttemptResult)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body, token string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode %s %s: %v (body %q)", method, path, err, w.Body.String())
	}
	return w, env
}

func TestQuizAttemptEndpoints(t *testing.T) {
	r, db := newTestRouter(t)
	quiz := testutil.SeedJelajahCandi(t, db)
	q1, q2 := quiz.Questions[0], quiz.Questions[1]

	token, err := util.GenerateJWT(11, "user", "siti@example.com", testSecret, time.Hour)
	if err != nil {
		t.Fatalf("GenerateJWT: %v", err)
	}

	w, env := doJSON(t, r, http.MethodPost, "/api/quizzes/jelajah-candi/attempts", "", token)
	if w.Code != http.StatusCreated {
		t.Fatalf("start status = %d, body %s", w.Code, w.Body.String())
	}
	if strings.Contains(string(env.Data), "is_correct") {
		t.Fatalf("start response leaks correctness: %s", env.Data)
	}
	for _, key := range []string{`"text":"Di provinsi manakah Candi Borobudur berada?"`, `"text":"Jawa Tengah"`, `"order_number":1`} {
		if !strings.Contains(string(env.Data), key) {
			t.Errorf("start response missing %s: %s", key, env.Data)
		}
	}
	var start service.StartAttemptResult
	if err := json.Unmarshal(env.Data, &start); err != nil {
		t.Fatalf("decode start: %v", err)
	}
	if start.TotalPoints != 150 || len(start.Questions) != 2 {
		t.Fatalf("start = %+v", start)
	}

	answersPath := fmt.Sprintf("/api/quiz-attempts/%d/answers", start.AttemptID)
	w, env = doJSON(t, r, http.MethodPost, answersPath,
		fmt.Sprintf(`{"question_id":%d,"option_id":%d}`, q1.ID, testutil.CorrectOption(t, q1).ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("submit status = %d, body %s", w.Code, w.Body.String())
	}
	var sub service.SubmitAnswerResult
	if err := json.Unmarshal(env.Data, &sub); err != nil {
		t.Fatalf("decode submit: %v", err)
	}
	if !sub.IsCorrect || sub.CurrentScore != 100 {
		t.Fatalf("submit = %+v", sub)
	}

	w, _ = doJSON(t, r, http.MethodPost, answersPath,
		fmt.Sprintf(`{"question_id":%d,"option_id":%d}`, q1.ID, testutil.WrongOption(t, q1).ID), "")
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate status = %d", w.Code)
	}

	w, _ = doJSON(t, r, http.MethodPost, answersPath,
		fmt.Sprintf(`{"question_id":%d,"option_id":%d}`, q2.ID, testutil.WrongOption(t, q2).ID), "")
	if w.Code != http.StatusOK {
		t.Fatalf("submit q2 status = %d", w.Code)
	}

	w, env = doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/quiz-attempts/%d/complete", start.AttemptID), `{"time_taken":120}`, "")
	if w.Code != http.StatusOK {
		t.Fatalf("complete status = %d, body %s", w.Code, w.Body.String())
	}
	var summary service.AttemptSummary
	if err := json.Unmarshal(env.Data, &summary); err != nil {
		t.Fatalf("decode complete: %v", err)
	}
	if summary.Percentage != 66.67 || summary.Score != 100 {
		t.Fatalf("summary = %+v", summary)
	}

	w, env = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/quiz-attempts/%d/result", start.AttemptID), "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("result status = %d", w.Code)
	}
	var result service.AttemptResult
	if err := json.Unmarshal(env.Data, &result); err != nil {
		t.Fatalf("decode result: %v", err)
	}
	for _, key := range []string{
		`"question_number":1`,
		`"question_text":"Di provinsi manakah Candi Borobudur berada?"`,
		`"user_answer_text":"Jawa Tengah"`,
		`"correct_answer_text":"Hindu"`,
		`"explanation":"Borobudur terletak di Magelang, Jawa Tengah."`,
	} {
		if !strings.Contains(string(env.Data), key) {
			t.Errorf("result missing %s: %s", key, env.Data)
		}
	}
	if len(result.Answers) != 2 || result.Answers[0].QuestionID != q1.ID {
		t.Fatalf("result = %+v", result)
	}

	w, env = doJSON(t, r, http.MethodGet, "/api/quiz-attempts/mine?page=1&limit=5", "", token)
	if w.Code != http.StatusOK {
		t.Fatalf("mine status = %d", w.Code)
	}
	var page struct {
		List  []service.AttemptSummary `json:"list"`
		Total int64                    `json:"total"`
	}
	if err := json.Unmarshal(env.Data, &page); err != nil {
		t.Fatalf("decode mine: %v", err)
	}
	if page.Total != 1 || page.List[0].AttemptID != start.AttemptID {
		t.Fatalf("mine = %+v", page)
	}
}

func TestQuizAttemptEndpointErrors(t *testing.T) {
	r, db := newTestRouter(t)
	quiz := testutil.SeedJelajahCandi(t, db)
	testutil.SeedQuiz(t, db, "tari-nusantara", model.QuizStatusDraft, testutil.QuestionSpec{
		Text: "q", Points: 10, Options: []testutil.OptionSpec{{Text: "a", Correct: true}},
	})
	q1, q2 := quiz.Questions[0], quiz.Questions[1]

	_, env := doJSON(t, r, http.MethodPost, "/api/quizzes/jelajah-candi/attempts", `{"shuffle":false}`, "")
	var start service.StartAttemptResult
	if err := json.Unmarshal(env.Data, &start); err != nil {
		t.Fatalf("decode start: %v", err)
	}
	answersPath := fmt.Sprintf("/api/quiz-attempts/%d/answers", start.AttemptID)

	tests := []struct {
		name   string
		method string
		path   string
		body   string
		token  string
		want   int
	}{
		{"draft quiz", http.MethodPost, "/api/quizzes/tari-nusantara/attempts", "", "", http.StatusNotFound},
		{"unknown quiz", http.MethodPost, "/api/quizzes/nope/attempts", "", "", http.StatusNotFound},
		{"malformed start body", http.MethodPost, "/api/quizzes/jelajah-candi/attempts", `{"shuffle":`, "", http.StatusBadRequest},
		{"bad attempt id", http.MethodPost, "/api/quiz-attempts/abc/answers", `{"question_id":1,"option_id":1}`, "", http.StatusBadRequest},
		{"zero attempt id", http.MethodGet, "/api/quiz-attempts/0/result", "", "", http.StatusBadRequest},
		{"missing fields", http.MethodPost, answersPath, `{"question_id":1}`, "", http.StatusBadRequest},
		{"unknown attempt", http.MethodPost, "/api/quiz-attempts/999/answers",
			fmt.Sprintf(`{"question_id":%d,"option_id":%d}`, q1.ID, q1.Options[0].ID), "", http.StatusNotFound},
		{"option of another question", http.MethodPost, answersPath,
			fmt.Sprintf(`{"question_id":%d,"option_id":%d}`, q1.ID, q2.Options[0].ID), "", http.StatusNotFound},
		{"unknown question", http.MethodPost, answersPath, `{"question_id":9999,"option_id":1}`, "", http.StatusNotFound},
		{"negative time", http.MethodPost, fmt.Sprintf("/api/quiz-attempts/%d/complete", start.AttemptID), `{"time_taken":-5}`, "", http.StatusBadRequest},
		{"missing time", http.MethodPost, fmt.Sprintf("/api/quiz-attempts/%d/complete", start.AttemptID), `{}`, "", http.StatusBadRequest},
		{"unknown result", http.MethodGet, "/api/quiz-attempts/999/result", "", "", http.StatusNotFound},
		{"mine without token", http.MethodGet, "/api/quiz-attempts/mine", "", "", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, env := doJSON(t, r, tt.method, tt.path, tt.body, tt.token)
			if w.Code != tt.want || env.Code != tt.want {
				t.Fatalf("status = %d (envelope %d), want %d; body %s", w.Code, env.Code, tt.want, w.Body.String())
			}
		})
	}

	// 完成后继续作答
	doJSON(t, r, http.MethodPost, fmt.Sprintf("/api/quiz-attempts/%d/complete", start.AttemptID), `{"time_taken":10}`, "")
	w, _ := doJSON(t, r, http.MethodPost, answersPath,
		fmt.Sprintf(`{"question_id":%d,"option_id":%d}`, q1.ID, q1.Options[0].ID), "")
	if w.Code != http.StatusConflict {
		t.Fatalf("answer after completion status = %d", w.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	r, _ := newTestRouter(t)
	w, env := doJSON(t, r, http.MethodGet, "/api/health", "", "")
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(string(env.Data), `"database":"up"`) || !strings.Contains(string(env.Data), `"redis":"disabled"`) {
		t.Fatalf("health = %s", env.Data)
	}
}
