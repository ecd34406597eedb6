package monitoring

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	RequestCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{0.1, 0.5, 1, 2, 5},
		},
		[]string{"method", "endpoint"},
	)

	QuizAttemptsStarted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_attempts_started_total",
			Help: "Number of quiz attempts started",
		},
		[]string{"quiz"},
	)

	QuizAnswersSubmitted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_answers_submitted_total",
			Help: "Number of answers recorded, by correctness",
		},
		[]string{"result"},
	)

	QuizAttemptsCompleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "quiz_attempts_completed_total",
			Help: "Number of quiz attempts completed",
		},
		[]string{"quiz"},
	)

	QuizScorePercentage = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "quiz_attempt_score_percentage",
			Help:    "Final percentage of completed attempts",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	QuizLockWait = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "quiz_attempt_lock_wait_seconds",
			Help:    "Time spent waiting for the per-attempt lock",
			Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1, 5},
		},
		[]string{"backend"},
	)
)

var initOnce sync.Once

func Init() {
	initOnce.Do(func() {
		prometheus.MustRegister(RequestCounter)
		prometheus.MustRegister(RequestDuration)
		prometheus.MustRegister(QuizAttemptsStarted)
		prometheus.MustRegister(QuizAnswersSubmitted)
		prometheus.MustRegister(QuizAttemptsCompleted)
		prometheus.MustRegister(QuizScorePercentage)
		prometheus.MustRegister(QuizLockWait)
	})
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		duration := time.Since(start).Seconds()
		status := c.Writer.Status()

		RequestCounter.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
		).Inc()

		RequestDuration.WithLabelValues(
			c.Request.Method,
			c.FullPath(),
		).Observe(duration)
	}
}

func PrometheusHandler() gin.HandlerFunc {
	h := promhttp.Handler()
	return func(c *gin.Context) {
		h.ServeHTTP(c.Writer, c.Request)
	}
}

// AnswerResult 将正误转换为指标标签
func AnswerResult(correct bool) string {
	if correct {
		return "correct"
	}
	return "wrong"
}
