package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	OutcomeSuccess      = "success"
	OutcomeInvalidInput = "invalid_input"
	OutcomeNotFound     = "not_found"
	OutcomeUnauthorized = "unauthorized"
	OutcomeError        = "error"
)

var (
	submissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exam_submissions_total",
			Help: "Total number of exam submissions by outcome",
		},
		[]string{"outcome"},
	)

	gradingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "exam_grading_duration_seconds",
			Help:    "Time spent grading and recording a submission",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"outcome"},
	)

	scorePercentage = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "exam_score_percentage",
			Help:    "Distribution of recorded attempt percentages",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	guestAttempts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "exam_guest_attempts_total",
			Help: "Attempts recorded against the guest user",
		},
	)
)

func ObserveSubmission(outcome string, elapsed time.Duration) {
	submissions.WithLabelValues(outcome).Inc()
	gradingDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

func ObserveScore(percentage int) {
	scorePercentage.Observe(float64(percentage))
}

func IncGuestAttempt() {
	guestAttempts.Inc()
}
