package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Exam pipeline counters, exported on /metrics.
var (
	SessionsStarted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exam_sessions_started_total",
		Help: "Number of new exam sessions created.",
	})

	AnswersRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exam_answers_recorded_total",
		Help: "Number of answers upserted, including resubmissions.",
	})

	ExamsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exam_sessions_completed_total",
		Help: "Number of sessions transitioned to COMPLETE.",
	})

	ReportsRendered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exam_reports_rendered_total",
		Help: "Number of PDF result reports rendered.",
	})
)
