// Package metrics defines the custom Prometheus metrics for the LearnHub
// course platform. It is the single source of truth for metric names, labels,
// and help strings; registration happens at import time via promauto against
// the default registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "learnhub"

// CoursesCreatedTotal counts newly published courses.
// Label:
//   - level: "beginner", "intermediate", or "advanced"
var CoursesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "courses_created_total",
		Help:      "Total number of courses created, by difficulty level.",
	},
	[]string{"level"},
)

// EnrollmentsCreatedTotal counts successful enrollments.
var EnrollmentsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "enrollments_created_total",
		Help:      "Total number of course enrollments created.",
	},
)

// LessonProgressWritesTotal counts per-lesson progress writes.
// Label:
//   - completed: "true" when a lesson was marked done, "false" when unmarked
var LessonProgressWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lesson_progress_writes_total",
		Help:      "Total number of lesson progress updates, by completion flag.",
	},
	[]string{"completed"},
)

// ReviewsCreatedTotal counts submitted course reviews.
// Label:
//   - rating: the 1..5 star value as a string
var ReviewsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_created_total",
		Help:      "Total number of course reviews submitted, by rating.",
	},
	[]string{"rating"},
)
