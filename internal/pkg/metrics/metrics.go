// Package metrics defines and registers all custom Prometheus metrics for the
// CineMyst onboarding service. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on package
// initialisation (promauto) and exposed on GET /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "cinemyst"

// ── Onboarding metrics ────────────────────────────────────────────────────────

// OnboardingStepsTotal counts accepted onboarding screens.
// Label:
//   - step: the submitted step (e.g. "birthday", "role_details")
var OnboardingStepsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "onboarding_steps_total",
		Help:      "Total number of onboarding screens accepted, by step.",
	},
	[]string{"step"},
)

// ── Profile metrics ───────────────────────────────────────────────────────────

// ProfileSubmissionsTotal counts profile submissions.
// Labels:
//   - role: "artist", "casting_professional" or "none"
//   - result: "ok", "session_invalid", "profile_write_failed", "role_write_failed"
var ProfileSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_submissions_total",
		Help:      "Total number of profile submissions, by role and result.",
	},
	[]string{"role", "result"},
)

// ProfileSubmissionDuration measures successful submissions end-to-end,
// picture upload included.
var ProfileSubmissionDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "profile_submission_duration_seconds",
		Help:      "Duration of successful profile submissions.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"role"},
)

// PictureUploadsTotal counts profile picture uploads.
// Label:
//   - result: "ok", "compression_failed" or "upload_failed"
var PictureUploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_picture_uploads_total",
		Help:      "Total number of profile picture uploads, by result.",
	},
	[]string{"result"},
)
