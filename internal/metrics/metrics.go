package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	authAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "usermgmt_auth_attempts_total",
		Help: "Number of Basic auth attempts grouped by status.",
	}, []string{"status"})

	registrations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "usermgmt_registrations_total",
		Help: "Number of registration requests grouped by status.",
	}, []string{"status"})

	passwordChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "usermgmt_password_changes_total",
		Help: "Number of password changes grouped by path (self/admin) and status.",
	}, []string{"path", "status"})

	deletions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "usermgmt_deletions_total",
		Help: "Number of delete requests grouped by status.",
	}, []string{"status"})

	rateLimitHits = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "usermgmt_rate_limit_hits_total",
		Help: "Rate limiter activations grouped by limiter name.",
	}, []string{"limiter"})
)

// IncAuth increments the authentication counter.
func IncAuth(status string) {
	authAttempts.WithLabelValues(status).Inc()
}

// IncRegister increments the registration counter.
func IncRegister(status string) {
	registrations.WithLabelValues(status).Inc()
}

// IncPasswordChange increments the password change counter.
func IncPasswordChange(path, status string) {
	passwordChanges.WithLabelValues(path, status).Inc()
}

// IncDelete increments the deletion counter.
func IncDelete(status string) {
	deletions.WithLabelValues(status).Inc()
}

// IncRateLimit increments the rate-limit hit counter.
func IncRateLimit(name string) {
	rateLimitHits.WithLabelValues(name).Inc()
}
