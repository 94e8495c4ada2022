package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Graceson27/interview-bot/internal/llm"
	"github.com/Graceson27/interview-bot/internal/types"
)

const metricsNamespace = "interview_bot"

// Metrics holds the Prometheus collectors for interview runs. Each Metrics owns its
// registry so tests and concurrent runs never collide on the global one.
type Metrics struct {
	registry *prometheus.Registry

	// QuestionsTotal counts questions asked. Labels: topic, tier, intent
	QuestionsTotal *prometheus.CounterVec
	// EscalationsTotal counts tier escalations. Labels: to
	EscalationsTotal *prometheus.CounterVec
	// AnswerScores observes per-answer scores. Labels: topic
	AnswerScores *prometheus.HistogramVec
	// LLMRequestsTotal counts generation attempts. Labels: purpose, outcome
	LLMRequestsTotal *prometheus.CounterVec
	// LLMRequestSeconds observes generation latency. Labels: purpose
	LLMRequestSeconds *prometheus.HistogramVec
	// FallbacksTotal counts deterministic fallbacks taken. Labels: purpose
	FallbacksTotal *prometheus.CounterVec
	// InterviewsTotal counts finished interviews. Labels: recommendation
	InterviewsTotal *prometheus.CounterVec
}

// NewMetrics creates and registers all collectors on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		QuestionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "questions_total",
			Help:      "Questions asked, by topic, difficulty tier and selector intent.",
		}, []string{"topic", "tier", "intent"}),
		EscalationsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "tier_escalations_total",
			Help:      "Difficulty tier escalations, by the tier entered.",
		}, []string{"to"}),
		AnswerScores: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "answer_score",
			Help:      "Per-answer scores in [0,1], by topic.",
			Buckets:   prometheus.LinearBuckets(0.1, 0.1, 10),
		}, []string{"topic"}),
		LLMRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "llm_requests_total",
			Help:      "Text generation requests, by purpose and outcome (ok, error, degraded).",
		}, []string{"purpose", "outcome"}),
		LLMRequestSeconds: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "llm_request_seconds",
			Help:      "Text generation latency, by purpose.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"purpose"}),
		FallbacksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "fallbacks_total",
			Help:      "Deterministic fallbacks used in place of generated text, by purpose.",
		}, []string{"purpose"}),
		InterviewsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "interviews_total",
			Help:      "Finished interviews, by hiring recommendation.",
		}, []string{"recommendation"}),
	}
}

// Registry exposes the registry for the metrics endpoint.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveQuestion records one asked question.
func (m *Metrics) ObserveQuestion(topic types.Topic, tier types.Tier, intent types.Intent) {
	m.QuestionsTotal.WithLabelValues(string(topic), string(tier), string(intent)).Inc()
}

// ObserveEscalation records entering tier.
func (m *Metrics) ObserveEscalation(to types.Tier) {
	m.EscalationsTotal.WithLabelValues(string(to)).Inc()
}

// ObserveScore records one answer score.
func (m *Metrics) ObserveScore(topic types.Topic, score float64) {
	m.AnswerScores.WithLabelValues(string(topic)).Observe(score)
}

// ObserveFallback records a fallback taken for purpose.
func (m *Metrics) ObserveFallback(purpose string) {
	m.FallbacksTotal.WithLabelValues(purpose).Inc()
}

// ObserveInterview records a finished interview.
func (m *Metrics) ObserveInterview(recommendation string) {
	m.InterviewsTotal.WithLabelValues(recommendation).Inc()
}

// ObserveLLMRequest implements llm.RequestObserver.
func (m *Metrics) ObserveLLMRequest(purpose, outcome string, elapsed time.Duration) {
	m.LLMRequestsTotal.WithLabelValues(purpose, outcome).Inc()
	if elapsed > 0 {
		m.LLMRequestSeconds.WithLabelValues(purpose).Observe(elapsed.Seconds())
	}
	if outcome != llm.OutcomeOK {
		m.ObserveFallback(purpose)
	}
}
