// Package observe provides the service's OpenTelemetry metrics and the HTTP
// middleware that records request latency.
//
// Metrics are recorded through the OpenTelemetry Metrics API and scraped via
// the Prometheus exporter bridge set up by [InitProvider]. Tests should use
// [NewMetrics] with their own [metric.MeterProvider].
package observe

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

// meterName is the instrumentation scope name used for all service metrics.
const meterName = "github.com/Spell-Splash/spell-splash-word-service"

// Metrics holds all metric instruments. The OTel types are safe for concurrent use.
type Metrics struct {
	// QuizzesServed counts generated questions. Attributes: mode.
	QuizzesServed metric.Int64Counter

	// QuizChoices tracks how many choices each question got.
	QuizChoices metric.Int64Histogram

	// AnswersChecked counts multiple-choice verdicts. Attributes: correct.
	AnswersChecked metric.Int64Counter

	// WordsScored counts spelling submissions. Attributes: valid, failure.
	WordsScored metric.Int64Counter

	// PronunciationGrades counts grades. Attributes: feedback.
	PronunciationGrades metric.Int64Counter

	// TranscriptionErrors counts failed speech-to-text calls.
	TranscriptionErrors metric.Int64Counter

	// STTDuration tracks speech-to-text latency.
	STTDuration metric.Float64Histogram

	// HTTPRequestDuration tracks request time. Attributes: method, route, status.
	HTTPRequestDuration metric.Float64Histogram
}

// latencyBuckets are histogram boundaries in seconds.
var latencyBuckets = []float64{
	0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 15,
}

// NewMetrics creates every instrument on mp.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Counters.
	if met.QuizzesServed, err = m.Int64Counter("spellsplash.quiz.served",
		metric.WithDescription("Multiple-choice questions generated."),
	); err != nil {
		return nil, err
	}
	if met.AnswersChecked, err = m.Int64Counter("spellsplash.quiz.answers",
		metric.WithDescription("Multiple-choice answers checked."),
	); err != nil {
		return nil, err
	}
	if met.WordsScored, err = m.Int64Counter("spellsplash.words.scored",
		metric.WithDescription("Spelling submissions scored."),
	); err != nil {
		return nil, err
	}
	if met.PronunciationGrades, err = m.Int64Counter("spellsplash.pronunciation.graded",
		metric.WithDescription("Pronunciation attempts graded."),
	); err != nil {
		return nil, err
	}
	if met.TranscriptionErrors, err = m.Int64Counter("spellsplash.stt.errors",
		metric.WithDescription("Failed speech-to-text calls."),
	); err != nil {
		return nil, err
	}

	// Histograms.
	if met.QuizChoices, err = m.Int64Histogram("spellsplash.quiz.choices",
		metric.WithDescription("Choices per generated question."),
		metric.WithExplicitBucketBoundaries(1, 2, 3, 4, 5, 6, 8),
	); err != nil {
		return nil, err
	}
	if met.STTDuration, err = m.Float64Histogram("spellsplash.stt.duration",
		metric.WithDescription("Latency of speech-to-text transcription."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.HTTPRequestDuration, err = m.Float64Histogram("spellsplash.http.request.duration",
		metric.WithDescription("Duration of HTTP requests."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// QuizServed records a generated question.
func (m *Metrics) QuizServed(ctx context.Context, mode entities.QuizMode, choices int) {
	m.QuizzesServed.Add(ctx, 1, metric.WithAttributes(attribute.String("mode", string(mode))))
	m.QuizChoices.Record(ctx, int64(choices), metric.WithAttributes(attribute.String("mode", string(mode))))
}

// AnswerChecked records a multiple-choice verdict.
func (m *Metrics) AnswerChecked(ctx context.Context, correct bool) {
	m.AnswersChecked.Add(ctx, 1, metric.WithAttributes(attribute.Bool("correct", correct)))
}

// WordScored records a spelling submission.
func (m *Metrics) WordScored(ctx context.Context, result *entities.ScoreResult) {
	m.WordsScored.Add(ctx, 1, metric.WithAttributes(
		attribute.Bool("valid", result.IsValid),
		attribute.String("failure", string(result.Failure)),
	))
}

// PronunciationGraded records a grade.
func (m *Metrics) PronunciationGraded(ctx context.Context, result *entities.PronunciationResult) {
	m.PronunciationGrades.Add(ctx, 1, metric.WithAttributes(
		attribute.String("feedback", string(result.Feedback)),
	))
}

// TranscriptionFailed records a failed speech-to-text call.
func (m *Metrics) TranscriptionFailed(ctx context.Context) {
	m.TranscriptionErrors.Add(ctx, 1)
}

// Transcriber is the speech-to-text client being timed.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, filename string) (*entities.Transcript, error)
}

// TimedTranscriber records STT latency around a Transcriber.
type TimedTranscriber struct {
	next    Transcriber
	metrics *Metrics
}

// NewTimedTranscriber wraps next.
func NewTimedTranscriber(next Transcriber, metrics *Metrics) *TimedTranscriber {
	return &TimedTranscriber{next: next, metrics: metrics}
}

// Transcribe delegates to the wrapped client and records its duration.
func (t *TimedTranscriber) Transcribe(ctx context.Context, audio []byte, filename string) (*entities.Transcript, error) {
	start := time.Now()
	tr, err := t.next.Transcribe(ctx, audio, filename)

	status := "ok"
	if err != nil {
		status = "error"
	}
	t.metrics.STTDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String("status", status)),
	)

	return tr, err
}
