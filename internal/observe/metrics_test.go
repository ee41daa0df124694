package observe

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func counterTotal(t *testing.T, rm metricdata.ResourceMetrics, name string) int64 {
	t.Helper()
	m := findMetric(rm, name)
	if m == nil {
		t.Fatalf("metric %s not found", name)
	}
	sum, ok := m.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatalf("metric %s is %T, want Sum[int64]", name, m.Data)
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	return total
}

func TestRecorders(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.QuizServed(ctx, entities.QuizModeCursed, 4)
	m.QuizServed(ctx, entities.QuizModeDefinition, 3)
	m.AnswerChecked(ctx, true)
	m.WordScored(ctx, &entities.ScoreResult{IsValid: false, Failure: entities.FailureNotAWord})
	m.PronunciationGraded(ctx, &entities.PronunciationResult{Feedback: entities.FeedbackExcellent})
	m.TranscriptionFailed(ctx)

	rm := collect(t, reader)
	if got := counterTotal(t, rm, "spellsplash.quiz.served"); got != 2 {
		t.Fatalf("quiz.served = %d, want 2", got)
	}
	for _, name := range []string{
		"spellsplash.quiz.answers",
		"spellsplash.words.scored",
		"spellsplash.pronunciation.graded",
		"spellsplash.stt.errors",
	} {
		if got := counterTotal(t, rm, name); got != 1 {
			t.Fatalf("%s = %d, want 1", name, got)
		}
	}
}

type stubTranscriber struct{ err error }

func (s stubTranscriber) Transcribe(context.Context, []byte, string) (*entities.Transcript, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &entities.Transcript{Text: "cat", Confidence: 1}, nil
}

func TestTimedTranscriberRecordsDuration(t *testing.T) {
	m, reader := newTestMetrics(t)

	ok := NewTimedTranscriber(stubTranscriber{}, m)
	if _, err := ok.Transcribe(context.Background(), []byte("x"), "a.wav"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	boom := errors.New("boom")
	failing := NewTimedTranscriber(stubTranscriber{err: boom}, m)
	if _, err := failing.Transcribe(context.Background(), []byte("x"), "a.wav"); !errors.Is(err, boom) {
		t.Fatalf("expected error to pass through, got %v", err)
	}

	metric := findMetric(collect(t, reader), "spellsplash.stt.duration")
	if metric == nil {
		t.Fatal("stt duration not recorded")
	}
	hist, isHist := metric.Data.(metricdata.Histogram[float64])
	if !isHist {
		t.Fatalf("expected histogram, got %T", metric.Data)
	}
	var count uint64
	for _, dp := range hist.DataPoints {
		count += dp.Count
	}
	if count != 2 {
		t.Fatalf("expected 2 observations, got %d", count)
	}
}

func TestMiddlewareUsesRoutePattern(t *testing.T) {
	m, reader := newTestMetrics(t)

	r := chi.NewRouter()
	r.Use(Middleware(m, zap.NewNop()))
	r.Get("/players/{playerID}/summary", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/players/p1/summary", nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("expected handler status to pass through, got %d", rec.Code)
	}

	metric := findMetric(collect(t, reader), "spellsplash.http.request.duration")
	if metric == nil {
		t.Fatal("request duration not recorded")
	}
	hist := metric.Data.(metricdata.Histogram[float64])
	if len(hist.DataPoints) != 1 {
		t.Fatalf("expected one data point, got %d", len(hist.DataPoints))
	}
	route, _ := hist.DataPoints[0].Attributes.Value("route")
	if route.AsString() != "/players/{playerID}/summary" {
		t.Fatalf("expected route pattern label, got %q", route.AsString())
	}
	status, _ := hist.DataPoints[0].Attributes.Value("status")
	if status.AsString() != "418" {
		t.Fatalf("expected status 418, got %q", status.AsString())
	}
}

func TestProviderServesMetrics(t *testing.T) {
	p, err := InitProvider(ProviderConfig{ServiceVersion: "test"})
	if err != nil {
		t.Fatalf("InitProvider: %v", err)
	}
	t.Cleanup(func() { _ = p.Shutdown(context.Background()) })

	m, err := NewMetrics(p.MeterProvider)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	m.QuizServed(context.Background(), entities.QuizModeDefinition, 4)

	rec := httptest.NewRecorder()
	p.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "spellsplash_quiz_served") {
		t.Fatalf("expected quiz counter in scrape output, got:\n%s", body)
	}
}
