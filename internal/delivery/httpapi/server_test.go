package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
	"github.com/Spell-Splash/spell-splash-word-service/internal/repository"
	"github.com/Spell-Splash/spell-splash-word-service/internal/service"
)

type fakeQuiz struct {
	err       error
	gotMode   entities.QuizMode
	gotLevel  entities.Level
	gotAnswer [2]int64
}

func (f *fakeQuiz) GenerateQuiz(_ context.Context, mode entities.QuizMode, level entities.Level) (*entities.QuizQuestion, error) {
	f.gotMode, f.gotLevel = mode, level
	if f.err != nil {
		return nil, f.err
	}

	q := &entities.QuizQuestion{
		Mode:         mode,
		TargetID:     1,
		Prompt:       "a small domesticated feline",
		Level:        entities.LevelA1,
		CorrectIndex: 1,
		Choices:      []entities.Choice{{VocabID: 2, Word: "car"}, {VocabID: 1, Word: "cat"}},
		AudioURL:     "http://tts.local/tts?text=cat",
	}
	if mode == entities.QuizModeCursed {
		q.Prompt = entities.CursedPrompt
	}
	return q, nil
}

func (f *fakeQuiz) CheckAnswer(_ context.Context, vocabID, answerID int64) (*entities.AnswerCheck, error) {
	f.gotAnswer = [2]int64{vocabID, answerID}
	if f.err != nil {
		return nil, f.err
	}
	return &entities.AnswerCheck{IsCorrect: vocabID == answerID, Message: "Correct!", CorrectWord: "cat"}, nil
}

type fakeScorer struct{}

func (fakeScorer) Score(_ context.Context, word string, _ []string) (*entities.ScoreResult, error) {
	return &entities.ScoreResult{IsValid: true, Word: strings.ToUpper(word), BaseScore: 5, Multiplier: 1, TotalScore: 5}, nil
}

type fakeLetters struct{ got int }

func (f *fakeLetters) Generate(amount int) []string {
	f.got = amount
	return []string{"A", "B"}[:min(amount, 2)]
}

type fakePronunciation struct {
	err     error
	gotID   int64
	gotWord string
	gotSize int
}

func (f *fakePronunciation) EvaluateByID(_ context.Context, id int64, audio []byte, _ string) (*entities.PronunciationResult, error) {
	f.gotID, f.gotSize = id, len(audio)
	if f.err != nil {
		return nil, f.err
	}
	return &entities.PronunciationResult{TargetWord: "cat", IsCorrect: true, Score: 90}, nil
}

func (f *fakePronunciation) Evaluate(_ context.Context, word string, audio []byte, _ string) (*entities.PronunciationResult, error) {
	f.gotWord, f.gotSize = word, len(audio)
	if f.err != nil {
		return nil, f.err
	}
	return &entities.PronunciationResult{TargetWord: word, IsCorrect: true, Score: 90}, nil
}

type fakePlayers struct{ err error }

func (f *fakePlayers) RegisterOrGet(_ context.Context, id, name string) (*entities.Player, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entities.Player{ID: id, Username: name}, nil
}

func (f *fakePlayers) UpdateQuest(_ context.Context, playerID, questID, status string) (*entities.PlayerQuest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &entities.PlayerQuest{PlayerID: playerID, QuestID: questID, Status: status}, nil
}

func (f *fakePlayers) Summarize(_ context.Context, playerID string) (string, error) {
	return fmt.Sprintf("Player Name: %s.", playerID), nil
}

type countingRecorder struct{ n int }

func (c *countingRecorder) WordScored(context.Context, *entities.ScoreResult) { c.n++ }

type fixture struct {
	srv      *Server
	quiz     *fakeQuiz
	letters  *fakeLetters
	pron     *fakePronunciation
	players  *fakePlayers
	recorder *countingRecorder
}

func newFixture(ready func(context.Context) error) *fixture {
	f := &fixture{
		quiz:     &fakeQuiz{},
		letters:  &fakeLetters{},
		pron:     &fakePronunciation{},
		players:  &fakePlayers{},
		recorder: &countingRecorder{},
	}
	f.srv = New(Deps{
		Quiz:          f.quiz,
		Scorer:        fakeScorer{},
		Letters:       f.letters,
		Pronunciation: f.pron,
		Players:       f.players,
		Recorder:      f.recorder,
		Ready:         ready,
	}, Options{DefaultLevel: entities.LevelB1, LetterPoolSize: 7}, zap.NewNop())
	return f
}

func (f *fixture) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.srv.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func TestLetters(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(t, http.MethodGet, "/vocab/letters", "")
	if rec.Code != http.StatusOK || f.letters.got != 7 {
		t.Fatalf("expected default pool size, got code %d amount %d", rec.Code, f.letters.got)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("unexpected content type %q", ct)
	}

	f.do(t, http.MethodGet, "/vocab/letters?amount=2", "")
	if f.letters.got != 2 {
		t.Fatalf("expected amount 2, got %d", f.letters.got)
	}

	if rec := f.do(t, http.MethodGet, "/vocab/letters?amount=lots", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckWord(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(t, http.MethodPost, "/vocab/check-word", `{"word":"cat","available_letters":["C","A","T"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	res := decode[entities.ScoreResult](t, rec)
	if !res.IsValid || res.Word != "CAT" || f.recorder.n != 1 {
		t.Fatalf("unexpected result %+v, recorded %d", res, f.recorder.n)
	}

	if rec := f.do(t, http.MethodPost, "/vocab/check-word", `{"word":""}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty word, got %d", rec.Code)
	}
	if rec := f.do(t, http.MethodPost, "/vocab/check-word", `{`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad json, got %d", rec.Code)
	}
}

func TestDefinitionQuiz(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(t, http.MethodGet, "/vocab/quiz/definition/a2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if f.quiz.gotMode != entities.QuizModeDefinition || f.quiz.gotLevel != entities.LevelA2 {
		t.Fatalf("unexpected call %s %s", f.quiz.gotMode, f.quiz.gotLevel)
	}

	body := decode[map[string]any](t, rec)
	if body["tts_link"] != "http://tts.local/tts?text=cat" || body["correct_index"] != float64(1) {
		t.Fatalf("unexpected body %v", body)
	}
	if _, ok := body["audio_url"]; ok {
		t.Fatal("definition quiz must not carry audio_url")
	}

	f.do(t, http.MethodGet, "/vocab/quiz/definition", "")
	if f.quiz.gotLevel != entities.LevelB1 {
		t.Fatalf("expected default level, got %s", f.quiz.gotLevel)
	}

	if rec := f.do(t, http.MethodGet, "/vocab/quiz/definition/Z9", ""); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown level, got %d", rec.Code)
	}
}

func TestMeaningQuiz(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(t, http.MethodGet, "/vocab/quiz/meaning", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if f.quiz.gotMode != entities.QuizModeMeaning || f.quiz.gotLevel != entities.LevelB1 {
		t.Fatalf("unexpected call %s %s", f.quiz.gotMode, f.quiz.gotLevel)
	}
	if body := decode[map[string]any](t, rec); body["mode"] != "meaning" {
		t.Fatalf("unexpected body %v", body)
	}

	f.do(t, http.MethodGet, "/vocab/quiz/meaning/c1", "")
	if f.quiz.gotMode != entities.QuizModeMeaning || f.quiz.gotLevel != entities.LevelC1 {
		t.Fatalf("unexpected call %s %s", f.quiz.gotMode, f.quiz.gotLevel)
	}
}

func TestCursedQuiz(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(t, http.MethodGet, "/vocab/quiz/cursed/B2", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	body := decode[map[string]any](t, rec)
	if body["question"] != entities.CursedPrompt || body["audio_url"] == "" || body["mode"] != "cursed" {
		t.Fatalf("unexpected body %v", body)
	}
}

func TestQuizNoWords(t *testing.T) {
	f := newFixture(nil)
	f.quiz.err = service.ErrNoWordsFound

	rec := f.do(t, http.MethodGet, "/vocab/quiz/definition/C1", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := decode[errorBody](t, rec); body.Error != "no_content" {
		t.Fatalf("unexpected error body %+v", body)
	}
}

func TestCheckAnswer(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(t, http.MethodPost, "/vocab/quiz/definition/answer", `{"vocab_id":1,"answer_id":1}`)
	if rec.Code != http.StatusOK || f.quiz.gotAnswer != [2]int64{1, 1} {
		t.Fatalf("unexpected response %d %v", rec.Code, f.quiz.gotAnswer)
	}

	if rec := f.do(t, http.MethodPost, "/vocab/quiz/definition/answer", `{"vocab_id":1}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	f.quiz.err = fmt.Errorf("get target: %w", repository.ErrVocabularyNotFound)
	if rec := f.do(t, http.MethodPost, "/vocab/quiz/definition/answer", `{"vocab_id":9,"answer_id":1}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func multipartBody(t *testing.T, fields map[string]string, audio []byte) (*bytes.Buffer, string) {
	t.Helper()
	buf := &bytes.Buffer{}
	mw := multipart.NewWriter(buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatal(err)
		}
	}
	if audio != nil {
		fw, err := mw.CreateFormFile("audio", "clip.webm")
		if err != nil {
			t.Fatal(err)
		}
		_, _ = fw.Write(audio)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf, mw.FormDataContentType()
}

func TestPronunciation(t *testing.T) {
	f := newFixture(nil)

	send := func(fields map[string]string, audio []byte) *httptest.ResponseRecorder {
		body, ct := multipartBody(t, fields, audio)
		req := httptest.NewRequest(http.MethodPost, "/vocab/pronunciation", body)
		req.Header.Set("Content-Type", ct)
		rec := httptest.NewRecorder()
		f.srv.ServeHTTP(rec, req)
		return rec
	}

	if rec := send(map[string]string{"vocab_id": "3"}, []byte("abc")); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if f.pron.gotID != 3 || f.pron.gotSize != 3 {
		t.Fatalf("unexpected call id=%d size=%d", f.pron.gotID, f.pron.gotSize)
	}

	if rec := send(map[string]string{"word": "night"}, []byte("ab")); rec.Code != http.StatusOK || f.pron.gotWord != "night" {
		t.Fatalf("expected word evaluation, got %d %q", rec.Code, f.pron.gotWord)
	}

	if rec := send(map[string]string{}, []byte("ab")); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without target, got %d", rec.Code)
	}
	if rec := send(map[string]string{"word": "night"}, nil); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 without audio, got %d", rec.Code)
	}

	f.pron.err = fmt.Errorf("%w: %w", service.ErrTranscriptionFailed, errors.New("stt down"))
	if rec := send(map[string]string{"word": "night"}, []byte("ab")); rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
}

func TestPlayers(t *testing.T) {
	f := newFixture(nil)

	rec := f.do(t, http.MethodPost, "/players", `{"player_id":"p1","username":"Alice"}`)
	if rec.Code != http.StatusOK || decode[entities.Player](t, rec).ID != "p1" {
		t.Fatalf("unexpected register response %d %s", rec.Code, rec.Body.String())
	}

	rec = f.do(t, http.MethodPut, "/players/p1/quests/q1", `{"status":"COMPLETED"}`)
	if q := decode[entities.PlayerQuest](t, rec); q.QuestID != "q1" || q.Status != entities.QuestCompleted {
		t.Fatalf("unexpected quest %+v", q)
	}

	rec = f.do(t, http.MethodGet, "/players/p1/summary", "")
	if s := decode[summaryResponse](t, rec); s.PlayerID != "p1" || s.Summary != "Player Name: p1." {
		t.Fatalf("unexpected summary %+v", s)
	}

	f.players.err = service.ErrInvalidQuest
	if rec := f.do(t, http.MethodPut, "/players/p1/quests/q1", `{"status":""}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	f.players.err = repository.ErrPlayerNotFound
	if rec := f.do(t, http.MethodPut, "/players/zz/quests/q1", `{"status":"X"}`); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestInternalErrorIsHidden(t *testing.T) {
	f := newFixture(nil)
	f.quiz.err = errors.New("connection reset")

	rec := f.do(t, http.MethodGet, "/vocab/quiz/cursed", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "connection reset") {
		t.Fatalf("internal error leaked: %s", rec.Body.String())
	}
}

func TestHealthAndReady(t *testing.T) {
	ok := newFixture(func(context.Context) error { return nil })
	if rec := ok.do(t, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	if rec := ok.do(t, http.MethodGet, "/readyz", ""); rec.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rec.Code)
	}

	down := newFixture(func(context.Context) error { return errors.New("db down") })
	if rec := down.do(t, http.MethodGet, "/readyz", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}

	if rec := ok.do(t, http.MethodGet, "/nope", ""); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
