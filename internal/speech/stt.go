package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"time"

	"github.com/Spell-Splash/spell-splash-word-service/internal/domain/entities"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultFilename = "audio.wav"
	audioField      = "file"

	// maxErrorBody caps how much of a failed response is kept for the error message.
	maxErrorBody = 512
)

// ErrUnexpectedStatus is returned for any non-2xx response.
var ErrUnexpectedStatus = errors.New("unexpected status from transcription service")

// Option is a functional option for configuring an STTClient.
type Option func(*STTClient)

// WithTimeout sets the per-request timeout. Defaults to 15 s.
func WithTimeout(d time.Duration) Option {
	return func(c *STTClient) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying client. Its timeout is kept as-is.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *STTClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// STTClient uploads recordings to a speech-to-text endpoint.
type STTClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewSTTClient creates a client posting to endpoint.
func NewSTTClient(endpoint string, opts ...Option) *STTClient {
	c := &STTClient{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Transcribe sends audio once and returns the transcript.
// Transport failures and non-2xx statuses are errors, never empty transcripts.
func (c *STTClient) Transcribe(ctx context.Context, audio []byte, filename string) (*entities.Transcript, error) {
	if filename == "" {
		filename = defaultFilename
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	fw, err := mw.CreateFormFile(audioField, filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("stt: create form file: %w", err)
	}
	if _, err := fw.Write(audio); err != nil {
		return nil, fmt.Errorf("stt: write audio: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("stt: close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("stt: create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stt: http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, fmt.Errorf("%w: HTTP %d: %s", ErrUnexpectedStatus, resp.StatusCode, bytes.TrimSpace(msg))
	}

	var transcript entities.Transcript
	if err := json.NewDecoder(resp.Body).Decode(&transcript); err != nil {
		return nil, fmt.Errorf("stt: decode response: %w", err)
	}

	return &transcript, nil
}
