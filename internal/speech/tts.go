// Package speech talks to the text-to-speech and speech-to-text services.
//
// The TTS side is only a link builder: clients fetch the audio themselves.
// The STT side uploads a recording as multipart/form-data and decodes
// {"text": ..., "confidence_score": ...}.
package speech

import (
	"net/url"
	"strings"
)

const ttsEndpoint = "/tts"

// TTSLinker derives deterministic TTS request URLs.
type TTSLinker struct {
	baseURL string
	voice   string
}

// NewTTSLinker creates a linker for the TTS server at baseURL.
func NewTTSLinker(baseURL, voice string) *TTSLinker {
	return &TTSLinker{
		baseURL: strings.TrimRight(baseURL, "/"),
		voice:   voice,
	}
}

// AudioURL returns {base}/tts?text={word}&voice={voice}.
func (l *TTSLinker) AudioURL(word string) string {
	q := url.Values{}
	q.Set("text", word)
	q.Set("voice", l.voice)
	return l.baseURL + ttsEndpoint + "?" + q.Encode()
}
