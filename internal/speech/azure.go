package speech

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// DefaultVoice matches the Indian English neural voice the lab uses for playback
	DefaultVoice = "en-IN-NeerjaNeural"

	defaultLanguage = "en-IN"
	requestTimeout  = 15 * time.Second
)

// AzureClient calls the Azure Cognitive Services Speech REST endpoints for
// synthesis and pronunciation assessment. One client is shared by all
// sessions; it holds no per-request state beyond the http.Client.
type AzureClient struct {
	key      string
	voice    string
	language string
	client   *http.Client

	// endpoint URLs, derived from the region; tests repoint these at a
	// local httptest server
	ttsURL string
	sttURL string
}

// NewAzureClient creates a client for the given subscription key and region.
// An empty voice selects DefaultVoice.
func NewAzureClient(key, region, voice string) *AzureClient {
	if voice == "" {
		voice = DefaultVoice
	}
	return &AzureClient{
		key:      key,
		voice:    voice,
		language: defaultLanguage,
		client:   &http.Client{Timeout: requestTimeout},
		ttsURL:   fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", region),
		sttURL: fmt.Sprintf("https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1?language=%s&format=detailed",
			region, defaultLanguage),
	}
}

// Synthesize converts a practice sentence to MP3 audio
func (c *AzureClient) Synthesize(ctx context.Context, text string) ([]byte, error) {
	ssml, err := buildSSML(c.language, c.voice, text)
	if err != nil {
		return nil, fmt.Errorf("build ssml: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.ttsURL, bytes.NewReader(ssml))
	if err != nil {
		return nil, fmt.Errorf("create synthesis request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", "audio-16khz-32kbitrate-mono-mp3")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("synthesis request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return nil, fmt.Errorf("synthesis: %w", err)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read synthesis response: %w", err)
	}
	return audio, nil
}

// pronunciationParams is the assessment configuration sent with each
// recognition request, base64-encoded in the Pronunciation-Assessment header.
// HundredMark grading and Word granularity give the 0-100 per-word scores
// the feedback view needs.
type pronunciationParams struct {
	ReferenceText string `json:"ReferenceText"`
	GradingSystem string `json:"GradingSystem"`
	Granularity   string `json:"Granularity"`
	Dimension     string `json:"Dimension"`
}

// recognitionResponse mirrors the fields used from the detailed-format
// recognition JSON.
type recognitionResponse struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	NBest             []struct {
		Display                 string `json:"Display"`
		PronunciationAssessment struct {
			AccuracyScore     float64 `json:"AccuracyScore"`
			FluencyScore      float64 `json:"FluencyScore"`
			CompletenessScore float64 `json:"CompletenessScore"`
		} `json:"PronunciationAssessment"`
		Words []struct {
			Word                    string `json:"Word"`
			PronunciationAssessment struct {
				AccuracyScore float64 `json:"AccuracyScore"`
			} `json:"PronunciationAssessment"`
		} `json:"Words"`
	} `json:"NBest"`
}

// Assess sends recorded audio for recognition and pronunciation scoring
// against the reference sentence.
func (c *AzureClient) Assess(ctx context.Context, audio []byte, referenceText string) (Assessment, error) {
	params, err := json.Marshal(pronunciationParams{
		ReferenceText: referenceText,
		GradingSystem: "HundredMark",
		Granularity:   "Word",
		Dimension:     "Comprehensive",
	})
	if err != nil {
		return Assessment{}, fmt.Errorf("marshal assessment params: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.sttURL, bytes.NewReader(audio))
	if err != nil {
		return Assessment{}, fmt.Errorf("create recognition request: %w", err)
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", c.key)
	req.Header.Set("Content-Type", "audio/wav; codecs=audio/pcm; samplerate=16000")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Pronunciation-Assessment", base64.StdEncoding.EncodeToString(params))

	resp, err := c.client.Do(req)
	if err != nil {
		return Assessment{}, fmt.Errorf("recognition request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp.StatusCode); err != nil {
		return Assessment{}, fmt.Errorf("recognition: %w", err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Assessment{}, fmt.Errorf("read recognition response: %w", err)
	}

	return parseAssessment(body)
}

// parseAssessment extracts the scored result from a detailed recognition body
func parseAssessment(body []byte) (Assessment, error) {
	var parsed recognitionResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return Assessment{}, fmt.Errorf("decode recognition response: %w", err)
	}

	switch parsed.RecognitionStatus {
	case "Success":
		// scored below
	case "NoMatch", "InitialSilenceTimeout", "BabbleTimeout":
		return Assessment{}, ErrNoSpeech
	default:
		return Assessment{}, fmt.Errorf("speech: recognition failed with status %q", parsed.RecognitionStatus)
	}

	if len(parsed.NBest) == 0 {
		return Assessment{}, ErrNoSpeech
	}

	best := parsed.NBest[0]
	out := Assessment{
		Accuracy:     int(best.PronunciationAssessment.AccuracyScore),
		Fluency:      int(best.PronunciationAssessment.FluencyScore),
		Completeness: int(best.PronunciationAssessment.CompletenessScore),
	}
	for _, w := range best.Words {
		out.Words = append(out.Words, WordAssessment{
			Word:     w.Word,
			Accuracy: int(w.PronunciationAssessment.AccuracyScore),
		})
	}
	return out, nil
}

// checkStatus maps HTTP status codes to the package's sentinel errors
func checkStatus(status int) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status == http.StatusTooManyRequests:
		return ErrQuota
	default:
		return fmt.Errorf("speech: service returned status %d", status)
	}
}

// buildSSML wraps text in the synthesis markup for the configured voice,
// escaping the sentence so user-visible punctuation cannot break the XML.
func buildSSML(language, voice, text string) ([]byte, error) {
	var escaped bytes.Buffer
	if err := xml.EscapeText(&escaped, []byte(text)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf,
		"<speak version='1.0' xml:lang='%s'><voice name='%s'>%s</voice></speak>",
		language, voice, escaped.String())
	return buf.Bytes(), nil
}
