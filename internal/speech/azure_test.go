package speech

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const successBody = `{
	"RecognitionStatus": "Success",
	"NBest": [{
		"Display": "Hello, how are you?",
		"PronunciationAssessment": {
			"AccuracyScore": 85.0,
			"FluencyScore": 90.0,
			"CompletenessScore": 95.0
		},
		"Words": [
			{"Word": "hello", "PronunciationAssessment": {"AccuracyScore": 90.0}},
			{"Word": "how", "PronunciationAssessment": {"AccuracyScore": 82.0}},
			{"Word": "are", "PronunciationAssessment": {"AccuracyScore": 60.0}},
			{"Word": "you", "PronunciationAssessment": {"AccuracyScore": 88.0}}
		]
	}]
}`

func TestParseAssessment(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    Assessment
		wantErr error
	}{
		{
			name: "successful recognition",
			body: successBody,
			want: Assessment{
				Accuracy:     85,
				Fluency:      90,
				Completeness: 95,
				Words: []WordAssessment{
					{Word: "hello", Accuracy: 90},
					{Word: "how", Accuracy: 82},
					{Word: "are", Accuracy: 60},
					{Word: "you", Accuracy: 88},
				},
			},
		},
		{
			name:    "no match",
			body:    `{"RecognitionStatus": "NoMatch"}`,
			wantErr: ErrNoSpeech,
		},
		{
			name:    "initial silence",
			body:    `{"RecognitionStatus": "InitialSilenceTimeout"}`,
			wantErr: ErrNoSpeech,
		},
		{
			name:    "success status but empty nbest",
			body:    `{"RecognitionStatus": "Success", "NBest": []}`,
			wantErr: ErrNoSpeech,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseAssessment([]byte(tt.body))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("parseAssessment() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseAssessment() unexpected error: %v", err)
			}
			if got.Accuracy != tt.want.Accuracy || got.Fluency != tt.want.Fluency || got.Completeness != tt.want.Completeness {
				t.Errorf("scores = %d/%d/%d, want %d/%d/%d",
					got.Accuracy, got.Fluency, got.Completeness,
					tt.want.Accuracy, tt.want.Fluency, tt.want.Completeness)
			}
			if len(got.Words) != len(tt.want.Words) {
				t.Fatalf("got %d words, want %d", len(got.Words), len(tt.want.Words))
			}
			for i, w := range tt.want.Words {
				if got.Words[i] != w {
					t.Errorf("word %d = %+v, want %+v", i, got.Words[i], w)
				}
			}
		})
	}
}

func TestParseAssessmentUnknownStatus(t *testing.T) {
	_, err := parseAssessment([]byte(`{"RecognitionStatus": "Canceled"}`))
	if err == nil {
		t.Fatal("expected error for canceled recognition")
	}
	if errors.Is(err, ErrNoSpeech) {
		t.Error("canceled recognition should not map to ErrNoSpeech")
	}
}

func TestAssessSendsPronunciationConfig(t *testing.T) {
	var gotHeader string
	var gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("Pronunciation-Assessment")
		gotKey = r.Header.Get("Ocp-Apim-Subscription-Key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(successBody))
	}))
	defer srv.Close()

	c := NewAzureClient("test-key", "centralindia", "")
	c.sttURL = srv.URL

	got, err := c.Assess(context.Background(), []byte("fake-audio"), "Hello, how are you?")
	if err != nil {
		t.Fatalf("Assess() unexpected error: %v", err)
	}
	if got.Accuracy != 85 {
		t.Errorf("accuracy = %d, want 85", got.Accuracy)
	}
	if gotKey != "test-key" {
		t.Errorf("subscription key header = %q, want %q", gotKey, "test-key")
	}

	raw, err := base64.StdEncoding.DecodeString(gotHeader)
	if err != nil {
		t.Fatalf("Pronunciation-Assessment header is not base64: %v", err)
	}
	var params pronunciationParams
	if err := json.Unmarshal(raw, &params); err != nil {
		t.Fatalf("Pronunciation-Assessment header is not JSON: %v", err)
	}
	if params.ReferenceText != "Hello, how are you?" {
		t.Errorf("reference text = %q", params.ReferenceText)
	}
	if params.GradingSystem != "HundredMark" {
		t.Errorf("grading system = %q, want HundredMark", params.GradingSystem)
	}
	if params.Granularity != "Word" {
		t.Errorf("granularity = %q, want Word", params.Granularity)
	}
}

func TestAssessErrorStatuses(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr error
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, wantErr: ErrUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, wantErr: ErrUnauthorized},
		{name: "throttled", status: http.StatusTooManyRequests, wantErr: ErrQuota},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))
			defer srv.Close()

			c := NewAzureClient("bad-key", "centralindia", "")
			c.sttURL = srv.URL

			_, err := c.Assess(context.Background(), []byte("audio"), "reference")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Assess() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSynthesizeBuildsSSML(t *testing.T) {
	var gotBody string
	var gotFormat string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		gotBody = string(body)
		gotFormat = r.Header.Get("X-Microsoft-OutputFormat")
		w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	c := NewAzureClient("test-key", "centralindia", "")
	c.ttsURL = srv.URL

	audio, err := c.Synthesize(context.Background(), "Tom & Jerry say <hi>")
	if err != nil {
		t.Fatalf("Synthesize() unexpected error: %v", err)
	}
	if string(audio) != "mp3-bytes" {
		t.Errorf("audio = %q", audio)
	}
	if !strings.Contains(gotBody, "en-IN-NeerjaNeural") {
		t.Errorf("ssml missing voice name: %s", gotBody)
	}
	if !strings.Contains(gotBody, "Tom &amp; Jerry say &lt;hi&gt;") {
		t.Errorf("ssml not escaped: %s", gotBody)
	}
	if gotFormat == "" {
		t.Error("output format header not set")
	}
}
