// Package speech wraps the external text-to-speech and pronunciation
// assessment service behind a small interface so the practice core can be
// exercised with a fake implementation and no network access.
package speech

import (
	"context"
	"errors"
)

// Sentinel errors for the failure classes callers are expected to tell apart.
// Everything here is recoverable: the user re-clicks, nothing is retried
// automatically and no session state is touched on failure.
var (
	// ErrNoSpeech means the service could not detect speech in the audio
	ErrNoSpeech = errors.New("speech: no speech could be recognized")

	// ErrUnauthorized means the subscription key or region was rejected
	ErrUnauthorized = errors.New("speech: service rejected credentials")

	// ErrQuota means the service throttled or exhausted the subscription quota
	ErrQuota = errors.New("speech: quota exceeded")
)

// WordAssessment is the per-word accuracy score, in service word order
type WordAssessment struct {
	Word     string
	Accuracy int
}

// Assessment is the scored result of one recognition round trip.
// All scores use the 0-100 scale.
type Assessment struct {
	Accuracy     int
	Fluency      int
	Completeness int
	Words        []WordAssessment
}

// Service is the capability the practice core needs from the cloud speech
// provider: synthesize a sentence for playback, and score a recording
// against a reference sentence with word-level granularity.
type Service interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
	Assess(ctx context.Context, audio []byte, referenceText string) (Assessment, error)
}
