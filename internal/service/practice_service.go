// Package service orchestrates the content store, the speech service and the
// per-visitor session state. Handlers call in here; nothing in this package
// touches HTTP.
package service

import (
	"context"
	"errors"
	"fmt"

	"langlab/internal/content"
	"langlab/internal/models"
	"langlab/internal/session"
	"langlab/internal/speech"
)

// ErrEmptyAudio is returned when a submission carries no audio at all.
// It is rejected before the speech service is ever contacted.
var ErrEmptyAudio = errors.New("no audio was captured")

// PracticeService wires the practice flow together
type PracticeService struct {
	store    *content.Store
	speech   speech.Service
	sessions *session.Manager
}

// NewPracticeService creates a new practice service
func NewPracticeService(store *content.Store, sp speech.Service, sessions *session.Manager) *PracticeService {
	return &PracticeService{
		store:    store,
		speech:   sp,
		sessions: sessions,
	}
}

// Selection is the outcome of a lesson selection
type Selection struct {
	LessonKey   string `json:"lesson_key"`
	Sentence    string `json:"sentence"`
	Translation string `json:"translation"`
	// DiscardCapture tells the UI to drop any recording buffered for the
	// previous lesson. False when the same lesson was re-selected.
	DiscardCapture bool `json:"discard_capture"`
}

// SelectLesson switches the visitor's active lesson. The category decides
// the mode: the placement category drives level assessment, every other
// category is a career track.
func (s *PracticeService) SelectLesson(sessionID, category, step string) (Selection, error) {
	entry, err := s.store.Lookup(category, step)
	if err != nil {
		return Selection{}, err
	}

	mode := models.ModeCareer
	if category == content.PlacementCategory {
		mode = models.ModePlacement
	}

	var sel Selection
	s.sessions.With(sessionID, func(sess *session.Session) error {
		key, discarded := sess.SelectLesson(mode, step)
		sel = Selection{
			LessonKey:      key,
			Sentence:       entry.Sentence,
			Translation:    entry.Translation,
			DiscardCapture: discarded,
		}
		return nil
	})
	return sel, nil
}

// Listen synthesizes the currently selected sentence for playback. Pure
// pass-through: no session state changes, and a failed synthesis only
// surfaces an error the user can retry.
func (s *PracticeService) Listen(ctx context.Context, sessionID string) ([]byte, error) {
	var key string
	s.sessions.With(sessionID, func(sess *session.Session) error {
		key = sess.SelectedLessonKey
		return nil
	})

	entry, err := s.store.LookupKey(key)
	if err != nil {
		return nil, err
	}
	return s.speech.Synthesize(ctx, entry.Sentence)
}

// SubmitRecording sends captured audio for assessment and, on success,
// folds the result into the session. lessonKey is the lesson that was
// active when recording started; scoring always uses that lesson's
// sentence even if the visitor has since switched. An empty lessonKey
// falls back to the current selection. Any failure before the assessment
// returns leaves the session completely untouched.
func (s *PracticeService) SubmitRecording(ctx context.Context, sessionID string, audio []byte, lessonKey string) (models.AttemptResult, error) {
	if len(audio) == 0 {
		return models.AttemptResult{}, ErrEmptyAudio
	}

	if lessonKey == "" {
		s.sessions.With(sessionID, func(sess *session.Session) error {
			lessonKey = sess.SelectedLessonKey
			return nil
		})
	}

	entry, err := s.store.LookupKey(lessonKey)
	if err != nil {
		return models.AttemptResult{}, err
	}

	// The network round trip happens outside the session lock; only a
	// successful assessment ever reaches the session.
	assessed, err := s.speech.Assess(ctx, audio, entry.Sentence)
	if err != nil {
		return models.AttemptResult{}, fmt.Errorf("assess recording: %w", err)
	}

	var result models.AttemptResult
	s.sessions.With(sessionID, func(sess *session.Session) error {
		result = sess.IngestAttempt(lessonKey, assessed)
		return nil
	})
	return result, nil
}

// Dashboard is the render snapshot for the sidebar and history views
type Dashboard struct {
	StreakDays    int                    `json:"streak_days"`
	AssessedLevel models.Level           `json:"assessed_level"`
	SelectedKey   string                 `json:"selected_key"`
	Mode          models.Mode            `json:"mode"`
	TargetGoal    int                    `json:"target_goal"`
	LatestScore   int                    `json:"latest_score"`
	GoalMet       bool                   `json:"goal_met"`
	HasAttempts   bool                   `json:"has_attempts"`
	History       []models.AttemptResult `json:"history"`
	ScoreSeries   []int                  `json:"score_series"`
}

// Dashboard returns a copy of everything the page needs to render the
// visitor's current state, history in chronological order.
func (s *PracticeService) Dashboard(sessionID string) Dashboard {
	var d Dashboard
	s.sessions.With(sessionID, func(sess *session.Session) error {
		d = Dashboard{
			StreakDays:    sess.StreakDays,
			AssessedLevel: sess.AssessedLevel,
			SelectedKey:   sess.SelectedLessonKey,
			Mode:          sess.Mode,
			TargetGoal:    sess.TargetGoal,
			History:       append([]models.AttemptResult(nil), sess.History...),
		}
		for _, r := range sess.History {
			d.ScoreSeries = append(d.ScoreSeries, r.Accuracy)
		}
		d.LatestScore, d.GoalMet, d.HasAttempts = sess.GoalMet()
		return nil
	})
	return d
}

// QuizItem is the active warmup question with the answer withheld
type QuizItem struct {
	Word    string   `json:"word"`
	Options []string `json:"options"`
}

// ActiveQuiz returns the visitor's current warmup question
func (s *PracticeService) ActiveQuiz(sessionID string) QuizItem {
	var q QuizItem
	s.sessions.With(sessionID, func(sess *session.Session) error {
		q = QuizItem{
			Word:    sess.ActiveQuizItem.Word,
			Options: append([]string(nil), sess.ActiveQuizItem.Options...),
		}
		return nil
	})
	return q
}

// NewQuiz replaces the active warmup question with a random one
func (s *PracticeService) NewQuiz(sessionID string) QuizItem {
	var q QuizItem
	s.sessions.With(sessionID, func(sess *session.Session) error {
		item := sess.NewQuizItem()
		q = QuizItem{Word: item.Word, Options: append([]string(nil), item.Options...)}
		return nil
	})
	return q
}

// QuizFeedback is the result of checking one warmup answer
type QuizFeedback struct {
	Correct bool   `json:"correct"`
	Answer  string `json:"answer"`
}

// CheckQuiz checks the chosen option against the active question. The
// correct answer is revealed in the feedback, matching the incorrect-answer
// message in the UI; nothing is mutated.
func (s *PracticeService) CheckQuiz(sessionID, option string) QuizFeedback {
	var fb QuizFeedback
	s.sessions.With(sessionID, func(sess *session.Session) error {
		fb = QuizFeedback{
			Correct: sess.CheckQuizAnswer(option),
			Answer:  sess.ActiveQuizItem.Answer,
		}
		return nil
	})
	return fb
}

// SetGoal updates the visitor's target accuracy goal
func (s *PracticeService) SetGoal(sessionID string, pct int) {
	s.sessions.With(sessionID, func(sess *session.Session) error {
		sess.SetTargetGoal(pct)
		return nil
	})
}

// Reset wipes the visitor's session back to a fresh one
func (s *PracticeService) Reset(sessionID string) {
	s.sessions.With(sessionID, func(sess *session.Session) error {
		sess.Reset()
		return nil
	})
}

// HistorySnapshot returns the attempt history for export
func (s *PracticeService) HistorySnapshot(sessionID string) []models.AttemptResult {
	var out []models.AttemptResult
	s.sessions.With(sessionID, func(sess *session.Session) error {
		out = append([]models.AttemptResult(nil), sess.History...)
		return nil
	})
	return out
}
