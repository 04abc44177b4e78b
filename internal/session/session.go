// Package session owns the per-visitor practice state and every transition
// on it: lesson selection, score ingestion, streak and level derivation, and
// the vocabulary warmup. Handlers never mutate a session directly; they go
// through these methods under the Manager's per-session lock.
package session

import (
	"time"

	"langlab/internal/models"
	"langlab/internal/speech"
)

const (
	// DefaultTargetGoal is the initial accuracy goal percentage
	DefaultTargetGoal = 85

	// MinTargetGoal and MaxTargetGoal bound the adjustable goal
	MinTargetGoal = 50
	MaxTargetGoal = 100

	dateLayout = "2006-01-02"
)

// Session is one visitor's practice state. The whole aggregate lives in
// memory for the duration of the visit; Reset replaces it wholesale.
type Session struct {
	ID                string
	Mode              models.Mode
	SelectedLessonKey string
	History           []models.AttemptResult
	AssessedLevel     models.Level
	StreakDays        int
	LastPracticeDate  string // calendar date, "2006-01-02"; empty until first attempt
	ActiveQuizItem    models.VocabItem
	TargetGoal        int
	LastSeen          time.Time

	pick func() models.VocabItem
	now  func() time.Time
}

// New creates a session with all-default state: no history, no streak,
// level not tested, a freshly randomized quiz item and the first placement
// lesson selected. pick supplies vocabulary items, now supplies the clock;
// a nil now falls back to time.Now.
func New(id string, pick func() models.VocabItem, now func() time.Time) *Session {
	if now == nil {
		now = time.Now
	}
	return &Session{
		ID:                id,
		Mode:              models.ModePlacement,
		SelectedLessonKey: models.LessonKey(models.ModePlacement, "Level 1"),
		AssessedLevel:     models.LevelNotTested,
		ActiveQuizItem:    pick(),
		TargetGoal:        DefaultTargetGoal,
		LastSeen:          now(),
		pick:              pick,
		now:               now,
	}
}

// SelectLesson switches the active lesson. It reports whether the key
// actually changed: a change means any not-yet-submitted recording is stale
// and the caller must tell the UI to drop its capture buffer. Re-selecting
// the current lesson is a no-op and never discards a pending capture.
func (s *Session) SelectLesson(mode models.Mode, step string) (key string, discarded bool) {
	key = models.LessonKey(mode, step)
	if key == s.SelectedLessonKey {
		return key, false
	}
	s.Mode = mode
	s.SelectedLessonKey = key
	return key, true
}

// IngestAttempt applies one successful assessment to the session. The steps
// run together under the caller's lock, so a failed adapter call can never
// leave streak, level and history half-updated:
//
//  1. streak: +1 if this is the first successful attempt today
//  2. level: placement attempts only, strict 50/80 bands
//  3. history: append the new immutable result
//
// lessonKey is the key bound when recording started, which may differ from
// the currently selected lesson if the user switched mid-capture.
func (s *Session) IngestAttempt(lessonKey string, a speech.Assessment) models.AttemptResult {
	now := s.now()

	today := now.Format(dateLayout)
	if s.LastPracticeDate != today {
		s.StreakDays++
		s.LastPracticeDate = today
	}

	if models.ModeOf(lessonKey) == models.ModePlacement {
		s.AssessedLevel = models.LevelForAccuracy(a.Accuracy)
	}

	result := models.AttemptResult{
		LessonKey:    lessonKey,
		Accuracy:     a.Accuracy,
		Fluency:      a.Fluency,
		Completeness: a.Completeness,
		Words:        make([]models.WordScore, 0, len(a.Words)),
		At:           now,
	}
	for _, w := range a.Words {
		result.Words = append(result.Words, models.WordScore{Word: w.Word, Accuracy: w.Accuracy})
	}

	s.History = append(s.History, result)
	return result
}

// NewQuizItem replaces the active warmup question. Nothing else changes.
func (s *Session) NewQuizItem() models.VocabItem {
	s.ActiveQuizItem = s.pick()
	return s.ActiveQuizItem
}

// CheckQuizAnswer reports whether the chosen option is correct. Pure query;
// repeated calls never change the active item or any other field.
func (s *Session) CheckQuizAnswer(option string) bool {
	return option == s.ActiveQuizItem.Answer
}

// SetTargetGoal updates the accuracy goal, clamped to the slider range
func (s *Session) SetTargetGoal(pct int) {
	if pct < MinTargetGoal {
		pct = MinTargetGoal
	}
	if pct > MaxTargetGoal {
		pct = MaxTargetGoal
	}
	s.TargetGoal = pct
}

// GoalMet compares the latest score against the target goal.
// ok is false while the history is empty.
func (s *Session) GoalMet() (latest int, met bool, ok bool) {
	if len(s.History) == 0 {
		return 0, false, false
	}
	latest = s.History[len(s.History)-1].Accuracy
	return latest, latest >= s.TargetGoal, true
}

// Reset discards every field and starts over, exactly as if the visitor had
// just arrived. Irreversible.
func (s *Session) Reset() {
	*s = *New(s.ID, s.pick, s.now)
}
