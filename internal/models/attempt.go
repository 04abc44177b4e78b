package models

import "time"

// WordScore is the per-word accuracy returned by the assessment service
type WordScore struct {
	Word     string `json:"word"`
	Accuracy int    `json:"accuracy"`
}

// Strong reports whether the word lands in the green feedback bucket.
// The word-level threshold is 75, independent of the level bands below.
func (w WordScore) Strong() bool {
	return w.Accuracy > 75
}

// AttemptResult is one completed pronunciation attempt. Immutable once created;
// results are appended to the session history and never edited.
type AttemptResult struct {
	LessonKey    string      `json:"lesson_key"`
	Accuracy     int         `json:"accuracy"`
	Fluency      int         `json:"fluency"`
	Completeness int         `json:"completeness"`
	Words        []WordScore `json:"words"`
	At           time.Time   `json:"at"`
}

// Level is the learner level assessed from placement attempts
type Level string

const (
	LevelNotTested    Level = "Not Tested"
	LevelBeginner     Level = "Beginner"
	LevelIntermediate Level = "Intermediate"
	LevelAdvanced     Level = "Advanced"
)

// LevelForAccuracy maps an overall accuracy score to a level.
// Boundaries are strict: 80 is Intermediate, 50 is Beginner.
func LevelForAccuracy(accuracy int) Level {
	switch {
	case accuracy > 80:
		return LevelAdvanced
	case accuracy > 50:
		return LevelIntermediate
	default:
		return LevelBeginner
	}
}
