package models

import "strings"

// LessonEntry is a single practice sentence with its Hindi translation
type LessonEntry struct {
	Sentence    string
	Translation string
}

// VocabItem is one vocabulary warmup question
type VocabItem struct {
	Word    string
	Options []string
	Answer  string
}

// Mode identifies which practice track an attempt belongs to.
// Placement attempts drive level assessment; career attempts only log history.
type Mode string

const (
	ModePlacement Mode = "placement"
	ModeCareer    Mode = "career"
)

// LessonKey builds the history/selection key for a lesson, e.g. "placement_Level 1"
func LessonKey(mode Mode, step string) string {
	return string(mode) + "_" + step
}

// ModeOf recovers the mode a lesson key was created under.
// Unknown prefixes are treated as career so they can never move the assessed level.
func ModeOf(lessonKey string) Mode {
	if strings.HasPrefix(lessonKey, string(ModePlacement)+"_") {
		return ModePlacement
	}
	return ModeCareer
}
