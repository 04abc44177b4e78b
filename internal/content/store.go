package content

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"langlab/internal/models"
)

// ErrNotFound is returned for lookups on a category, step or lesson key that
// is not part of the curriculum. Given a correctly wired UI this never fires;
// handlers treat it as an internal error rather than user input to fix.
var ErrNotFound = fmt.Errorf("content: not found")

// Store is the immutable curriculum and vocabulary bank. Built once at
// startup, safe for concurrent readers; only the random source is guarded.
type Store struct {
	categories []string
	steps      map[string][]string
	lessons    map[string]map[string]models.LessonEntry
	byKey      map[string]models.LessonEntry
	vocab      []models.VocabItem

	mu  sync.Mutex
	rng *rand.Rand
}

// NewStore builds the store from the static curriculum. A nil rng gets a
// time-seeded source; tests pass a seeded one for deterministic picks.
func NewStore(rng *rand.Rand) *Store {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	s := &Store{
		steps:   make(map[string][]string),
		lessons: make(map[string]map[string]models.LessonEntry),
		byKey:   make(map[string]models.LessonEntry),
		vocab:   vocabBank,
		rng:     rng,
	}

	for _, cat := range curriculum {
		s.categories = append(s.categories, cat.name)
		s.lessons[cat.name] = make(map[string]models.LessonEntry)

		mode := models.ModeCareer
		if cat.name == PlacementCategory {
			mode = models.ModePlacement
		}

		for _, l := range cat.lessons {
			s.steps[cat.name] = append(s.steps[cat.name], l.step)
			s.lessons[cat.name][l.step] = l.entry
			s.byKey[models.LessonKey(mode, l.step)] = l.entry
		}
	}

	return s
}

// ListCategories returns the curriculum categories in authored order
func (s *Store) ListCategories() []string {
	out := make([]string, len(s.categories))
	copy(out, s.categories)
	return out
}

// ListSteps returns the steps of one category in authored order
func (s *Store) ListSteps(category string) ([]string, error) {
	steps, ok := s.steps[category]
	if !ok {
		return nil, fmt.Errorf("%w: category %q", ErrNotFound, category)
	}
	out := make([]string, len(steps))
	copy(out, steps)
	return out, nil
}

// Lookup returns the lesson for a category and step
func (s *Store) Lookup(category, step string) (models.LessonEntry, error) {
	byStep, ok := s.lessons[category]
	if !ok {
		return models.LessonEntry{}, fmt.Errorf("%w: category %q", ErrNotFound, category)
	}
	entry, ok := byStep[step]
	if !ok {
		return models.LessonEntry{}, fmt.Errorf("%w: step %q in category %q", ErrNotFound, step, category)
	}
	return entry, nil
}

// LookupKey resolves a lesson key such as "placement_Level 1" back to its
// entry. Attempts are scored against the key bound when recording started,
// so this is the lookup the assessment path uses.
func (s *Store) LookupKey(lessonKey string) (models.LessonEntry, error) {
	entry, ok := s.byKey[lessonKey]
	if !ok {
		return models.LessonEntry{}, fmt.Errorf("%w: lesson key %q", ErrNotFound, lessonKey)
	}
	return entry, nil
}

// PickVocabItem returns a uniformly random vocabulary question. Repeats are
// allowed; two consecutive calls may return the same item.
func (s *Store) PickVocabItem() models.VocabItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.vocab[s.rng.Intn(len(s.vocab))]
}
