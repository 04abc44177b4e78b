package handlers

import (
	"net/http"

	"langlab/internal/service"
)

// QuizHandler serves the vocabulary warmup endpoints
type QuizHandler struct {
	practiceService *service.PracticeService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(practiceService *service.PracticeService) *QuizHandler {
	return &QuizHandler{practiceService: practiceService}
}

// Active returns the current warmup question, answer withheld
func (h *QuizHandler) Active(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.practiceService.ActiveQuiz(SessionID(r.Context())))
}

// Check grades a chosen option against the active question
func (h *QuizHandler) Check(w http.ResponseWriter, r *http.Request) {
	option := r.FormValue("option")
	if option == "" {
		respondError(w, http.StatusBadRequest, "option is required", "", nil)
		return
	}
	respondJSON(w, http.StatusOK, h.practiceService.CheckQuiz(SessionID(r.Context()), option))
}

// New replaces the active question with a fresh random one
func (h *QuizHandler) New(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.practiceService.NewQuiz(SessionID(r.Context())))
}
