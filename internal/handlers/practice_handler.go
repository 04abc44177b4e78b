package handlers

import (
	"html/template"
	"io"
	"net/http"
	"strconv"

	"langlab/internal/content"
	"langlab/internal/models"
	"langlab/internal/service"
)

// PracticeHandler serves the practice page and the pronunciation endpoints
type PracticeHandler struct {
	practiceService *service.PracticeService
	store           *content.Store
	templates       *template.Template
}

// NewPracticeHandler creates a new practice handler
func NewPracticeHandler(practiceService *service.PracticeService, store *content.Store, templates *template.Template) *PracticeHandler {
	return &PracticeHandler{
		practiceService: practiceService,
		store:           store,
		templates:       templates,
	}
}

// Home renders the single practice page
func (h *PracticeHandler) Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	data := struct {
		Dashboard service.Dashboard
		Quiz      service.QuizItem
	}{
		Dashboard: h.practiceService.Dashboard(SessionID(r.Context())),
		Quiz:      h.practiceService.ActiveQuiz(SessionID(r.Context())),
	}

	if err := h.templates.ExecuteTemplate(w, "index.tmpl", data); err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to render page", "Render index", err)
	}
}

// curriculumCategory is one category with its steps, in authored order
type curriculumCategory struct {
	Name  string   `json:"name"`
	Steps []string `json:"steps"`
}

// Curriculum lists the categories and steps the page may select from
func (h *PracticeHandler) Curriculum(w http.ResponseWriter, r *http.Request) {
	var out []curriculumCategory
	for _, cat := range h.store.ListCategories() {
		steps, err := h.store.ListSteps(cat)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "Curriculum unavailable", "List steps", err)
			return
		}
		out = append(out, curriculumCategory{Name: cat, Steps: steps})
	}
	respondJSON(w, http.StatusOK, out)
}

// State returns the dashboard snapshot for the current session
func (h *PracticeHandler) State(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.practiceService.Dashboard(SessionID(r.Context())))
}

// SelectLesson switches the active lesson
func (h *PracticeHandler) SelectLesson(w http.ResponseWriter, r *http.Request) {
	category := r.FormValue("category")
	step := r.FormValue("step")
	if category == "" || step == "" {
		respondError(w, http.StatusBadRequest, "category and step are required", "", nil)
		return
	}

	sel, err := h.practiceService.SelectLesson(SessionID(r.Context()), category, step)
	if err != nil {
		// the page only submits keys it listed, so this is a wiring bug
		respondError(w, http.StatusInternalServerError, "Unknown lesson", "Select lesson", err)
		return
	}
	respondJSON(w, http.StatusOK, sel)
}

// LessonAudio synthesizes the current sentence and streams it back as MP3
func (h *PracticeHandler) LessonAudio(w http.ResponseWriter, r *http.Request) {
	audio, err := h.practiceService.Listen(r.Context(), SessionID(r.Context()))
	if err != nil {
		respondSpeechError(w, err)
		return
	}

	w.Header().Set("Content-Type", "audio/mpeg")
	w.Header().Set("Cache-Control", "no-store")
	w.Write(audio)
}

// wordFeedback is one word with its color bucket for the feedback strip
type wordFeedback struct {
	Word     string `json:"word"`
	Accuracy int    `json:"accuracy"`
	Strong   bool   `json:"strong"`
}

// attemptResponse is the scored attempt plus the refreshed dashboard
type attemptResponse struct {
	Result    models.AttemptResult `json:"result"`
	Words     []wordFeedback       `json:"words"`
	Dashboard service.Dashboard    `json:"dashboard"`
}

// maxAudioUpload bounds the recording upload size
const maxAudioUpload = 5 << 20

// SubmitAttempt accepts a recorded attempt as multipart form data (field
// "audio", optional field "lesson_key" bound when recording started) and
// returns the assessment.
func (h *PracticeHandler) SubmitAttempt(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxAudioUpload)
	if err := r.ParseMultipartForm(maxAudioUpload); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid upload", "Parse attempt upload", err)
		return
	}

	var audio []byte
	if file, _, err := r.FormFile("audio"); err == nil {
		defer file.Close()
		audio, err = io.ReadAll(file)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Could not read audio", "Read attempt upload", err)
			return
		}
	}

	result, err := h.practiceService.SubmitRecording(r.Context(), SessionID(r.Context()), audio, r.FormValue("lesson_key"))
	if err != nil {
		respondSpeechError(w, err)
		return
	}

	resp := attemptResponse{
		Result:    result,
		Dashboard: h.practiceService.Dashboard(SessionID(r.Context())),
	}
	for _, ws := range result.Words {
		resp.Words = append(resp.Words, wordFeedback{Word: ws.Word, Accuracy: ws.Accuracy, Strong: ws.Strong()})
	}
	respondJSON(w, http.StatusOK, resp)
}

// SetGoal updates the target accuracy goal
func (h *PracticeHandler) SetGoal(w http.ResponseWriter, r *http.Request) {
	target, err := strconv.Atoi(r.FormValue("target"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "target must be a number", "", nil)
		return
	}

	h.practiceService.SetGoal(SessionID(r.Context()), target)
	respondJSON(w, http.StatusOK, h.practiceService.Dashboard(SessionID(r.Context())))
}

// Reset wipes all practice data for this session
func (h *PracticeHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.practiceService.Reset(SessionID(r.Context()))
	respondJSON(w, http.StatusOK, h.practiceService.Dashboard(SessionID(r.Context())))
}
