package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/interviewqa/apiserver/internal/services"
	"github.com/interviewqa/apiserver/types"
)

// QuestionHandler provides HTTP handlers for questions under a sub-job.
type QuestionHandler struct {
	questionService *services.QuestionService
}

func NewQuestionHandler(questionService *services.QuestionService) *QuestionHandler {
	return &QuestionHandler{questionService: questionService}
}

// QuestionRouter registers question routes. It expects jobID and subJobID
// parameters from the enclosing routes.
func QuestionRouter(r chi.Router, questionService *services.QuestionService, authMiddleware func(http.Handler) http.Handler) {
	handler := NewQuestionHandler(questionService)

	r.Get("/", handler.ListQuestions)
	r.With(authMiddleware).Post("/", handler.CreateQuestion)
	r.Route("/{questionID}", func(r chi.Router) {
		r.Get("/", handler.GetQuestion)
		r.With(authMiddleware).Delete("/", handler.DeleteQuestion)
		r.With(authMiddleware).Put("/like", handler.LikeQuestion)
		r.With(authMiddleware).Put("/unlike", handler.UnlikeQuestion)
	})
}

type questionPath struct {
	jobID      string
	subJobID   string
	questionID string
}

func pathParams(r *http.Request) questionPath {
	return questionPath{
		jobID:      chi.URLParam(r, "jobID"),
		subJobID:   chi.URLParam(r, "subJobID"),
		questionID: chi.URLParam(r, "questionID"),
	}
}

func (h *QuestionHandler) ListQuestions(w http.ResponseWriter, r *http.Request) {
	p := pathParams(r)
	questions, err := h.questionService.List(r.Context(), p.jobID, p.subJobID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (h *QuestionHandler) GetQuestion(w http.ResponseWriter, r *http.Request) {
	p := pathParams(r)
	question, err := h.questionService.Get(r.Context(), p.jobID, p.subJobID, p.questionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"question": question})
}

func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req types.QuestionInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	p := pathParams(r)
	created, err := h.questionService.Create(r.Context(), p.jobID, p.subJobID, userID, req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (h *QuestionHandler) LikeQuestion(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p := pathParams(r)
	favorites, err := h.questionService.Like(r.Context(), p.jobID, p.subJobID, p.questionID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": favorites})
}

func (h *QuestionHandler) UnlikeQuestion(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p := pathParams(r)
	favorites, err := h.questionService.Unlike(r.Context(), p.jobID, p.subJobID, p.questionID, userID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"favorites": favorites})
}

// DeleteQuestion is allowed only for the question's creator.
func (h *QuestionHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	userID, err := userIDFromContext(r.Context())
	if err != nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p := pathParams(r)
	if err := h.questionService.Delete(r.Context(), p.jobID, p.subJobID, p.questionID, userID); err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"deleted": true})
}
