package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/interviewqa/apiserver/internal/services"
	"github.com/interviewqa/apiserver/types"
)

// JobHandler provides HTTP handlers for jobs and their sub-jobs.
type JobHandler struct {
	jobService    *services.JobService
	subJobService *services.SubJobService
}

func NewJobHandler(jobService *services.JobService, subJobService *services.SubJobService) *JobHandler {
	return &JobHandler{jobService: jobService, subJobService: subJobService}
}

// JobRouter registers the job tree, including sub-jobs and their questions,
// on the given router.
func JobRouter(
	r chi.Router,
	jobService *services.JobService,
	subJobService *services.SubJobService,
	questionService *services.QuestionService,
	authMiddleware func(http.Handler) http.Handler,
) {
	handler := NewJobHandler(jobService, subJobService)

	r.Get("/", handler.ListJobs)
	r.Post("/", handler.CreateJob)
	r.Route("/{jobID}", func(r chi.Router) {
		r.Get("/", handler.GetJob)
		r.Route("/subjobs", func(r chi.Router) {
			r.Get("/", handler.ListSubJobs)
			r.Post("/", handler.CreateSubJob)
			r.Route("/{subJobID}", func(r chi.Router) {
				r.Get("/", handler.GetSubJob)
				r.Route("/questions", func(r chi.Router) {
					QuestionRouter(r, questionService, authMiddleware)
				})
			})
		})
	})
}

func (h *JobHandler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobService.List(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"jobs": jobs})
}

func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobService.Get(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"job": job})
}

func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var req types.JobInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	job, err := h.jobService.Create(r.Context(), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"job": job})
}

func (h *JobHandler) ListSubJobs(w http.ResponseWriter, r *http.Request) {
	subJobs, err := h.subJobService.List(r.Context(), chi.URLParam(r, "jobID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subJobs": subJobs})
}

func (h *JobHandler) GetSubJob(w http.ResponseWriter, r *http.Request) {
	subJob, err := h.subJobService.Get(r.Context(), chi.URLParam(r, "jobID"), chi.URLParam(r, "subJobID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subJob": subJob})
}

// CreateSubJob files the sub-job under the job in the route, whatever the
// payload says.
func (h *JobHandler) CreateSubJob(w http.ResponseWriter, r *http.Request) {
	var req types.SubJobInput
	if err := decodeJSON(w, r, &req); err != nil {
		writeServiceError(w, r, err)
		return
	}

	subJob, err := h.subJobService.Create(r.Context(), chi.URLParam(r, "jobID"), req)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"subJob": subJob})
}
