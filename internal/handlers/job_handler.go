package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/senyabanana/marketplace-service/internal/auth"
	"github.com/senyabanana/marketplace-service/internal/models"
	"github.com/senyabanana/marketplace-service/internal/services"
	"github.com/senyabanana/marketplace-service/internal/utils"

	"github.com/rs/zerolog"
)

// JobHandler - структура для обработки HTTP-запросов по объявлениям.
type JobHandler struct {
	Service *services.JobService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewJobHandler создаёт новый экземпляр JobHandler.
func NewJobHandler(service *services.JobService, logger zerolog.Logger, timeout time.Duration) *JobHandler {
	return &JobHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateJob обрабатывает запросы для создания объявления.
func (h *JobHandler) CreateJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var jobReq models.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&jobReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, err := h.Service.CreateJob(ctx, jobReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn().Err(err).Msg("create job rejected")
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to create job")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create job")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(job); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// GetJobs обрабатывает запросы для получения списка всех объявлений.
func (h *JobHandler) GetJobs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	jobs, err := h.Service.FetchJobs(ctx)
	if err != nil {
		h.Logger.Error().Err(err).Msg("failed to fetch jobs")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch jobs")
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(jobs); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// GetBuyerJobs обрабатывает запросы для получения объявлений заказчика.
// Email из токена обязан совпадать с email из пути.
func (h *JobHandler) GetBuyerJobs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	email := r.PathValue("email")
	tokenEmail, ok := auth.EmailFromContext(ctx)
	if !ok || tokenEmail != email {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	jobs, err := h.Service.GetBuyerJobs(ctx, email)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn().Err(err).Msg("get buyer jobs rejected")
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to fetch buyer jobs")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch jobs")
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(jobs); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// GetJob обрабатывает запросы для получения объявления по ID.
// Отсутствующее объявление отдаётся как null, без 404.
func (h *JobHandler) GetJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	jobId := r.PathValue("id")

	job, err := h.Service.GetJob(ctx, jobId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to fetch job")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to fetch job")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(job); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// UpdateJob обрабатывает запросы для обновления объявления (upsert).
func (h *JobHandler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	jobId := r.PathValue("id")

	var jobReq models.JobRequest
	if err := json.NewDecoder(r.Body).Decode(&jobReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	job, err := h.Service.UpdateJob(ctx, jobId, jobReq)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn().Err(err).Msg("update job rejected")
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to update job")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to update job")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(job); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// DeleteJob обрабатывает запросы для удаления объявления.
func (h *JobHandler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	jobId := r.PathValue("id")

	deleted, err := h.Service.DeleteJob(ctx, jobId)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to delete job")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to delete job")
		return
	}

	if err = utils.SendJSON(w, http.StatusOK, map[string]int64{"deletedCount": deleted}); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// SearchJobs обрабатывает запросы для поиска, фильтрации и сортировки объявлений.
func (h *JobHandler) SearchJobs(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	search := r.URL.Query().Get("search")
	categories := r.URL.Query()["filter"]
	sort := r.URL.Query().Get("sort")

	jobs, err := h.Service.SearchJobs(ctx, search, categories, sort)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn().Err(err).Msg("search jobs rejected")
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to search jobs")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to search jobs")
		return
	}
	if jobs == nil {
		jobs = []models.Job{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(jobs); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}
