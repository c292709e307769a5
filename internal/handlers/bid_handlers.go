package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/senyabanana/marketplace-service/internal/auth"
	"github.com/senyabanana/marketplace-service/internal/models"
	"github.com/senyabanana/marketplace-service/internal/services"
	"github.com/senyabanana/marketplace-service/internal/utils"

	"github.com/rs/zerolog"
)

// BidHandler - структура для обработки HTTP-запросов по ставкам.
type BidHandler struct {
	Service *services.BidService
	Logger  zerolog.Logger
	Timeout time.Duration
}

// NewBidHandler создает новый экземпляр BidHandler.
func NewBidHandler(service *services.BidService, logger zerolog.Logger, timeout time.Duration) *BidHandler {
	return &BidHandler{
		Service: service,
		Logger:  logger,
		Timeout: timeout,
	}
}

// CreateBid обрабатывает запросы для подачи ставки. Повторная ставка той же
// пары (email, jobId) отдаётся как 400 plain text, остальные ошибки - JSON.
func (h *BidHandler) CreateBid(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	var bidReq models.BidRequest
	if err := json.NewDecoder(r.Body).Decode(&bidReq); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bid, err := h.Service.CreateBid(ctx, bidReq)
	if err != nil {
		if errors.Is(err, models.ErrDuplicateBid) {
			http.Error(w, models.ErrDuplicateBid.Message, http.StatusBadRequest)
			return
		}
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn().Err(err).Str("jobId", bidReq.JobID).Msg("bid rejected")
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to create bid")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to create bid")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(bid); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// GetUserBids обрабатывает запросы для получения ставок по email: поданных
// исполнителем либо, при query-параметре buyer, полученных заказчиком.
// Email из токена обязан совпадать с email из пути.
func (h *BidHandler) GetUserBids(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	email := r.PathValue("email")
	tokenEmail, ok := auth.EmailFromContext(ctx)
	if !ok || tokenEmail != email {
		utils.SendErrorResponse(w, http.StatusUnauthorized, "unauthorized access")
		return
	}

	asBuyer := r.URL.Query().Get("buyer") != ""

	bids, err := h.Service.GetUserBids(ctx, email, asBuyer)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn().Err(err).Msg("get bids rejected")
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to retrieve bids")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to retrieve bids")
		return
	}
	if bids == nil {
		bids = []models.Bid{}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(bids); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}

// UpdateBidStatus обрабатывает запросы для изменения статуса ставки.
func (h *BidHandler) UpdateBidStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.Timeout)
	defer cancel()

	bidId := r.PathValue("id")

	var body struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		utils.SendErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	bid, err := h.Service.UpdateBidStatus(ctx, bidId, body.Status)
	if err != nil {
		if errorResponse, ok := err.(*models.ErrorResponse); ok {
			h.Logger.Warn().Err(err).Str("bidId", bidId).Msg("bid status update rejected")
			utils.SendErrorResponse(w, errorResponse.StatusCode, errorResponse.Message)
			return
		}
		h.Logger.Error().Err(err).Msg("failed to update bid status")
		utils.SendErrorResponse(w, http.StatusInternalServerError, "failed to update bid status")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err = json.NewEncoder(w).Encode(bid); err != nil {
		h.Logger.Error().Err(err).Msg("failed to encode response")
	}
}
