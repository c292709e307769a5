package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/senyabanana/marketplace-service/internal/models"
	"github.com/senyabanana/marketplace-service/internal/repository"

	"github.com/go-playground/validator/v10"
)

type BidService struct {
	Bids     repository.BidRepository
	Jobs     repository.JobRepository
	validate *validator.Validate
	now      func() time.Time
}

// NewBidService создает новый экземпляр BidService.
func NewBidService(bids repository.BidRepository, jobs repository.JobRepository) *BidService {
	return &BidService{Bids: bids, Jobs: jobs, validate: validator.New(), now: time.Now}
}

// CreateBid проводит допуск ставки: проверяет бизнес-правила на сервере,
// отклоняет повторную ставку пары (email, jobId) и сохраняет ставку вместе
// с инкрементом счётчика объявления.
func (s *BidService) CreateBid(ctx context.Context, bidReq models.BidRequest) (*models.Bid, error) {
	if err := s.validate.Struct(bidReq); err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}

	job, err := s.Jobs.GetJob(ctx, bidReq.JobID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to fetch job")
	}
	if job == nil {
		return nil, models.NewErrorResponse(http.StatusNotFound, "job not found")
	}

	if bidReq.Email == job.Buyer.Email {
		return nil, models.NewErrorResponse(http.StatusForbidden, "you cannot bid on your own job")
	}
	if bidReq.Price > job.MaxPrice {
		return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("bid price exceeds the maximum of %.2f", job.MaxPrice))
	}
	if deadline, parseErr := time.Parse("2006-01-02", job.Deadline); parseErr == nil {
		if s.now().After(deadline.AddDate(0, 0, 1)) {
			return nil, models.NewErrorResponse(http.StatusBadRequest, "the deadline for this job has passed")
		}
	}

	existing, err := s.Bids.FindBid(ctx, bidReq.Email, bidReq.JobID)
	if err != nil {
		return nil, models.NewErrorResponse(http.StatusInternalServerError, "failed to check existing bid")
	}
	if existing != nil {
		return nil, models.ErrDuplicateBid
	}
	return s.Bids.CreateBid(ctx, bidReq, job)
}

// GetUserBids получает ставки по email: поданные исполнителем либо, при
// asBuyer, полученные заказчиком по его объявлениям.
func (s *BidService) GetUserBids(ctx context.Context, email string, asBuyer bool) ([]models.Bid, error) {
	if email == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required path parameter: email")
	}
	if asBuyer {
		return s.Bids.GetBuyerBids(ctx, email)
	}
	return s.Bids.GetBidderBids(ctx, email)
}

// UpdateBidStatus меняет статус ставки.
func (s *BidService) UpdateBidStatus(ctx context.Context, bidId, status string) (*models.Bid, error) {
	if bidId == "" || status == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required parameters: id or status")
	}
	if !models.ValidBidStatus(models.BidStatus(status)) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("invalid bid status: %s", status))
	}
	return s.Bids.UpdateBidStatus(ctx, bidId, models.BidStatus(status))
}
