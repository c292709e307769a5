package services

import (
	"context"
	"fmt"
	"net/http"

	"github.com/senyabanana/marketplace-service/internal/models"
	"github.com/senyabanana/marketplace-service/internal/repository"

	"github.com/go-playground/validator/v10"
)

type JobService struct {
	Repo     repository.JobRepository
	validate *validator.Validate
}

// NewJobService создаёт новый экземпляр JobService.
func NewJobService(repo repository.JobRepository) *JobService {
	return &JobService{Repo: repo, validate: validator.New()}
}

// CreateJob создает новое объявление.
func (s *JobService) CreateJob(ctx context.Context, jobReq models.JobRequest) (*models.Job, error) {
	if err := s.validate.Struct(jobReq); err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	if !models.ValidJobCategory(jobReq.Category) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("invalid category: %s", jobReq.Category))
	}
	return s.Repo.CreateJob(ctx, jobReq)
}

// FetchJobs получает список всех объявлений.
func (s *JobService) FetchJobs(ctx context.Context) ([]models.Job, error) {
	return s.Repo.GetJobs(ctx)
}

// GetBuyerJobs получает список объявлений заказчика.
func (s *JobService) GetBuyerJobs(ctx context.Context, email string) ([]models.Job, error) {
	if email == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required path parameter: email")
	}
	return s.Repo.GetBuyerJobs(ctx, email)
}

// GetJob получает объявление по ID; nil без ошибки, если его нет.
func (s *JobService) GetJob(ctx context.Context, jobId string) (*models.Job, error) {
	if jobId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required path parameter: id")
	}
	return s.Repo.GetJob(ctx, jobId)
}

// UpdateJob обновляет поля объявления, создавая запись при её отсутствии.
func (s *JobService) UpdateJob(ctx context.Context, jobId string, jobReq models.JobRequest) (*models.Job, error) {
	if jobId == "" {
		return nil, models.NewErrorResponse(http.StatusBadRequest, "missing required path parameter: id")
	}
	if err := s.validate.Struct(jobReq); err != nil {
		return nil, models.NewErrorResponse(http.StatusBadRequest, err.Error())
	}
	if !models.ValidJobCategory(jobReq.Category) {
		return nil, models.NewErrorResponse(http.StatusBadRequest, fmt.Sprintf("invalid category: %s", jobReq.Category))
	}
	return s.Repo.UpsertJob(ctx, jobId, jobReq)
}

// DeleteJob удаляет объявление.
func (s *JobService) DeleteJob(ctx context.Context, jobId string) (int64, error) {
	if jobId == "" {
		return 0, models.NewErrorResponse(http.StatusBadRequest, "missing required path parameter: id")
	}
	return s.Repo.DeleteJob(ctx, jobId)
}

// SearchJobs получает список объявлений по поиску, фильтру и сортировке.
// SearchJobs не валидирует категории: неизвестная категория просто не совпадает ни с одной записью.
func (s *JobService) SearchJobs(ctx context.Context, search string, categories []string, sort string) ([]models.Job, error) {
	var filtered []string
	for _, category := range categories {
		if category == "" {
			continue
		}
		filtered = append(filtered, category)
	}
	return s.Repo.SearchJobs(ctx, search, filtered, sort)
}
