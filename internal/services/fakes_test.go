package services_test

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/senyabanana/marketplace-service/internal/models"

	"github.com/google/uuid"
)

// fakeJobRepo - репозиторий объявлений в памяти для тестов сервисов.
type fakeJobRepo struct {
	jobs  map[string]*models.Job
	order []string
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: make(map[string]*models.Job)}
}

func (f *fakeJobRepo) CreateJob(_ context.Context, jobReq models.JobRequest) (*models.Job, error) {
	job := &models.Job{
		ID:          uuid.New().String(),
		Title:       jobReq.Title,
		Description: jobReq.Description,
		Category:    jobReq.Category,
		MinPrice:    jobReq.MinPrice,
		MaxPrice:    jobReq.MaxPrice,
		Deadline:    jobReq.Deadline,
		Buyer:       jobReq.Buyer,
		BidCount:    0,
		CreatedAt:   time.Now().UTC(),
	}
	f.jobs[job.ID] = job
	f.order = append(f.order, job.ID)
	out := *job
	return &out, nil
}

func (f *fakeJobRepo) GetJobs(_ context.Context) ([]models.Job, error) {
	var jobs []models.Job
	for _, id := range f.order {
		jobs = append(jobs, *f.jobs[id])
	}
	return jobs, nil
}

func (f *fakeJobRepo) GetBuyerJobs(_ context.Context, email string) ([]models.Job, error) {
	var jobs []models.Job
	for _, id := range f.order {
		if f.jobs[id].Buyer.Email == email {
			jobs = append(jobs, *f.jobs[id])
		}
	}
	return jobs, nil
}

func (f *fakeJobRepo) GetJob(_ context.Context, jobId string) (*models.Job, error) {
	job, ok := f.jobs[jobId]
	if !ok {
		return nil, nil
	}
	out := *job
	return &out, nil
}

func (f *fakeJobRepo) UpsertJob(_ context.Context, jobId string, jobReq models.JobRequest) (*models.Job, error) {
	job, ok := f.jobs[jobId]
	if !ok {
		job = &models.Job{ID: jobId, CreatedAt: time.Now().UTC()}
		f.jobs[jobId] = job
		f.order = append(f.order, jobId)
	}
	job.Title = jobReq.Title
	job.Description = jobReq.Description
	job.Category = jobReq.Category
	job.MinPrice = jobReq.MinPrice
	job.MaxPrice = jobReq.MaxPrice
	job.Deadline = jobReq.Deadline
	job.Buyer = jobReq.Buyer
	out := *job
	return &out, nil
}

func (f *fakeJobRepo) DeleteJob(_ context.Context, jobId string) (int64, error) {
	if _, ok := f.jobs[jobId]; !ok {
		return 0, nil
	}
	delete(f.jobs, jobId)
	for i, id := range f.order {
		if id == jobId {
			f.order = append(f.order[:i], f.order[i+1:]...)
			break
		}
	}
	return 1, nil
}

func (f *fakeJobRepo) SearchJobs(_ context.Context, search string, categories []string, sortOrder string) ([]models.Job, error) {
	allowed := make(map[string]bool, len(categories))
	for _, c := range categories {
		allowed[c] = true
	}

	var jobs []models.Job
	for _, id := range f.order {
		job := f.jobs[id]
		if !strings.Contains(strings.ToLower(job.Title), strings.ToLower(search)) {
			continue
		}
		if len(allowed) > 0 && !allowed[string(job.Category)] {
			continue
		}
		jobs = append(jobs, *job)
	}

	switch sortOrder {
	case "":
	case "asc":
		sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].Deadline < jobs[j].Deadline })
	default:
		sort.SliceStable(jobs, func(i, j int) bool { return jobs[i].Deadline > jobs[j].Deadline })
	}
	return jobs, nil
}

// fakeBidRepo - репозиторий ставок в памяти, повторяющий семантику
// уникального индекса (email, job_id) и транзакционного инкремента.
type fakeBidRepo struct {
	jobs *fakeJobRepo
	bids []models.Bid
}

func newFakeBidRepo(jobs *fakeJobRepo) *fakeBidRepo {
	return &fakeBidRepo{jobs: jobs}
}

func (f *fakeBidRepo) CreateBid(_ context.Context, bidReq models.BidRequest, job *models.Job) (*models.Bid, error) {
	for _, bid := range f.bids {
		if bid.Email == bidReq.Email && bid.JobID == bidReq.JobID {
			return nil, models.ErrDuplicateBid
		}
	}
	newBid := models.Bid{
		ID:         uuid.New().String(),
		Price:      bidReq.Price,
		Email:      bidReq.Email,
		Comment:    bidReq.Comment,
		Deadline:   bidReq.Deadline,
		JobID:      bidReq.JobID,
		Title:      job.Title,
		Category:   job.Category,
		Status:     models.PendingBid,
		BuyerEmail: job.Buyer.Email,
		CreatedAt:  time.Now().UTC(),
	}
	f.bids = append(f.bids, newBid)
	if stored, ok := f.jobs.jobs[bidReq.JobID]; ok {
		stored.BidCount++
	}
	return &newBid, nil
}

func (f *fakeBidRepo) FindBid(_ context.Context, email, jobId string) (*models.Bid, error) {
	for _, bid := range f.bids {
		if bid.Email == email && bid.JobID == jobId {
			out := bid
			return &out, nil
		}
	}
	return nil, nil
}

func (f *fakeBidRepo) GetBidderBids(_ context.Context, email string) ([]models.Bid, error) {
	var bids []models.Bid
	for _, bid := range f.bids {
		if bid.Email == email {
			bids = append(bids, bid)
		}
	}
	return bids, nil
}

func (f *fakeBidRepo) GetBuyerBids(_ context.Context, email string) ([]models.Bid, error) {
	var bids []models.Bid
	for _, bid := range f.bids {
		if bid.BuyerEmail == email {
			bids = append(bids, bid)
		}
	}
	return bids, nil
}

func (f *fakeBidRepo) UpdateBidStatus(_ context.Context, bidId string, status models.BidStatus) (*models.Bid, error) {
	for i := range f.bids {
		if f.bids[i].ID == bidId {
			f.bids[i].Status = status
			out := f.bids[i]
			return &out, nil
		}
	}
	return nil, nil
}
