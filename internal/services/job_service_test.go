package services_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/senyabanana/marketplace-service/internal/models"
	"github.com/senyabanana/marketplace-service/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validJobRequest() models.JobRequest {
	return models.JobRequest{
		Title:       "Logo design",
		Description: "Design a logo for a coffee shop",
		Category:    models.GraphicsDesign,
		MinPrice:    10,
		MaxPrice:    50,
		Deadline:    "2030-01-01",
		Buyer:       models.Buyer{Name: "Bob", Email: "b@x.com"},
	}
}

func TestCreateJob_ThenGetJob_RoundTrip(t *testing.T) {
	svc := services.NewJobService(newFakeJobRepo())

	created, err := svc.CreateJob(context.Background(), validJobRequest())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	got, err := svc.GetJob(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Logo design", got.Title)
	assert.Equal(t, models.GraphicsDesign, got.Category)
	assert.Equal(t, 10.0, got.MinPrice)
	assert.Equal(t, 50.0, got.MaxPrice)
	assert.Equal(t, "2030-01-01", got.Deadline)
	assert.Equal(t, "b@x.com", got.Buyer.Email)
	assert.Equal(t, int32(0), got.BidCount)
}

func TestCreateJob_InvalidCategory(t *testing.T) {
	svc := services.NewJobService(newFakeJobRepo())

	jobReq := validJobRequest()
	jobReq.Category = "Interior Design"

	_, err := svc.CreateJob(context.Background(), jobReq)
	var errorResponse *models.ErrorResponse
	require.ErrorAs(t, err, &errorResponse)
	assert.Equal(t, http.StatusBadRequest, errorResponse.StatusCode)
}

func TestCreateJob_MissingTitle(t *testing.T) {
	svc := services.NewJobService(newFakeJobRepo())

	jobReq := validJobRequest()
	jobReq.Title = ""

	_, err := svc.CreateJob(context.Background(), jobReq)
	var errorResponse *models.ErrorResponse
	require.ErrorAs(t, err, &errorResponse)
	assert.Equal(t, http.StatusBadRequest, errorResponse.StatusCode)
}

func TestCreateJob_BadDeadlineFormat(t *testing.T) {
	svc := services.NewJobService(newFakeJobRepo())

	jobReq := validJobRequest()
	jobReq.Deadline = "01/01/2030"

	_, err := svc.CreateJob(context.Background(), jobReq)
	var errorResponse *models.ErrorResponse
	require.ErrorAs(t, err, &errorResponse)
	assert.Equal(t, http.StatusBadRequest, errorResponse.StatusCode)
}

func TestGetJob_AbsentIsNilWithoutError(t *testing.T) {
	svc := services.NewJobService(newFakeJobRepo())

	got, err := svc.GetJob(context.Background(), "no-such-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func seedSearchJobs(t *testing.T, svc *services.JobService) {
	t.Helper()
	seeds := []struct {
		title    string
		category models.JobCategory
		deadline string
	}{
		{"Logo design", models.GraphicsDesign, "2030-03-01"},
		{"Build a website", models.WebDevelopment, "2030-01-01"},
		{"SEO audit", models.DigitalMarketing, "2030-06-01"},
	}
	for _, s := range seeds {
		jobReq := validJobRequest()
		jobReq.Title = s.title
		jobReq.Category = s.category
		jobReq.Deadline = s.deadline
		_, err := svc.CreateJob(context.Background(), jobReq)
		require.NoError(t, err)
	}
}

func TestSearchJobs_CaseInsensitiveSubstring(t *testing.T) {
	svc := services.NewJobService(newFakeJobRepo())
	seedSearchJobs(t, svc)

	jobs, err := svc.SearchJobs(context.Background(), "LOGO", nil, "")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, "Logo design", jobs[0].Title)

	jobs, err = svc.SearchJobs(context.Background(), "", nil, "")
	require.NoError(t, err)
	assert.Len(t, jobs, 3)
}

func TestSearchJobs_FilterExactCategory(t *testing.T) {
	svc := services.NewJobService(newFakeJobRepo())
	seedSearchJobs(t, svc)

	jobs, err := svc.SearchJobs(context.Background(), "", []string{"Web Development"}, "")
	require.NoError(t, err)
	require.Len(t, jobs, 1)
	assert.Equal(t, models.WebDevelopment, jobs[0].Category)

	// пустой filter не ограничивает категории
	jobs, err = svc.SearchJobs(context.Background(), "", []string{""}, "")
	require.NoError(t, err)
	assert.Len(t, jobs, 3)
}

func TestSearchJobs_UnknownCategoryMatchesNothing(t *testing.T) {
	svc := services.NewJobService(newFakeJobRepo())
	seedSearchJobs(t, svc)

	jobs, err := svc.SearchJobs(context.Background(), "", []string{"Cooking"}, "")
	require.NoError(t, err)
	assert.Empty(t, jobs)
}

func TestSearchJobs_SortByDeadline(t *testing.T) {
	svc := services.NewJobService(newFakeJobRepo())
	seedSearchJobs(t, svc)

	jobs, err := svc.SearchJobs(context.Background(), "", nil, "asc")
	require.NoError(t, err)
	require.Len(t, jobs, 3)
	assert.Equal(t, []string{"2030-01-01", "2030-03-01", "2030-06-01"}, deadlines(jobs))

	// любое значение, кроме "asc", сортирует по убыванию
	for _, sortParam := range []string{"dsc", "desc", "anything"} {
		jobs, err = svc.SearchJobs(context.Background(), "", nil, sortParam)
		require.NoError(t, err)
		assert.Equal(t, []string{"2030-06-01", "2030-03-01", "2030-01-01"}, deadlines(jobs), "sort=%q", sortParam)
	}

	// отсутствие sort оставляет естественный порядок
	jobs, err = svc.SearchJobs(context.Background(), "", nil, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"2030-03-01", "2030-01-01", "2030-06-01"}, deadlines(jobs))
}

func deadlines(jobs []models.Job) []string {
	out := make([]string, len(jobs))
	for i, job := range jobs {
		out[i] = job.Deadline
	}
	return out
}

func TestUpdateJob_UpsertAndDelete(t *testing.T) {
	svc := services.NewJobService(newFakeJobRepo())

	created, err := svc.CreateJob(context.Background(), validJobRequest())
	require.NoError(t, err)

	jobReq := validJobRequest()
	jobReq.Title = "Logo redesign"
	updated, err := svc.UpdateJob(context.Background(), created.ID, jobReq)
	require.NoError(t, err)
	assert.Equal(t, "Logo redesign", updated.Title)
	assert.Equal(t, created.ID, updated.ID)

	deleted, err := svc.DeleteJob(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	got, err := svc.GetJob(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}
