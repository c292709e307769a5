package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/senyabanana/marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const jobColumns = `id, title, description, category, min_price, max_price, deadline, buyer_name, buyer_email, buyer_photo, bid_count, created_at`

// JobRepository - интерфейс для работы с объявлениями.
type JobRepository interface {
	CreateJob(ctx context.Context, jobReq models.JobRequest) (*models.Job, error)
	GetJobs(ctx context.Context) ([]models.Job, error)
	GetBuyerJobs(ctx context.Context, email string) ([]models.Job, error)
	GetJob(ctx context.Context, jobId string) (*models.Job, error)
	UpsertJob(ctx context.Context, jobId string, jobReq models.JobRequest) (*models.Job, error)
	DeleteJob(ctx context.Context, jobId string) (int64, error)
	SearchJobs(ctx context.Context, search string, categories []string, sort string) ([]models.Job, error)
}

// PostgresJobRepository - реализация JobRepository для базы данных.
type PostgresJobRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresJobRepository создаёт новый экземпляр PostgresJobRepository.
func NewPostgresJobRepository(db *pgxpool.Pool) *PostgresJobRepository {
	return &PostgresJobRepository{DB: db}
}

// CreateJob создает новое объявление.
func (r *PostgresJobRepository) CreateJob(ctx context.Context, jobReq models.JobRequest) (*models.Job, error) {
	newJob := models.Job{
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
	_, err := r.DB.Exec(ctx, `
       INSERT INTO job (id, title, description, category, min_price, max_price, deadline, buyer_name, buyer_email, buyer_photo, bid_count, created_at)
       VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
   `,
		newJob.ID,
		newJob.Title,
		newJob.Description,
		newJob.Category,
		newJob.MinPrice,
		newJob.MaxPrice,
		newJob.Deadline,
		newJob.Buyer.Name,
		newJob.Buyer.Email,
		newJob.Buyer.Photo,
		newJob.BidCount,
		newJob.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job: %w", err)
	}
	return &newJob, nil
}

// GetJobs возвращает список всех объявлений.
func (r *PostgresJobRepository) GetJobs(ctx context.Context) ([]models.Job, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+jobColumns+` FROM job`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

// GetBuyerJobs возвращает список объявлений конкретного заказчика.
func (r *PostgresJobRepository) GetBuyerJobs(ctx context.Context, email string) ([]models.Job, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+jobColumns+` FROM job WHERE buyer_email = $1`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

// GetJob возвращает объявление по ID; nil без ошибки, если его нет.
func (r *PostgresJobRepository) GetJob(ctx context.Context, jobId string) (*models.Job, error) {
	var job models.Job
	err := r.DB.QueryRow(ctx, `SELECT `+jobColumns+` FROM job WHERE id = $1`, jobId).Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Category,
		&job.MinPrice,
		&job.MaxPrice,
		&job.Deadline,
		&job.Buyer.Name,
		&job.Buyer.Email,
		&job.Buyer.Photo,
		&job.BidCount,
		&job.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// UpsertJob обновляет поля объявления, создавая запись при её отсутствии.
// Счётчик ставок при обновлении не трогается.
func (r *PostgresJobRepository) UpsertJob(ctx context.Context, jobId string, jobReq models.JobRequest) (*models.Job, error) {
	query := `
		INSERT INTO job (id, title, description, category, min_price, max_price, deadline, buyer_name, buyer_email, buyer_photo, bid_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 0, $11)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			min_price = EXCLUDED.min_price,
			max_price = EXCLUDED.max_price,
			deadline = EXCLUDED.deadline,
			buyer_name = EXCLUDED.buyer_name,
			buyer_email = EXCLUDED.buyer_email,
			buyer_photo = EXCLUDED.buyer_photo
		RETURNING ` + jobColumns
	var job models.Job
	err := r.DB.QueryRow(
		ctx,
		query,
		jobId,
		jobReq.Title,
		jobReq.Description,
		jobReq.Category,
		jobReq.MinPrice,
		jobReq.MaxPrice,
		jobReq.Deadline,
		jobReq.Buyer.Name,
		jobReq.Buyer.Email,
		jobReq.Buyer.Photo,
		time.Now().UTC()).Scan(
		&job.ID,
		&job.Title,
		&job.Description,
		&job.Category,
		&job.MinPrice,
		&job.MaxPrice,
		&job.Deadline,
		&job.Buyer.Name,
		&job.Buyer.Email,
		&job.Buyer.Photo,
		&job.BidCount,
		&job.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &job, nil
}

// DeleteJob удаляет объявление и возвращает число удалённых строк.
// Ставки по удалённому объявлению остаются (ссылочная целостность не
// поддерживается намеренно).
func (r *PostgresJobRepository) DeleteJob(ctx context.Context, jobId string) (int64, error) {
	tag, err := r.DB.Exec(ctx, `DELETE FROM job WHERE id = $1`, jobId)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// SearchJobs возвращает объявления по поиску, фильтру категорий и сортировке.
func (r *PostgresJobRepository) SearchJobs(ctx context.Context, search string, categories []string, sort string) ([]models.Job, error) {
	query, args := BuildJobSearchQuery(search, categories, sort)
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanJobs(rows)
}

// BuildJobSearchQuery строит SQL-запрос для /all-jobs из параметров
// search, filter и sort. Пустой search совпадает со всеми заголовками.
// Любое значение sort, кроме "asc", сортирует по убыванию (клиент шлёт
// "dsc"); отсутствие sort оставляет естественный порядок.
func BuildJobSearchQuery(search string, categories []string, sort string) (string, []interface{}) {
	query := `SELECT ` + jobColumns + ` FROM job`
	var filters []string
	var args []interface{}
	argIndex := 1

	// % и _ в поисковой строке работают как wildcard-символы ILIKE.
	filters = append(filters, fmt.Sprintf("title ILIKE '%%' || $%d || '%%'", argIndex))
	args = append(args, search)
	argIndex++

	if len(categories) > 0 {
		filters = append(filters, fmt.Sprintf("category = ANY($%d)", argIndex))
		args = append(args, pq.Array(categories))
		argIndex++
	}

	query += " WHERE " + strings.Join(filters, " AND ")

	switch sort {
	case "":
	case "asc":
		query += " ORDER BY deadline ASC"
	default:
		query += " ORDER BY deadline DESC"
	}
	return query, args
}

func scanJobs(rows pgx.Rows) ([]models.Job, error) {
	var jobs []models.Job
	for rows.Next() {
		var job models.Job
		if err := rows.Scan(
			&job.ID,
			&job.Title,
			&job.Description,
			&job.Category,
			&job.MinPrice,
			&job.MaxPrice,
			&job.Deadline,
			&job.Buyer.Name,
			&job.Buyer.Email,
			&job.Buyer.Photo,
			&job.BidCount,
			&job.CreatedAt); err != nil {
			return nil, err
		}
		jobs = append(jobs, job)
	}
	return jobs, rows.Err()
}
