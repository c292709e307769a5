package repository

import (
	"context"
	"errors"
	"time"

	"github.com/senyabanana/marketplace-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bidColumns = `id, price, email, comment, deadline, job_id, title, category, status, buyer_email, created_at`

// BidRepository - интерфейс для работы со ставками.
type BidRepository interface {
	CreateBid(ctx context.Context, bidReq models.BidRequest, job *models.Job) (*models.Bid, error)
	FindBid(ctx context.Context, email, jobId string) (*models.Bid, error)
	GetBidderBids(ctx context.Context, email string) ([]models.Bid, error)
	GetBuyerBids(ctx context.Context, email string) ([]models.Bid, error)
	UpdateBidStatus(ctx context.Context, bidId string, status models.BidStatus) (*models.Bid, error)
}

// PostgresBidRepository - реализация BidRepository для базы данных.
type PostgresBidRepository struct {
	DB *pgxpool.Pool
}

// NewPostgresBidRepository создает новый экземпляр PostgresBidRepository.
func NewPostgresBidRepository(db *pgxpool.Pool) *PostgresBidRepository {
	return &PostgresBidRepository{DB: db}
}

// CreateBid сохраняет ставку и увеличивает счётчик ставок объявления в одной
// транзакции. Title, Category и BuyerEmail снимаются с переданного объявления
// на момент подачи. Нарушение уникального индекса (email, job_id) при гонке
// двух запросов отдаётся как ErrDuplicateBid.
func (r *PostgresBidRepository) CreateBid(ctx context.Context, bidReq models.BidRequest, job *models.Job) (*models.Bid, error) {
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

	tx, err := r.DB.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	insertQuery := `INSERT INTO bid (id, price, email, comment, deadline, job_id, title, category, status, buyer_email, created_at)
                   VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err = tx.Exec(
		ctx,
		insertQuery,
		newBid.ID,
		newBid.Price,
		newBid.Email,
		newBid.Comment,
		newBid.Deadline,
		newBid.JobID,
		newBid.Title,
		newBid.Category,
		newBid.Status,
		newBid.BuyerEmail,
		newBid.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, models.ErrDuplicateBid
		}
		return nil, err
	}

	_, err = tx.Exec(ctx, `UPDATE job SET bid_count = bid_count + 1 WHERE id = $1`, newBid.JobID)
	if err != nil {
		return nil, err
	}

	if err = tx.Commit(ctx); err != nil {
		return nil, err
	}
	return &newBid, nil
}

// FindBid возвращает ставку пары (email, jobId); nil без ошибки, если её нет.
func (r *PostgresBidRepository) FindBid(ctx context.Context, email, jobId string) (*models.Bid, error) {
	var bid models.Bid
	query := `SELECT ` + bidColumns + ` FROM bid WHERE email = $1 AND job_id = $2`
	err := r.DB.QueryRow(ctx, query, email, jobId).Scan(
		&bid.ID,
		&bid.Price,
		&bid.Email,
		&bid.Comment,
		&bid.Deadline,
		&bid.JobID,
		&bid.Title,
		&bid.Category,
		&bid.Status,
		&bid.BuyerEmail,
		&bid.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

// GetBidderBids возвращает ставки, поданные исполнителем.
func (r *PostgresBidRepository) GetBidderBids(ctx context.Context, email string) ([]models.Bid, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+bidColumns+` FROM bid WHERE email = $1`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBids(rows)
}

// GetBuyerBids возвращает ставки по объявлениям заказчика.
func (r *PostgresBidRepository) GetBuyerBids(ctx context.Context, email string) ([]models.Bid, error) {
	rows, err := r.DB.Query(ctx, `SELECT `+bidColumns+` FROM bid WHERE buyer_email = $1`, email)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBids(rows)
}

// UpdateBidStatus меняет статус ставки; nil без ошибки, если ставки нет.
func (r *PostgresBidRepository) UpdateBidStatus(ctx context.Context, bidId string, status models.BidStatus) (*models.Bid, error) {
	updateQuery := `UPDATE bid SET status = $1 WHERE id = $2`
	tag, err := r.DB.Exec(ctx, updateQuery, status, bidId)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	var bid models.Bid
	bidQuery := `SELECT ` + bidColumns + ` FROM bid WHERE id = $1`
	err = r.DB.QueryRow(ctx, bidQuery, bidId).Scan(
		&bid.ID,
		&bid.Price,
		&bid.Email,
		&bid.Comment,
		&bid.Deadline,
		&bid.JobID,
		&bid.Title,
		&bid.Category,
		&bid.Status,
		&bid.BuyerEmail,
		&bid.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &bid, nil
}

func scanBids(rows pgx.Rows) ([]models.Bid, error) {
	var bids []models.Bid
	for rows.Next() {
		var bid models.Bid
		if err := rows.Scan(
			&bid.ID,
			&bid.Price,
			&bid.Email,
			&bid.Comment,
			&bid.Deadline,
			&bid.JobID,
			&bid.Title,
			&bid.Category,
			&bid.Status,
			&bid.BuyerEmail,
			&bid.CreatedAt); err != nil {
			return nil, err
		}
		bids = append(bids, bid)
	}
	return bids, rows.Err()
}
