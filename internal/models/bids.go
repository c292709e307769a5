package models

import "time"

type BidStatus string // Статус ставки

const (
	PendingBid    BidStatus = "Pending"     // Ставка подана
	InProgressBid BidStatus = "In Progress" // Ставка принята, работа идёт
	CompletedBid  BidStatus = "Completed"   // Работа завершена
	RejectedBid   BidStatus = "Rejected"    // Ставка отклонена
)

// ValidBidStatus проверяет, что статус входит в допустимый набор.
func ValidBidStatus(s BidStatus) bool {
	switch s {
	case PendingBid, InProgressBid, CompletedBid, RejectedBid:
		return true
	default:
		return false
	}
}

// Bid представляет модель ставки исполнителя на объявление.
// Title, Category и BuyerEmail - снимки полей объявления на момент подачи
// ставки; при последующем редактировании объявления они не обновляются.
type Bid struct {
	ID         string      `json:"_id"`
	Price      float64     `json:"price"`
	Email      string      `json:"email"`
	Comment    string      `json:"comment"`
	Deadline   string      `json:"deadline"`
	JobID      string      `json:"jobId"`
	Title      string      `json:"title"`
	Category   JobCategory `json:"category"`
	Status     BidStatus   `json:"status"`
	BuyerEmail string      `json:"buyer"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// BidRequest представляет структуру запроса для подачи ставки.
type BidRequest struct {
	Price    float64 `json:"price" validate:"required,gt=0"`
	Email    string  `json:"email" validate:"required,email"`
	Comment  string  `json:"comment"`
	Deadline string  `json:"deadline" validate:"required,datetime=2006-01-02"`
	JobID    string  `json:"jobId" validate:"required"`
}
