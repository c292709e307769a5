package models

import "time"

type JobCategory string // Категория объявления

const (
	WebDevelopment   JobCategory = "Web Development"
	GraphicsDesign   JobCategory = "Graphics Design"
	DigitalMarketing JobCategory = "Digital Marketing"
)

// ValidJobCategory проверяет, что категория входит в допустимый набор.
func ValidJobCategory(c JobCategory) bool {
	switch c {
	case WebDevelopment, GraphicsDesign, DigitalMarketing:
		return true
	default:
		return false
	}
}

// Buyer - данные заказчика, встроенные в объявление.
type Buyer struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"required,email"`
	Photo string `json:"photo"`
}

// Job представляет модель объявления о работе.
type Job struct {
	ID          string      `json:"_id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Category    JobCategory `json:"category"`
	MinPrice    float64     `json:"min_price"`
	MaxPrice    float64     `json:"max_price"`
	Deadline    string      `json:"deadline"`
	Buyer       Buyer       `json:"buyer"`
	BidCount    int32       `json:"bid_count"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// JobRequest представляет структуру запроса для создания или обновления объявления.
// Deadline принимается строкой формата YYYY-MM-DD, поэтому лексикографический
// порядок совпадает с хронологическим.
type JobRequest struct {
	Title       string      `json:"title" validate:"required"`
	Description string      `json:"description" validate:"required"`
	Category    JobCategory `json:"category" validate:"required"`
	MinPrice    float64     `json:"min_price" validate:"gte=0"`
	MaxPrice    float64     `json:"max_price" validate:"gte=0"`
	Deadline    string      `json:"deadline" validate:"required,datetime=2006-01-02"`
	Buyer       Buyer       `json:"buyer" validate:"required"`
}
