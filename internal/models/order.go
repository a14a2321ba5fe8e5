package models

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusDone       OrderStatus = "done"
)

// OrderStatuses lists every lifecycle state an order can be in.
var OrderStatuses = []OrderStatus{OrderStatusPending, OrderStatusProcessing, OrderStatusDone}

func (s OrderStatus) Valid() bool {
	for _, status := range OrderStatuses {
		if s == status {
			return true
		}
	}
	return false
}

type Order struct {
	ID            int64       `json:"id"`
	QueueNumber   string      `json:"queue_number"`
	CustomerName  string      `json:"customer_name"`
	Contact       string      `json:"contact"`
	Email         string      `json:"email"`
	PrintType     string      `json:"print_type"`
	Color         string      `json:"color"`
	Size          string      `json:"size"`
	PaperType     string      `json:"paper_type"`
	Quantity      int         `json:"quantity"`
	PickupDate    string      `json:"pickup_date"`
	Notes         string      `json:"notes,omitempty"`
	AttachedFiles []string    `json:"attached_files"`
	Status        OrderStatus `json:"status"`
	CreatedAt     time.Time   `json:"created_at"`

	// Derived on read, never persisted.
	StatusLabel string `json:"status_label"`
	FileCount   int    `json:"file_count"`
}

// OrderFilter narrows ListOrders. Empty fields match everything.
type OrderFilter struct {
	Status string
	Search string
}

type OrderStats struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	Processing int `json:"processing"`
	Done       int `json:"done"`
}
