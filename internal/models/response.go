package models

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SubmitOrderResponse struct {
	Success     bool     `json:"success"`
	OrderID     int64    `json:"order_id,omitempty"`
	QueueNumber string   `json:"queue_number,omitempty"`
	Errors      []string `json:"errors,omitempty"`
}

type OrderListResponse struct {
	Orders []Order    `json:"orders"`
	Stats  OrderStats `json:"stats"`
}

type PosterListResponse struct {
	Posters []Poster `json:"posters"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

type SessionResponse struct {
	Authenticated bool   `json:"authenticated"`
	State         string `json:"state"`
}
