package models

// OrderSubmission holds the raw, unvalidated form fields of a new order.
// Quantity stays a string so that a non-numeric value can be reported
// alongside every other validation error.
type OrderSubmission struct {
	CustomerName string `form:"customer_name" json:"customer_name"`
	Contact      string `form:"contact" json:"contact"`
	Email        string `form:"email" json:"email"`
	PrintType    string `form:"print_type" json:"print_type"`
	Color        string `form:"color" json:"color"`
	Size         string `form:"size" json:"size"`
	PaperType    string `form:"paper_type" json:"paper_type"`
	Quantity     string `form:"quantity" json:"quantity"`
	PickupDate   string `form:"pickup_date" json:"pickup_date"`
	Notes        string `form:"notes" json:"notes"`
}

type PosterSubmission struct {
	ProductName string `form:"product_name"`
	Title       string `form:"title"`
	Description string `form:"description"`
}

type StatusUpdateRequest struct {
	Status string `form:"status" json:"status" example:"processing"`
}

type LoginRequest struct {
	Username string `form:"username" json:"username"`
	Password string `form:"password" json:"password"`
}
