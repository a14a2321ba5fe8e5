package models

import "time"

type Poster struct {
	ID          int64     `json:"id"`
	ProductName string    `json:"product_name"`
	ImagePath   string    `json:"image_path"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
