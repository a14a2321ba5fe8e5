package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Dafin1723/fikri-production/internal/models"
)

// OrderStore is the persistence contract for orders. Implementations
// report missing rows with database.ErrNotFound and queue number clashes
// with database.ErrDuplicateQueueNumber.
type OrderStore interface {
	ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error)
	GetOrder(ctx context.Context, id int64) (*models.Order, error)
	GetOrderByQueueNumber(ctx context.Context, queueNumber string) (*models.Order, error)
	MaxQueueSequence(ctx context.Context, datePrefix string) (int, error)
	CreateOrder(ctx context.Context, order *models.Order) (int64, error)
	SetOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error
	DeleteOrder(ctx context.Context, id int64) error
	AggregateCounts(ctx context.Context) (models.OrderStats, error)
}

type PosterStore interface {
	ListPosters(ctx context.Context) ([]models.Poster, error)
	GetPoster(ctx context.Context, id int64) (*models.Poster, error)
	CreatePoster(ctx context.Context, poster *models.Poster) (int64, error)
	DeletePoster(ctx context.Context, id int64) error
}

var (
	ErrOrderNotFound  = errors.New("order not found")
	ErrPosterNotFound = errors.New("poster not found")
	ErrInvalidStatus  = errors.New("invalid status")
)

// ValidationError carries every problem found in a submission, not just
// the first one.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", strings.Join(e.Errors, "; "))
}

// FileUpload is one uploaded file as received from the client.
type FileUpload struct {
	Name string
	Size int64
	Open func() (io.ReadCloser, error)
}
