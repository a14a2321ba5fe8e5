package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/Dafin1723/fikri-production/internal/database"
	"github.com/Dafin1723/fikri-production/internal/models"
	"github.com/Dafin1723/fikri-production/internal/uploads"
)

const maxQueueAttempts = 5

// OrderService owns the order lifecycle: validation, attachment storage,
// queue number assignment, status transitions and removal.
type OrderService struct {
	store       OrderStore
	attachments uploads.Sink
	now         func() time.Time
	location    *time.Location

	// queueMu serializes queue number assignment within this process. The
	// unique constraint plus retry covers other processes.
	queueMu sync.Mutex
}

type Option func(*OrderService)

// WithClock overrides the time source used for queue numbers.
func WithClock(now func() time.Time) Option {
	return func(s *OrderService) { s.now = now }
}

// WithLocation sets the time zone that defines a calendar day.
func WithLocation(loc *time.Location) Option {
	return func(s *OrderService) {
		if loc != nil {
			s.location = loc
		}
	}
}

func NewOrderService(store OrderStore, attachments uploads.Sink, opts ...Option) *OrderService {
	s := &OrderService{
		store:       store,
		attachments: attachments,
		now:         time.Now,
		location:    time.Local,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type SubmitResult struct {
	OrderID     int64
	QueueNumber string
}

// SubmitOrder validates a submission and its files, stores the files and
// inserts the order under a fresh queue number. Nothing is written when
// validation fails; stored files are removed again if the insert fails.
func (s *OrderService) SubmitOrder(ctx context.Context, sub models.OrderSubmission, files []FileUpload) (*SubmitResult, error) {
	order, problems := validateSubmission(sub)
	files = presentFiles(files)
	problems = append(problems, validateAttachments(files)...)
	if len(problems) > 0 {
		return nil, &ValidationError{Errors: problems}
	}

	stored, err := s.storeAttachments(ctx, files)
	if err != nil {
		return nil, err
	}
	order.AttachedFiles = stored

	id, err := s.insertWithQueueNumber(ctx, order)
	if err != nil {
		s.discardAttachments(context.WithoutCancel(ctx), stored)
		return nil, err
	}

	log.Printf("Order %s created (id=%d, files=%d)", order.QueueNumber, id, len(stored))
	return &SubmitResult{OrderID: id, QueueNumber: order.QueueNumber}, nil
}

func (s *OrderService) storeAttachments(ctx context.Context, files []FileUpload) ([]string, error) {
	stored := make([]string, 0, len(files))
	for _, f := range files {
		name, err := s.storeOne(ctx, f)
		if err != nil {
			s.discardAttachments(context.WithoutCancel(ctx), stored)
			return nil, fmt.Errorf("failed to store attachment %s: %w", f.Name, err)
		}
		stored = append(stored, name)
	}
	return stored, nil
}

func (s *OrderService) storeOne(ctx context.Context, f FileUpload) (string, error) {
	src, err := f.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()
	return s.attachments.Store(ctx, src, f.Name)
}

func (s *OrderService) discardAttachments(ctx context.Context, names []string) {
	for _, name := range names {
		if err := s.attachments.Delete(ctx, name); err != nil {
			log.Printf("Warning: failed to remove attachment %s: %v", name, err)
		}
	}
}

// FormatQueueNumber renders a queue number such as 20250101-001.
func FormatQueueNumber(datePrefix string, seq int) string {
	return fmt.Sprintf("%s-%03d", datePrefix, seq)
}

func (s *OrderService) insertWithQueueNumber(ctx context.Context, order *models.Order) (int64, error) {
	s.queueMu.Lock()
	defer s.queueMu.Unlock()

	prefix := s.now().In(s.location).Format("20060102")
	for attempt := 1; attempt <= maxQueueAttempts; attempt++ {
		seq, err := s.store.MaxQueueSequence(ctx, prefix)
		if err != nil {
			return 0, err
		}
		order.QueueNumber = FormatQueueNumber(prefix, seq+1)

		id, err := s.store.CreateOrder(ctx, order)
		if errors.Is(err, database.ErrDuplicateQueueNumber) {
			log.Printf("Queue number %s already taken, retrying (%d/%d)", order.QueueNumber, attempt, maxQueueAttempts)
			continue
		}
		if err != nil {
			return 0, err
		}
		return id, nil
	}
	return 0, fmt.Errorf("failed to assign queue number after %d attempts: %w", maxQueueAttempts, database.ErrDuplicateQueueNumber)
}

func (s *OrderService) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	filter.Status = strings.TrimSpace(filter.Status)
	filter.Search = strings.TrimSpace(filter.Search)

	orders, err := s.store.ListOrders(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i] = DisplayFields(orders[i])
	}
	return orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.store.GetOrder(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	display := DisplayFields(*order)
	return &display, nil
}

// LookupByQueueNumber finds an order by the number a customer typed in.
func (s *OrderService) LookupByQueueNumber(ctx context.Context, raw string) (*models.Order, error) {
	queueNumber := strings.ToUpper(strings.TrimSpace(raw))
	if queueNumber == "" {
		return nil, &ValidationError{Errors: []string{"queue number is required"}}
	}

	order, err := s.store.GetOrderByQueueNumber(ctx, queueNumber)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrOrderNotFound
	}
	if err != nil {
		return nil, err
	}
	display := DisplayFields(*order)
	return &display, nil
}

// TransitionStatus moves an order to status. The existence check runs
// before the status check, so an unknown order always reports not found.
func (s *OrderService) TransitionStatus(ctx context.Context, id int64, status string) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	newStatus := models.OrderStatus(strings.TrimSpace(status))
	if !newStatus.Valid() {
		return nil, ErrInvalidStatus
	}

	if err := s.store.SetOrderStatus(ctx, id, newStatus); err != nil {
		return nil, err
	}
	order.Status = newStatus
	display := DisplayFields(*order)
	return &display, nil
}

// RemoveOrder deletes the attached files and then the order row. File
// removal is best effort: failures are logged and never block the row.
func (s *OrderService) RemoveOrder(ctx context.Context, id int64) (*models.Order, error) {
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	s.discardAttachments(ctx, order.AttachedFiles)

	if err := s.store.DeleteOrder(ctx, id); err != nil {
		return nil, err
	}
	log.Printf("Order %s deleted", order.QueueNumber)
	return order, nil
}

func (s *OrderService) Stats(ctx context.Context) (models.OrderStats, error) {
	return s.store.AggregateCounts(ctx)
}

func (s *OrderService) OpenAttachment(ctx context.Context, storedName string) (io.ReadCloser, error) {
	return s.attachments.Open(ctx, storedName)
}
