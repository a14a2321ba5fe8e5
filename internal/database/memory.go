package database

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Dafin1723/fikri-production/internal/models"
)

// MemoryStore keeps orders and posters in process memory. It honours the
// same contract as DatabaseClient, including the unique queue number.
type MemoryStore struct {
	mu           sync.RWMutex
	nextOrderID  int64
	nextPosterID int64
	orders       map[int64]models.Order
	posters      map[int64]models.Poster
	now          func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		nextOrderID:  1,
		nextPosterID: 1,
		orders:       make(map[int64]models.Order),
		posters:      make(map[int64]models.Poster),
		now:          time.Now,
	}
}

func copyOrder(o models.Order) models.Order {
	o.AttachedFiles = append([]string{}, o.AttachedFiles...)
	return o
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func (m *MemoryStore) ListOrders(_ context.Context, filter models.OrderFilter) ([]models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Order, 0, len(m.orders))
	for _, o := range m.orders {
		if filter.Status != "" && string(o.Status) != filter.Status {
			continue
		}
		if filter.Search != "" &&
			!containsFold(o.CustomerName, filter.Search) &&
			!containsFold(o.QueueNumber, filter.Search) &&
			!containsFold(o.Email, filter.Search) &&
			!containsFold(o.Contact, filter.Search) {
			continue
		}
		out = append(out, copyOrder(o))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) GetOrder(_ context.Context, id int64) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	o, ok := m.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := copyOrder(o)
	return &cp, nil
}

func (m *MemoryStore) GetOrderByQueueNumber(_ context.Context, queueNumber string) (*models.Order, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, o := range m.orders {
		if o.QueueNumber == queueNumber {
			cp := copyOrder(o)
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) MaxQueueSequence(_ context.Context, datePrefix string) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	maxSeq := 0
	for _, o := range m.orders {
		suffix, ok := strings.CutPrefix(o.QueueNumber, datePrefix+"-")
		if !ok {
			continue
		}
		if seq, err := strconv.Atoi(suffix); err == nil && seq > maxSeq {
			maxSeq = seq
		}
	}
	return maxSeq, nil
}

func (m *MemoryStore) CreateOrder(_ context.Context, order *models.Order) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.orders {
		if o.QueueNumber == order.QueueNumber {
			return 0, ErrDuplicateQueueNumber
		}
	}

	o := copyOrder(*order)
	o.ID = m.nextOrderID
	m.nextOrderID++
	o.Status = models.OrderStatusPending
	o.CreatedAt = m.now().UTC()
	o.StatusLabel = ""
	o.FileCount = 0
	m.orders[o.ID] = o
	return o.ID, nil
}

func (m *MemoryStore) SetOrderStatus(_ context.Context, id int64, status models.OrderStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.orders[id]; ok {
		o.Status = status
		m.orders[id] = o
	}
	return nil
}

func (m *MemoryStore) DeleteOrder(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.orders, id)
	return nil
}

func (m *MemoryStore) AggregateCounts(_ context.Context) (models.OrderStats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var stats models.OrderStats
	for _, o := range m.orders {
		stats.Total++
		switch o.Status {
		case models.OrderStatusPending:
			stats.Pending++
		case models.OrderStatusProcessing:
			stats.Processing++
		case models.OrderStatusDone:
			stats.Done++
		}
	}
	return stats, nil
}

func (m *MemoryStore) ListPosters(_ context.Context) ([]models.Poster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Poster, 0, len(m.posters))
	for _, p := range m.posters {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (m *MemoryStore) GetPoster(_ context.Context, id int64) (*models.Poster, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.posters[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (m *MemoryStore) CreatePoster(_ context.Context, poster *models.Poster) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p := *poster
	p.ID = m.nextPosterID
	m.nextPosterID++
	p.CreatedAt = m.now().UTC()
	m.posters[p.ID] = p
	return p.ID, nil
}

func (m *MemoryStore) DeletePoster(_ context.Context, id int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.posters, id)
	return nil
}

func (m *MemoryStore) Close() error {
	return nil
}
