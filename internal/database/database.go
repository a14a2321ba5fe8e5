package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Dafin1723/fikri-production/internal/models"
	"github.com/lib/pq"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

// Migrate brings the schema up to date using the embedded migrations.
func (d *DatabaseClient) Migrate(ctx context.Context) error {
	return NewMigrator(d.db).Run(ctx)
}

const orderColumns = `id, queue_number, customer_name, contact, email, print_type, color, size,
	paper_type, quantity, pickup_date, notes, attached_files, status, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOrder(row rowScanner) (*models.Order, error) {
	var (
		order  models.Order
		notes  sql.NullString
		files  pq.StringArray
		status string
	)
	err := row.Scan(
		&order.ID, &order.QueueNumber, &order.CustomerName, &order.Contact, &order.Email,
		&order.PrintType, &order.Color, &order.Size, &order.PaperType, &order.Quantity,
		&order.PickupDate, &notes, &files, &status, &order.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	order.Notes = notes.String
	order.Status = models.OrderStatus(status)
	order.AttachedFiles = []string(files)
	if order.AttachedFiles == nil {
		order.AttachedFiles = []string{}
	}
	return &order, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (d *DatabaseClient) ListOrders(ctx context.Context, filter models.OrderFilter) ([]models.Order, error) {
	var (
		where []string
		args  []any
	)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = append(where, fmt.Sprintf("status = $%d", len(args)))
	}
	if filter.Search != "" {
		args = append(args, "%"+likeEscaper.Replace(filter.Search)+"%")
		n := len(args)
		where = append(where, fmt.Sprintf(
			"(customer_name ILIKE $%d OR queue_number ILIKE $%d OR email ILIKE $%d OR contact ILIKE $%d)",
			n, n, n, n,
		))
	}

	query := "SELECT " + orderColumns + " FROM orders"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC, id DESC"

	rows, err := d.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0)
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}

	return orders, nil
}

func (d *DatabaseClient) GetOrder(ctx context.Context, id int64) (*models.Order, error) {
	row := d.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE id = $1", id)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

func (d *DatabaseClient) GetOrderByQueueNumber(ctx context.Context, queueNumber string) (*models.Order, error) {
	row := d.db.QueryRowContext(ctx, "SELECT "+orderColumns+" FROM orders WHERE queue_number = $1", queueNumber)
	order, err := scanOrder(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order by queue number: %w", err)
	}
	return order, nil
}

// MaxQueueSequence returns the highest sequence already issued under the
// given day prefix (e.g. "20250101"), or 0 when the day has no orders.
func (d *DatabaseClient) MaxQueueSequence(ctx context.Context, datePrefix string) (int, error) {
	var seq int
	err := d.db.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(split_part(queue_number, '-', 2)::INTEGER), 0)
		FROM orders
		WHERE queue_number LIKE $1
	`, likeEscaper.Replace(datePrefix)+"-%").Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("failed to read queue sequence: %w", err)
	}
	return seq, nil
}

// CreateOrder inserts a new order with status pending and returns its id.
// A clash on queue_number is reported as ErrDuplicateQueueNumber.
func (d *DatabaseClient) CreateOrder(ctx context.Context, order *models.Order) (int64, error) {
	files := order.AttachedFiles
	if files == nil {
		files = []string{}
	}
	notes := sql.NullString{String: order.Notes, Valid: order.Notes != ""}

	var id int64
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO orders (queue_number, customer_name, contact, email, print_type, color, size,
			paper_type, quantity, pickup_date, notes, attached_files, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id
	`, order.QueueNumber, order.CustomerName, order.Contact, order.Email, order.PrintType,
		order.Color, order.Size, order.PaperType, order.Quantity, order.PickupDate, notes,
		pq.Array(files), string(models.OrderStatusPending),
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pgErrUniqueViolation {
			return 0, ErrDuplicateQueueNumber
		}
		return 0, fmt.Errorf("failed to create order: %w", err)
	}

	return id, nil
}

func (d *DatabaseClient) SetOrderStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	_, err := d.db.ExecContext(ctx, "UPDATE orders SET status = $1 WHERE id = $2", string(status), id)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}

func (d *DatabaseClient) DeleteOrder(ctx context.Context, id int64) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	return nil
}

func (d *DatabaseClient) AggregateCounts(ctx context.Context) (models.OrderStats, error) {
	var stats models.OrderStats
	err := d.db.QueryRowContext(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE status = 'pending'),
			COUNT(*) FILTER (WHERE status = 'processing'),
			COUNT(*) FILTER (WHERE status = 'done')
		FROM orders
	`).Scan(&stats.Total, &stats.Pending, &stats.Processing, &stats.Done)
	if err != nil {
		return models.OrderStats{}, fmt.Errorf("failed to count orders: %w", err)
	}
	return stats, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}
