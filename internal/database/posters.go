package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dafin1723/fikri-production/internal/models"
)

const posterColumns = "id, product_name, image_path, title, description, created_at"

func scanPoster(row rowScanner) (*models.Poster, error) {
	var (
		poster      models.Poster
		title       sql.NullString
		description sql.NullString
	)
	if err := row.Scan(&poster.ID, &poster.ProductName, &poster.ImagePath, &title, &description, &poster.CreatedAt); err != nil {
		return nil, err
	}
	poster.Title = title.String
	poster.Description = description.String
	return &poster, nil
}

func (d *DatabaseClient) ListPosters(ctx context.Context) ([]models.Poster, error) {
	rows, err := d.db.QueryContext(ctx, "SELECT "+posterColumns+" FROM posters ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list posters: %w", err)
	}
	defer rows.Close()

	posters := make([]models.Poster, 0)
	for rows.Next() {
		poster, err := scanPoster(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan poster: %w", err)
		}
		posters = append(posters, *poster)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list posters: %w", err)
	}

	return posters, nil
}

func (d *DatabaseClient) GetPoster(ctx context.Context, id int64) (*models.Poster, error) {
	row := d.db.QueryRowContext(ctx, "SELECT "+posterColumns+" FROM posters WHERE id = $1", id)
	poster, err := scanPoster(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get poster: %w", err)
	}
	return poster, nil
}

func (d *DatabaseClient) CreatePoster(ctx context.Context, poster *models.Poster) (int64, error) {
	var id int64
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO posters (product_name, image_path, title, description)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`, poster.ProductName, poster.ImagePath,
		sql.NullString{String: poster.Title, Valid: poster.Title != ""},
		sql.NullString{String: poster.Description, Valid: poster.Description != ""},
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create poster: %w", err)
	}
	return id, nil
}

func (d *DatabaseClient) DeletePoster(ctx context.Context, id int64) error {
	_, err := d.db.ExecContext(ctx, "DELETE FROM posters WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete poster: %w", err)
	}
	return nil
}
