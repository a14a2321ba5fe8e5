package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/Dafin1723/fikri-production/internal/database"
	"github.com/Dafin1723/fikri-production/internal/models"
	"github.com/Dafin1723/fikri-production/internal/uploads"
)

type PosterService struct {
	store  PosterStore
	images uploads.Sink
}

func NewPosterService(store PosterStore, images uploads.Sink) *PosterService {
	return &PosterService{store: store, images: images}
}

func (s *PosterService) ListPosters(ctx context.Context) ([]models.Poster, error) {
	return s.store.ListPosters(ctx)
}

// UploadPoster stores the image and records the poster. The image is
// removed again if the row cannot be written.
func (s *PosterService) UploadPoster(ctx context.Context, sub models.PosterSubmission, image *FileUpload) (*models.Poster, error) {
	poster := &models.Poster{
		ProductName: strings.TrimSpace(sub.ProductName),
		Title:       strings.TrimSpace(sub.Title),
		Description: strings.TrimSpace(sub.Description),
	}

	var problems []string
	if poster.ProductName == "" {
		problems = append(problems, "product name is required")
	}
	switch {
	case image == nil || image.Name == "":
		problems = append(problems, "an image file is required")
	case !posterExtensions[uploads.Extension(image.Name)]:
		problems = append(problems, fmt.Sprintf("image type not allowed: %s", image.Name))
	}
	if len(problems) > 0 {
		return nil, &ValidationError{Errors: problems}
	}

	src, err := image.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	storedName, err := s.images.Store(ctx, src, image.Name)
	src.Close()
	if err != nil {
		return nil, fmt.Errorf("failed to store image: %w", err)
	}
	poster.ImagePath = storedName

	id, err := s.store.CreatePoster(ctx, poster)
	if err != nil {
		if delErr := s.images.Delete(context.WithoutCancel(ctx), storedName); delErr != nil {
			log.Printf("Warning: failed to remove poster image %s: %v", storedName, delErr)
		}
		return nil, err
	}

	// Re-read so the caller sees the stored created_at.
	stored, err := s.store.GetPoster(ctx, id)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// DeletePoster removes the poster's image and then its row.
func (s *PosterService) DeletePoster(ctx context.Context, id int64) (*models.Poster, error) {
	poster, err := s.store.GetPoster(ctx, id)
	if errors.Is(err, database.ErrNotFound) {
		return nil, ErrPosterNotFound
	}
	if err != nil {
		return nil, err
	}

	if err := s.images.Delete(ctx, poster.ImagePath); err != nil {
		log.Printf("Warning: failed to remove poster image %s: %v", poster.ImagePath, err)
	}
	if err := s.store.DeletePoster(ctx, id); err != nil {
		return nil, err
	}
	return poster, nil
}

func (s *PosterService) OpenImage(ctx context.Context, storedName string) (io.ReadCloser, error) {
	return s.images.Open(ctx, storedName)
}
