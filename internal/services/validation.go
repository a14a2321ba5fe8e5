package services

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Dafin1723/fikri-production/internal/models"
	"github.com/Dafin1723/fikri-production/internal/uploads"
)

const (
	MaxAttachments    = 10
	MaxAttachmentSize = 20 << 20
)

var (
	orderExtensions  = map[string]bool{"pdf": true, "png": true, "jpg": true, "jpeg": true, "docx": true}
	posterExtensions = map[string]bool{"png": true, "jpg": true, "jpeg": true, "gif": true, "webp": true}
)

// validateSubmission trims every field and returns the order it describes
// together with all problems found.
func validateSubmission(sub models.OrderSubmission) (*models.Order, []string) {
	order := &models.Order{
		CustomerName: strings.TrimSpace(sub.CustomerName),
		Contact:      strings.TrimSpace(sub.Contact),
		Email:        strings.TrimSpace(sub.Email),
		PrintType:    strings.TrimSpace(sub.PrintType),
		Color:        strings.TrimSpace(sub.Color),
		Size:         strings.TrimSpace(sub.Size),
		PaperType:    strings.TrimSpace(sub.PaperType),
		PickupDate:   strings.TrimSpace(sub.PickupDate),
		Notes:        strings.TrimSpace(sub.Notes),
	}

	var problems []string
	require := func(value, msg string) {
		if value == "" {
			problems = append(problems, msg)
		}
	}
	require(order.CustomerName, "customer name is required")
	require(order.Contact, "contact is required")
	if !strings.Contains(order.Email, "@") {
		problems = append(problems, "a valid email is required")
	}
	require(order.PrintType, "print type is required")
	require(order.Color, "color is required")
	require(order.Size, "size is required")
	require(order.PaperType, "paper type is required")
	require(order.PickupDate, "pickup date is required")

	quantity, err := strconv.Atoi(strings.TrimSpace(sub.Quantity))
	switch {
	case err != nil:
		problems = append(problems, "quantity must be a number")
	case quantity < 1:
		problems = append(problems, "quantity must be at least 1")
	default:
		order.Quantity = quantity
	}

	return order, problems
}

// presentFiles drops form entries that carry no file name.
func presentFiles(files []FileUpload) []FileUpload {
	out := make([]FileUpload, 0, len(files))
	for _, f := range files {
		if f.Name != "" {
			out = append(out, f)
		}
	}
	return out
}

func validateAttachments(files []FileUpload) []string {
	var problems []string
	if len(files) > MaxAttachments {
		problems = append(problems, fmt.Sprintf("at most %d files are allowed", MaxAttachments))
	}
	for _, f := range files {
		if !orderExtensions[uploads.Extension(f.Name)] {
			problems = append(problems, fmt.Sprintf("file type not allowed: %s", f.Name))
			continue
		}
		if f.Size > MaxAttachmentSize {
			problems = append(problems, fmt.Sprintf("%s exceeds the %d MB limit", f.Name, MaxAttachmentSize>>20))
		}
	}
	return problems
}
