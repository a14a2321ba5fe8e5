package services

import "github.com/Dafin1723/fikri-production/internal/models"

var statusLabels = map[models.OrderStatus]string{
	models.OrderStatusPending:    "Waiting",
	models.OrderStatusProcessing: "In Progress",
	models.OrderStatusDone:       "Completed",
}

func StatusLabel(status models.OrderStatus) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return string(status)
}

// DisplayFields returns a copy of order with its derived fields filled in.
func DisplayFields(order models.Order) models.Order {
	order.StatusLabel = StatusLabel(order.Status)
	order.FileCount = len(order.AttachedFiles)
	if order.AttachedFiles == nil {
		order.AttachedFiles = []string{}
	}
	return order
}
