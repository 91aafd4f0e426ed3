package kitchen

import (
	"time"

	"pizza-deprizza/models"
)

// SampleOrders is the offline data shown when the backend cannot be reached.
func SampleOrders(now time.Time) []models.Order {
	orders := []models.Order{
		{
			ID: 1,
			Items: []models.OrderItem{
				{Name: "Margherita Clásica", Size: "mediana", Quantity: 2, Price: 180},
				{Name: "Pepperoni Supreme", Size: "grande", Quantity: 1, Price: 280},
			},
			Total:         640,
			EstimatedTime: 25,
			Customer:      "Juan Pérez",
			PaymentMethod: string(models.PaymentCard),
			Status:        models.StatusReceived,
			CreatedAt:     now.Add(-5 * time.Minute),
		},
		{
			ID: 2,
			Items: []models.OrderItem{
				{Name: "Vegetariana Garden", Size: "familiar", Quantity: 1, Price: 320},
			},
			Total:         320,
			EstimatedTime: 20,
			Customer:      "María García",
			PaymentMethod: string(models.PaymentCash),
			Status:        models.StatusPreparing,
			CreatedAt:     now.Add(-10 * time.Minute),
		},
	}
	Derive(orders, now)
	return orders
}
