package world

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
)

// Seed builds a small deterministic world for tests and examples. The same
// seed always produces the same entities, so assertions on generated data
// stay stable.
func Seed(seed uint64) *World {
	f := gofakeit.New(seed)
	w := New()
	w.SetValue("__now", "2025-06-01T12:00:00Z")

	tiers := []string{"none", "silver", "gold", "platinum"}
	customers := w.EnsureTable("customer")
	for i := 0; i < 6; i++ {
		id := fmt.Sprintf("cust_%d", i+1)
		customers.Set(id, Entity{
			"id":          id,
			"type":        "customer",
			"name":        f.Name(),
			"email":       f.Email(),
			"phone":       f.Phone(),
			"loyaltyTier": tiers[i%len(tiers)],
			"addresses": []any{
				map[string]any{"postalCode": f.Zip(), "country": "US"},
			},
			"createdAt": "2024-01-15T00:00:00Z",
		})
	}

	categories := []string{"cpu", "gpu", "memory", "storage", "psu", "motherboard", "cooling"}
	products := w.EnsureTable("product")
	for i := 0; i < 10; i++ {
		id := fmt.Sprintf("prod_%d", i+1)
		products.Set(id, Entity{
			"id":       id,
			"type":     "product",
			"name":     fmt.Sprintf("%s %s", f.Company(), categories[i%len(categories)]),
			"category": categories[i%len(categories)],
			"price":    f.Price(20, 900),
		})
	}

	statuses := []string{"pending", "paid", "fulfilled", "cancelled"}
	orders := w.EnsureTable("order")
	for i := 0; i < 8; i++ {
		id := fmt.Sprintf("order_%d", i+1)
		orders.Set(id, Entity{
			"id":          id,
			"type":        "order",
			"customerId":  fmt.Sprintf("cust_%d", i%6+1),
			"orderNumber": fmt.Sprintf("ORD-%04d", i+1),
			"status":      statuses[i%len(statuses)],
			"total":       f.Price(50, 2500),
			"createdAt":   fmt.Sprintf("2025-0%d-10T09:00:00Z", i%5+1),
			"updatedAt":   fmt.Sprintf("2025-0%d-11T09:00:00Z", i%5+1),
		})
	}

	ticketStatuses := []string{"new", "open", "pending_customer", "resolved"}
	tickets := w.EnsureTable("support_ticket")
	for i := 0; i < 5; i++ {
		id := fmt.Sprintf("tick_%d", i+1)
		tickets.Set(id, Entity{
			"id":         id,
			"type":       "support_ticket",
			"customerId": fmt.Sprintf("cust_%d", i%6+1),
			"subject":    fmt.Sprintf("Issue with %s", f.ProductName()),
			"status":     ticketStatuses[i%len(ticketStatuses)],
			"priority":   []string{"low", "normal", "high"}[i%3],
			"createdAt":  fmt.Sprintf("2025-0%d-01T08:00:00Z", i%5+1),
			"updatedAt":  fmt.Sprintf("2025-0%d-02T08:00:00Z", i%5+1),
		})
	}

	payments := w.EnsureTable("payment")
	for i := 0; i < 4; i++ {
		id := fmt.Sprintf("pay_%d", i+1)
		payments.Set(id, Entity{
			"id":       id,
			"type":     "payment",
			"orderId":  fmt.Sprintf("order_%d", i+1),
			"amount":   f.Price(50, 2500),
			"currency": "USD",
			"status":   []string{"completed", "failed", "pending", "completed"}[i],
		})
	}

	return w
}
