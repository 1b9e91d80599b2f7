package memory

import "github.com/Apurer/go-gin-inventory-api/internal/domains/catalog/domain"

// SeedProducts is the demo catalog the service starts with.
func SeedProducts() []domain.Product {
	return []domain.Product{
		{
			ID:          "1",
			Name:        "Laptop Gaming ASUS ROG",
			Price:       15000000,
			Stock:       5,
			Category:    "Electronics",
			Description: "High-end gaming laptop with RTX 4060",
		},
		{
			ID:          "2",
			Name:        "iPhone 15 Pro",
			Price:       20000000,
			Stock:       10,
			Category:    "Electronics",
			Description: "Latest iPhone with chip A17 Pro",
		},
		{
			ID:          "3",
			Name:        "Nike Air Jordan 1",
			Price:       2500000,
			Stock:       3,
			Category:    "Fashion",
			Description: "Limited edition sneakers",
		},
	}
}
