// Package seed loads the demo catalog.
package seed

import (
	"context"
	"fmt"

	"storefront/internal/models"
	"storefront/internal/repositories"

	"github.com/rs/zerolog/log"
)

// Catalog returns the demo products.
func Catalog() []models.Product {
	return []models.Product{
		{Name: "Dell Laptop", Description: "15.6\" laptop, 8GB RAM, 256GB SSD", Price: 3500.00, Stock: 5, Category: "Electronics"},
		{Name: "Logitech Mouse", Description: "Wireless optical mouse", Price: 89.90, Stock: 20, Category: "Peripherals"},
		{Name: "Mechanical Keyboard", Description: "RGB mechanical keyboard with blue switches", Price: 450.00, Stock: 10, Category: "Peripherals"},
		{Name: "LG 24\" Monitor", Description: "Full HD IPS monitor", Price: 899.00, Stock: 8, Category: "Electronics"},
		{Name: "Gaming Headset", Description: "7.1 surround headset with microphone", Price: 299.90, Stock: 15, Category: "Peripherals"},
		{Name: "HD Webcam", Description: "1080p webcam with autofocus", Price: 199.00, Stock: 12, Category: "Peripherals"},
		{Name: "SSD 1TB", Description: "NVMe M.2 solid state drive", Price: 399.90, Stock: 25, Category: "Storage"},
		{Name: "RAM 16GB", Description: "DDR4 3200MHz memory kit", Price: 259.90, Stock: 18, Category: "Components"},
		{Name: "Motherboard", Description: "ATX motherboard, AM4 socket", Price: 799.00, Stock: 6, Category: "Components"},
		{Name: "Ryzen Processor", Description: "6-core desktop processor", Price: 1299.00, Stock: 4, Category: "Components"},
		{Name: "RTX 3060 GPU", Description: "12GB graphics card", Price: 2199.00, Stock: 3, Category: "Components"},
		{Name: "750W PSU", Description: "80 Plus Gold power supply", Price: 549.00, Stock: 10, Category: "Components"},
		{Name: "RGB Case", Description: "Mid tower case with tempered glass", Price: 699.00, Stock: 7, Category: "Components"},
		{Name: "CPU Cooler", Description: "Tower air cooler, 120mm fan", Price: 189.90, Stock: 12, Category: "Components"},
		{Name: "Large Mousepad", Description: "90x40cm cloth mousepad", Price: 79.90, Stock: 30, Category: "Peripherals"},
		{Name: "USB Hub", Description: "4-port USB 3.0 hub", Price: 129.90, Stock: 16, Category: "Peripherals"},
		{Name: "HDMI 2.1 Cable", Description: "2m 8K HDMI cable", Price: 89.90, Stock: 20, Category: "Cables"},
		{Name: "USB-C Cable", Description: "1m USB-C to USB-C, 100W", Price: 59.90, Stock: 25, Category: "Cables"},
		{Name: "DisplayPort Adapter", Description: "DisplayPort to HDMI adapter", Price: 149.00, Stock: 8, Category: "Cables"},
		{Name: "RGB Fan", Description: "120mm addressable RGB fan", Price: 69.90, Stock: 22, Category: "Components"},
	}
}

// Products inserts the demo catalog into an empty product table, or always
// when force is set. It returns the number of products inserted.
func Products(ctx context.Context, repo repositories.ProductRepository, force bool) (int, error) {
	if !force {
		count, err := repo.Count(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to count products: %w", err)
		}
		if count > 0 {
			log.Info().Int64("products", count).Msg("catalog already seeded, skipping")
			return 0, nil
		}
	}

	inserted := 0
	for _, product := range Catalog() {
		if err := repo.Create(ctx, &product); err != nil {
			return inserted, fmt.Errorf("failed to seed product %s: %w", product.Name, err)
		}
		log.Debug().Uint("id", product.ID).Str("name", product.Name).Msg("seeded product")
		inserted++
	}
	return inserted, nil
}
