package main

import (
	"context"
	"errors"
	"log"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"fitcloset/internal/config"
	"fitcloset/internal/db"
	"fitcloset/internal/model"
	"fitcloset/internal/repository"
)

// catalog is the starter garment set. Rows are matched by (name, brand), so
// re-running the seed updates existing garments instead of duplicating them.
var catalog = []model.Garment{
	{Name: "Classic Oxford Shirt", Brand: "Ralph Lauren", Price: decimal.NewFromFloat(89.99), Rating: 4.6, Category: "shirts", Style: "classic", Description: "Button-down oxford in breathable cotton."},
	{Name: "Slim Fit Chinos", Brand: "Dockers", Price: decimal.NewFromFloat(59.50), Rating: 4.2, Category: "pants", Style: "casual", Description: "Stretch twill chinos with a tapered leg."},
	{Name: "Denim Trucker Jacket", Brand: "Levi's", Price: decimal.NewFromFloat(98.00), Rating: 4.7, Category: "jackets", Style: "casual", Description: "The original trucker jacket in washed denim."},
	{Name: "Merino Crewneck Sweater", Brand: "Uniqlo", Price: decimal.NewFromFloat(49.90), Rating: 4.4, Category: "knitwear", Style: "minimal", Description: "Extra-fine merino wool crewneck."},
	{Name: "Pleated Midi Skirt", Brand: "Zara", Price: decimal.NewFromFloat(45.90), Rating: 4.1, Category: "skirts", Style: "formal", Description: "Flowing pleated skirt with elastic waist."},
	{Name: "Performance Running Tee", Brand: "Nike", Price: decimal.NewFromFloat(35.00), Rating: 4.5, Category: "activewear", Style: "sport", Description: "Dri-FIT tee with mesh back panel."},
	{Name: "Wool Overcoat", Brand: "Hugo Boss", Price: decimal.NewFromFloat(399.00), Rating: 4.8, Category: "coats", Style: "formal", Description: "Tailored overcoat in virgin wool blend."},
	{Name: "Linen Summer Dress", Brand: "Mango", Price: decimal.NewFromFloat(69.99), Rating: 4.3, Category: "dresses", Style: "casual", Description: "Sleeveless linen dress with side pockets."},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.Garment{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	garmentRepo := repository.NewGarmentRepository(gormDB)
	ctx := context.Background()

	log.Println("Seeding garment catalog...")
	seeded, updated, err := seedGarments(ctx, gormDB, garmentRepo, catalog)
	if err != nil {
		log.Fatalf("Failed to seed garments: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New garments created: %d", seeded)
	log.Printf("  - Existing garments updated: %d", updated)
	log.Printf("  - Total garments processed: %d", seeded+updated)
}

// seedGarments creates new catalog rows or refreshes existing ones.
func seedGarments(ctx context.Context, gormDB *gorm.DB, repo repository.GarmentRepository, garments []model.Garment) (seeded int, updated int, err error) {
	for _, garment := range garments {
		var existing model.Garment
		findErr := gormDB.WithContext(ctx).
			Where("name = ? AND brand = ?", garment.Name, garment.Brand).
			First(&existing).Error

		if findErr == nil {
			patch := model.GarmentPatch{
				Price:       &garment.Price,
				Rating:      &garment.Rating,
				Description: &garment.Description,
				Category:    &garment.Category,
				Style:       &garment.Style,
			}
			if _, err := repo.Update(ctx, existing.ID, patch); err != nil {
				return seeded, updated, err
			}
			updated++
			continue
		}
		if !errors.Is(findErr, gorm.ErrRecordNotFound) {
			return seeded, updated, findErr
		}

		garment.Available = true
		if err := repo.Create(ctx, &garment); err != nil {
			return seeded, updated, err
		}
		seeded++
	}
	return seeded, updated, nil
}
