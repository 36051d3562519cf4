package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/rmaulana/go-catalog/app/models"
	"github.com/rmaulana/go-catalog/app/repositories"
	"github.com/shopspring/decimal"
)

// Seed writes a small sample catalog into the data directory. It refuses to
// touch collections that already hold data.
func Seed(dataDir string) error {
	ctx := context.Background()

	categoryRepo := repositories.NewCategoryRepository(dataDir)
	productRepo := repositories.NewProductRepository(dataDir)

	categories, err := categoryRepo.GetAll(ctx)
	if err != nil {
		return err
	}
	products, err := productRepo.GetProducts(ctx)
	if err != nil {
		return err
	}
	if len(categories) > 0 || len(products) > 0 {
		return fmt.Errorf("data directory already holds catalog data, refusing to seed")
	}

	sampleCategories := []models.Category{
		{Name: "Ceramics", Image: "/uploads/category_1.webp"},
		{Name: "Textiles", Image: "/uploads/category_2.webp"},
	}
	for i := range sampleCategories {
		if err := categoryRepo.Create(ctx, &sampleCategories[i]); err != nil {
			return err
		}
	}

	sampleProducts := []models.Product{
		{
			Name:        "Hand-thrown mug",
			Description: "Stoneware mug with a matte glaze.",
			Price:       decimal.NewFromFloat(24.50),
			Image:       "/uploads/product_1.webp",
			CategoryID:  sampleCategories[0].ID,
			Views:       12,
		},
		{
			Name:        "Serving bowl",
			Description: "Wide bowl, food safe, dishwasher friendly.",
			Price:       decimal.NewFromFloat(42.00),
			Image:       "/uploads/product_2.webp",
			CategoryID:  sampleCategories[0].ID,
			Views:       3,
		},
		{
			Name:        "Woven table runner",
			Description: "Cotton runner, natural dyes.",
			Price:       decimal.NewFromFloat(35.00),
			Image:       "/uploads/product_3.webp",
			CategoryID:  sampleCategories[1].ID,
			Views:       7,
		},
	}
	for i := range sampleProducts {
		if err := productRepo.Create(ctx, &sampleProducts[i]); err != nil {
			return err
		}
	}

	log.Printf("✅ Seeded %d categories and %d products into %s", len(sampleCategories), len(sampleProducts), dataDir)
	return nil
}
