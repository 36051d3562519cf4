package repositories

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"github.com/rmaulana/go-catalog/app/models"
)

const productsFileName = "products.json"

type ProductRepositoryImpl interface {
	GetProducts(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id int) (*models.Product, error)
	GetByCategoryID(ctx context.Context, categoryID int) ([]models.Product, error)
	GetFeatured(ctx context.Context, limit int) ([]models.Product, error)
	NextID(ctx context.Context) (int, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id int) error
	DeleteByCategoryID(ctx context.Context, categoryID int) ([]models.Product, error)
	IncrementViews(ctx context.Context, id int) (*models.Product, error)
}

type productRepository struct {
	path string
}

func NewProductRepository(dataDir string) ProductRepositoryImpl {
	return &productRepository{path: filepath.Join(dataDir, productsFileName)}
}

func (p *productRepository) GetProducts(ctx context.Context) ([]models.Product, error) {
	return readCollection[models.Product](p.path)
}

func (p *productRepository) GetByID(ctx context.Context, id int) (*models.Product, error) {
	products, err := readCollection[models.Product](p.path)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, nil
}

func (p *productRepository) GetByCategoryID(ctx context.Context, categoryID int) ([]models.Product, error) {
	products, err := readCollection[models.Product](p.path)
	if err != nil {
		return nil, err
	}
	inCategory := []models.Product{}
	for _, product := range products {
		if product.CategoryID == categoryID {
			inCategory = append(inCategory, product)
		}
	}
	return inCategory, nil
}

func (p *productRepository) GetFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	products, err := readCollection[models.Product](p.path)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Views > products[j].Views
	})
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	return products, nil
}

// NextID assigns ids as max(existing)+1. Safe only for a single writer.
func (p *productRepository) NextID(ctx context.Context) (int, error) {
	products, err := readCollection[models.Product](p.path)
	if err != nil {
		return 0, err
	}
	return nextID(productIDs(products)), nil
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	products, err := readCollection[models.Product](p.path)
	if err != nil {
		return err
	}
	if product.ID == 0 {
		product.ID = nextID(productIDs(products))
	}
	for _, existing := range products {
		if existing.ID == product.ID {
			return fmt.Errorf("product %d already exists", product.ID)
		}
	}
	products = append(products, *product)
	return writeCollection(p.path, products)
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	products, err := readCollection[models.Product](p.path)
	if err != nil {
		return err
	}
	for i := range products {
		if products[i].ID == product.ID {
			products[i] = *product
			return writeCollection(p.path, products)
		}
	}
	return fmt.Errorf("product %d not found", product.ID)
}

func (p *productRepository) Delete(ctx context.Context, id int) error {
	products, err := readCollection[models.Product](p.path)
	if err != nil {
		return err
	}
	kept := products[:0]
	for _, product := range products {
		if product.ID != id {
			kept = append(kept, product)
		}
	}
	return writeCollection(p.path, kept)
}

// DeleteByCategoryID removes every product of a category and returns the
// removed products so the caller can clean up their image files.
func (p *productRepository) DeleteByCategoryID(ctx context.Context, categoryID int) ([]models.Product, error) {
	products, err := readCollection[models.Product](p.path)
	if err != nil {
		return nil, err
	}
	kept := []models.Product{}
	removed := []models.Product{}
	for _, product := range products {
		if product.CategoryID == categoryID {
			removed = append(removed, product)
		} else {
			kept = append(kept, product)
		}
	}
	if len(removed) == 0 {
		return removed, nil
	}
	if err := writeCollection(p.path, kept); err != nil {
		return nil, err
	}
	return removed, nil
}

func (p *productRepository) IncrementViews(ctx context.Context, id int) (*models.Product, error) {
	products, err := readCollection[models.Product](p.path)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			products[i].Views++
			if err := writeCollection(p.path, products); err != nil {
				return nil, err
			}
			return &products[i], nil
		}
	}
	return nil, nil
}

func productIDs(products []models.Product) []int {
	ids := make([]int, 0, len(products))
	for _, product := range products {
		ids = append(ids, product.ID)
	}
	return ids
}

func nextID(ids []int) int {
	next := 1
	for _, id := range ids {
		if id >= next {
			next = id + 1
		}
	}
	return next
}
