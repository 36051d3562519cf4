package repositories

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rmaulana/go-catalog/app/models"
)

const categoriesFileName = "categories.json"

type CategoryRepositoryImpl interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	GetByID(ctx context.Context, id int) (*models.Category, error)
	NextID(ctx context.Context) (int, error)
	Create(ctx context.Context, category *models.Category) error
	Update(ctx context.Context, category *models.Category) error
	Delete(ctx context.Context, id int) error
}

type categoryRepository struct {
	path string
}

func NewCategoryRepository(dataDir string) CategoryRepositoryImpl {
	return &categoryRepository{path: filepath.Join(dataDir, categoriesFileName)}
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]models.Category, error) {
	return readCollection[models.Category](r.path)
}

func (r *categoryRepository) GetByID(ctx context.Context, id int) (*models.Category, error) {
	categories, err := readCollection[models.Category](r.path)
	if err != nil {
		return nil, err
	}
	for i := range categories {
		if categories[i].ID == id {
			return &categories[i], nil
		}
	}
	return nil, nil
}

func (r *categoryRepository) NextID(ctx context.Context) (int, error) {
	categories, err := readCollection[models.Category](r.path)
	if err != nil {
		return 0, err
	}
	ids := make([]int, 0, len(categories))
	for _, category := range categories {
		ids = append(ids, category.ID)
	}
	return nextID(ids), nil
}

func (r *categoryRepository) Create(ctx context.Context, category *models.Category) error {
	categories, err := readCollection[models.Category](r.path)
	if err != nil {
		return err
	}
	if category.ID == 0 {
		ids := make([]int, 0, len(categories))
		for _, existing := range categories {
			ids = append(ids, existing.ID)
		}
		category.ID = nextID(ids)
	}
	for _, existing := range categories {
		if existing.ID == category.ID {
			return fmt.Errorf("category %d already exists", category.ID)
		}
	}
	categories = append(categories, *category)
	return writeCollection(r.path, categories)
}

func (r *categoryRepository) Update(ctx context.Context, category *models.Category) error {
	categories, err := readCollection[models.Category](r.path)
	if err != nil {
		return err
	}
	for i := range categories {
		if categories[i].ID == category.ID {
			categories[i] = *category
			return writeCollection(r.path, categories)
		}
	}
	return fmt.Errorf("category %d not found", category.ID)
}

func (r *categoryRepository) Delete(ctx context.Context, id int) error {
	categories, err := readCollection[models.Category](r.path)
	if err != nil {
		return err
	}
	kept := categories[:0]
	for _, category := range categories {
		if category.ID != id {
			kept = append(kept, category)
		}
	}
	return writeCollection(r.path, kept)
}
