package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
	"gorm.io/gorm"
)

func productOut(p *domain.Product, o store.Options) *domain.Product {
	if o.Protected {
		return domain.ProtectProduct(p)
	}
	return p
}

func (s *Store) AddProduct(ctx context.Context, product *domain.Product, opts ...store.Option) (*domain.Product, error) {
	rec := *product
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, wrap(err)
	}
	return productOut(&rec, store.Resolve(opts)), nil
}

func (s *Store) UpdateProduct(ctx context.Context, product *domain.Product, opts ...store.Option) (*domain.Product, error) {
	var existing domain.Product
	err := s.db.WithContext(ctx).First(&existing, "id = ?", product.ID).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}

	rec := *product
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, wrap(err)
	}
	return productOut(&rec, store.Resolve(opts)), nil
}

// DeleteProduct leaves any order lines referencing the product in place;
// lines are cleaned up by order deletion only.
func (s *Store) DeleteProduct(ctx context.Context, id string, opts ...store.Option) (*domain.Product, error) {
	var rec domain.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Product{}, "id = ?", id).Error
	})
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return productOut(&rec, store.Resolve(opts)), nil
}

func (s *Store) GetProduct(ctx context.Context, id string, opts ...store.Option) (*domain.Product, error) {
	var rec domain.Product
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return productOut(&rec, store.Resolve(opts)), nil
}

func (s *Store) GetAllProducts(ctx context.Context, opts ...store.Option) ([]*domain.Product, error) {
	var recs []*domain.Product
	if err := s.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, wrap(err)
	}
	o := store.Resolve(opts)
	for i, rec := range recs {
		recs[i] = productOut(rec, o)
	}
	return recs, nil
}

func (s *Store) DeleteAllProducts(ctx context.Context, opts ...store.Option) ([]*domain.Product, error) {
	var recs []*domain.Product
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&recs).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&domain.Product{}).Error
	})
	if err != nil {
		return nil, wrap(err)
	}
	o := store.Resolve(opts)
	for i, rec := range recs {
		recs[i] = productOut(rec, o)
	}
	return recs, nil
}

func (s *Store) GetProductsByCategory(ctx context.Context, categoryID string, opts ...store.Option) ([]*domain.Product, error) {
	var recs []*domain.Product
	if err := s.db.WithContext(ctx).Find(&recs, "category_id = ?", categoryID).Error; err != nil {
		return nil, wrap(err)
	}
	o := store.Resolve(opts)
	for i, rec := range recs {
		recs[i] = productOut(rec, o)
	}
	return recs, nil
}

func (s *Store) AddCategory(ctx context.Context, category *domain.ProductCategory) (*domain.ProductCategory, error) {
	rec := *category
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, wrap(err)
	}
	return &rec, nil
}

// DeleteCategory does not touch products; the product-to-category reference
// is weak.
func (s *Store) DeleteCategory(ctx context.Context, id string) (*domain.ProductCategory, error) {
	var rec domain.ProductCategory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.ProductCategory{}, "id = ?", id).Error
	})
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return &rec, nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*domain.ProductCategory, error) {
	var rec domain.ProductCategory
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return &rec, nil
}

func (s *Store) GetAllCategories(ctx context.Context) ([]*domain.ProductCategory, error) {
	var recs []*domain.ProductCategory
	if err := s.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, wrap(err)
	}
	return recs, nil
}

func (s *Store) DeleteAllCategories(ctx context.Context) ([]*domain.ProductCategory, error) {
	var recs []*domain.ProductCategory
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&recs).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&domain.ProductCategory{}).Error
	})
	if err != nil {
		return nil, wrap(err)
	}
	return recs, nil
}
