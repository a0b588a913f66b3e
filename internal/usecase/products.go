package usecase

import (
	"context"

	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
)

// Products wraps the product and category store operations.
type Products struct {
	store store.Store
}

func NewProducts(st store.Store) *Products {
	return &Products{store: st}
}

func (p *Products) checkStore() error {
	if p.store == nil {
		return ErrStoreNotConfigured
	}
	return nil
}

func (p *Products) categories(action string) (store.Categories, error) {
	if p.store == nil {
		return nil, ErrStoreNotConfigured
	}
	cat, ok := p.store.(store.Categories)
	if !ok {
		return nil, serverErr("Products", action, errNoCapability)
	}
	return cat, nil
}

func (p *Products) Add(ctx context.Context, product *domain.Product, opts ...store.Option) (*domain.Product, error) {
	if err := firstError(
		requireNonEmpty("name", product.Name),
		requirePrice("price", product.Price),
	); err != nil {
		return nil, err
	}
	if err := p.checkStore(); err != nil {
		return nil, err
	}
	out, err := p.store.AddProduct(ctx, product, opts...)
	if err != nil {
		return nil, serverErr("Products.Add", "adding product", err)
	}
	return out, nil
}

func (p *Products) Update(ctx context.Context, product *domain.Product, opts ...store.Option) (*domain.Product, error) {
	if err := firstError(
		requireID("id", product.ID),
		requireNonEmpty("name", product.Name),
		requirePrice("price", product.Price),
	); err != nil {
		return nil, err
	}
	if err := p.checkStore(); err != nil {
		return nil, err
	}
	out, err := p.store.UpdateProduct(ctx, product, opts...)
	if err != nil {
		return nil, serverErr("Products.Update", "updating product", err)
	}
	return out, nil
}

func (p *Products) Delete(ctx context.Context, id string, opts ...store.Option) (*domain.Product, error) {
	if err := firstError(requireID("id", id)); err != nil {
		return nil, err
	}
	if err := p.checkStore(); err != nil {
		return nil, err
	}
	out, err := p.store.DeleteProduct(ctx, id, opts...)
	if err != nil {
		return nil, serverErr("Products.Delete", "deleting product", err)
	}
	return out, nil
}

func (p *Products) Get(ctx context.Context, id string, opts ...store.Option) (*domain.Product, error) {
	if err := firstError(requireID("id", id)); err != nil {
		return nil, err
	}
	if err := p.checkStore(); err != nil {
		return nil, err
	}
	out, err := p.store.GetProduct(ctx, id, opts...)
	if err != nil {
		return nil, serverErr("Products.Get", "getting product", err)
	}
	return out, nil
}

func (p *Products) GetAll(ctx context.Context, opts ...store.Option) ([]*domain.Product, error) {
	if err := p.checkStore(); err != nil {
		return nil, err
	}
	out, err := p.store.GetAllProducts(ctx, opts...)
	if err != nil {
		return nil, serverErr("Products.GetAll", "getting products", err)
	}
	return out, nil
}

func (p *Products) DeleteAll(ctx context.Context, opts ...store.Option) ([]*domain.Product, error) {
	if err := p.checkStore(); err != nil {
		return nil, err
	}
	out, err := p.store.DeleteAllProducts(ctx, opts...)
	if err != nil {
		return nil, serverErr("Products.DeleteAll", "deleting products", err)
	}
	return out, nil
}

func (p *Products) GetByCategory(ctx context.Context, categoryID string, opts ...store.Option) ([]*domain.Product, error) {
	if err := firstError(requireID("categoryId", categoryID)); err != nil {
		return nil, err
	}
	cat, err := p.categories("getting products")
	if err != nil {
		return nil, err
	}
	out, err := cat.GetProductsByCategory(ctx, categoryID, opts...)
	if err != nil {
		return nil, serverErr("Products.GetByCategory", "getting products", err)
	}
	return out, nil
}

func (p *Products) AddCategory(ctx context.Context, category *domain.ProductCategory) (*domain.ProductCategory, error) {
	if err := firstError(requireNonEmpty("name", category.Name)); err != nil {
		return nil, err
	}
	cat, err := p.categories("adding category")
	if err != nil {
		return nil, err
	}
	out, err := cat.AddCategory(ctx, category)
	if err != nil {
		return nil, serverErr("Products.AddCategory", "adding category", err)
	}
	return out, nil
}

func (p *Products) DeleteCategory(ctx context.Context, id string) (*domain.ProductCategory, error) {
	if err := firstError(requireID("id", id)); err != nil {
		return nil, err
	}
	cat, err := p.categories("deleting category")
	if err != nil {
		return nil, err
	}
	out, err := cat.DeleteCategory(ctx, id)
	if err != nil {
		return nil, serverErr("Products.DeleteCategory", "deleting category", err)
	}
	return out, nil
}

func (p *Products) GetCategory(ctx context.Context, id string) (*domain.ProductCategory, error) {
	if err := firstError(requireID("id", id)); err != nil {
		return nil, err
	}
	cat, err := p.categories("getting category")
	if err != nil {
		return nil, err
	}
	out, err := cat.GetCategory(ctx, id)
	if err != nil {
		return nil, serverErr("Products.GetCategory", "getting category", err)
	}
	return out, nil
}

func (p *Products) GetAllCategories(ctx context.Context) ([]*domain.ProductCategory, error) {
	cat, err := p.categories("getting categories")
	if err != nil {
		return nil, err
	}
	out, err := cat.GetAllCategories(ctx)
	if err != nil {
		return nil, serverErr("Products.GetAllCategories", "getting categories", err)
	}
	return out, nil
}

func (p *Products) DeleteAllCategories(ctx context.Context) ([]*domain.ProductCategory, error) {
	cat, err := p.categories("deleting categories")
	if err != nil {
		return nil, err
	}
	out, err := cat.DeleteAllCategories(ctx)
	if err != nil {
		return nil, serverErr("Products.DeleteAllCategories", "deleting categories", err)
	}
	return out, nil
}
