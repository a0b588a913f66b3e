package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/ray/storefront-backend/internal/domain"
	"github.com/ray/storefront-backend/internal/store"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func orderOut(o *domain.Order, opts store.Options) *domain.Order {
	if opts.Protected {
		return domain.ProtectOrder(o)
	}
	return o
}

func (s *Store) AddOrder(ctx context.Context, order *domain.Order, opts ...store.Option) (*domain.Order, error) {
	rec := *order
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if err := s.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, wrap(err)
	}
	return orderOut(&rec, store.Resolve(opts)), nil
}

func (s *Store) UpdateOrder(ctx context.Context, order *domain.Order, opts ...store.Option) (*domain.Order, error) {
	var existing domain.Order
	err := s.db.WithContext(ctx).First(&existing, "id = ?", order.ID).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}

	rec := *order
	if err := s.db.WithContext(ctx).Save(&rec).Error; err != nil {
		return nil, wrap(err)
	}
	return orderOut(&rec, store.Resolve(opts)), nil
}

// DeleteOrder removes the order and its lines in one transaction.
func (s *Store) DeleteOrder(ctx context.Context, id string, opts ...store.Option) (*domain.Order, error) {
	var rec domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&rec, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Delete(&domain.OrderProduct{}, "order_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, "id = ?", id).Error
	})
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return orderOut(&rec, store.Resolve(opts)), nil
}

func (s *Store) GetOrder(ctx context.Context, id string, opts ...store.Option) (*domain.Order, error) {
	var rec domain.Order
	err := s.db.WithContext(ctx).First(&rec, "id = ?", id).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return orderOut(&rec, store.Resolve(opts)), nil
}

func (s *Store) GetAllOrders(ctx context.Context, opts ...store.Option) ([]*domain.Order, error) {
	var recs []*domain.Order
	if err := s.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, wrap(err)
	}
	o := store.Resolve(opts)
	for i, rec := range recs {
		recs[i] = orderOut(rec, o)
	}
	return recs, nil
}

// DeleteAllOrders removes every order and its lines, same as deleting each
// one individually.
func (s *Store) DeleteAllOrders(ctx context.Context, opts ...store.Option) ([]*domain.Order, error) {
	var recs []*domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&recs).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM order_products WHERE order_id IN (SELECT id FROM orders)",
		).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&domain.Order{}).Error
	})
	if err != nil {
		return nil, wrap(err)
	}
	o := store.Resolve(opts)
	for i, rec := range recs {
		recs[i] = orderOut(rec, o)
	}
	return recs, nil
}

func (s *Store) GetOrdersForUser(ctx context.Context, userID string, opts ...store.Option) ([]*domain.Order, error) {
	var recs []*domain.Order
	if err := s.db.WithContext(ctx).Find(&recs, "user_id = ?", userID).Error; err != nil {
		return nil, wrap(err)
	}
	o := store.Resolve(opts)
	for i, rec := range recs {
		recs[i] = orderOut(rec, o)
	}
	return recs, nil
}

// GetActiveOrderForUser returns the user's open cart, creating one when none
// exists. Lookup and create run in one transaction so two concurrent calls
// for the same user cannot both create a cart.
func (s *Store) GetActiveOrderForUser(ctx context.Context, userID string, opts ...store.Option) (*domain.Order, error) {
	var rec domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&rec, "user_id = ? AND status = ?", userID, domain.OrderActive).Error
		if err == nil {
			return nil
		}
		if !notFound(err) {
			return err
		}
		rec = domain.Order{
			ID:     uuid.New().String(),
			Status: domain.OrderActive,
			UserID: userID,
		}
		return tx.Create(&rec).Error
	})
	if err != nil {
		return nil, wrap(err)
	}
	return orderOut(&rec, store.Resolve(opts)), nil
}

// GetUserOrder reads as missing both when the order does not exist and when
// it belongs to a different user.
func (s *Store) GetUserOrder(ctx context.Context, orderID, userID string, opts ...store.Option) (*domain.Order, error) {
	var rec domain.Order
	err := s.db.WithContext(ctx).First(&rec, "id = ? AND user_id = ?", orderID, userID).Error
	if notFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, wrap(err)
	}
	return orderOut(&rec, store.Resolve(opts)), nil
}

func (s *Store) DeleteAllOrdersForUser(ctx context.Context, userID string, opts ...store.Option) ([]*domain.Order, error) {
	var recs []*domain.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&recs, "user_id = ?", userID).Error; err != nil {
			return err
		}
		if err := tx.Exec(
			"DELETE FROM order_products WHERE order_id IN (SELECT id FROM orders WHERE user_id = ?)", userID,
		).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.Order{}, "user_id = ?", userID).Error
	})
	if err != nil {
		return nil, wrap(err)
	}
	o := store.Resolve(opts)
	for i, rec := range recs {
		recs[i] = orderOut(rec, o)
	}
	return recs, nil
}

// AddProductToOrder upserts the order line keyed on (order_id, product_id):
// a single INSERT ... ON CONFLICT sums quantities, so concurrent duplicate
// inserts cannot produce two lines for the same pair.
func (s *Store) AddProductToOrder(ctx context.Context, quantity int, orderID, productID string) (*domain.OrderItem, error) {
	var item *domain.OrderItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var product domain.Product
		err := tx.First(&product, "id = ?", productID).Error
		if notFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		line := domain.OrderProduct{
			ID:        uuid.New().String(),
			Quantity:  quantity,
			OrderID:   orderID,
			ProductID: productID,
		}
		err = tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "order_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity": gorm.Expr("order_products.quantity + excluded.quantity"),
			}),
		}).Create(&line).Error
		if err != nil {
			return err
		}

		if err := tx.First(&line, "order_id = ? AND product_id = ?", orderID, productID).Error; err != nil {
			return err
		}
		item = &domain.OrderItem{Name: product.Name, Quantity: line.Quantity, Price: product.Price}
		return nil
	})
	if err != nil {
		return nil, wrap(err)
	}
	return item, nil
}

// RemoveProductFromOrder drops the whole line and reports its accumulated
// quantity.
func (s *Store) RemoveProductFromOrder(ctx context.Context, orderID, productID string) (*domain.OrderItem, error) {
	var item *domain.OrderItem
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var line domain.OrderProduct
		err := tx.First(&line, "order_id = ? AND product_id = ?", orderID, productID).Error
		if notFound(err) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&domain.OrderProduct{}, "id = ?", line.ID).Error; err != nil {
			return err
		}

		item = &domain.OrderItem{Quantity: line.Quantity}
		var product domain.Product
		if err := tx.First(&product, "id = ?", productID).Error; err == nil {
			item.Name = product.Name
			item.Price = product.Price
		} else if !notFound(err) {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, wrap(err)
	}
	return item, nil
}

func (s *Store) GetProductsInOrder(ctx context.Context, orderID string) ([]*domain.OrderItem, error) {
	var items []*domain.OrderItem
	err := s.db.WithContext(ctx).Model(&domain.OrderProduct{}).
		Select("products.name, order_products.quantity, products.price").
		Joins("JOIN products ON products.id = order_products.product_id").
		Where("order_products.order_id = ?", orderID).
		Scan(&items).Error
	if err != nil {
		return nil, wrap(err)
	}
	return items, nil
}

func (s *Store) DeleteAllProductsInOrder(ctx context.Context, orderID string) ([]*domain.OrderProduct, error) {
	var recs []*domain.OrderProduct
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&recs, "order_id = ?", orderID).Error; err != nil {
			return err
		}
		return tx.Delete(&domain.OrderProduct{}, "order_id = ?", orderID).Error
	})
	if err != nil {
		return nil, wrap(err)
	}
	return recs, nil
}

func (s *Store) GetAllOrderProducts(ctx context.Context) ([]*domain.OrderProduct, error) {
	var recs []*domain.OrderProduct
	if err := s.db.WithContext(ctx).Find(&recs).Error; err != nil {
		return nil, wrap(err)
	}
	return recs, nil
}

func (s *Store) DeleteAllOrderProducts(ctx context.Context) ([]*domain.OrderProduct, error) {
	var recs []*domain.OrderProduct
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Find(&recs).Error; err != nil {
			return err
		}
		return tx.Where("1 = 1").Delete(&domain.OrderProduct{}).Error
	})
	if err != nil {
		return nil, wrap(err)
	}
	return recs, nil
}
