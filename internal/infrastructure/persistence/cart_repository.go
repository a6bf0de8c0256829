package persistence

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/storefront/backend/internal/domain/cart"
	"github.com/storefront/backend/internal/domain/shared"
	"github.com/storefront/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCartRepository implements cart.Repository using GORM
type GormCartRepository struct {
	db *gorm.DB
}

// NewGormCartRepository creates a new GormCartRepository
func NewGormCartRepository(db *gorm.DB) *GormCartRepository {
	return &GormCartRepository{db: db}
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC, id ASC")
}

// FindBySession returns the session's cart with all items
func (r *GormCartRepository) FindBySession(ctx context.Context, sessionID string) (*cart.Cart, error) {
	var model models.CartModel
	if err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Where("cart_id = ?", sessionID).
		First(&model).Error; err != nil {
		return nil, translateError(err)
	}
	return model.ToDomain(), nil
}

// FindAll lists carts, most recently touched first; filter.Search matches the session id
func (r *GormCartRepository) FindAll(ctx context.Context, filter shared.Filter) ([]cart.Cart, error) {
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.CartModel{}), filter)
	query = orderBy(query, filter, CartSortFields, "updated_at DESC, id ASC")

	var rows []models.CartModel
	if err := paginate(query, filter).Preload("Items", orderedItems).Find(&rows).Error; err != nil {
		return nil, err
	}
	carts := make([]cart.Cart, 0, len(rows))
	for i := range rows {
		carts = append(carts, *rows[i].ToDomain())
	}
	return carts, nil
}

// Count counts carts matching the filter
func (r *GormCartRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.CartModel{}), filter).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Update creates the cart row if asked, locks it, applies fn and persists
// the item diff. Concurrent updates of one session serialize on the lock,
// so none of them works from a stale copy.
func (r *GormCartRepository) Update(ctx context.Context, sessionID string, create bool, fn func(*cart.Cart) error) (*cart.Cart, error) {
	var result *cart.Cart
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if create {
			fresh, err := cart.NewCart(sessionID)
			if err != nil {
				return err
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "cart_id"}},
				DoNothing: true,
			}).Create(models.CartModelFromDomain(fresh)).Error; err != nil {
				return translateError(err)
			}
		}

		var model models.CartModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cart_id = ?", sessionID).
			First(&model).Error; err != nil {
			return translateError(err)
		}
		if err := orderedItems(tx).Where("cart_id = ?", model.ID).Find(&model.Items).Error; err != nil {
			return err
		}

		c := model.ToDomain()
		before := make(map[uuid.UUID]cart.Item, len(c.Items))
		for _, item := range c.Items {
			before[item.ID] = item
		}
		if err := fn(c); err != nil {
			return err
		}

		changed, err := writeItemDiff(tx, c, before)
		if err != nil {
			return err
		}
		if changed {
			c.UpdatedAt = time.Now().UTC()
			if err := tx.Model(&models.CartModel{}).Where("id = ?", c.ID).Update("updated_at", c.UpdatedAt).Error; err != nil {
				return err
			}
		}
		result = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// writeItemDiff inserts, updates and deletes cart items so the table
// matches c.Items. before holds the items as loaded.
func writeItemDiff(tx *gorm.DB, c *cart.Cart, before map[uuid.UUID]cart.Item) (bool, error) {
	changed := false
	kept := make(map[uuid.UUID]struct{}, len(c.Items))
	for _, item := range c.Items {
		item.CartID = c.ID
		kept[item.ID] = struct{}{}

		old, existed := before[item.ID]
		switch {
		case !existed:
			model := models.CartItemModelFromDomain(item)
			if err := tx.Create(&model).Error; err != nil {
				return false, translateError(err)
			}
		case old.Quantity != item.Quantity || old.IsActive != item.IsActive:
			if err := tx.Model(&models.CartItemModel{}).Where("id = ?", item.ID).
				Updates(map[string]interface{}{"quantity": item.Quantity, "is_active": item.IsActive}).Error; err != nil {
				return false, err
			}
		default:
			continue
		}
		changed = true
	}

	var removed []uuid.UUID
	for id := range before {
		if _, ok := kept[id]; !ok {
			removed = append(removed, id)
		}
	}
	if len(removed) > 0 {
		if err := tx.Where("cart_id = ? AND id IN ?", c.ID, removed).Delete(&models.CartItemModel{}).Error; err != nil {
			return false, err
		}
		changed = true
	}
	return changed, nil
}

// SetItemActive toggles one item
func (r *GormCartRepository) SetItemActive(ctx context.Context, itemID uuid.UUID, active bool) error {
	result := r.db.WithContext(ctx).
		Model(&models.CartItemModel{}).
		Where("id = ?", itemID).
		Update("is_active", active)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ClearItems deletes the given items of a cart and touches the cart
func (r *GormCartRepository) ClearItems(ctx context.Context, cartID uuid.UUID, itemIDs []uuid.UUID) error {
	if len(itemIDs) == 0 {
		return nil
	}
	db := r.db.WithContext(ctx)
	if err := db.Where("cart_id = ? AND id IN ?", cartID, itemIDs).Delete(&models.CartItemModel{}).Error; err != nil {
		return err
	}
	return db.Model(&models.CartModel{}).Where("id = ?", cartID).Update("updated_at", time.Now().UTC()).Error
}

// DeleteStale removes carts not updated since before, with their items
func (r *GormCartRepository) DeleteStale(ctx context.Context, before time.Time) (int64, error) {
	var deleted int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stale := tx.Model(&models.CartModel{}).Select("id").Where("updated_at < ?", before)
		if err := tx.Where("cart_id IN (?)", stale).Delete(&models.CartItemModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("updated_at < ?", before).Delete(&models.CartModel{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}

func (r *GormCartRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where(`LOWER(cart_id) LIKE ? ESCAPE '\'`, containsPattern(filter.Search))
	}
	return query
}

// Ensure GormCartRepository implements cart.Repository
var _ cart.Repository = (*GormCartRepository)(nil)
