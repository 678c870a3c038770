package repo

import (
	"context"

	"github.com/joripage/exchange-core/pkg/oms/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type OrderEventSQLRepo struct {
	db *gorm.DB
}

func NewOrderEventSQLRepo(db *gorm.DB) *OrderEventSQLRepo {
	return &OrderEventSQLRepo{
		db: db,
	}
}

func (r *OrderEventSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

// Create inserts one event. Redelivery is expected from the event stream,
// so a duplicate EventID is a no-op rather than an error.
func (r *OrderEventSQLRepo) Create(ctx context.Context, record *model.OrderEvent) (*model.OrderEvent, error) {
	return record, r.dbWithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(record).Error
}

func (r *OrderEventSQLRepo) BulkCreate(ctx context.Context, records []*model.OrderEvent) ([]*model.OrderEvent, error) {
	return records, r.dbWithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(records).Error
}
