package repo

import (
	"context"

	"github.com/joripage/exchange-core/pkg/oms/model"
	"gorm.io/gorm"
)

type TradeSQLRepo struct {
	db *gorm.DB
}

func NewTradeSQLRepo(db *gorm.DB) *TradeSQLRepo {
	return &TradeSQLRepo{
		db: db,
	}
}

func (r *TradeSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx)
}

func (r *TradeSQLRepo) Create(ctx context.Context, record *model.TradeEvent) (*model.TradeEvent, error) {
	return record, r.dbWithContext(ctx).Create(record).Error
}

func (r *TradeSQLRepo) BulkCreate(ctx context.Context, records []*model.TradeEvent) ([]*model.TradeEvent, error) {
	return records, r.dbWithContext(ctx).Create(records).Error
}
