package repo

import (
	"context"

	"github.com/joripage/exchange-core/pkg/oms/model"
)

type IOrderEvent interface {
	Create(ctx context.Context, record *model.OrderEvent) (*model.OrderEvent, error)
	BulkCreate(ctx context.Context, records []*model.OrderEvent) ([]*model.OrderEvent, error)
}

type ITrade interface {
	Create(ctx context.Context, record *model.TradeEvent) (*model.TradeEvent, error)
	BulkCreate(ctx context.Context, records []*model.TradeEvent) ([]*model.TradeEvent, error)
}
