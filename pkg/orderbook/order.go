package orderbook

type Side string

const (
	BUY  Side = "BUY"
	SELL Side = "SELL"
)

// Order is a single limit order. Price is an integer tick count, never a
// float, so price comparison is exact. Qty is decremented by the matching
// loop only; every other field is fixed once the order is accepted.
//
// ID is assigned by the caller and must be unique. Seq is the time-priority
// tie-breaker: the caller may supply a strictly increasing value, or leave
// it zero and let the engine stamp it on submission.
type Order struct {
	ID     uint64
	Symbol string
	Side   Side
	Price  int64
	Qty    int64
	Seq    uint64
}

func (o *Order) validate() error {
	if o == nil || o.ID == 0 {
		return ErrInvalidOrder
	}
	if o.Side != BUY && o.Side != SELL {
		return ErrInvalidOrder
	}
	if o.Price <= 0 || o.Qty <= 0 {
		return ErrInvalidOrder
	}
	return nil
}
