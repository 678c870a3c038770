package orderbook

// OrderSnapshot is a read-only copy of one resting order.
type OrderSnapshot struct {
	ID    uint64 `json:"id"`
	Price int64  `json:"price"`
	Qty   int64  `json:"qty"`
	Seq   uint64 `json:"seq"`
}

// LevelSnapshot is one price level with its aggregate resting quantity and
// its queue in time-priority order.
type LevelSnapshot struct {
	Price  int64           `json:"price"`
	Qty    int64           `json:"qty"`
	Orders []OrderSnapshot `json:"orders"`
}

// BookSnapshot is a detached view of the whole book, bids descending and
// asks ascending by price. Mutating it has no effect on the live book.
type BookSnapshot struct {
	Symbol string          `json:"symbol"`
	Bids   []LevelSnapshot `json:"bids"`
	Asks   []LevelSnapshot `json:"asks"`
}

// Quote is one side of the top of book: best price plus the aggregate
// quantity resting at that price.
type Quote struct {
	Price int64 `json:"price"`
	Qty   int64 `json:"qty"`
}

// TopOfBook is the best bid/ask pair. A nil side is empty.
type TopOfBook struct {
	Symbol string `json:"symbol"`
	Bid    *Quote `json:"bid"`
	Ask    *Quote `json:"ask"`
}
