package orderbook

// priceHeap implements heap.Interface over tick prices. The index set keeps
// a price from being pushed twice while it is still queued; emptied prices
// are pruned lazily by book.bestPrice.
type priceHeap struct {
	prices []int64
	less   func(a, b int64) bool
	index  map[int64]bool
}

func newPriceHeap(less func(a, b int64) bool) *priceHeap {
	return &priceHeap{
		less:  less,
		index: make(map[int64]bool),
	}
}

func (h *priceHeap) Len() int { return len(h.prices) }

func (h *priceHeap) Less(i, j int) bool { return h.less(h.prices[i], h.prices[j]) }

func (h *priceHeap) Swap(i, j int) { h.prices[i], h.prices[j] = h.prices[j], h.prices[i] }

func (h *priceHeap) Push(x any) {
	price := x.(int64)
	if !h.index[price] {
		h.index[price] = true
		h.prices = append(h.prices, price)
	}
}

func (h *priceHeap) Pop() any {
	n := len(h.prices)
	price := h.prices[n-1]
	h.prices = h.prices[:n-1]
	delete(h.index, price)
	return price
}

func (h *priceHeap) peek() (int64, bool) {
	if len(h.prices) == 0 {
		return 0, false
	}
	return h.prices[0], true
}
