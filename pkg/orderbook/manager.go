package orderbook

import "sync"

// Manager routes orders to per-symbol engines. Engines are created on first
// use and never share state; cross-symbol throughput scales by running
// callers on separate goroutines.
type Manager struct {
	engines sync.Map

	mu        sync.Mutex
	callbacks []func([]Trade)
}

func NewManager() *Manager {
	return &Manager{}
}

// Submit routes the order to its symbol's engine.
func (m *Manager) Submit(order *Order) ([]Trade, *Order, error) {
	if order == nil || order.Symbol == "" {
		return nil, nil, ErrInvalidOrder
	}
	return m.Engine(order.Symbol).Submit(order)
}

// Cancel removes a resting order from one symbol's book.
func (m *Manager) Cancel(symbol string, id uint64) error {
	return m.Engine(symbol).Cancel(id)
}

// RegisterTradeCallback attaches cb to every existing and future engine.
func (m *Manager) RegisterTradeCallback(cb func([]Trade)) {
	m.mu.Lock()
	m.callbacks = append(m.callbacks, cb)
	m.mu.Unlock()

	m.engines.Range(func(_, v any) bool {
		v.(*Engine).RegisterTradeCallback(cb)
		return true
	})
}

// Engine returns the engine for a symbol, creating it if needed.
func (m *Manager) Engine(symbol string) *Engine {
	if v, ok := m.engines.Load(symbol); ok {
		return v.(*Engine)
	}

	engine := NewEngine(symbol)
	m.mu.Lock()
	for _, cb := range m.callbacks {
		engine.RegisterTradeCallback(cb)
	}
	m.mu.Unlock()

	actual, loaded := m.engines.LoadOrStore(symbol, engine)
	if loaded {
		return actual.(*Engine)
	}
	return engine
}

// Symbols lists the symbols with an engine, in no particular order.
func (m *Manager) Symbols() []string {
	var out []string
	m.engines.Range(func(k, _ any) bool {
		out = append(out, k.(string))
		return true
	})
	return out
}
