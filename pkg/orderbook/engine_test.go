package orderbook

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"
)

func mustSubmit(t *testing.T, e *Engine, o *Order) ([]Trade, *Order) {
	t.Helper()
	trades, resting, err := e.Submit(o)
	if err != nil {
		t.Fatalf("submit %+v: %v", o, err)
	}
	return trades, resting
}

func TestSubmitRestsOnEmptyBook(t *testing.T) {
	e := NewEngine("ABC")

	trades, resting := mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10})
	if len(trades) != 0 {
		t.Fatalf("expected 0 trades, got %d", len(trades))
	}
	if resting == nil || resting.Price != 100 || resting.Qty != 10 {
		t.Fatalf("expected resting 10@100, got %+v", resting)
	}

	if bid, ok := e.BestBid(); !ok || bid != 100 {
		t.Errorf("expected best bid 100, got %d ok=%v", bid, ok)
	}
	if _, ok := e.BestAsk(); ok {
		t.Errorf("expected empty ask side")
	}
}

func TestExactMatchEmptiesBook(t *testing.T) {
	e := NewEngine("ABC")
	mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10})

	trades, resting := mustSubmit(t, e, &Order{ID: 2, Symbol: "ABC", Side: SELL, Price: 100, Qty: 10})
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	tr := trades[0]
	if tr.Price != 100 || tr.Qty != 10 || tr.MakerOrderID != 1 || tr.TakerOrderID != 2 {
		t.Errorf("incorrect trade: %+v", tr)
	}
	if resting != nil {
		t.Errorf("expected no resting remainder, got %+v", resting)
	}

	if _, ok := e.BestBid(); ok {
		t.Errorf("expected empty bid side after full fill")
	}
	if _, ok := e.BestAsk(); ok {
		t.Errorf("expected empty ask side after full fill")
	}
}

func TestPartialFillFIFO(t *testing.T) {
	e := NewEngine("ABC")
	mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: BUY, Price: 100, Qty: 5})
	mustSubmit(t, e, &Order{ID: 2, Symbol: "ABC", Side: BUY, Price: 100, Qty: 5})

	trades, resting := mustSubmit(t, e, &Order{ID: 3, Symbol: "ABC", Side: SELL, Price: 99, Qty: 7})
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].MakerOrderID != 1 || trades[0].Qty != 5 || trades[0].Price != 100 {
		t.Errorf("first trade should fully consume the older order: %+v", trades[0])
	}
	if trades[1].MakerOrderID != 2 || trades[1].Qty != 2 || trades[1].Price != 100 {
		t.Errorf("second trade should partially fill the newer order: %+v", trades[1])
	}
	if resting != nil {
		t.Errorf("incoming sell should be fully filled, got resting %+v", resting)
	}

	top := e.TopOfBook()
	if top.Bid == nil || top.Bid.Price != 100 || top.Bid.Qty != 3 {
		t.Errorf("expected bid 3@100 left, got %+v", top.Bid)
	}
}

func TestNotMarketableRests(t *testing.T) {
	e := NewEngine("ABC")

	// Scenario D: sell into an empty bid side.
	trades, resting := mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: SELL, Price: 105, Qty: 10})
	if len(trades) != 0 || resting == nil {
		t.Fatalf("expected sell to rest, trades=%d resting=%+v", len(trades), resting)
	}

	// Scenario E: buy far below the ask.
	trades, resting = mustSubmit(t, e, &Order{ID: 2, Symbol: "ABC", Side: BUY, Price: 50, Qty: 1})
	if len(trades) != 0 || resting == nil {
		t.Fatalf("expected buy to rest, trades=%d resting=%+v", len(trades), resting)
	}

	bid, _ := e.BestBid()
	ask, _ := e.BestAsk()
	if bid != 50 || ask != 105 {
		t.Errorf("expected 50/105, got %d/%d", bid, ask)
	}
}

func TestMakerPriceGovernsExecution(t *testing.T) {
	e := NewEngine("ABC")
	mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: SELL, Price: 95, Qty: 10})

	trades, _ := mustSubmit(t, e, &Order{ID: 2, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10})
	if len(trades) != 1 || trades[0].Price != 95 {
		t.Fatalf("execution must happen at the resting price 95, got %+v", trades)
	}
}

func TestMultiLevelSweep(t *testing.T) {
	e := NewEngine("ABC")
	mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: SELL, Price: 101, Qty: 5})
	mustSubmit(t, e, &Order{ID: 2, Symbol: "ABC", Side: SELL, Price: 102, Qty: 5})
	mustSubmit(t, e, &Order{ID: 3, Symbol: "ABC", Side: SELL, Price: 103, Qty: 5})

	trades, resting := mustSubmit(t, e, &Order{ID: 4, Symbol: "ABC", Side: BUY, Price: 105, Qty: 20})
	if len(trades) != 3 {
		t.Fatalf("expected 3 trades, got %d", len(trades))
	}
	for i, wantPrice := range []int64{101, 102, 103} {
		if trades[i].Price != wantPrice {
			t.Errorf("trade %d at price %d, want %d", i, trades[i].Price, wantPrice)
		}
	}
	if resting == nil || resting.Qty != 5 || resting.Price != 105 {
		t.Fatalf("remainder of 5 should rest at 105, got %+v", resting)
	}
	if _, ok := e.BestAsk(); ok {
		t.Errorf("ask side should be exhausted")
	}
}

func TestConservationOfQuantity(t *testing.T) {
	e := NewEngine("ABC")
	mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: SELL, Price: 100, Qty: 4})
	mustSubmit(t, e, &Order{ID: 2, Symbol: "ABC", Side: SELL, Price: 100, Qty: 9})

	incoming := &Order{ID: 3, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10}
	trades, resting := mustSubmit(t, e, incoming)

	var matched int64
	for _, tr := range trades {
		matched += tr.Qty
	}
	if matched != 10 {
		t.Errorf("matched %d, want 10", matched)
	}
	if resting != nil {
		t.Errorf("expected full fill, got resting %+v", resting)
	}

	// 4+9 resting minus 10 matched leaves 3 on the ask.
	top := e.TopOfBook()
	if top.Ask == nil || top.Ask.Qty != 3 {
		t.Errorf("expected 3 left on ask, got %+v", top.Ask)
	}
}

func TestCancelIdempotence(t *testing.T) {
	e := NewEngine("ABC")
	mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10})
	mustSubmit(t, e, &Order{ID: 2, Symbol: "ABC", Side: BUY, Price: 99, Qty: 10})

	if err := e.Cancel(1); err != nil {
		t.Fatalf("cancel resting order: %v", err)
	}

	before := e.Snapshot()
	if err := e.Cancel(1); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("second cancel should be ErrOrderNotFound, got %v", err)
	}
	after := e.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("failed cancel must not change the book: %+v vs %+v", before, after)
	}

	if bid, _ := e.BestBid(); bid != 99 {
		t.Errorf("best bid should fall back to 99, got %d", bid)
	}
}

func TestCancelPreservesTimePriority(t *testing.T) {
	e := NewEngine("ABC")
	mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: SELL, Price: 100, Qty: 5})
	mustSubmit(t, e, &Order{ID: 2, Symbol: "ABC", Side: SELL, Price: 100, Qty: 5})
	mustSubmit(t, e, &Order{ID: 3, Symbol: "ABC", Side: SELL, Price: 100, Qty: 5})

	if err := e.Cancel(2); err != nil {
		t.Fatalf("cancel: %v", err)
	}

	trades, _ := mustSubmit(t, e, &Order{ID: 4, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10})
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].MakerOrderID != 1 || trades[1].MakerOrderID != 3 {
		t.Errorf("expected makers 1 then 3, got %+v", trades)
	}
}

func TestInvalidOrderRejected(t *testing.T) {
	e := NewEngine("ABC")

	cases := []*Order{
		{ID: 1, Symbol: "ABC", Side: BUY, Price: 0, Qty: 10},
		{ID: 2, Symbol: "ABC", Side: BUY, Price: -5, Qty: 10},
		{ID: 3, Symbol: "ABC", Side: BUY, Price: 100, Qty: 0},
		{ID: 4, Symbol: "ABC", Side: Side("HOLD"), Price: 100, Qty: 10},
		{ID: 0, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10},
	}
	for _, o := range cases {
		if _, _, err := e.Submit(o); !errors.Is(err, ErrInvalidOrder) {
			t.Errorf("order %+v should be rejected, got %v", o, err)
		}
	}

	// Rejections must leave no partial effect.
	snap := e.Snapshot()
	if len(snap.Bids) != 0 || len(snap.Asks) != 0 {
		t.Errorf("book should still be empty, got %+v", snap)
	}
}

func TestCallerSequenceMustAdvance(t *testing.T) {
	e := NewEngine("ABC")
	mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10, Seq: 7})

	if _, _, err := e.Submit(&Order{ID: 2, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10, Seq: 7}); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("stale sequence should be rejected, got %v", err)
	}
	mustSubmit(t, e, &Order{ID: 3, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10, Seq: 9})

	// Engine-stamped sequences continue above the caller's.
	_, resting := mustSubmit(t, e, &Order{ID: 4, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10})
	if resting.Seq <= 9 {
		t.Errorf("stamped seq should advance past 9, got %d", resting.Seq)
	}
}

func TestDuplicateRestingIDRejected(t *testing.T) {
	e := NewEngine("ABC")
	mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10})

	if _, _, err := e.Submit(&Order{ID: 1, Symbol: "ABC", Side: BUY, Price: 101, Qty: 1}); !errors.Is(err, ErrInvalidOrder) {
		t.Fatalf("resting id reuse should be rejected, got %v", err)
	}
}

func TestSnapshotOrdering(t *testing.T) {
	e := NewEngine("ABC")
	mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: BUY, Price: 98, Qty: 1})
	mustSubmit(t, e, &Order{ID: 2, Symbol: "ABC", Side: BUY, Price: 100, Qty: 2})
	mustSubmit(t, e, &Order{ID: 3, Symbol: "ABC", Side: BUY, Price: 99, Qty: 3})
	mustSubmit(t, e, &Order{ID: 4, Symbol: "ABC", Side: SELL, Price: 103, Qty: 1})
	mustSubmit(t, e, &Order{ID: 5, Symbol: "ABC", Side: SELL, Price: 101, Qty: 2})

	snap := e.Snapshot()
	wantBids := []int64{100, 99, 98}
	for i, level := range snap.Bids {
		if level.Price != wantBids[i] {
			t.Errorf("bids[%d] price %d, want %d", i, level.Price, wantBids[i])
		}
	}
	wantAsks := []int64{101, 103}
	for i, level := range snap.Asks {
		if level.Price != wantAsks[i] {
			t.Errorf("asks[%d] price %d, want %d", i, level.Price, wantAsks[i])
		}
	}
}

func TestLastTrade(t *testing.T) {
	e := NewEngine("ABC")
	if e.LastTrade() != nil {
		t.Fatalf("no trades yet")
	}
	mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: SELL, Price: 100, Qty: 10})
	mustSubmit(t, e, &Order{ID: 2, Symbol: "ABC", Side: BUY, Price: 100, Qty: 4})
	mustSubmit(t, e, &Order{ID: 3, Symbol: "ABC", Side: BUY, Price: 100, Qty: 5})

	last := e.LastTrade()
	if last == nil || last.TakerOrderID != 3 || last.Qty != 5 {
		t.Errorf("unexpected last trade %+v", last)
	}
}

func TestTradeCallbackOrder(t *testing.T) {
	e := NewEngine("ABC")
	var seen []uint64
	e.RegisterTradeCallback(func(trades []Trade) {
		for _, tr := range trades {
			seen = append(seen, tr.MakerOrderID)
		}
	})

	mustSubmit(t, e, &Order{ID: 1, Symbol: "ABC", Side: SELL, Price: 100, Qty: 5})
	mustSubmit(t, e, &Order{ID: 2, Symbol: "ABC", Side: SELL, Price: 100, Qty: 5})
	mustSubmit(t, e, &Order{ID: 3, Symbol: "ABC", Side: BUY, Price: 100, Qty: 10})

	if !reflect.DeepEqual(seen, []uint64{1, 2}) {
		t.Errorf("callback saw %v, want [1 2]", seen)
	}
}

// Randomized sweep: after every submission the book must be uncrossed and
// matched quantity must equal the quantity drained from both sides.
func TestRandomizedUncrossedInvariant(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	e := NewEngine("ABC")

	var submittedQty, matchedQty int64
	for i := 1; i <= 5000; i++ {
		side := BUY
		if rng.Intn(2) == 0 {
			side = SELL
		}
		o := &Order{
			ID:     uint64(i),
			Symbol: "ABC",
			Side:   side,
			Price:  int64(90 + rng.Intn(21)),
			Qty:    int64(1 + rng.Intn(50)),
		}
		submittedQty += o.Qty

		trades, _, err := e.Submit(o)
		if err != nil {
			t.Fatalf("submit %d: %v", i, err)
		}
		for _, tr := range trades {
			matchedQty += tr.Qty
		}

		bid, okBid := e.BestBid()
		ask, okAsk := e.BestAsk()
		if okBid && okAsk && bid >= ask {
			t.Fatalf("crossed book after order %d: bid %d >= ask %d", i, bid, ask)
		}
	}

	// Each trade consumes one unit from each side; everything else must
	// still be resting in the book.
	var bookQty int64
	snap := e.Snapshot()
	for _, level := range append(snap.Bids, snap.Asks...) {
		bookQty += level.Qty
	}
	if submittedQty != bookQty+2*matchedQty {
		t.Errorf("quantity leak: submitted %d, in book %d, matched %d", submittedQty, bookQty, matchedQty)
	}
}

func TestManagerRoutesPerSymbol(t *testing.T) {
	m := NewManager()

	var trades []Trade
	m.RegisterTradeCallback(func(ts []Trade) { trades = append(trades, ts...) })

	if _, _, err := m.Submit(&Order{ID: 1, Symbol: "AAA", Side: BUY, Price: 100, Qty: 10}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, _, err := m.Submit(&Order{ID: 2, Symbol: "BBB", Side: SELL, Price: 100, Qty: 10}); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// Opposite sides on different symbols never match.
	if len(trades) != 0 {
		t.Fatalf("cross-symbol match must not happen: %+v", trades)
	}

	if _, _, err := m.Submit(&Order{ID: 3, Symbol: "AAA", Side: SELL, Price: 100, Qty: 10}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(trades) != 1 || trades[0].Symbol != "AAA" {
		t.Fatalf("expected one AAA trade, got %+v", trades)
	}

	if err := m.Cancel("BBB", 2); err != nil {
		t.Errorf("cancel on BBB: %v", err)
	}
	if err := m.Cancel("AAA", 2); !errors.Is(err, ErrOrderNotFound) {
		t.Errorf("order 2 never rested on AAA, got %v", err)
	}
}
