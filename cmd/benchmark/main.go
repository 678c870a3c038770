package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/joripage/exchange-core/pkg/orderbook"
)

const (
	numOrders = 1_000_000
	minPrice  = 10000
	maxPrice  = 20000
	minQty    = 1
	maxQty    = 100
)

func randomOrder(id uint64) *orderbook.Order {
	side := orderbook.BUY
	if rand.Intn(2) == 0 {
		side = orderbook.SELL
	}
	price := int64(rand.Intn(maxPrice-minPrice+1) + minPrice)
	qty := int64(rand.Intn(maxQty-minQty+1) + minQty)

	return &orderbook.Order{
		ID:     id,
		Symbol: "ABC",
		Side:   side,
		Price:  price,
		Qty:    qty,
	}
}

func main() {
	rand.Seed(time.Now().UnixNano())

	manager := orderbook.NewManager()
	totalMatched := 0
	totalQty := int64(0)
	manager.RegisterTradeCallback(func(trades []orderbook.Trade) {
		for _, t := range trades {
			totalMatched++
			totalQty += t.Qty
			if totalMatched <= 5 {
				log.Printf("match: maker[%d] <=> taker[%d] @ %d qty %d\n",
					t.MakerOrderID, t.TakerOrderID, t.Price, t.Qty)
			}
		}
	})

	start := time.Now()
	for i := 0; i < numOrders; i++ {
		if _, _, err := manager.Submit(randomOrder(uint64(i + 1))); err != nil {
			panic(err)
		}
	}

	elapsed := time.Since(start)

	fmt.Println("--------")
	fmt.Printf("total orders     : %d\n", numOrders)
	fmt.Printf("total matches    : %d\n", totalMatched)
	fmt.Printf("total matched qty: %d\n", totalQty)
	fmt.Printf("time taken       : %s\n", elapsed)
}
