package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/joripage/exchange-core/config"
	redis_wrapper "github.com/joripage/exchange-core/pkg/infra/redis"
	kafkawrapper "github.com/joripage/exchange-core/pkg/kafka_wrapper"
	"github.com/joripage/exchange-core/pkg/marketdata"
	"github.com/joripage/exchange-core/pkg/oms"
	fixgateway "github.com/joripage/exchange-core/pkg/oms/fix"
	riskrule "github.com/joripage/exchange-core/pkg/oms/risk_rule"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	go func() {
		http.ListenAndServe("localhost:6060", nil) // nolint
	}()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

	fixGateway := fixgateway.NewFixGateway(&fixgateway.FixGatewayConfig{
		ConfigFilepath: cfg.Fix.ConfigFilepath,
	})
	omsInstance := oms.NewOMS(fixGateway, omsConfig(cfg.Engine))
	fixGateway.AddOmsInstance(omsInstance)

	if cfg.Nats != nil {
		nc, err := nats.Connect(cfg.Nats.URL)
		if err != nil {
			panic(err)
		}
		js, err := nc.JetStream()
		if err != nil {
			panic(err)
		}
		_, _ = js.AddStream(&nats.StreamConfig{
			Name:     cfg.Nats.Stream,
			Subjects: []string{cfg.Nats.Stream + ".*"},
		})
		omsInstance.SetEventPublisher(oms.NewNatsEventPublisher(js, cfg.Nats.EventSubject))
	}

	if cfg.Kafka != nil {
		producer := kafkawrapper.NewProducer(kafkawrapper.ProducerConfig{
			Brokers: cfg.Kafka.Brokers,
		})
		defer producer.Close() // nolint
		omsInstance.SetTradePublisher(oms.NewKafkaTradePublisher(producer, cfg.Kafka.TradeTopic))
	}

	if cfg.Redis != nil {
		rdb, err := redis_wrapper.InitRedis(cfg.Redis)
		if err != nil {
			panic(err)
		}
		mdCfg := marketdata.Config{}
		if cfg.MarketData != nil {
			mdCfg = marketdata.Config{
				PublishInterval: time.Duration(cfg.MarketData.PublishIntervalMs) * time.Millisecond,
				Depth:           cfg.MarketData.Depth,
				ChannelPrefix:   cfg.MarketData.ChannelPrefix,
			}
		}
		publisher := marketdata.NewPublisher(mdCfg, rdb, omsInstance.Engines())
		go func() {
			if err := publisher.Run(ctx); err != nil && ctx.Err() == nil {
				zap.S().Errorf("market data publisher stopped: %v", err)
			}
		}()
	}

	if err := omsInstance.Start(ctx); err != nil {
		panic(err)
	}
	fmt.Println("Exchange started. Press Ctrl+C to exit.")

	<-sigs
	fmt.Println("Shutting down...")

	omsInstance.Stop()
	cancel()

	fmt.Println("Exited cleanly.")
}

func omsConfig(engine *config.EngineConfig) *oms.Config {
	if engine == nil {
		return nil
	}

	omsCfg := &oms.Config{
		DefaultTickSize: engine.DefaultTickSize,
		TickSizes:       map[string]decimal.Decimal{},
		PriceBands:      map[string]riskrule.PriceBand{},
	}
	for symbol, sc := range engine.Symbols {
		if !sc.TickSize.IsZero() {
			omsCfg.TickSizes[symbol] = sc.TickSize
		}
		if !sc.FloorPrice.IsZero() || !sc.CeilPrice.IsZero() {
			omsCfg.PriceBands[symbol] = riskrule.PriceBand{
				Floor: sc.FloorPrice,
				Ceil:  sc.CeilPrice,
			}
		}
	}
	return omsCfg
}
