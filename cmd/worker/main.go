package main

import (
	"context"
	"encoding/json"
	"flag"

	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"go.uber.org/zap"

	"github.com/joripage/exchange-core/config"
	postgres_wrapper "github.com/joripage/exchange-core/pkg/infra/postgres"
	kafkawrapper "github.com/joripage/exchange-core/pkg/kafka_wrapper"
	"github.com/joripage/exchange-core/pkg/oms/repo"
	"github.com/joripage/exchange-core/pkg/oms/worker"
)

func main() {
	var configFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}

	configBytes, err := json.MarshalIndent(cfg, "", "   ")
	if err != nil {
		zap.S().Warnf("could not convert config to JSON: %v", err)
	} else {
		zap.S().Debugf("load config %s", string(configBytes))
	}

	ctx := context.Background()

	// NATS
	nc, err := nats.Connect(cfg.Nats.URL)
	if err != nil {
		zap.S().Errorf("connect nats fail with err: %v", err)
		panic(err)
	}
	js, err := nc.JetStream()
	if err != nil {
		panic(err)
	}

	// Ensure stream
	_, _ = js.AddStream(&nats.StreamConfig{
		Name:     cfg.Nats.Stream,
		Subjects: []string{cfg.Nats.Stream + ".*"},
	})

	// init db
	db, err := postgres_wrapper.InitPostgres(cfg.OmsDB)
	if err != nil {
		zap.S().Errorf("init db fail with err: %v", err)
		panic(err)
	}

	// init repo
	sqlRepo := repo.NewRepo(db)

	// Worker
	w := worker.NewWorker(sqlRepo)
	go func() {
		if err := w.StartEventConsumer(ctx, js, cfg.Nats.EventSubject, cfg.Nats.Durable); err != nil {
			zap.S().Errorf("event consumer stopped: %v", err)
		}
	}()

	if cfg.Kafka != nil {
		cg := kafkawrapper.NewConsumerGroup(kafkawrapper.ConsumerConfig{
			Brokers: cfg.Kafka.Brokers,
			GroupID: cfg.Kafka.GroupID,
			Topic:   cfg.Kafka.TradeTopic,
		})
		defer cg.Close() // nolint
		go func() {
			if err := w.StartTradeConsumer(ctx, cg); err != nil {
				zap.S().Errorf("trade consumer stopped: %v", err)
			}
		}()
	}

	select {}
}
