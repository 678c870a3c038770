package config

import (
	"os"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	postgres_wrapper "github.com/joripage/exchange-core/pkg/infra/postgres"
	redis_wrapper "github.com/joripage/exchange-core/pkg/infra/redis"
)

type AppConfig struct {
	ServiceName string                           `yaml:"service_name"`
	Engine      *EngineConfig                    `yaml:"engine"`
	OmsDB       *postgres_wrapper.PostgresConfig `yaml:"oms_db"`
	Redis       *redis_wrapper.RedisConfig       `yaml:"redis"`
	Kafka       *KafkaConfig                     `yaml:"kafka"`
	Nats        *NatsConfig                      `yaml:"nats"`
	Fix         *FixConfig                       `yaml:"fix"`
	MarketData  *MarketDataConfig                `yaml:"market_data"`
}

type EngineConfig struct {
	DefaultTickSize decimal.Decimal         `yaml:"default_tick_size"`
	Symbols         map[string]SymbolConfig `yaml:"symbols"`
}

type SymbolConfig struct {
	TickSize   decimal.Decimal `yaml:"tick_size"`
	FloorPrice decimal.Decimal `yaml:"floor_price"`
	CeilPrice  decimal.Decimal `yaml:"ceil_price"`
}

type KafkaConfig struct {
	Brokers    []string `yaml:"brokers"`
	TradeTopic string   `yaml:"trade_topic"`
	GroupID    string   `yaml:"group_id"`
}

type NatsConfig struct {
	URL          string `yaml:"url"`
	Stream       string `yaml:"stream"`
	EventSubject string `yaml:"event_subject"`
	Durable      string `yaml:"durable"`
}

type FixConfig struct {
	ConfigFilepath string `yaml:"config_filepath"`
}

type MarketDataConfig struct {
	PublishIntervalMs int    `yaml:"publish_interval_ms"`
	Depth             int    `yaml:"depth"`
	ChannelPrefix     string `yaml:"channel_prefix"`
}

// Load load config from file and environment variables.
func Load(filePath string) (*AppConfig, error) {
	if len(filePath) == 0 {
		filePath = os.Getenv("CONFIG_FILE")
	}

	fields := []interface{}{
		"func",
		"config.readFromFile",
		"filePath",
		filePath,
	}

	sugar := zap.S().With(fields...)

	sugar.Debug("Load config...")
	zap.S().Debugf("CONFIG_FILE=%v", filePath)

	configBytes, err := os.ReadFile(filePath)
	if err != nil {
		sugar.Error("Failed to load config file")
		return nil, err
	}
	configBytes = []byte(os.ExpandEnv(string(configBytes)))

	cfg := &AppConfig{}

	err = yaml.Unmarshal(configBytes, cfg)
	if err != nil {
		sugar.Error("Failed to parse config file")
		return nil, err
	}

	zap.S().Debugf("config: %+v", cfg)

	return cfg, nil
}
