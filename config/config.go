package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/gagliardetto/solana-go"
)

var (
	CachePath  = "./cache/"
	ConfigPath = "./config/"
	TokensFile = ConfigPath + "tokens.json"
	ConfigFile = ConfigPath + "config.json"
	LogPath    = "./logs/"
	ScannerLog = "scanner"
	FeedLog    = "feed"
	NetworkLog = "network"
)

// Defaults for every tunable the scanner reads. The duplicated constants in
// older deployments disagreed with each other, so all of them are config
// fields now.
const (
	DefaultMinProfitBps        = uint64(50)
	DefaultMaxSameTokenRepeats = 1
	DefaultNetworkBaseFee      = uint64(5_000)
	DefaultPriorityFee         = uint64(1_000_000)
	DefaultSafetyMarginPct     = uint64(20)
	DefaultMaxHops             = 3
	DefaultFeedIntervalMs      = uint64(400)
)

type Config struct {
	MinProfitBps        uint64           `json:"min_profit_bps"`
	MaxSameTokenRepeats int              `json:"max_same_token_repeats"`
	NetworkBaseFee      uint64           `json:"network_base_fee"`
	PriorityFee         uint64           `json:"priority_fee"`
	SafetyMarginPct     uint64           `json:"safety_margin_pct"`
	MaxHops             int              `json:"max_hops"`
	TradeAmount         uint64           `json:"trade_amount"`
	BaseToken           solana.PublicKey `json:"base_token"`
	FeedUrl             string           `json:"feed_url"`
	FeedIntervalMs      uint64           `json:"feed_interval_ms"`
	Listen              string           `json:"listen"`
	DingUrl             string           `json:"ding-url"`
	DBUrl               string           `json:"db_url"`
	DBScheme            string           `json:"db_scheme"`
	DBUser              string           `json:"db_user"`
	DBPasswd            string           `json:"db_passwd"`
}

func Load(file string) (*Config, error) {
	infoJson, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	cfg := &Config{}
	if err := json.Unmarshal(infoJson, cfg); err != nil {
		return nil, err
	}
	cfg.fillDefaults()
	if err := cfg.check(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) fillDefaults() {
	if cfg.MinProfitBps == 0 {
		cfg.MinProfitBps = DefaultMinProfitBps
	}
	if cfg.MaxSameTokenRepeats == 0 {
		cfg.MaxSameTokenRepeats = DefaultMaxSameTokenRepeats
	}
	if cfg.NetworkBaseFee == 0 {
		cfg.NetworkBaseFee = DefaultNetworkBaseFee
	}
	if cfg.PriorityFee == 0 {
		cfg.PriorityFee = DefaultPriorityFee
	}
	if cfg.SafetyMarginPct == 0 {
		cfg.SafetyMarginPct = DefaultSafetyMarginPct
	}
	if cfg.MaxHops == 0 {
		cfg.MaxHops = DefaultMaxHops
	}
	if cfg.FeedIntervalMs == 0 {
		cfg.FeedIntervalMs = DefaultFeedIntervalMs
	}
}

func (cfg *Config) check() error {
	if cfg.TradeAmount == 0 {
		return fmt.Errorf("trade_amount is not set")
	}
	if cfg.BaseToken.IsZero() {
		return fmt.Errorf("base_token is not set")
	}
	if cfg.MaxHops < 2 || cfg.MaxHops > 4 {
		return fmt.Errorf("max_hops %d is out of range [2, 4]", cfg.MaxHops)
	}
	return nil
}
