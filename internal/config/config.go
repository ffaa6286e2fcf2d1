package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds configuration values loaded from flags, env, or config file.
type Config struct {
	PoolsEndpoint     string
	PositionsEndpoint string
	BlocksEndpoint    string
	RewardAPRURL      string
	RPCURL            string
	Chain             string
	Project           string
	PoolURLBase       string
	PGDSN             string
	Out               string
	StateFile         string
	MaxAttempts       int
	RetryDelay        time.Duration
	PageSize          int
	FeeWindow         time.Duration
	BlockTolerance    time.Duration
	FallbackBlock     uint64
	MaxConcurrent     int
	Interval          time.Duration
	LogLevel          string
}

// Load merges config file, environment variables, and flags into Config.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("YIELDSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("chain", "moonbeam")
	v.SetDefault("project", "stellaswap-v3")
	v.SetDefault("pool-url-base", "https://app.stellaswap.com/pulsar/add")
	v.SetDefault("out", "./data/yields.jsonl")
	v.SetDefault("state-file", "./data/refresh_state.json")
	v.SetDefault("max-attempts", 3)
	v.SetDefault("retry-delay", time.Second)
	v.SetDefault("page-size", 1000)
	v.SetDefault("fee-window", 24*time.Hour)
	v.SetDefault("block-tolerance", time.Minute)
	v.SetDefault("max-concurrent", 4)
	v.SetDefault("interval", 10*time.Minute)
	v.SetDefault("log-level", "info")

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := Config{
		PoolsEndpoint:     v.GetString("pools-endpoint"),
		PositionsEndpoint: v.GetString("positions-endpoint"),
		BlocksEndpoint:    v.GetString("blocks-endpoint"),
		RewardAPRURL:      v.GetString("reward-apr-url"),
		RPCURL:            v.GetString("rpc"),
		Chain:             v.GetString("chain"),
		Project:           v.GetString("project"),
		PoolURLBase:       v.GetString("pool-url-base"),
		PGDSN:             v.GetString("pg-dsn"),
		Out:               v.GetString("out"),
		StateFile:         v.GetString("state-file"),
		MaxAttempts:       v.GetInt("max-attempts"),
		RetryDelay:        v.GetDuration("retry-delay"),
		PageSize:          v.GetInt("page-size"),
		FeeWindow:         v.GetDuration("fee-window"),
		BlockTolerance:    v.GetDuration("block-tolerance"),
		FallbackBlock:     v.GetUint64("fallback-block"),
		MaxConcurrent:     v.GetInt("max-concurrent"),
		Interval:          v.GetDuration("interval"),
		LogLevel:          v.GetString("log-level"),
	}

	return cfg, nil
}

// ParseTimestamp parses a refresh instant (unix seconds or RFC3339). An empty
// value means "now".
func ParseTimestamp(input string) (time.Time, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return time.Time{}, nil
	}

	if isNumeric(input) {
		seconds, err := strconv.ParseInt(input, 10, 64)
		if err != nil {
			return time.Time{}, err
		}
		return time.Unix(seconds, 0).UTC(), nil
	}

	tm, err := time.Parse(time.RFC3339, input)
	if err != nil {
		return time.Time{}, err
	}
	return tm.UTC(), nil
}

func isNumeric(input string) bool {
	for _, r := range input {
		if r < '0' || r > '9' {
			return false
		}
	}
	return input != ""
}
