package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Ledger   LedgerConfig   `mapstructure:"ledger"`
	Wallet   WalletConfig   `mapstructure:"wallet"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Host       string        `mapstructure:"host"`
	Port       int           `mapstructure:"port"`
	Mode       string        `mapstructure:"mode"`        // debug, release, test
	RateLimit  int64         `mapstructure:"rate_limit"`  // mutating requests per client per window; needs redis
	RateWindow time.Duration `mapstructure:"rate_window"`
}

// Ledger drivers.
const (
	LedgerDriverEthereum = "ethereum"
	LedgerDriverMemory   = "memory"
)

type LedgerConfig struct {
	Driver          string        `mapstructure:"driver"`
	RPCURL          string        `mapstructure:"rpc_url"`
	ContractAddress string        `mapstructure:"contract_address"`
	ChainID         int64         `mapstructure:"chain_id"`
	ConfirmTimeout  time.Duration `mapstructure:"confirm_timeout"` // Upper bound on waiting for a receipt
}

// Wallet drivers.
const (
	WalletDriverKeystore = "keystore"
	WalletDriverStatic   = "static"
)

type WalletConfig struct {
	Driver      string   `mapstructure:"driver"`
	KeystoreDir string   `mapstructure:"keystore_dir"`
	Passphrase  string   `mapstructure:"passphrase"` // Unlocks every keystore account at startup when set
	Accounts    []string `mapstructure:"accounts"`   // static driver only
}

// StorageConfig configures the Pinata pinning service.
type StorageConfig struct {
	APIURL     string        `mapstructure:"api_url"`
	JWT        string        `mapstructure:"jwt"`
	GatewayURL string        `mapstructure:"gateway_url"`
	CacheBust  bool          `mapstructure:"cache_bust"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxSize    int64         `mapstructure:"max_size"` // bytes accepted by the upload endpoint
}
type DatabaseConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`

	// Timeout bounds every limiter round trip; on expiry requests pass.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Addr returns the Redis address string.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Pretty bool   `mapstructure:"pretty"` // human-readable output (dev only)
}

// Load reads configuration from file and environment variables.
// Environment variables override file values. Prefix: MKT_.
// Nested keys use underscore: MKT_LEDGER_RPC_URL, MKT_STORAGE_JWT, etc.
func Load(path string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.rate_limit", 30)
	v.SetDefault("server.rate_window", "1m")
	v.SetDefault("ledger.driver", LedgerDriverEthereum)
	v.SetDefault("ledger.rpc_url", "http://127.0.0.1:8545")
	v.SetDefault("ledger.contract_address", "")
	v.SetDefault("ledger.chain_id", 31337)
	v.SetDefault("ledger.confirm_timeout", "5m")
	v.SetDefault("wallet.driver", WalletDriverKeystore)
	v.SetDefault("wallet.keystore_dir", "./keystore")
	v.SetDefault("wallet.passphrase", "")
	v.SetDefault("wallet.accounts", []string{})
	v.SetDefault("storage.api_url", "https://api.pinata.cloud")
	v.SetDefault("storage.jwt", "")
	v.SetDefault("storage.gateway_url", "https://gateway.pinata.cloud")
	v.SetDefault("storage.cache_bust", true)
	v.SetDefault("storage.timeout", "60s")
	v.SetDefault("storage.max_size", 10<<20)
	v.SetDefault("database.enabled", false)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "postgres")
	v.SetDefault("database.dbname", "marketplace")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 10)
	v.SetDefault("database.min_conns", 1)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.timeout", "250ms")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.pretty", false)

	// File config
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables: MKT_LEDGER_RPC_URL -> ledger.rpc_url
	v.SetEnvPrefix("MKT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required, env vars can suffice)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the settings the selected drivers depend on.
func (c *Config) Validate() error {
	var errs []error

	switch c.Ledger.Driver {
	case LedgerDriverEthereum:
		if c.Ledger.RPCURL == "" {
			errs = append(errs, errors.New("ledger.rpc_url is required"))
		}
		if !common.IsHexAddress(c.Ledger.ContractAddress) {
			errs = append(errs, fmt.Errorf("ledger.contract_address %q is not an address", c.Ledger.ContractAddress))
		}
		if c.Ledger.ChainID <= 0 {
			errs = append(errs, errors.New("ledger.chain_id must be positive"))
		}
		if c.Wallet.Driver != WalletDriverKeystore {
			errs = append(errs, errors.New("ledger.driver ethereum needs wallet.driver keystore"))
		}
	case LedgerDriverMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown ledger.driver %q", c.Ledger.Driver))
	}

	switch c.Wallet.Driver {
	case WalletDriverKeystore:
		if c.Wallet.KeystoreDir == "" {
			errs = append(errs, errors.New("wallet.keystore_dir is required"))
		}
	case WalletDriverStatic:
		for _, a := range c.Wallet.Accounts {
			if !common.IsHexAddress(a) {
				errs = append(errs, fmt.Errorf("wallet.accounts: %q is not an address", a))
			}
		}
	default:
		errs = append(errs, fmt.Errorf("unknown wallet.driver %q", c.Wallet.Driver))
	}

	return errors.Join(errs...)
}
