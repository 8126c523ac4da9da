package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// BaseRates holds the configured base interest rates. CD rates are keyed
// by term length in months ("6", "12", "24", ...).
type BaseRates struct {
	Savings float64            `koanf:"savings"`
	Loan    float64            `koanf:"loan"`
	CD      map[string]float64 `koanf:"cd"`
}

type Config struct {
	SQLitePath      string    `koanf:"sqlitePath"`
	Port            string    `koanf:"port"`
	SalesTaxPercent float64   `koanf:"salesTaxPercent"`
	TaxCollectorID  string    `koanf:"taxCollectorID"`
	BaseRates       BaseRates `koanf:"baseRates"`
}

const defaultConfigFile = "config.yaml"

// Load reads config.yaml (path overridable via LEDGER_CONFIG) and then
// applies LEDGER_-prefixed environment variables on top, so a container
// setup can run without a config file at all.
func Load() (*Config, error) {
	k := koanf.New(".")

	cfg := Config{
		SQLitePath:      "db.sqlite",
		Port:            "9446",
		SalesTaxPercent: 0.05,
		TaxCollectorID:  "0000000000",
		BaseRates: BaseRates{
			Savings: 0.02,
			Loan:    0.08,
			CD:      map[string]float64{"6": 0.03, "12": 0.04, "24": 0.05},
		},
	}

	path := defaultConfigFile
	if envPath := os.Getenv("LEDGER_CONFIG"); envPath != "" {
		path = envPath
	}

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	err := k.Load(env.Provider("LEDGER_", ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "LEDGER_")), "__", ".")
	}), nil)
	if err != nil {
		return nil, err
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
