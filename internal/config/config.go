//-------------------------------------------------------------------------
//
// procgen - procurement data synthesizer
//
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package config handles configuration management for procgen.
// Configuration is loaded from config files and CLI flags (no environment
// variables). CLI flags take precedence over config file values.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for procgen.
type Config struct {
	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `mapstructure:"log_level"`

	// Generator holds configuration for the generate subcommand.
	Generator GeneratorConfig `mapstructure:"generator"`

	// Quality holds configuration for the validate subcommand.
	Quality QualityConfig `mapstructure:"quality"`
}

// GeneratorConfig holds every knob of the dataset synthesizer.
type GeneratorConfig struct {
	// Seed drives the single shared random stream.
	Seed uint64 `mapstructure:"seed"`

	// StartDate and EndDate bound the simulation window (YYYY-MM-DD).
	StartDate string `mapstructure:"start_date"`
	EndDate   string `mapstructure:"end_date"`

	// OutputDir is where the parquet tables are written.
	OutputDir string `mapstructure:"output_dir"`

	// Volume settings.
	NumVendors   int `mapstructure:"num_vendors"`
	NumMaterials int `mapstructure:"num_materials"`
	NumOrders    int `mapstructure:"num_orders"`
	NumContracts int `mapstructure:"num_contracts"`

	// Vendor spend concentration.
	ParetoSplit      float64 `mapstructure:"pareto_split"`
	ParetoSpendShare float64 `mapstructure:"pareto_spend_share"`

	// Preferred vendors.
	PreferredVendorRatio   float64    `mapstructure:"preferred_vendor_ratio"`
	PreferredPriceDiscount [2]float64 `mapstructure:"preferred_price_discount"`

	// Blocked vendors.
	BlockedVendorRate float64 `mapstructure:"blocked_vendor_rate"`

	// BlockedWindowDays is the trailing window in which blocked vendors may
	// not have order activity. Kept independent from ContractRunwayDays even
	// though both default to 90.
	BlockedWindowDays int `mapstructure:"blocked_window_days"`

	// Contracts.
	ContractDiscountRange [2]float64 `mapstructure:"contract_discount_range"`
	ContractDurationRange [2]int     `mapstructure:"contract_duration_range"`

	// ContractRunwayDays keeps contract validity starts at least this many
	// days before the simulation end.
	ContractRunwayDays int `mapstructure:"contract_runway_days"`

	// Pricing.
	PriceVolatility float64 `mapstructure:"price_volatility"`

	// Large orders.
	LargeOrderProb       float64 `mapstructure:"large_order_prob"`
	LargeOrderValueRange [2]int  `mapstructure:"large_order_value_range"`

	// Items per order: log-normal (mu, sigma) clipped to [1, MaxItemsPerOrder].
	ItemCountMu      float64 `mapstructure:"item_count_mu"`
	ItemCountSigma   float64 `mapstructure:"item_count_sigma"`
	MaxItemsPerOrder int     `mapstructure:"max_items_per_order"`

	// Delivery performance.
	DeliveryLateRate   float64   `mapstructure:"delivery_late_rate"`
	DeliveryDelayProbs []float64 `mapstructure:"delivery_delay_probs"`
	EarlyDeliveryBias  float64   `mapstructure:"early_delivery_bias"`

	// Invoice processing.
	InvoiceGenerationRate  float64 `mapstructure:"invoice_generation_rate"`
	InvoiceProcessingRange [2]int  `mapstructure:"invoice_processing_range"`

	// Seasonality.
	SeasonalityQ4Factor float64 `mapstructure:"seasonality_q4_factor"`

	// Organizational structure.
	CompanyCodes         []string  `mapstructure:"company_codes"`
	Currencies           []string  `mapstructure:"currencies"`
	CurrencyDistribution []float64 `mapstructure:"currency_distribution"`
	PurchasingOrgs       []string  `mapstructure:"purchasing_orgs"`
	PurchasingGroups     []string  `mapstructure:"purchasing_groups"`
	Plants               []string  `mapstructure:"plants"`

	// MaterialCategories is a nested configuration table, keyed by internal
	// category code.
	MaterialCategories map[string]MaterialCategory `mapstructure:"material_categories"`
}

// MaterialCategory describes one material category's generation rules.
type MaterialCategory struct {
	// PriceRange bounds the log-uniform base price draw.
	PriceRange [2]float64 `mapstructure:"price_range"`

	// UnitOptions is the unit-of-measure choice set.
	UnitOptions []string `mapstructure:"unit_options"`

	// WeightRange bounds gross weight; zero/zero marks intangibles.
	WeightRange [2]float64 `mapstructure:"weight_range"`

	// MaterialType is the type tag (FERT, HALB, HAWA, ROH, DIEN).
	MaterialType string `mapstructure:"material_type"`

	// Share is the fraction of the material count this category receives.
	// The category with Share 0 absorbs the rounding remainder.
	Share float64 `mapstructure:"share"`

	// Display overrides the published category code; empty means the
	// internal key is used as-is.
	Display string `mapstructure:"display"`
}

// QualityConfig holds configuration for the validation engine.
type QualityConfig struct {
	// DataDir is the directory holding the parquet tables.
	DataDir string `mapstructure:"data_dir"`

	// ReportPath, when set, receives the structured result as JSON.
	ReportPath string `mapstructure:"report_path"`

	// Tolerances and acceptance bands.
	NetValueTolerance      float64    `mapstructure:"net_value_tolerance"`
	ContractPriceTolerance float64    `mapstructure:"contract_price_tolerance"`
	InvoiceAmountTolerance float64    `mapstructure:"invoice_amount_tolerance"`
	ParetoShareBand        [2]float64 `mapstructure:"pareto_share_band"`
	ContractRateBand       [2]float64 `mapstructure:"contract_rate_band"`
	LateDeliveryBand       [2]float64 `mapstructure:"late_delivery_band"`

	// BlockedWindowDays mirrors the generator knob for the recent-activity
	// check.
	BlockedWindowDays int `mapstructure:"blocked_window_days"`

	// DateRangeYears bounds the order-date sanity check.
	DateRangeYears [2]int `mapstructure:"date_range_years"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		LogLevel: "info",
		Generator: GeneratorConfig{
			Seed:                   4242,
			StartDate:              "2020-01-01",
			EndDate:                "2024-12-31",
			OutputDir:              "data",
			NumVendors:             1000,
			NumMaterials:           5000,
			NumOrders:              10000,
			NumContracts:           2000,
			ParetoSplit:            0.20,
			ParetoSpendShare:       0.80,
			PreferredVendorRatio:   0.10,
			PreferredPriceDiscount: [2]float64{0.10, 0.15},
			BlockedVendorRate:      0.05,
			BlockedWindowDays:      90,
			ContractDiscountRange:  [2]float64{0.05, 0.15},
			ContractDurationRange:  [2]int{365, 1095},
			ContractRunwayDays:     90,
			PriceVolatility:        0.15,
			LargeOrderProb:         0.05,
			LargeOrderValueRange:   [2]int{15000, 50000},
			ItemCountMu:            1.2,
			ItemCountSigma:         0.5,
			MaxItemsPerOrder:       15,
			DeliveryLateRate:       0.25,
			DeliveryDelayProbs:     []float64{0.70, 0.20, 0.10},
			EarlyDeliveryBias:      0.10,
			InvoiceGenerationRate:  0.95,
			InvoiceProcessingRange: [2]int{5, 30},
			SeasonalityQ4Factor:    1.3,
			CompanyCodes:           []string{"1000", "2000", "3000"},
			Currencies:             []string{"USD", "EUR", "GBP"},
			CurrencyDistribution:   []float64{0.6, 0.3, 0.1},
			PurchasingOrgs:         []string{"ORG1", "ORG2", "ORG3"},
			PurchasingGroups:       []string{"GRP1", "GRP2", "GRP3", "GRP4"},
			Plants:                 []string{"1000", "2000", "3000", "4000"},
			MaterialCategories:     DefaultMaterialCategories(),
		},
		Quality: QualityConfig{
			DataDir:                "data",
			NetValueTolerance:      0.01,
			ContractPriceTolerance: 0.05,
			InvoiceAmountTolerance: 0.02,
			ParetoShareBand:        [2]float64{0.70, 0.90},
			ContractRateBand:       [2]float64{0.60, 0.80},
			LateDeliveryBand:       [2]float64{0.20, 0.35},
			BlockedWindowDays:      90,
			DateRangeYears:         [2]int{2020, 2024},
		},
	}
}

// DefaultMaterialCategories returns the built-in category table.
// The SERV share is left at zero so it absorbs the rounding remainder and
// the partition always sums to the configured material count.
func DefaultMaterialCategories() map[string]MaterialCategory {
	return map[string]MaterialCategory{
		"ELECT_F": {
			PriceRange:   [2]float64{1000, 10000},
			UnitOptions:  []string{"PC", "EA"},
			WeightRange:  [2]float64{1.0, 20.0},
			MaterialType: "FERT",
			Share:        0.20,
			Display:      "ELECT",
		},
		"ELECT_P": {
			PriceRange:   [2]float64{100, 1000},
			UnitOptions:  []string{"PC", "EA"},
			WeightRange:  [2]float64{0.1, 2.0},
			MaterialType: "HALB",
			Share:        0.15,
			Display:      "ELECT",
		},
		"OFFICE": {
			PriceRange:   [2]float64{1, 500},
			UnitOptions:  []string{"EA", "BOX", "PAK"},
			WeightRange:  [2]float64{0.1, 5.0},
			MaterialType: "HAWA",
			Share:        0.30,
		},
		"RAW": {
			PriceRange:   [2]float64{50, 5000},
			UnitOptions:  []string{"KG", "L", "M", "TON"},
			WeightRange:  [2]float64{10.0, 1000.0},
			MaterialType: "ROH",
			Share:        0.25,
		},
		"SERV": {
			PriceRange:   [2]float64{500, 50000},
			UnitOptions:  []string{"AU", "HR", "DAY"},
			WeightRange:  [2]float64{0, 0},
			MaterialType: "DIEN",
			Share:        0,
		},
	}
}

// Load reads configuration from config files.
// Config file locations (in order of precedence):
// 1. Path specified by configFile parameter
// 2. ./procgen.yaml
// 3. ~/.config/procgen/config.yaml
func Load(configFile string) (*Config, error) {
	v := viper.New()

	v.SetConfigName("procgen")
	v.SetConfigType("yaml")

	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "procgen"))
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
	}

	// Read config file (ignore if not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Start with defaults
	cfg := DefaultConfig()

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return cfg, nil
}

// SimulationWindow parses the configured date range.
func (g *GeneratorConfig) SimulationWindow() (start, end time.Time, err error) {
	start, err = time.Parse("2006-01-02", g.StartDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start_date: %w", err)
	}
	end, err = time.Parse("2006-01-02", g.EndDate)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end_date: %w", err)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start_date %s is not before end_date %s", g.StartDate, g.EndDate)
	}
	return start, end, nil
}

// ValidateGenerator checks configuration required for the generate command.
func (c *Config) ValidateGenerator() error {
	g := &c.Generator
	if _, _, err := g.SimulationWindow(); err != nil {
		return err
	}
	if g.NumVendors < 1 {
		return fmt.Errorf("num_vendors must be at least 1")
	}
	if g.NumMaterials < 1 {
		return fmt.Errorf("num_materials must be at least 1")
	}
	if g.NumOrders < 1 {
		return fmt.Errorf("num_orders must be at least 1")
	}
	if g.NumContracts < 0 {
		return fmt.Errorf("num_contracts must be non-negative")
	}
	if g.ParetoSplit <= 0 || g.ParetoSplit >= 1 {
		return fmt.Errorf("pareto_split must be in (0, 1)")
	}
	if g.ParetoSpendShare <= 0 || g.ParetoSpendShare >= 1 {
		return fmt.Errorf("pareto_spend_share must be in (0, 1)")
	}
	if g.MaxItemsPerOrder < 1 {
		return fmt.Errorf("max_items_per_order must be at least 1")
	}
	if len(g.DeliveryDelayProbs) != 3 {
		return fmt.Errorf("delivery_delay_probs must have exactly 3 entries")
	}
	if len(g.Currencies) != len(g.CurrencyDistribution) {
		return fmt.Errorf("currency_distribution must match currencies in length")
	}
	if g.ContractDurationRange[0] >= g.ContractDurationRange[1] {
		return fmt.Errorf("contract_duration_range must be an increasing pair")
	}
	if len(g.MaterialCategories) == 0 {
		return fmt.Errorf("material_categories must not be empty")
	}
	if g.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}
	return nil
}

// ValidateQuality checks configuration required for the validate command.
func (c *Config) ValidateQuality() error {
	q := &c.Quality
	if q.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	if q.NetValueTolerance <= 0 {
		return fmt.Errorf("net_value_tolerance must be positive")
	}
	if q.InvoiceAmountTolerance <= 0 {
		return fmt.Errorf("invoice_amount_tolerance must be positive")
	}
	if q.ParetoShareBand[0] >= q.ParetoShareBand[1] {
		return fmt.Errorf("pareto_share_band must be an increasing pair")
	}
	return nil
}
