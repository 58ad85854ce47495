// Package config loads application configuration from file and environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds the full application configuration.
type Config struct {
	Data   DataConfig   `yaml:"data" mapstructure:"data"`
	Server ServerConfig `yaml:"server" mapstructure:"server"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// DataConfig points at the raw municipal source files.
type DataConfig struct {
	CambridgeCrimeCSV   string `yaml:"cambridge_crime_csv" mapstructure:"cambridge_crime_csv"`
	CambridgeShapefile  string `yaml:"cambridge_shapefile" mapstructure:"cambridge_shapefile"`
	BostonCrimeCSV      string `yaml:"boston_crime_csv" mapstructure:"boston_crime_csv"`
	BostonShapefile     string `yaml:"boston_shapefile" mapstructure:"boston_shapefile"`
	BostonPopXLSX       string `yaml:"boston_pop_xlsx" mapstructure:"boston_pop_xlsx"`
	SomervilleCrimeCSV  string `yaml:"somerville_crime_csv" mapstructure:"somerville_crime_csv"`
	SomervilleShapefile string `yaml:"somerville_shapefile" mapstructure:"somerville_shapefile"`
	CensusBlocks        string `yaml:"census_blocks" mapstructure:"census_blocks"`

	// SomervilleTotalPop is the 2022 citywide total apportioned across
	// neighborhoods by area.
	SomervilleTotalPop float64 `yaml:"somerville_total_pop" mapstructure:"somerville_total_pop"`
}

// ServerConfig configures the bundle API server.
type ServerConfig struct {
	Port          int     `yaml:"port" mapstructure:"port"`
	RatePerSecond float64 `yaml:"rate_per_second" mapstructure:"rate_per_second"`
	RateBurst     int     `yaml:"rate_burst" mapstructure:"rate_burst"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("CRIMEDATA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.rate_per_second", 20)
	v.SetDefault("server.rate_burst", 40)
	v.SetDefault("data.cambridge_crime_csv", "data/cambridge_crime.csv")
	v.SetDefault("data.cambridge_shapefile", "data/cambridge_neighborhoods.shp")
	v.SetDefault("data.boston_crime_csv", "data/boston_crime.csv")
	v.SetDefault("data.boston_shapefile", "data/boston_neighborhoods.shp")
	v.SetDefault("data.boston_pop_xlsx", "data/boston_population.xlsx")
	v.SetDefault("data.somerville_crime_csv", "data/somerville_crime.csv")
	v.SetDefault("data.somerville_shapefile", "data/somerville_neighborhoods.shp")
	v.SetDefault("data.census_blocks", "data/ma_census_blocks.shp")
	v.SetDefault("data.somerville_total_pop", 81045)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
