package config

import (
	"log"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port     string `envconfig:"PORT" default:"8080"`
	DBDSN    string `envconfig:"DB_DSN" default:"bakerypos.db"` // sqlite file in project root
	LogFile  string `envconfig:"LOG_FILE" default:"./bakerypos.log"`
	Currency string `envconfig:"CURRENCY" default:"RWF"` // display code on receipts and summaries
}

func Load() Config {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("[config] %v", err)
	}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s CURRENCY=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.Currency)
	return cfg
}
