// Package config loads configuration structs from environment variables.
//
// It wraps `github.com/joho/godotenv` and `github.com/caarlos0/env/v11`:
// the default `.env` file is loaded once per process (a missing file is
// fine), then the environment is parsed into any struct annotated with
// `env` tags.
//
// Unlike process-wide config registries, Load parses on every call. The
// package is used from test helpers and short-lived CLI runs where cached
// config would leak between cases.
//
// # Usage
//
//	type APIConfig struct {
//	    BaseURL string        `env:"SCRAPERAPI_BASE_URL" envDefault:"https://api.scraperwiki.com/api/1.0"`
//	    Timeout time.Duration `env:"SCRAPERAPI_TIMEOUT" envDefault:"30s"`
//	}
//
//	var cfg APIConfig
//	if err := config.Load(&cfg); err != nil {
//	    // handle error
//	}
//
// MustLoad panics on failure and suits configuration the program cannot
// start without.
package config
