package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with snake_case JSON keys
// and human readable durations.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenAudience string   `json:"token_audience"`
		TokenDuration Duration `json:"token_duration"`
		Version       string   `json:"version"`
		LogLevel      string   `json:"log_level"`
	} `json:"app,omitempty"`

	Identity struct {
		MaxFailedAccessAttempts int      `json:"max_failed_access_attempts"`
		LockoutDuration         Duration `json:"lockout_duration"`
		BcryptCost              int      `json:"bcrypt_cost"`
	} `json:"identity,omitempty"`

	Storage struct {
		DB struct {
			Driver       string `json:"driver"`
			DSN          string `json:"dsn"`
			MaxOpenConns int    `json:"max_open_conns"`
			MaxIdleConns int    `json:"max_idle_conns"`
		} `json:"db,omitempty"`

		Redis struct {
			Address  string `json:"address"`
			Password string `json:"password"`
			DB       int    `json:"db"`

			FailureWindow Duration `json:"failure_window"`
		} `json:"redis,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress     string   `json:"http_address"`
		RequestTimeout  Duration `json:"request_timeout"`
		ReadTimeout     Duration `json:"read_timeout"`
		WriteTimeout    Duration `json:"write_timeout"`
		ShutdownTimeout Duration `json:"shutdown_timeout"`
		RateLimit       int      `json:"rate_limit"`
	} `json:"server,omitempty"`

	Tracing struct {
		Enabled     bool   `json:"enabled"`
		Endpoint    string `json:"endpoint"`
		ServiceName string `json:"service_name"`
		Insecure    bool   `json:"insecure"`
	} `json:"tracing,omitempty"`

	Adapter struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var j StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&j); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:  j.App.TokenSignKey,
			TokenIssuer:   j.App.TokenIssuer,
			TokenAudience: j.App.TokenAudience,
			TokenDuration: time.Duration(j.App.TokenDuration),
			Version:       j.App.Version,
			LogLevel:      j.App.LogLevel,
		},
		Identity: Identity{
			MaxFailedAccessAttempts: j.Identity.MaxFailedAccessAttempts,
			LockoutDuration:         time.Duration(j.Identity.LockoutDuration),
			BcryptCost:              j.Identity.BcryptCost,
		},
		Storage: Storage{
			DB: DB{
				Driver:       j.Storage.DB.Driver,
				DSN:          j.Storage.DB.DSN,
				MaxOpenConns: j.Storage.DB.MaxOpenConns,
				MaxIdleConns: j.Storage.DB.MaxIdleConns,
			},
			Redis: Redis{
				Address:  j.Storage.Redis.Address,
				Password: j.Storage.Redis.Password,
				DB:       j.Storage.Redis.DB,

				FailureWindow: time.Duration(j.Storage.Redis.FailureWindow),
			},
		},
		Server: Server{
			HTTPAddress:     j.Server.HTTPAddress,
			RequestTimeout:  time.Duration(j.Server.RequestTimeout),
			ReadTimeout:     time.Duration(j.Server.ReadTimeout),
			WriteTimeout:    time.Duration(j.Server.WriteTimeout),
			ShutdownTimeout: time.Duration(j.Server.ShutdownTimeout),
			RateLimit:       j.Server.RateLimit,
		},
		Tracing: Tracing{
			Enabled:     j.Tracing.Enabled,
			Endpoint:    j.Tracing.Endpoint,
			ServiceName: j.Tracing.ServiceName,
			Insecure:    j.Tracing.Insecure,
		},
		Adapter: Adapter{
			HTTPAddress:    j.Adapter.HTTPAddress,
			RequestTimeout: time.Duration(j.Adapter.RequestTimeout),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
