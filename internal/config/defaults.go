package config

import "time"

// Default values applied by [StructuredConfig.applyDefaults].
const (
	DefaultDBDriver                = DriverPostgres
	DefaultMaxOpenConns            = 10
	DefaultMaxIdleConns            = 4
	DefaultTokenIssuer             = "fornecedor-api"
	DefaultTokenAudience           = "http://localhost"
	DefaultTokenDuration           = time.Hour
	DefaultMaxFailedAccessAttempts = 5
	DefaultLockoutDuration         = 5 * time.Minute
	DefaultBcryptCost              = 10
	DefaultRedisFailureWindow      = 15 * time.Minute
	DefaultHTTPAddress             = "localhost:8080"
	DefaultRequestTimeout          = 30 * time.Second
	DefaultReadTimeout             = 10 * time.Second
	DefaultWriteTimeout            = 30 * time.Second
	DefaultShutdownTimeout         = 10 * time.Second
	DefaultRateLimit               = 20
	DefaultServiceName             = "fornecedor-api"
	DefaultAdapterRequestTimeout   = 15 * time.Second
)

// Supported database/sql driver names.
const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

func (cfg *StructuredConfig) applyDefaults() {
	setDefault(&cfg.Storage.DB.Driver, DefaultDBDriver)
	setDefault(&cfg.Storage.DB.MaxOpenConns, DefaultMaxOpenConns)
	setDefault(&cfg.Storage.DB.MaxIdleConns, DefaultMaxIdleConns)
	setDefault(&cfg.Storage.Redis.FailureWindow, DefaultRedisFailureWindow)

	setDefault(&cfg.App.TokenIssuer, DefaultTokenIssuer)
	setDefault(&cfg.App.TokenAudience, DefaultTokenAudience)
	setDefault(&cfg.App.TokenDuration, DefaultTokenDuration)

	setDefault(&cfg.Identity.MaxFailedAccessAttempts, DefaultMaxFailedAccessAttempts)
	setDefault(&cfg.Identity.LockoutDuration, DefaultLockoutDuration)
	setDefault(&cfg.Identity.BcryptCost, DefaultBcryptCost)

	setDefault(&cfg.Server.HTTPAddress, DefaultHTTPAddress)
	setDefault(&cfg.Server.RequestTimeout, DefaultRequestTimeout)
	setDefault(&cfg.Server.ReadTimeout, DefaultReadTimeout)
	setDefault(&cfg.Server.WriteTimeout, DefaultWriteTimeout)
	setDefault(&cfg.Server.ShutdownTimeout, DefaultShutdownTimeout)
	setDefault(&cfg.Server.RateLimit, DefaultRateLimit)

	setDefault(&cfg.Tracing.ServiceName, DefaultServiceName)

	setDefault(&cfg.Adapter.RequestTimeout, DefaultAdapterRequestTimeout)
}

func setDefault[T comparable](field *T, value T) {
	var zero T
	if *field == zero {
		*field = value
	}
}
