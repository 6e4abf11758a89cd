package config

// EnvPrefix is the envconfig prefix for every setting.
const EnvPrefix = "PRICELIST"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags.
const (
	EnvAppEnv     = "PRICELIST_APP_ENV"
	EnvPort       = "PRICELIST_APP_PORT"
	EnvDBDSN      = "PRICELIST_DB_DSN"
	EnvDBHost     = "PRICELIST_DB_HOST"
	EnvDBUser     = "PRICELIST_DB_USER"
	EnvDBName     = "PRICELIST_DB_NAME"
	EnvRedisURL   = "PRICELIST_REDIS_URL"
	EnvJWTSecret  = "PRICELIST_JWT_SECRET"
	EnvJWTIssuer  = "PRICELIST_JWT_ISSUER"
	EnvJWTExpMins = "PRICELIST_JWT_EXPIRATION_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
