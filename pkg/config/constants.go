package config

const (
	EnvPrefix = "PCFORGE"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv     = "PCFORGE_APP_ENV"
	EnvPort       = "PCFORGE_APP_PORT"
	EnvDBDSN      = "PCFORGE_DB_DSN"
	EnvDBHost     = "PCFORGE_DB_HOST"
	EnvDBUser     = "PCFORGE_DB_USER"
	EnvDBName     = "PCFORGE_DB_NAME"
	EnvRedisURL   = "PCFORGE_REDIS_URL"
	EnvJWTSecret  = "PCFORGE_JWT_SECRET"
	EnvJWTIssuer  = "PCFORGE_JWT_ISSUER"
	EnvJWTExpMins = "PCFORGE_JWT_EXPIRATION_MINUTES"

	EnvRefreshTokenTTLMinutes = "PCFORGE_REFRESH_TOKEN_TTL_MINUTES"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
