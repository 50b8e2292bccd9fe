package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "COTIZA"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "COTIZA_APP_ENV"
	EnvPort     = "COTIZA_APP_PORT"
	EnvLogLevel = "COTIZA_LOG_LEVEL"

	EnvDBDSN      = "COTIZA_DB_DSN"
	EnvDBHost     = "COTIZA_DB_HOST"
	EnvDBPort     = "COTIZA_DB_PORT"
	EnvDBUser     = "COTIZA_DB_USER"
	EnvDBPassword = "COTIZA_DB_PASSWORD"
	EnvDBName     = "COTIZA_DB_NAME"

	EnvRedisURL = "COTIZA_REDIS_URL"

	EnvGCPProjectID = "COTIZA_GCP_PROJECT_ID"
	EnvGCSBucket    = "COTIZA_GCS_BUCKET_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
