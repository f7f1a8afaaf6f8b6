package config

// EnvPrefix namespaces every environment variable consumed by the service.
const EnvPrefix = "tesouraria"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "TESOURARIA_DB_DSN"
	EnvDBHost = "TESOURARIA_DB_HOST"
	EnvDBUser = "TESOURARIA_DB_USER"
	EnvDBName = "TESOURARIA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
