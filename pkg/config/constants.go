package config

const (
	EnvPrefix = "FREIGHTOPS"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "FREIGHTOPS_DB_DSN"
	EnvDBHost = "FREIGHTOPS_DB_HOST"
	EnvDBUser = "FREIGHTOPS_DB_USER"
	EnvDBName = "FREIGHTOPS_DB_NAME"
)

var requiredDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
