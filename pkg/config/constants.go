package config

// EnvPrefix is passed to envconfig; individual fields carry full variable
// names so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvDBDSN  = "VELOWAY_DB_DSN"
	EnvDBHost = "VELOWAY_DB_HOST"
	EnvDBUser = "VELOWAY_DB_USER"
	EnvDBName = "VELOWAY_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
