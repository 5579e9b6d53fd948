package config

const (
	EnvPrefix = "SHOPVUE"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	StoreDriverSqlite   = "sqlite"
	StoreDriverPostgres = "postgres"
)
