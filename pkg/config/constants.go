package config

const EnvPrefix = "MERCHORDER"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv = "MERCHORDER_APP_ENV"
	EnvPort   = "MERCHORDER_APP_PORT"

	EnvDBDSN  = "MERCHORDER_DB_DSN"
	EnvDBHost = "MERCHORDER_DB_HOST"
	EnvDBUser = "MERCHORDER_DB_USER"
	EnvDBName = "MERCHORDER_DB_NAME"

	EnvRedisURL = "MERCHORDER_REDIS_URL"

	EnvSessionSecret  = "MERCHORDER_SESSION_SECRET"
	EnvSessionIssuer  = "MERCHORDER_SESSION_ISSUER"
	EnvSessionExpMins = "MERCHORDER_SESSION_EXPIRATION_MINUTES"

	EnvGCPProjectID = "MERCHORDER_GCP_PROJECT_ID"

	EnvPubSubOrdersTopic = "MERCHORDER_PUBSUB_ORDERS_TOPIC"
	EnvPubSubOrdersSub   = "MERCHORDER_PUBSUB_ORDERS_SUBSCRIPTION"

	EnvOrdersCollection = "MERCHORDER_ORDERS_COLLECTION"
)

// legacyDBEnvVars are required together when no DSN is provided.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
