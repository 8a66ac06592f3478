package constants

// Enterprise subtree served by every deployment
const (
	OID_ENTERPRISE = "1.3.6.1.4.1.9999"
)

// Scalar OIDs (shared namespace, values differ per deployment)
const (
	OID_SYS_NAME           = OID_ENTERPRISE + ".1.1.0"
	OID_SYS_STATUS         = OID_ENTERPRISE + ".1.2.0"
	OID_CPU_USAGE          = OID_ENTERPRISE + ".1.3.0"
	OID_MEMORY_USAGE       = OID_ENTERPRISE + ".1.4.0"
	OID_AVG_LATENCY        = OID_ENTERPRISE + ".1.5.0"
	OID_TOTAL_ERRORS       = OID_ENTERPRISE + ".1.6.0"
	OID_LOG_LEVEL          = OID_ENTERPRISE + ".1.7.0" // read-write
	OID_UPTIME             = OID_ENTERPRISE + ".1.8.0"
	OID_REQUESTS_PROCESSED = OID_ENTERPRISE + ".1.9.0"
	OID_NETWORK_IN         = OID_ENTERPRISE + ".1.10.0"
	OID_NETWORK_OUT        = OID_ENTERPRISE + ".1.11.0"
	OID_IF_NUMBER          = OID_ENTERPRISE + ".2.1.0"
	OID_SERVICE_COUNT      = OID_ENTERPRISE + ".3.1.0"
	OID_ACTIVE_SERVICES    = OID_ENTERPRISE + ".3.2.0"
)

// Metric names accepted by one-shot mode
const (
	METRIC_SYS_NAME           = "sysName"
	METRIC_SYS_STATUS         = "sysStatus"
	METRIC_CPU_USAGE          = "cpuUsage"
	METRIC_MEMORY_USAGE       = "memoryUsage"
	METRIC_AVG_LATENCY        = "avgLatency"
	METRIC_TOTAL_ERRORS       = "totalErrors"
	METRIC_LOG_LEVEL          = "logLevel"
	METRIC_UPTIME             = "uptime"
	METRIC_REQUESTS_PROCESSED = "requestsProcessed"
	METRIC_NETWORK_IN         = "networkInBytes"
	METRIC_NETWORK_OUT        = "networkOutBytes"
	METRIC_IF_NUMBER          = "ifNumber"
	METRIC_SERVICE_COUNT      = "serviceCount"
	METRIC_ACTIVE_SERVICES    = "activeServices"
)

// Protocol replies
const (
	REPLY_NO_SUCH_INSTANCE = "No Such Instance"
	REPLY_INVALID_REQUEST  = "Error: Invalid request"
	REPLY_SET_REJECTED     = "Error: OID is read-only or invalid value"
	REPLY_ERROR_PREFIX     = "Error: "
	REPLY_PONG             = "PONG"
	REPLY_UNKNOWN_METRIC   = "Unknown metric"
	STATUS_UP              = "UP"
)

// Service keys
const (
	SERVICE_AUTH          = "auth"
	SERVICE_CACHE         = "cache"
	SERVICE_DATABASE      = "database"
	SERVICE_LOAD_BALANCER = "load-balancer"
	SERVICE_WEB_SERVER    = "web-server"
	SERVICE_GENERIC       = "generic"
)

// Defaults
const (
	DEFAULT_SERVICE       = SERVICE_GENERIC
	DEFAULT_LOG_LEVEL     = "INFO"
	DEFAULT_OTLP_INTERVAL = 30 // seconds
)

// File paths
const (
	CONFIG_DIR_NAME   = "/.snmpagent"
	SYSTEM_CONFIG_DIR = "/etc/snmpagent"
	LOG_FILE_PATTERN  = "/tmp/snmpagent-%s.log"
	ENV_PREFIX        = "SNMPAGENT"
)
