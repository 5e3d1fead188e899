package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldUserID    = "user_id"
	FieldTxnType   = "transaction_type"
	FieldCategory  = "category"
	FieldSource    = "source"
	FieldAmount    = "amount"
	FieldBackend   = "backend"
	FieldPeriod    = "period"
	FieldCacheKey  = "cache_key"
	FieldTxnCount  = "transaction_count"
)

// Components defines standard component names
const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentLedger  = "ledger"
	ComponentStorage = "storage"
	ComponentCache   = "cache"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentBackend = "backend"
)

// Operations defines standard operation names
const (
	OpAppend     = "append"
	OpLoad       = "load"
	OpInvalidate = "invalidate"
	OpMirror     = "mirror"
	OpValidate   = "validate"
	OpStartup    = "startup"
	OpShutdown   = "shutdown"
)
