package log

// Common field names for structured logging
const (
	FieldComponent   = "component"
	FieldWallet      = "wallet"
	FieldError       = "error"
	FieldDescription = "description"
	FieldAmountCents = "amount_cents"
	FieldCategory    = "category"
	FieldKind        = "kind"
	FieldKey         = "key"
	FieldCount       = "count"
	FieldPath        = "path"
)

// Components defines standard component names
const (
	ComponentApp       = "app"
	ComponentSession   = "session"
	ComponentStorage   = "storage"
	ComponentRecurring = "recurring"
	ComponentExport    = "export"
	ComponentWorker    = "worker"
)
