package logging

// Field names shared by every component so that log output can be filtered
// consistently.
const (
	FieldComponent  = "component"
	FieldOperation  = "operation"
	FieldSlot       = "slot"
	FieldPattern    = "pattern"
	FieldCategory   = "category"
	FieldParty      = "party"
	FieldUPIHandle  = "upi_handle"
	FieldAmount     = "amount"
	FieldMethod     = "method"
	FieldDirection  = "direction"
	FieldStrategy   = "strategy"
	FieldReason     = "reason"
	FieldSource     = "source"
	FieldBackend    = "backend"
	FieldCount      = "count"
	FieldDelimiter  = "delimiter"
	FieldInputFile  = "input_file"
	FieldOutputFile = "output_file"
	FieldDuration   = "duration_ms"
)
