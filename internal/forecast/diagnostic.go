package forecast

import "github.com/google/uuid"

// Level is the severity of a Diagnostic.
type Level string

const (
	LevelCritical Level = "CRITICAL"
	LevelWarning  Level = "WARNING"
)

// Diagnostic codes.
const (
	CodeLinkBothSet       = "LINK_BOTH_SET"
	CodeLinkMissing       = "LINK_MISSING"
	CodeUnknownInterval   = "UNKNOWN_INTERVAL"
	CodeRecurrenceCapped  = "RECURRENCE_CAPPED"
	CodeDuplicateQuota    = "DUPLICATE_QUOTA"
	CodeInvalidAmount     = "INVALID_AMOUNT"
	CodeInvalidDate       = "INVALID_DATE"
	CodeZeroPay           = "ZERO_PAY"
	CodeUnknownStatus     = "UNKNOWN_STATUS"
	CodeMissingRate       = "MISSING_BLENDED_RATE"
	CodeInvertedDateRange = "INVERTED_DATE_RANGE"
)

// Diagnostic is a non-fatal data-quality finding. A forecast is always produced;
// diagnostics tell the caller which rows were clamped, skipped or reinterpreted.
type Diagnostic struct {
	Level    Level
	Code     string
	Message  string
	RecordID uuid.UUID
}
