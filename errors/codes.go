package errors

// ErrorCode identifies a stable, machine-readable error class carried in API
// responses alongside the HTTP status.
type ErrorCode int32

const (
	ErrorCode_INTERNAL             ErrorCode = 0
	ErrorCode_INVALID_ARGUMENT     ErrorCode = 1
	ErrorCode_NOT_FOUND            ErrorCode = 2
	ErrorCode_ALREADY_EXISTS       ErrorCode = 3
	ErrorCode_STATE_CONFLICT       ErrorCode = 4
	ErrorCode_TRANSCRIPTION_FAILED ErrorCode = 10
	ErrorCode_EXTRACTION_FAILED    ErrorCode = 11
	ErrorCode_TRACKER_REJECTED     ErrorCode = 12
	ErrorCode_TRACKER_UNAVAILABLE  ErrorCode = 13
	ErrorCode_STORAGE_FAILED       ErrorCode = 20
	ErrorCode_QUEUE_FAILED         ErrorCode = 21
	ErrorCode_DB_FAILED            ErrorCode = 22
	ErrorCode_HTTP_OK              ErrorCode = 200
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_INTERNAL:             "INTERNAL",
	ErrorCode_INVALID_ARGUMENT:     "INVALID_ARGUMENT",
	ErrorCode_NOT_FOUND:            "NOT_FOUND",
	ErrorCode_ALREADY_EXISTS:       "ALREADY_EXISTS",
	ErrorCode_STATE_CONFLICT:       "STATE_CONFLICT",
	ErrorCode_TRANSCRIPTION_FAILED: "TRANSCRIPTION_FAILED",
	ErrorCode_EXTRACTION_FAILED:    "EXTRACTION_FAILED",
	ErrorCode_TRACKER_REJECTED:     "TRACKER_REJECTED",
	ErrorCode_TRACKER_UNAVAILABLE:  "TRACKER_UNAVAILABLE",
	ErrorCode_STORAGE_FAILED:       "STORAGE_FAILED",
	ErrorCode_QUEUE_FAILED:         "QUEUE_FAILED",
	ErrorCode_DB_FAILED:            "DB_FAILED",
	ErrorCode_HTTP_OK:              "OK",
}

// String returns the symbolic name of the code
func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNKNOWN"
}
