package common

// SuccessResponse is the standard success envelope
type SuccessResponse struct {
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ErrorResponse is the standard error envelope. Message carries the
// client-facing text; for tracker rejections that is the tracker's own
// message, verbatim.
type ErrorResponse struct {
	Code    interface{}       `json:"code,omitempty"`
	Message string            `json:"message,omitempty"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ListResponse wraps list payloads
type ListResponse struct {
	Data  interface{} `json:"data"`
	Total int         `json:"total"`
}
