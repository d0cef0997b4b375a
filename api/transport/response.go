package transport

import "encoding/json"

// Envelope is the standard API response wrapper used for both success and
// error payloads. Errors carry the machine-readable Code plus a
// human-readable Detail, mirroring the domain's {detail, code} error pairs.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Detail interface{} `json:"detail,omitempty"`
	Meta   interface{} `json:"meta,omitempty"`
}

// NewSuccess returns a success envelope.
func NewSuccess(data interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
		Meta:   meta,
	}
}

// NewError returns an error envelope with optional metadata.
func NewError(code string, detail interface{}, meta interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Detail: detail,
		Meta:   meta,
	}
}

// String returns the JSON representation (best-effort) for logging purposes.
func (e Envelope) String() string {
	out, err := json.Marshal(e)
	if err != nil {
		return "{}"
	}
	return string(out)
}
