package constants

// Envelope is the wire shape of every response body.
type Envelope struct {
	Status  int    `json:"status"`
	Data    any    `json:"data"`
	Message string `json:"message"`
}

// NewResponse builds the standard response envelope
func NewResponse(status int, data any, message string) Envelope {
	return Envelope{
		Status:  status,
		Data:    data,
		Message: message,
	}
}

// NewErrorResponse builds an envelope with no payload
func NewErrorResponse(status int, message string) Envelope {
	return Envelope{
		Status:  status,
		Data:    nil,
		Message: message,
	}
}
