package types

// RequestStatus is the lifecycle phase of the current conversion attempt.
type RequestStatus string

const (
	StatusIdle       RequestStatus = "idle"
	StatusProcessing RequestStatus = "processing"
	StatusSucceeded  RequestStatus = "succeeded"
	StatusFailed     RequestStatus = "failed"
)

// RequestState is the state of the current conversion attempt. Message is
// only set when Status is StatusFailed and carries the status code or
// transport error text.
type RequestState struct {
	Status  RequestStatus `json:"status" yaml:"status"`
	Message string        `json:"message,omitempty" yaml:"message,omitempty"`
}

// Idle returns the initial request state.
func Idle() RequestState { return RequestState{Status: StatusIdle} }

// Processing returns the in-flight request state.
func Processing() RequestState { return RequestState{Status: StatusProcessing} }

// Succeeded returns the state of a completed attempt.
func Succeeded() RequestState { return RequestState{Status: StatusSucceeded} }

// Failed returns the state of a failed attempt with the given message.
func Failed(message string) RequestState {
	return RequestState{Status: StatusFailed, Message: message}
}

// InFlight reports whether a request is outstanding.
func (s RequestState) InFlight() bool {
	return s.Status == StatusProcessing
}
