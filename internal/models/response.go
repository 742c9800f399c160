package models

// ResponseStatusSuccess is the status value the listing service uses for completed writes.
const ResponseStatusSuccess = "Success"

// ResponseModel is the envelope returned by write endpoints.
type ResponseModel struct {
	Status     string `json:"status"`
	Message    string `json:"message"`
	CreationID string `json:"creationId,omitempty"`
	Exception  string `json:"exception,omitempty"`
}

// Succeeded reports whether the envelope signals success.
func (r ResponseModel) Succeeded() bool {
	return r.Status == ResponseStatusSuccess
}

// ErrorMessage is the `{message}` body returned on failed auth calls.
type ErrorMessage struct {
	Message string `json:"message"`
}
