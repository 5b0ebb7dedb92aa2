package dto

import "time"

// ErrorResponse is the JSON body of every non-2xx response.
//
// Fields:
//   - Message: short description of what failed.
//   - ErrorDetails: underlying error text, when there is one.
//   - Path: request path that failed.
//   - Timestamp: when the error was produced (UTC).
type ErrorResponse struct {
	Message      string    `json:"message" example:"Failed to load market overview"`
	ErrorDetails string    `json:"error,omitempty" example:"store unavailable: get market overview: context deadline exceeded"`
	Path         string    `json:"path,omitempty" example:"/api/market/overview/2024-01-02"`
	Timestamp    time.Time `json:"timestamp" example:"2024-01-02T15:04:05Z"`
}

// Error implements the error interface so an ErrorResponse can travel through gin's error list.
func (e ErrorResponse) Error() string {
	if e.ErrorDetails == "" {
		return e.Message
	}
	return e.Message + ": " + e.ErrorDetails
}

// NewErrorResponse builds an ErrorResponse stamped with the current time.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{
		Message:   message,
		Timestamp: time.Now().UTC(),
	}
	if err != nil {
		resp.ErrorDetails = err.Error()
	}
	return resp
}

// WithPath returns a copy of e carrying the request path.
func (e ErrorResponse) WithPath(path string) ErrorResponse {
	e.Path = path
	return e
}
