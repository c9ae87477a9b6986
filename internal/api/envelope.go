package api

import (
	"github.com/danielgtaylor/huma/v2"
)

// EnvelopeVersion is the wire version of the response envelope. Bump
// only with a coordinated frontend release; the field is named "v" and
// clients match on it exactly.
const EnvelopeVersion = 1

// APIEnvelope wraps every response body in a consistent structure.
type APIEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v" doc:"Envelope version"`
	Success bool   `json:"success" doc:"Whether the request succeeded"`
	Data    any    `json:"data,omitempty" doc:"Response payload"`
	Error   string `json:"error,omitempty" doc:"Error message when success is false"`
}

// APIErrorEnvelope is the detailed error shape used when an error
// carries a machine-readable code or structured details.
type APIErrorEnvelope struct { //nolint:revive // API prefix is intentional for clarity
	Version int    `json:"v" doc:"Envelope version"`
	Success bool   `json:"success" doc:"Always false"`
	Code    string `json:"code" doc:"Machine-readable error code"`
	Message string `json:"message" doc:"Human-readable error message"`
	Details any    `json:"details,omitempty" doc:"Additional error details"`
}

// EnvelopeTransformer wraps response bodies in the API envelope.
// Registered as a huma transformer so handlers return plain DTOs.
func EnvelopeTransformer(_ huma.Context, status string, v any) (any, error) {
	// Detailed errors keep their code and structured details.
	if apiErr, ok := v.(*APIError); ok {
		if apiErr.Code != "" || apiErr.Details != nil {
			return APIErrorEnvelope{
				Version: EnvelopeVersion,
				Success: false,
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			}, nil
		}
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   apiErr.Message,
		}, nil
	}

	if err, ok := v.(error); ok {
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	if isErrorStatus(status) {
		return APIEnvelope{
			Version: EnvelopeVersion,
			Success: false,
		}, nil
	}

	return APIEnvelope{
		Version: EnvelopeVersion,
		Success: true,
		Data:    v,
	}, nil
}

// isErrorStatus reports whether the status string is a 4xx or 5xx code.
func isErrorStatus(status string) bool {
	return len(status) > 0 && (status[0] == '4' || status[0] == '5')
}
