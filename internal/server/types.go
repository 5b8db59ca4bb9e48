package server

// EvaluateRequest is the JSON body of POST /evaluate.
type EvaluateRequest struct {
	// Op is the operation name, e.g. "divmod". Defaults to "parse".
	Op string `json:"op"`
	// Operands are polynomials in textual notation, e.g. "x^2 - 1".
	Operands []string `json:"operands"`
}

// Response is the JSON response of a successful evaluation.
type Response struct {
	// Op is the operation that was applied.
	Op string `json:"op"`
	// Operands echoes the request operands.
	Operands []string `json:"operands"`
	// Results holds the formatted results: one value for most operations,
	// the quotient and the remainder for divmod.
	Results []string `json:"results"`
	// Duration is the formatted evaluation time.
	Duration string `json:"duration"`
}

// ErrorResponse is the JSON response of a failed request.
type ErrorResponse struct {
	// Error is the HTTP status text.
	Error string `json:"error"`
	// Message describes the failure.
	Message string `json:"message,omitempty"`
}

// requestError is a malformed request, carrying its HTTP status.
type requestError struct {
	Message    string
	StatusCode int
}

func (e requestError) Error() string {
	return e.Message
}
