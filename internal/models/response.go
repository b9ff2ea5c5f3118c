package models

// TextRequest is the body sent to both collaborators
type TextRequest struct {
	Text string `json:"text"`
}

// RedactResponse is the body returned by the redaction service
type RedactResponse struct {
	RedactedText string `json:"redacted_text"`
}

// QueryResponse is the body returned by the query service
type QueryResponse struct {
	ResponseText string `json:"response_text"`
}
