// Package models contains data types and constants for the redact/query pipeline.
package models

// Default collaborator endpoints
const (
	DefaultRedactEndpoint = "http://127.0.0.1:8000/redact/"
	DefaultQueryEndpoint  = "http://127.0.0.1:8001/query/"
)

// Message roles used by exports
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Contract violation messages
const (
	MsgRedactNoText = "Redaction API returned no text"
	MsgQueryNoText  = "Query API returned no text"
)

// DefaultHeaders returns the headers sent with every collaborator request
func DefaultHeaders() map[string]string {
	return map[string]string{
		"Content-Type": "application/json",
		"Accept":       "application/json",
	}
}
