package api

// GJSON paths for the collaborator response bodies
const (
	PathRedactedText = "redacted_text"
	PathResponseText = "response_text"

	// Error bodies: {"detail": "..."} or a validation list
	// {"detail": [{"msg": "...", ...}]}
	PathErrorDetail    = "detail"
	PathErrorDetailMsg = "detail.0.msg"
)

// Body size limits
const (
	maxResponseBody = 4 << 20
	maxErrorBody    = 4 << 10
)
