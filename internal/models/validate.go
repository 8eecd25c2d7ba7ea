package models

import (
	"fmt"
	"strings"
)

// ValidationKind classifies why a payload was rejected.
type ValidationKind string

const (
	KindMissingField ValidationKind = "missing_field"
	KindEmptyMessage ValidationKind = "empty_message"
	KindTooLong      ValidationKind = "too_long"
)

// ValidationError reports a rejected feedback payload.
type ValidationError struct {
	Kind    ValidationKind
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateMessage checks the decoded request payload and returns the
// trimmed message. maxLen bounds the trimmed length.
func ValidateMessage(payload map[string]any, maxLen int) (string, error) {
	raw, ok := payload["message"]
	if !ok {
		return "", &ValidationError{Kind: KindMissingField, Message: "message field is required"}
	}

	str, ok := raw.(string)
	if !ok {
		return "", &ValidationError{Kind: KindMissingField, Message: "message must be a string"}
	}

	message := strings.TrimSpace(str)
	if message == "" {
		return "", &ValidationError{Kind: KindEmptyMessage, Message: "message cannot be empty"}
	}

	if len([]rune(message)) > maxLen {
		return "", &ValidationError{
			Kind:    KindTooLong,
			Message: fmt.Sprintf("message cannot exceed %d characters", maxLen),
		}
	}

	return message, nil
}
