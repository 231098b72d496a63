package models

// ValidationErrorType classifies why an upload placeholder cannot proceed.
type ValidationErrorType string

const (
	ValidationErrorUnsupportedType ValidationErrorType = "file-type-unsupported"
	ValidationErrorTooLarge        ValidationErrorType = "file-too-large"
	ValidationErrorUploadFailed    ValidationErrorType = "upload-failed"
)
