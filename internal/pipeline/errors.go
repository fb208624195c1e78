package pipeline

import "fmt"

// Stage names used in errors and audit metadata.
const (
	StageValidation    = "validation"
	StageStorage       = "storage"
	StageTranscription = "transcription"
	StageStructuring   = "structuring"
	StageReport        = "report"
	StageSOAP          = "soap"
	StageCoding        = "coding"
	StageScales        = "scales"
	StageRiskScan      = "risk_scan"
)

// ValidationError rejects a request before any pipeline work happens.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %s", e.Reason)
}

// ProviderError wraps a failure of an external model provider, tagged
// with the pipeline stage that called it.
type ProviderError struct {
	Stage string
	Err   error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider failed at %s: %v", e.Stage, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }

// NotFoundError reports a missing session or artifact.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// ConfigurationError reports a missing or unusable runtime setting.
type ConfigurationError struct {
	Setting string
	Reason  string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error (%s): %s", e.Setting, e.Reason)
}

// StorageError wraps a persistence or filesystem failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
