package shipsync

import "fmt"

type SourceNotFoundError struct {
	Path string
}

func (e SourceNotFoundError) Error() string {
	return fmt.Sprintf("Source file was not found: %s.", e.Path)
}

type SourceNotProvidedError struct{}

func (e SourceNotProvidedError) Error() string {
	return "Record source was not provided."
}

type RecordNotProvidedError struct{}

func (e RecordNotProvidedError) Error() string {
	return "Shipment record was not provided."
}

type RecordValidationError struct {
	Field string
	Msg   string
}

func (e RecordValidationError) Error() string {
	return fmt.Sprintf("Field '%s' is invalid: %s.", e.Field, e.Msg)
}

type InvalidOperationTypeError struct {
	Value string
}

func (e InvalidOperationTypeError) Error() string {
	return fmt.Sprintf("Operation type must be 'create' or 'update', got '%s'.", e.Value)
}

type ConfigNotResolvedError struct {
	Path  string
	Cause error
}

func (e ConfigNotResolvedError) Error() string {
	return fmt.Sprintf("Failed to resolve configuration from %s: %v.", e.Path, e.Cause)
}

type MissingConfigFieldError struct {
	Field string
}

func (e MissingConfigFieldError) Error() string {
	return fmt.Sprintf("Required configuration field '%s' is missing.", e.Field)
}

type RequestSigningError struct {
	Cause error
}

func (e RequestSigningError) Error() string {
	return fmt.Sprintf("Failed to sign request: %v.", e.Cause)
}

type ReportWriteError struct {
	Path  string
	Cause error
}

func (e ReportWriteError) Error() string {
	return fmt.Sprintf("Failed to write report to %s: %v.", e.Path, e.Cause)
}

type UnsupportedCapabilityError struct {
	Capability string
}

func (e UnsupportedCapabilityError) Error() string {
	return fmt.Sprintf("Unknown capability: %s.", e.Capability)
}
