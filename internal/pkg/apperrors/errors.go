package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrSchema = errors.New("schema validation failed")

	ErrParse = errors.New("value parse failed")

	ErrJoinIntegrity = errors.New("join integrity violated")

	ErrFeature = errors.New("feature encoding failed")

	ErrInvalidArgument = errors.New("invalid argument")

	ErrInternal = errors.New("internal error")
)

type SchemaError struct {
	Source string
	Column string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("source '%s' is missing required column '%s'", e.Source, e.Column)
}

func NewSchemaError(source, column string) error {
	return fmt.Errorf("%w: %w", ErrSchema, &SchemaError{Source: source, Column: column})
}

type ParseError struct {
	Source string
	Line   int
	Column string
	Value  string
	Cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("source '%s' line %d: cannot parse column '%s' value %q", e.Source, e.Line, e.Column, e.Value)
}

func (e *ParseError) Unwrap() error {
	return e.Cause
}

func NewParseError(source string, line int, column, value string, cause error) error {
	return fmt.Errorf("%w: %w", ErrParse, &ParseError{Source: source, Line: line, Column: column, Value: value, Cause: cause})
}

type JoinError struct {
	CustomerID string
	Reason     string
}

func (e *JoinError) Error() string {
	if e.CustomerID != "" {
		return fmt.Sprintf("join failed for customer '%s': %s", e.CustomerID, e.Reason)
	}
	return fmt.Sprintf("join failed: %s", e.Reason)
}

func NewJoinError(customerID, reason string) error {
	return fmt.Errorf("%w: %w", ErrJoinIntegrity, &JoinError{CustomerID: customerID, Reason: reason})
}

type FeatureError struct {
	Attribute string
	Value     string
}

func (e *FeatureError) Error() string {
	return fmt.Sprintf("unknown category %q for attribute '%s'", e.Value, e.Attribute)
}

func NewFeatureError(attribute, value string) error {
	return fmt.Errorf("%w: %w", ErrFeature, &FeatureError{Attribute: attribute, Value: value})
}

func NewInvalidArgumentError(message string) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, message)
}
