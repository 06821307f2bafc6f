package schema

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Builder is the interface implemented by all schema builders.
type Builder interface {
	// Build serializes the schema, returning an error if it is inconsistent.
	Build() (json.RawMessage, error)

	// MustBuild is like Build but panics on error.
	MustBuild() json.RawMessage

	node() *schemaNode
}

type schemaNode struct {
	Type                 string                 `json:"type"`
	Description          string                 `json:"description,omitempty"`
	Enum                 []any                  `json:"enum,omitempty"`
	Properties           map[string]*schemaNode `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	AdditionalProperties *bool                  `json:"additionalProperties,omitempty"`
	enumSet              bool
}

var (
	// ErrEmptyEnum is returned when an enum has no values.
	ErrEmptyEnum = errors.New("schema: enum requires at least one value")

	// ErrDuplicateEnum is returned when an enum lists a value twice.
	ErrDuplicateEnum = errors.New("schema: duplicate enum value")

	// ErrNoProperties is returned when an object has no fields.
	ErrNoProperties = errors.New("schema: object requires at least one field")
)

// ValidationError represents an inconsistent schema.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("schema: field %q: %v", e.Field, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (s *schemaNode) validate() error {
	switch s.Type {
	case "string":
		if s.enumSet && len(s.Enum) == 0 {
			return &ValidationError{Err: ErrEmptyEnum}
		}
		seen := make(map[any]bool, len(s.Enum))
		for _, v := range s.Enum {
			if seen[v] {
				return &ValidationError{Err: fmt.Errorf("%w: %v", ErrDuplicateEnum, v)}
			}
			seen[v] = true
		}
	case "object":
		if len(s.Properties) == 0 {
			return &ValidationError{Err: ErrNoProperties}
		}
		for name, prop := range s.Properties {
			if err := prop.validate(); err != nil {
				var ve *ValidationError
				if errors.As(err, &ve) && ve.Field == "" {
					return &ValidationError{Field: name, Err: ve.Err}
				}
				return &ValidationError{Field: name, Err: err}
			}
		}
	}
	return nil
}

func build(n *schemaNode) (json.RawMessage, error) {
	if err := n.validate(); err != nil {
		return nil, err
	}
	return json.Marshal(n)
}

func mustBuild(n *schemaNode) json.RawMessage {
	data, err := build(n)
	if err != nil {
		panic(err)
	}
	return data
}
