package types

import (
	"github.com/arthur-debert/morph/pkg/errors"
)

// ParameterType selects how a parameter is asked and what value it yields
type ParameterType string

const (
	// TypeText yields a string
	TypeText ParameterType = "text"
	// TypeNumber yields a float64
	TypeNumber ParameterType = "number"
	// TypeConfirm yields a bool
	TypeConfirm ParameterType = "confirm"
	// TypeRadio yields the string value of exactly one choice
	TypeRadio ParameterType = "radio"
	// TypeCheckbox yields a []string of the selected choice values
	TypeCheckbox ParameterType = "checkbox"
)

// Valid reports whether t is one of the known parameter types
func (t ParameterType) Valid() bool {
	switch t {
	case TypeText, TypeNumber, TypeConfirm, TypeRadio, TypeCheckbox:
		return true
	}
	return false
}

// HasChoices reports whether the type is answered by picking from Choices
func (t ParameterType) HasChoices() bool {
	return t == TypeRadio || t == TypeCheckbox
}

// Choice is one option of a radio or checkbox parameter
type Choice struct {
	Value       string
	Description string
	// Checked marks the default selection
	Checked bool
}

// ConfigParameter is a single configurable choice.
//
// Name must be unique across every parameter emitted during one resolution;
// a repeated name overwrites the earlier answer.
type ConfigParameter struct {
	Name        string
	Description string
	Type        ParameterType
	Choices     []Choice
	Default     any
}

// Validate reports reducer programming errors in the parameter definition
func (p ConfigParameter) Validate() error {
	if p.Name == "" {
		return errors.Newf(errors.ErrParameterInvalid, "parameter %q has no name", p.Description)
	}
	if !p.Type.Valid() {
		return errors.Newf(errors.ErrParameterInvalid, "parameter %s has unknown type %q", p.Name, p.Type).
			WithDetail("parameter", p.Name)
	}
	if p.Type.HasChoices() && len(p.Choices) == 0 {
		return errors.Newf(errors.ErrParameterInvalid, "parameter %s of type %s has no choices", p.Name, p.Type).
			WithDetail("parameter", p.Name)
	}
	return nil
}

// Prompt returns the text shown to the user, falling back to the name
func (p ConfigParameter) Prompt() string {
	if p.Description != "" {
		return p.Description
	}
	return p.Name
}

// CheckedValues returns the values of the pre-checked choices, in order
func (p ConfigParameter) CheckedValues() []string {
	var values []string
	for _, c := range p.Choices {
		if c.Checked {
			values = append(values, c.Value)
		}
	}
	return values
}
