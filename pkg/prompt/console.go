package prompt

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/arthur-debert/morph/pkg/errors"
	"github.com/arthur-debert/morph/pkg/logging"
	"github.com/arthur-debert/morph/pkg/types"
	"github.com/pterm/pterm"
)

var log = logging.GetLogger("prompt")

// Prompter is the terminal interaction Console is built on
type Prompter interface {
	Select(text string, options []string, def string) (string, error)
	MultiSelect(text string, options []string, defs []string) ([]string, error)
	Confirm(text string, def bool) (bool, error)
	Text(text string, def string) (string, error)
	Warn(text string)
}

// Console answers parameters interactively
type Console struct {
	prompter Prompter
}

// NewConsole creates a console answer source backed by pterm. onInterrupt
// runs when the user presses Ctrl+C inside a prompt.
func NewConsole(onInterrupt func()) *Console {
	return &Console{prompter: &ptermPrompter{interrupt: onInterrupt}}
}

// NewConsoleWith creates a console answer source over p
func NewConsoleWith(p Prompter) *Console {
	return &Console{prompter: p}
}

// Answer asks for one parameter and returns its value: a choice value for
// radio, the checked choice values for checkbox, a bool for confirm, a
// float64 for number and a string for text.
func (c *Console) Answer(ctx context.Context, p types.ConfigParameter) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	value, err := c.ask(ctx, p)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrapf(err, errors.ErrResolve, "prompt for %q failed", p.Name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	log.Debug().Str("param", p.Name).Interface("value", value).Msg("Answered")
	return value, nil
}

func (c *Console) ask(ctx context.Context, p types.ConfigParameter) (any, error) {
	text := p.Prompt()
	switch p.Type {
	case types.TypeRadio:
		labels := choiceLabels(p.Choices)
		picked, err := c.prompter.Select(text, labels.options, labels.label(radioDefault(p)))
		if err != nil {
			return nil, err
		}
		return labels.value(picked), nil

	case types.TypeCheckbox:
		labels := choiceLabels(p.Choices)
		var defs []string
		for _, v := range p.CheckedValues() {
			defs = append(defs, labels.label(v))
		}
		picked, err := c.prompter.MultiSelect(text, labels.options, defs)
		if err != nil {
			return nil, err
		}
		values := make([]string, 0, len(picked))
		for _, label := range picked {
			values = append(values, labels.value(label))
		}
		return values, nil

	case types.TypeConfirm:
		def, _ := p.Default.(bool)
		return c.prompter.Confirm(text, def)

	case types.TypeNumber:
		def := defaultString(p.Default)
		for {
			raw, err := c.prompter.Text(text, def)
			if err != nil {
				return nil, err
			}
			raw = strings.TrimSpace(raw)
			if raw == "" {
				raw = def
			}
			if raw == "" {
				return nil, nil
			}
			n, err := strconv.ParseFloat(raw, 64)
			if err == nil {
				return n, nil
			}
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			c.prompter.Warn(fmt.Sprintf("%q is not a number", raw))
		}

	default:
		raw, err := c.prompter.Text(text, defaultString(p.Default))
		if err != nil {
			return nil, err
		}
		if raw == "" {
			return defaultString(p.Default), nil
		}
		return raw, nil
	}
}

func radioDefault(p types.ConfigParameter) string {
	if checked := p.CheckedValues(); len(checked) > 0 {
		return checked[0]
	}
	if def, ok := p.Default.(string); ok {
		for _, c := range p.Choices {
			if c.Value == def {
				return def
			}
		}
	}
	if len(p.Choices) > 0 {
		return p.Choices[0].Value
	}
	return ""
}

func defaultString(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// labels maps displayed option text to choice values. Duplicate descriptions
// get the value appended so every option stays distinct.
type labels struct {
	options []string
	byLabel map[string]string
	byValue map[string]string
}

func choiceLabels(choices []types.Choice) labels {
	l := labels{byLabel: map[string]string{}, byValue: map[string]string{}}
	counts := map[string]int{}
	for _, c := range choices {
		counts[display(c)]++
	}
	for _, c := range choices {
		label := display(c)
		if counts[label] > 1 {
			label = fmt.Sprintf("%s (%s)", label, c.Value)
		}
		l.options = append(l.options, label)
		l.byLabel[label] = c.Value
		l.byValue[c.Value] = label
	}
	return l
}

func display(c types.Choice) string {
	if c.Description != "" {
		return c.Description
	}
	return c.Value
}

func (l labels) value(label string) string {
	if v, ok := l.byLabel[label]; ok {
		return v
	}
	return label
}

func (l labels) label(value string) string {
	return l.byValue[value]
}

type ptermPrompter struct {
	interrupt func()
}

func (p *ptermPrompter) onInterrupt() {
	if p.interrupt != nil {
		p.interrupt()
	}
}

func (p *ptermPrompter) Select(text string, options []string, def string) (string, error) {
	printer := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithMaxHeight(len(options)).
		WithOnInterruptFunc(p.onInterrupt)
	if def != "" {
		printer = printer.WithDefaultOption(def)
	}
	return printer.Show(text)
}

func (p *ptermPrompter) MultiSelect(text string, options []string, defs []string) ([]string, error) {
	return pterm.DefaultInteractiveMultiselect.
		WithOptions(options).
		WithDefaultOptions(defs).
		WithMaxHeight(len(options)).
		WithOnInterruptFunc(p.onInterrupt).
		Show(text)
}

func (p *ptermPrompter) Confirm(text string, def bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.
		WithDefaultValue(def).
		WithOnInterruptFunc(p.onInterrupt).
		Show(text)
}

func (p *ptermPrompter) Text(text string, def string) (string, error) {
	return pterm.DefaultInteractiveTextInput.
		WithDefaultValue(def).
		WithOnInterruptFunc(p.onInterrupt).
		Show(text)
}

func (p *ptermPrompter) Warn(text string) {
	pterm.Warning.Println(text)
}
