// Package sandbox loads a template's reducer module in a restricted Go
// interpreter.
//
// A template ships a TemplateReducer.go file in package main exposing
//
//	func NewReducer(ctx types.Context) *types.Module
//
// The file is evaluated by yaegi with only the types package and an
// allowlisted subset of the standard library available. Imports are checked
// with go/parser before any code runs, so a reducer asking for os, os/exec,
// net or unsafe fails to load instead of failing halfway through a run.
package sandbox
