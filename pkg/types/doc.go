// Package types defines the reducer contract: the capability set a template
// implements so morph can customize it.
//
// A template describes its customization points as a tree of Node values.
// A Node is either a concrete ConfigParameter (a question) or a dynamic
// Resolver that, given the Configuration accumulated so far, expands to
// nothing, to one more parameter, or to a further sequence of nodes. This
// lets later questions depend on earlier answers.
//
// Once configuration is resolved the Reducer reports which directories and
// files to delete, which manifest dependencies to prune, and which
// ContentReplacer rules rewrite the remaining files.
//
// Reducers written as Go source inside a template return a *Module from their
// constructor; Module.Reducer adapts it to the Reducer interface.
package types
