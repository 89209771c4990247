// Package generate turns a template into a new project.
//
// A run moves through four states:
//
//	checking -> copying -> copied -> done
//
// Remote sources skip copying: they are fetched in checking and move straight
// to copied once the tree is in memory. A Guard watches the state and removes
// the destination when the run ends in copying or copied for any reason,
// whether a returned error, a panic or a canceled context. Nothing is removed
// in checking, because the destination does not exist yet, or in done.
//
// The package never changes the process working directory and installs no
// signal handlers. Callers translate signals into context cancellation.
package generate
