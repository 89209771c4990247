// Package harness replays a template's test matrix.
//
// The matrix comes from the reducer's TestConfigSet, read once from the first
// copy of the template. Each case runs the generation pipeline in a fresh
// directory named test<unix-millis> with answers taken from the case instead
// of the console. A passing case's directory is deleted. The first failing
// case stops the run: its directory is kept as evidence together with a
// transcript of every answer given, and a CaseError is returned.
//
// Remote templates are downloaded once into a staging directory under the
// cache and every case copies from there.
package harness
