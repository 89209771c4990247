// Package reducer drives a template's Reducer through one run.
//
// The Engine owns the reducer instance together with the project name and the
// generation-time self references (the reducer sources and the reducer SDK
// dependency). It resolves the parameter tree against an AnswerSource,
// exposes the removal lists and rewrites file contents. Apply performs the
// whole reduction on a directory:
//
//	engine := reducer.New(r, reducer.Options{ProjectName: "myapp", ManifestFile: "package.json", Indent: 4})
//	if err := engine.ResolveParameters(ctx, answers); err != nil {
//		return err
//	}
//	report, err := reducer.Apply(ctx, engine, dir)
//
// Removal always precedes content replacement, so removed paths never reach
// ReduceFile.
package reducer
