package sandbox

import (
	"reflect"

	"github.com/arthur-debert/morph/pkg/types"
	"github.com/traefik/yaegi/interp"
)

// TypesImportPath is the import path reducer modules use for the contract
const TypesImportPath = "github.com/arthur-debert/morph/pkg/types"

// Symbols exposes the reducer contract to interpreted code, keyed the way
// yaegi extract keys its tables.
var Symbols = interp.Exports{
	TypesImportPath + "/types": {
		// functions
		"Dynamic":        reflect.ValueOf(types.Dynamic),
		"Exact":          reflect.ValueOf(types.Exact),
		"Many":           reflect.ValueOf(types.Many),
		"NewConfigStore": reflect.ValueOf(types.NewConfigStore),
		"None":           reflect.ValueOf(types.None),
		"One":            reflect.ValueOf(types.One),
		"Param":          reflect.ValueOf(types.Param),
		"Params":         reflect.ValueOf(types.Params),
		"Pattern":        reflect.ValueOf(types.Pattern),
		"Regexp":         reflect.ValueOf(types.Regexp),
		"Replace":        reflect.ValueOf(types.Replace),

		// constants
		"TypeCheckbox": reflect.ValueOf(types.TypeCheckbox),
		"TypeConfirm":  reflect.ValueOf(types.TypeConfirm),
		"TypeNumber":   reflect.ValueOf(types.TypeNumber),
		"TypeRadio":    reflect.ValueOf(types.TypeRadio),
		"TypeText":     reflect.ValueOf(types.TypeText),

		// types
		"Choice":          reflect.ValueOf((*types.Choice)(nil)),
		"ConfigParameter": reflect.ValueOf((*types.ConfigParameter)(nil)),
		"ConfigStore":     reflect.ValueOf((*types.ConfigStore)(nil)),
		"Configuration":   reflect.ValueOf((*types.Configuration)(nil)),
		"ContentReplacer": reflect.ValueOf((*types.ContentReplacer)(nil)),
		"Context":         reflect.ValueOf((*types.Context)(nil)),
		"Expansion":       reflect.ValueOf((*types.Expansion)(nil)),
		"Matcher":         reflect.ValueOf((*types.Matcher)(nil)),
		"Module":          reflect.ValueOf((*types.Module)(nil)),
		"Node":            reflect.ValueOf((*types.Node)(nil)),
		"ParameterType":   reflect.ValueOf((*types.ParameterType)(nil)),
		"ReplaceFunc":     reflect.ValueOf((*types.ReplaceFunc)(nil)),
		"Resolver":        reflect.ValueOf((*types.Resolver)(nil)),
		"TestCase":        reflect.ValueOf((*types.TestCase)(nil)),
	},
}
