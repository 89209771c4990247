// Package output writes morph's user-facing lines.
//
// A Printer applies the semantic styles from the styles subpackage when the
// resolved format is terminal and writes plain text otherwise:
//
//	p := output.New(os.Stdout, ui.FormatAuto)
//	p.Header("=== Testing case 1 of 2 ===")
//	p.Error(err)
package output
