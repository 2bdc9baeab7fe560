// Package display provides terminal UI utilities for progress, warnings and tables.
//
// # Progress Indicators
//
//	progress := display.NewProgressIndicator(os.Stdout, len(subjects))
//	progress.Start()
//	for _, s := range subjects {
//	    progress.Step(s.RawName)
//	    // ... run transform ...
//	}
//	progress.Complete(failed)
//
// # Warning Messages
//
//	display.WarnMissingResources("Foo", "/Applications/Foo.app/Contents/Resources").Display(os.Stderr)
//
// # Tables
//
//	table := display.Table{Headers: []string{"run", "size"}, Rows: rows}
//	table.Render(os.Stdout, display.ColorEnabled(os.Stdout))
//
// Progress and warnings always emit ANSI codes; tables only when asked to.
package display
