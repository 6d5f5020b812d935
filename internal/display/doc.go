// Package display formats user-facing terminal output that is not a tree:
// warnings and the settings summary.
//
// Colors come from github.com/fatih/color and are dropped automatically when
// stdout is not a terminal or NO_COLOR is set.
//
//	if w, ok := display.NormalizedExtensions(args, settings.NormalizeExtension); ok {
//	    w.Display(cmd.ErrOrStderr())
//	}
package display
