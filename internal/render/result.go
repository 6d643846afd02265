package render

import "github.com/apowers313/pupt/internal/diag"

// Result is the outcome of one Render call. OK is false if and only if at
// least one error was collected anywhere in the tree; Text is always the
// best-effort output and PostExecution always reflects everything that did
// successfully run.
type Result struct {
	OK            bool
	Text          string
	PostExecution []Action
	Errors        []*diag.Error
}
