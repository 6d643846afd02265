package app

import (
	"github.com/apowers313/pupt/components/action"
	"github.com/apowers313/pupt/components/ask"
	"github.com/apowers313/pupt/components/conditional"
	"github.com/apowers313/pupt/components/file"
	"github.com/apowers313/pupt/components/prompt"
	"github.com/apowers313/pupt/components/section"
	"github.com/apowers313/pupt/internal/component"
)

// coreModules is the default component set every App registers.
var coreModules = []component.Module{
	&prompt.Module{},
	&section.Module{},
	&conditional.Module{},
	&ask.Module{},
	&file.Module{},
	&action.Module{},
}
