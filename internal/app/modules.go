package app

import (
	"github.com/nfrund/reviewboard/internal/module"
	"github.com/nfrund/reviewboard/internal/modules/reviews"
)

// NewModules creates and returns the list of all active modules for the application.
// This is the single source of truth for which features are enabled.
func NewModules(deps Dependencies) []module.Module {
	return []module.Module{
		reviews.New(reviewsDeps(deps)),
	}
}
