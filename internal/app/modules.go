package app

import (
	"github.com/kemaleren/hamilton/internal/registry"
	"github.com/kemaleren/hamilton/modules/spend"
)

// coreModules is the definitive list of all handler bundles that are
// compiled into the binary.
var coreModules = []registry.Module{
	&spend.Module{},
}
