package rules

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hailam/chesslens/internal/analysis"
)

// Engine names accepted by ByName.
const (
	EngineBuiltin     = "builtin"
	EngineDragontooth = "dragontooth"
)

// ErrUnknownEngine is returned by ByName for unregistered names.
var ErrUnknownEngine = errors.New("unknown rules engine")

var factories = map[string]analysis.Factory{
	EngineBuiltin:     NewBuiltin,
	EngineDragontooth: NewDragontooth,
}

// ByName returns the factory registered under name.
func ByName(name string) (analysis.Factory, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %v)", ErrUnknownEngine, name, Names())
	}
	return f, nil
}

// Names lists the registered engines in sorted order.
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
