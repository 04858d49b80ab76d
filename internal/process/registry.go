package process

import "sort"

// Constructor builds a concrete orchestrator around shared mechanics.
type Constructor func(h *Helper) BuildProcess

var registry = map[string]Constructor{}

// RegisterProcessType adds a named orchestrator implementation. Called from
// implementation init().
func RegisterProcessType(name string, c Constructor) {
	registry[name] = c
}

// ListProcessTypes returns the registered orchestrator names, sorted.
func ListProcessTypes() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Create instantiates the named orchestrator with the given collaborators.
// The name is validated against the registered-name set before any other
// construction work happens.
func Create(processType string, opts Options) (BuildProcess, error) {
	c, ok := registry[processType]
	if !ok {
		return nil, &UnknownProcessTypeError{
			Name:      processType,
			Available: ListProcessTypes(),
		}
	}
	h, err := NewHelper(opts)
	if err != nil {
		return nil, err
	}
	return c(h), nil
}
