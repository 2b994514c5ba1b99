// Package backend resolves matmul backends by configuration name.
package backend

import (
	"fmt"
	"sort"

	"github.com/born-ml/parinfer/internal/backend/blas"
	"github.com/born-ml/parinfer/internal/backend/cpu"
	"github.com/born-ml/parinfer/internal/tensor"
)

// Default is used when no backend is configured.
const Default = cpu.Name

var registry = map[string]func() tensor.Backend{
	cpu.Name:  func() tensor.Backend { return cpu.New() },
	blas.Name: func() tensor.Backend { return blas.New() },
}

// Lookup returns a fresh backend for name. An empty name selects Default.
func Lookup(name string) (tensor.Backend, error) {
	if name == "" {
		name = Default
	}
	ctor, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown backend %q (available: %v)", name, Names())
	}
	return ctor(), nil
}

// Names lists the registered backend names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
