// SPDX-License-Identifier: EPL-2.0

package dca

import (
	"slices"
	"sync"
)

// DefaultCore is the name the libdca binding registers under.
const DefaultCore = "libdca"

var cores = struct {
	mtx       sync.Mutex
	factories map[string]CoreFactory
}{factories: make(map[string]CoreFactory)}

// RegisterCore makes a core factory available by name. Registering the
// same name twice replaces the earlier factory.
func RegisterCore(name string, f CoreFactory) {
	cores.mtx.Lock()
	defer cores.mtx.Unlock()

	cores.factories[name] = f
}

func LookupCore(name string) (CoreFactory, bool) {
	cores.mtx.Lock()
	defer cores.mtx.Unlock()

	f, ok := cores.factories[name]
	return f, ok
}

// Cores returns the registered core names in sorted order.
func Cores() []string {
	cores.mtx.Lock()
	defer cores.mtx.Unlock()

	names := make([]string, 0, len(cores.factories))
	for k := range cores.factories {
		names = append(names, k)
	}
	slices.Sort(names)
	return names
}
