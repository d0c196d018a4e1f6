package module

import "sync"

// registry of ports by module name, filled while main bootstraps
var registry struct {
	sync.RWMutex
	ports map[string]any
}

// Register stores ports under name; a later call for the same name wins
func Register(name string, ports any) {
	registry.Lock()
	defer registry.Unlock()
	if registry.ports == nil {
		registry.ports = make(map[string]any)
	}
	registry.ports[name] = ports
}

// PortsAs returns the ports registered under name when they are a T
func PortsAs[T any](name string) (T, bool) {
	registry.RLock()
	v, found := registry.ports[name]
	registry.RUnlock()
	t, ok := v.(T)
	return t, found && ok
}

// Reset clears the registry for tests
func Reset() {
	registry.Lock()
	registry.ports = nil
	registry.Unlock()
}
