package backend

import "sync"

// Factory creates a device instance. It returns nil when the device cannot
// be constructed in this environment, which makes Default skip it.
type Factory func() Device

var (
	mu        sync.RWMutex
	factories = make(map[string]Factory)
)

// selectionOrder ranks the known devices for Default. Devices registered
// under other names are considered after these.
var selectionOrder = []string{DeviceWGPU, DeviceSoftware}

// Register makes a device available under the given name, replacing any
// previous registration. Device packages call this from init, so a blank
// import is enough to enable one.
func Register(name string, factory Factory) {
	mu.Lock()
	factories[name] = factory
	mu.Unlock()
}

// Unregister removes a device registration. Mainly useful in tests.
func Unregister(name string) {
	mu.Lock()
	delete(factories, name)
	mu.Unlock()
}

// Available returns the names of all registered devices, in no particular
// order.
func Available() []string {
	mu.RLock()
	defer mu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsRegistered reports whether a device name is registered.
func IsRegistered(name string) bool {
	mu.RLock()
	_, ok := factories[name]
	mu.RUnlock()
	return ok
}

// Get constructs the named device, or returns nil if it is not registered.
func Get(name string) Device {
	mu.RLock()
	factory, ok := factories[name]
	mu.RUnlock()

	if !ok {
		return nil
	}
	return factory()
}

// Default constructs the best available device: wgpu when present, then
// software, then anything else that registered. Returns nil when no
// factory yields a device.
func Default() Device {
	mu.RLock()
	defer mu.RUnlock()

	tried := make(map[string]bool, len(selectionOrder))
	for _, name := range selectionOrder {
		tried[name] = true
		if factory, ok := factories[name]; ok {
			if d := factory(); d != nil {
				return d
			}
		}
	}
	for name, factory := range factories {
		if tried[name] {
			continue
		}
		if d := factory(); d != nil {
			return d
		}
	}
	return nil
}

// MustDefault is Default for program startup paths where running without
// any device is not worth handling: it panics instead of returning nil.
func MustDefault() Device {
	d := Default()
	if d == nil {
		panic(ErrDeviceNotAvailable)
	}
	return d
}
