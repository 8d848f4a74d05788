package backend

import (
	"sort"
	"testing"
)

// fakeDevice is a minimal Device for registry tests.
type fakeDevice struct {
	name string
}

func (d *fakeDevice) Name() string { return d.name }
func (d *fakeDevice) CreateTexture(int, int, []float32) (Texture, error) {
	return nil, ErrDeviceNotAvailable
}
func (d *fakeDevice) CreateProgram(string, string) (Program, error) {
	return nil, ErrDeviceNotAvailable
}
func (d *fakeDevice) CreateVertexBuffer([]byte, int) (Buffer, error) {
	return nil, ErrDeviceNotAvailable
}
func (d *fakeDevice) CreateIndexBuffer([]byte) (Buffer, error) {
	return nil, ErrDeviceNotAvailable
}
func (d *fakeDevice) Draw(Target, *DrawCall) error { return ErrDeviceNotAvailable }
func (d *fakeDevice) Close() error                 { return nil }

// --- Registry Tests ---

func TestRegisterAndGet(t *testing.T) {
	Register("fake", func() Device { return &fakeDevice{name: "fake"} })
	defer Unregister("fake")

	if !IsRegistered("fake") {
		t.Error("IsRegistered(fake) = false after Register")
	}

	d := Get("fake")
	if d == nil {
		t.Fatal("Get(fake) = nil")
	}
	if d.Name() != "fake" {
		t.Errorf("Name = %q, want %q", d.Name(), "fake")
	}
}

func TestGetUnknownDevice(t *testing.T) {
	if d := Get("no-such-device"); d != nil {
		t.Errorf("Get(no-such-device) = %v, want nil", d)
	}
	if IsRegistered("no-such-device") {
		t.Error("IsRegistered(no-such-device) = true")
	}
}

func TestUnregister(t *testing.T) {
	Register("temp", func() Device { return &fakeDevice{name: "temp"} })
	Unregister("temp")

	if IsRegistered("temp") {
		t.Error("device still registered after Unregister")
	}
	if Get("temp") != nil {
		t.Error("Get returns device after Unregister")
	}
}

func TestAvailableListsRegistered(t *testing.T) {
	Register("list-a", func() Device { return &fakeDevice{name: "list-a"} })
	Register("list-b", func() Device { return &fakeDevice{name: "list-b"} })
	defer Unregister("list-a")
	defer Unregister("list-b")

	names := Available()
	sort.Strings(names)

	found := 0
	for _, n := range names {
		if n == "list-a" || n == "list-b" {
			found++
		}
	}
	if found != 2 {
		t.Errorf("Available() = %v, missing registered fakes", names)
	}
}

func TestDefaultPrefersWGPU(t *testing.T) {
	Register(DeviceWGPU, func() Device { return &fakeDevice{name: DeviceWGPU} })
	Register(DeviceSoftware, func() Device { return &fakeDevice{name: DeviceSoftware} })
	defer Unregister(DeviceWGPU)
	defer Unregister(DeviceSoftware)

	d := Default()
	if d == nil {
		t.Fatal("Default() = nil")
	}
	if d.Name() != DeviceWGPU {
		t.Errorf("Default() = %q, want %q", d.Name(), DeviceWGPU)
	}
}

func TestDefaultUsesUnrankedDevice(t *testing.T) {
	Register("custom", func() Device { return &fakeDevice{name: "custom"} })
	defer Unregister("custom")

	d := Default()
	if d == nil {
		t.Fatal("Default() = nil")
	}
	if d.Name() != "custom" {
		t.Errorf("Default() = %q, want %q", d.Name(), "custom")
	}
}

func TestDefaultFallsBackWhenFactoryFails(t *testing.T) {
	Register(DeviceWGPU, func() Device { return nil })
	Register(DeviceSoftware, func() Device { return &fakeDevice{name: DeviceSoftware} })
	defer Unregister(DeviceWGPU)
	defer Unregister(DeviceSoftware)

	d := Default()
	if d == nil {
		t.Fatal("Default() = nil")
	}
	if d.Name() != DeviceSoftware {
		t.Errorf("Default() = %q, want %q", d.Name(), DeviceSoftware)
	}
}
