package liquify

import (
	"errors"
	"sync"
)

// ErrAcceleratorFailed wraps every error returned by an accelerator during
// processing. There is no fallback to the scalar path: the request fails.
var ErrAcceleratorFailed = errors.New("liquify: accelerated resampling failed")

// AccelTarget holds the buffers of one accelerated resampling pass. Out
// already contains the unwarped copy of In over RoiOut.
type AccelTarget struct {
	In     *Buffer
	RoiIn  ROI
	Out    *Buffer
	RoiOut ROI
}

// Accelerator performs the resampling pass on a compute device. It
// receives the distortion map, the kernel layout and its coefficient table
// and must write exactly what ApplyDistortionMap would.
//
// Implementations live in separate packages and register themselves:
//
//	import _ "github.com/gogpu/liquify/gpu"
type Accelerator interface {
	Name() string

	// Init acquires device resources. Called once by RegisterAccelerator.
	Init() error

	Close()

	ApplyDistortionMap(t AccelTarget, m *DistortionMap, desc KernelDescriptor, table []float32) error
}

// DeviceProviderAware is implemented by accelerators that can run on a
// device owned by the host application.
type DeviceProviderAware interface {
	SetDeviceProvider(provider any) error
}

var (
	accelMu sync.RWMutex
	accel   Accelerator
)

// RegisterAccelerator initializes a and makes it the process-wide
// accelerator, closing the previous one. When Init fails nothing changes
// and the error is returned.
func RegisterAccelerator(a Accelerator) error {
	if a == nil {
		return errors.New("liquify: accelerator must not be nil")
	}
	if err := a.Init(); err != nil {
		return err
	}
	propagateLogger(a, Logger())

	accelMu.Lock()
	old := accel
	accel = a
	accelMu.Unlock()
	if old != nil && old != a {
		old.Close()
	}
	Logger().Info("liquify: accelerator registered", "name", a.Name())
	return nil
}

// UnregisterAccelerator closes and removes the registered accelerator.
func UnregisterAccelerator() {
	accelMu.Lock()
	old := accel
	accel = nil
	accelMu.Unlock()
	if old != nil {
		old.Close()
	}
}

// CurrentAccelerator returns the registered accelerator, or nil.
func CurrentAccelerator() Accelerator {
	accelMu.RLock()
	defer accelMu.RUnlock()
	return accel
}

// SetAcceleratorDeviceProvider hands a host device to the registered
// accelerator. It is a no-op when none is registered or the accelerator
// cannot share devices.
func SetAcceleratorDeviceProvider(provider any) error {
	if dpa, ok := CurrentAccelerator().(DeviceProviderAware); ok {
		return dpa.SetDeviceProvider(provider)
	}
	return nil
}
