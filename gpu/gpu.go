//go:build !nogpu

// Package gpu registers the compute accelerator for the resampling pass.
//
// Importing it for its side effect routes every Processor created with
// liquify.WithRegisteredAccelerator through a wgpu/hal compute shader:
//
//	import _ "github.com/gogpu/liquify/gpu"
//
// If no Vulkan device can be opened the registration is skipped with a
// warning and processing stays on the CPU. Once registered, accelerator
// failures are reported as liquify.ErrAcceleratorFailed.
//
// Build with -tags nogpu to compile the accelerator out.
package gpu

import (
	"github.com/gogpu/gpucontext"

	"github.com/gogpu/liquify"
	gpuimpl "github.com/gogpu/liquify/internal/gpu"
)

func init() {
	if err := liquify.RegisterAccelerator(&gpuimpl.WarpAccelerator{}); err != nil {
		liquify.Logger().Warn("GPU accelerator not available", "err", err)
	}
}

// SetDeviceProvider moves the accelerator onto a GPU device owned by the
// host application (e.g. gogpu) instead of a private one.
//
// The provider must also expose HalDevice() and HalQueue() for direct HAL
// access. It is a no-op when no accelerator is registered.
func SetDeviceProvider(provider gpucontext.DeviceProvider) error {
	return liquify.SetAcceleratorDeviceProvider(provider)
}
