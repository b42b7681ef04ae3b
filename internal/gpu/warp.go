//go:build !nogpu

package gpu

import (
	_ "embed"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"math"
	"sync"
	"time"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/liquify"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

//go:embed shaders/warp.wgsl
var warpShaderSource string

// maxKernelSize is the widest kernel half-width the shader unrolls.
const maxKernelSize = 3

var errNotReady = errors.New("gpu-warp: device not initialized")

// warpParams mirrors the Params uniform of warp.wgsl.
type warpParams struct {
	InX, InY         int32
	InW, InH         int32
	OutX, OutY       int32
	OutW, OutH       int32
	MapX, MapY       int32
	MapW             int32
	KernelSize       int32
	AreaX, AreaY     int32
	AreaW, AreaH     int32
	KernelResolution int32
	_                [3]int32
}

// WarpAccelerator resamples through a distortion map with a wgpu/hal
// compute shader. It implements liquify.Accelerator.
//
// Every call uploads the input, the output, the map and the kernel table,
// runs one compute pass over the warped area and reads the output back.
type WarpAccelerator struct {
	mu sync.Mutex

	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	shader     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.ComputePipeline

	gpuReady       bool
	externalDevice bool // true when using shared device (don't destroy on Close)
}

var (
	_ liquify.Accelerator         = (*WarpAccelerator)(nil)
	_ liquify.DeviceProviderAware = (*WarpAccelerator)(nil)
)

func (a *WarpAccelerator) Name() string { return "gpu-warp" }

// Init opens the first GPU adapter. Unlike a renderer there is no CPU path
// to fall back to, so a failure is returned to the caller.
func (a *WarpAccelerator) Init() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.gpuReady {
		return nil
	}
	if err := a.initGPU(); err != nil {
		a.releaseLocked()
		return fmt.Errorf("gpu-warp: %w", err)
	}
	return nil
}

func (a *WarpAccelerator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.releaseLocked()
}

func (a *WarpAccelerator) releaseLocked() {
	a.destroyPipelines()
	if !a.externalDevice {
		if a.device != nil {
			a.device.Destroy()
		}
		if a.instance != nil {
			a.instance.Destroy()
		}
	}
	a.device = nil
	a.instance = nil
	a.queue = nil
	a.gpuReady = false
	a.externalDevice = false
}

// SetLogger routes the package logger to l.
func (a *WarpAccelerator) SetLogger(l *slog.Logger) {
	setLogger(l)
}

// SetDeviceProvider switches the accelerator to a device shared by the
// host. The provider must implement HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue.
func (a *WarpAccelerator) SetDeviceProvider(provider any) error {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return fmt.Errorf("gpu-warp: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return fmt.Errorf("gpu-warp: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return fmt.Errorf("gpu-warp: provider HalQueue is not hal.Queue")
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.releaseLocked()
	a.device = device
	a.queue = queue
	a.externalDevice = true

	if err := a.createPipelines(); err != nil {
		a.gpuReady = false
		return fmt.Errorf("gpu-warp: create pipelines with shared device: %w", err)
	}
	a.gpuReady = true
	slogger().Info("gpu-warp: switched to shared GPU device")
	return nil
}

// ApplyDistortionMap implements liquify.Accelerator.
func (a *WarpAccelerator) ApplyDistortionMap(t liquify.AccelTarget, m *liquify.DistortionMap, desc liquify.KernelDescriptor, table []float32) error {
	if m == nil {
		return nil
	}
	area := m.Extent.Intersect(t.RoiOut.Rect())
	if area.Empty() {
		return nil
	}
	if desc.Size < 1 || desc.Size > maxKernelSize || len(table) < desc.Len() {
		return fmt.Errorf("gpu-warp: unsupported kernel %+v with %d entries", desc, len(table))
	}
	if t.In.Width == 0 || t.In.Height == 0 {
		return fmt.Errorf("gpu-warp: empty input")
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if !a.gpuReady {
		return errNotReady
	}

	start := time.Now()
	params := newWarpParams(t, m.Extent, area, desc)
	if err := a.dispatch(params, packField(m.Data), packFloats(table), packFloats(t.In.Pix), t.Out.Pix); err != nil {
		return err
	}
	slogger().Debug("gpu-warp: dispatched",
		"area", area, "kernel", desc.Size, "elapsed", time.Since(start))
	return nil
}

//nolint:gosec // image coordinates and kernel sizes fit int32
func newWarpParams(t liquify.AccelTarget, extent, area image.Rectangle, desc liquify.KernelDescriptor) warpParams {
	return warpParams{
		InX: int32(t.RoiIn.X), InY: int32(t.RoiIn.Y),
		InW: int32(t.In.Width), InH: int32(t.In.Height),
		OutX: int32(t.RoiOut.X), OutY: int32(t.RoiOut.Y),
		OutW: int32(t.Out.Width), OutH: int32(t.Out.Height),
		MapX: int32(extent.Min.X), MapY: int32(extent.Min.Y),
		MapW:             int32(extent.Dx()),
		KernelSize:       int32(desc.Size),
		AreaX:            int32(area.Min.X),
		AreaY:            int32(area.Min.Y),
		AreaW:            int32(area.Dx()),
		AreaH:            int32(area.Dy()),
		KernelResolution: int32(desc.Resolution),
	}
}

// dispatch runs one compute pass and copies the result into out.
func (a *WarpAccelerator) dispatch(params warpParams, field, table, src []byte, out []float32) error {
	paramBytes := structToBytes(unsafe.Pointer(&params), unsafe.Sizeof(params)) //nolint:gosec // safe struct access
	dstBytes := packFloats(out)
	dstSize := uint64(len(dstBytes))

	var bufs []hal.Buffer
	defer func() {
		for _, b := range bufs {
			a.device.DestroyBuffer(b)
		}
	}()
	newBuf := func(label string, data []byte, usage gputypes.BufferUsage) (hal.Buffer, error) {
		b, err := a.device.CreateBuffer(&hal.BufferDescriptor{Label: label, Size: uint64(len(data)), Usage: usage})
		if err != nil {
			return nil, fmt.Errorf("create %s buffer: %w", label, err)
		}
		bufs = append(bufs, b)
		a.queue.WriteBuffer(b, 0, data)
		return b, nil
	}

	paramBuf, err := newBuf("warp_params", paramBytes, gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	fieldBuf, err := newBuf("warp_field", field, gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	tableBuf, err := newBuf("warp_kernel", table, gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	srcBuf, err := newBuf("warp_src", src, gputypes.BufferUsageStorage|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	dstBuf, err := newBuf("warp_dst", dstBytes,
		gputypes.BufferUsageStorage|gputypes.BufferUsageCopySrc|gputypes.BufferUsageCopyDst)
	if err != nil {
		return err
	}
	stagingBuf, err := a.device.CreateBuffer(&hal.BufferDescriptor{
		Label: "warp_staging", Size: dstSize,
		Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return fmt.Errorf("create staging buffer: %w", err)
	}
	bufs = append(bufs, stagingBuf)

	binding := func(b hal.Buffer, size int) gputypes.BufferBinding {
		return gputypes.BufferBinding{Buffer: b.NativeHandle(), Offset: 0, Size: uint64(size)}
	}
	bg, err := a.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label: "warp_bind", Layout: a.bindLayout,
		Entries: []gputypes.BindGroupEntry{
			{Binding: 0, Resource: binding(paramBuf, len(paramBytes))},
			{Binding: 1, Resource: binding(fieldBuf, len(field))},
			{Binding: 2, Resource: binding(tableBuf, len(table))},
			{Binding: 3, Resource: binding(srcBuf, len(src))},
			{Binding: 4, Resource: binding(dstBuf, len(dstBytes))},
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group: %w", err)
	}
	defer a.device.DestroyBindGroup(bg)

	encoder, err := a.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: "warp_encoder"})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("warp"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}
	pass := encoder.BeginComputePass(&hal.ComputePassDescriptor{Label: "warp_pass"})
	pass.SetPipeline(a.pipeline)
	pass.SetBindGroup(0, bg, nil)
	pass.Dispatch(workgroups(params.AreaW), workgroups(params.AreaH), 1)
	pass.End()
	encoder.CopyBufferToBuffer(dstBuf, stagingBuf, []hal.BufferCopy{
		{SrcOffset: 0, DstOffset: 0, Size: dstSize},
	})
	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	defer a.device.FreeCommandBuffer(cmdBuf)

	fence, err := a.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	defer a.device.DestroyFence(fence)
	if err := a.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		return fmt.Errorf("submit: %w", err)
	}
	fenceOK, err := a.device.Wait(fence, 1, 5*time.Second)
	if err != nil || !fenceOK {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", fenceOK, err)
	}

	readback := make([]byte, dstSize)
	if err := a.queue.ReadBuffer(stagingBuf, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	unpackFloats(readback, out)
	return nil
}

// workgroups returns the 8x8 workgroup count covering n pixels.
func workgroups(n int32) uint32 {
	return uint32(n+7) / 8 //nolint:gosec // n is a positive image dimension
}

func (a *WarpAccelerator) initGPU() error {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return fmt.Errorf("vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return fmt.Errorf("create instance: %w", err)
	}
	a.instance = instance
	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		return fmt.Errorf("no GPU adapters found")
	}
	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}
	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return fmt.Errorf("open device: %w", err)
	}
	a.device = openDev.Device
	a.queue = openDev.Queue
	if err := a.createPipelines(); err != nil {
		return fmt.Errorf("create pipelines: %w", err)
	}
	a.gpuReady = true
	slogger().Info("gpu-warp: initialized", "adapter", selected.Info.Name)
	return nil
}

func (a *WarpAccelerator) createPipelines() error {
	shader, err := a.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "warp",
		Source: hal.ShaderSource{WGSL: warpShaderSource},
	})
	if err != nil {
		return fmt.Errorf("compile warp shader: %w", err)
	}
	a.shader = shader

	storage := func(binding uint32, t gputypes.BufferBindingType) gputypes.BindGroupLayoutEntry {
		return gputypes.BindGroupLayoutEntry{
			Binding: binding, Visibility: gputypes.ShaderStageCompute,
			Buffer: &gputypes.BufferBindingLayout{Type: t},
		}
	}
	bindLayout, err := a.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label: "warp_bind_layout",
		Entries: []gputypes.BindGroupLayoutEntry{
			storage(0, gputypes.BufferBindingTypeUniform),
			storage(1, gputypes.BufferBindingTypeReadOnlyStorage),
			storage(2, gputypes.BufferBindingTypeReadOnlyStorage),
			storage(3, gputypes.BufferBindingTypeReadOnlyStorage),
			storage(4, gputypes.BufferBindingTypeStorage),
		},
	})
	if err != nil {
		return fmt.Errorf("create bind group layout: %w", err)
	}
	a.bindLayout = bindLayout

	pipeLayout, err := a.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label: "warp_pipe_layout", BindGroupLayouts: []hal.BindGroupLayout{a.bindLayout},
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	a.pipeLayout = pipeLayout

	pipeline, err := a.device.CreateComputePipeline(&hal.ComputePipelineDescriptor{
		Label: "warp_pipeline", Layout: a.pipeLayout,
		Compute: hal.ComputeState{Module: a.shader, EntryPoint: "main"},
	})
	if err != nil {
		return fmt.Errorf("create compute pipeline: %w", err)
	}
	a.pipeline = pipeline
	return nil
}

func (a *WarpAccelerator) destroyPipelines() {
	if a.device == nil {
		return
	}
	if a.pipeline != nil {
		a.device.DestroyComputePipeline(a.pipeline)
		a.pipeline = nil
	}
	if a.pipeLayout != nil {
		a.device.DestroyPipelineLayout(a.pipeLayout)
		a.pipeLayout = nil
	}
	if a.bindLayout != nil {
		a.device.DestroyBindGroupLayout(a.bindLayout)
		a.bindLayout = nil
	}
	if a.shader != nil {
		a.device.DestroyShaderModule(a.shader)
		a.shader = nil
	}
}

func structToBytes(ptr unsafe.Pointer, size uintptr) []byte {
	return unsafe.Slice((*byte)(ptr), size) //nolint:gosec // safe struct serialization
}

// packFloats encodes v as little-endian float32 for upload.
func packFloats(v []float32) []byte {
	out := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(out[4*i:], math.Float32bits(f))
	}
	return out
}

func unpackFloats(b []byte, dst []float32) {
	for i := range dst {
		dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[4*i:]))
	}
}

// packField encodes displacements as vec2<f32> pairs.
func packField(d []complex64) []byte {
	out := make([]byte, 8*len(d))
	for i, c := range d {
		binary.LittleEndian.PutUint32(out[8*i:], math.Float32bits(real(c)))
		binary.LittleEndian.PutUint32(out[8*i+4:], math.Float32bits(imag(c)))
	}
	return out
}
