//go:build !nogpu

package gpu

import (
	"errors"
	"image"
	"math"
	"strings"
	"testing"
	"unsafe"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/liquify"
)

func TestWarpShaderCompilation(t *testing.T) {
	if warpShaderSource == "" {
		t.Fatal("warp shader source is empty")
	}
	spirv, err := naga.Compile(warpShaderSource)
	if err != nil {
		if msg := err.Error(); strings.Contains(msg, "not yet implemented") || strings.Contains(msg, "not supported") {
			t.Skipf("Skipping: naga feature not yet implemented: %v", err)
		}
		t.Fatalf("failed to compile warp shader: %v", err)
	}
	if len(spirv) < 4 {
		t.Fatal("SPIR-V too short")
	}
	magic := uint32(spirv[0]) | uint32(spirv[1])<<8 | uint32(spirv[2])<<16 | uint32(spirv[3])<<24
	if magic != 0x07230203 {
		t.Errorf("invalid SPIR-V magic: 0x%08X, want 0x07230203", magic)
	}
}

func TestWarpParamsLayout(t *testing.T) {
	// uniform buffers need a multiple of 16 bytes
	if got := unsafe.Sizeof(warpParams{}); got != 80 {
		t.Errorf("sizeof(warpParams) = %d, want 80", got)
	}

	in := liquify.NewBuffer(40, 30)
	out := liquify.NewBuffer(20, 10)
	target := liquify.AccelTarget{
		In: in, RoiIn: liquify.ROI{X: -5, Y: 2, Width: 40, Height: 30, Scale: 1},
		Out: out, RoiOut: liquify.ROI{X: 3, Y: 4, Width: 20, Height: 10, Scale: 1},
	}
	extent := image.Rect(0, 0, 12, 8)
	area := extent.Intersect(target.RoiOut.Rect())
	p := newWarpParams(target, extent, area, liquify.KernelDescriptor{Size: 2, Resolution: 100})

	want := warpParams{
		InX: -5, InY: 2, InW: 40, InH: 30,
		OutX: 3, OutY: 4, OutW: 20, OutH: 10,
		MapX: 0, MapY: 0, MapW: 12,
		AreaX: 3, AreaY: 4, AreaW: 9, AreaH: 4,
		KernelSize:       2,
		KernelResolution: 100,
	}
	if p != want {
		t.Errorf("newWarpParams = %+v, want %+v", p, want)
	}
	if n := workgroups(p.AreaW); n != 2 {
		t.Errorf("workgroups(9) = %d, want 2", n)
	}
}

func TestPackField(t *testing.T) {
	b := packField([]complex64{complex(1.5, -2)})
	got := make([]float32, 2)
	unpackFloats(b, got)
	if got[0] != 1.5 || got[1] != -2 {
		t.Errorf("packField = %v, want [1.5 -2]", got)
	}
}

func testTarget() (liquify.AccelTarget, *liquify.DistortionMap) {
	const w, h = 16, 12
	in := liquify.NewBuffer(w, h)
	for y := range h {
		for x := range w {
			px := in.Pixel(x, y)
			px[0] = float32(x) / w
			px[1] = float32(y) / h
			px[2] = float32(x*y%5) / 5
			px[3] = 1
		}
	}
	roi := liquify.ROI{Width: w, Height: h, Scale: 1}
	out := liquify.NewBuffer(w, h)
	copy(out.Pix, in.Pix)

	m := liquify.NewDistortionMap(image.Rect(2, 2, 14, 10))
	for i := range m.Data {
		m.Data[i] = complex(float32(i%7)*0.3-1, float32(i%3)*0.45-0.5)
	}
	return liquify.AccelTarget{In: in, RoiIn: roi, Out: out, RoiOut: roi}, m
}

func TestApplyBeforeInit(t *testing.T) {
	target, m := testTarget()
	desc, table := liquify.KernelTable(liquify.Bilinear)
	err := (&WarpAccelerator{}).ApplyDistortionMap(target, m, desc, table)
	if !errors.Is(err, errNotReady) {
		t.Errorf("ApplyDistortionMap before Init = %v, want errNotReady", err)
	}
}

func TestApplyNothingToDo(t *testing.T) {
	target, m := testTarget()
	desc, table := liquify.KernelTable(liquify.Bilinear)
	a := &WarpAccelerator{}
	if err := a.ApplyDistortionMap(target, nil, desc, table); err != nil {
		t.Errorf("nil map: %v", err)
	}
	m.Extent = image.Rect(100, 100, 110, 110)
	if err := a.ApplyDistortionMap(target, m, desc, table); err != nil {
		t.Errorf("map outside output: %v", err)
	}
}

func TestApplyRejectsWideKernel(t *testing.T) {
	target, m := testTarget()
	desc := liquify.KernelDescriptor{Size: 4, Resolution: 100}
	err := (&WarpAccelerator{}).ApplyDistortionMap(target, m, desc, make([]float32, desc.Len()))
	if err == nil || errors.Is(err, errNotReady) {
		t.Errorf("want kernel error, got %v", err)
	}
}

type halProvider struct {
	device hal.Device
	queue  hal.Queue
}

func (p halProvider) HalDevice() any { return p.device }
func (p halProvider) HalQueue() any  { return p.queue }

func TestSetDeviceProvider(t *testing.T) {
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	defer instance.Destroy()
	adapters := instance.EnumerateAdapters(nil)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer openDev.Device.Destroy()

	a := &WarpAccelerator{}
	if err := a.SetDeviceProvider(struct{}{}); err == nil {
		t.Error("provider without HAL accepted")
	}
	if err := a.SetDeviceProvider(halProvider{openDev.Device, openDev.Queue}); err != nil {
		t.Fatalf("SetDeviceProvider: %v", err)
	}
	if !a.gpuReady || !a.externalDevice {
		t.Errorf("ready=%v external=%v after SetDeviceProvider", a.gpuReady, a.externalDevice)
	}
	a.Close()
	if a.device != nil || a.gpuReady {
		t.Error("Close kept the shared device")
	}
}

func TestMatchesScalarResampler(t *testing.T) {
	a := &WarpAccelerator{}
	if err := a.Init(); err != nil {
		t.Skipf("no GPU: %v", err)
	}
	defer a.Close()

	for _, interp := range []liquify.Interpolation{liquify.Bilinear, liquify.Bicubic, liquify.Lanczos3} {
		t.Run(interp.String(), func(t *testing.T) {
			target, m := testTarget()
			want := liquify.NewBuffer(target.Out.Width, target.Out.Height)
			copy(want.Pix, target.Out.Pix)
			liquify.ApplyDistortionMap(target.In, target.RoiIn, want, target.RoiOut, m, interp, nil)

			desc, table := liquify.KernelTable(interp)
			if err := a.ApplyDistortionMap(target, m, desc, table); err != nil {
				t.Fatalf("ApplyDistortionMap: %v", err)
			}
			for i, v := range target.Out.Pix {
				if math.Abs(float64(v-want.Pix[i])) > 2e-3 {
					t.Fatalf("channel %d = %v, want %v", i, v, want.Pix[i])
				}
			}
		})
	}
}
