package liquify

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAccelerator struct {
	name      string
	initErr   error
	applyErr  error
	closed    bool
	calls     int
	desc      KernelDescriptor
	tableLen  int
	logger    *slog.Logger
	wroteMark bool
}

func (m *mockAccelerator) Name() string { return m.name }
func (m *mockAccelerator) Init() error  { return m.initErr }
func (m *mockAccelerator) Close()       { m.closed = true }

func (m *mockAccelerator) SetLogger(l *slog.Logger) { m.logger = l }

func (m *mockAccelerator) ApplyDistortionMap(t AccelTarget, dm *DistortionMap, desc KernelDescriptor, table []float32) error {
	m.calls++
	m.desc = desc
	m.tableLen = len(table)
	// Scribble over the output before failing, as a partial dispatch might.
	t.Out.Pixel(0, 0)[0] = -1
	m.wroteMark = true
	return m.applyErr
}

func TestRegisterAccelerator(t *testing.T) {
	t.Cleanup(UnregisterAccelerator)

	a := &mockAccelerator{name: "first"}
	require.NoError(t, RegisterAccelerator(a))
	assert.Same(t, a, CurrentAccelerator())
	assert.NotNil(t, a.logger)

	b := &mockAccelerator{name: "second"}
	require.NoError(t, RegisterAccelerator(b))
	assert.True(t, a.closed, "replaced accelerator is closed")
	assert.Same(t, b, CurrentAccelerator())

	UnregisterAccelerator()
	assert.True(t, b.closed)
	assert.Nil(t, CurrentAccelerator())
}

func TestRegisterAcceleratorInitFailure(t *testing.T) {
	t.Cleanup(UnregisterAccelerator)

	err := RegisterAccelerator(&mockAccelerator{name: "broken", initErr: errors.New("no device")})
	assert.EqualError(t, err, "no device")
	assert.Nil(t, CurrentAccelerator())
	assert.Error(t, RegisterAccelerator(nil))
}

func TestProcessAcceleratedFailureDoesNotFallBack(t *testing.T) {
	a := &mockAccelerator{name: "mock", applyErr: errors.New("device lost")}
	pr := NewProcessor(WithAccelerator(a), WithInterpolation(Lanczos3))
	defer pr.Close()

	m := NewMoveTo(Pt(8, 8))
	m.Radius = Pt(14, 8)
	m.Strength = Pt(11, 8)

	in := gradient(16, 16)
	out := NewBuffer(16, 16)
	roi := ROI{Width: 16, Height: 16, Scale: 1}
	err := pr.Process(Paths{{m}}, in, roi, out, roi)

	require.ErrorIs(t, err, ErrAcceleratorFailed)
	assert.ErrorContains(t, err, "device lost")
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, KernelDescriptor{Size: 3, Resolution: 100}, a.desc)
	assert.Equal(t, 301, a.tableLen)

	// Output is the unwarped input, not a scalar rendering.
	assert.True(t, a.wroteMark)
	assert.Equal(t, in.Pix, out.Pix)
}

func TestProcessRegisteredAccelerator(t *testing.T) {
	t.Cleanup(UnregisterAccelerator)
	a := &mockAccelerator{name: "mock"}
	require.NoError(t, RegisterAccelerator(a))

	pr := NewProcessor(WithRegisteredAccelerator())
	defer pr.Close()

	m := NewMoveTo(Pt(4, 4))
	m.Radius = Pt(8, 4)
	roi := ROI{Width: 8, Height: 8, Scale: 1}
	require.NoError(t, pr.Process(Paths{{m}}, gradient(8, 8), roi, NewBuffer(8, 8), roi))
	assert.Equal(t, 1, a.calls)
}

func TestLoggerDefaultSilent(t *testing.T) {
	for _, level := range []slog.Level{slog.LevelDebug, slog.LevelInfo, slog.LevelWarn} {
		assert.False(t, Logger().Enabled(context.Background(), level))
	}
}

func TestSetLogger(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() { SetLogger(orig) })

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))

	blob := Encode(samplePaths())
	blob[8] = 9
	Decode(blob)
	assert.True(t, strings.Contains(buf.String(), "unknown params version"), buf.String())

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelWarn))
}

func TestSetLoggerPropagates(t *testing.T) {
	orig := Logger()
	t.Cleanup(func() {
		SetLogger(orig)
		UnregisterAccelerator()
	})

	a := &mockAccelerator{name: "mock"}
	require.NoError(t, RegisterAccelerator(a))
	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	SetLogger(l)
	assert.Same(t, l, a.logger)
}
