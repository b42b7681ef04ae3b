package liquify

import (
	"encoding/binary"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodecRoundTrip(t *testing.T) {
	tests := []struct {
		name  string
		paths Paths
	}{
		{"empty", nil},
		{"sample", samplePaths()},
		{"single point", Paths{{NewMoveTo(Pt(3, 3))}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decode(Encode(tt.paths))
			if diff := cmp.Diff(tt.paths, got); diff != "" {
				t.Errorf("round trip mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestEncodeLayout(t *testing.T) {
	ps := samplePaths()
	body := EncodePaths(ps[:1])

	// One path: length field plus move_to, line_to and curve_to records.
	require.Len(t, body, 8+96+96+128)
	assert.Equal(t, uint64(len(body)), binary.LittleEndian.Uint64(body))
	assert.Equal(t, uint64(96), binary.LittleEndian.Uint64(body[8:]))
	assert.Equal(t, uint32(KindMoveTo), binary.LittleEndian.Uint32(body[16:]))
	assert.Equal(t, uint32(12), binary.LittleEndian.Uint32(body[24:]))

	blob := Encode(ps[:1])
	assert.Equal(t, uint64(len(body)), binary.LittleEndian.Uint64(blob))
	assert.Equal(t, uint32(FormatVersion), binary.LittleEndian.Uint32(blob[8:]))
	assert.Equal(t, body, blob[16:])
}

func TestDecodeUnknownVersion(t *testing.T) {
	blob := Encode(samplePaths())
	binary.LittleEndian.PutUint32(blob[8:], 2)
	assert.Empty(t, Decode(blob))
	assert.Empty(t, Decode(blob[:10]))
}

func TestDecodeRecoversFromCorruptNode(t *testing.T) {
	ps := samplePaths()
	body := EncodePaths(ps)

	// Corrupt the kind of the line_to in the first path.
	binary.LittleEndian.PutUint32(body[8+96+8:], 42)

	got := DecodePaths(body)
	require.Len(t, got, 3)
	// The first path keeps only the nodes before the corrupt record.
	if diff := cmp.Diff(Path{ps[0][0]}, got[0]); diff != "" {
		t.Errorf("first path (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(ps[1:], got[1:]); diff != "" {
		t.Errorf("later paths (-want +got):\n%s", diff)
	}
}

func TestDecodeSizeMismatch(t *testing.T) {
	ps := samplePaths()
	body := EncodePaths(ps)

	// A curve_to record claiming the size of a line_to.
	binary.LittleEndian.PutUint64(body[8+96+96:], 96)

	got := DecodePaths(body)
	require.Len(t, got, 3)
	assert.Len(t, got[0], 2)
}

func TestDecodeDropsPathWithBadFirstNode(t *testing.T) {
	ps := samplePaths()
	body := EncodePaths(ps)
	binary.LittleEndian.PutUint64(body[8:], 7)

	got := DecodePaths(body)
	if diff := cmp.Diff(ps[1:], got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeTruncated(t *testing.T) {
	ps := samplePaths()
	body := EncodePaths(ps)
	first := len(EncodePaths(ps[:1]))

	got := DecodePaths(body[:first+20])
	require.Len(t, got, 1)
	assert.Len(t, got[0], 3)
}
