package liquify

import (
	"encoding/binary"
	"math"
)

// FormatVersion is the only params blob version understood by Decode.
const FormatVersion = 1

// Serialized record sizes in bytes.
const (
	headerSize    = 24 // size u64, kind u32, node type u32, selected u32, hovered u32
	warpSize      = 72 // three points, two controls, type u32 and padding
	moveToSize    = headerSize + warpSize
	lineToSize    = headerSize + warpSize
	curveToSize   = headerSize + warpSize + 32
	closePathSize = headerSize
	pathLenSize   = 8
	paramsHdrSize = 16 // blob size u64, version i32, padding
)

func recordSize(k NodeKind) int {
	switch k {
	case KindMoveTo:
		return moveToSize
	case KindLineTo:
		return lineToSize
	case KindCurveTo:
		return curveToSize
	case KindClosePath:
		return closePathSize
	}
	return 0
}

// Encode serializes paths into a versioned params blob.
func Encode(paths Paths) []byte {
	body := EncodePaths(paths)
	buf := make([]byte, 0, paramsHdrSize+len(body))
	buf = binary.LittleEndian.AppendUint64(buf, uint64(len(body)))
	buf = binary.LittleEndian.AppendUint32(buf, FormatVersion)
	buf = binary.LittleEndian.AppendUint32(buf, 0)
	return append(buf, body...)
}

// Decode parses a params blob produced by Encode. A blob with an unknown
// version or a truncated header yields no paths.
func Decode(blob []byte) Paths {
	if len(blob) < paramsHdrSize {
		return nil
	}
	size := binary.LittleEndian.Uint64(blob)
	version := int32(binary.LittleEndian.Uint32(blob[8:]))
	if version != FormatVersion {
		Logger().Warn("liquify: unknown params version", "version", version)
		return nil
	}
	body := blob[paramsHdrSize:]
	if size < uint64(len(body)) {
		body = body[:size]
	}
	return DecodePaths(body)
}

// EncodePaths serializes the path records without the params header.
func EncodePaths(paths Paths) []byte {
	var buf []byte
	for _, p := range paths {
		start := len(buf)
		buf = binary.LittleEndian.AppendUint64(buf, 0)
		for _, n := range p {
			buf = appendNode(buf, n)
		}
		binary.LittleEndian.PutUint64(buf[start:], uint64(len(buf)-start))
	}
	return buf
}

func appendNode(buf []byte, n Node) []byte {
	h := n.Header()
	buf = binary.LittleEndian.AppendUint64(buf, uint64(recordSize(n.Kind())))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(n.Kind()))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.NodeType))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.Selected))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(h.Hovered))
	if w := n.WarpRef(); w != nil {
		buf = appendPoint(buf, w.Point)
		buf = appendPoint(buf, w.Strength)
		buf = appendPoint(buf, w.Radius)
		buf = appendFloat(buf, w.Control1)
		buf = appendFloat(buf, w.Control2)
		buf = binary.LittleEndian.AppendUint32(buf, uint32(w.Type))
		buf = binary.LittleEndian.AppendUint32(buf, 0)
	}
	if c, ok := n.(*CurveTo); ok {
		buf = appendPoint(buf, c.Ctrl1)
		buf = appendPoint(buf, c.Ctrl2)
	}
	return buf
}

func appendFloat(buf []byte, f float64) []byte {
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(f))
}

func appendPoint(buf []byte, p Point) []byte {
	return appendFloat(appendFloat(buf, p.X), p.Y)
}

// DecodePaths parses bare path records. A node whose kind is unknown or
// whose recorded size does not match its kind discards the rest of its path;
// decoding continues with the next path. A path length field that cannot be
// honoured ends decoding. Paths left empty are dropped.
func DecodePaths(buf []byte) Paths {
	var paths Paths
	for off := 0; off < len(buf); {
		if len(buf)-off < pathLenSize {
			Logger().Warn("liquify: trailing bytes in params", "offset", off)
			break
		}
		plen := binary.LittleEndian.Uint64(buf[off:])
		if plen < pathLenSize || plen > uint64(len(buf)-off) {
			Logger().Warn("liquify: bad path length", "offset", off, "length", plen)
			break
		}
		end := off + int(plen)
		if p := decodePath(buf[off+pathLenSize:end], off); len(p) > 0 {
			paths = append(paths, p)
		}
		off = end
	}
	return paths
}

func decodePath(buf []byte, at int) Path {
	var p Path
	for off := 0; off < len(buf); {
		n, size := decodeNode(buf[off:])
		if n == nil {
			Logger().Warn("liquify: skipping corrupt path tail", "offset", at+pathLenSize+off)
			break
		}
		if len(p) == 0 && n.Kind() != KindMoveTo {
			Logger().Warn("liquify: path does not start with move_to", "offset", at)
			break
		}
		p = append(p, n)
		off += size
	}
	return p
}

// decodeNode returns nil when the record is invalid.
func decodeNode(buf []byte) (Node, int) {
	if len(buf) < headerSize {
		return nil, 0
	}
	size := binary.LittleEndian.Uint64(buf)
	kind := NodeKind(binary.LittleEndian.Uint32(buf[8:]))
	want := recordSize(kind)
	if want == 0 || size != uint64(want) || len(buf) < want {
		return nil, 0
	}
	h := NodeHeader{
		NodeType: NodeType(binary.LittleEndian.Uint32(buf[12:])),
		Selected: int(int32(binary.LittleEndian.Uint32(buf[16:]))),
		Hovered:  int(int32(binary.LittleEndian.Uint32(buf[20:]))),
	}
	if kind == KindClosePath {
		return &ClosePath{NodeHeader: h}, want
	}

	r := reader{buf: buf[headerSize:]}
	w := Warp{
		Point:    r.point(),
		Strength: r.point(),
		Radius:   r.point(),
		Control1: r.float(),
		Control2: r.float(),
		Type:     WarpType(r.uint32()),
	}
	r.uint32()

	switch kind {
	case KindMoveTo:
		return &MoveTo{NodeHeader: h, Warp: w}, want
	case KindLineTo:
		return &LineTo{NodeHeader: h, Warp: w}, want
	default:
		c := &CurveTo{NodeHeader: h, Warp: w}
		c.Ctrl1 = r.point()
		c.Ctrl2 = r.point()
		return c, want
	}
}

type reader struct {
	buf []byte
	off int
}

func (r *reader) uint32() uint32 {
	v := binary.LittleEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *reader) float() float64 {
	v := math.Float64frombits(binary.LittleEndian.Uint64(r.buf[r.off:]))
	r.off += 8
	return v
}

func (r *reader) point() Point {
	x := r.float()
	return Point{X: x, Y: r.float()}
}
