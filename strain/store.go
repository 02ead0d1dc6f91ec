// Package strain stores the per-event frequency-domain detector arrays the
// metadata codec never touches: one binary file per simulated event holding
// the shared frequency bins plus each detector's strain and noise PSD.
//
// Files are written atomically (temporary sibling, sync, rename) and carry
// a checksummed header plus a payload CRC, so a truncated or bit-flipped
// file is reported rather than silently decoded.
package strain

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"math"
	"os"
	"sort"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/gwbench/gwbench2g/internal/fs"
)

// Compression selects the payload encoding of a strain file.
type Compression uint8

const (
	// CompressionNone stores the payload raw.
	CompressionNone Compression = iota
	// CompressionLZ4 stores the payload as an LZ4 frame.
	CompressionLZ4
	// CompressionZstd stores the payload as a zstd stream.
	CompressionZstd
)

// String returns the string representation of the Compression.
func (c Compression) String() string {
	switch c {
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return "none"
	}
}

// ParseCompression maps a config/flag string onto a Compression.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

func (c Compression) flag() uint32 {
	switch c {
	case CompressionLZ4:
		return FlagLZ4
	case CompressionZstd:
		return FlagZstd
	default:
		return 0
	}
}

// Series is one detector's frequency-domain data. Strain and PSD are
// parallel to the event's shared frequency array.
type Series struct {
	Strain []complex128
	PSD    []float64
}

// Event is the array payload of one simulated event.
type Event struct {
	FrequencyArray []float64
	Detectors      map[string]Series
}

// writeOptions configures Write.
type writeOptions struct {
	compression Compression
	fsys        fs.FileSystem
}

// WriteOption configures Write.
type WriteOption func(*writeOptions)

// WithCompression selects the payload compression.
func WithCompression(c Compression) WriteOption {
	return func(o *writeOptions) { o.compression = c }
}

// WithFileSystem overrides the filesystem used for writing.
func WithFileSystem(fsys fs.FileSystem) WriteOption {
	return func(o *writeOptions) {
		if fsys != nil {
			o.fsys = fsys
		}
	}
}

// Write stores the event at path atomically. Every detector's arrays must
// match the frequency array's length.
func Write(path string, ev *Event, opts ...WriteOption) error {
	o := writeOptions{fsys: fs.Default}
	for _, opt := range opts {
		opt(&o)
	}

	bins := len(ev.FrequencyArray)
	names := make([]string, 0, len(ev.Detectors))
	for name, s := range ev.Detectors {
		if len(s.Strain) != bins || len(s.PSD) != bins {
			return fmt.Errorf("%w: detector %q has %d strain and %d psd bins, want %d",
				ErrLengthMismatch, name, len(s.Strain), len(s.PSD), bins)
		}
		names = append(names, name)
	}
	sort.Strings(names)

	raw := encodePayload(ev, names)
	stored, err := compress(raw, o.compression)
	if err != nil {
		return err
	}

	h := fileHeader{
		Magic:         FormatMagic,
		Version:       FormatVersion,
		Flags:         o.compression.flag(),
		DetectorCount: uint32(len(names)),
		BinCount:      uint64(bins),
		PayloadSize:   uint64(len(stored)),
		RawSize:       uint64(len(raw)),
	}

	return fs.WriteAtomic(o.fsys, path, 0o644, func(w io.Writer) error {
		if err := h.writeTo(w); err != nil {
			return err
		}
		if err := writeDirectory(w, names); err != nil {
			return err
		}
		if _, err := w.Write(stored); err != nil {
			return err
		}
		var crc [4]byte
		binary.LittleEndian.PutUint32(crc[:], crc32.ChecksumIEEE(stored))
		_, err := w.Write(crc[:])
		return err
	})
}

// Read loads the event stored at path, validating the header and payload
// checksums before decoding.
func Read(path string) (*Event, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	h, err := readHeader(f)
	if err != nil {
		return nil, err
	}
	names, err := readDirectory(f, int(h.DetectorCount))
	if err != nil {
		return nil, err
	}

	stored := make([]byte, h.PayloadSize)
	if _, err := io.ReadFull(f, stored); err != nil {
		return nil, err
	}
	var crc [4]byte
	if _, err := io.ReadFull(f, crc[:]); err != nil {
		return nil, err
	}
	if binary.LittleEndian.Uint32(crc[:]) != crc32.ChecksumIEEE(stored) {
		return nil, ErrCorrupted
	}

	raw, err := decompress(stored, h.compression(), int(h.RawSize))
	if err != nil {
		return nil, err
	}
	if uint64(len(raw)) != h.RawSize {
		return nil, ErrCorrupted
	}
	return decodePayload(raw, names, int(h.BinCount))
}

func writeDirectory(w io.Writer, names []string) error {
	for _, name := range names {
		var n [2]byte
		binary.LittleEndian.PutUint16(n[:], uint16(len(name)))
		if _, err := w.Write(n[:]); err != nil {
			return err
		}
		if _, err := io.WriteString(w, name); err != nil {
			return err
		}
	}
	return nil
}

func readDirectory(r io.Reader, count int) ([]string, error) {
	names := make([]string, count)
	for i := range names {
		var n [2]byte
		if _, err := io.ReadFull(r, n[:]); err != nil {
			return nil, err
		}
		name := make([]byte, binary.LittleEndian.Uint16(n[:]))
		if _, err := io.ReadFull(r, name); err != nil {
			return nil, err
		}
		names[i] = string(name)
	}
	return names, nil
}

// encodePayload lays out the frequency array followed by each detector's
// strain (real, imaginary interleaved) and PSD, in directory order.
func encodePayload(ev *Event, names []string) []byte {
	bins := len(ev.FrequencyArray)
	size := 8 * bins * (1 + 3*len(names))
	buf := make([]byte, 0, size)

	for _, v := range ev.FrequencyArray {
		buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
	}
	for _, name := range names {
		s := ev.Detectors[name]
		for _, c := range s.Strain {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(real(c)))
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(imag(c)))
		}
		for _, v := range s.PSD {
			buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(v))
		}
	}
	return buf
}

func decodePayload(raw []byte, names []string, bins int) (*Event, error) {
	want := 8 * bins * (1 + 3*len(names))
	if len(raw) != want {
		return nil, ErrCorrupted
	}

	readFloats := func(n int) []float64 {
		out := make([]float64, n)
		for i := range out {
			out[i] = math.Float64frombits(binary.LittleEndian.Uint64(raw[:8]))
			raw = raw[8:]
		}
		return out
	}

	ev := &Event{
		FrequencyArray: readFloats(bins),
		Detectors:      make(map[string]Series, len(names)),
	}
	for _, name := range names {
		interleaved := readFloats(2 * bins)
		strain := make([]complex128, bins)
		for i := range strain {
			strain[i] = complex(interleaved[2*i], interleaved[2*i+1])
		}
		ev.Detectors[name] = Series{Strain: strain, PSD: readFloats(bins)}
	}
	return ev, nil
}

func compress(raw []byte, c Compression) ([]byte, error) {
	switch c {
	case CompressionNone:
		return raw, nil
	case CompressionLZ4:
		var buf bytes.Buffer
		zw := lz4.NewWriter(&buf)
		if _, err := zw.Write(raw); err != nil {
			return nil, err
		}
		if err := zw.Close(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(nil)
		if err != nil {
			return nil, err
		}
		defer zw.Close()
		return zw.EncodeAll(raw, nil), nil
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}
}

func decompress(stored []byte, c Compression, rawSize int) ([]byte, error) {
	switch c {
	case CompressionNone:
		return stored, nil
	case CompressionLZ4:
		raw := make([]byte, 0, rawSize)
		buf := bytes.NewBuffer(raw)
		if _, err := io.Copy(buf, lz4.NewReader(bytes.NewReader(stored))); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
		}
		return buf.Bytes(), nil
	case CompressionZstd:
		zr, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer zr.Close()
		raw, err := zr.DecodeAll(stored, make([]byte, 0, rawSize))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCorrupted, err)
		}
		return raw, nil
	default:
		return nil, fmt.Errorf("unknown compression %d", c)
	}
}
