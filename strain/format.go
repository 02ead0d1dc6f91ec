package strain

import (
	"encoding/binary"
	"errors"
	"hash/crc32"
	"io"
)

const (
	// FormatMagic identifies strain event files (ASCII: "GWS0")
	FormatMagic = 0x47575330

	// FormatVersion is the current strain file format version
	FormatVersion uint32 = 1

	// HeaderSize is the size of the file header in bytes
	HeaderSize = 64

	// FlagLZ4 indicates the payload section is LZ4-compressed.
	FlagLZ4 uint32 = 1 << 0
	// FlagZstd indicates the payload section is zstd-compressed.
	FlagZstd uint32 = 1 << 1
)

var (
	// ErrInvalidMagic is returned when a file has an invalid magic number.
	ErrInvalidMagic = errors.New("strain: invalid magic number")

	// ErrInvalidVersion is returned when a file has an unsupported version.
	ErrInvalidVersion = errors.New("strain: unsupported format version")

	// ErrCorrupted is returned when a file fails checksum validation.
	ErrCorrupted = errors.New("strain: file corrupted (checksum mismatch)")

	// ErrLengthMismatch is returned when a detector's arrays disagree on
	// the number of frequency bins.
	ErrLengthMismatch = errors.New("strain: array length mismatch")
)

// fileHeader is the 64-byte header at the start of strain event files.
//
// All multi-byte fields are little-endian. The payload (frequency array,
// then per-detector strain and PSD arrays in directory order) follows the
// detector directory and is covered by a trailing CRC32 of its stored,
// possibly compressed, bytes.
type fileHeader struct {
	Magic         uint32
	Version       uint32
	Flags         uint32
	DetectorCount uint32
	BinCount      uint64
	PayloadSize   uint64 // stored payload size in bytes
	RawSize       uint64 // payload size after decompression
	Checksum      uint32 // CRC32 of the preceding header fields
}

// headerChecksumSpan is the number of header bytes covered by Checksum.
const headerChecksumSpan = 40

func (h *fileHeader) validate() error {
	if h.Magic != FormatMagic {
		return ErrInvalidMagic
	}
	if h.Version > FormatVersion {
		return ErrInvalidVersion
	}
	return nil
}

func (h *fileHeader) compression() Compression {
	switch {
	case h.Flags&FlagZstd != 0:
		return CompressionZstd
	case h.Flags&FlagLZ4 != 0:
		return CompressionLZ4
	default:
		return CompressionNone
	}
}

func (h *fileHeader) writeTo(w io.Writer) error {
	buf := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint32(buf[4:8], h.Version)
	binary.LittleEndian.PutUint32(buf[8:12], h.Flags)
	binary.LittleEndian.PutUint32(buf[12:16], h.DetectorCount)
	binary.LittleEndian.PutUint64(buf[16:24], h.BinCount)
	binary.LittleEndian.PutUint64(buf[24:32], h.PayloadSize)
	binary.LittleEndian.PutUint64(buf[32:40], h.RawSize)

	h.Checksum = crc32.ChecksumIEEE(buf[:headerChecksumSpan])
	binary.LittleEndian.PutUint32(buf[40:44], h.Checksum)

	_, err := w.Write(buf)
	return err
}

func readHeader(r io.Reader) (fileHeader, error) {
	buf := make([]byte, HeaderSize)
	if _, err := io.ReadFull(r, buf); err != nil {
		return fileHeader{}, err
	}

	h := fileHeader{
		Magic:         binary.LittleEndian.Uint32(buf[0:4]),
		Version:       binary.LittleEndian.Uint32(buf[4:8]),
		Flags:         binary.LittleEndian.Uint32(buf[8:12]),
		DetectorCount: binary.LittleEndian.Uint32(buf[12:16]),
		BinCount:      binary.LittleEndian.Uint64(buf[16:24]),
		PayloadSize:   binary.LittleEndian.Uint64(buf[24:32]),
		RawSize:       binary.LittleEndian.Uint64(buf[32:40]),
		Checksum:      binary.LittleEndian.Uint32(buf[40:44]),
	}
	if err := h.validate(); err != nil {
		return fileHeader{}, err
	}
	if h.Checksum != crc32.ChecksumIEEE(buf[:headerChecksumSpan]) {
		return fileHeader{}, ErrCorrupted
	}
	return h, nil
}
