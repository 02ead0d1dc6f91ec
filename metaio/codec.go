package metaio

import (
	"fmt"
	"io"
	"maps"
	"os"
	"strconv"

	"github.com/parquet-go/parquet-go"

	"github.com/gwbench/gwbench2g/internal/fs"
)

// readBatchSize is the number of rows decoded per reader call.
const readBatchSize = 128

// Codec encodes metadata records into the fixed parquet layout and decodes
// them back. Both directions are stateless transforms; a Codec carries only
// the filesystem used by the encode path, so tests can inject faults.
//
// Concurrent use against distinct files is safe. Writes to the same path
// must be serialized by the caller.
type Codec struct {
	fsys fs.FileSystem
}

// CodecOption configures a Codec.
type CodecOption func(*Codec)

// WithFileSystem overrides the filesystem used when writing. Nil restores
// the local filesystem.
func WithFileSystem(fsys fs.FileSystem) CodecOption {
	return func(c *Codec) {
		if fsys == nil {
			fsys = fs.Default
		}
		c.fsys = fsys
	}
}

// NewCodec creates a Codec.
func NewCodec(opts ...CodecOption) *Codec {
	c := &Codec{fsys: fs.Default}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Encode writes records as one parquet table at path, row i holding
// records[i]. The whole batch is validated before any byte is written and
// the file appears atomically: on any error the destination is either
// absent or left at its previous content.
func (c *Codec) Encode(records []InjectionMetaData, path string) error {
	rows := make([]parquet.Row, len(records))
	for i := range records {
		row, err := toRow(records[i])
		if err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		rows[i] = buildRow(row)
	}

	return fs.WriteAtomic(c.fsys, path, 0o644, func(w io.Writer) error {
		pw := parquet.NewGenericWriter[injectionRow](w,
			parquet.KeyValueMetadata(schemaVersionKey, strconv.Itoa(SchemaVersion)),
		)
		if len(rows) > 0 {
			if _, err := pw.WriteRows(rows); err != nil {
				return err
			}
		}
		return pw.Close()
	})
}

// checkSchemaVersion verifies the layout stamp written by Encode. Files
// without a stamp, or stamped with a different version, are refused before
// any row is read.
func checkSchemaVersion(view parquet.FileView, path string) error {
	raw, ok := view.Lookup(schemaVersionKey)
	if !ok {
		return &UnsupportedVersionError{Path: path}
	}
	if v, err := strconv.Atoi(raw); err != nil || v != SchemaVersion {
		return &UnsupportedVersionError{Path: path, Version: raw}
	}
	return nil
}

// DecodeAll reads the full table at path and reconstructs every record in
// stored order. An empty table decodes to an empty slice. A file whose
// layout stamp does not match SchemaVersion fails with
// *UnsupportedVersionError, as do DecodeOne and RowCount.
func (c *Codec) DecodeAll(path string) ([]InjectionMetaData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := parquet.NewGenericReader[injectionRow](f)
	defer r.Close()
	if err := checkSchemaVersion(r.File(), path); err != nil {
		return nil, err
	}

	out := make([]InjectionMetaData, 0, r.NumRows())
	buf := make([]injectionRow, readBatchSize)
	var idx int64
	for {
		n, rerr := r.Read(buf)
		for i := 0; i < n; i++ {
			rec, err := fromRow(buf[i], idx)
			if err != nil {
				return nil, err
			}
			out = append(out, rec)
			idx++
		}
		if rerr == io.EOF {
			return out, nil
		}
		if rerr != nil {
			return nil, rerr
		}
	}
}

// DecodeOne reconstructs the single record at the zero-based index. The
// reader seeks to the row group holding the index rather than materializing
// the table. An index outside [0, rows) fails with *OutOfRangeError.
func (c *Codec) DecodeOne(path string, index int64) (InjectionMetaData, error) {
	f, err := os.Open(path)
	if err != nil {
		return InjectionMetaData{}, err
	}
	defer f.Close()

	r := parquet.NewGenericReader[injectionRow](f)
	defer r.Close()
	if err := checkSchemaVersion(r.File(), path); err != nil {
		return InjectionMetaData{}, err
	}

	rows := r.NumRows()
	if index < 0 || index >= rows {
		return InjectionMetaData{}, &OutOfRangeError{Index: index, Rows: rows}
	}
	if err := r.SeekToRow(index); err != nil {
		return InjectionMetaData{}, err
	}

	var buf [1]injectionRow
	n, rerr := r.Read(buf[:])
	if n < 1 {
		if rerr != nil && rerr != io.EOF {
			return InjectionMetaData{}, rerr
		}
		return InjectionMetaData{}, io.ErrUnexpectedEOF
	}
	return fromRow(buf[0], index)
}

// RowCount reports the number of records stored at path without reading any
// row data.
func (c *Codec) RowCount(path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	r := parquet.NewGenericReader[injectionRow](f)
	defer r.Close()
	if err := checkSchemaVersion(r.File(), path); err != nil {
		return 0, err
	}
	return r.NumRows(), nil
}

var defaultCodec = NewCodec()

// Encode writes records at path using the default codec.
func Encode(records []InjectionMetaData, path string) error {
	return defaultCodec.Encode(records, path)
}

// DecodeAll reads every record at path using the default codec.
func DecodeAll(path string) ([]InjectionMetaData, error) {
	return defaultCodec.DecodeAll(path)
}

// DecodeOne reads the record at index using the default codec.
func DecodeOne(path string, index int64) (InjectionMetaData, error) {
	return defaultCodec.DecodeOne(path, index)
}

// RowCount reports the number of records at path using the default codec.
func RowCount(path string) (int64, error) {
	return defaultCodec.RowCount(path)
}

// toRow maps a record onto the stored layout, routing each waveform kwarg
// into the sub-map matching its Kind. The dispatch rule is the Kind alone.
func toRow(rec InjectionMetaData) (injectionRow, error) {
	kw := waveformKwargsRow{
		Ints:    make(map[string]int64),
		Floats:  make(map[string]float64),
		Strings: make(map[string]string),
	}
	for k, v := range rec.WaveformKwargs {
		switch v.Kind {
		case KindInt:
			kw.Ints[k] = v.I64
		case KindFloat:
			kw.Floats[k] = v.F64
		case KindString:
			kw.Strings[k] = v.Str
		default:
			return injectionRow{}, &SchemaViolationError{Field: "waveform_kwargs", Key: k, Kind: v.Kind}
		}
	}

	dets := make(map[string]map[string]float64, len(rec.Detectors))
	for name, d := range rec.Detectors {
		sub := map[string]float64{
			detKeyMinimumFrequency: d.MinimumFrequency,
			detKeyMaximumFrequency: d.MaximumFrequency,
		}
		if d.OptimalSNR != nil {
			sub[detKeyOptimalSNR] = *d.OptimalSNR
		}
		if d.MatchedFilterSNR != nil {
			sub[detKeyMatchedFilterSNR] = *d.MatchedFilterSNR
		}
		dets[name] = sub
	}

	row := injectionRow{
		WaveformKwargs:    kw,
		Detectors:         dets,
		Duration:          rec.Duration,
		SamplingFrequency: rec.SamplingFrequency,
	}
	if rec.InjectionParameters != nil {
		m := maps.Clone(rec.InjectionParameters)
		row.InjectionParameters = &m
	}
	if rec.FixedParameters != nil {
		m := maps.Clone(rec.FixedParameters)
		row.FixedParameters = &m
	}
	if rec.Seed != nil {
		row.Seed = ptr(*rec.Seed)
	}
	if rec.NetworkOptimalSNR != nil {
		row.NetworkOptimalSNR = ptr(*rec.NetworkOptimalSNR)
	}
	if rec.NetworkMatchedFilterSNR != nil {
		row.NetworkMatchedFilterSNR = ptr(*rec.NetworkMatchedFilterSNR)
	}
	return row, nil
}

// fromRow reconstructs a record from the stored layout. The typed sub-maps
// merge back into one kwargs map; a key present in more than one sub-map is
// corruption, not a precedence question.
func fromRow(row injectionRow, idx int64) (InjectionMetaData, error) {
	nkw := len(row.WaveformKwargs.Ints) + len(row.WaveformKwargs.Floats) + len(row.WaveformKwargs.Strings)
	kw := make(map[string]Value, nkw)
	for k, v := range row.WaveformKwargs.Ints {
		kw[k] = Int(v)
	}
	for k, v := range row.WaveformKwargs.Floats {
		if _, dup := kw[k]; dup {
			return InjectionMetaData{}, &CorruptDataError{Row: idx, Key: k, Detail: "present in more than one waveform_kwargs sub-map"}
		}
		kw[k] = Float(v)
	}
	for k, v := range row.WaveformKwargs.Strings {
		if _, dup := kw[k]; dup {
			return InjectionMetaData{}, &CorruptDataError{Row: idx, Key: k, Detail: "present in more than one waveform_kwargs sub-map"}
		}
		kw[k] = String(v)
	}

	dets := make(map[string]DetectorMetaData, len(row.Detectors))
	for name, sub := range row.Detectors {
		var d DetectorMetaData
		for key, val := range sub {
			switch key {
			case detKeyMinimumFrequency:
				d.MinimumFrequency = val
			case detKeyMaximumFrequency:
				d.MaximumFrequency = val
			case detKeyOptimalSNR:
				d.OptimalSNR = ptr(val)
			case detKeyMatchedFilterSNR:
				d.MatchedFilterSNR = ptr(val)
			default:
				return InjectionMetaData{}, &CorruptDataError{Row: idx, Key: key, Detail: fmt.Sprintf("unknown field in detector %q", name)}
			}
		}
		dets[name] = d
	}

	m := InjectionMetaData{
		WaveformKwargs:    kw,
		Detectors:         dets,
		Duration:          row.Duration,
		SamplingFrequency: row.SamplingFrequency,
	}
	// A stored null decodes to absent; a stored empty map decodes to an
	// empty, non-nil mapping.
	if row.InjectionParameters != nil {
		m.InjectionParameters = maps.Clone(*row.InjectionParameters)
		if m.InjectionParameters == nil {
			m.InjectionParameters = make(map[string]float64)
		}
	}
	if row.FixedParameters != nil {
		m.FixedParameters = maps.Clone(*row.FixedParameters)
		if m.FixedParameters == nil {
			m.FixedParameters = make(map[string]float64)
		}
	}
	if row.Seed != nil {
		m.Seed = ptr(*row.Seed)
	}
	if row.NetworkOptimalSNR != nil {
		m.NetworkOptimalSNR = ptr(*row.NetworkOptimalSNR)
	}
	if row.NetworkMatchedFilterSNR != nil {
		m.NetworkMatchedFilterSNR = ptr(*row.NetworkMatchedFilterSNR)
	}
	return m, nil
}
