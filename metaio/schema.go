package metaio

import "github.com/parquet-go/parquet-go"

// SchemaVersion identifies the row layout below. Bump it whenever the layout
// changes; the writer stamps it into the file's key/value metadata.
const SchemaVersion = 1

// schemaVersionKey is the file-metadata key carrying SchemaVersion.
const schemaVersionKey = "gwbench2g.schema_version"

// Keys of the per-detector sub-map. The frequency bounds are always present;
// the SNR keys are omitted (not stored as null) when the record is blinded.
const (
	detKeyMinimumFrequency = "minimum_frequency"
	detKeyMaximumFrequency = "maximum_frequency"
	detKeyOptimalSNR       = "optimal_snr"
	detKeyMatchedFilterSNR = "matched_filter_snr"
)

// injectionRow is the stored layout of one InjectionMetaData record.
//
// Parquet maps are single-typed, so the heterogeneous waveform kwargs are
// split into the three typed sub-maps of waveformKwargsRow. Pointer fields
// are nullable; the pointer-to-map fields keep the nil-versus-empty
// distinction through the definition levels (nil pointer stores null, a
// pointer to an empty map stores a present, empty map).
type injectionRow struct {
	InjectionParameters     *map[string]float64           `parquet:"injection_parameters,optional"`
	FixedParameters         *map[string]float64           `parquet:"fixed_parameters,optional"`
	WaveformKwargs          waveformKwargsRow             `parquet:"waveform_kwargs"`
	Seed                    *int64                        `parquet:"seed,optional"`
	Detectors               map[string]map[string]float64 `parquet:"detectors"`
	Duration                float64                       `parquet:"duration"`
	SamplingFrequency       float64                       `parquet:"sampling_frequency"`
	NetworkOptimalSNR       *float64                      `parquet:"network_optimal_snr,optional"`
	NetworkMatchedFilterSNR *float64                      `parquet:"network_matched_filter_snr,optional"`
}

// waveformKwargsRow holds the typed split of the waveform kwargs. A sub-map
// with no keys of its type is stored as an empty map, never as a missing
// struct field.
type waveformKwargsRow struct {
	Ints    map[string]int64   `parquet:"ints"`
	Floats  map[string]float64 `parquet:"floats"`
	Strings map[string]string  `parquet:"strings"`
}

// Schema returns the parquet schema of the metadata table. Encode and decode
// both derive from the same row type, so the two directions cannot drift.
func Schema() *parquet.Schema {
	return parquet.SchemaOf(injectionRow{})
}
