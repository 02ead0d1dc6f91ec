package metaio

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/parquet-go/parquet-go"
)

// columnLayout holds the leaf column indexes of the stored schema. The
// indexes are resolved from the schema itself so a change in field ordering
// cannot silently scramble the writer.
type columnLayout struct {
	numColumns int

	injParamsKey   int
	injParamsValue int
	fixParamsKey   int
	fixParamsValue int

	kwIntsKey      int
	kwIntsValue    int
	kwFloatsKey    int
	kwFloatsValue  int
	kwStringsKey   int
	kwStringsValue int

	seed int

	detName     int
	detFieldKey int
	detFieldVal int

	duration          int
	samplingFrequency int

	netOptimalSNR       int
	netMatchedFilterSNR int
}

var layout = resolveLayout(Schema())

func resolveLayout(schema *parquet.Schema) columnLayout {
	columns := schema.Columns()
	index := make(map[string]int, len(columns))
	for i, path := range columns {
		index[strings.Join(path, ".")] = i
	}
	col := func(path string) int {
		i, ok := index[path]
		if !ok {
			panic(fmt.Sprintf("metaio: schema has no column %q", path))
		}
		return i
	}
	return columnLayout{
		numColumns: len(columns),

		injParamsKey:   col("injection_parameters.key_value.key"),
		injParamsValue: col("injection_parameters.key_value.value"),
		fixParamsKey:   col("fixed_parameters.key_value.key"),
		fixParamsValue: col("fixed_parameters.key_value.value"),

		kwIntsKey:      col("waveform_kwargs.ints.key_value.key"),
		kwIntsValue:    col("waveform_kwargs.ints.key_value.value"),
		kwFloatsKey:    col("waveform_kwargs.floats.key_value.key"),
		kwFloatsValue:  col("waveform_kwargs.floats.key_value.value"),
		kwStringsKey:   col("waveform_kwargs.strings.key_value.key"),
		kwStringsValue: col("waveform_kwargs.strings.key_value.value"),

		seed: col("seed"),

		detName:     col("detectors.key_value.key"),
		detFieldKey: col("detectors.key_value.value.key_value.key"),
		detFieldVal: col("detectors.key_value.value.key_value.value"),

		duration:          col("duration"),
		samplingFrequency: col("sampling_frequency"),

		netOptimalSNR:       col("network_optimal_snr"),
		netMatchedFilterSNR: col("network_matched_filter_snr"),
	}
}

// buildRow lowers one stored row onto flat column values with hand-stamped
// repetition and definition levels. Map keys are written in sorted order so
// identical inputs produce identical files.
//
// The generic writer cannot lower the nested detectors map itself: its
// reflection path dereferences a nil pointer on any non-empty
// map-of-map field, so the codec hands it pre-built rows instead.
func buildRow(row injectionRow) parquet.Row {
	cols := make([][]parquet.Value, layout.numColumns)

	appendNullableMap(cols, layout.injParamsKey, layout.injParamsValue, row.InjectionParameters, parquet.DoubleValue)
	appendNullableMap(cols, layout.fixParamsKey, layout.fixParamsValue, row.FixedParameters, parquet.DoubleValue)

	appendMapEntries(cols, layout.kwIntsKey, layout.kwIntsValue, row.WaveformKwargs.Ints, 0, 1, parquet.Int64Value)
	appendMapEntries(cols, layout.kwFloatsKey, layout.kwFloatsValue, row.WaveformKwargs.Floats, 0, 1, parquet.DoubleValue)
	appendMapEntries(cols, layout.kwStringsKey, layout.kwStringsValue, row.WaveformKwargs.Strings, 0, 1, stringValue)

	appendNullableScalar(cols, layout.seed, row.Seed, parquet.Int64Value)

	appendDetectors(cols, row.Detectors)

	cols[layout.duration] = append(cols[layout.duration],
		parquet.DoubleValue(row.Duration).Level(0, 0, layout.duration))
	cols[layout.samplingFrequency] = append(cols[layout.samplingFrequency],
		parquet.DoubleValue(row.SamplingFrequency).Level(0, 0, layout.samplingFrequency))

	appendNullableScalar(cols, layout.netOptimalSNR, row.NetworkOptimalSNR, parquet.DoubleValue)
	appendNullableScalar(cols, layout.netMatchedFilterSNR, row.NetworkMatchedFilterSNR, parquet.DoubleValue)

	n := 0
	for _, c := range cols {
		n += len(c)
	}
	out := make(parquet.Row, 0, n)
	for _, c := range cols {
		out = append(out, c...)
	}
	return out
}

func stringValue(s string) parquet.Value {
	return parquet.ByteArrayValue([]byte(s))
}

// appendMapEntries appends one key/value pair per entry, or a single null at
// nullDef when the map has no entries. entryDef is the definition level of a
// present entry; the first entry opens the record at repetition level zero.
func appendMapEntries[V any](cols [][]parquet.Value, keyCol, valCol int, m map[string]V, nullDef, entryDef int, value func(V) parquet.Value) {
	if len(m) == 0 {
		cols[keyCol] = append(cols[keyCol], parquet.NullValue().Level(0, nullDef, keyCol))
		cols[valCol] = append(cols[valCol], parquet.NullValue().Level(0, nullDef, valCol))
		return
	}
	rep := 0
	for _, k := range slices.Sorted(maps.Keys(m)) {
		cols[keyCol] = append(cols[keyCol], stringValue(k).Level(rep, entryDef, keyCol))
		cols[valCol] = append(cols[valCol], value(m[k]).Level(rep, entryDef, valCol))
		rep = 1
	}
}

// appendNullableMap lowers an optional map column pair. A nil pointer stores
// null, a pointer to an empty map stores a present map with no entries; the
// two land at distinct definition levels and survive a round trip.
func appendNullableMap[V any](cols [][]parquet.Value, keyCol, valCol int, m *map[string]V, value func(V) parquet.Value) {
	if m == nil {
		cols[keyCol] = append(cols[keyCol], parquet.NullValue().Level(0, 0, keyCol))
		cols[valCol] = append(cols[valCol], parquet.NullValue().Level(0, 0, valCol))
		return
	}
	appendMapEntries(cols, keyCol, valCol, *m, 1, 2, value)
}

func appendNullableScalar[V any](cols [][]parquet.Value, col int, v *V, value func(V) parquet.Value) {
	if v == nil {
		cols[col] = append(cols[col], parquet.NullValue().Level(0, 0, col))
		return
	}
	cols[col] = append(cols[col], value(*v).Level(0, 1, col))
}

// appendDetectors lowers the two-level detectors map. The inner entries sit
// one repetition level below the detector names; an empty inner map stores a
// null at the outer entry's definition level.
func appendDetectors(cols [][]parquet.Value, dets map[string]map[string]float64) {
	nameCol, keyCol, valCol := layout.detName, layout.detFieldKey, layout.detFieldVal
	if len(dets) == 0 {
		cols[nameCol] = append(cols[nameCol], parquet.NullValue().Level(0, 0, nameCol))
		cols[keyCol] = append(cols[keyCol], parquet.NullValue().Level(0, 0, keyCol))
		cols[valCol] = append(cols[valCol], parquet.NullValue().Level(0, 0, valCol))
		return
	}
	outerRep := 0
	for _, name := range slices.Sorted(maps.Keys(dets)) {
		cols[nameCol] = append(cols[nameCol], stringValue(name).Level(outerRep, 1, nameCol))
		sub := dets[name]
		if len(sub) == 0 {
			cols[keyCol] = append(cols[keyCol], parquet.NullValue().Level(outerRep, 1, keyCol))
			cols[valCol] = append(cols[valCol], parquet.NullValue().Level(outerRep, 1, valCol))
		} else {
			rep := outerRep
			for _, k := range slices.Sorted(maps.Keys(sub)) {
				cols[keyCol] = append(cols[keyCol], stringValue(k).Level(rep, 2, keyCol))
				cols[valCol] = append(cols[valCol], parquet.DoubleValue(sub[k]).Level(rep, 2, valCol))
				rep = 2
			}
		}
		outerRep = 1
	}
}
