// Package metaio defines the on-disk layout of injection metadata and the
// codec that moves records in and out of it.
//
// One parquet file holds one dataset batch: a single columnar table with a
// fixed schema, one row per simulated event, in simulation order. The codec
// treats the schema as a breaking-change boundary: files written with an
// older schema version may no longer decode after a schema change.
//
// The only representational trick is the waveform keyword-argument map. Its
// values are heterogeneous (integer, float, or text per key) while parquet
// maps are single-typed, so the encoder splits the map into three parallel
// typed sub-maps and the decoder merges them back. A key found in more than
// one sub-map on decode is reported as corruption, never silently merged.
package metaio
