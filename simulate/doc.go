// Package simulate generates synthetic gravitational-wave benchmark events.
//
// A Config drives a level-specific simulation: physical source parameters
// are drawn from an aligned-spin binary-black-hole prior, an inspiral signal
// is injected into Gaussian detector noise colored by an analytic sensitivity
// curve, and per-detector signal-to-noise ratios are computed. Each event
// yields the frequency-domain data for every configured detector plus one
// metaio.InjectionMetaData record.
//
// The same seed always produces the same event sequence. Levels form a
// closed set: adding a dataset-generation strategy means adding a Level
// constant and its case in Run, so an unknown level is always a checkable
// error rather than a missing registry entry.
package simulate
