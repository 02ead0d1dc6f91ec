package metaio

// Disclosure selects, at record construction time, which group of fields is
// populated versus withheld. It is the only place the blinding decision is
// made; individual fields are never blinded independently.
type Disclosure uint8

const (
	// Disclosed keeps the injected parameters, seed and SNRs in the record.
	Disclosed Disclosure = iota
	// Blinded withholds the injected parameters, seed and all SNRs.
	Blinded
)

// String returns the string representation of the Disclosure.
func (d Disclosure) String() string {
	if d == Blinded {
		return "blinded"
	}
	return "disclosed"
}

// DetectorMetaData describes one interferometer's view of a simulated event.
//
// The SNR fields are nil when the record was built blinded.
type DetectorMetaData struct {
	MinimumFrequency float64
	MaximumFrequency float64
	OptimalSNR       *float64
	MatchedFilterSNR *float64
}

// InjectionMetaData is the record stored once per simulated event.
//
// Records are immutable after construction: built once by the simulation
// step, written once via Encode, and from then on only read back.
//
// Nil and empty maps mean different things and both survive a round trip:
// a nil InjectionParameters map is an absent (blinded) field, an empty
// non-nil map is a present field with no entries.
type InjectionMetaData struct {
	InjectionParameters     map[string]float64
	FixedParameters         map[string]float64
	WaveformKwargs          map[string]Value
	Seed                    *int64
	Detectors               map[string]DetectorMetaData
	Duration                float64
	SamplingFrequency       float64
	NetworkOptimalSNR       *float64
	NetworkMatchedFilterSNR *float64
}

// Draft carries the fully disclosed measurement of one simulated event,
// before the blinding decision is applied.
type Draft struct {
	InjectionParameters     map[string]float64
	FixedParameters         map[string]float64
	WaveformKwargs          map[string]Value
	Seed                    int64
	Detectors               map[string]DetectorDraft
	Duration                float64
	SamplingFrequency       float64
	NetworkOptimalSNR       float64
	NetworkMatchedFilterSNR float64
}

// DetectorDraft is the disclosed per-detector measurement.
type DetectorDraft struct {
	MinimumFrequency float64
	MaximumFrequency float64
	OptimalSNR       float64
	MatchedFilterSNR float64
}

// NewInjectionMetaData builds a record from a draft, applying the disclosure
// mode in one place. Blinded drops the injected parameters, the seed and
// every SNR (per-detector and network) together.
func NewInjectionMetaData(mode Disclosure, d Draft) InjectionMetaData {
	m := InjectionMetaData{
		FixedParameters:   d.FixedParameters,
		WaveformKwargs:    d.WaveformKwargs,
		Duration:          d.Duration,
		SamplingFrequency: d.SamplingFrequency,
		Detectors:         make(map[string]DetectorMetaData, len(d.Detectors)),
	}
	for name, det := range d.Detectors {
		dm := DetectorMetaData{
			MinimumFrequency: det.MinimumFrequency,
			MaximumFrequency: det.MaximumFrequency,
		}
		if mode == Disclosed {
			dm.OptimalSNR = ptr(det.OptimalSNR)
			dm.MatchedFilterSNR = ptr(det.MatchedFilterSNR)
		}
		m.Detectors[name] = dm
	}
	if mode == Disclosed {
		m.InjectionParameters = d.InjectionParameters
		m.Seed = ptr(d.Seed)
		m.NetworkOptimalSNR = ptr(d.NetworkOptimalSNR)
		m.NetworkMatchedFilterSNR = ptr(d.NetworkMatchedFilterSNR)
	}
	return m
}

func ptr[T any](v T) *T { return &v }
