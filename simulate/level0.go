package simulate

import (
	"math"
	"math/cmplx"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"

	"github.com/gwbench/gwbench2g/metaio"
)

// runLevel0 drives the baseline simulation: for each event, draw a source
// from the prior, inject its inspiral into independently generated Gaussian
// noise in every configured detector, and emit the data with its metadata
// record.
func runLevel0(cfg Config, emit func(Event) error) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	src := rand.NewSource(uint64(cfg.Seed))
	rng := rand.New(src)
	pri := newAlignedSpinBBHPrior(src)

	mode := cfg.disclosure()
	kwargs := cfg.waveformKwargs()
	maxFreq := cfg.SamplingFrequency / 2

	for i := 0; i < cfg.NSimulations; i++ {
		params := pri.Sample()
		for k, v := range cfg.FixedParameters {
			params[k] = v
		}

		// The segment is placed so the merger sits two seconds before
		// its end, matching how the strain data is framed.
		segmentStart := params["geocent_time"] - cfg.Duration + 2
		wf := newWaveform(params, segmentStart)
		freqs := frequencyArray(cfg.Duration, cfg.SamplingFrequency)

		data := make(map[string]FrequencyDomainData, len(cfg.Detectors))
		drafts := make(map[string]metaio.DetectorDraft, len(cfg.Detectors))
		var optimal2, matched2 float64
		for _, name := range cfg.Detectors {
			det := detectorTable[name]
			series, optSNR, mfSNR := injectInto(det, rng, wf, params, freqs, cfg.Duration)
			data[name] = series
			drafts[name] = metaio.DetectorDraft{
				MinimumFrequency: minimumFrequency,
				MaximumFrequency: maxFreq,
				OptimalSNR:       optSNR,
				MatchedFilterSNR: mfSNR,
			}
			optimal2 += optSNR * optSNR
			matched2 += mfSNR * mfSNR
		}

		md := metaio.NewInjectionMetaData(mode, metaio.Draft{
			InjectionParameters:     params,
			FixedParameters:         cfg.FixedParameters,
			WaveformKwargs:          kwargs,
			Seed:                    cfg.Seed,
			Detectors:               drafts,
			Duration:                cfg.Duration,
			SamplingFrequency:       cfg.SamplingFrequency,
			NetworkOptimalSNR:       math.Sqrt(optimal2),
			NetworkMatchedFilterSNR: math.Sqrt(matched2),
		})

		if err := emit(Event{Index: i, Data: data, Metadata: md}); err != nil {
			return err
		}
	}
	return nil
}

// injectInto produces one detector's data stream: colored Gaussian noise
// plus the projected signal, and the optimal and matched-filter SNRs of the
// injection. The matched-filter SNR correlates the noisy data against the
// injected template, so it scatters around the optimal value.
func injectInto(det detector, rng *rand.Rand, wf waveform, params map[string]float64, freqs []float64, duration float64) (FrequencyDomainData, float64, float64) {
	df := 1 / duration
	fplus, fcross := det.antennaPattern(params["ra"], params["dec"], params["psi"])

	bins := len(freqs)
	strain := make([]complex128, bins)
	psd := make([]float64, bins)
	hh := make([]float64, bins) // |h|^2 / S per bin
	dh := make([]complex128, bins)

	for i, f := range freqs {
		s := det.noisePSD(f)
		psd[i] = s
		if f < minimumFrequency {
			continue
		}

		sigma := math.Sqrt(s / (4 * df))
		noise := complex(sigma*rng.NormFloat64(), sigma*rng.NormFloat64())

		hplus, hcross := wf.polarizations(f)
		h := complex(fplus, 0)*hplus + complex(fcross, 0)*hcross

		d := noise + h
		strain[i] = d
		hh[i] = real(h*cmplx.Conj(h)) / s
		dh[i] = d * cmplx.Conj(h) / complex(s, 0)
	}

	norm := 4 * df
	optimal2 := norm * floats.Sum(hh)
	optimal := math.Sqrt(optimal2)

	var matched float64
	if optimal > 0 {
		var sum complex128
		for _, v := range dh {
			sum += v
		}
		// Real part of the complex matched-filter statistic.
		matched = norm * real(sum) / optimal
	}

	return FrequencyDomainData{Strain: strain, PSD: psd, FrequencyArray: freqs}, optimal, matched
}
