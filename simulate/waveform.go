package simulate

import "math"

// Geometrized-unit conversions.
const (
	solarMassSeconds  = 4.925491025543576e-6 // G*Msun/c^3
	megaparsecSeconds = 1.02927125054339e14  // 1 Mpc / c
)

// waveform is a stationary-phase inspiral in the frequency domain,
// parameterized by the sampled source. Amplitude follows the leading-order
// chirp and the phase the 0PN TaylorF2 expression; the signal is terminated
// at the innermost stable circular orbit.
type waveform struct {
	chirpSeconds float64 // chirp mass in seconds
	totalSeconds float64 // total mass in seconds
	distance     float64 // luminosity distance in seconds
	inclination  float64
	phase        float64
	timeShift    float64 // coalescence time relative to the segment start
	fISCO        float64
}

func newWaveform(params map[string]float64, segmentStart float64) waveform {
	m1 := params["mass_1"]
	m2 := params["mass_2"]
	total := m1 + m2
	chirp := math.Pow(m1*m2, 0.6) / math.Pow(total, 0.2)

	totalSec := total * solarMassSeconds
	return waveform{
		chirpSeconds: chirp * solarMassSeconds,
		totalSeconds: totalSec,
		distance:     params["luminosity_distance"] * megaparsecSeconds,
		inclination:  params["theta_jn"],
		phase:        params["phase"],
		timeShift:    params["geocent_time"] - segmentStart,
		fISCO:        1 / (math.Pow(6, 1.5) * math.Pi * totalSec),
	}
}

// polarizations evaluates the plus and cross strain at frequency f.
func (w waveform) polarizations(f float64) (hplus, hcross complex128) {
	if f < minimumFrequency || f > w.fISCO {
		return 0, 0
	}

	amp := math.Sqrt(5.0/24.0) * math.Pow(math.Pi, -2.0/3.0) *
		math.Pow(w.chirpSeconds, 5.0/6.0) * math.Pow(f, -7.0/6.0) / w.distance

	v := math.Pi * w.chirpSeconds * f
	psi := 3.0/128.0*math.Pow(v, -5.0/3.0) + 2*math.Pi*f*w.timeShift - w.phase - math.Pi/4

	cosInc := math.Cos(w.inclination)
	carrier := complex(math.Cos(psi), math.Sin(psi))
	hplus = complex(amp*(1+cosInc*cosInc)/2, 0) * carrier
	hcross = complex(0, 1) * complex(amp*cosInc, 0) * carrier
	return hplus, hcross
}

// frequencyArray returns the one-sided frequency bins for a segment of the
// given duration sampled at the given rate: n/2+1 bins spaced at 1/duration
// up to the Nyquist frequency.
func frequencyArray(duration, samplingFrequency float64) []float64 {
	bins := int(duration*samplingFrequency)/2 + 1
	df := 1 / duration
	freqs := make([]float64, bins)
	for i := range freqs {
		freqs[i] = float64(i) * df
	}
	return freqs
}
