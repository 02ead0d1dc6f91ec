package simulate

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// referenceEpoch anchors the sampled geocentric times (GPS seconds).
const referenceEpoch = 1.1262594e9

// sampler draws one value; the distuv distributions satisfy it.
type sampler interface {
	Rand() float64
}

// prior is an ordered set of named one-dimensional distributions. The order
// is fixed so that a seeded source always produces the same draw sequence.
type prior struct {
	names []string
	dists []sampler
}

func (p *prior) add(name string, d sampler) {
	p.names = append(p.names, name)
	p.dists = append(p.dists, d)
}

// Sample draws one full parameter set.
func (p *prior) Sample() map[string]float64 {
	out := make(map[string]float64, len(p.names))
	for i, name := range p.names {
		out[name] = p.dists[i].Rand()
	}
	// Component masses are exchangeable; enforce the mass_1 >= mass_2
	// labeling convention after the draw.
	if m1, m2 := out["mass_1"], out["mass_2"]; m2 > m1 {
		out["mass_1"], out["mass_2"] = m2, m1
	}
	return out
}

// newAlignedSpinBBHPrior builds the level-0 source prior: uniform component
// masses and aligned spin magnitudes, comoving-uniform luminosity distance,
// isotropic sky location and orientation.
func newAlignedSpinBBHPrior(src rand.Source) *prior {
	p := &prior{}
	p.add("mass_1", distuv.Uniform{Min: 5, Max: 100, Src: src})
	p.add("mass_2", distuv.Uniform{Min: 5, Max: 100, Src: src})
	p.add("chi_1", distuv.Uniform{Min: -0.99, Max: 0.99, Src: src})
	p.add("chi_2", distuv.Uniform{Min: -0.99, Max: 0.99, Src: src})
	p.add("luminosity_distance", &powerLaw{Min: 100, Max: 5000, Exponent: 2, rng: rand.New(src)})
	p.add("ra", distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src})
	p.add("dec", &sineAngle{rng: rand.New(src)})
	p.add("theta_jn", &cosineAngle{rng: rand.New(src)})
	p.add("psi", distuv.Uniform{Min: 0, Max: math.Pi, Src: src})
	p.add("phase", distuv.Uniform{Min: 0, Max: 2 * math.Pi, Src: src})
	p.add("geocent_time", distuv.Uniform{Min: referenceEpoch - 0.1, Max: referenceEpoch + 0.1, Src: src})
	return p
}

// powerLaw draws from p(x) proportional to x^Exponent on [Min, Max] by
// inverse-transform sampling.
type powerLaw struct {
	Min, Max float64
	Exponent float64
	rng      *rand.Rand
}

func (d *powerLaw) Rand() float64 {
	n := d.Exponent + 1
	lo := math.Pow(d.Min, n)
	hi := math.Pow(d.Max, n)
	return math.Pow(lo+d.rng.Float64()*(hi-lo), 1/n)
}

// sineAngle draws a declination on [-pi/2, pi/2] with density proportional
// to cos(x), i.e. uniform on the sphere.
type sineAngle struct {
	rng *rand.Rand
}

func (d *sineAngle) Rand() float64 {
	return math.Asin(2*d.rng.Float64() - 1)
}

// cosineAngle draws an inclination on [0, pi] with density proportional to
// sin(x).
type cosineAngle struct {
	rng *rand.Rand
}

func (d *cosineAngle) Rand() float64 {
	return math.Acos(1 - 2*d.rng.Float64())
}
