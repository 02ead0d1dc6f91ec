package simulate

import "math"

const (
	// minimumFrequency is the lower sensitivity bound of every simulated
	// interferometer; strain below it carries no signal or noise power.
	minimumFrequency = 20.0

	// referenceFrequency is where the waveform phase is referenced.
	referenceFrequency = 50.0
)

// detector describes a simulated interferometer: its rough location and arm
// orientation for the antenna response, and a scale on the common
// sensitivity curve.
type detector struct {
	name        string
	longitude   float64 // radians east
	orientation float64 // x-arm azimuth, radians
	psdScale    float64 // multiplier on the reference sensitivity curve
}

// detectorTable lists the instruments the simulation can produce. The set is
// fixed; configs referencing other names fail validation.
var detectorTable = map[string]detector{
	"H1": {name: "H1", longitude: -2.08406, orientation: 2.19911, psdScale: 1.0},
	"L1": {name: "L1", longitude: -1.58431, orientation: 3.45080, psdScale: 1.0},
	"V1": {name: "V1", longitude: 0.18334, orientation: 1.23619, psdScale: 1.8},
}

// noisePSD evaluates the one-sided strain noise power spectral density at
// frequency f, an analytic fit to the advanced-detector design curve.
// Frequencies below the sensitivity bound are pinned to the bound's value so
// the curve stays finite everywhere.
func (d detector) noisePSD(f float64) float64 {
	if f < minimumFrequency {
		f = minimumFrequency
	}
	x := f / 215.0
	x2 := x * x
	shape := math.Pow(x, -4.14) - 5/x2 + 111*(1-x2+x2*x2/2)/(1+x2/2)
	return d.psdScale * 1e-49 * shape
}

// antennaPattern evaluates the plus and cross responses for a source at
// (ra, dec) with polarization angle psi, folding the detector's longitude
// and arm orientation into the angles.
func (d detector) antennaPattern(ra, dec, psi float64) (fplus, fcross float64) {
	theta := math.Pi/2 - dec
	phi := ra - d.longitude
	chi := psi + d.orientation

	cosTheta := math.Cos(theta)
	a := 0.5 * (1 + cosTheta*cosTheta)
	fplus = a*math.Cos(2*phi)*math.Cos(2*chi) - cosTheta*math.Sin(2*phi)*math.Sin(2*chi)
	fcross = a*math.Cos(2*phi)*math.Sin(2*chi) + cosTheta*math.Sin(2*phi)*math.Cos(2*chi)
	return fplus, fcross
}
