package domain

import "math"

// ProfileMode selects how the shared circular fuselage profile is produced.
type ProfileMode string

// Available profile modes. Both produce identical documents.
const (
	ProfileAnalytic ProfileMode = "analytic"
	ProfileLegacy   ProfileMode = "legacy"
)

// CirclePoints is the number of samples of the circular profile, seam included twice.
const CirclePoints = 82

// seamEpsilon snaps rounding noise at the seam (sin 2pi) to zero.
const seamEpsilon = 1e-12

// CircleProfile returns the x, y and z samples of the unit circle profile.
// Sample i sits at angle 2*pi*i/81, starting at the top (y=0, z=1).
func CircleProfile(mode ProfileMode) (x, y, z []float64) {
	if mode == ProfileLegacy {
		return make([]float64, CirclePoints), clone(legacyCircleY), clone(legacyCircleZ)
	}

	x = make([]float64, CirclePoints)
	y = make([]float64, CirclePoints)
	z = make([]float64, CirclePoints)

	for i := 0; i < CirclePoints; i++ {
		theta := 2 * math.Pi * float64(i) / float64(CirclePoints-1)
		y[i] = snap(math.Sin(theta))
		z[i] = snap(math.Cos(theta))
	}

	return x, y, z
}

func snap(v float64) float64 {
	if math.Abs(v) < seamEpsilon {
		return 0
	}

	return v
}

func clone(values []float64) []float64 {
	out := make([]float64, len(values))
	copy(out, values)

	return out
}

// Reference circle samples of existing CPACS files.
var legacyCircleY = []float64{
	0.0, 0.0774924206719, 0.154518792808, 0.230615870742, 0.305325997695, 0.378199858172,
	0.4487991802, 0.516699371152, 0.581492071288, 0.642787609687, 0.700217347767, 0.753435896328,
	0.802123192755, 0.84598642592, 0.884761797177, 0.91821610688, 0.946148156876, 0.968389960528,
	0.984807753012, 0.995302795793, 0.999811970449, 0.998308158271, 0.990800403365, 0.977333858251,
	0.957989512315, 0.932883704732, 0.902167424781, 0.866025403784, 0.824675004109, 0.778364911924,
	0.727373641573, 0.672007860556, 0.612600545193, 0.549508978071, 0.483112599297, 0.413810724505,
	0.342020143326, 0.268172612761, 0.192712260548, 0.116092914125, 0.0387753712568, -0.0387753712568,
	-0.116092914125, -0.192712260548, -0.268172612761, -0.342020143326, -0.413810724505, -0.483112599297,
	-0.549508978071, -0.612600545193, -0.672007860556, -0.727373641573, -0.778364911924, -0.824675004109,
	-0.866025403784, -0.902167424781, -0.932883704732, -0.957989512315, -0.977333858251, -0.990800403365,
	-0.998308158271, -0.999811970449, -0.995302795793, -0.984807753012, -0.968389960528, -0.946148156876,
	-0.91821610688, -0.884761797177, -0.84598642592, -0.802123192755, -0.753435896328, -0.700217347767,
	-0.642787609687, -0.581492071288, -0.516699371152, -0.4487991802, -0.378199858172, -0.305325997695,
	-0.230615870742, -0.154518792808, -0.0774924206719, 0.0,
}

var legacyCircleZ = []float64{
	1.0, 0.996992941168, 0.987989849477, 0.97304487058, 0.952247885338, 0.925723969269,
	0.893632640323, 0.85616689953, 0.813552070263, 0.766044443119, 0.713929734558, 0.657521368569,
	0.597158591703, 0.533204432802, 0.466043519703, 0.396079766039, 0.323733942058, 0.249441144058,
	0.173648177667, 0.0968108707032, 0.0193913317718, -0.0581448289105, -0.13533129975, -0.211703872229,
	-0.286803232711, -0.360177724805, -0.431386065681, -0.5, -0.565606875487, -0.627812124672,
	-0.686241637869, -0.740544013109, -0.790392669519, -0.835487811413, -0.875558231302, -0.910362940966,
	-0.939692620786, -0.963370878616, -0.981255310627, -0.993238357742, -0.999247952504, -0.999247952504,
	-0.993238357742, -0.981255310627, -0.963370878616, -0.939692620786, -0.910362940966, -0.875558231302,
	-0.835487811413, -0.790392669519, -0.740544013109, -0.686241637869, -0.627812124672, -0.565606875487,
	-0.5, -0.431386065681, -0.360177724805, -0.286803232711, -0.211703872229, -0.13533129975,
	-0.0581448289105, 0.0193913317718, 0.0968108707032, 0.173648177667, 0.249441144058, 0.323733942058,
	0.396079766039, 0.466043519703, 0.533204432802, 0.597158591703, 0.657521368569, 0.713929734558,
	0.766044443119, 0.813552070263, 0.85616689953, 0.893632640323, 0.925723969269, 0.952247885338,
	0.97304487058, 0.987989849477, 0.996992941168, 1.0,
}
