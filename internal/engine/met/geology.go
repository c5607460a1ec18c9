// Package met classifies blocks metallurgically: geology grouping, ore
// type codes, process (MET) codes, concentrate grades and recoveries,
// reactivity codes, and rock hardness estimates.
package met

import (
	"orecast.dev/internal/engine/deposit"
	"orecast.dev/internal/num"
)

// AirCode is the geology code for blocks above topography.
const AirCode = 0

// Geology group tables, indexed by deposit. Membership drives ore-type
// coding, MET assignment and waste segregation.
var (
	exhalite = [4][]int{
		{1, 8, 11, 18},
		{1, 8, 11, 18},
		{20, 21},
		{10, 11, 12, 13, 14, 16, 20, 21, 22, 23, 24, 26, 40, 41, 42, 43, 44, 46, 60, 61, 62, 63, 64, 66},
	}
	vein = [4][]int{
		{6, 13, 14},
		{6, 13, 14},
		{10},
		{110, 120},
	}
	baritic = [4][]int{
		{15, 16},
		{15, 16},
		{7},
		{50, 51, 52, 53, 54, 56},
	}
	bariticSiksikpuk = [4][]int{{3}, {3}, {3}, {}}
	siksikpuk        = [4][]int{{4}, {4}, {4}, {200, 207}}
	blackShale       = [4][]int{
		{25, 26, 27, 32, 33},
		{25, 26, 27, 32, 33},
		{25, 26, 27, 32, 33},
		{201, 202, 203},
	}
	weathered = [4][]int{
		{2, 12},
		{2, 12},
		{},
		{80, 81, 82, 83, 84, 86, 100, 101, 102, 103, 104, 106},
	}
	oxide = [4][]int{{}, {}, {}, {30, 31, 32, 33, 34, 36}}
	// Pyrite inclusions make this shale reactive with blasting agents
	// regardless of the regression outcome.
	reactiveShale = [4][]int{{26}, {26}, {26}, {201}}
)

// Resource-class plate groupings for the West deposit.
var (
	westBlock1 = []int{11, 21, 31, 41, 51, 61}
	westBlock2 = []int{12, 22, 32, 42, 52, 62}
	westBlock3 = []int{13, 23, 33, 43, 53, 63}
	westBlock4 = []int{14, 24, 34, 44, 54, 64}
	westBlock5 = []int{16, 26, 36, 46, 56, 66}
)

// Plate groupings for the sulfide deposits.
var (
	middlePlate   = []int{1, 6, 11, 15}
	lowerPlate    = []int{2, 8, 12, 13, 14, 16, 18}
	sublowerPlate = []int{7, 10, 20, 21}
)

func contains(codes []int, g int) bool {
	for _, c := range codes {
		if c == g {
			return true
		}
	}
	return false
}

// orct1 assigns the resource-class block code from the mixed geology code.
func orct1(dep deposit.Deposit, geolMix int, isAir bool) num.Opt {
	if isAir {
		return num.Undef()
	}
	if dep.SecondaryCircuits() {
		switch {
		case contains(westBlock1, geolMix):
			return num.Of(1)
		case contains(westBlock2, geolMix):
			return num.Of(2)
		case contains(westBlock3, geolMix):
			return num.Of(3)
		case contains(westBlock4, geolMix):
			return num.Of(4)
		case contains(westBlock5, geolMix):
			return num.Of(5)
		}
		return num.Of(6)
	}
	switch {
	case contains(lowerPlate, geolMix):
		return num.Of(8)
	case contains(middlePlate, geolMix):
		return num.Of(1)
	case contains(sublowerPlate, geolMix):
		return num.Of(6)
	}
	return num.Of(5)
}

// orct2 assigns the ore-type code. Shale blocks are classified first;
// grade thresholds split exhalite into baritic and iron-rich subtypes.
func (c *Config) orct2(dep deposit.Deposit, geolMix, geol1 int, allShale, isAir bool, stFE, stBA float64) num.Opt {
	d := dep.Index()
	out := num.Undef()
	switch {
	case isAir:
		// stays undefined
	case allShale:
		if contains(blackShale[d], geolMix) {
			out = num.Of(5)
		} else if contains(siksikpuk[d], geolMix) || contains(bariticSiksikpuk[d], geolMix) {
			out = num.Of(6)
		}
	case dep.SecondaryCircuits() && (contains(oxide[d], geolMix) || contains(oxide[d], geol1)):
		out = num.Of(7)
	case (!dep.SecondaryCircuits() && contains(weathered[d], geolMix)) ||
		(dep.SecondaryCircuits() && contains(weathered[d], geol1)):
		out = num.Of(2)
	case contains(exhalite[d], geolMix):
		switch {
		case stFE < c.FELimit && stBA < c.BALimit:
			out = num.Of(1)
		case stBA >= c.BALimit:
			out = num.Of(3)
		default:
			out = num.Of(4)
		}
	case contains(vein[d], geolMix):
		out = num.Of(8)
	case contains(baritic[d], geolMix):
		out = num.Of(3)
	}
	if isAir {
		return out
	}
	// Direct shale code mapping overrides the group result.
	if dep.SecondaryCircuits() {
		if geolMix >= 201 {
			out = num.Of(float64(geolMix - 190))
		}
	} else if geolMix >= 25 {
		out = num.Of(float64(geolMix - 15))
	}
	return out
}

// textureDefaults fills missing texture parameters by rock group.
func (c *Config) textureDefaults(dep deposit.Deposit, geolMix int, orct2 num.Opt) (t1, t2, t6 float64) {
	d := dep.Index()
	o2, _ := orct2.Get()
	switch {
	case contains(baritic[d], geolMix):
		return c.T1Baritic[d], c.T2Baritic[d], c.T6Baritic[d]
	case contains(vein[d], geolMix):
		return c.T1Vein[d], c.T2Vein[d], c.T6Vein[d]
	case o2 == 2 || o2 == 7:
		return c.T1Weathered[d], c.T2Weathered[d], c.T6Weathered[d]
	}
	return c.T1Exhalite[d], c.T2Exhalite[d], c.T6Exhalite[d]
}
