// Package dest assigns material destinations to blocks and revises them
// spatially: a value-rate classifier per block, a multi-pass dilution
// process over each bench grid, salt-and-pepper noise reduction, and the
// reserve-class recoding used for reporting.
package dest

// Code is a block destination.
type Code int

const (
	HG   Code = 1  // high grade, direct mill feed
	LGN  Code = 2  // low grade non-reactive, stockpiled
	LGPR Code = 3  // low grade possibly reactive
	WPR  Code = 4  // waste, possibly reactive
	WN   Code = 5  // waste, non-reactive
	WCN  Code = 6  // waste, construction
	WCV  Code = 7  // waste, cover
	SPOX Code = 8  // oxide high Pb-Ag stockpile
	SPWX Code = 9  // weathered high Zn-Cu stockpile
	MGN  Code = 10 // middle grade non-reactive, stockpiled
	MGPR Code = 11 // middle grade possibly reactive
)

// Ore reports whether the code routes to the sulfide mill (directly or
// via the low-grade stockpile).
func (c Code) Ore() bool { return c <= LGN }

// Dilution flags record how each block's diluted destination relates to
// its economic classification.
const (
	DilOreFromWaste   = 0 // waste picked up as mill feed by the dilution kernel
	DilOreUnchanged   = 1
	DilWasteUnchanged = 2
	DilWasteFromOre   = 3 // mill feed lost to waste by the dilution kernel

	// Noise-reduction transitions, by pattern.
	DilOreFromWasteHorseshoe   = 4
	DilOreFromWasteParallel    = 5
	DilOreFromWasteCorner      = 6
	DilWasteFromOreHorseshoe   = 7
	DilWasteFromOreParallel    = 8
	DilWasteFromOreCorner      = 9
	DilOreFromOreHorseshoe     = 10
	DilOreFromOreParallel      = 11
	DilOreFromOreCorner        = 12
	DilWasteFromWasteHorseshoe = 13
	DilWasteFromWasteParallel  = 14
	DilWasteFromWasteCorner    = 15

	// Reclassification to waste on reserve-class criteria.
	DilRRWasteFromSulfide   = 16
	DilRRWasteFromLGPR      = 17
	DilRRWasteFromOxide     = 18
	DilRRWasteFromWeathered = 19
)

// Reserve destination codes split each ore routing by resource
// confidence: measured & indicated, inferred, or reclassified to waste.
const (
	ResWaste         = 0
	ResHGMI          = 1
	ResHGInf         = 2
	ResLGNMI         = 3
	ResLGNInf        = 4
	ResLGPRMI        = 5
	ResLGPRInf       = 6
	ResOxideMI       = 7
	ResOxideInf      = 8
	ResWeatheredMI   = 9
	ResWeatheredInf  = 10
	ResWasteFromHG   = 11
	ResWasteFromLGPR = 12
	ResWasteFromOX   = 13
	ResWasteFromWX   = 14
)

// Geology groupings for blastability, indexed by deposit. These differ
// from the metallurgical groups: construction shales blast separately
// and the low-barite oxide units are left unclassified.
var (
	bacBaritic = [4][]int{
		{15, 16},
		{15, 16},
		{7},
		{51, 52, 53, 54, 56},
	}
	bacConstruction = [4][]int{
		{3, 4},
		{3, 4},
		{3, 4},
		{200},
	}
	bacBlackShale = [4][]int{
		{25, 26, 27, 32, 33},
		{25, 26, 27, 32, 33},
		{25, 26, 27, 32, 33},
		{201, 202, 203},
	}
	bacNonBaritic = [4][]int{
		{1, 2, 6, 8, 11, 12, 13, 14, 18},
		{1, 2, 6, 8, 11, 12, 13, 14, 18},
		{10, 20, 21},
		{10, 11, 12, 13, 14, 16, 20, 21, 22, 23, 24, 26, 40, 41, 42, 43, 44, 46, 60, 61, 62, 63, 64, 66},
	}
)

func contains(codes []int, g int) bool {
	for _, c := range codes {
		if c == g {
			return true
		}
	}
	return false
}

// Blastability assigns the blast-domain class from host geology and the
// final destination: 1 construction, 2 black shale, 3/4 baritic
// waste/ore, 5/6 non-baritic ore by iron, 7 non-baritic waste, 0 other.
func Blastability(depIdx, geol int, dst Code, stFE float64) int {
	switch {
	case contains(bacConstruction[depIdx], geol):
		return 1
	case contains(bacBlackShale[depIdx], geol):
		return 2
	case contains(bacBaritic[depIdx], geol):
		if dst >= WPR && dst <= SPWX {
			return 3
		}
		return 4
	case contains(bacNonBaritic[depIdx], geol):
		if dst <= LGPR || dst >= MGN {
			if stFE <= 20 {
				return 5
			}
			return 6
		}
		return 7
	}
	return 0
}

// OreType4 derives the reporting ore-type code from the final
// destination. Mill feed is binned by ore type and zinc grade; every
// other destination maps to its code plus an offset.
func OreType4(dst Code, orct2 float64, stZN float64) int {
	if dst >= LGN {
		return int(dst) + 18
	}
	if orct2 >= 5 && orct2 != 8 {
		return 0 // shales
	}
	var bin int
	switch {
	case stZN < 15:
		bin = 0
	case stZN >= 25:
		bin = 2
	default:
		bin = 1
	}
	var base int
	switch {
	case orct2 <= 1:
		base = 1 // exhalite
	case orct2 <= 2:
		base = 4 // weathered
	case orct2 <= 3:
		base = 7 // baritic
	case orct2 <= 4:
		base = 10 // iron-rich
	default:
		base = 13 // veined
	}
	return base + bin
}
