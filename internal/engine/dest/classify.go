package dest

import "orecast.dev/internal/engine/econ"

// Milling options. Options 0-2 control stockpile routing during
// classification; 3-6 only change how pit-generation block values treat
// the secondary circuits.
const (
	MillLGStockpiled = 0 // HG to mill, LG-N stockpiled, one cutoff
	MillMGStockpiled = 1 // MG above secondary cutoff also milled
	MillMGLGToHG     = 2 // MG and non-reactive LG-PR milled, three cutoffs
	MillValueMargin  = 3 // pit values use the HG cutoff as margin
	MillValueOX      = 4 // pit values include the oxide circuit
	MillValueWX      = 5 // pit values include the weathered circuit
	MillValueOXWX    = 6 // pit values include both secondary circuits
)

// Period filter modes.
const (
	PeriodAll        = 0 // classify every block with the entered cutoffs
	PeriodUnassigned = 1 // classify only blocks with no scheduled period
	PeriodArrays     = 2 // cutoffs per scheduled year from stored arrays
)

// Classifier assigns a destination to each block from its value rate in
// dollars per second of mill time.
type Classifier struct {
	Costs *econ.Costs

	Cutoff   float64 // $/s, primary (HG) cutoff
	CutoffMG float64 // $/s, secondary (MG) cutoff
	CutoffLG float64 // $/s, tertiary (LG-PR to HG) cutoff

	MillingOption int
	MaximizeWX    bool // route to weathered when it out-earns sulfide

	// Middle-grade stockpile grade gates.
	MGMaxFE float64
	MGMaxBA float64

	PeriodFilter   int
	PeriodCutoff   []float64 // $/s by scheduled year
	PeriodCutoffMG []float64
}

// Block carries the per-block model values the classifier reads.
type Block struct {
	IsAir     bool
	Secondary bool // deposit runs the oxide and weathered circuits
	DepIdx    int
	Bench     int
	Period    int // scheduled mining year, 0 = unassigned

	WARDC              int
	STZN, STPB         float64
	STFE, STBA         float64
	ZNGRD, ZNREC       float64
	PBGRD, PBREC       float64
	PBGOX, PBROX       float64
	ZNGWX, ZNRWX       float64
	MPT                float64 // min/t
	SESag, SEBall      float64
	AMR, AMROX, AMRWX  float64 // $/t revenue per circuit
}

// Assignment is one block's classification result.
type Assignment struct {
	Dest  Code
	Vals  float64 // $/s at the assigned destination
	Opcst float64 // $/t operating cost at the assigned destination
	Dilfg int

	// MG marks a mill-feed block between the primary and secondary
	// cutoffs that grades low enough in iron and barite to stockpile.
	MG bool

	// ForceWeathered is set when a sulfide-classified block moves to the
	// weathered circuit; the caller rewrites MET, QWXFG and WXFG.
	ForceWeathered bool
}

// Use reports whether the block is inside the period filter.
func (cl *Classifier) Use(period int) bool {
	if cl.PeriodFilter == PeriodUnassigned {
		return period < 1
	}
	return true
}

// cutoffs resolves the three operating cutoffs for a block. Entered
// cutoffs collapse to the primary one for options without MG or LG
// milling; stored arrays index by scheduled year.
func (cl *Classifier) cutoffs(period int) (co, coMG, coLG float64) {
	if cl.PeriodFilter == PeriodArrays {
		i := min(period, len(cl.PeriodCutoff)-1)
		co = cl.PeriodCutoff[i]
		coMG = cl.PeriodCutoffMG[min(period, len(cl.PeriodCutoffMG)-1)]
		return co, coMG, coMG
	}
	co = cl.Cutoff
	if cl.MillingOption <= MillLGStockpiled || cl.MillingOption >= MillValueMargin {
		return co, co, co
	}
	coMG = min(co, cl.CutoffMG)
	coLG = min(coMG, cl.CutoffLG)
	return co, coMG, coLG
}

// Classify assigns the block's destination and its value and cost at
// that destination.
func (cl *Classifier) Classify(b Block) Assignment {
	if b.IsAir {
		return Assignment{Dest: WN, Dilfg: DilWasteUnchanged}
	}
	co, coMG, coLG := cl.cutoffs(b.Period)

	tps := 1.0 / (b.MPT * 60.0)
	tph := 60.0 / b.MPT
	base := cl.Costs.BaseMillCost(b.DepIdx, b.Bench, tph, b.SESag, b.SEBall)

	conc := (b.STZN*b.ZNREC/b.ZNGRD + b.STPB*b.PBREC/b.PBGRD) / 100.0
	opSU, coSU := cl.Costs.SulfideCost(base, b.DepIdx, conc)
	vals := (b.AMR - coSU) * tps
	valsRH := vals - cl.Costs.RehandleRate(b.MPT)

	a := Assignment{Vals: vals, Opcst: opSU}
	mgMilled := cl.MillingOption == MillMGStockpiled || cl.MillingOption == MillMGLGToHG
	lgMilled := !b.Secondary && cl.MillingOption == MillMGLGToHG
	switch {
	case vals >= co || (mgMilled && vals >= coMG) || (lgMilled && vals >= coLG && b.WARDC <= 0):
		a.Dest = HG
		a.MG = !b.Secondary && vals < co && vals >= coMG &&
			b.STFE < cl.MGMaxFE && b.STBA < cl.MGMaxBA
	case valsRH >= 0:
		if b.WARDC > 0 {
			a.Dest = LGN
			a.Vals = valsRH
			a.Opcst = opSU + cl.Costs.Rehandle
		} else {
			a.Dest = LGPR
		}
	case b.WARDC <= 0:
		a.Dest = WPR
	case b.WARDC <= 1:
		a.Dest = WN
	case b.WARDC <= 2:
		a.Dest = WCN
	default:
		a.Dest = WCV
	}

	if b.Secondary {
		cl.secondary(&a, b, base, tps, vals, valsRH)
	}

	if a.Dest <= HG {
		a.Dilfg = DilOreUnchanged
	} else {
		a.Dilfg = DilWasteUnchanged
	}
	return a
}

// secondary re-routes a block to the oxide or weathered stockpile when
// those circuits earn more. Oxide feed never overlaps sulfide mill feed
// so a positive oxide rate reassigns directly; weathered feed competes
// with the sulfide circuit.
func (cl *Classifier) secondary(a *Assignment, b Block, base, tps, vals, valsRH float64) {
	concOX := (b.STPB * b.PBROX / b.PBGOX) / 100.0
	opOX, coOX := cl.Costs.OxideCost(base, b.DepIdx, concOX)
	valsOX := (b.AMROX - coOX) * tps
	if valsOX >= 0 {
		a.Dest = SPOX
		a.Vals = valsOX
		a.Opcst = opOX
		return
	}

	concWX := (b.STZN * b.ZNRWX / b.ZNGWX) / 100.0
	opWX, coWX := cl.Costs.WeatheredCost(base, b.DepIdx, concWX)
	valsWX := (b.AMRWX - coWX) * tps
	if valsWX < 0 {
		return
	}
	makeWX := a.Dest >= LGPR && a.Dest <= WN
	if cl.MaximizeWX {
		makeWX = makeWX || (a.Dest == LGN && valsWX > valsRH) ||
			((a.Dest <= HG || a.Dest >= MGN) && valsWX > vals)
	}
	if makeWX {
		a.Dest = SPWX
		a.Vals = valsWX
		a.Opcst = opWX
		a.ForceWeathered = true
		a.MG = false
	}
}
