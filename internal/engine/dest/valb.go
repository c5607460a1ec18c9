package dest

// ValueBlock computes the pit-generation block value in dollars for one
// block: net revenue over mining and milling cost for ore, negative
// mining cost for waste. confidence selects the pit basis (1 measured
// & indicated, 2 plus inferred, 3 plus blue sky); reserve classes
// above confidence+1 are valued as waste, so an M&I run keeps both
// measured (1) and indicated (2) blocks. Runs on undiluted
// classifications only, since a pit cone cannot start on a diluted
// block.
type ValueBlock struct {
	Classifier *Classifier
	Confidence int
	Volume     float64 // block volume, m3
}

// ValueInput extends Block with the items the valuation needs.
type ValueInput struct {
	Block
	Rescl   int
	Density float64 // t/m3
}

// Value returns the block value in dollars.
func (vb *ValueBlock) Value(in ValueInput) float64 {
	if in.IsAir {
		return 0.0
	}
	cl := vb.Classifier
	b := in.Block

	tph := 60.0 / b.MPT
	base := cl.Costs.BaseMillCost(b.DepIdx, b.Bench, tph, b.SESag, b.SEBall)
	conc := (b.STZN*b.ZNREC/b.ZNGRD + b.STPB*b.PBREC/b.PBGRD) / 100.0
	opSU, coSU := cl.Costs.SulfideCost(base, b.DepIdx, conc)

	inClass := in.Rescl <= vb.Confidence+1
	var isHG, isLG bool
	if cl.MillingOption != MillValueMargin {
		isHG = inClass && b.AMR >= coSU
	} else {
		vals := (b.AMR - coSU) / b.MPT / 60.0
		isHG = inClass && vals >= cl.Cutoff
		if !isHG {
			valsLG := vals - cl.Costs.RehandleRate(b.MPT)
			// Only non-reactive material is stockpiled for recovery.
			isLG = inClass && valsLG >= 0 && b.WARDC > 0
		}
	}

	tonnes := vb.Volume * in.Density
	netSU := b.AMR - opSU - cl.Costs.MineOre[b.DepIdx]
	var v float64
	switch {
	case isHG:
		v = netSU * tonnes
	case isLG:
		// Stockpiled value discounted for delayed realization.
		v = 0.70 * (netSU - cl.Costs.Rehandle) * tonnes
	default:
		v = -(cl.Costs.MineWaste[b.DepIdx] + cl.Costs.HaulEsc(b.DepIdx, b.Bench)) * tonnes
	}

	if b.Secondary && cl.MillingOption >= MillValueOX {
		if cl.MillingOption == MillValueOX || cl.MillingOption == MillValueOXWX {
			concOX := (b.STPB * b.PBROX / b.PBGOX) / 100.0
			opOX, _ := cl.Costs.OxideCost(base, b.DepIdx, concOX)
			netOX := b.AMROX - opOX - cl.Costs.MineOre[b.DepIdx]
			if inClass && netOX > 0 && netOX > netSU {
				v = netOX * tonnes
			}
		}
		if cl.MillingOption >= MillValueWX {
			concWX := (b.STZN * b.ZNRWX / b.ZNGWX) / 100.0
			opWX, _ := cl.Costs.WeatheredCost(base, b.DepIdx, concWX)
			netWX := b.AMRWX - opWX - cl.Costs.MineOre[b.DepIdx]
			if inClass && netWX > 0 && netWX > netSU {
				v = netWX * tonnes
			}
		}
	}
	return v
}
