package met

import (
	"math"

	"orecast.dev/internal/engine/deposit"
	"orecast.dev/internal/num"
)

// Input is the per-block attribute set the classifier reads. Optional
// fields reflect attributes that may be absent from the model.
type Input struct {
	Deposit deposit.Deposit

	Geol    int // drill geology code, 0 = air
	Geol1   int // secondary geology code (West weathering units)
	GeolMix int // mixed-composition geology code

	STZN, STPB, STSPB num.Opt // short-term assays, %
	STFE, STBA        num.Opt
	PB, SPB           num.Opt // long-term drill assays, %
	AG                num.Opt // troy oz/short ton
	TOC, S            num.Opt // %
	SIO2, CU          num.Opt
	T1, T2, T6        num.Opt // texture parameters

	NSG float64 // non-sulfide gangue, %
	SG  float64 // specific gravity

	KeyCreek bool    // Key Creek formation flag
	ShalePct num.Opt // % shale in mixed-composition blocks
}

// GrindPreset carries fixed grinding values for host rock that has no
// hardness testwork of its own (shale defaults). TPH excludes the
// circuit efficiency factor, which the caller applies.
type GrindPreset struct {
	Ab, BBMWi, P80     float64
	SESag, SEBall, TPH float64
	SagLimited         num.Opt
}

// Output is the full metallurgical result for one block.
type Output struct {
	IsAir bool

	AGM        num.Opt // silver, g/t
	ZNFE, ZNPB num.Opt
	RPB        num.Opt // soluble lead ratio, %
	ORCT1      num.Opt
	ORCT2      num.Opt

	MET          int
	QWXFG, WXFG  int
	WARDC, SHCRR int
	BRXNF        num.Opt

	// Concentrate grades (%), recoveries (%) and silver grades (g/t)
	// for the zinc, lead, oxide-lead and weathered-bulk streams.
	ZNGRD, ZNREC, AGGZN float64
	PBGRD, PBREC, AGGPB float64
	PBGOX, PBROX, AGGOX float64
	ZNGWX, ZNRWX        float64
	PBGWX, PBRWX, AGGWX float64

	ACLS      int
	P80       num.Opt
	Ab, BBMWi num.Opt

	// Weathered mill feed (metallurgical definition) caps throughput.
	Weathered bool

	// Preset is set for non-sulfide rock with defined geology; the
	// grinding model is skipped for these blocks.
	Preset *GrindPreset
}

func round1(x float64) float64 { return math.Round(x*10) / 10 }
func round2(x float64) float64 { return math.Round(x*100) / 100 }

func clamp(x, lo, hi float64) float64 { return math.Min(math.Max(x, lo), hi) }

// calc carries the working state of one block through the classifier.
type calc struct {
	cfg *Config
	bi  Input
	d   int
	out Output

	allShale, isMixed, hasSulfides bool

	stZN, stPB, stSPB, stFE, stBA float64
	stZNDef, stPBDef, stSPBDef    bool
	stFEDef                       bool
	rpbDef, znpbDef, znfeDef      bool
	ag, toc, s                    float64

	ddhRPBDef bool
	ddhRPB    float64

	feInFeS, feInFeS2 float64

	t1, t2, t6 float64

	// Recovery-model grades after minima substitution.
	zn, pb, spb, ba, fe, nsgMet float64

	deduct bool // copper blend region recovery deduction
}

// Classify runs the full metallurgical model for one block.
func (c *Config) Classify(bi Input) Output {
	w := &calc{cfg: c, bi: bi, d: bi.Deposit.Index()}
	w.out.IsAir = bi.Geol == AirCode

	w.substitute()
	w.ratios()
	w.out.ORCT1 = orct1(bi.Deposit, bi.GeolMix, w.out.IsAir)
	w.out.ORCT2 = c.orct2(bi.Deposit, bi.GeolMix, bi.Geol1, w.allShale, w.out.IsAir, w.stFE, w.stBA)
	w.ironSplit()
	w.reactivity()
	w.wasteSegregation()

	if !w.out.IsAir && w.hasSulfides && w.stZNDef && w.stPBDef {
		w.metallurgy()
	} else {
		w.wasteDefaults()
	}
	return w.out
}

// substitute applies the documented default-substitution rules for
// missing assays.
func (w *calc) substitute() {
	bi, c := w.bi, w.cfg

	w.stZN, w.stZNDef = bi.STZN.Get()
	w.stPB, w.stPBDef = bi.STPB.Get()
	w.stSPB, w.stSPBDef = bi.STSPB.Get()
	if !w.stSPBDef {
		ltPB, ltPBDef := bi.PB.Get()
		ltSPB, ltSPBDef := bi.SPB.Get()
		switch {
		case !ltPBDef || !ltSPBDef:
			// No drill ratio available: deposit default ratio.
			ratio := c.RPBNonWeathered[w.d]
			if w.weatheredHost(true) {
				ratio = c.RPBWeathered[w.d]
			}
			w.stSPB = round2(w.stPB * ratio)
		case ltPB == 0 || ltSPB == 0:
			w.stSPB = 0
		default:
			w.ddhRPBDef = true
			w.ddhRPB = math.Min(ltSPB, ltPB) / ltPB
			w.stSPB = round2(w.stPB * w.ddhRPB)
		}
	}

	w.stFE, w.stFEDef = bi.STFE.Get()
	w.stBA = bi.STBA.Or(0)
	if ag, ok := bi.AG.Get(); ok {
		w.ag = ag
		w.out.AGM = num.Of(round1(ag * 34.28572))
	}
	w.toc = bi.TOC.Or(0)
	w.s = bi.S.Or(0)

	sh := bi.ShalePct.Or(0)
	w.allShale = sh >= 100
	allSulfides := sh <= 0
	w.isMixed = !w.allShale && !allSulfides
	w.hasSulfides = allSulfides || w.isMixed
}

// weatheredHost reports whether the block sits in weathered (or oxide)
// host rock for soluble-lead ratio defaults.
func (w *calc) weatheredHost(includeOxideGeol1 bool) bool {
	d, bi := w.d, w.bi
	if !bi.Deposit.SecondaryCircuits() {
		return contains(weathered[d], bi.GeolMix)
	}
	if contains(weathered[d], bi.Geol1) || contains(oxide[d], bi.GeolMix) {
		return true
	}
	return includeOxideGeol1 && contains(oxide[d], bi.Geol1)
}

// ratios derives the soluble-lead, zinc-lead and zinc-iron ratios.
func (w *calc) ratios() {
	if w.stSPBDef && w.stPBDef && w.stPB > 0 {
		w.out.RPB = num.Of(math.Round(w.stSPB / w.stPB * 100.0))
		w.rpbDef = true
		if w.stZNDef {
			w.out.ZNPB = num.Of(round2(w.stZN / w.stPB))
			w.znpbDef = true
		}
	}
	if w.stZNDef && w.stFEDef && w.stFE > 0 {
		w.out.ZNFE = num.Of(round2(w.stZN / w.stFE))
		w.znfeDef = true
	}
}

// ironSplit apportions iron between the sphalerite lattice and pyrite.
func (w *calc) ironSplit() {
	if w.stZNDef && w.stZN > 0 {
		w.feInFeS = w.stZN * math.Min(w.stFE/w.stZN, w.cfg.FEinZN)
		w.feInFeS2 = w.stFE - w.feInFeS
	} else {
		w.feInFeS = 0
		w.feInFeS2 = w.stFE
	}
}

// reactivity computes the self-heating risk region and the blasting
// agent reactivity flag.
func (w *calc) reactivity() {
	if w.out.IsAir || !w.hasSulfides {
		w.out.SHCRR = 0
		w.out.BRXNF = num.Undef()
		w.reactiveShaleException()
		return
	}
	if !(w.stZNDef && w.stPBDef && w.stFEDef) {
		// Sulfide-bearing but unassayed: worst case assumed.
		w.out.SHCRR = 6
		w.out.BRXNF = num.Of(1)
		w.reactiveShaleException()
		return
	}

	sph := w.stZN/0.6709 + w.feInFeS/0.6352
	pyr := w.feInFeS2 / 0.4655
	ang := w.stSPB / 0.6832
	bar := w.stBA / 0.5884

	pyrSHC := math.Max(pyr, 5)
	sphSHC := math.Min(sph, 48)
	a := math.Max(-1.33+0.0614*pyrSHC+0.3*sphSHC-0.00847*sphSHC*sphSHC+0.0115*pyrSHC*sphSHC, 0)
	b := math.Max(-6.56+0.896*pyrSHC-0.00588*pyrSHC*pyrSHC, 0)
	switch {
	case a < 1 && b < 1:
		w.out.SHCRR = 1
	case a < 1:
		w.out.SHCRR = 3
	case b < 1:
		w.out.SHCRR = 2
	case a < 5 || b < 5:
		w.out.SHCRR = 4
	default:
		w.out.SHCRR = 5
	}

	rpb := w.out.RPB.Must()
	sphPyr := 0.0
	if pyr > 0 {
		sphPyr = sph / pyr
	}
	if w.rpbDef && pyr > 0 && rpb >= 10 && rpb <= 95 && sphPyr <= 1.42 && pyr >= 6.2 && w.s >= 0.12 {
		etaAA := clamp(101.2-22.6234*pyr+7.53677*ang-325.38*sphPyr+43.4091*b, -10, 10)
		rxnAA := math.Exp(etaAA) / (1 + math.Exp(etaAA))
		etaXRF := clamp(395.764-5.13326*w.bi.NSG-21.3756*bar-60.4365*pyr-9.35528*sph+138.797*b-80.0252*math.Min(float64(w.out.SHCRR), 5), -10, 10)
		rxnXRF := math.Exp(etaXRF) / (1 + math.Exp(etaXRF))
		if rxnAA >= 0.5 || rxnXRF >= 0.5 {
			w.out.BRXNF = num.Of(1) // reacts even with urea in blends
		} else {
			w.out.BRXNF = num.Of(0) // reacts without urea
		}
	} else {
		w.out.BRXNF = num.Undef() // no reaction expected
	}
	w.reactiveShaleException()
}

// Pyrite inclusions make some shales reactive regardless of the
// regression result for the sulfide portion of the block.
func (w *calc) reactiveShaleException() {
	if contains(reactiveShale[w.d], w.bi.Geol) {
		if v, ok := w.out.BRXNF.Get(); !ok || v != 1 {
			w.out.BRXNF = num.Of(0)
		}
	}
}

// wasteSegregation assigns the waste ARD code: 0 possibly reactive,
// 1 non/low reactive, 2 construction, 3 cover.
func (w *calc) wasteSegregation() {
	d := w.d
	assayed := w.stZNDef && w.stPBDef && w.stFEDef
	switch {
	case w.bi.KeyCreek && w.allShale:
		w.out.WARDC = 3
	case !w.isMixed &&
		(contains(siksikpuk[d], w.bi.GeolMix) || contains(bariticSiksikpuk[d], w.bi.GeolMix) ||
			contains(baritic[d], w.bi.GeolMix) || contains(exhalite[d], w.bi.GeolMix)) &&
		assayed && w.stZN <= 0.5 && w.stPB <= 0.5 && w.stFE <= 2.5:
		w.out.WARDC = 2
	case w.out.SHCRR >= 5:
		w.out.WARDC = 0
	default:
		w.out.WARDC = 1
	}
}

// metallurgy runs MET assignment, recovery and hardness for
// sulfide-bearing assayed blocks.
func (w *calc) metallurgy() {
	bi := w.bi

	// Texture defaults by rock group when any texture is missing.
	t1, t1ok := bi.T1.Get()
	t2, t2ok := bi.T2.Get()
	t6, t6ok := bi.T6.Get()
	if !t1ok || !t2ok || !t6ok {
		t1, t2, t6 = w.cfg.textureDefaults(bi.Deposit, bi.GeolMix, w.out.ORCT2)
	}
	w.t1, w.t2, w.t6 = t1, t2, t6

	w.assignMET()

	if bi.Deposit.SecondaryCircuits() && w.out.MET >= 2 {
		w.out.QWXFG = 1
	}
	if (!bi.Deposit.SecondaryCircuits() && w.out.MET == 2) || w.out.QWXFG == 1 {
		w.out.WXFG = 1
	}
	w.out.Weathered = w.out.QWXFG == 1

	w.recoveryMinima()
	w.recoveries()
	w.silver()
	w.hardness()
}

// assignMET sets the metallurgical process code per deposit.
func (w *calc) assignMET() {
	c, bi := w.cfg, w.bi
	d := w.d
	rpb, rpbDef := w.out.RPB.Get()
	switch bi.Deposit {
	case deposit.Main, deposit.North:
		if rpbDef && rpb >= c.RPBLimit && w.stSPB >= c.SPBLimit {
			w.out.MET = 2
		} else {
			w.out.MET = 1
		}
	case deposit.East:
		switch {
		case contains(exhalite[d], bi.GeolMix):
			if w.stBA >= c.BALimit {
				w.out.MET = 9
			} else {
				w.out.MET = 7
			}
		case contains(vein[d], bi.GeolMix):
			w.out.MET = 8
		default:
			w.out.MET = 9
		}
	case deposit.West:
		cu, cuDef := bi.CU.Get()
		o2, _ := w.out.ORCT2.Get()
		znpb, znpbDef := w.out.ZNPB.Get()
		switch {
		case !cuDef || !rpbDef:
			w.out.MET = 0
		case o2 == 7 || (rpb >= c.RPBLimitOX && w.stSPB >= c.SPBLimitOX && znpbDef && znpb < c.ZNPBMaxOX):
			w.out.MET = 3 // high lead-silver oxide
		case rpb < c.RPBLimit || w.stSPB < c.SPBLimit:
			w.out.MET = 1
		case rpb < c.RPBLimitPB:
			if cu < c.CULimitHi {
				w.out.MET = 1
				w.deduct = cu > c.CULimitLo
			} else {
				w.out.MET = 4 // weathered high copper
			}
		default:
			if cu < c.CULimitHi {
				w.out.MET = 2
				w.deduct = cu > c.CULimitLo
			} else {
				w.out.MET = 4
			}
		}
	}
}

// recoveryMinima substitutes floor grades ahead of the regressions.
func (w *calc) recoveryMinima() {
	c := w.cfg
	w.zn = math.Max(w.stZN, c.ZNMin)
	w.pb = math.Max(w.stPB, c.PBMin)
	if !w.rpbDef || w.stSPB == 0 || w.out.RPB.Must() == 0 {
		if w.ddhRPBDef {
			w.spb = w.pb * w.ddhRPB
		} else if w.weatheredHost(false) {
			w.spb = w.pb * c.RPBWeathered[w.d]
		} else {
			w.spb = w.pb * c.RPBNonWeathered[w.d]
		}
	} else {
		w.spb = w.pb * w.stSPB / w.stPB
	}
	w.ba = math.Max(w.stBA, c.BAMin)
	w.fe = math.Max(w.stFE, c.FEMin)

	feS := w.zn * math.Min(w.fe/w.zn, c.FEinZN)
	feS2 := w.fe - feS
	w.nsgMet = 100.0 - (w.zn/0.6709 + (w.pb-w.spb)/0.8660 + w.spb/0.6832 +
		feS2/0.4655 + feS/0.6352 + w.ba/0.5884 + w.s + w.toc)
	if w.nsgMet < c.NSGMin {
		delta := c.NSGMin - w.nsgMet
		w.ba = math.Max((w.ba/0.5884-delta)*0.5884, c.BAMin)
		w.nsgMet = c.NSGMin
	}
}

// wasteDefaults fills outputs for blocks with no computable metallurgy.
func (w *calc) wasteDefaults() {
	c := w.cfg
	o := &w.out
	o.MET = 0
	o.ACLS = 0
	o.ZNGRD, o.ZNREC, o.AGGZN = c.ZNGrade, 0, 0
	o.PBGRD, o.PBREC, o.AGGPB = c.PBGrade, 0, 0
	o.PBROX, o.AGGOX = 0, 0
	o.ZNRWX, o.PBRWX, o.AGGWX = 0, 0, 0

	if w.bi.Deposit.SecondaryCircuits() {
		o.PBGOX = c.PBGradeOxWaste
		o.ZNGWX, o.PBGWX = c.ZNGradeWx, c.PBGradeWx
	} else {
		o.PBGOX = 0
		o.ZNGWX, o.PBGWX = 0, 0
	}
	if o.IsAir {
		return
	}
	p := w.shalePreset()
	if p != nil {
		o.P80 = num.Of(p.P80)
		o.Ab = num.Of(p.Ab)
		o.BBMWi = num.Of(p.BBMWi)
		o.Preset = p
	}
}

// shalePreset returns the fixed grinding values for shale host rock.
// Values come from composite testwork; no per-block hardness exists.
func (w *calc) shalePreset() *GrindPreset {
	d := w.d
	g := w.bi.GeolMix
	if w.bi.Deposit.SecondaryCircuits() {
		switch {
		case contains(blackShale[d], g):
			return &GrindPreset{Ab: 42.8, BBMWi: 20.90, P80: 60.0, SESag: 9.50, SEBall: 15.89, TPH: 439.3, SagLimited: num.Of(0)}
		case g > AirCode:
			return &GrindPreset{Ab: 49.4, BBMWi: 18.86, P80: 60.0, SESag: 9.03, SEBall: 14.0, TPH: 498.8, SagLimited: num.Of(0)}
		}
		return nil
	}
	switch {
	case contains(blackShale[d], g):
		return &GrindPreset{Ab: 42.8, BBMWi: 20.90, P80: 60.0, SESag: 11.56, SEBall: 15.88, TPH: 413.9, SagLimited: num.Of(1)}
	case contains(bariticSiksikpuk[d], g):
		// Throughput exceeds the high ceiling so the limit flag stays unset.
		return &GrindPreset{Ab: 195.7, BBMWi: 9.09, P80: 60.0, SESag: 5.60, SEBall: 6.78, TPH: 958.9, SagLimited: num.Undef()}
	case g > AirCode:
		return &GrindPreset{Ab: 49.4, BBMWi: 18.86, P80: 60.0, SESag: 10.32, SEBall: 14.0, TPH: 468.5, SagLimited: num.Of(1)}
	}
	return nil
}
