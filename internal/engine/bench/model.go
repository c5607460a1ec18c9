package bench

import (
	"orecast.dev/internal/engine/deposit"
	"orecast.dev/internal/engine/grind"
	"orecast.dev/internal/engine/met"
)

// model runs the metallurgical, grinding and revenue stages for one
// block and writes their items back to the slab.
func (r *Runner) model(sl Slab, row, col int) cell {
	dp := deposit.Main
	if code, ok := sl.Get("DEP", row, col); ok {
		if d, err := deposit.FromCode(int(code)); err == nil {
			dp = d
		}
	}

	in := met.Input{
		Deposit: dp,
		Geol:    int(getOr(sl, "GEOL", row, col, met.AirCode)),
		Geol1:   int(getOr(sl, "GEOL1", row, col, 0)),
		GeolMix: int(getOr(sl, "GEOLM", row, col, met.AirCode)),

		STZN:  opt(sl, "STZN", row, col),
		STPB:  opt(sl, "STPB", row, col),
		STSPB: opt(sl, "STSPB", row, col),
		STFE:  opt(sl, "STFE", row, col),
		STBA:  opt(sl, "STBA", row, col),
		PB:    opt(sl, "PB", row, col),
		SPB:   opt(sl, "SPB", row, col),
		AG:    opt(sl, "AG", row, col),
		TOC:   opt(sl, "TOC", row, col),
		S:     opt(sl, "S", row, col),
		SIO2:  opt(sl, "SIO2", row, col),
		CU:    opt(sl, "CU", row, col),
		T1:    opt(sl, "T1", row, col),
		T2:    opt(sl, "T2", row, col),
		T6:    opt(sl, "T6", row, col),

		NSG: getOr(sl, "NSG", row, col, 0),
		SG:  getOr(sl, "SG", row, col, 0),

		KeyCreek: getOr(sl, "KCFG", row, col, 0) == 1,
		ShalePct: opt(sl, "SHALE", row, col),
	}
	mo := r.p.Met.Classify(in)

	sl.Set("MET", row, col, float64(mo.MET))
	sl.Set("QWXFG", row, col, float64(mo.QWXFG))
	sl.Set("WXFG", row, col, float64(mo.WXFG))
	sl.Set("WARDC", row, col, float64(mo.WARDC))
	sl.Set("SHCRR", row, col, float64(mo.SHCRR))
	setOpt(sl, "BRXNF", row, col, mo.BRXNF)
	setOpt(sl, "AGM", row, col, mo.AGM)
	setOpt(sl, "ZNFE", row, col, mo.ZNFE)
	setOpt(sl, "ZNPB", row, col, mo.ZNPB)
	setOpt(sl, "RPB", row, col, mo.RPB)
	setOpt(sl, "ORCT1", row, col, mo.ORCT1)
	setOpt(sl, "ORCT2", row, col, mo.ORCT2)

	c := cell{
		air:    mo.IsAir,
		dep:    dp,
		geol:   in.Geol,
		period: int(getOr(sl, "PERLT", row, col, 0)),
		rescl:  int(getOr(sl, "RESCL", row, col, 4)),
		wardc:  mo.WARDC,
		stZN:   in.STZN.Or(0),
		stPB:   in.STPB.Or(0),
		stFE:   in.STFE.Or(0),
		stBA:   in.STBA.Or(0),
		orct2:  mo.ORCT2.Or(0),
		odenm:  getOr(sl, "ODENM", row, col, 0),
		mo:     mo,
	}
	if mo.IsAir {
		return c
	}

	sl.Set("ZNGRD", row, col, mo.ZNGRD)
	sl.Set("ZNREC", row, col, mo.ZNREC)
	sl.Set("AGGZN", row, col, mo.AGGZN)
	sl.Set("PBGRD", row, col, mo.PBGRD)
	sl.Set("PBREC", row, col, mo.PBREC)
	sl.Set("AGGPB", row, col, mo.AGGPB)
	sl.Set("PBGOX", row, col, mo.PBGOX)
	sl.Set("PBROX", row, col, mo.PBROX)
	sl.Set("AGGOX", row, col, mo.AGGOX)
	sl.Set("ZNGWX", row, col, mo.ZNGWX)
	sl.Set("ZNRWX", row, col, mo.ZNRWX)
	sl.Set("PBGWX", row, col, mo.PBGWX)
	sl.Set("PBRWX", row, col, mo.PBRWX)
	sl.Set("AGGWX", row, col, mo.AGGWX)
	sl.Set("ACLS", row, col, float64(mo.ACLS))
	setOpt(sl, "AB", row, col, mo.Ab)
	setOpt(sl, "BBMWI", row, col, mo.BBMWi)
	setOpt(sl, "P80", row, col, mo.P80)

	switch {
	case mo.Preset != nil:
		p := mo.Preset
		c.seSag, c.seBall = p.SESag, p.SEBall
		tph := p.TPH * r.p.Grind.TPHEff
		c.mpt = grind.MinutesPerTonne(tph)
		sl.Set("SESAG", row, col, c.seSag)
		sl.Set("SEBM", row, col, c.seBall)
		sl.Set("TPH", row, col, tph)
		sl.Set("MPT", row, col, c.mpt)
		setOpt(sl, "SAGLM", row, col, p.SagLimited)
	case mo.Ab.Defined() && mo.BBMWi.Defined():
		res := r.p.Grind.Throughput(in.SG, mo.Ab.Must(), mo.BBMWi.Must(), mo.P80.Must(), mo.Weathered)
		c.seSag, c.seBall = res.SESag, res.SEBall
		c.mpt = grind.MinutesPerTonne(res.TPH)
		sl.Set("SESAG", row, col, c.seSag)
		sl.Set("SEBM", row, col, c.seBall)
		sl.Set("TPH", row, col, res.TPH)
		sl.Set("MPT", row, col, c.mpt)
		setOpt(sl, "SAGLM", row, col, res.SagLimited)
	default:
		// No hardness basis and no host-rock preset: the block cannot be
		// milled and classifies as waste downstream.
		return c
	}

	c.amr = r.terms.SulfideAMR(c.stZN, mo.ZNGRD, mo.ZNREC, mo.AGGZN,
		c.stPB, mo.PBGRD, mo.PBREC, mo.AGGPB)
	sl.Set("VALT", row, col, c.amr)
	if dp.SecondaryCircuits() {
		c.amrOX = r.terms.OxideAMR(c.stPB, mo.PBGOX, mo.PBROX, mo.AGGOX)
		c.amrWX = r.terms.BulkAMR(c.stZN, mo.ZNGWX, mo.ZNRWX, mo.PBGWX, mo.AGGWX)
		sl.Set("VLTO", row, col, c.amrOX)
		sl.Set("VLTW", row, col, c.amrWX)
	}
	return c
}
