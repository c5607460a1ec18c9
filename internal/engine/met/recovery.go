package met

import (
	"math"

	"orecast.dev/internal/engine/deposit"
)

// recoveries computes concentrate grades and recoveries for the zinc,
// lead, oxide-lead and weathered-bulk streams.
func (w *calc) recoveries() {
	c := w.cfg
	o := &w.out

	if !w.bi.Deposit.SecondaryCircuits() {
		// Only the West deposit produces oxide or weathered concentrate.
		o.PBROX, o.PBGOX = 0, 0
		o.ZNRWX, o.ZNGWX, o.PBRWX, o.PBGWX = 0, 0, 0, 0

		if w.bi.Deposit != deposit.East || o.MET == 9 {
			w.sulfideRecovery()
		} else {
			// East siliceous and veined ore carry fixed pilot-plant recoveries.
			o.ZNGRD = c.ZNGrade
			o.PBGRD = c.PBGrade
			if o.MET == 8 {
				o.ZNREC = round1(81.3 * c.ZnRecEff)
				o.PBREC = 67.0
			} else {
				o.ZNREC = round1(43.8 * c.ZnRecEff)
				o.PBREC = 49.6
			}
		}
		return
	}
	w.westRecovery()
}

// sulfideRecovery is the regression suite for the primary sulfide
// deposits (and East baritic ore).
func (w *calc) sulfideRecovery() {
	c := w.cfg
	o := &w.out
	o.ZNGRD = c.ZNGrade
	o.PBGRD = c.PBGrade

	rpbMet := w.spb / w.pb * 100.0
	sulPB := w.pb - w.spb
	znAdjPB := math.Max(11.0692*math.Exp(-0.0239*rpbMet)-0.5748*sulPB, c.ZnAdjPBMin)
	pbAdjPB := math.Max(4.0118*math.Exp(-0.0766*rpbMet)+0.5396*sulPB, c.PbAdjPBMin)

	// Zinc concentrate.
	ba := w.ba
	var znRecLab float64
	if w.fe <= c.RecLimitFE && w.zn <= c.RecLimitZN && ba >= c.RecLimitBA {
		// Low-zinc high-barite blocks: the exponential form over-predicts.
		znRecLab = 35.8735 * math.Pow(w.zn, 0.2504) * math.Pow(w.pb, -0.1601) *
			math.Pow(w.fe, -0.05875) * math.Pow(w.nsgMet, 0.09152)
		znRecLab = clamp(znRecLab, c.ZnRecMin, c.ZnRecMax)
	} else {
		if o.MET == 2 {
			ba = math.Min(ba, c.BALimitWeathered)
		}
		e1 := 0.0161*ba + 0.2481
		e2 := -0.0024*ba - 0.0888
		e3 := -0.0075*ba + 0.0740
		e4 := -0.0018*ba + 0.1491
		e5 := 0.0117*ba + 0.0136
		e6 := -0.0160*ba + 0.0029
		e7 := -0.0405*ba + 0.1711
		znRecLab = 17.469 * math.Pow(w.zn, e1) * math.Pow(w.pb, e2) * math.Pow(w.fe, e3) *
			math.Pow(w.nsgMet, e4) * math.Pow(ba, e5) * math.Pow(w.spb, e6) * math.Pow(znAdjPB, e7)
	}
	// Plant transfer function, baritic ore has its own fit.
	y := math.Max(4.60517-math.Log(znRecLab), 0.0001)
	var z float64
	if v, ok := o.ORCT2.Get(); ok && v == 3 {
		z = znRecLab + (10.7349/y)*math.Exp(-0.5*math.Pow((math.Log(y)+0.42027)/0.58708, 2))
	} else {
		z = znRecLab + (4.0746/y)*math.Exp(-0.5*math.Pow((math.Log(y)+0.87774)/0.42255, 2))
	}
	z = round2(z * c.ZnRecEff)
	o.ZNREC = clamp(z, c.ZnRecMin, c.ZnRecMax)

	// Lead concentrate; weathered feed produces none.
	if o.MET == 2 {
		o.PBREC = 0
		return
	}
	e1 := 0.0762*w.fe - 0.3363
	e2 := -0.3824*w.fe + 3.6151
	e3 := -0.1788
	e4 := 0.0410*w.fe - 0.0603
	e5 := 0.0075*w.fe - 0.0419
	e6 := 0.1602*w.fe - 1.6041
	e7 := 0.2504*w.fe - 2.4251
	pbRecLab := round2(9.24 * math.Pow(w.zn, e1) * math.Pow(w.pb, e2) * math.Pow(w.fe, e3) *
		math.Pow(w.nsgMet, e4) * math.Pow(w.ba, e5) * math.Pow(w.spb, e6) * math.Pow(pbAdjPB, e7))
	o.PBREC = clamp(pbRecLab, c.PbRecMin, c.PbRecMax)
}

// westRecovery is the regression suite for the West deposit with its
// sulfide, oxide and weathered-bulk streams.
func (w *calc) westRecovery() {
	c, bi := w.cfg, w.bi
	o := &w.out
	o.ZNGRD = c.ZNGrade
	o.PBGRD = c.PBGrade
	o.PBGOX = c.PBGradeOx
	o.ZNGWX = c.ZNGradeWx
	o.PBGWX = c.PBGradeWx

	// Zinc concentrate from regular or weathered feed.
	if o.MET == 1 || o.MET == 2 {
		if sio2, ok := bi.SIO2.Get(); ok {
			agClip := clamp(w.ag, 1.158, 6.912)
			tocClip := clamp(w.toc, 0.10, 0.65)
			zz := 13.78371 + 1.32534*w.stZN - 1.85221*w.stSPB + 0.66301*sio2 +
				2.20423*agClip - 13.85855*tocClip + 0.21601*w.t2
			if w.deduct {
				cu := bi.CU.Must()
				zz *= clamp(c.cuIntercept()-c.cuSlope()*cu, 0, 1)
			}
			o.ZNREC = clamp(round2(zz*c.ZnRecEff), 0, c.ZnRecMax)
		} else {
			o.ZNREC = 0
		}
	} else {
		o.ZNREC = 0
	}

	// Bulk concentrate zinc for high-copper (and blend region) feed.
	if o.MET == 4 || w.deduct {
		z := 6.67*w.stZN - 33.33
		o.ZNRWX = clamp(round2(z*c.ZnRecEff), 0, c.ZnRecMax)
	} else {
		o.ZNRWX = 0
	}

	// Lead concentrate from regular feed.
	if o.MET == 1 {
		p := round2(63.67652 - 11.3144*w.stSPB + 1.044188*w.stPB)
		o.PBREC = clamp(p, 0, c.PbRecMax)
	} else {
		o.PBREC = 0
	}

	// Oxide lead concentrate.
	if o.MET == 3 && w.stPB > 0 {
		p := round2(67.2*math.Log(w.stPB) - 104.0)
		o.PBROX = clamp(p, 0, c.PbRecOxMax)
	} else {
		o.PBROX = 0
	}

	// Bulk concentrate lead balances against the zinc recovery; the
	// grade is recomputed when the balance would exceed the cap.
	if (o.MET == 4 || w.deduct) && w.stPB > 0 {
		concTns := w.stZN * o.ZNRWX / o.ZNGWX
		p := round2(concTns * o.PBGWX / w.stPB)
		if p <= c.PbRecMax {
			o.PBRWX = math.Max(p, 0)
		} else {
			o.PBRWX = c.PbRecMax
			o.PBGWX = round2(w.stPB * o.PBRWX / concTns)
		}
	} else {
		o.PBRWX = 0
	}
}

// silver computes per-stream silver recoveries and converts them to
// concentrate silver grades.
func (w *calc) silver() {
	c, bi := w.cfg, w.bi
	o := &w.out
	agm := o.AGM.Or(0)

	if !bi.Deposit.SecondaryCircuits() || o.MET == 1 || o.MET == 2 {
		o.AGGOX = 0

		var agRecZn float64
		if w.toc > 0 && o.ZNREC > 0 {
			a := 0.71200*math.Exp(-7.416)*math.Pow(w.fe, 0.1988)*math.Pow(w.toc, -0.1760)*
				math.Pow(w.nsgMet, -0.4080)*math.Pow(o.ZNREC, 2.659) + 19.05360
			agRecZn = clamp(a, 0, c.AgRecZnMax)
		}
		var agRecPb float64
		if w.ag > 0 && o.PBREC > 0 && !(bi.Deposit.SecondaryCircuits() && o.MET == 2) {
			a := 0.50950*math.Exp(-4.665)*math.Pow(w.pb, 1.459)*math.Pow(w.spb, -0.5752)*
				math.Pow(w.ag, -1.040)*math.Pow(o.PBREC, 1.517) + 14.41932
			agRecPb = clamp(a, 0, c.AgRecPbMax)
		}
		// Combined recovery cannot exceed the lead-stream cap.
		if total := agRecZn + agRecPb; total > c.AgRecPbMax {
			adj := c.AgRecPbMax / total
			agRecZn *= adj
			agRecPb *= adj
		}
		if agRecZn > 0 && w.stZN > 0 && o.ZNREC > 0 {
			o.AGGZN = round1(agm * agRecZn / (w.stZN * o.ZNREC / o.ZNGRD))
		}
		if agRecPb > 0 && w.stPB > 0 && o.PBREC > 0 {
			o.AGGPB = round1(agm * agRecPb / (w.stPB * o.PBREC / o.PBGRD))
		}
	} else {
		o.AGGZN, o.AGGPB = 0, 0
		if o.MET == 3 && o.PBROX > 0 && agm > 0 {
			a := 56.8*math.Log(agm) - 252.8
			agRecOx := clamp(a, 0, c.AgRecOxMax)
			o.AGGOX = round1(agm * agRecOx / (w.stPB * o.PBROX / o.PBGOX))
		} else {
			o.AGGOX = 0
		}
	}

	// Bulk concentrate silver carries a fixed grade unless the implied
	// recovery exceeds the cap.
	if bi.Deposit.SecondaryCircuits() && (o.MET == 4 || w.deduct) {
		o.AGGWX = 381.0
		if agm > 0 {
			concTns := w.stZN * o.ZNRWX / o.ZNGWX
			if agRecWx := concTns * o.AGGWX / agm; agRecWx > c.AgRecPbMax {
				o.AGGWX = round1(agm * c.AgRecPbMax / concTns)
			}
		}
	} else {
		o.AGGWX = 0
	}
}
