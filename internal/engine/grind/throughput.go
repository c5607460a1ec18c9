package grind

import (
	"math"

	"orecast.dev/internal/num"
)

// Result is the grinding outcome for one block.
type Result struct {
	SESag float64 // kWh/t
	SEBall float64 // kWh/t
	TPH   float64 // t/h after circuit efficiency
	T80   float64 // um
	F80   float64 // mm

	// SagLimited is 1 when the SAG circuit binds throughput, 0 when the
	// ball mill binds, and undefined when throughput is capped high.
	SagLimited num.Opt
}

// Throughput computes specific energies and mill throughput for a block.
// sg, ab and bbmwi must already be clipped to their documented bounds;
// p80 is the target grind size (um). weathered caps throughput at the
// secondary-circuit ceiling.
func (c *Config) Throughput(sg, ab, bbmwi, p80 float64, weathered bool) Result {
	gc := int(c.Mode)

	prSag12 := c.millPower(SagMill, c.CSSag12(), c.BCSag12, c.MLSag12, sg, c.SAG)
	prSag3 := c.millPower(SagMill, c.CSSag3(), c.BCSag3, c.MLSag3, sg, c.SAG)
	prTotal := 2*prSag12 + prSag3

	// Power-weighted operating point over the three SAGs.
	cs := (2*prSag12*c.CSSag12() + prSag3*c.CSSag3()) / prTotal
	bc := (2*prSag12*c.BCSag12 + prSag3*c.BCSag3) / prTotal
	ml := (2*prSag12*c.MLSag12 + prSag3*c.MLSag3) / prTotal

	dwi := 100.0 * sg / ab
	cssConst := math.Pow(c.CSS, 0.7)
	var f80, p1in float64
	if c.Mode == PreCrush {
		f80 = 0.36 * math.Pow(dwi, 1.18) * cssConst
		p1in = 5.547 * math.Pow(dwi, -0.45) * cssConst
	} else {
		f80 = 0.392 * math.Pow(dwi, 1.18) * cssConst
		p1in = 4.343 * math.Pow(dwi, -0.45) * cssConst
	}
	f80 = math.Max(math.Min(f80, c.F80Max), c.F80Min)
	p1in = math.Min(p1in, c.P1Max)

	t80 := c.T80K1[gc] + c.T80K2*ab + c.T80K3*bbmwi + c.T80K4*cs + c.T80K5*ml +
		c.T80K6*ml*bc + c.T80K7*f80 + c.T80K8*p1in + c.T80K9*c.ScreenAper

	dwiAB := c.C1 + c.C2*f80 + c.C3*dwi + c.C4*f80*dwi
	seSag := c.KSag[gc] * math.Pow(sg*dwiAB, c.N1) * math.Pow(bbmwi, c.N2) * math.Pow(t80/1000.0, c.N3)

	var prPebble float64
	if c.Mode == PebbleCrush {
		mic := 317.061 * math.Pow(ab, -1.013)
		prPebble = c.PebbleTPH * mic * c.pebbleCrushConst()
	}
	tphSag := (2*prSag12 + prSag3 + prPebble) / seSag

	ofs := 4000 * math.Pow(14/bbmwi, 0.5) // optimum feed size
	off := 1.0
	if t80 > ofs {
		rrr80 := t80 / p80
		off = (rrr80 + (0.91*bbmwi-7)*(t80-ofs)/ofs) / rrr80
	}
	seBall := off * 10.0 * bbmwi * (math.Pow(p80, -0.5) - math.Pow(c.KBall[gc]*t80, -0.5))
	tphBall := (c.PRBall + c.stirredNet()) / seBall

	tph := math.Min(tphSag, tphBall)
	if weathered {
		tph = math.Min(tph*c.TPHEff, c.HighTPH)
	} else {
		tph = tph * c.TPHEff
	}

	res := Result{SESag: seSag, SEBall: seBall, TPH: tph, T80: t80, F80: f80}
	if tph < c.HighTPH {
		if tphSag <= tphBall {
			res.SagLimited = num.Of(1)
		} else {
			res.SagLimited = num.Of(0)
		}
	}
	return res
}

// pebbleCrushConst is the fixed part of the pebble crusher specific energy.
func (c *Config) pebbleCrushConst() float64 {
	f80 := 0.65 * c.PebblePort * 1000 // um
	p80 := 0.65 * c.PebbleCCS * 1000
	f80x := -(c.PebbleFx + f80/1000000)
	p80x := -(c.PebbleFx + p80/1000000)
	return c.PebbleK2*4*math.Pow(p80, p80x) - math.Pow(f80, f80x)
}

// MinutesPerTonne converts throughput to the stored minutes-per-tonne item.
func MinutesPerTonne(tph float64) float64 {
	return math.Round(60.0/tph*1e6) / 1e6
}

// GrindHours is the milling time for one block of the given tonnage.
func GrindHours(tonnes, mpt float64) float64 {
	return math.Round(tonnes*mpt/60.0*100) / 100
}
