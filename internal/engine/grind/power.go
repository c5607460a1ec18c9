package grind

import "math"

// MillKind distinguishes grate-discharge (SAG) from overflow (ball) mills;
// only the overflow correction and discharge angle differ.
type MillKind int

const (
	SagMill MillKind = iota
	BallMill
)

const halfPi = math.Pi / 2

// millPower returns the gross power draw (kW) of one mill from the
// rotating-charge mechanics model. cs, bc and ml are critical-speed,
// ball-charge and mill-load fractions; sg is the ore specific gravity.
func (c *Config) millPower(kind MillKind, cs, bc, ml, sg float64, dims MillDims) float64 {
	rpsCS := cs * 30 / math.Pi * math.Pow(c.Gravity/dims.Radius, 0.5) / 60
	solidsV := c.SolidsWeightFrac / sg / (c.SolidsWeightFrac/sg + (1-c.SolidsWeightFrac)/c.SGLiquid)
	sgSlurry := solidsV*sg - solidsV + c.SGLiquid
	millVol := dims.Belly * math.Pi * dims.Radius * dims.Radius
	massBalls := bc * millVol * 0.6 * c.SGBall
	massOre := sg * millVol * (ml*(0.6+0.4*solidsV) - bc*0.6)
	massLiquid := ml * millVol * 0.4 * (1 - solidsV) * c.SGLiquid
	volCharge := (massOre/sg + massBalls/c.SGBall) / (0.6 + 0.4*solidsV)
	sgCharge := (massBalls + massOre + massLiquid) / volCharge

	tConst := 0.35*(3.364-ml) - cs
	var t float64
	if tConst < 0 {
		t = halfPi
	} else {
		t = 2.5307*(1.2796-ml)*(1-math.Exp(-19.42*tConst)) + halfPi
	}
	s := halfPi - (t-halfPi)*(0.3386+0.1041*cs+(1.54-2.5673*cs)*ml)

	al1 := (2*math.Pi + s - t) / (2 * math.Pi)
	al2 := math.Pow(1-ml/al1, 0.5)
	al3 := 2 * al1 / rpsCS
	alFract := al3 / (math.Pow(dims.Radius*(1+al2)*(math.Sin(s)-math.Sin(t))/c.Gravity, 0.5) + al3)
	surfR := dims.Radius * math.Pow(1-alFract*ml/al1, 0.5)
	z := math.Pow(1-ml, 0.4532)

	var kinetic float64
	if tConst >= 0 {
		kiTemp := dims.Radius - z*surfR
		kinetic = dims.Belly * sgCharge * math.Pow(math.Pi*rpsCS*dims.Radius/kiTemp, 3) *
			(math.Pow(kiTemp, 4) - math.Pow((1-z)*surfR, 4))
	}

	// SAG mills discharge through a grate; ball mills overflow.
	tOverflow := t
	overflowPE := 0.0
	if kind == BallMill {
		tOverflow = 3.395
		if tOverflow <= t {
			overflowPE = 2 * math.Pi * c.Gravity * dims.Belly * sgSlurry * rpsCS *
				(math.Pow(dims.Radius, 3)*((1-ml)/2+ml/3) -
					surfR*surfR*dims.Radius*(1-ml)/2 -
					ml/3*math.Pow(surfR, 3)) *
				(math.Sin(t) - math.Sin(tOverflow))
		}
	}

	coneConst := 4 * (dims.Center - dims.Belly) / (2*dims.Radius - dims.Trunion)
	conePEConst := math.Pi * rpsCS * c.Gravity * coneConst *
		(sgCharge*(math.Sin(s)-math.Sin(t)) + sgSlurry*(math.Sin(t)-math.Sin(tOverflow)))
	conePE := conePEConst * (math.Pow(dims.Radius, 4) - 4*dims.Radius*math.Pow(surfR, 3) + 3*math.Pow(surfR, 4)) / 12
	coneKEConst := sgCharge * 2 * coneConst * math.Pow(rpsCS*math.Pi, 3)
	coneKE := coneKEConst / 20 * (math.Pow(dims.Radius, 5) - 5*dims.Radius*math.Pow(surfR, 4) + 4*math.Pow(surfR, 5))

	prNet := math.Pi*c.Gravity*dims.Belly*sgCharge*rpsCS*dims.Radius*
		(2*math.Pow(dims.Radius, 3)-3*z*surfR*dims.Radius*dims.Radius+(3*z-2)*math.Pow(surfR, 3))/
		(3*(dims.Radius-z*surfR))*(math.Sin(s)-math.Sin(t)) +
		overflowPE + kinetic + conePE + coneKE
	prNoLoad := 1.68 * math.Pow((0.33*dims.Center+0.67*dims.Belly)*math.Pow(2*dims.Radius, 2.5)*cs, 0.82)
	return prNet*c.Kmill + prNoLoad
}
