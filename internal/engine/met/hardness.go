package met

import (
	"math"

	"orecast.dev/internal/num"
)

// Hardness class polygons in the projected mineral-composition plane.
// Vertex order matters: classes are tested in a fixed priority and the
// first containing polygon wins. Each list is closed (first vertex
// repeated last).
var (
	pcaBarite = [][2]float64{
		{0.07739765, -0.065052144}, {0, -0.44449356}, {0.7596754, -1.9022361},
		{1.8326122, -1.3898741}, {0.77248174, -0.5780578}, {0.07739765, -0.065052144},
	}
	pcaSphTransition = [][2]float64{
		{-0.32426587, -2.3706815}, {0.7596754, -1.9022361}, {0, -0.44449356},
		{-0.17570537, -1.3971936}, {-0.32426587, -2.3706815},
	}
	pcaBaritic = [][2]float64{
		{1.3209039, 0.57174075}, {3.224679, -0.44566396}, {1.8326122, -1.3898741},
		{0.77248174, -0.5780578}, {1.3209039, 0.57174075},
	}
	pcaSphalerite = [][2]float64{
		{-0.73650986, -1.245879}, {-0.17570537, -1.3971936}, {-0.32426587, -2.3706815},
		{-0.6433958, -2.5317097}, {-0.9405167, -2.3194454}, {-1.1420099, -2.0472643},
		{-0.73650986, -1.245879},
	}
	pcaSilSph = [][2]float64{
		{-0.17570537, -1.3971936}, {0, -0.44449356}, {-0.43072304, -0.31878603},
		{-0.6500919, -1.0023206}, {-0.73650986, -1.245879}, {-0.17570537, -1.3971936},
	}
	pcaSiliceous = [][2]float64{
		{0, -0.44449356}, {0.07739765, -0.065052144}, {0.33600292, 1.0987418},
		{0, 1.2890476}, {-0.29675466, 1.2451309}, {-0.87999207, 0.1545316},
		{-0.5769689, -0.16165164}, {-0.43072304, -0.31878603}, {0, -0.44449356},
	}
	pcaSilPyr = [][2]float64{
		{-0.87999207, 0.1545316}, {-1.7136983, -1.1987387}, {-1.4677393, -1.5680045},
		{-0.5769689, -0.16165164}, {-0.87999207, 0.1545316},
	}
	pcaPyrSph = [][2]float64{
		{-1.4677393, -1.5680045}, {-1.1420099, -2.0472643}, {-0.73650986, -1.245879},
		{-0.6500919, -1.0023206}, {-0.43072304, -0.31878603}, {-0.5769689, -0.16165164},
		{-1.4677393, -1.5680045},
	}
	pcaSilBarite = [][2]float64{
		{1.3209039, 0.57174075}, {0.33600292, 1.0987418}, {0.07739765, -0.065052144},
		{0, -0.44449356}, {0.07739765, -0.065052144}, {0.77248174, -0.5780578},
		{1.3209039, 0.57174075},
	}
	pcaHighTOC = [][2]float64{
		{-0.29675466, 1.2451309}, {-1.6172923, 0.9157553}, {-1.7136983, -1.1987387},
		{-0.87999207, 0.1545316}, {-0.29675466, 1.2451309},
	}
	pcaHighGalena = [][2]float64{
		{-1.1420099, -2.0472643}, {-1.474234, -2.619543}, {-0.946019, -3.6442673},
		{-0.4783286, -3.702823}, {-0.32426587, -2.3706815}, {-0.6433958, -2.5317097},
		{-0.9405167, -2.3194454}, {-1.1420099, -2.0472643},
	}
)

// pointInPolygon is a standard ray-casting test on a closed vertex list.
func pointInPolygon(x, y float64, poly [][2]float64) bool {
	inside := false
	for i := 0; i+1 < len(poly); i++ {
		x1, y1 := poly[i][0], poly[i][1]
		x2, y2 := poly[i+1][0], poly[i+1][1]
		if (y1 > y) != (y2 > y) {
			if x < (x2-x1)*(y-y1)/(y2-y1)+x1 {
				inside = !inside
			}
		}
	}
	return inside
}

// hardness assigns the hardness class from the projected composition
// point, then the abrasion and work indices. Class-based estimates fall
// back to the universal regression when missing or out of bounds.
func (w *calc) hardness() {
	c, bi := w.cfg, w.bi
	o := &w.out

	gal := (w.stPB - w.stSPB) / 0.8660
	sph := w.stZN/0.6709 + w.feInFeS/0.6352
	pyr := w.feInFeS2 / 0.4655
	bar := w.stBA / 0.5884
	u1 := -0.004074671*bar + 0.012634782*bi.NSG - 0.025242613*sph -
		0.107611865*gal - 0.015048441*pyr - 0.00473548*10*w.toc
	u2 := 0.03159656*bar - 0.000326032*bi.NSG - 0.002455592*sph -
		0.014168624*gal - 0.019183818*pyr - 0.034004886*10*w.toc

	znfe := o.ZNFE.Or(0)
	ab := 0.0
	bbmwi := 0.0
	universalAb := true
	universalBBMWi := true
	p80 := c.P80Fine

	switch {
	case pointInPolygon(u2, u1, pcaBaritic):
		o.ACLS = 3
		p80 = c.P80Coarse
		if w.znfeDef {
			ab = round1(15.18*gal + 2.054*bar - 226.1*w.toc - 3.133*znfe)
		} else {
			ab = c.AbMin
		}
		universalAb = false
		bbmwi = round2(14.23 - 0.144*w.t2 - 0.0619*w.t6 - 0.227*sph)
		universalBBMWi = false
	case pointInPolygon(u2, u1, pcaSiliceous):
		o.ACLS = 6
		ab = round1(71.33 - 0.223*w.t6 - 1.049*pyr + 1.141*bar)
		universalAb = false
	case pointInPolygon(u2, u1, pcaSphalerite):
		o.ACLS = 4
		ab = round1(27.45 + 0.556*w.t2 + 0.638*sph + 1.179*bar)
		universalAb = false
	case pointInPolygon(u2, u1, pcaSilPyr):
		o.ACLS = 7
		ab = round1(43.18 + 0.154*w.t2 + 0.368*sph + 3.905*bar - 6.462*w.toc)
		universalAb = false
	case pointInPolygon(u2, u1, pcaPyrSph):
		o.ACLS = 8
		ab = round1(391.8 - 0.133*w.t6 - 1.720*bi.NSG - 74.554*bi.SG)
		universalAb = false
	case pointInPolygon(u2, u1, pcaSilSph):
		o.ACLS = 5
		if w.znfeDef {
			ab = round1(37.06 + 0.562*w.t2 + 26.35*w.toc + 0.867*znfe)
		} else {
			ab = c.AbMin
		}
		universalAb = false
	case pointInPolygon(u2, u1, pcaBarite):
		o.ACLS = 1
		p80 = c.P80Medium
	case pointInPolygon(u2, u1, pcaSphTransition):
		o.ACLS = 2
	case pointInPolygon(u2, u1, pcaSilBarite):
		o.ACLS = 9
		p80 = c.P80Medium
	case pointInPolygon(u2, u1, pcaHighTOC):
		o.ACLS = 10
	case pointInPolygon(u2, u1, pcaHighGalena):
		o.ACLS = 11
	default:
		o.ACLS = 0
	}

	if universalAb || ab < c.AbMin || ab > c.AbMax {
		if w.znfeDef {
			ab = round1(38.60 + 0.160*w.t2 + 0.469*sph + 1.295*bar - 0.647*znfe)
			ab = clamp(ab, c.AbMin, c.AbMax)
		} else {
			ab = c.AbMin
		}
	}
	if o.QWXFG == 1 {
		// Weathered West feed is friable regardless of class.
		ab = math.Min(math.Max(150.0, ab), c.AbMax)
	}

	bbmwiMin := c.BBMWiMin(ab)
	if bi.Deposit.SecondaryCircuits() {
		bbmwi = round2(0.49216*w.stZN + 0.2699*bi.NSG - 0.10428*w.t1)
	} else if universalBBMWi || bbmwi < bbmwiMin || bbmwi > c.BBMWiMax {
		bbmwi = round2(5.772 + 0.0256*w.t2 + 0.105*bi.NSG + 4.95*w.toc)
	}
	bbmwi = clamp(bbmwi, bbmwiMin, c.BBMWiMax)

	o.P80 = num.Of(p80)
	o.Ab = num.Of(ab)
	o.BBMWi = num.Of(bbmwi)
}
