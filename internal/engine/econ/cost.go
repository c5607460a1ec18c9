package econ

// Costs holds the mining, milling and overhead unit costs. Per-deposit
// values are indexed by deposit.Deposit.Index().
type Costs struct {
	MineWaste [4]float64 `yaml:"mine_waste"` // $/t waste rock
	MineOre   [4]float64 `yaml:"mine_ore"`   // $/t ore rock
	Mill      [4]float64 `yaml:"mill"`       // $/t mill feed
	MillOxide float64    `yaml:"mill_oxide"` // $/t extra flotation for oxide feed
	Tails     float64    `yaml:"tails"`      // $/t tailings, includes dam construction
	Rehandle  float64    `yaml:"rehandle"`   // $/t, stockpile to crusher tram increment
	Indirect  float64    `yaml:"indirect"`   // $/hr grinding, site G&A over mill hours

	// Grinding energy and throughput escalator bases.
	AveragePower float64    `yaml:"average_power"` // kWh/t, SAG plus ball specific energy
	PowerCost    float64    `yaml:"power_cost"`    // $/kWh
	Comminution  [4]float64 `yaml:"comminution"`   // $/t crushing and grinding, no labor
	AverageTPH   [4]float64 `yaml:"average_tph"`   // plan average throughput

	// Haulage elevation escalator. Either direction from the index
	// bench is an increase.
	HaulIncrLU    float64 `yaml:"haul_incr_lu"` // $/t/bench above index, loaded up
	HaulIncrLD    float64 `yaml:"haul_incr_ld"` // $/t/bench below index, loaded down
	HaulIncrBench [4]int  `yaml:"haul_incr_bench"`
}

// DefaultCosts returns the current planning-cycle cost set.
func DefaultCosts() Costs {
	return Costs{
		MineWaste: [4]float64{5.96, 5.96, 5.96, 5.43},
		MineOre:   [4]float64{5.88, 5.88, 5.88, 5.61},
		Mill:      [4]float64{28.48, 28.48, 28.48, 26.55},
		MillOxide: 25.92,
		Tails:     7.94,
		Rehandle:  0.206,
		Indirect:  23711.53,

		AveragePower: 18.7,
		PowerCost:    0.223,
		Comminution:  [4]float64{10.02, 10.02, 10.02, 8.49},
		AverageTPH:   [4]float64{500, 500, 500, 590},

		HaulIncrLU:    0.0159,
		HaulIncrLD:    0.0184,
		HaulIncrBench: [4]int{17, 17, 17, 12},
	}
}

// HaulEsc is the haulage cost adjustment for a bench above or below the
// deposit's index bench, always an increase.
func (c *Costs) HaulEsc(d, bench int) float64 {
	db := float64(c.HaulIncrBench[d] - bench)
	return max(db*-c.HaulIncrLU, db*c.HaulIncrLD)
}

// BaseMillCost is the milling operating cost before tailings: haulage
// and grinding escalators on the base mill cost plus time-based
// indirects.
func (c *Costs) BaseMillCost(d, bench int, tph, seSag, seBall float64) float64 {
	powerEsc := (seSag + seBall - c.AveragePower) * c.PowerCost
	throughputEsc := c.Comminution[d] * (c.AverageTPH[d]/tph - 1)
	return c.HaulEsc(d, bench) + (c.Mill[d] + powerEsc + throughputEsc) + c.Indirect/tph
}

// MillCost is the full operating cost and mill cutoff for a feed with
// the given concentrate mass fraction and per-tonne circuit extras. The
// cutoff nets the ore/waste mining cost differential so that a block
// exactly at cutoff is indifferent between milling and dumping.
func (c *Costs) MillCost(base float64, d int, concFrac, extra float64) (op, cutoff float64) {
	op = base + (1-concFrac)*c.Tails + extra
	cutoff = op + c.MineOre[d] - c.MineWaste[d]
	return op, cutoff
}

// SulfideCost is the sulfide-circuit operating cost and cutoff.
func (c *Costs) SulfideCost(base float64, d int, concFrac float64) (op, cutoff float64) {
	return c.MillCost(base, d, concFrac, 0)
}

// OxideCost is the oxide-circuit cost and cutoff. Rehandle is included
// as the small circuit runs from stockpile; the extra flotation cost is
// added on top.
func (c *Costs) OxideCost(base float64, d int, concFrac float64) (op, cutoff float64) {
	return c.MillCost(base, d, concFrac, c.Rehandle+c.MillOxide)
}

// WeatheredCost is the weathered-circuit cost and cutoff, rehandled
// like oxide but without extra flotation.
func (c *Costs) WeatheredCost(base float64, d int, concFrac float64) (op, cutoff float64) {
	return c.MillCost(base, d, concFrac, c.Rehandle)
}

// AllTailsCost prices a block as if its whole tonnage reports to
// tailings, used when dilution moves a block across circuits and its
// concentrate balance no longer applies.
func (c *Costs) AllTailsCost(base float64, d int) (op, cutoff float64) {
	return c.MillCost(base, d, 0, 0)
}

// ValueRate converts a revenue/cutoff margin into $/s of mill time.
func ValueRate(amr, cutoff, mpt float64) float64 {
	return (amr - cutoff) / (mpt * 60.0)
}

// RehandleRate is the per-second cost of the stockpile rehandle tram.
func (c *Costs) RehandleRate(mpt float64) float64 {
	return c.Rehandle / (mpt * 60.0)
}
