// Package bench runs the destination model one bench at a time: the
// metallurgical classifier, the grinding model and the smelter return
// feed the economic classifier, spatial passes dilute and de-speckle
// the result, and the reserve and blasting codes are written back with
// the concentrate balance.
package bench

import (
	"orecast.dev/internal/config"
	"orecast.dev/internal/engine/deposit"
	"orecast.dev/internal/engine/dest"
	"orecast.dev/internal/engine/econ"
	"orecast.dev/internal/engine/met"
	"orecast.dev/internal/num"
)

// Slab is the bench-sized window of the block model the runner reads
// and writes. Items are addressed by name and grid position; a missing
// item reads as undefined.
type Slab interface {
	Get(name string, r, c int) (float64, bool)
	Set(name string, r, c int, v float64)
}

// Runner processes benches with one parameter set. The smelter terms
// are priced once and shared across benches.
type Runner struct {
	p     *config.Params
	terms *econ.Revenue
	cl    *dest.Classifier
}

// New builds a runner from a validated parameter set.
func New(p *config.Params) *Runner {
	return &Runner{
		p:     p,
		terms: p.Smelter.Terms(p.Prices),
		cl: &dest.Classifier{
			Costs:          &p.Costs,
			Cutoff:         p.Run.Cutoff,
			CutoffMG:       p.Run.CutoffMG,
			CutoffLG:       p.Run.CutoffLG,
			MillingOption:  p.Run.MillingOption,
			MaximizeWX:     p.Run.MaximizeWX,
			MGMaxFE:        p.Run.MGMaxFE,
			MGMaxBA:        p.Run.MGMaxBA,
			PeriodFilter:   p.Run.PeriodFilter,
			PeriodCutoff:   p.Run.PeriodCutoff,
			PeriodCutoffMG: p.Run.PeriodCutoffMG,
		},
	}
}

// cell is the per-block working state carried from the model stage into
// the spatial and reporting stages.
type cell struct {
	air bool
	dep deposit.Deposit

	geol   int
	period int
	rescl  int
	wardc  int

	stZN, stPB, stFE, stBA float64
	orct2                  float64
	odenm                  float64

	mpt, seSag, seBall float64
	amr, amrOX, amrWX  float64

	mo  met.Output
	asg dest.Assignment
}

// block projects the cell onto the classifier's input. Blocks with no
// grinding basis carry no mill time and are treated as air.
func (c *cell) block(bench int) dest.Block {
	return dest.Block{
		IsAir:     c.air || c.mpt <= 0,
		Secondary: c.dep.SecondaryCircuits(),
		DepIdx:    c.dep.Index(),
		Bench:     bench,
		Period:    c.period,
		WARDC:     c.wardc,
		STZN:      c.stZN,
		STPB:      c.stPB,
		STFE:      c.stFE,
		STBA:      c.stBA,
		ZNGRD:     c.mo.ZNGRD,
		ZNREC:     c.mo.ZNREC,
		PBGRD:     c.mo.PBGRD,
		PBREC:     c.mo.PBREC,
		PBGOX:     c.mo.PBGOX,
		PBROX:     c.mo.PBROX,
		ZNGWX:     c.mo.ZNGWX,
		ZNRWX:     c.mo.ZNRWX,
		MPT:       c.mpt,
		SESag:     c.seSag,
		SEBall:    c.seBall,
		AMR:       c.amr,
		AMROX:     c.amrOX,
		AMRWX:     c.amrWX,
	}
}

// Bench runs the full pipeline on one bench and returns the number of
// blocks processed. The caller commits the slab.
func (r *Runner) Bench(sl Slab, bench, rows, cols int) int {
	n := rows * cols
	g := dest.NewGrid(rows, cols)
	cells := make([]cell, n)
	rescl := make([]int, n)

	var vb *dest.ValueBlock
	if r.p.Run.ValueRun > 0 {
		vb = &dest.ValueBlock{
			Classifier: r.cl,
			Confidence: r.p.Run.ValueRun,
			Volume:     r.p.Run.BlockVolume,
		}
	}

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			i := row*cols + col
			cells[i] = r.model(sl, row, col)
			c := &cells[i]
			rescl[i] = c.rescl

			if vb != nil {
				sl.Set("VALB", row, col, vb.Value(dest.ValueInput{
					Block:   c.block(bench),
					Rescl:   c.rescl,
					Density: c.odenm,
				}))
				continue
			}

			if !r.cl.Use(c.period) {
				// Scheduled blocks keep their stored destination and act
				// as fixed neighbours for the spatial passes.
				g.Skip[i] = true
				g.DestC[i] = dest.Code(getOr(sl, "DESTC", row, col, float64(dest.WN)))
				g.DestD[i] = dest.Code(getOr(sl, "DESTD", row, col, float64(dest.WN)))
				g.Dilfg[i] = int(getOr(sl, "DILFG", row, col, dest.DilWasteUnchanged))
				g.Wardc[i] = c.wardc
				continue
			}

			asg := r.cl.Classify(c.block(bench))
			if asg.ForceWeathered {
				c.mo.MET = 4
				c.mo.QWXFG, c.mo.WXFG = 1, 1
				sl.Set("MET", row, col, 4)
				sl.Set("QWXFG", row, col, 1)
				sl.Set("WXFG", row, col, 1)
			}
			c.asg = asg
			g.DestC[i] = asg.Dest
			g.DestD[i] = asg.Dest
			g.Dilfg[i] = asg.Dilfg
			g.Wardc[i] = c.wardc
		}
	}
	if vb != nil {
		return n
	}

	dest.Dilute(g)
	dest.Smooth(g)
	dest.ResetFlags(g)
	destR := make([]int, n)
	dest.Reserve(g, rescl, destR, r.p.Run.Diluted)
	dest.FilterByClass(g, rescl, r.p.Run.FilterClass, r.p.Run.Diluted)
	r.finalize(sl, g, cells, destR, bench)
	return n
}

func getOr(sl Slab, name string, r, c int, def float64) float64 {
	if v, ok := sl.Get(name, r, c); ok {
		return v
	}
	return def
}

func opt(sl Slab, name string, r, c int) num.Opt {
	if v, ok := sl.Get(name, r, c); ok {
		return num.Of(v)
	}
	return num.Undef()
}

func setOpt(sl Slab, name string, r, c int, o num.Opt) {
	if v, ok := o.Get(); ok {
		sl.Set(name, r, c, v)
	}
}
