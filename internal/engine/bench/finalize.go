package bench

import (
	"orecast.dev/internal/engine/dest"
)

// finalize writes the destination, reserve and dilution items plus the
// concentrate balance. Blocks the dilution kernels moved between
// circuits have their operating cost and value rate restated for the
// routing they actually get.
func (r *Runner) finalize(sl Slab, g *dest.Grid, cells []cell, destR []int, bench int) {
	diluted := r.p.Run.Diluted
	costs := &r.p.Costs

	for i := range cells {
		if g.Skip[i] {
			continue
		}
		row, col := i/g.Cols, i%g.Cols
		c := &cells[i]

		if c.air {
			sl.Set("DESTC", row, col, float64(dest.WN))
			sl.Set("DESTD", row, col, float64(dest.WN))
			sl.Set("DESTR", row, col, float64(dest.ResWaste))
			sl.Set("DILFG", row, col, float64(dest.DilWasteUnchanged))
			sl.Set("VALS", row, col, 0)
			sl.Set("OPCST", row, col, 0)
			sl.Set("ZNCON", row, col, 0)
			sl.Set("PBCON", row, col, 0)
			sl.Set("TAILS", row, col, 0)
			sl.Set("BAC", row, col, 0)
			continue
		}

		dc, dd := g.DestC[i], g.DestD[i]
		dst := dd
		if !diluted {
			dst = dc
		}
		vals, opcst := c.asg.Vals, c.asg.Opcst

		if diluted && dd != dc && c.mpt > 0 {
			tps := 1.0 / (c.mpt * 60.0)
			d := c.dep.Index()
			if c.dep.SecondaryCircuits() && (dc >= dest.SPOX) != (dd >= dest.SPOX) {
				// Dilution moved the block to another circuit; its
				// concentrate balance no longer applies, so the restated
				// value prices the whole block to tailings.
				base := costs.BaseMillCost(d, bench, 60.0/c.mpt, c.seSag, c.seBall)
				amrTA := c.amr
				switch {
				case dd >= dest.SPWX:
					amrTA = c.amrWX
				case dd >= dest.SPOX:
					amrTA = c.amrOX
				}
				opTA, coTA := costs.AllTailsCost(base, d)
				valsTA := (amrTA - coTA) * tps
				if dd == dest.LGN || dd >= dest.SPOX {
					opcst = opTA + costs.Rehandle
					vals = valsTA - costs.Rehandle*tps
				} else {
					opcst, vals = opTA, valsTA
				}
			} else {
				// Same circuit, routing changed through the stockpile.
				switch {
				case dc == dest.LGN && dd <= dest.HG:
					opcst -= costs.Rehandle
					vals += costs.Rehandle * tps
				case dc <= dest.HG && dd == dest.LGN:
					opcst += costs.Rehandle
					vals -= costs.Rehandle * tps
				}
			}
		}

		if c.asg.MG {
			mgo := dest.MGPR
			if c.wardc > 0 {
				mgo = dest.MGN
			}
			dc = mgo
			if !diluted || dd == dest.HG {
				dd = mgo
				dst = mgo
			}
		}

		tpb := r.p.Run.BlockVolume * c.odenm
		var zncon, pbcon float64
		switch dst {
		case dest.SPOX:
			pbcon = (c.stPB * c.mo.PBROX / c.mo.PBGOX) / 100.0 * tpb
		case dest.SPWX:
			zncon = (c.stZN * c.mo.ZNRWX / c.mo.ZNGWX) / 100.0 * tpb
		default:
			zncon = (c.stZN * c.mo.ZNREC / c.mo.ZNGRD) / 100.0 * tpb
			pbcon = (c.stPB * c.mo.PBREC / c.mo.PBGRD) / 100.0 * tpb
		}

		sl.Set("DESTC", row, col, float64(dc))
		sl.Set("DESTD", row, col, float64(dd))
		sl.Set("DESTR", row, col, float64(destR[i]))
		sl.Set("DILFG", row, col, float64(g.Dilfg[i]))
		sl.Set("VALS", row, col, vals)
		sl.Set("OPCST", row, col, opcst)
		sl.Set("ZNCON", row, col, zncon)
		sl.Set("PBCON", row, col, pbcon)
		sl.Set("TAILS", row, col, tpb-zncon-pbcon)
		sl.Set("BAC", row, col, float64(dest.Blastability(c.dep.Index(), c.geol, dst, c.stFE)))
		sl.Set("ORCT4", row, col, float64(dest.OreType4(dst, c.orct2, c.stZN)))
	}
}
