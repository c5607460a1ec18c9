package dest

// Dilute runs the kernel dilution process over a bench grid. Each pass
// sweeps the interior blocks in place, testing the 3x3 stencil around a
// block for the surrounded, three-sided and pinched two-sided patterns
// that mining equipment cannot select out. Ore surrounded by waste is
// lost to waste (flag 3); waste surrounded by ore is taken as mill feed
// (flag 0). In-place sweeps are intentional: a change made early in a
// pass feeds the stencil tests later in the same pass, mimicking how a
// shovel face advances.
//
// Only high grade sulfide feed participates; the stockpile and waste
// classes dilute among themselves during noise reduction instead.
func Dilute(g *Grid) {
	oreA(g)
	wasteA(g)
	oreB(g)
	wasteB(g)
	oreC(g)
	wasteB(g)
	oreC(g)
	oreC(g)

	// Apply the flags to the diluted destination. Waste picked up as
	// mill feed becomes HG; lost ore drops to a low grade class on
	// reactivity.
	var i int
	for r := 1; r < g.Rows-1; r++ {
		for c := 1; c < g.Cols-1; c++ {
			i = g.idx(r, c)
			if g.Skip[i] {
				continue
			}
			switch {
			case g.Dilfg[i] <= DilOreFromWaste:
				g.DestD[i] = HG
			case g.Dilfg[i] >= DilWasteFromOre:
				if g.Wardc[i] > 0 {
					g.DestD[i] = LGN
				} else {
					g.DestD[i] = LGPR
				}
			}
		}
	}
}

// oreA dilutes ore to waste on the economic classification, before any
// flags have moved. A fully surrounded ore block survives if it sits on
// a diagonal ore line.
func oreA(g *Grid) {
	var m [9]Code
	for r := 1; r < g.Rows-1; r++ {
		for c := 1; c < g.Cols-1; c++ {
			i := g.idx(r, c)
			if g.Skip[i] || g.DestC[i] > HG {
				continue
			}
			neighbours(g, g.DestC, r, c, &m)
			var change bool
			switch {
			case m[1] > HG && m[3] > HG && m[5] > HG && m[7] > HG:
				diag := 0
				for _, j := range [4]int{0, 2, 6, 8} {
					if m[j] <= HG {
						diag++
					}
				}
				change = diag < 3
			case m[3] > HG && m[1] > HG && m[5] > HG:
				change = m[0] > HG && m[2] > HG
			case m[1] > HG && m[3] > HG && m[7] > HG:
				change = m[0] > HG && m[6] > HG
			case m[3] > HG && m[7] > HG && m[5] > HG:
				change = m[6] > HG && m[8] > HG
			case m[1] > HG && m[5] > HG && m[7] > HG:
				change = m[2] > HG && m[8] > HG
			case m[1] > HG && m[7] > HG:
				change = !(m[3] <= HG && m[5] <= HG)
			case m[3] > HG && m[5] > HG:
				change = !(m[1] <= HG && m[7] <= HG)
			}
			if change {
				g.Dilfg[i] = DilWasteFromOre
			}
		}
	}
}

// wasteA dilutes waste to ore on the revised flags, eight neighbours.
func wasteA(g *Grid) {
	var m [9]int
	for r := 1; r < g.Rows-1; r++ {
		for c := 1; c < g.Cols-1; c++ {
			i := g.idx(r, c)
			if g.Skip[i] || g.Dilfg[i] <= DilOreUnchanged {
				continue
			}
			neighbours(g, g.Dilfg, r, c, &m)
			var change bool
			switch {
			case m[1] < 2 && m[3] < 2 && m[5] < 2 && m[7] < 2:
				change = true
			case m[3] < 2 && m[1] < 2 && m[5] < 2:
				change = m[0] < 2 && m[2] < 2
			case m[1] < 2 && m[3] < 2 && m[7] < 2:
				change = m[0] < 2 && m[6] < 2
			case m[3] < 2 && m[7] < 2 && m[5] < 2:
				change = m[6] < 2 && m[8] < 2
			case m[1] < 2 && m[5] < 2 && m[7] < 2:
				change = m[2] < 2 && m[8] < 2
			case m[1] < 2 && m[7] < 2:
				change = !(m[3] > 1 && m[5] > 1)
			case m[3] < 2 && m[5] < 2:
				change = !(m[1] > 1 && m[7] > 1)
			}
			if change {
				g.Dilfg[i] = DilOreFromWaste
			}
		}
	}
}

// oreB dilutes surviving ore against the revised flags, requiring both
// matching diagonals on the three-sided patterns.
func oreB(g *Grid) {
	var m [9]int
	for r := 1; r < g.Rows-1; r++ {
		for c := 1; c < g.Cols-1; c++ {
			i := g.idx(r, c)
			if g.Skip[i] || g.Dilfg[i] != DilOreUnchanged {
				continue
			}
			neighbours(g, g.Dilfg, r, c, &m)
			var change bool
			switch {
			case m[1] > 1 && m[3] > 1 && m[5] > 1 && m[7] > 1:
				change = true
			case m[3] > 1 && m[1] > 1 && m[5] > 1:
				change = m[0] > 1 && m[2] > 1
			case m[1] > 1 && m[3] > 1 && m[7] > 1:
				change = m[0] > 1 && m[6] > 1
			case m[3] > 1 && m[7] > 1 && m[5] > 1:
				change = m[6] > 1 && m[8] > 1
			case m[1] > 1 && m[5] > 1 && m[7] > 1:
				change = m[2] > 1 && m[8] > 1
			case m[1] > 1 && m[7] > 1:
				change = !(m[3] < 2 && m[5] < 2)
			case m[3] > 1 && m[5] > 1:
				change = !(m[1] < 2 && m[7] < 2)
			}
			if change {
				g.Dilfg[i] = DilWasteFromOre
			}
		}
	}
}

// wasteB dilutes only untouched waste, reading the four orthogonal
// neighbours; any three-sided pattern converts.
func wasteB(g *Grid) {
	var m [9]int
	for r := 1; r < g.Rows-1; r++ {
		for c := 1; c < g.Cols-1; c++ {
			i := g.idx(r, c)
			if g.Skip[i] || g.Dilfg[i] != DilWasteUnchanged {
				continue
			}
			neighbours(g, g.Dilfg, r, c, &m)
			var change bool
			switch {
			case m[1] < 2 && m[3] < 2 && m[5] < 2 && m[7] < 2:
				change = true
			case m[3] < 2 && m[1] < 2 && m[5] < 2,
				m[1] < 2 && m[3] < 2 && m[7] < 2,
				m[3] < 2 && m[7] < 2 && m[5] < 2,
				m[1] < 2 && m[5] < 2 && m[7] < 2:
				change = true
			case m[1] < 2 && m[7] < 2:
				change = !(m[3] > 1 && m[5] > 1)
			case m[3] < 2 && m[5] < 2:
				change = !(m[1] > 1 && m[7] > 1)
			}
			if change {
				g.Dilfg[i] = DilOreFromWaste
			}
		}
	}
}

// oreC is the aggressive final ore pass: one waste diagonal suffices on
// the three-sided patterns and pinched blocks always convert.
func oreC(g *Grid) {
	var m [9]int
	for r := 1; r < g.Rows-1; r++ {
		for c := 1; c < g.Cols-1; c++ {
			i := g.idx(r, c)
			if g.Skip[i] || g.Dilfg[i] != DilOreUnchanged {
				continue
			}
			neighbours(g, g.Dilfg, r, c, &m)
			var change bool
			switch {
			case m[1] > 1 && m[3] > 1 && m[5] > 1 && m[7] > 1:
				change = true
			case m[3] > 1 && m[1] > 1 && m[5] > 1:
				change = m[0] > 1 || m[2] > 1
			case m[1] > 1 && m[3] > 1 && m[7] > 1:
				change = m[0] > 1 || m[6] > 1
			case m[3] > 1 && m[7] > 1 && m[5] > 1:
				change = m[6] > 1 || m[8] > 1
			case m[1] > 1 && m[5] > 1 && m[7] > 1:
				change = m[2] > 1 || m[8] > 1
			case m[1] > 1 && m[7] > 1:
				change = true
			case m[3] > 1 && m[5] > 1:
				change = true
			}
			if change {
				g.Dilfg[i] = DilWasteFromOre
			}
		}
	}
}
