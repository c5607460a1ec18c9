package dest

// Smooth runs salt-and-pepper noise reduction over the diluted
// destinations. Three patterns are tested in order on each interior
// block: a horseshoe of five matching blocks around the centre, two
// matching parallel lines pinching the centre row or column, and a
// stray block against a corner of three. Mill feed and cover are
// treated asymmetrically in the corner test since neither should spread.
// The corner test runs a second time over the revised codes.
func Smooth(g *Grid) {
	var m [9]Code
	for r := 1; r < g.Rows-1; r++ {
		for c := 1; c < g.Cols-1; c++ {
			i := g.idx(r, c)
			if g.Skip[i] {
				continue
			}
			neighbours(g, g.DestD, r, c, &m)
			switch {
			case m[1] != m[4] &&
				((m[1] == m[0] && m[1] == m[3] && m[1] == m[6] && m[1] == m[7]) ||
					(m[1] == m[2] && m[1] == m[5] && m[1] == m[8] && m[1] == m[7])):
				g.horseshoe(i, m[1], m[4])
			case m[3] != m[4] &&
				((m[3] == m[6] && m[3] == m[7] && m[3] == m[8] && m[3] == m[5]) ||
					(m[3] == m[0] && m[3] == m[1] && m[3] == m[2] && m[3] == m[5])):
				g.horseshoe(i, m[3], m[4])
			case m[4] == m[5] && m[7] == m[8] && m[1] == m[2] && m[7] != m[4] && m[1] != m[4]:
				// Lines above and below a horizontal pair.
				var repl Code
				switch {
				case m[7] == m[1] || m[1] == WCV || m[1] == HG:
					repl = m[7]
				case m[7] == WCV || m[7] == HG:
					repl = m[1]
				default:
					repl = min(m[1], m[7])
				}
				g.parallel(i, i+1, repl, m[4])
			case m[4] == m[1] && m[3] == m[0] && m[5] == m[2] && m[3] != m[4] && m[5] != m[4]:
				// Lines left and right of a vertical pair.
				var repl Code
				switch {
				case m[3] == m[5] || m[5] == WCV || m[5] == HG:
					repl = m[3]
				case m[3] == WCV || m[3] == HG:
					repl = m[5]
				default:
					repl = min(m[3], m[5])
				}
				g.parallel(i, i-g.Cols, repl, m[4])
			default:
				g.cornerTest(i, &m)
			}
		}
	}

	// Second corner-only pass over the revised codes.
	for r := 1; r < g.Rows-1; r++ {
		for c := 1; c < g.Cols-1; c++ {
			i := g.idx(r, c)
			if g.Skip[i] {
				continue
			}
			neighbours(g, g.DestD, r, c, &m)
			g.cornerTest(i, &m)
		}
	}
}

// cornerTest replaces a stray block with the dominant neighbouring code,
// preferring a corner of three when it outranks the count winner. Mill
// feed centres never change; cover never seeds a corner or wins the
// count.
func (g *Grid) cornerTest(i int, m *[9]Code) {
	ctr := m[4]
	if ctr <= HG {
		return
	}
	var corner Code
	switch {
	case m[0] == m[3] && m[0] == m[1] && m[0] != WCV && m[0] != HG:
		corner = m[0]
	case m[2] == m[1] && m[2] == m[5] && m[2] != WCV && m[2] != HG:
		corner = m[2]
	case m[6] == m[3] && m[6] == m[7] && m[6] != WCV && m[6] != HG:
		corner = m[6]
	case m[8] == m[5] && m[8] == m[7] && m[8] != WCV && m[8] != HG:
		corner = m[8]
	}

	var n [SPWX + 1]int
	for _, v := range m {
		if v >= HG && v <= SPWX {
			n[v]++
		}
	}
	most := mostCode(&n)
	if most == 0 {
		return
	}
	if ctr < LGN || ctr > SPWX {
		return
	}
	cc := n[ctr]
	if cc <= 2 || (cc == 3 && (m[0] == ctr || m[2] == ctr || m[6] == ctr || m[8] == ctr)) {
		g.corner(i, max(most, corner), ctr)
	}
}

// mostCode picks the most common destination among the stencil counts,
// ties resolved toward mill feed, then low grade, then waste, with the
// stockpiles last. Cover is disregarded.
func mostCode(n *[SPWX + 1]int) Code {
	order := [8]Code{HG, LGPR, LGN, WPR, WN, WCN, SPOX, SPWX}
	for _, cand := range order {
		best := true
		for _, other := range order {
			if other != cand && n[other] > n[cand] {
				best = false
				break
			}
		}
		if best {
			return cand
		}
	}
	return 0
}

func (g *Grid) horseshoe(i int, repl, ctr Code) {
	g.DestD[i] = repl
	g.Dilfg[i] = transitionFlag(ctr, repl, DilOreFromOreHorseshoe,
		DilWasteFromOreHorseshoe, DilOreFromWasteHorseshoe, DilWasteFromWasteHorseshoe)
}

func (g *Grid) parallel(i, j int, repl, ctr Code) {
	g.DestD[i] = repl
	g.DestD[j] = repl
	f := transitionFlag(ctr, repl, DilOreFromOreParallel,
		DilWasteFromOreParallel, DilOreFromWasteParallel, DilWasteFromWasteParallel)
	g.Dilfg[i] = f
	g.Dilfg[j] = f
}

func (g *Grid) corner(i int, repl, ctr Code) {
	g.DestD[i] = repl
	g.Dilfg[i] = transitionFlag(ctr, repl, DilOreFromOreCorner,
		DilWasteFromOreCorner, DilOreFromWasteCorner, DilWasteFromWasteCorner)
}

// transitionFlag maps a replacement to the dilution flag for its
// ore/waste transition. Only sulfide mill feed counts as ore here.
func transitionFlag(ctr, repl Code, oreOre, oreWaste, wasteOre, wasteWaste int) int {
	if ctr <= LGN {
		if repl <= LGN {
			return oreOre
		}
		return oreWaste
	}
	if repl <= LGN {
		return wasteOre
	}
	return wasteWaste
}
