package dest

// ResetFlags clears dilution flags on blocks that flip-flopped back to
// their economic classification, and retags low grade feed recovered
// from a waste flag. Runs over the full grid, edges included.
func ResetFlags(g *Grid) {
	for i := range g.DestD {
		if g.Skip[i] {
			continue
		}
		switch {
		case g.DestD[i] == g.DestC[i]:
			if g.DestD[i] <= LGN || g.DestD[i] >= SPOX {
				g.Dilfg[i] = DilOreUnchanged
			} else {
				g.Dilfg[i] = DilWasteUnchanged
			}
		case g.DestD[i] == LGN && g.Dilfg[i] == DilWasteFromOre:
			g.Dilfg[i] = DilOreFromWaste
		}
	}
}

// Reserve assigns the reserve destination code from the routing
// destination and the resource class, and flags ore reclassified to
// waste by resource-class criteria. diluted selects DestD over DestC as
// the routing destination.
func Reserve(g *Grid, rescl []int, destR []int, diluted bool) {
	for i := range destR {
		if g.Skip[i] {
			continue
		}
		dst := g.DestC[i]
		if diluted {
			dst = g.DestD[i]
		}
		rc := rescl[i]
		mi, inf, waste, flag := 0, 0, 0, 0
		switch {
		case dst <= HG:
			mi, inf, waste, flag = ResHGMI, ResHGInf, ResWasteFromHG, DilRRWasteFromSulfide
		case dst <= LGN:
			mi, inf, waste, flag = ResLGNMI, ResLGNInf, ResWasteFromHG, DilRRWasteFromSulfide
		case dst <= LGPR:
			mi, inf, waste, flag = ResLGPRMI, ResLGPRInf, ResWasteFromLGPR, DilRRWasteFromLGPR
		case dst >= SPWX:
			mi, inf, waste, flag = ResWeatheredMI, ResWeatheredInf, ResWasteFromWX, DilRRWasteFromWeathered
		case dst >= SPOX:
			mi, inf, waste, flag = ResOxideMI, ResOxideInf, ResWasteFromOX, DilRRWasteFromOxide
		default:
			destR[i] = ResWaste
			continue
		}
		switch {
		case rc <= 2:
			destR[i] = mi
		case rc <= 3:
			destR[i] = inf
		default:
			destR[i] = waste
			if diluted {
				g.Dilfg[i] = flag
			}
		}
	}
}

// FilterByClass reclassifies ore below the resource-class limit to
// waste. limit 1 keeps measured & indicated; 2 keeps inferred as well.
// Diluted runs fall back to the economic classification when it was
// already a waste class; reactivity picks the waste destination.
func FilterByClass(g *Grid, rescl []int, limit int, diluted bool) {
	if limit <= 0 {
		return
	}
	cutoff := limit + 1
	for i := range g.DestC {
		if g.Skip[i] || rescl[i] <= cutoff {
			continue
		}
		wasteFor := func() Code {
			if g.Wardc[i] <= 0 {
				return WPR
			}
			return WN
		}
		if diluted {
			if g.DestD[i] <= LGPR || g.DestD[i] >= SPOX {
				if g.DestC[i] <= LGPR || g.DestC[i] >= SPOX {
					g.DestD[i] = wasteFor()
				} else {
					g.DestD[i] = g.DestC[i]
				}
			}
		} else {
			if g.DestC[i] <= LGPR || g.DestC[i] >= SPOX {
				g.DestC[i] = wasteFor()
			}
		}
	}
}
