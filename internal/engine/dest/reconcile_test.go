package dest

import "testing"

func singleBlockGrid(destC, destD Code, dilfg, wardc int) *Grid {
	g := NewGrid(1, 1)
	g.DestC[0] = destC
	g.DestD[0] = destD
	g.Dilfg[0] = dilfg
	g.Wardc[0] = wardc
	return g
}

func TestResetFlags(t *testing.T) {
	cases := []struct {
		name         string
		destC, destD Code
		dilfg, want  int
	}{
		{"ore flip-flopped back", HG, HG, 12, DilOreUnchanged},
		{"oxide unchanged", SPOX, SPOX, 6, DilOreUnchanged},
		{"waste unchanged", WCN, WCN, 15, DilWasteUnchanged},
		{"lg-n from lost ore retagged", HG, LGN, DilWasteFromOre, DilOreFromWaste},
		{"lg-n from smoothing kept", WN, LGN, DilOreFromWasteHorseshoe, DilOreFromWasteHorseshoe},
	}
	for _, tc := range cases {
		g := singleBlockGrid(tc.destC, tc.destD, tc.dilfg, 1)
		ResetFlags(g)
		if g.Dilfg[0] != tc.want {
			t.Errorf("%s: got %d want %d", tc.name, g.Dilfg[0], tc.want)
		}
	}
}

func TestReserve(t *testing.T) {
	cases := []struct {
		dst      Code
		rescl    int
		want     int
		wantFlag int // 0 = flag untouched
	}{
		{HG, 1, ResHGMI, 0},
		{HG, 3, ResHGInf, 0},
		{HG, 4, ResWasteFromHG, DilRRWasteFromSulfide},
		{LGN, 2, ResLGNMI, 0},
		{LGPR, 3, ResLGPRInf, 0},
		{LGPR, 5, ResWasteFromLGPR, DilRRWasteFromLGPR},
		{SPOX, 1, ResOxideMI, 0},
		{SPOX, 4, ResWasteFromOX, DilRRWasteFromOxide},
		{SPWX, 3, ResWeatheredInf, 0},
		{SPWX, 4, ResWasteFromWX, DilRRWasteFromWeathered},
		{WN, 1, ResWaste, 0},
		{WCV, 5, ResWaste, 0},
	}
	for _, tc := range cases {
		g := singleBlockGrid(tc.dst, tc.dst, DilOreUnchanged, 1)
		destR := []int{-1}
		Reserve(g, []int{tc.rescl}, destR, true)
		if destR[0] != tc.want {
			t.Errorf("dest %d rescl %d: destR %d want %d", tc.dst, tc.rescl, destR[0], tc.want)
		}
		if tc.wantFlag != 0 && g.Dilfg[0] != tc.wantFlag {
			t.Errorf("dest %d rescl %d: dilfg %d want %d", tc.dst, tc.rescl, g.Dilfg[0], tc.wantFlag)
		}
	}
}

func TestReserve_UndilutedReadsDestC(t *testing.T) {
	g := singleBlockGrid(HG, WCV, DilOreUnchanged, 1)
	destR := []int{-1}
	Reserve(g, []int{1}, destR, false)
	if destR[0] != ResHGMI {
		t.Fatalf("undiluted run should classify on DestC: got %d", destR[0])
	}
	if g.Dilfg[0] != DilOreUnchanged {
		t.Fatalf("undiluted run must not rewrite flags: got %d", g.Dilfg[0])
	}
}

func TestFilterByClass(t *testing.T) {
	// Inferred ore (rescl 3) dropped under an M&I-only filter; the
	// reactivity code picks the waste bin.
	g := singleBlockGrid(HG, HG, DilOreUnchanged, 0)
	FilterByClass(g, []int{3}, 1, true)
	if g.DestD[0] != WPR {
		t.Fatalf("reactive inferred ore should drop to W-PR, got %d", g.DestD[0])
	}

	g = singleBlockGrid(HG, HG, DilOreUnchanged, 1)
	FilterByClass(g, []int{3}, 1, true)
	if g.DestD[0] != WN {
		t.Fatalf("non-reactive inferred ore should drop to W-N, got %d", g.DestD[0])
	}

	// A block diluted into ore from an original waste class falls back
	// to that class.
	g = singleBlockGrid(WCN, HG, DilOreFromWaste, 1)
	FilterByClass(g, []int{3}, 1, true)
	if g.DestD[0] != WCN {
		t.Fatalf("diluted waste should revert to its original class, got %d", g.DestD[0])
	}

	// Inside the class limit nothing moves.
	g = singleBlockGrid(HG, HG, DilOreUnchanged, 1)
	FilterByClass(g, []int{2}, 1, true)
	if g.DestD[0] != HG {
		t.Fatalf("M&I ore should survive the filter, got %d", g.DestD[0])
	}

	// Undiluted runs rewrite DestC instead.
	g = singleBlockGrid(SPWX, WN, DilWasteUnchanged, 1)
	FilterByClass(g, []int{4}, 2, false)
	if g.DestC[0] != WN {
		t.Fatalf("undiluted filter should rewrite DestC, got %d", g.DestC[0])
	}
}

func TestBlastability(t *testing.T) {
	cases := []struct {
		name   string
		depIdx int
		geol   int
		dst    Code
		stFE   float64
		want   int
	}{
		{"construction shale", 0, 3, WN, 0, 1},
		{"black shale", 1, 26, HG, 0, 2},
		{"baritic waste", 0, 15, WPR, 0, 3},
		{"baritic ore", 0, 15, HG, 0, 4},
		{"non-baritic low iron ore", 0, 1, HG, 12, 5},
		{"non-baritic high iron ore", 0, 1, MGN, 30, 6},
		{"non-baritic waste", 0, 1, WN, 12, 7},
		{"unclassified", 2, 99, HG, 0, 0},
		{"west oxide stockpile blasts as waste", 3, 51, SPOX, 0, 3},
	}
	for _, tc := range cases {
		if got := Blastability(tc.depIdx, tc.geol, tc.dst, tc.stFE); got != tc.want {
			t.Errorf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}

func TestOreType4(t *testing.T) {
	cases := []struct {
		name  string
		dst   Code
		orct2 float64
		stZN  float64
		want  int
	}{
		{"stockpile offset", LGN, 1, 20, 20},
		{"cover offset", WCV, 1, 20, 25},
		{"middle grade offset", MGPR, 1, 20, 29},
		{"mill feed shale", HG, 5, 20, 0},
		{"exhalite low zinc", HG, 1, 10, 1},
		{"exhalite medium zinc", HG, 1, 20, 2},
		{"exhalite high zinc", HG, 1, 30, 3},
		{"weathered medium zinc", HG, 2, 20, 5},
		{"baritic high zinc", HG, 3, 30, 9},
		{"iron-rich low zinc", HG, 4, 10, 10},
		{"veined medium zinc", HG, 8, 20, 14},
	}
	for _, tc := range cases {
		if got := OreType4(tc.dst, tc.orct2, tc.stZN); got != tc.want {
			t.Errorf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}
}
