package dest

import (
	"math"
	"testing"

	"orecast.dev/internal/engine/econ"
)

// sulfideBlock is tuned so every cost escalator is zero: bench at the
// haul index, throughput at the plan average, grinding energy at the
// plan average. Base op cost is 28.48 + 23711.53/500 = 75.903 $/t and
// with 10% concentrate mass pull the mill cutoff is 82.969 $/t.
func sulfideBlock(amr float64, wardc int) Block {
	return Block{
		DepIdx: 0, Bench: 17, WARDC: wardc,
		STZN: 10, ZNGRD: 53, ZNREC: 53,
		STPB: 0, PBGRD: 54.5, PBREC: 0,
		STFE: 5, STBA: 5,
		MPT: 60.0 / 500.0, SESag: 10, SEBall: 8.7,
		AMR: amr,
	}
}

func newClassifier() *Classifier {
	costs := econ.DefaultCosts()
	return &Classifier{
		Costs:  &costs,
		Cutoff: 1.0, CutoffMG: 20.0, CutoffLG: 0.0,
		MGMaxFE: 14, MGMaxBA: 9,
		MaximizeWX: true,
	}
}

func TestClassify_SulfideTiers(t *testing.T) {
	cl := newClassifier()
	cases := []struct {
		name  string
		amr   float64
		wardc int
		want  Code
	}{
		{"above cutoff", 120, 1, HG},
		{"stockpile non-reactive", 83.5, 1, LGN},
		{"stockpile reactive", 83.5, 0, LGPR},
		{"waste possibly reactive", 60, 0, WPR},
		{"waste non-reactive", 60, 1, WN},
		{"waste construction", 60, 2, WCN},
		{"waste cover", 60, 3, WCV},
	}
	for _, tc := range cases {
		a := cl.Classify(sulfideBlock(tc.amr, tc.wardc))
		if a.Dest != tc.want {
			t.Errorf("%s: got %d want %d", tc.name, a.Dest, tc.want)
		}
		wantFlag := DilWasteUnchanged
		if tc.want <= HG {
			wantFlag = DilOreUnchanged
		}
		if a.Dilfg != wantFlag {
			t.Errorf("%s: dilfg %d want %d", tc.name, a.Dilfg, wantFlag)
		}
	}
}

func TestClassify_LGNIncludesRehandle(t *testing.T) {
	cl := newClassifier()
	hg := cl.Classify(sulfideBlock(120, 1))
	lg := cl.Classify(sulfideBlock(83.5, 1))
	diff := lg.Opcst - hg.Opcst
	if math.Abs(diff-cl.Costs.Rehandle) > 1e-9 {
		t.Fatalf("LG-N op cost should add rehandle: diff %.6f", diff)
	}
}

func TestClassify_Air(t *testing.T) {
	cl := newClassifier()
	a := cl.Classify(Block{IsAir: true})
	if a.Dest != WN || a.Vals != 0 || a.Opcst != 0 || a.Dilfg != DilWasteUnchanged {
		t.Fatalf("air block: %+v", a)
	}
}

func TestClassify_MiddleGradeFlag(t *testing.T) {
	cl := newClassifier()
	cl.MillingOption = MillMGStockpiled
	cl.Cutoff, cl.CutoffMG = 10.0, 1.0

	b := sulfideBlock(95, 1) // ~1.7 $/s, between MG and HG cutoffs
	a := cl.Classify(b)
	if a.Dest != HG || !a.MG {
		t.Fatalf("expected MG-flagged mill feed, got dest %d mg %v", a.Dest, a.MG)
	}

	b.STFE = 20 // over the iron gate
	a = cl.Classify(b)
	if a.Dest != HG || a.MG {
		t.Fatalf("high iron should not flag MG: dest %d mg %v", a.Dest, a.MG)
	}

	cl.MillingOption = MillLGStockpiled
	a = cl.Classify(sulfideBlock(95, 1))
	if a.Dest == HG {
		t.Fatalf("option 0 collapses cutoffs, 1.7 $/s should not make the 10 $/s cutoff")
	}
}

func secondaryBlock() Block {
	return Block{
		Secondary: true, DepIdx: 3, Bench: 12, WARDC: 1,
		STZN: 15, ZNGRD: 53, ZNREC: 53,
		STPB: 20, PBGRD: 54.5, PBREC: 0,
		PBGOX: 45, PBROX: 45,
		ZNGWX: 40.5, ZNRWX: 40.5,
		MPT: 60.0 / 590.0, SESag: 10, SEBall: 8.7,
	}
}

func TestClassify_OxideOverride(t *testing.T) {
	cl := newClassifier()
	b := secondaryBlock()
	b.AMR = 0
	b.AMROX = 150
	a := cl.Classify(b)
	if a.Dest != SPOX {
		t.Fatalf("positive oxide rate should route to SP-OX, got %d", a.Dest)
	}
	if a.ForceWeathered {
		t.Fatalf("oxide routing must not force weathered metallurgy")
	}
}

func TestClassify_WeatheredOverride(t *testing.T) {
	cl := newClassifier()
	b := secondaryBlock()
	b.AMR = 0 // sulfide value negative, classifies W-N
	b.AMRWX = 100
	a := cl.Classify(b)
	if a.Dest != SPWX || !a.ForceWeathered {
		t.Fatalf("expected SP-WX with forced weathered flags, got %+v", a)
	}
	if a.Vals <= 0 {
		t.Fatalf("weathered value rate should be positive, got %.4f", a.Vals)
	}
}

func TestClassify_WeatheredNeedsPositiveRate(t *testing.T) {
	cl := newClassifier()
	b := secondaryBlock()
	b.AMR, b.AMROX, b.AMRWX = 0, 0, 0
	a := cl.Classify(b)
	if a.Dest != WN {
		t.Fatalf("no circuit pays, expected W-N, got %d", a.Dest)
	}
}

func TestClassify_PeriodArrays(t *testing.T) {
	cl := newClassifier()
	cl.PeriodFilter = PeriodArrays
	cl.PeriodCutoff = []float64{12, 12, 2.1}
	cl.PeriodCutoffMG = []float64{7, 7.5, 2.1}

	co, coMG, coLG := cl.cutoffs(1)
	if co != 12 || coMG != 7.5 || coLG != 7.5 {
		t.Fatalf("year 1 cutoffs: %v %v %v", co, coMG, coLG)
	}
	// Years past the end of the array clamp to the last entry.
	co, _, _ = cl.cutoffs(30)
	if co != 2.1 {
		t.Fatalf("clamped cutoff: %v", co)
	}
}

func TestClassify_PeriodUnassignedFilter(t *testing.T) {
	cl := newClassifier()
	cl.PeriodFilter = PeriodUnassigned
	if !cl.Use(0) || cl.Use(3) {
		t.Fatalf("filter should keep only unassigned periods")
	}
}

func TestValueBlock_Tiers(t *testing.T) {
	cl := newClassifier()
	vb := &ValueBlock{Classifier: cl, Confidence: 1, Volume: 1250}

	in := ValueInput{Block: sulfideBlock(120, 1), Density: 3.0}
	in.Rescl = 1
	tonnes := 1250 * 3.0

	got := vb.Value(in)
	// NET_SU = 120 - 83.049 - 5.88 per tonne.
	if got < 30*tonnes || got > 32*tonnes {
		t.Fatalf("HG value out of range: %.0f", got)
	}

	// The M&I basis keeps indicated blocks too: reserve classes up to
	// confidence+1 are in the pit.
	in.Rescl = 2
	if v := vb.Value(in); v != got {
		t.Fatalf("indicated block should value as ore in an M&I pit: got %.2f want %.2f", v, got)
	}

	in.Rescl = 3 // inferred, above the M&I ceiling
	got = vb.Value(in)
	want := -cl.Costs.MineWaste[0] * tonnes
	if math.Abs(got-want) > 1e-6 {
		t.Fatalf("out-of-class block should carry waste value: got %.2f want %.2f", got, want)
	}

	if v := vb.Value(ValueInput{Block: Block{IsAir: true}}); v != 0 {
		t.Fatalf("air value: %v", v)
	}
}

func TestValueBlock_MarginOption(t *testing.T) {
	cl := newClassifier()
	cl.MillingOption = MillValueMargin
	cl.Cutoff = 1.0
	vb := &ValueBlock{Classifier: cl, Confidence: 1, Volume: 1250}

	// ~0.07 $/s: below the margin cutoff but rehandle-positive and
	// non-reactive, so valued as discounted stockpile feed. The net is
	// still negative at this revenue; the discount only softens the loss
	// relative to dumping.
	in := ValueInput{Block: sulfideBlock(83.5, 1), Density: 3.0}
	in.Rescl = 1
	lgVal := vb.Value(in)

	in.WARDC = 0 // reactive material is not stockpiled
	wasteVal := vb.Value(in)
	if lgVal >= 0 || wasteVal >= 0 {
		t.Fatalf("both values should be negative: lg %.2f waste %.2f", lgVal, wasteVal)
	}
	if lgVal <= wasteVal {
		t.Fatalf("stockpiling should beat dumping: lg %.2f waste %.2f", lgVal, wasteVal)
	}
}
