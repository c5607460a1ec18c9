package econ

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestHaulEsc(t *testing.T) {
	c := DefaultCosts()
	if got := c.HaulEsc(0, 17); got != 0 {
		t.Fatalf("index bench escalator = %v", got)
	}
	// Below the index bench the loaded-up rate applies.
	if got := c.HaulEsc(0, 12); !near(got, 5*0.0184) {
		t.Fatalf("HaulEsc(0,12) = %v", got)
	}
	// Above it the loaded-down rate applies, still an increase.
	if got := c.HaulEsc(0, 20); !near(got, 3*0.0159) {
		t.Fatalf("HaulEsc(0,20) = %v", got)
	}
}

func TestBaseMillCost_AtPlanAverages(t *testing.T) {
	c := DefaultCosts()
	// At plan-average power and throughput both escalators vanish.
	got := c.BaseMillCost(0, 17, 500, 10.0, 8.7)
	want := 28.48 + 23711.53/500
	if !near(got, want) {
		t.Fatalf("base mill cost = %v want %v", got, want)
	}
}

func TestMillCost(t *testing.T) {
	c := DefaultCosts()
	op, cutoff := c.SulfideCost(75.0, 0, 0.25)
	if !near(op, 75.0+0.75*7.94) {
		t.Fatalf("op = %v", op)
	}
	if !near(cutoff, op+5.88-5.96) {
		t.Fatalf("cutoff = %v", cutoff)
	}

	opOX, _ := c.OxideCost(75.0, 0, 0.25)
	if !near(opOX-op, c.Rehandle+c.MillOxide) {
		t.Fatalf("oxide extras = %v", opOX-op)
	}
	opWX, _ := c.WeatheredCost(75.0, 0, 0.25)
	if !near(opWX-op, c.Rehandle) {
		t.Fatalf("weathered extras = %v", opWX-op)
	}

	opTA, _ := c.AllTailsCost(75.0, 0)
	if !near(opTA, 75.0+c.Tails) {
		t.Fatalf("all-tails op = %v", opTA)
	}
}

func TestValueRate(t *testing.T) {
	if got := ValueRate(100, 82, 0.12); !near(got, 2.5) {
		t.Fatalf("ValueRate = %v", got)
	}
	c := DefaultCosts()
	if got := c.RehandleRate(0.12); !near(got, 0.206/7.2) {
		t.Fatalf("RehandleRate = %v", got)
	}
}
