// Package grind models the grinding circuit: SAG and ball mill power
// draw from a rotating-charge mechanics model, specific energies, and the
// achievable mill throughput for a block of given hardness.
package grind

import "math"

// CircuitMode selects the comminution flowsheet the energy constants are
// fitted for.
type CircuitMode int

const (
	Standard CircuitMode = iota
	PebbleCrush
	PreCrush
)

// MillDims are the inside dimensions of a mill, metres.
type MillDims struct {
	Radius  float64 `yaml:"radius"`
	Belly   float64 `yaml:"belly"`
	Center  float64 `yaml:"center"`
	Trunion float64 `yaml:"trunion"`
}

// Config holds the grinding circuit parameters. Two identical primary
// SAG mills plus a third are modelled; the ball mill and stirred mill are
// represented by their maximum load power only.
type Config struct {
	Kmill    float64 `yaml:"kmill"`
	SGLiquid float64 `yaml:"sg_liquid"`
	SGBall   float64 `yaml:"sg_ball"`
	Gravity  float64 `yaml:"gravity"` // m/s2, site latitude value

	SAG MillDims `yaml:"sag"`

	// Primary (1&2) and tertiary (3) SAG operating points.
	RPMSag12 float64 `yaml:"rpm_sag12"`
	RPMSag3  float64 `yaml:"rpm_sag3"`
	BCSag12  float64 `yaml:"bc_sag12"` // ball charge fraction
	BCSag3   float64 `yaml:"bc_sag3"`
	MLSag12  float64 `yaml:"ml_sag12"` // mill load fraction
	MLSag3   float64 `yaml:"ml_sag3"`

	SolidsWeightFrac float64 `yaml:"solids_weight_frac"`

	PRBall       float64 `yaml:"pr_ball"`         // kW, ball mill max load power
	PRStirred    float64 `yaml:"pr_stirred"`      // kW, stirred mill max power
	PRStirredNL  float64 `yaml:"pr_stirred_nl"`   // kW, stirred mill no-load power
	CSS          float64 `yaml:"css"`             // mm, primary crusher setting
	ScreenAper   float64 `yaml:"screen_aperture"` // mm
	Mode         CircuitMode
	KBall        [3]float64 `yaml:"k_ball"`
	KSag         [3]float64 `yaml:"k_sag"`
	N1, N2, N3   float64
	C1, C2       float64
	C3, C4       float64
	T80K1        [3]float64 `yaml:"t80_k1"`
	T80K2        float64    `yaml:"t80_k2"`
	T80K3        float64    `yaml:"t80_k3"`
	T80K4        float64    `yaml:"t80_k4"`
	T80K5        float64    `yaml:"t80_k5"`
	T80K6        float64    `yaml:"t80_k6"`
	T80K7        float64    `yaml:"t80_k7"`
	T80K8        float64    `yaml:"t80_k8"`
	T80K9        float64    `yaml:"t80_k9"`
	F80Min       float64    `yaml:"f80_min"` // mm
	F80Max       float64    `yaml:"f80_max"` // mm
	P1Max        float64    `yaml:"p1_max"`  // %
	HighTPH      float64    `yaml:"high_tph"`
	TPHEff       float64    `yaml:"tph_eff"`
	PebbleTPH    float64    `yaml:"pebble_tph"`
	PebblePort   float64    `yaml:"pebble_port"` // mm
	PebbleCCS    float64    `yaml:"pebble_ccs"`  // mm
	PebbleFx     float64    `yaml:"pebble_fx"`   // m
	PebbleK2     float64    `yaml:"pebble_k2"`   // open-circuit crusher factor
}

// DefaultConfig returns the current life-of-mine circuit fit.
func DefaultConfig() Config {
	return Config{
		Kmill:    1.26,
		SGLiquid: 1.0,
		SGBall:   7.8,
		Gravity:  9.825,

		SAG: MillDims{Radius: 6.48 / 2, Belly: 2.19, Center: 3.51, Trunion: 1.59},

		RPMSag12: 225,
		RPMSag3:  225,
		BCSag12:  0.140,
		BCSag3:   0.140,
		MLSag12:  0.254,
		MLSag3:   0.254,

		SolidsWeightFrac: 0.75,

		PRBall:      4118.0,
		PRStirred:   2081.0,
		PRStirredNL: 150.0,
		CSS:         100.0,
		ScreenAper:  15.8,
		Mode:        Standard,
		KBall:       [3]float64{0.617000, 0.699717, 0.592349},
		KSag:        [3]float64{0.620773, 0.583098, 0.547004},
		N1:          0.2907477955,
		N2:          0.7072333907,
		N3:          -0.5,
		C1:          1.88202,
		C2:          -0.0323806,
		C3:          -0.413931,
		C4:          0.0106230,
		T80K1:       [3]float64{-1391.42, -1451.01, -1268.13},
		T80K2:       1.96831,
		T80K3:       24.8088,
		T80K4:       6.82504 * 100,
		T80K5:       81.8772 * 100,
		T80K6:       -3.29940 * 10000,
		T80K7:       -0.813952,
		T80K8:       -2.79288,
		T80K9:       9.51851,
		F80Min:      15,
		F80Max:      165,
		P1Max:       90.0,
		HighTPH:     672.0,
		TPHEff:      1.09,
		PebbleTPH:   50.0,
		PebblePort:  65.0,
		PebbleCCS:   13.0,
		PebbleFx:    0.295,
		PebbleK2:    1.19,
	}
}

// csConst converts SAG RPM to a fraction of critical speed.
func (c *Config) csConst() float64 {
	return math.Pow(2*c.SAG.Radius, 0.5) / (42.3 * 18.16)
}

// CSSag12 is the primary SAG critical-speed fraction.
func (c *Config) CSSag12() float64 { return c.RPMSag12 * c.csConst() }

// CSSag3 is the tertiary SAG critical-speed fraction.
func (c *Config) CSSag3() float64 { return c.RPMSag3 * c.csConst() }

// stirredNet is the stirred mill net power in ball-mill equivalent kW.
func (c *Config) stirredNet() float64 {
	pf := 23.895 * math.Pow(c.PRStirred-c.PRStirredNL, -0.377)
	return (c.PRStirred - c.PRStirredNL) * pf * 1.0753
}
