package met

import "math"

// Config holds the metallurgical model parameters. Values are the
// current planning-cycle fit; they are configuration, not constants, so
// a run can override them from file.
type Config struct {
	// Minimum grades and ratios substituted before recovery calculations.
	NSGMin float64 `yaml:"nsg_min"`
	ZNMin  float64 `yaml:"zn_min"`
	PBMin  float64 `yaml:"pb_min"`
	BAMin  float64 `yaml:"ba_min"`
	FEMin  float64 `yaml:"fe_min"`
	// Fraction of Fe assumed bound in the sphalerite lattice.
	FEinZN float64 `yaml:"fe_in_zn"`

	// Soluble-lead ratio defaults by deposit, used when no assay ratio
	// is available.
	RPBNonWeathered [4]float64 `yaml:"rpb_non_weathered"`
	RPBWeathered    [4]float64 `yaml:"rpb_weathered"`

	// Grade-based ore-type limits.
	BALimit  float64 `yaml:"ba_limit"`
	FELimit  float64 `yaml:"fe_limit"`
	RPBLimit float64 `yaml:"rpb_limit"`
	SPBLimit float64 `yaml:"spb_limit"`

	// MET assignment limits.
	BALimitWeathered float64 `yaml:"ba_limit_weathered"`
	RPBLimitPB       float64 `yaml:"rpb_limit_pb"`
	RPBLimitOX       float64 `yaml:"rpb_limit_ox"`
	SPBLimitOX       float64 `yaml:"spb_limit_ox"`
	ZNPBMaxOX        float64 `yaml:"znpb_max_ox"`
	CULimitLo        float64 `yaml:"cu_limit_lo"`
	CULimitHi        float64 `yaml:"cu_limit_hi"`

	// Recovery model limits.
	ZnAdjPBMin float64 `yaml:"zn_adj_pb_min"`
	PbAdjPBMin float64 `yaml:"pb_adj_pb_min"`
	RecLimitFE float64 `yaml:"rec_limit_fe"`
	RecLimitZN float64 `yaml:"rec_limit_zn"`
	RecLimitBA float64 `yaml:"rec_limit_ba"`
	ZnRecMin   float64 `yaml:"zn_rec_min"`
	ZnRecMax   float64 `yaml:"zn_rec_max"`
	PbRecMin   float64 `yaml:"pb_rec_min"`
	PbRecMax   float64 `yaml:"pb_rec_max"`
	AgRecZnMax float64 `yaml:"ag_rec_zn_max"`
	AgRecPbMax float64 `yaml:"ag_rec_pb_max"`
	PbRecOxMax float64 `yaml:"pb_rec_ox_max"`
	AgRecOxMax float64 `yaml:"ag_rec_ox_max"`

	// Concentrate grades, %.
	ZNGrade        float64 `yaml:"zn_grade"`
	PBGrade        float64 `yaml:"pb_grade"`
	PBGradeOx      float64 `yaml:"pb_grade_ox"`
	PBGradeOxWaste float64 `yaml:"pb_grade_ox_waste"`
	ZNGradeWx      float64 `yaml:"zn_grade_wx"`
	PBGradeWx      float64 `yaml:"pb_grade_wx"`

	// Flotation circuit efficiency applied to zinc recoveries.
	ZnRecEff float64 `yaml:"zn_rec_eff"`

	// Hardness estimate limits and target grind sizes (um) per class.
	AbMin     float64 `yaml:"ab_min"`
	AbMax     float64 `yaml:"ab_max"`
	BBMWiMax  float64 `yaml:"bbmwi_max"`
	P80Fine   float64 `yaml:"p80_fine"`
	P80Medium float64 `yaml:"p80_medium"`
	P80Coarse float64 `yaml:"p80_coarse"`

	// Texture defaults by deposit and rock group.
	T1Baritic   [4]float64 `yaml:"t1_baritic"`
	T2Baritic   [4]float64 `yaml:"t2_baritic"`
	T6Baritic   [4]float64 `yaml:"t6_baritic"`
	T1Vein      [4]float64 `yaml:"t1_vein"`
	T2Vein      [4]float64 `yaml:"t2_vein"`
	T6Vein      [4]float64 `yaml:"t6_vein"`
	T1Exhalite  [4]float64 `yaml:"t1_exhalite"`
	T2Exhalite  [4]float64 `yaml:"t2_exhalite"`
	T6Exhalite  [4]float64 `yaml:"t6_exhalite"`
	T1Weathered [4]float64 `yaml:"t1_weathered"`
	T2Weathered [4]float64 `yaml:"t2_weathered"`
	T6Weathered [4]float64 `yaml:"t6_weathered"`
}

// DefaultConfig returns the production parameter set.
func DefaultConfig() Config {
	return Config{
		NSGMin: 0.5,
		ZNMin:  0.1,
		PBMin:  0.1,
		BAMin:  0.1,
		FEMin:  1.0,
		FEinZN: 0.035 / 0.6709,

		RPBNonWeathered: [4]float64{0.19, 0.19, 0.19, 0.32},
		RPBWeathered:    [4]float64{0.61, 0.61, 0.61, 0.51},

		BALimit:  7.0,
		FELimit:  8.0,
		RPBLimit: 40.0,
		SPBLimit: 2.0,

		BALimitWeathered: 4.9,
		RPBLimitPB:       45.0,
		RPBLimitOX:       46.5,
		SPBLimitOX:       8.5,
		ZNPBMaxOX:        0.585,
		CULimitLo:        0.18,
		CULimitHi:        0.32,

		ZnAdjPBMin: 0.1,
		PbAdjPBMin: 0.1,
		RecLimitFE: 7,
		RecLimitZN: 7,
		RecLimitBA: 23,
		ZnRecMin:   30,
		ZnRecMax:   93,
		PbRecMin:   15,
		PbRecMax:   84,
		AgRecZnMax: 71,
		AgRecPbMax: 87,
		PbRecOxMax: 87,
		AgRecOxMax: 77,

		ZNGrade:        53.0,
		PBGrade:        54.5,
		PBGradeOx:      45.0,
		PBGradeOxWaste: 45.6,
		ZNGradeWx:      40.5,
		PBGradeWx:      7.5,

		ZnRecEff: 1.022,

		AbMin:     15.0,
		AbMax:     300.0,
		BBMWiMax:  24.0,
		P80Fine:   65.0,
		P80Medium: 65.0,
		P80Coarse: 65.0,

		T1Baritic:   [4]float64{31, 29, 69, 52},
		T2Baritic:   [4]float64{11, 1, 10, 3},
		T6Baritic:   [4]float64{58, 70, 21, 45},
		T1Vein:      [4]float64{32, 29, 32, 0},
		T2Vein:      [4]float64{32, 45, 40, 0},
		T6Vein:      [4]float64{36, 26, 28, 0},
		T1Exhalite:  [4]float64{48, 40, 51, 50},
		T2Exhalite:  [4]float64{17, 15, 18, 15},
		T6Exhalite:  [4]float64{35, 45, 31, 35},
		T1Weathered: [4]float64{48, 40, 51, 50},
		T2Weathered: [4]float64{17, 15, 18, 10},
		T6Weathered: [4]float64{35, 45, 31, 40},
	}
}

// cuSlope and cuIntercept define the linear recovery deduction between
// the low and high copper limits.
func (c *Config) cuSlope() float64 { return 1 / (c.CULimitHi - c.CULimitLo) }

func (c *Config) cuIntercept() float64 {
	return 1 + c.CULimitLo/(c.CULimitHi-c.CULimitLo)
}

// BBMWiMin is the lower work-index bound as a function of abrasion index.
func (c *Config) BBMWiMin(ab float64) float64 {
	return 66.748 * math.Pow(ab, -0.445)
}
