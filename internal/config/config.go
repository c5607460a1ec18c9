// Package config carries every knob of a destination run: price deck,
// smelter terms, cost set, circuit and metallurgical parameters, and
// the run settings themselves. Defaults are the current planning-cycle
// values; a YAML file overlays them and the result is checked against
// an embedded JSON schema before a run starts.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"orecast.dev/internal/engine/econ"
	"orecast.dev/internal/engine/grind"
	"orecast.dev/internal/engine/met"
)

// Run holds the settings of one destination run.
type Run struct {
	// Benches to process, inclusive.
	BenchMin int `yaml:"bench_min"`
	BenchMax int `yaml:"bench_max"`

	// Block geometry. Volume is plan area times bench height, m3.
	BlockVolume float64 `yaml:"block_volume"`

	// Operating cutoffs, $/s of mill time.
	Cutoff   float64 `yaml:"cutoff"`
	CutoffMG float64 `yaml:"cutoff_mg"`
	CutoffLG float64 `yaml:"cutoff_lg"`

	MillingOption int  `yaml:"milling_option"`
	MaximizeWX    bool `yaml:"maximize_wx"`

	// Period filtering: 0 all blocks, 1 unassigned periods only, 2
	// cutoffs by scheduled year from the arrays below.
	PeriodFilter   int       `yaml:"period_filter"`
	PeriodCutoff   []float64 `yaml:"period_cutoff"`
	PeriodCutoffMG []float64 `yaml:"period_cutoff_mg"`

	// Dilution: when false, reporting uses the economic classification.
	Diluted bool `yaml:"diluted"`

	// Resource-class ore filter: 0 off, 1 M&I only, 2 MI&I.
	FilterClass int `yaml:"filter_class"`

	// Pit-value run: 0 off, 1 M&I, 2 MI&I, 3 blue sky. Nonzero replaces
	// classification with block valuation.
	ValueRun int `yaml:"value_run"`

	// Middle-grade stockpile gates.
	MGMaxFE float64 `yaml:"mg_max_fe"`
	MGMaxBA float64 `yaml:"mg_max_ba"`

	User string `yaml:"user"`
}

// Params is the complete parameter set for a run.
type Params struct {
	Run     Run          `yaml:"run"`
	Prices  econ.Prices  `yaml:"prices"`
	Smelter econ.Smelter `yaml:"smelter"`
	Costs   econ.Costs   `yaml:"costs"`
	Grind   grind.Config `yaml:"grind"`
	Met     met.Config   `yaml:"met"`
}

// Defaults returns the production parameter set: current price deck,
// smelter contract, cost model and circuit fits, classifying all
// benches with the single-cutoff milling option.
func Defaults() Params {
	return Params{
		Run: Run{
			BenchMin:    0,
			BenchMax:    99,
			BlockVolume: 25.0 * 25.0 * 15.0,

			Cutoff:   1.00,
			CutoffMG: 20.0,
			CutoffLG: 0.00,

			MillingOption: 0,
			MaximizeWX:    true,

			PeriodFilter: 0,
			PeriodCutoff: []float64{
				12.00, 12.00, 12.00, 12.00, 12.00, 12.00, 12.00, 12.00, 12.00,
				2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10,
				2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10,
			},
			PeriodCutoffMG: []float64{
				7.00, 7.50, 7.50, 7.50, 7.50, 7.50, 7.50, 7.50, 7.50,
				2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10,
				2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10, 2.10,
			},

			Diluted:     true,
			FilterClass: 0,
			ValueRun:    0,

			MGMaxFE: 14,
			MGMaxBA: 9,
		},
		Prices:  econ.DefaultPrices(),
		Smelter: econ.DefaultSmelter(),
		Costs:   econ.DefaultCosts(),
		Grind:   grind.DefaultConfig(),
		Met:     met.DefaultConfig(),
	}
}

// Load overlays a YAML parameter file on the defaults and validates
// the result. An empty path returns validated defaults.
func Load(path string) (Params, error) {
	p := Defaults()
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return p, err
		}
		if err := yaml.Unmarshal(raw, &p); err != nil {
			return p, fmt.Errorf("params.yaml: %w", err)
		}
	}
	if err := p.Validate(); err != nil {
		return p, err
	}
	return p, nil
}

// Validate checks the parameter set against the embedded schema. The
// document is rebuilt through the YAML tags so the schema sees the same
// key names a parameter file uses, then normalized to JSON types.
func (p *Params) Validate() error {
	s, err := jsonschema.CompileString("params.schema.json", paramsSchema)
	if err != nil {
		return fmt.Errorf("params schema: %w", err)
	}
	y, err := yaml.Marshal(p)
	if err != nil {
		return err
	}
	var doc any
	if err := yaml.Unmarshal(y, &doc); err != nil {
		return err
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("params: %w", err)
	}
	return nil
}

// paramsSchema constrains the settings a run operator can get wrong;
// engine fit constants are trusted as shipped.
const paramsSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["run", "prices", "costs"],
  "properties": {
    "run": {
      "type": "object",
      "properties": {
        "bench_min": {"type": "integer", "minimum": 0},
        "bench_max": {"type": "integer", "minimum": 0},
        "block_volume": {"type": "number", "exclusiveMinimum": 0},
        "cutoff": {"type": "number", "minimum": 0},
        "cutoff_mg": {"type": "number", "minimum": 0},
        "cutoff_lg": {"type": "number", "minimum": 0},
        "milling_option": {"type": "integer", "minimum": 0, "maximum": 6},
        "period_filter": {"type": "integer", "minimum": 0, "maximum": 2},
        "period_cutoff": {"type": "array", "items": {"type": "number", "minimum": 0}, "minItems": 1},
        "period_cutoff_mg": {"type": "array", "items": {"type": "number", "minimum": 0}, "minItems": 1},
        "filter_class": {"type": "integer", "minimum": 0, "maximum": 2},
        "value_run": {"type": "integer", "minimum": 0, "maximum": 3}
      }
    },
    "prices": {
      "type": "object",
      "properties": {
        "zn": {"type": "number", "exclusiveMinimum": 0},
        "pb": {"type": "number", "exclusiveMinimum": 0},
        "ag": {"type": "number", "exclusiveMinimum": 0}
      }
    },
    "costs": {
      "type": "object",
      "properties": {
        "mill_oxide": {"type": "number", "minimum": 0},
        "tails": {"type": "number", "minimum": 0},
        "rehandle": {"type": "number", "minimum": 0},
        "indirect": {"type": "number", "minimum": 0}
      }
    }
  }
}`
