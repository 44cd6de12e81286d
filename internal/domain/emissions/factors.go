package emissions

import (
	"math"
	"sort"
)

// Scope of a greenhouse-gas source.
type Scope int

const (
	Scope1 Scope = 1 // direct
	Scope2 Scope = 2 // purchased energy
	Scope3 Scope = 3 // value chain
)

// Factor converts an activity quantity into kg CO2e.
type Factor struct {
	Key           string  `json:"key" yaml:"key"`
	Label         string  `json:"label" yaml:"label"`
	Scope         Scope   `json:"scope" yaml:"scope"`
	Unit          string  `json:"unit" yaml:"unit"`
	KgCO2ePerUnit float64 `json:"kg_co2e_per_unit" yaml:"kg_co2e_per_unit"`
}

// Factors is a read-only lookup table.
type Factors struct {
	byKey map[string]Factor
}

func NewFactors(list []Factor) Factors {
	f := Factors{byKey: make(map[string]Factor, len(list))}
	for _, it := range list {
		f.byKey[it.Key] = it
	}
	return f
}

func (f Factors) Lookup(key string) (Factor, bool) {
	it, ok := f.byKey[key]
	return it, ok
}

// All returns factors sorted by scope then key.
func (f Factors) All() []Factor {
	out := make([]Factor, 0, len(f.byKey))
	for _, it := range f.byKey {
		out = append(out, it)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Scope != out[j].Scope {
			return out[i].Scope < out[j].Scope
		}
		return out[i].Key < out[j].Key
	})
	return out
}

// Activity is a measured quantity of one emission source.
type Activity struct {
	FactorKey string  `json:"factor_key"`
	Quantity  float64 `json:"quantity"`
}

// Line is one calculated activity.
type Line struct {
	Activity
	Scope  Scope   `json:"scope"`
	Unit   string  `json:"unit"`
	KgCO2e float64 `json:"kg_co2e"`
}

// Result holds totals per scope. Unknown factor keys are listed, not fatal.
type Result struct {
	Lines       []Line   `json:"lines"`
	Scope1Kg    float64  `json:"scope1_kg"`
	Scope2Kg    float64  `json:"scope2_kg"`
	Scope3Kg    float64  `json:"scope3_kg"`
	TotalKg     float64  `json:"total_kg"`
	TotalTonnes float64  `json:"total_tonnes"`
	Unknown     []string `json:"unknown,omitempty"`
}

// Calculate applies factors to activities. Negative quantities count as zero.
func (f Factors) Calculate(activities []Activity) Result {
	res := Result{Lines: []Line{}}
	for _, a := range activities {
		factor, ok := f.Lookup(a.FactorKey)
		if !ok {
			res.Unknown = append(res.Unknown, a.FactorKey)
			continue
		}
		qty := math.Max(a.Quantity, 0)
		kg := qty * factor.KgCO2ePerUnit
		res.Lines = append(res.Lines, Line{Activity: a, Scope: factor.Scope, Unit: factor.Unit, KgCO2e: round(kg, 3)})
		switch factor.Scope {
		case Scope1:
			res.Scope1Kg += kg
		case Scope2:
			res.Scope2Kg += kg
		case Scope3:
			res.Scope3Kg += kg
		}
	}
	total := res.Scope1Kg + res.Scope2Kg + res.Scope3Kg
	res.Scope1Kg = round(res.Scope1Kg, 3)
	res.Scope2Kg = round(res.Scope2Kg, 3)
	res.Scope3Kg = round(res.Scope3Kg, 3)
	res.TotalKg = round(total, 3)
	res.TotalTonnes = round(total/1000, 3)
	return res
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
