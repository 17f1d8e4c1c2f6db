package formulation

import (
	"context"
	"math"
	"testing"

	"github.com/feedform/feedform/pkg/catalog"
	fferrors "github.com/feedform/feedform/pkg/errors"
	"github.com/feedform/feedform/pkg/requirement"
)

var testReq = requirement.Requirement{Class: "Grower", EnergyMin: 2800, EnergyMax: 3000, ProteinMin: 28, ProteinMax: 32}

func TestWithinToleranceBoundaries(t *testing.T) {
	tests := []struct {
		name string
		me   float64
		cp   float64
		tol  float64
		want bool
	}{
		{"inside", 2900, 30, 0, true},
		{"energy at min", 2800, 30, 0, true},
		{"energy at max", 3000, 30, 0, true},
		{"protein at max", 2900, 32, 0, true},
		{"energy below min", 2799.9, 30, 0, false},
		{"energy below min within tolerance", 2780, 30, 0.01, true},
		{"energy above widened max", 3030.1, 30, 0.01, false},
		{"protein above widened max", 2900, 32.5, 0.01, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WithinTolerance(evaluatedMixture(tt.me, tt.cp), testReq, tt.tol)
			if got != tt.want {
				t.Errorf("WithinTolerance(%v, %v, %v) = %v, want %v", tt.me, tt.cp, tt.tol, got, tt.want)
			}
		})
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		me   float64
		cp   float64
		want Status
	}{
		{2900, 30, StatusWithinBounds},
		{2790, 30, StatusWithinTolerance},
		{2000, 30, StatusRejected},
	}
	for _, tt := range tests {
		if got := Classify(evaluatedMixture(tt.me, tt.cp), testReq, 0.01); got != tt.want {
			t.Errorf("Classify(%v, %v) = %s, want %s", tt.me, tt.cp, got, tt.want)
		}
	}

	s := Summarize([]Mixture{
		evaluatedMixture(2900, 30),
		evaluatedMixture(2790, 30),
		evaluatedMixture(2000, 30),
		evaluatedMixture(2000, 10),
	}, testReq, 0.01)
	want := Summary{Total: 4, WithinBounds: 1, WithinTolerance: 1, Rejected: 2}
	if s != want {
		t.Errorf("Summarize() = %+v, want %+v", s, want)
	}
}

func TestFilterPreservesOrder(t *testing.T) {
	in := []Mixture{
		evaluatedMixture(2900, 30),
		evaluatedMixture(1000, 30),
		evaluatedMixture(2850, 29),
	}
	all, rec, err := Filter(in, testReq, 0)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(all) != 3 {
		t.Errorf("all has %d mixtures, want 3", len(all))
	}
	if len(rec) != 2 || rec[0].TotalME != 2900 || rec[1].TotalME != 2850 {
		t.Errorf("recommended = %+v", rec)
	}
}

func TestFilterRejects(t *testing.T) {
	if _, _, err := Filter(nil, testReq, -0.1); fferrors.CodeOf(err) != fferrors.ErrCodeInvalidRequest {
		t.Errorf("negative tolerance: code = %s", fferrors.CodeOf(err))
	}
	if _, _, err := Filter(nil, testReq, math.NaN()); err == nil {
		t.Error("expected error for NaN tolerance")
	}
	raw := []Mixture{{Proportions: map[string]float64{"Maize": 1}}}
	if _, _, err := Filter(raw, testReq, 0.01); err == nil {
		t.Error("expected error for unevaluated mixture")
	}
	_, rec, err := Filter(nil, testReq, 0.01)
	if err != nil || rec == nil || len(rec) != 0 {
		t.Errorf("Filter(nil) = %v, %v; want empty non-nil list", rec, err)
	}
}

func TestFilterPipelineProperties(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	gen, err := NewGenerator()
	if err != nil {
		t.Fatalf("NewGenerator() error = %v", err)
	}
	mixtures, err := gen.Generate(ctx, fullSelection(), cat)
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	evaluated, err := EvaluateAll(ctx, mixtures, cat)
	if err != nil {
		t.Fatalf("EvaluateAll() error = %v", err)
	}

	req := requirement.Requirement{Class: "Any", EnergyMin: 2700, EnergyMax: 2900, ProteinMin: 24, ProteinMax: 28}
	_, narrow, err := Filter(evaluated, req, 0.01)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	_, wide, err := Filter(evaluated, req, 0.25)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}

	if len(narrow) == 0 {
		t.Fatal("expected at least one recommended mixture")
	}

	all := make(map[string]bool, len(evaluated))
	for _, m := range evaluated {
		all[m.Key()] = true
	}
	wideKeys := make(map[string]bool, len(wide))
	for _, m := range wide {
		wideKeys[m.Key()] = true
	}
	for _, m := range narrow {
		if !all[m.Key()] {
			t.Fatalf("recommended mixture %s not in the full list", m.Key())
		}
		if !wideKeys[m.Key()] {
			t.Fatalf("mixture %s recommended at 0.01 but not at 0.25", m.Key())
		}
		if !WithinTolerance(m, req, 0.01) {
			t.Fatalf("recommended mixture %s fails its own predicate", m.Key())
		}
	}
	if len(wide) < len(narrow) {
		t.Errorf("wider tolerance recommended fewer mixtures: %d < %d", len(wide), len(narrow))
	}

	// recomputing from the full list reproduces the subset
	_, again, err := Filter(evaluated, req, 0.01)
	if err != nil {
		t.Fatalf("Filter() error = %v", err)
	}
	if len(again) != len(narrow) {
		t.Fatalf("Filter() not idempotent: %d != %d", len(again), len(narrow))
	}
	for i := range again {
		if again[i].Key() != narrow[i].Key() {
			t.Fatalf("Filter() order changed at %d", i)
		}
	}
}

func TestEvaluate(t *testing.T) {
	cat := testCatalog(t)
	m := Mixture{Proportions: map[string]float64{"Maize": 0.75, "L-Lysine": 0.25}}
	got, err := Evaluate(m, cat)
	if err != nil {
		t.Fatalf("Evaluate() error = %v", err)
	}
	if math.Abs(got.TotalME-(0.75*3300+0.25*3000)) > 1e-9 {
		t.Errorf("TotalME = %v", got.TotalME)
	}
	if math.Abs(got.TotalCP-(0.75*9+0.25*95)) > 1e-9 {
		t.Errorf("TotalCP = %v", got.TotalCP)
	}
	if math.Abs(got.NutrientTotals["lysine"]-0.25*78) > 1e-9 {
		t.Errorf("lysine total = %v", got.NutrientTotals["lysine"])
	}
	if !got.Evaluated() || m.Evaluated() {
		t.Error("Evaluate() must annotate a copy only")
	}

	bad := Mixture{Proportions: map[string]float64{"Moonrock": 1}}
	if _, err := Evaluate(bad, cat); fferrors.CodeOf(err) != fferrors.ErrCodeInvalidIngredient {
		t.Errorf("unknown ingredient: code = %s", fferrors.CodeOf(err))
	}
}

func TestRankByMidpoint(t *testing.T) {
	in := []Mixture{
		evaluatedMixture(2800, 28),
		evaluatedMixture(2900, 30),
		evaluatedMixture(2950, 31),
	}
	got := RankByMidpoint(in, testReq)
	want := []float64{2900, 2950, 2800}
	for i := range want {
		if got[i].TotalME != want[i] {
			t.Errorf("rank %d TotalME = %v, want %v", i, got[i].TotalME, want[i])
		}
	}
	if in[0].TotalME != 2800 {
		t.Error("RankByMidpoint() modified its input")
	}
}

func TestSelectionCardinality(t *testing.T) {
	ok := fullSelection()
	if err := ok.CheckCardinality(2); err != nil {
		t.Errorf("CheckCardinality() error = %v", err)
	}

	short := fullSelection()
	short[catalog.ProteinReplacers] = []string{"Cottonseed cake", " cottonseed cake "}
	err := short.CheckCardinality(2)
	if fferrors.CodeOf(err) != fferrors.ErrCodeInsufficientSelection {
		t.Errorf("code = %s, want %s", fferrors.CodeOf(err), fferrors.ErrCodeInsufficientSelection)
	}

	// high protein and amino acid buckets are not constrained
	loose := fullSelection()
	loose[catalog.HighProteinSources] = nil
	loose[catalog.AminoAcid1] = nil
	if err := loose.CheckCardinality(2); err != nil {
		t.Errorf("CheckCardinality() error = %v", err)
	}
}
