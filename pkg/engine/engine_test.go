package engine

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feedform/feedform/pkg/animal"
	"github.com/feedform/feedform/pkg/catalog"
	fferrors "github.com/feedform/feedform/pkg/errors"
	"github.com/feedform/feedform/pkg/formulation"
	"github.com/feedform/feedform/pkg/header"
)

func newTestEngine(t *testing.T, regOpts []animal.RegistryOption, opts ...Option) *Engine {
	t.Helper()
	reg, err := animal.NewRegistry(context.Background(), regOpts...)
	require.NoError(t, err)
	e, err := New(reg, append([]Option{WithVersion("test")}, opts...)...)
	require.NoError(t, err)
	return e
}

// growerSelection yields 256 catfish mixtures with totals between
// 2726-2753 kcal/kg and 31.9-32.5 % CP.
func growerSelection() formulation.Selection {
	return formulation.Selection{
		catalog.EnergySources:        {"Maize", "Cassava flour"},
		catalog.EnergyReplacers:      {"Wheat bran", "Maize bran"},
		catalog.HighProteinSources:   {"Poultry by-product meal"},
		catalog.MediumProteinSources: {"Soybean meal", "Groundnut cake"},
		catalog.ProteinReplacers:     {"Sunflower cake", "Sesame cake"},
	}
}

func growerRequest() Request {
	return Request{AnimalType: "catfish", Class: "Grower", Selection: growerSelection()}
}

func tol(v float64) *float64 { return &v }

func TestNew(t *testing.T) {
	_, err := New(nil)
	assert.Equal(t, fferrors.ErrCodeInternal, fferrors.CodeOf(err))

	reg, err := animal.NewRegistry(context.Background())
	require.NoError(t, err)

	_, err = New(reg, WithTolerance(-0.1))
	assert.Equal(t, fferrors.ErrCodeInvalidRequest, fferrors.CodeOf(err))

	_, err = New(reg, WithMinSelection(0))
	assert.Error(t, err)

	e, err := New(reg)
	require.NoError(t, err)
	assert.InDelta(t, 0.01, e.Tolerance(), 1e-12)
}

func TestFormulate(t *testing.T) {
	e := newTestEngine(t, nil)

	res, err := e.Formulate(context.Background(), growerRequest())
	require.NoError(t, err)

	assert.Equal(t, header.KindFormulationResult, res.Kind)
	assert.Equal(t, header.APIVersion, res.APIVersion)
	assert.Equal(t, "test", res.Metadata["version"])
	assert.Equal(t, "catfish", res.AnimalType)
	assert.Equal(t, "Grower", res.Class)
	assert.InDelta(t, 0.01, res.Tolerance, 1e-12)
	assert.Equal(t, 2700.0, res.Requirement.EnergyMin)

	assert.Len(t, res.Formulations, 256)
	assert.Len(t, res.Recommended, 199)
	assert.Equal(t, formulation.Summary{Total: 256, WithinBounds: 12, WithinTolerance: 187, Rejected: 57}, res.Summary)

	first := res.Formulations[0]
	assert.InDelta(t, 2740.1316, first.TotalME, 1e-3)
	assert.InDelta(t, 32.1789, first.TotalCP, 1e-3)
	assert.InDelta(t, 0.15, first.Proportions["Maize"], 1e-9)

	all := make(map[string]bool, len(res.Formulations))
	for _, m := range res.Formulations {
		assert.InDelta(t, 1.0, m.Sum(), 1e-6)
		all[m.Key()] = true
	}
	for _, m := range res.Recommended {
		assert.True(t, all[m.Key()], "recommended mixture missing from all: %s", m.Key())
	}

	_, again, err := formulation.Filter(res.Formulations, res.Requirement, res.Tolerance)
	require.NoError(t, err)
	assert.Len(t, again, len(res.Recommended))
}

func TestFormulateToleranceMonotonic(t *testing.T) {
	e := newTestEngine(t, nil)

	tests := []struct {
		tolerance float64
		want      int
	}{
		{0, 12},
		{0.01, 199},
		{0.02, 256},
		{0.5, 256},
	}

	prev := 0
	for _, tt := range tests {
		req := growerRequest()
		req.Tolerance = tol(tt.tolerance)
		res, err := e.Formulate(context.Background(), req)
		require.NoError(t, err)
		assert.Len(t, res.Recommended, tt.want, "tolerance %v", tt.tolerance)
		assert.GreaterOrEqual(t, len(res.Recommended), prev)
		prev = len(res.Recommended)
	}
}

func TestFormulateDefaultToleranceOption(t *testing.T) {
	e := newTestEngine(t, nil, WithTolerance(0))

	res, err := e.Formulate(context.Background(), growerRequest())
	require.NoError(t, err)
	assert.Len(t, res.Recommended, 12)
	assert.Zero(t, res.Tolerance)
}

func TestFormulateRank(t *testing.T) {
	e := newTestEngine(t, nil)

	req := growerRequest()
	req.Rank = true
	res, err := e.Formulate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, res.Recommended, 199)
	assert.True(t, res.Ranked)

	best := res.Recommended[0]
	assert.InDelta(t, 2729.1711, best.TotalME, 1e-3)
	assert.InDelta(t, 31.9318, best.TotalCP, 1e-3)
	for i := 1; i < len(res.Recommended); i++ {
		assert.LessOrEqual(t,
			formulation.MidpointDistance(res.Recommended[i-1], res.Requirement),
			formulation.MidpointDistance(res.Recommended[i], res.Requirement))
	}
}

func TestFormulateIdempotent(t *testing.T) {
	e := newTestEngine(t, nil)

	a, err := e.Formulate(context.Background(), growerRequest())
	require.NoError(t, err)
	b, err := e.Formulate(context.Background(), growerRequest())
	require.NoError(t, err)

	if diff := cmp.Diff(a.Formulations, b.Formulations, cmp.AllowUnexported(formulation.Mixture{})); diff != "" {
		t.Errorf("formulations differ between identical calls (-first +second):\n%s", diff)
	}
}

func TestFormulateValidationOrder(t *testing.T) {
	e := newTestEngine(t, nil)

	short := growerSelection()
	short[catalog.EnergyReplacers] = []string{"Wheat bran", " wheat BRAN "}

	unknown := growerSelection()
	unknown[catalog.EnergySources] = []string{"Maize", "Unobtainium"}

	misplaced := growerSelection()
	misplaced[catalog.EnergySources] = []string{"Maize", "Fish meal"}

	tests := []struct {
		name string
		req  Request
		want fferrors.ErrorCode
	}{
		{"unknown animal wins over class", Request{AnimalType: "dragon", Class: "Nope", Selection: short}, fferrors.ErrCodeInvalidAnimalType},
		{"empty animal", Request{Class: "Grower", Selection: growerSelection()}, fferrors.ErrCodeInvalidAnimalType},
		{"class wins over tolerance", Request{AnimalType: "catfish", Class: "Kitten", Tolerance: tol(-1)}, fferrors.ErrCodeInvalidClass},
		{"empty class", Request{AnimalType: "catfish", Selection: growerSelection()}, fferrors.ErrCodeInvalidClass},
		{"tolerance wins over selection", Request{AnimalType: "catfish", Class: "Grower", Tolerance: tol(-0.01), Selection: short}, fferrors.ErrCodeInvalidRequest},
		{"duplicates count once", Request{AnimalType: "catfish", Class: "Grower", Selection: short}, fferrors.ErrCodeInsufficientSelection},
		{"empty selection", Request{AnimalType: "catfish", Class: "Grower"}, fferrors.ErrCodeInsufficientSelection},
		{"unknown ingredient", Request{AnimalType: "catfish", Class: "Grower", Selection: unknown}, fferrors.ErrCodeInvalidIngredient},
		{"ingredient in wrong category", Request{AnimalType: "catfish", Class: "Grower", Selection: misplaced}, fferrors.ErrCodeInvalidIngredient},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := e.Formulate(context.Background(), tt.req)
			require.Error(t, err)
			assert.Nil(t, res)
			assert.Equal(t, tt.want, fferrors.CodeOf(err), "error: %v", err)
		})
	}
}

func TestFormulateTooLarge(t *testing.T) {
	e := newTestEngine(t, []animal.RegistryOption{
		animal.WithGeneratorOptions(formulation.WithMaxMixtures(100)),
	})

	_, err := e.Formulate(context.Background(), growerRequest())
	require.Error(t, err)
	assert.Equal(t, fferrors.ErrCodeGenerationTooLarge, fferrors.CodeOf(err))
}

func TestFormulateCanceled(t *testing.T) {
	e := newTestEngine(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Formulate(ctx, growerRequest())
	require.Error(t, err)
	assert.Equal(t, fferrors.ErrCodeTimeout, fferrors.CodeOf(err))
}

func TestRequirementClasses(t *testing.T) {
	e := newTestEngine(t, nil)

	got, err := e.RequirementClasses("Catfish")
	require.NoError(t, err)
	assert.Equal(t, header.KindClassList, got.Kind)
	assert.Equal(t, "catfish", got.AnimalType)
	assert.Equal(t, []string{"Fry", "Fingerling", "Juvenile", "Grower", "Broodstock"}, got.Classes)

	_, err = e.RequirementClasses("dragon")
	assert.Equal(t, fferrors.ErrCodeInvalidAnimalType, fferrors.CodeOf(err))
}

func TestIngredientOptions(t *testing.T) {
	e := newTestEngine(t, nil)

	got, err := e.IngredientOptions("catfish")
	require.NoError(t, err)
	assert.Equal(t, header.KindIngredientOptions, got.Kind)
	assert.Contains(t, got.Options[catalog.EnergySources], "Maize")
	assert.Contains(t, got.Options[catalog.AminoAcid1], "L-Lysine HCl")
	assert.NotContains(t, got.Options[catalog.EnergySources], "Fish meal")

	rows := got.TableRows()
	require.Len(t, rows, len(catalog.Categories()))
	assert.Equal(t, string(catalog.EnergySources), rows[0][0])

	_, err = e.IngredientOptions("")
	assert.Equal(t, fferrors.ErrCodeInvalidAnimalType, fferrors.CodeOf(err))
}

func TestAnimals(t *testing.T) {
	e := newTestEngine(t, nil)

	got := e.Animals()
	assert.Equal(t, header.KindAnimalList, got.Kind)
	require.Len(t, got.Animals, len(animal.Types()))
	for _, a := range got.Animals {
		assert.NotEmpty(t, a.DisplayName)
		assert.NotEmpty(t, a.Classes)
	}
}

func TestResultTableRows(t *testing.T) {
	e := newTestEngine(t, nil)

	res, err := e.Formulate(context.Background(), growerRequest())
	require.NoError(t, err)

	rows := res.TableRows()
	require.Len(t, rows, len(res.Formulations))
	assert.Len(t, res.TableHeader(), len(rows[0]))
	assert.Equal(t, "yes", rows[0][1])
	assert.Equal(t, "yes", rows[len(res.Recommended)-1][1])
	assert.Equal(t, "no", rows[len(res.Recommended)][1])
}
