package formulation

import (
	"testing"

	"github.com/feedform/feedform/pkg/catalog"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	cat, err := catalog.New([]catalog.Ingredient{
		{Name: "Maize", Role: catalog.RoleEnergy, Subtype: catalog.SubtypeSource, Energy: 3300, Protein: 9},
		{Name: "Sorghum", Role: catalog.RoleEnergy, Subtype: catalog.SubtypeSource, Energy: 3200, Protein: 10},
		{Name: "Cassava", Role: catalog.RoleEnergy, Subtype: catalog.SubtypeSource, Energy: 3100, Protein: 2},
		{Name: "Wheat bran", Role: catalog.RoleEnergy, Subtype: catalog.SubtypeReplacer, Energy: 1900, Protein: 15},
		{Name: "Rice bran", Role: catalog.RoleEnergy, Subtype: catalog.SubtypeReplacer, Energy: 2500, Protein: 13},
		{Name: "Fish meal", Role: catalog.RoleProtein, Subtype: catalog.SubtypeHigh, Energy: 2800, Protein: 60},
		{Name: "Blood meal", Role: catalog.RoleProtein, Subtype: catalog.SubtypeHigh, Energy: 2500, Protein: 80},
		{Name: "Soybean meal", Role: catalog.RoleProtein, Subtype: catalog.SubtypeMedium, Energy: 2400, Protein: 44},
		{Name: "Groundnut cake", Role: catalog.RoleProtein, Subtype: catalog.SubtypeMedium, Energy: 2600, Protein: 45},
		{Name: "Cottonseed cake", Role: catalog.RoleProtein, Subtype: catalog.SubtypeReplacer, Energy: 2000, Protein: 35},
		{Name: "Sunflower cake", Role: catalog.RoleProtein, Subtype: catalog.SubtypeReplacer, Energy: 2100, Protein: 30},
		{Name: "L-Lysine", Role: catalog.RoleAminoAcid1, Energy: 3000, Protein: 95, Nutrients: map[string]float64{"lysine": 78}},
		{Name: "DL-Methionine", Role: catalog.RoleAminoAcid2, Energy: 3500, Protein: 58, Nutrients: map[string]float64{"methionine": 99}},
	})
	if err != nil {
		t.Fatalf("catalog.New() error = %v", err)
	}
	return cat
}

func fullSelection() Selection {
	return Selection{
		catalog.EnergySources:        {"Maize", "Sorghum"},
		catalog.EnergyReplacers:      {"Wheat bran", "Rice bran"},
		catalog.HighProteinSources:   {"Fish meal", "Blood meal"},
		catalog.MediumProteinSources: {"Soybean meal", "Groundnut cake"},
		catalog.ProteinReplacers:     {"Cottonseed cake", "Sunflower cake"},
		catalog.AminoAcid1:           {"L-Lysine"},
		catalog.AminoAcid2:           {"DL-Methionine"},
	}
}

func evaluatedMixture(me, cp float64) Mixture {
	return Mixture{Proportions: map[string]float64{"x": 1}, TotalME: me, TotalCP: cp, evaluated: true}
}
