// Package catalog holds ingredient reference data and the seven selection
// categories ingredients are grouped into.
//
// A Catalog is built once per animal profile and never mutated afterwards,
// so lookups need no locking:
//
//	cat, err := catalog.New(records)
//	corn, err := cat.Lookup("Maize")
//	sources := cat.IngredientsOf(catalog.RoleEnergy, catalog.SubtypeSource)
//
// Categories are declared in canonical bucket order, which the formulation
// generator relies on for deterministic output.
package catalog
