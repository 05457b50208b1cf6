package catalog

import "testing"

func TestCatalogLoadsAndLooksUp(t *testing.T) {
	items, err := List("")
	if err != nil {
		t.Fatalf("list catalog: %v", err)
	}
	if len(items) < 20 {
		t.Fatalf("expected a populated catalog, got %d entries", len(items))
	}
	ex, ok := Lookup(" Bench-Press ")
	if !ok || ex.Name != "Bench Press" || ex.MuscleGroup != "chest" {
		t.Fatalf("unexpected lookup result %+v %v", ex, ok)
	}
	if _, ok := Lookup("underwater-basket-weaving"); ok {
		t.Fatalf("expected unknown id to miss")
	}
}

func TestListFiltersByMuscleGroup(t *testing.T) {
	items, err := List("LEGS")
	if err != nil {
		t.Fatalf("list legs: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("expected leg exercises")
	}
	for _, it := range items {
		if it.MuscleGroup != "legs" {
			t.Fatalf("expected only legs, got %+v", it)
		}
	}
	for i := 1; i < len(items); i++ {
		if items[i-1].Name > items[i].Name {
			t.Fatalf("expected sorted by name, got %q before %q", items[i-1].Name, items[i].Name)
		}
	}
}
