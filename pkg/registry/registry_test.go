package registry_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-fnaform/pkg/registry"
)

func TestSectionsOrder(t *testing.T) {
	var keys []string
	for _, section := range registry.Sections() {
		keys = append(keys, section.Key)
	}
	want := []string{registry.SectionSize, registry.SectionShape, registry.SectionTexture}
	if diff := cmp.Diff(want, keys); diff != "" {
		t.Fatalf("section order mismatch (-want +got):\n%s", diff)
	}
}

func TestIDs(t *testing.T) {
	want := []string{
		"radius_mean", "perimeter_mean", "area_mean",
		"smoothness_mean", "compactness_mean", "concavity_mean", "concave_points_mean",
		"texture_mean", "symmetry_mean", "fractal_dimension_mean",
	}
	if diff := cmp.Diff(want, registry.IDs()); diff != "" {
		t.Fatalf("ids mismatch (-want +got):\n%s", diff)
	}
}

func TestLookup(t *testing.T) {
	def, ok := registry.Lookup("concave_points_mean")
	if !ok {
		t.Fatalf("expected concave_points_mean to be registered")
	}
	want := registry.FieldDefinition{ID: "concave_points_mean", Label: "Concave Points (Mean)", Placeholder: "0.0489"}
	if diff := cmp.Diff(want, def); diff != "" {
		t.Fatalf("definition mismatch (-want +got):\n%s", diff)
	}
	if registry.Has("concave points_mean") {
		t.Fatalf("dataset column spelling must not be accepted as a field id")
	}
}

func TestSectionsReturnsCopy(t *testing.T) {
	first := registry.Sections()
	first[0].Fields[0].Label = "mutated"
	first[0].Title = "mutated"

	second := registry.Sections()
	if second[0].Title != "Size Measurements" || second[0].Fields[0].Label != "Radius (Mean)" {
		t.Fatalf("registry mutated through returned slice: %+v", second[0])
	}
}

func TestEmptyValues(t *testing.T) {
	values := registry.EmptyValues()
	if len(values) != len(registry.IDs()) {
		t.Fatalf("expected %d values, got %d", len(registry.IDs()), len(values))
	}
	for _, id := range registry.IDs() {
		v, ok := values[id]
		if !ok || v != "" {
			t.Fatalf("expected %s to map to empty string, got %q (present=%v)", id, v, ok)
		}
	}
}

func TestSectionByKey(t *testing.T) {
	section, ok := registry.SectionByKey(registry.SectionTexture)
	if !ok {
		t.Fatalf("texture section missing")
	}
	if section.Title != "Texture & Other" || len(section.Fields) != 3 {
		t.Fatalf("unexpected texture section: %+v", section)
	}
	if _, ok := registry.SectionByKey("color"); ok {
		t.Fatalf("unexpected section for unknown key")
	}
}
