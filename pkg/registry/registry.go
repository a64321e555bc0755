package registry

// FieldDefinition describes one numeric measurement input.
type FieldDefinition struct {
	ID          string `json:"id"`
	Label       string `json:"label"`
	Placeholder string `json:"placeholder"`
}

// Section groups related field definitions under a display title.
type Section struct {
	Key    string            `json:"key"`
	Title  string            `json:"title"`
	Fields []FieldDefinition `json:"fields"`
}

const (
	SectionSize    = "size"
	SectionShape   = "shape"
	SectionTexture = "texture"
)

var sections = []Section{
	{
		Key:   SectionSize,
		Title: "Size Measurements",
		Fields: []FieldDefinition{
			{ID: "radius_mean", Label: "Radius (Mean)", Placeholder: "14.13"},
			{ID: "perimeter_mean", Label: "Perimeter (Mean)", Placeholder: "91.97"},
			{ID: "area_mean", Label: "Area (Mean)", Placeholder: "654.89"},
		},
	},
	{
		Key:   SectionShape,
		Title: "Shape Measurements",
		Fields: []FieldDefinition{
			{ID: "smoothness_mean", Label: "Smoothness (Mean)", Placeholder: "0.0964"},
			{ID: "compactness_mean", Label: "Compactness (Mean)", Placeholder: "0.1041"},
			{ID: "concavity_mean", Label: "Concavity (Mean)", Placeholder: "0.0869"},
			{ID: "concave_points_mean", Label: "Concave Points (Mean)", Placeholder: "0.0489"},
		},
	},
	{
		Key:   SectionTexture,
		Title: "Texture & Other",
		Fields: []FieldDefinition{
			{ID: "texture_mean", Label: "Texture (Mean)", Placeholder: "19.29"},
			{ID: "symmetry_mean", Label: "Symmetry (Mean)", Placeholder: "0.1812"},
			{ID: "fractal_dimension_mean", Label: "Fractal Dimension (Mean)", Placeholder: "0.0628"},
		},
	},
}

var index = buildIndex(sections)

// Sections returns the registry sections in render order (size, shape,
// texture). The returned slice is a copy and can be mutated freely.
func Sections() []Section {
	out := make([]Section, len(sections))
	for i, section := range sections {
		out[i] = Section{
			Key:    section.Key,
			Title:  section.Title,
			Fields: append([]FieldDefinition(nil), section.Fields...),
		}
	}
	return out
}

// SectionByKey returns the section registered under key.
func SectionByKey(key string) (Section, bool) {
	for _, section := range Sections() {
		if section.Key == key {
			return section, true
		}
	}
	return Section{}, false
}

// Fields flattens every section into a single ordered slice.
func Fields() []FieldDefinition {
	var out []FieldDefinition
	for _, section := range sections {
		out = append(out, section.Fields...)
	}
	return out
}

// IDs lists every field identifier in render order.
func IDs() []string {
	fields := Fields()
	out := make([]string, len(fields))
	for i, field := range fields {
		out[i] = field.ID
	}
	return out
}

// Lookup resolves a field definition by id.
func Lookup(id string) (FieldDefinition, bool) {
	def, ok := index[id]
	return def, ok
}

// Has reports whether id names a registered field.
func Has(id string) bool {
	_, ok := index[id]
	return ok
}

// EmptyValues returns a value map with every registered id set to "".
func EmptyValues() map[string]string {
	out := make(map[string]string, len(index))
	for id := range index {
		out[id] = ""
	}
	return out
}

func buildIndex(sections []Section) map[string]FieldDefinition {
	out := make(map[string]FieldDefinition)
	for _, section := range sections {
		for _, field := range section.Fields {
			if _, exists := out[field.ID]; exists {
				panic("registry: duplicate field id " + field.ID)
			}
			out[field.ID] = field
		}
	}
	return out
}
