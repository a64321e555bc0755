package model

// FieldType is the HTML input kind a field renders as.
type FieldType string

const (
	FieldTypeNumber FieldType = "number"
)

// Field is a single rendered input with its current raw value.
type Field struct {
	Name        string    `json:"name"`
	Type        FieldType `json:"type"`
	Label       string    `json:"label"`
	Placeholder string    `json:"placeholder,omitempty"`
	Value       string    `json:"value"`
	Required    bool      `json:"required"`
	Step        string    `json:"step,omitempty"`
}

// Section groups fields under a heading, in registry order.
type Section struct {
	Key    string  `json:"key"`
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
}

// Actions carries the chrome around the submit and clear controls.
type Actions struct {
	SubmitLabel    string `json:"submitLabel"`
	SubmitDisabled bool   `json:"submitDisabled"`
	ResetLabel     string `json:"resetLabel"`
	RequiredNote   string `json:"requiredNote,omitempty"`
}

// ResultCard is the display form of a prediction. Value and Message come from
// the remote service and must be treated as untrusted text.
type ResultCard struct {
	Heading    string `json:"heading"`
	Prediction int    `json:"prediction"`
	Value      string `json:"value"`
	Message    string `json:"message"`
	CSSClass   string `json:"cssClass"`
}

// FormModel is everything a renderer needs to draw one state of the form.
type FormModel struct {
	Title    string            `json:"title"`
	Subtitle string            `json:"subtitle,omitempty"`
	Action   string            `json:"action"`
	Method   string            `json:"method"`
	Sections []Section         `json:"sections"`
	Actions  Actions           `json:"actions"`
	Loading  bool              `json:"loading"`
	Result   *ResultCard       `json:"result,omitempty"`
	Error    string            `json:"error,omitempty"`
	Footer   string            `json:"footer,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// FieldCount returns the number of inputs across all sections.
func (f FormModel) FieldCount() int {
	total := 0
	for _, section := range f.Sections {
		total += len(section.Fields)
	}
	return total
}
