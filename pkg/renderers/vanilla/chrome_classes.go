package vanilla

// ChromeClass is a typed identifier for the CSS classes the page chrome uses.
type ChromeClass string

const (
	ClassCard      ChromeClass = "card"
	ClassSection   ChromeClass = "form-section"
	ClassGrid      ChromeClass = "field-grid"
	ClassField     ChromeClass = "field"
	ClassInput     ChromeClass = "field-input"
	ClassActions   ChromeClass = "form-actions"
	ClassResult    ChromeClass = "result-card"
	ClassErrorCard ChromeClass = "error-card"
)

// slotKeys maps each chrome class to the key templates read it from.
var slotKeys = map[ChromeClass]string{
	ClassCard:      "card",
	ClassSection:   "section",
	ClassGrid:      "grid",
	ClassField:     "field",
	ClassInput:     "input",
	ClassActions:   "actions",
	ClassResult:    "result",
	ClassErrorCard: "error",
}

func defaultClasses() map[string]string {
	classes := make(map[string]string, len(slotKeys))
	for slot, key := range slotKeys {
		classes[key] = string(slot)
	}
	return classes
}
