package file

// document is the on-disk form schema, loaded from JSON or YAML.
type document struct {
	Title     string     `json:"title" yaml:"title"`
	Questions []question `json:"questions" yaml:"questions"`
}

// question is one entry of a form file.
// The ID is optional; missing IDs are inferred from the position.
type question struct {
	ID       string   `json:"id" yaml:"id"`
	Text     string   `json:"text" yaml:"text"`
	Type     string   `json:"type" yaml:"type"`
	Options  []string `json:"options" yaml:"options"`
	Required bool     `json:"required" yaml:"required"`
}
