package render

type Renderer[T any] interface {
	Render(result T) error
}

// OutputFormat selects how listings are written
type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
)

// ParseFormat validates a --format value
func ParseFormat(value string) (OutputFormat, error) {
	switch OutputFormat(value) {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML:
		return OutputFormat(value), nil
	default:
		return "", &InvalidFormatError{Value: value}
	}
}

// InvalidFormatError is returned for unsupported --format values
type InvalidFormatError struct {
	Value string
}

func (e *InvalidFormatError) Error() string {
	return "invalid format: " + e.Value + " (valid: table, json, yaml)"
}
