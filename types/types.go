package types

const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatHTML = "html"
)

type TallyConfig struct {
	Format   string
	Title    string
	Style    string
	Features []string
}
