package members

import (
	"fmt"
	"html/template"
	"io"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/kovetskiy/tally/types"
	"github.com/reconquest/karma-go"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var reportTemplate = template.Must(template.New("report").Parse(
	`{{ .Style }}
<h1>{{ .Title }}</h1>
<table>
<thead><tr><th>File</th><th>Members</th></tr></thead>
<tbody>
{{- range .Entries }}
<tr><td>{{ .Path }}</td><td>{{ .Members }}</td></tr>
{{- end }}
</tbody>
</table>
`,
))

func (report *Report) Write(writer io.Writer, cfg types.TallyConfig) error {
	switch cfg.Format {
	case "", types.FormatText:
		for _, entry := range report.Entries {
			_, err := fmt.Fprintf(writer, "%s %d\n", entry.Path, entry.Members)
			if err != nil {
				return err
			}
		}

		return nil

	case types.FormatYAML:
		encoder := yaml.NewEncoder(writer)
		encoder.SetIndent(2)

		err := encoder.Encode(report.Entries)
		if err != nil {
			return karma.Format(err, "unable to encode report")
		}

		return encoder.Close()

	case types.FormatHTML:
		title := cfg.Title
		if title == "" {
			title = Title(report.Pattern)
		}

		err := reportTemplate.Execute(writer, struct {
			Style   template.HTML
			Title   string
			Entries []Entry
		}{
			Style:   template.HTML(cfg.Style),
			Title:   title,
			Entries: report.Entries,
		})
		if err != nil {
			return karma.Format(err, "unable to execute report template")
		}

		return nil
	}

	return fmt.Errorf("unknown report format: %s", cfg.Format)
}

// Title derives a report heading from the directory part of the pattern,
// e.g. sample_data/*.yaml becomes "Sample Data".
func Title(pattern string) string {
	base, _ := doublestar.SplitPattern(filepath.ToSlash(pattern))

	name := filepath.Base(base)
	if name == "." || name == "/" || name == "" {
		return cases.Title(language.English).String(Key)
	}

	name = strings.ReplaceAll(name, "_", " ")
	name = strings.ReplaceAll(name, "-", " ")

	return cases.Title(language.English).String(name)
}
