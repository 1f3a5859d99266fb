package notebook

import (
	"bytes"
	"slices"

	"github.com/kovetskiy/tally/types"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
	admonitions "github.com/stefanfritsch/goldmark-admonitions"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

const FeatureAdmonitions = "mkdocsadmonitions"

func newConverter(cfg types.TallyConfig) goldmark.Markdown {
	extensions := []goldmark.Extender{
		extension.Footnote,
		extension.DefinitionList,
		extension.NewTable(
			extension.WithTableCellAlignMethod(extension.TableCellAlignStyle),
		),
		extension.GFM,
	}

	if slices.Contains(cfg.Features, FeatureAdmonitions) {
		extensions = append(extensions, &admonitions.Extender{})
	}

	return goldmark.New(
		goldmark.WithExtensions(extensions...),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
			html.WithXHTML(),
		),
	)
}

// Compile renders markdown into an HTML fragment led by the style block
// from cfg.Style.
func Compile(markdown []byte, cfg types.TallyConfig) (string, error) {
	log.Tracef(nil, "rendering markdown:\n%s", string(markdown))

	markdown = bytes.ReplaceAll(markdown, []byte("\r\n"), []byte("\n"))

	var buffer bytes.Buffer

	if cfg.Style != "" {
		buffer.WriteString(cfg.Style)
		buffer.WriteString("\n")
	}

	err := newConverter(cfg).Convert(markdown, &buffer)
	if err != nil {
		return "", karma.Format(err, "unable to render markdown")
	}

	log.Tracef(nil, "rendered markdown to html:\n%s", buffer.String())

	return buffer.String(), nil
}
