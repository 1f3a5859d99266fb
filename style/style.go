package style

import (
	"embed"

	"github.com/kovetskiy/tally/vfs"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
)

const DefaultFile = "tutorial.css"

//go:embed tutorial.css
var assets embed.FS

// Embedded opens the stylesheets shipped with the binary.
var Embedded = vfs.FSOpener{FS: assets}

func Default() string {
	data, err := assets.ReadFile(DefaultFile)
	if err != nil {
		panic(err)
	}

	return string(data)
}

// Load reads the full contents of the stylesheet at path.
func Load(opener vfs.Opener, path string) (string, error) {
	data, err := vfs.ReadFile(opener, path)
	if err != nil {
		return "", karma.Format(err, "unable to read stylesheet %q", path)
	}

	log.Tracef(nil, "loaded stylesheet %s:\n%s", path, string(data))

	return string(data), nil
}

// Wrap puts css verbatim into a style element.
func Wrap(css string) string {
	return "<style>\n" + css + "\n</style>"
}

// Render loads the stylesheet and wraps it. Empty path selects the
// embedded default.
func Render(opener vfs.Opener, path string) (string, error) {
	if path == "" {
		opener, path = Embedded, DefaultFile
	}

	css, err := Load(opener, path)
	if err != nil {
		return "", err
	}

	return Wrap(css), nil
}
