package util

import (
	"github.com/kovetskiy/tally/members"
	"github.com/kovetskiy/tally/notebook"
	"github.com/kovetskiy/tally/types"
	altsrc "github.com/urfave/cli-altsrc/v3"
	altsrctoml "github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var filename string

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "continue-on-error",
			Value:   false,
			Usage:   "don't exit if an error occurs while processing a file, continue processing remaining files.",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TALLY_CONTINUE_ON_ERROR"), altsrctoml.TOML("continue-on-error", altsrc.NewStringPtrSourcer(&filename))),
		},
		&cli.StringFlag{
			Name:  "color",
			Value: "auto",
			Usage: "display logs in color. Possible values: auto, never.",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TALLY_COLOR"),
				altsrctoml.TOML("color", altsrc.NewStringPtrSourcer(&filename))),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "set the log level. Possible values: TRACE, DEBUG, INFO, WARNING, ERROR, FATAL.",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TALLY_LOG_LEVEL"), altsrctoml.TOML("log-level", altsrc.NewStringPtrSourcer(&filename))),
		},
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Value:       ConfigFilePath(),
			Usage:       "use the specified configuration file.",
			TakesFile:   true,
			Sources:     cli.NewValueSourceChain(cli.EnvVar("TALLY_CONFIG")),
			Destination: &filename,
		},
	}
}

func cssFlag() cli.Flag {
	return &cli.StringFlag{
		Name:      "css",
		Value:     "",
		Usage:     "use specified stylesheet instead of the built-in tutorial.css.",
		TakesFile: true,
		Sources:   cli.NewValueSourceChain(cli.EnvVar("TALLY_CSS"), altsrctoml.TOML("css", altsrc.NewStringPtrSourcer(&filename))),
	}
}

func CountFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      "files",
			Aliases:   []string{"f"},
			Value:     members.DefaultPattern,
			Usage:     "count members in yaml file(s) matching the pattern. Supports file globbing patterns (needs to be quoted).",
			TakesFile: true,
			Sources:   cli.NewValueSourceChain(cli.EnvVar("TALLY_FILES"), altsrctoml.TOML("files", altsrc.NewStringPtrSourcer(&filename))),
		},
		&cli.StringFlag{
			Name:    "format",
			Value:   types.FormatText,
			Usage:   "report format. Possible values: text, yaml, html.",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TALLY_FORMAT"), altsrctoml.TOML("format", altsrc.NewStringPtrSourcer(&filename))),
		},
		&cli.StringFlag{
			Name:    "title",
			Value:   "",
			Usage:   "heading of the html report. Derived from the pattern directory if not set.",
			Sources: cli.NewValueSourceChain(cli.EnvVar("TALLY_TITLE"), altsrctoml.TOML("title", altsrc.NewStringPtrSourcer(&filename))),
		},
		cssFlag(),
	}
}

func StyleFlags() []cli.Flag {
	return []cli.Flag{
		cssFlag(),
	}
}

func RenderFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:      "file",
			Aliases:   []string{"f"},
			Value:     "",
			Usage:     "render specified markdown notebook to html.",
			TakesFile: true,
			Required:  true,
		},
		cssFlag(),
		&cli.StringSliceFlag{
			Name:    "features",
			Value:   []string{},
			Usage:   "Enables optional features. Current features: " + notebook.FeatureAdmonitions,
			Sources: cli.NewValueSourceChain(cli.EnvVar("TALLY_FEATURES"), altsrctoml.TOML("features", altsrc.NewStringPtrSourcer(&filename))),
		},
	}
}
