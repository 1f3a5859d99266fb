package util

import (
	"github.com/urfave/cli/v3"
)

const (
	version     = "1.0.0"
	usage       = "A tool for counting members in yaml files and styling notebooks."
	description = `tally prints the number of entries in the "members" list of every yaml file matching a pattern, and renders the tutorial stylesheet as an html style block.`
)

func NewCommand() *cli.Command {
	return &cli.Command{
		Name:                  "tally",
		Usage:                 usage,
		Description:           description,
		Version:               version,
		EnableShellCompletion: true,
		HideHelpCommand:       true,
		Flags:                 Flags(),
		Before:                Setup,
		Commands: []*cli.Command{
			{
				Name:   "count",
				Usage:  "prints each matched file with the length of its members list.",
				Flags:  CountFlags(),
				Action: RunCount,
			},
			{
				Name:   "style",
				Usage:  "prints the stylesheet wrapped in a <style> block.",
				Flags:  StyleFlags(),
				Action: RunStyle,
			},
			{
				Name:   "render",
				Usage:  "renders a markdown notebook to html with the stylesheet injected.",
				Flags:  RenderFlags(),
				Action: RunRender,
			},
		},
	}
}
