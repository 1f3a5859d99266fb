package util

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/kovetskiy/lorg"
	"github.com/kovetskiy/tally/members"
	"github.com/kovetskiy/tally/notebook"
	"github.com/kovetskiy/tally/style"
	"github.com/kovetskiy/tally/types"
	"github.com/kovetskiy/tally/vfs"
	"github.com/reconquest/karma-go"
	"github.com/reconquest/pkg/log"
	"github.com/urfave/cli/v3"
)

func Setup(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	if err := SetLogLevel(cmd); err != nil {
		return ctx, err
	}

	if cmd.String("color") == "never" {
		log.GetLogger().SetFormat(
			lorg.NewFormat(
				`${time:2006-01-02 15:04:05.000} ${level:%s:left:true} ${prefix}%s`,
			),
		)
		log.GetLogger().SetOutput(os.Stderr)
	}

	return ctx, nil
}

func RunCount(ctx context.Context, cmd *cli.Command) error {
	logFlags(cmd)

	styleBlock, err := renderStyle(cmd)
	if err != nil {
		return err
	}

	fatalErrorHandler := NewErrorHandler(cmd.Bool("continue-on-error"))

	scanner := members.NewScanner(vfs.LocalOS)
	scanner.OnError = func(err error, path string) error {
		return fatalErrorHandler.Handle(err, "unable to process %s", path)
	}

	pattern := cmd.String("files")

	report, err := scanner.Scan(pattern)
	if err != nil {
		return err
	}

	if len(report.Entries) == 0 {
		log.Warningf(nil, "no files matched %q", pattern)
	}

	return report.Write(cmd.Root().Writer, types.TallyConfig{
		Format: cmd.String("format"),
		Title:  cmd.String("title"),
		Style:  styleBlock,
	})
}

func RunStyle(ctx context.Context, cmd *cli.Command) error {
	logFlags(cmd)

	styleBlock, err := renderStyle(cmd)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Root().Writer, styleBlock)

	return err
}

func RunRender(ctx context.Context, cmd *cli.Command) error {
	logFlags(cmd)

	file := cmd.String("file")

	log.Infof(nil, "rendering %s", file)

	markdown, err := vfs.ReadFile(vfs.LocalOS, file)
	if err != nil {
		return karma.Format(err, "unable to read file %q", file)
	}

	styleBlock, err := renderStyle(cmd)
	if err != nil {
		return err
	}

	html, err := notebook.Compile(markdown, types.TallyConfig{
		Style:    styleBlock,
		Features: cmd.StringSlice("features"),
	})
	if err != nil {
		return karma.Describe("file", file).Reason(err)
	}

	_, err = fmt.Fprint(cmd.Root().Writer, html)

	return err
}

func renderStyle(cmd *cli.Command) (string, error) {
	path := cmd.String("css")
	if path == "" {
		log.Debugf(nil, "using built-in stylesheet %s", style.DefaultFile)
	}

	return style.Render(vfs.LocalOS, path)
}

func logFlags(cmd *cli.Command) {
	log.Debug("config:")
	for _, f := range cmd.Flags {
		flag := f.Names()
		log.Debugf(nil, "%20s: %v", flag[0], cmd.Value(flag[0]))
	}
}

func ConfigFilePath() string {
	fp, err := os.UserConfigDir()
	if err != nil {
		log.Fatal(err)
	}
	return filepath.Join(fp, "tally.toml")
}

func SetLogLevel(cmd *cli.Command) error {
	logLevel := cmd.String("log-level")
	switch strings.ToUpper(logLevel) {
	case lorg.LevelTrace.String():
		log.SetLevel(lorg.LevelTrace)
	case lorg.LevelDebug.String():
		log.SetLevel(lorg.LevelDebug)
	case lorg.LevelInfo.String():
		log.SetLevel(lorg.LevelInfo)
	case lorg.LevelWarning.String():
		log.SetLevel(lorg.LevelWarning)
	case lorg.LevelError.String():
		log.SetLevel(lorg.LevelError)
	case lorg.LevelFatal.String():
		log.SetLevel(lorg.LevelFatal)
	default:
		return fmt.Errorf("unknown log level: %s", logLevel)
	}

	return nil
}
