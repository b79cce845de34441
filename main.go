package main

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// app carries what the commands share, so tests can swap the filesystem and
// the standard streams.
type app struct {
	fs     afero.Fs
	cwd    string
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	log    zerolog.Logger

	confFile  string
	logLevel  string
	logFormat string
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "otcms",
		Short: "Static site generator for a travelogue and photo blog",
		Long: `otcms regenerates the entries and indexes of a travelogue site from an
ordered catalog of entries and their Markdown sources. It also writes gallery
markup and PhotoRDF sidecars for directories of photos.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.log = newLogger(a.logLevel, a.logFormat, a.stderr)
		},
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	root.PersistentFlags().StringVar(&a.confFile, "config", "", "config file (default is ./otcms.yaml)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", logFormatConsole, "log format: console or json")

	root.AddCommand(newRefreshCmd(a), newGalleryCmd(a), newRdfizeCmd(a))
	return root
}

func main() {
	cwd, err := os.Getwd()
	a := &app{
		fs:     afero.NewOsFs(),
		cwd:    cwd,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		log:    newLogger("info", logFormatConsole, os.Stderr),
	}
	if err != nil {
		a.log.Fatal().Err(err).Msg("Cannot determine working directory")
	}

	if err := newRootCmd(a).Execute(); err != nil {
		a.log.Fatal().Err(err).Send()
	}
}
