package main

import (
	"github.com/spf13/cobra"
)

func newRefreshCmd(a *app) *cobra.Command {
	var o confOverrides
	cmd := &cobra.Command{
		Use:   "refresh",
		Short: "Regenerate entries and indexes",
		Long: `Regenerate every entry page from its Markdown source, then the archives,
the geo pages, the home page and the Atom feed.

Without --catalog, catalog.yaml (or private.yaml with -p) is searched for in the
current directory and its parents. The htdocs root defaults to the directory of
the catalog. Every output directory must already exist.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logFlagsSet := cmd.Flags().Changed("log-level") || cmd.Flags().Changed("log-format")
			return a.refresh(o, !logFlagsSet)
		},
	}
	cmd.Flags().StringVar(&o.catalog, "catalog", "", "path of the entries catalog")
	cmd.Flags().StringVar(&o.htdocs, "htdocs", "", "root directory the entries are generated in")
	cmd.Flags().BoolVarP(&o.private, "private", "p", false, "use the private catalog: generate entries only, no indexes")
	return cmd
}

// refresh rebuilds the site. With useConfLog, the config file's log section
// replaces the logger set up from the command line defaults.
func (a *app) refresh(o confOverrides, useConfLog bool) error {
	conf, err := readConf(a.fs, a.cwd, a.confFile, o)
	if err != nil {
		return err
	}
	if useConfLog {
		a.log = newLogger(conf.Log.Level, conf.Log.Format, a.stderr)
	}

	site, err := ReadSite(conf, a.fs, a.log)
	if err != nil {
		return err
	}
	if err := site.CopyStaticFiles(); err != nil {
		return err
	}
	return site.RenderAll()
}
