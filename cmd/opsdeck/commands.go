package main

import (
	"github.com/spf13/cobra"

	"opsdeck"
	"opsdeck/util"
)

var (
	cfgPath string
	source  string
	kind    string
	opts    opsdeck.Options

	rootCmd = &cobra.Command{
		Use:          "opsdeck",
		Short:        "A terminal dashboard for database operations exports",
		Version:      version,
		SilenceUsage: true,
	}

	viewCmd = &cobra.Command{
		Use:   "view [source]",
		Short: "Browse records interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runView,
	}

	summaryCmd = &cobra.Command{
		Use:   "summary [source]",
		Short: "Print the filtered, sorted records and their bucket counts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSummary,
	}
)

func init() {

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgPath, "config", util.ConfigPath("opsdeck"), "config file, a sample is written when missing")
	flags.StringVar(&source, "source", "", "export file to load (json, ndjson or csv)")
	flags.StringVar(&kind, "kind", "", "record kind: database, backup, health, credential, oncall or patch (default: ad-hoc)")
	flags.StringVar(&opts.Sort, "sort", "", "field to sort by")
	flags.BoolVar(&opts.Desc, "desc", false, "sort descending")
	flags.StringArrayVar(&opts.Filters, "filter", nil, "field=value, repeatable (value All is no constraint)")
	flags.StringVar(&opts.Search, "search", "", "text searched across the layout's search fields")

	rootCmd.AddCommand(viewCmd, summaryCmd)
}
