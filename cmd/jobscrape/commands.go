package main

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"jobscrape/internal/config"
	"jobscrape/internal/scrape"
	"jobscrape/internal/store"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	configPath string
	sitesFile  string
}

type runOptions struct {
	sites   []string
	outDir  string
	enrich  bool
	workers int
	sqlite  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "jobscrape",
		Short:         "Scrape careers pages into CSV files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (default: built-in IQM and Xanadu sites)")
	root.PersistentFlags().StringVar(&opts.sitesFile, "sites-file", "", "YAML file whose sites list replaces the configured one")

	root.AddCommand(newRunCmd(opts))
	root.AddCommand(newSitesCmd(opts))
	root.AddCommand(newConfigCmd(opts))
	return root
}

func loadConfig(opts *rootOptions) (config.Config, error) {
	cfg := config.Default()
	if opts.configPath != "" {
		var err error
		cfg, err = config.Load(opts.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config %s: %w", opts.configPath, err)
		}
	}
	if opts.sitesFile != "" {
		if err := config.OverlaySites(&cfg, opts.sitesFile); err != nil {
			return cfg, fmt.Errorf("load sites %s: %w", opts.sitesFile, err)
		}
	}
	return cfg, nil
}

func validated(cfg config.Config) (config.Config, error) {
	out, v := config.NormalizeAndValidate(cfg)
	for _, w := range v.Warnings {
		log.Printf("[config] warning: %s", w)
	}
	if !v.OK() {
		return out, errors.New("invalid config:\n- " + strings.Join(v.Errors, "\n- "))
	}
	return out, nil
}

func newRunCmd(root *rootOptions) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scrape the configured sites and write one CSV per site",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("out-dir") {
				cfg.Output.Dir = opts.outDir
			}
			if flags.Changed("enrich") {
				cfg.Enrich.Enabled = opts.enrich
				for i := range cfg.Sites {
					cfg.Sites[i].Enrich = nil
				}
			}
			if flags.Changed("workers") {
				cfg.Enrich.Workers = opts.workers
			}
			if flags.Changed("sqlite") {
				cfg.Output.SQLitePath = opts.sqlite
			}

			cfg, err = validated(cfg)
			if err != nil {
				return err
			}

			var db *store.DB
			if cfg.Output.SQLitePath != "" {
				db, err = store.Open(cfg.Output.SQLitePath)
				if err != nil {
					return fmt.Errorf("open sqlite %s: %w", cfg.Output.SQLitePath, err)
				}
				defer db.Close()
			}

			results, runErr := scrape.NewRunner(cfg, nil, db).RunAll(cmd.Context(), opts.sites)
			for _, r := range results {
				if r.Path == "" {
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Data saved to %s (%d jobs)\n", r.Path, len(r.Records))
			}
			return runErr
		},
	}

	cmd.Flags().StringSliceVar(&opts.sites, "site", nil, "site(s) to scrape by name (default: all enabled)")
	cmd.Flags().StringVarP(&opts.outDir, "out-dir", "o", ".", "directory for CSV output")
	cmd.Flags().BoolVar(&opts.enrich, "enrich", true, "fetch each job's detail page for the long-form sections")
	cmd.Flags().IntVar(&opts.workers, "workers", 4, "concurrent detail-page fetches per site")
	cmd.Flags().StringVar(&opts.sqlite, "sqlite", "", "also export rows to this SQLite file")
	return cmd
}

func newSitesCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "sites",
		Short: "List configured sites",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, s := range cfg.Sites {
				a, err := scrape.NewAdapter(s)
				if err != nil {
					fmt.Fprintf(w, "%-10s %-8s error: %v\n", s.Name, s.Adapter, err)
					continue
				}
				state := "enabled"
				if !s.IsEnabled() {
					state = "disabled"
				}
				fmt.Fprintf(w, "%-10s %-8s %-8s %s -> %s\n", s.Name, s.Adapter, state, a.ListingURL(), s.OutputFile())
			}
			return nil
		},
	}
}

func newConfigCmd(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Create or check a config file",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Write the default config to --config unless it exists",
		RunE: func(cmd *cobra.Command, args []string) error {
			if root.configPath == "" {
				return errors.New("--config is required")
			}
			created, err := config.EnsureUserConfig(root.configPath)
			if err != nil {
				return err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", root.configPath)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "%s already exists\n", root.configPath)
			}
			return nil
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "validate",
		Short: "Check the config and print warnings",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(root)
			if err != nil {
				return err
			}
			if _, err := validated(cfg); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "config ok")
			return nil
		},
	})
	return cmd
}
