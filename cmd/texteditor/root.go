package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"example.com/gapedit/internal/app"
	"example.com/gapedit/pkg/config"
	"example.com/gapedit/pkg/logs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRootCmd() *cobra.Command {
	return buildRootCmd(viper.New())
}

// buildRootCmd builds the CLI around v. Flags, TEXTEDITOR_* environment
// variables and the YAML config file are merged in that order of precedence.
func buildRootCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "texteditor [file]",
		Short: "A minimal terminal text editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := newRunner(v, args)
			if err != nil {
				return err
			}
			return r.Run()
		},
		SilenceUsage: true,
	}

	cmd.Flags().StringP("config", "c", "", "config file (default: ~/.texteditor/config.yaml)")
	cmd.Flags().String("log-file", "", "write JSON event log to this file")
	cmd.Flags().Int("gap-capacity", 0, "gap growth increment in characters")
	cmd.Flags().Int("tab-width", 0, "tab stop width in cells")

	v.SetEnvPrefix("TEXTEDITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	_ = v.BindPFlags(cmd.Flags())
	return cmd
}

// loadConfig reads the config file named by v and applies flag and
// environment overrides on top of it.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	path := v.GetString("config")
	if path == "" {
		path = config.DefaultPath()
	}
	cfg := config.Default()
	if path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return nil, err
		}
	}
	if n := v.GetInt("gap-capacity"); n > 0 {
		cfg.GapCapacity = n
	}
	if n := v.GetInt("tab-width"); n > 0 {
		cfg.TabWidth = n
	}
	if lf := v.GetString("log-file"); lf != "" {
		cfg.LogFile = lf
	}
	return cfg, nil
}

func newRunner(v *viper.Viper, args []string) (*app.Runner, error) {
	cfg, err := loadConfig(v)
	if err != nil {
		return nil, err
	}
	r := app.New(cfg)
	if cfg.LogFile != "" {
		l, err := logs.New(cfg.LogFile)
		if err != nil {
			return nil, fmt.Errorf("opening log file: %w", err)
		}
		r.Logger = l
	}
	if len(args) == 1 {
		if err := r.LoadFile(args[0]); err != nil {
			if !errors.Is(err, os.ErrNotExist) {
				return nil, err
			}
			// a new file: start empty and save under this name
			r.Session.FilePath = args[0]
		}
	}
	return r, nil
}
