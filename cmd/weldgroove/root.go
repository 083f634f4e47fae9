package main

import (
	"github.com/spf13/cobra"

	"github.com/chazu/weldgroove/pkg/config"
	"github.com/chazu/weldgroove/pkg/logging"
)

// session carries the persistent flags and the App built from them.
type session struct {
	configPath string
	logLevel   string
	app        *App
}

func newRootCmd() *cobra.Command {
	s := &session{}

	cmd := &cobra.Command{
		Use:          "weldgroove",
		Short:        "ISO 9692-1 weld groove profiles",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if s.configPath != "" {
				loaded, err := config.LoadFile(s.configPath)
				if err != nil {
					return err
				}
				cfg = loaded
			}
			level := cfg.Log.Level
			if s.logLevel != "" {
				level = s.logLevel
			}
			log := logging.New(cmd.ErrOrStderr(), level)
			log.Debug().Str("config", s.configPath).Msg("settings loaded")
			s.app = NewApp(cfg, log)
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&s.configPath, "config", "", "TOML settings file")
	cmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		typesCmd(),
		describeCmd(s),
		profileCmd(s),
		plotCmd(s),
		extrudeCmd(s),
		evalCmd(s),
		checkCmd(s),
		catalogCmd(s),
	)
	return cmd
}
