package commands

import (
	"os"

	"spacia-portal/internal/session"
	"spacia-portal/pkg/config"
	"spacia-portal/pkg/logger"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the spaciactl command tree. env is filled in before any subcommand runs.
func NewRootCmd() *cobra.Command {
	var (
		configPath  string
		sessionPath string
		logLevel    string
	)
	env := &Env{}

	rootCmd := &cobra.Command{
		Use:           "spaciactl",
		Short:         "Browse and manage SPACIA rental listings",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.Log.Level = logLevel
			}
			logger.InitLogger(cmd.ErrOrStderr(), cfg.Log.Level)

			if sessionPath == "" {
				if sessionPath, err = session.DefaultFilePath(); err != nil {
					return err
				}
			}
			*env = *NewEnv(cfg, sessionPath, cmd.OutOrStdout())
			return nil
		},
	}

	defaultConfig := os.Getenv("CONFIG_PATH")
	if defaultConfig == "" {
		defaultConfig = "configs/config.yaml"
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", defaultConfig, "path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&sessionPath, "session-file", "", "where login sessions are kept (default ~/.spacia/session.json)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "DEBUG, INFO, WARN or ERROR")

	rootCmd.AddCommand(
		LoginCmd(env),
		LogoutCmd(env),
		RegisterCmd(env),
		WhoamiCmd(env),
		MasterCmd(env),
		PropertiesCmd(env),
	)
	return rootCmd
}
