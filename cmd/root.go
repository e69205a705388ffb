/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/internal/iofs"
	"github.com/gnames/kardex/internal/iologger"
	app "github.com/gnames/kardex/pkg"
	"github.com/gnames/kardex/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	cfg     *config.Config
)

// getRootCmd returns the root command with all subcommands attached.
// Every call builds a fresh command tree.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "kardex",
		Short:   "kardex turns a shelter roster into a dashboard and alerts",
		Long: `kardex keeps the roster of a social hotel: families, the rooms they
occupy and their members. From the active roster it builds a dashboard:

  - Demographics: counts by sex and age bucket, oldest and youngest
    adults and children
  - Birthdays: today, within the next or last week and month
  - Tenure: families with the longest stays and the recent arrivals
  - Alerts: overcrowded rooms, women without an adult man in their
    family, infants under one year

Data is kept in SQLite by default or in PostgreSQL.
Configuration: ~/.config/kardex/config.yaml and KARDEX_* variables.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "kardex version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	rootCmd.Flags().BoolP("version", "V", false, "version for kardex")

	rootCmd.PersistentFlags().String("driver", "",
		"storage backend: sqlite or postgres")
	rootCmd.PersistentFlags().String("db", "",
		"SQLite database file")

	rootCmd.AddCommand(
		getCreateCmd(),
		getImportCmd(),
		getDashboardCmd(),
		getFamiliesCmd(),
		getResidentsCmd(),
		getArchiveCmd(),
		getDeleteCmd(),
		getOptimizeCmd(),
	)

	return rootCmd
}

func bootstrap(cmd *cobra.Command, _ []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	if err = iologger.Init(config.LogDir(homeDir), config.New().Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	cfg.Update(cfgViper.ToOptions())
	cfg.Update(flagOptions(cmd))

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"driver", cfg.Database.Driver,
	)
	return nil
}

// flagOptions converts explicitly set persistent flags to options.
func flagOptions(cmd *cobra.Command) []config.Option {
	var res []config.Option
	flags := cmd.Flags()
	if flags.Changed("driver") {
		s, _ := flags.GetString("driver")
		res = append(res, config.OptDatabaseDriver(s))
	}
	if flags.Changed("db") {
		s, _ := flags.GetString("db")
		res = append(res, config.OptDatabasePath(s))
	}
	return res
}

func runRoot(cmd *cobra.Command, _ []string) error {
	versionFlag(cmd)
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once.
func Execute() {
	if err := getRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadConfigError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("KARDEX")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Database configuration
	v.BindEnv("database.driver", "KARDEX_DATABASE_DRIVER")
	v.BindEnv("database.path", "KARDEX_DATABASE_PATH")
	v.BindEnv("database.host", "KARDEX_DATABASE_HOST")
	v.BindEnv("database.port", "KARDEX_DATABASE_PORT")
	v.BindEnv("database.user", "KARDEX_DATABASE_USER")
	v.BindEnv("database.password", "KARDEX_DATABASE_PASSWORD")
	v.BindEnv("database.database", "KARDEX_DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "KARDEX_DATABASE_SSL_MODE")

	// Capacity policy
	v.BindEnv("policy.large_rooms", "KARDEX_POLICY_LARGE_ROOMS")
	v.BindEnv("policy.large_room_capacity", "KARDEX_POLICY_LARGE_ROOM_CAPACITY")
	v.BindEnv("policy.room_capacity", "KARDEX_POLICY_ROOM_CAPACITY")

	// Log configuration
	v.BindEnv("log.level", "KARDEX_LOG_LEVEL")
	v.BindEnv("log.format", "KARDEX_LOG_FORMAT")
	v.BindEnv("log.destination", "KARDEX_LOG_DESTINATION")

	v.AutomaticEnv()
}
