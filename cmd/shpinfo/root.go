package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/beetlebugorg/shapefile/internal/logger"
)

const (
	flagConfig     = "config"
	flagLogLevel   = "log-level"
	flagLogJSON    = "log-json"
	flagWorkers    = "workers"
	flagCacheBytes = "cache-bytes"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "shpinfo",
	Short:         "Inspect shapefile geometry, projection files and WKT/WKB text",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := initConfig(); err != nil {
			return err
		}
		l, err := logger.New(viper.GetString(flagLogLevel), viper.GetBool(flagLogJSON))
		if err != nil {
			return errors.Wrap(err, "logger")
		}
		logger.Set(l)
		return nil
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, flagConfig, "", "config file (yaml, toml or json)")
	flags.String(flagLogLevel, "warn", "log level: debug, info, warn or error")
	flags.Bool(flagLogJSON, false, "log as JSON")
	flags.Int(flagWorkers, 0, "decode workers, 0 for one per CPU")
	flags.Int64(flagCacheBytes, 64<<20, "decoded record cache size in bytes")
	bindFlags(flags)

	rootCmd.AddCommand(infoCmd, wktCmd, queryCmd, prjCmd, importCmd)
}

func bindFlags(flags *pflag.FlagSet) {
	flags.VisitAll(func(f *pflag.Flag) {
		if f.Name == flagConfig {
			return
		}
		_ = viper.BindPFlag(f.Name, f)
	})
}

// initConfig reads the config file, if any, and maps SHPINFO_* variables
// onto flag names.
func initConfig() error {
	viper.SetEnvPrefix("SHPINFO")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if cfgFile == "" {
		return nil
	}
	viper.SetConfigFile(cfgFile)
	if err := viper.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "read config %s", cfgFile)
	}
	return nil
}
