package cmd

import (
	"bytes"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const levelTrace = slog.Level(-8)

var (
	configFiles    []string
	level, version string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:          "phpmodelgen",
	Short:        "generate PHP classes from Go types",
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVarP(&level, "level", "l", "info", "log level (trace, debug, info, warn, error, debug+1, etc)")
	rootCmd.PersistentFlags().StringSliceVar(&configFiles, "config", []string{}, "config file(s) - multiple config files are merged with last specified file having highest priority")
}

// parseLevel accepts every slog level name plus "trace".
func parseLevel(s string) (slog.Level, error) {
	var ll slog.Level
	if strings.EqualFold(s, "trace") {
		return levelTrace, nil
	}
	if err := (&ll).UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return ll, nil
}

// newLogger writes text to a terminal and JSON otherwise.
func newLogger(w io.Writer, fd uintptr, ll slog.Level) *slog.Logger {
	ho := &slog.HandlerOptions{
		AddSource: false,
		Level:     ll,
	}
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return slog.New(slog.NewTextHandler(w, ho))
	}
	return slog.New(slog.NewJSONHandler(w, ho))
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	ll, err := parseLevel(level)
	if err != nil {
		cobra.CheckErr("invalid log level: " + level)
	}
	l := newLogger(os.Stderr, os.Stderr.Fd(), ll)
	slog.SetDefault(l)

	if len(configFiles) > 0 {
		// Use config file from the flag.
		viper.SetConfigFile(configFiles[0])
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("/etc/phpmodelgen")
		viper.SetConfigType("yaml")
		viper.SetConfigName("phpmodelgen")
	}

	viper.SetEnvPrefix("PHPMODELGEN")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv() // read in environment variables that match

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		l.With("config", viper.ConfigFileUsed()).Debug("using config file(s)")
	} else {
		l.With("error", err, "config", viper.ConfigFileUsed()).Debug("unable to use config file(s)")
	}
	if len(configFiles) > 1 {
		for _, file := range configFiles[1:] {
			if configBytes, err := os.ReadFile(file); err == nil {
				if err = viper.MergeConfig(bytes.NewReader(configBytes)); err != nil {
					l.With("error", err, "file", file).Warn("failed to merge config file")
				} else {
					l.With("file", file).Debug("merged config file")
				}
			}
		}
	}
	if len(version) > 0 {
		viper.Set("version", version)
	}

	// a config level applies unless --level was given
	if llstr := viper.GetString("common.log.level"); llstr != "" && !rootCmd.PersistentFlags().Changed("level") {
		cll, err := parseLevel(llstr)
		if err != nil {
			cobra.CheckErr("invalid log level: " + llstr)
		}
		slog.SetDefault(newLogger(os.Stderr, os.Stderr.Fd(), cll))
	}
}
