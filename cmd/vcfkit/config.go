package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config keys
const (
	keyLogLevel  = "log.level"
	keyWorkers   = "load.workers"
	keyIndexPath = "index.path"
)

// initConfig reads ~/.vcfkit.yaml (or cfgFile) and VCFKIT_* environment
// variables, and binds the persistent flags so flags win over both.
func initConfig(cmd *cobra.Command, cfgFile string) error {
	viper.SetEnvPrefix("vcfkit")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault(keyLogLevel, "warn")
	viper.SetDefault(keyWorkers, 1)
	if home, err := os.UserHomeDir(); err == nil {
		viper.SetDefault(keyIndexPath, filepath.Join(home, ".vcfkit", "index.duckdb"))
	}

	flags := cmd.Root().PersistentFlags()
	if err := viper.BindPFlag(keyLogLevel, flags.Lookup("log-level")); err != nil {
		return err
	}
	if err := viper.BindPFlag(keyWorkers, flags.Lookup("workers")); err != nil {
		return err
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".vcfkit")
		viper.SetConfigType("yaml")
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) && cfgFile == "" {
			return nil
		}
		return fmt.Errorf("reading config: %w", err)
	}
	return nil
}

func configString(key string) string { return viper.GetString(key) }

// configKeys maps each settable key to the parser that turns a command-line
// value into the typed value written to the config file.
var configKeys = map[string]func(string) (any, error){
	keyLogLevel: func(v string) (any, error) {
		lvl, err := zapcore.ParseLevel(v)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q", v)
		}
		return lvl.String(), nil
	},
	keyWorkers: func(v string) (any, error) {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%s must be a positive integer, got %q", keyWorkers, v)
		}
		return n, nil
	},
	keyIndexPath: func(v string) (any, error) {
		if strings.TrimSpace(v) == "" {
			return nil, fmt.Errorf("%s must not be empty", keyIndexPath)
		}
		return v, nil
	},
}

func knownConfigKey(key string) error {
	if _, ok := configKeys[key]; ok {
		return nil
	}
	keys := make([]string, 0, len(configKeys))
	for k := range configKeys {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return &usageError{msg: fmt.Sprintf("unknown config key %q (known: %s)", key, strings.Join(keys, ", "))}
}

// newLogger builds a console logger on stderr at the given level.
func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.DisableStacktrace = true
	return cfg.Build()
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vcfkit configuration",
		Long:  "Show, get, or set configuration values. Config is stored in ~/.vcfkit.yaml.",
		Example: `  vcfkit config                          # show all config
  vcfkit config set load.workers 4       # parse with 4 goroutines
  vcfkit config get index.path           # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd)
		},
	}

	cmd.AddCommand(newConfigSetCmd())
	cmd.AddCommand(newConfigGetCmd())

	return cmd
}

func newConfigSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	}
}

func newConfigGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigGet(cmd, args[0])
		},
	}
}

func runConfigShow(cmd *cobra.Command) error {
	settings := make(map[string]any, len(configKeys))
	for k := range configKeys {
		if v := viper.Get(k); v != nil {
			settings[k] = v
		}
	}

	out, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if f := viper.ConfigFileUsed(); f != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", f)
	}
	fmt.Fprint(cmd.OutOrStdout(), string(out))
	return nil
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	if err := knownConfigKey(key); err != nil {
		return err
	}
	v, err := configKeys[key](value)
	if err != nil {
		return &usageError{msg: err.Error()}
	}
	viper.Set(key, v)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("cannot determine home directory: %w", err)
		}
		cfgFile = filepath.Join(home, ".vcfkit.yaml")
	}

	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v in %s\n", key, v, cfgFile)
	return nil
}

func runConfigGet(cmd *cobra.Command, key string) error {
	if err := knownConfigKey(key); err != nil {
		return err
	}
	val := viper.Get(key)
	if val == nil {
		return fmt.Errorf("key %q is not set", key)
	}
	fmt.Fprintln(cmd.OutOrStdout(), val)
	return nil
}
