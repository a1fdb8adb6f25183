package main

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/inodb/vibe-splice/internal/store"
)

// valueKind is how a config value is parsed before it is written.
type valueKind int

const (
	kindString valueKind = iota
	kindBool
	kindCount
	kindDuration
	kindList
	kindDriver
)

// Keys not listed here are plain strings.
var keyKinds = map[string]valueKind{
	"verbose":                 kindBool,
	"data.metadata_no_header": kindBool,
	"workers":                 kindCount,
	"memo_size":               kindCount,
	"timeout":                 kindDuration,
	"chromosomes":             kindList,
	"store.driver":            kindDriver,
}

// configKeys maps every settable key to the flag it backs.
func configKeys() map[string]string {
	keys := map[string]string{"verbose": "verbose"}
	for _, m := range []map[string]string{encodeKeys, statsKeys, showKeys} {
		maps.Copy(keys, m)
	}
	return keys
}

// checkKey rejects keys no command reads. A flag name given in place of its
// key gets the key suggested.
func checkKey(key string) error {
	keys := configKeys()
	if _, ok := keys[key]; ok {
		return nil
	}
	for k, flag := range keys {
		if flag == key {
			return &usageError{fmt.Errorf("unknown config key %q (did you mean %q?)", key, k)}
		}
	}
	names := make([]string, 0, len(keys))
	for k := range keys {
		names = append(names, k)
	}
	slices.Sort(names)
	return &usageError{fmt.Errorf("unknown config key %q; known keys: %s",
		key, strings.Join(names, ", "))}
}

// parseValue converts a command-line string into the type stored for key.
func parseValue(key, value string) (any, error) {
	switch keyKinds[key] {
	case kindBool:
		switch strings.ToLower(value) {
		case "yes", "on":
			return true, nil
		case "no", "off":
			return false, nil
		}
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %q is not a boolean", key, value)
		}
		return b, nil
	case kindCount:
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%s: %q is not a non-negative integer", key, value)
		}
		return n, nil
	case kindDuration:
		d, err := time.ParseDuration(value)
		if err != nil || d < 0 {
			return nil, fmt.Errorf("%s: %q is not a duration (e.g. 90s, 10m)", key, value)
		}
		return d.String(), nil
	case kindList:
		var items []string
		for _, v := range strings.Split(value, ",") {
			if v = strings.TrimSpace(v); v != "" {
				items = append(items, v)
			}
		}
		return items, nil
	case kindDriver:
		if value != store.DriverDuckDB && value != store.DriverSQLite {
			return nil, fmt.Errorf("%s: %q must be %s or %s", key, value, store.DriverDuckDB, store.DriverSQLite)
		}
		return value, nil
	}
	return value, nil
}

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage vibe-splice configuration",
		Long: `Show, get, or set configuration values stored in ~/.vibe-splice.yaml.
Keys mirror the command flags, e.g. data.metadata for --metadata and
memo_size for --memo-size. Flags given on the command line take precedence.`,
		Example: `  vibe-splice config                                    # show all config
  vibe-splice config set data.metadata human_length.tsv  # default metadata table
  vibe-splice config set chromosomes 1,2,X               # default chromosome filter
  vibe-splice config get workers                         # get a value`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings := viper.AllSettings()
			if len(settings) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "# No configuration set. Config file: ~/.vibe-splice.yaml")
				return nil
			}
			out, err := yaml.Marshal(settings)
			if err != nil {
				return fmt.Errorf("marshaling config: %w", err)
			}
			fmt.Fprint(cmd.OutOrStdout(), string(out))
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigSet(cmd, args[0], args[1])
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "get <key>",
		Short: "Get a configuration value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkKey(args[0]); err != nil {
				return err
			}
			val := viper.Get(args[0])
			if val == nil {
				return fmt.Errorf("key %q is not set", args[0])
			}
			fmt.Fprintln(cmd.OutOrStdout(), val)
			return nil
		},
	})

	return cmd
}

func runConfigSet(cmd *cobra.Command, key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	v, err := parseValue(key, value)
	if err != nil {
		return &usageError{err}
	}
	viper.Set(key, v)

	cfgFile := viper.ConfigFileUsed()
	if cfgFile == "" {
		if cfgFile, err = defaultConfigPath(); err != nil {
			return err
		}
	}
	if err := viper.WriteConfigAs(cfgFile); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %v in %s\n", key, v, cfgFile)
	return nil
}
