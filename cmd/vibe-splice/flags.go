package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// bindFlags binds config keys to the running command's flags. Binding
// happens at run time so that commands sharing a key do not override each
// other's flags.
func bindFlags(cmd *cobra.Command, keys map[string]string) error {
	for key, flag := range keys {
		if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
			return fmt.Errorf("bind flag %s: %w", flag, err)
		}
	}
	return nil
}

// requireKeys returns a usage error naming the first unset key.
func requireKeys(keys map[string]string) error {
	for key, flag := range keys {
		if viper.GetString(key) == "" {
			return &usageError{fmt.Errorf("--%s is required (or set %s in the config file)", flag, key)}
		}
	}
	return nil
}
