package cmd

import (
	"github.com/spf13/cobra"

	"dashboard.GO/core/registry"
)

// Register adds a command. Call from init() in custom packages. Panics if registry is locked.
func Register(c *cobra.Command) {
	if registry.GlobalRegistry.IsLocked(registry.KeyRegistryCmd) {
		panic("cmd/registry: locked (register only during init before Apply)")
	}
	list := append(Registered(), c)
	registry.GlobalRegistry.SetGlobal(registry.KeyRegistryCmd, list)
}

// Registered returns the commands added through Register.
func Registered() []*cobra.Command {
	if v, ok := registry.GlobalRegistry.GetGlobal(registry.KeyRegistryCmd); ok && v != nil {
		return v.([]*cobra.Command)
	}
	return nil
}

// Apply adds all registered commands to root. Locks the cmd registry (immutable after).
func Apply() {
	for _, c := range Registered() {
		rootCmd.AddCommand(c)
	}
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
}
