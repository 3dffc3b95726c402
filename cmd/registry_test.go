package cmd

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dashboard.GO/core/registry"
)

func TestRegistry_Register_Apply(t *testing.T) {
	t.Cleanup(func() { registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd) })
	out := &bytes.Buffer{}
	testCmd := &cobra.Command{
		Use: "test:registry",
		Run: func(c *cobra.Command, args []string) {
			out.WriteString("ok")
		},
	}
	Register(testCmd)
	Apply()

	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"-q", "test:registry"})
	require.NoError(t, rootCmd.Execute())
	assert.Equal(t, "ok", out.String())
}

func TestRegistry_RegisterAfterApplyPanics(t *testing.T) {
	registry.GlobalRegistry.Lock(registry.KeyRegistryCmd)
	t.Cleanup(func() { registry.GlobalRegistry.UnlockForTesting(registry.KeyRegistryCmd) })

	assert.Panics(t, func() { Register(&cobra.Command{Use: "late"}) })
}
