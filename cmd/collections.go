package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dashboard.GO/client"
	"dashboard.GO/client/identity"
	"dashboard.GO/client/maestro"
)

var (
	listUser     string
	listPassword string
	listPage     int
	listPageSize int
)

var collectionsListCmd = &cobra.Command{
	Use:   "collections:list",
	Short: "Sign in upstream and print one page of collections",
	RunE: func(c *cobra.Command, args []string) error {
		rt, err := openRuntime()
		if err != nil {
			return err
		}
		cfg := rt.Config
		hc := client.NewHTTPClient(cfg.HTTPTimeout)

		id := identity.New(identity.Config{
			Variant:      identity.Variant(cfg.IdentityVariant),
			URL:          cfg.IdentityURL,
			ClientID:     cfg.MaestroClientID,
			ClientSecret: cfg.MaestroClientSecret,
		}, hc)
		creds, err := id.Login(c.Context(), listUser, listPassword)
		if err != nil {
			return err
		}

		mc := maestro.New(hc, maestro.Options{BaseURL: cfg.MaestroURL, WarehouseOverride: cfg.WarehouseOverride})
		res, err := mc.GetCollections(c.Context(), creds.AccessToken, listPage, listPageSize)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(c.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tCONDITIONS\tSALES CHANNEL")
		for _, col := range res.Data {
			row := col.Row()
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", row.ID, row.Title, strings.Join(row.ProductConditions, "; "), row.SalesChannel)
		}
		if err := w.Flush(); err != nil {
			return err
		}
		fmt.Fprintf(c.OutOrStdout(), "page %d/%d, %d total\n", res.Meta.Page, res.Meta.TotalPages, res.Meta.TotalCount)
		return nil
	},
}

func init() {
	collectionsListCmd.Flags().StringVarP(&listUser, "user", "u", "", "Upstream username")
	collectionsListCmd.Flags().StringVarP(&listPassword, "password", "p", "", "Upstream password")
	collectionsListCmd.Flags().IntVar(&listPage, "page", maestro.DefaultPage, "Page number")
	collectionsListCmd.Flags().IntVar(&listPageSize, "page-size", maestro.DefaultPageSize, "Page size")
	_ = collectionsListCmd.MarkFlagRequired("user")
	_ = collectionsListCmd.MarkFlagRequired("password")
	rootCmd.AddCommand(collectionsListCmd)
}
