package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func newKindsCmd(c *cli) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "kinds",
		Short: "List the pet types available for adoption",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := c.loadCatalog(cmd.Context(), c.commandLogger())
			if err != nil {
				return err
			}
			for _, k := range catalog.Kinds() {
				if !verbose {
					fmt.Fprintln(c.stdout, k.Label())
					continue
				}
				fmt.Fprintf(c.stdout, "%s  %s\n", k.Label(), strings.Join(catalog.Phrases(k.Name), " | "))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show phrases")
	return cmd
}
