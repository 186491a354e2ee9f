package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/code4food/internal/pet"
)

func newAdoptCmd(c *cli) *cobra.Command {
	var kind, name string

	cmd := &cobra.Command{
		Use:   "adopt",
		Short: "Adopt a new pet and make it active",
		Long: `Adopt a pet of the given kind at full satiety. The new pet becomes
the active one.

Example:
  $ code4food adopt --kind Dog --name Rex
  Take good care of 🐕 Rex now!`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if strings.TrimSpace(name) == "" {
				return pet.ErrEmptyName
			}

			return c.withSession(cmd.Context(), func(s *session) error {
				k, err := findKind(s.pets.Catalog(), kind)
				if err != nil {
					return err
				}
				_, err = s.pets.AdoptKind(k.Name, name)
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", "Pet type, see the kinds command")
	cmd.Flags().StringVarP(&name, "name", "n", "", "Name of the new pet")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

// findKind looks a kind up by name, ignoring case.
func findKind(catalog *pet.Catalog, name string) (pet.Kind, error) {
	name = strings.TrimSpace(name)
	if k, ok := catalog.Lookup(name); ok {
		return k, nil
	}
	for _, k := range catalog.Kinds() {
		if strings.EqualFold(k.Name, name) {
			return k, nil
		}
	}
	return pet.Kind{}, fmt.Errorf("%w: %q", pet.ErrUnknownKind, name)
}
