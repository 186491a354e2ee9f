package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/code4food/internal/pet"
)

func newSwitchCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "switch <id-or-name>",
		Short: "Make another pet active",
		Long: `Make the pet with the given id or name active. Names are matched
ignoring case; use the id when several pets share a name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.withSession(cmd.Context(), func(s *session) error {
				id, err := resolvePet(s.pets.Pets(), args[0])
				if err != nil {
					return err
				}
				_, err = s.pets.SwitchTo(id)
				return err
			})
		},
	}
}

// errAmbiguousPet is returned when a name matches more than one pet.
var errAmbiguousPet = errors.New("more than one pet matches")

// resolvePet finds a pet id by exact id or case-insensitive name.
func resolvePet(pets []pet.Pet, ref string) (string, error) {
	ref = strings.TrimSpace(ref)
	for _, p := range pets {
		if p.ID == ref {
			return p.ID, nil
		}
	}

	var matches []pet.Pet
	for _, p := range pets {
		if strings.EqualFold(p.Name, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", pet.ErrPetNotFound, ref)
	case 1:
		return matches[0].ID, nil
	default:
		ids := make([]string, len(matches))
		for i, p := range matches {
			ids[i] = p.ID
		}
		return "", fmt.Errorf("%w %q: %s", errAmbiguousPet, ref, strings.Join(ids, ", "))
	}
}
