package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var errNoActivePet = errors.New("no active pet, adopt one first")

func newSpeakCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "speak",
		Short: "Print a phrase from the active pet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSession(cmd.Context(), func(s *session) error {
				if _, ok := s.pets.Active(); !ok {
					return errNoActivePet
				}
				s.pets.Speak()
				return nil
			})
		},
	}
}
