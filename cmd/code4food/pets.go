package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/dshills/code4food/internal/pet"
	"github.com/dshills/code4food/internal/renderer"
)

// Output formats for listing commands.
const (
	outputText = "text"
	outputJSON = "json"
	outputYAML = "yaml"
)

// petView is a pet as printed by the pets command.
type petView struct {
	ID      string  `json:"id" yaml:"id"`
	Name    string  `json:"name" yaml:"name"`
	Emoji   string  `json:"emoji" yaml:"emoji"`
	Type    string  `json:"type" yaml:"type"`
	Satiety float64 `json:"satiety" yaml:"satiety"`
	Band    string  `json:"band" yaml:"band"`
	Active  bool    `json:"active" yaml:"active"`
}

func newPetsCmd(c *cli) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "pets",
		Short: "List adopted pets",
		Long: `List every adopted pet with its satiety. The active pet is marked
with an asterisk.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.withSession(cmd.Context(), func(s *session) error {
				var activeID string
				if active, ok := s.pets.Active(); ok {
					activeID = active.ID
				}

				pets := s.pets.Pets()
				views := make([]petView, len(pets))
				for i, p := range pets {
					views[i] = petView{
						ID:      p.ID,
						Name:    p.Name,
						Emoji:   p.Emoji,
						Type:    p.TypeName,
						Satiety: p.Satiety,
						Band:    p.Band().String(),
						Active:  p.ID == activeID,
					}
				}
				return writePets(c.stdout, output, views)
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", outputText, "Output format (text, json, yaml)")
	return cmd
}

func writePets(w io.Writer, format string, views []petView) error {
	switch format {
	case outputJSON:
		data, err := json.MarshalIndent(views, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(views); err != nil {
			return err
		}
		return enc.Close()
	case outputText:
		return writePetsText(w, views)
	default:
		return fmt.Errorf("unknown output format %q (must be text, json or yaml)", format)
	}
}

func writePetsText(w io.Writer, views []petView) error {
	if len(views) == 0 {
		_, err := fmt.Fprintln(w, "No pets yet. Adopt one with: code4food adopt --kind Dog --name Rex")
		return err
	}

	gray := color.New(color.FgHiBlack).SprintFunc()
	for _, v := range views {
		marker := " "
		if v.Active {
			marker = color.New(color.Bold).Sprint("*")
		}
		band := bandColor(pet.Classify(v.Satiety)).Sprintf("%3d%% %s", int(math.Floor(v.Satiety)), v.Band)
		if _, err := fmt.Fprintf(w, "%s %s %s  %s  %s\n", marker, v.Emoji, v.Name, band, gray(v.ID)); err != nil {
			return err
		}
	}
	return nil
}

// bandColor returns the terminal colour for a satiety band, matching the
// status bar.
func bandColor(b pet.Band) *color.Color {
	c, err := renderer.ColorFromHex(b.Color())
	if err != nil {
		return color.New(color.Reset)
	}
	return color.RGB(int(c.R), int(c.G), int(c.B))
}
