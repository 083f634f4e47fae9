package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/chazu/weldgroove/pkg/groove"
	"github.com/chazu/weldgroove/pkg/quantity"
)

// grooveFlags are shared by the commands that build a single groove.
type grooveFlags struct {
	params []string
	code   string
}

func (f *grooveFlags) register(c *cobra.Command) {
	c.Flags().StringArrayVarP(&f.params, "param", "p", nil, "parameter as key=quantity, e.g. t=\"9 mm\" (repeatable)")
	c.Flags().StringVar(&f.code, "code", "", "ISO 9692-1 code number")
}

func typesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered groove types",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, name := range groove.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func describeCmd(s *session) *cobra.Command {
	var f grooveFlags

	c := &cobra.Command{
		Use:   "describe TYPE",
		Short: "Show a groove type's parameters, or the values of a built groove",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			if len(f.params) == 0 && f.code == "" {
				return describeType(cmd, args[0])
			}
			g, err := s.app.BuildGroove(args[0], f.params, f.code)
			if err != nil {
				return err
			}
			fmt.Fprintln(out, g.Type())
			for _, p := range groove.ParamStrings(g) {
				fmt.Fprintf(out, "  %s\n", p)
			}
			fmt.Fprintf(out, "  %s=%s\n", groove.CodeNumberField, strings.Join(g.Codes(), ","))
			return nil
		},
	}
	f.register(c)
	return c
}

func describeType(cmd *cobra.Command, grooveType string) error {
	specs, err := groove.Specs(grooveType)
	if err != nil {
		return err
	}
	codes, err := groove.ValidCodes(grooveType)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, grooveType)
	for _, p := range specs {
		note := "required"
		switch {
		case p.Default != nil:
			note = "default " + p.Default.String()
		case !p.Required:
			note = "optional"
		}
		fmt.Fprintf(out, "  %-6s %-22s %-7s %s\n", p.Name, p.Key, p.Dim, note)
	}
	fmt.Fprintf(out, "  codes: %s\n", strings.Join(codes, " "))
	return nil
}

func profileCmd(s *session) *cobra.Command {
	var f grooveFlags

	c := &cobra.Command{
		Use:   "profile TYPE",
		Short: "Print the vertices of a groove's cross-section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := s.app.BuildGroove(args[0], f.params, f.code)
			if err != nil {
				return err
			}
			p, err := s.app.Profile(g)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for i, pts := range p.Points() {
				fmt.Fprintf(out, "shape %d:\n", i)
				for _, pt := range pts {
					fmt.Fprintf(out, "  %g %g\n", noNegZero(pt.X), noNegZero(pt.Y))
				}
			}
			return nil
		},
	}
	f.register(c)
	return c
}

func plotCmd(s *session) *cobra.Command {
	var f grooveFlags
	var out, xLabel, yLabel string

	c := &cobra.Command{
		Use:   "plot TYPE",
		Short: "Plot a groove's cross-section to SVG or DXF",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := s.app.BuildGroove(args[0], f.params, f.code)
			if err != nil {
				return err
			}
			if err := s.app.Plot(g, out, xLabel, yLabel); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	f.register(c)
	c.Flags().StringVarP(&out, "out", "o", "", "output file (.svg or .dxf)")
	c.Flags().StringVar(&xLabel, "xlabel", "", "x axis label (default \"x in mm\")")
	c.Flags().StringVar(&yLabel, "ylabel", "", "y axis label (default \"y in mm\")")
	_ = c.MarkFlagRequired("out")
	return c
}

func extrudeCmd(s *session) *cobra.Command {
	var f grooveFlags
	var out, length string

	c := &cobra.Command{
		Use:   "extrude TYPE",
		Short: "Sweep a groove along a straight seam and write an STL solid",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := s.app.BuildGroove(args[0], f.params, f.code)
			if err != nil {
				return err
			}
			l, err := quantity.Parse(length)
			if err != nil {
				return fmt.Errorf("--length: %w", err)
			}
			if err := s.app.Extrude(g, l, out); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}
	f.register(c)
	c.Flags().StringVarP(&out, "out", "o", "", "output STL file")
	c.Flags().StringVar(&length, "length", "100 mm", "seam length")
	_ = c.MarkFlagRequired("out")
	return c
}

// noNegZero maps -0 to 0 so mirrored vertices print cleanly.
func noNegZero(v float64) float64 {
	if v == 0 {
		return 0
	}
	return v
}
