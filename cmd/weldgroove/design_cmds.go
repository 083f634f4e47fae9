package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/chazu/weldgroove/pkg/design"
	"github.com/chazu/weldgroove/pkg/groove"
	"github.com/chazu/weldgroove/pkg/quantity"
)

func evalCmd(s *session) *cobra.Command {
	var out, stlDir, seamLength string

	c := &cobra.Command{
		Use:   "eval SCRIPT",
		Short: "Evaluate a groove script, validate it and optionally write the design document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}

			result := s.app.Evaluate(string(source))
			for _, w := range result.Warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "%s: warning: %s\n", args[0], w.Message)
			}
			if len(result.Errors) > 0 {
				for _, e := range result.Errors {
					if e.Line > 0 {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s:%d: %s\n", args[0], e.Line, e.Message)
					} else {
						fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", args[0], e.Message)
					}
				}
				return fmt.Errorf("%s: %d error(s)", args[0], len(result.Errors))
			}

			w := cmd.OutOrStdout()
			for _, o := range result.Outlines {
				fmt.Fprintf(w, "%s (%s): %d shapes\n", o.Name, o.Type, len(o.Polylines))
			}
			for _, e := range result.Design.Workpieces() {
				fmt.Fprintf(w, "%s (workpiece)\n", e.Name)
			}
			if stlDir != "" {
				length, err := quantity.Parse(seamLength)
				if err != nil {
					return fmt.Errorf("--seam-length: %w", err)
				}
				paths, err := s.app.WriteSeams(result.Design, length, stlDir)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintf(w, "wrote %s\n", p)
				}
			}
			if out == "" {
				return nil
			}
			return writeDesign(out, result.Design)
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", "write the design as a tagged YAML document")
	c.Flags().StringVar(&stlDir, "stl-dir", "", "write one STL seam per groove into this directory")
	c.Flags().StringVar(&seamLength, "seam-length", "100 mm", "seam length used with --stl-dir")
	return c
}

func checkCmd(s *session) *cobra.Command {
	return &cobra.Command{
		Use:   "check DOC",
		Short: "Read a design document and validate it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			d, err := design.Read(f)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			res := design.Check(d, s.app.profileOptions()...)
			for _, w := range res.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), w.Error())
			}
			for _, e := range res.Errors {
				fmt.Fprintln(cmd.ErrOrStderr(), e.Error())
			}
			if !res.OK() {
				return fmt.Errorf("%s: %d error(s)", args[0], len(res.Errors))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "OK (%d grooves, %d workpieces)\n", len(d.Grooves()), len(d.Workpieces()))
			return nil
		},
	}
}

func catalogCmd(s *session) *cobra.Command {
	var out string

	c := &cobra.Command{
		Use:   "catalog",
		Short: "Write a design document with one example groove per code family",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d := design.New()
			for _, e := range groove.Catalog() {
				d.AddGroove(e.Name, e.Groove)
			}
			if out != "" {
				return writeDesign(out, d)
			}
			return design.Write(cmd.OutOrStdout(), d)
		},
	}
	c.Flags().StringVarP(&out, "out", "o", "", "output file (default stdout)")
	return c
}

func writeDesign(path string, d *design.Design) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := design.Write(f, d); err != nil {
		return fmt.Errorf("write design: %w", err)
	}
	return nil
}
