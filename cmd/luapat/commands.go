package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/coregx/luapat"
)

func (c *cli) findCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "find SUBJECT PATTERN",
		Short: "Print the bounds and captures of the first match",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			r, err := c.engine.Find(args[0], args[1], c.options()...)
			if err != nil {
				return err
			}
			if r == nil {
				return errNoMatch
			}
			fields := []string{strconv.Itoa(r.Start), strconv.Itoa(r.End)}
			c.println(append(fields, captureStrings(r.Captures)...))
			return nil
		},
	}
	cmd.Flags().BoolVar(&c.plain, "plain", false, "treat PATTERN as a literal substring")
	return cmd
}

func (c *cli) matchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match SUBJECT PATTERN",
		Short: "Print the captures of the first match",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			caps, err := c.engine.Match(args[0], args[1], c.options()...)
			if err != nil {
				return err
			}
			if caps == nil {
				return errNoMatch
			}
			c.println(captureStrings(caps))
			return nil
		},
	}
}

func (c *cli) gmatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "gmatch SUBJECT PATTERN",
		Short: "Print the captures of every match, one match per line",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			it := c.engine.GMatch(args[0], args[1], c.options()...)
			for caps, err := range it.All() {
				if err != nil {
					return err
				}
				c.println(captureStrings(caps))
			}
			if it.Count() == 0 {
				return errNoMatch
			}
			return nil
		},
	}
}

func (c *cli) gsubCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gsub SUBJECT PATTERN REPL",
		Short: "Print the subject with matches replaced, and the number of matches",
		Long: `Replace the matches of PATTERN in SUBJECT with the template REPL.
In REPL, %0 is the whole match, %1 to %9 are captures and %% is a percent sign.`,
		Args: cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.options()
			if cmd.Flags().Changed("max") {
				opts = append(opts, luapat.WithMaxReplacements(c.maxRepl))
			}
			out, n, err := c.engine.GSub(args[0], args[1], luapat.Template(args[2]), opts...)
			if err != nil {
				return err
			}
			c.println([]string{out, strconv.Itoa(n)})
			return nil
		},
	}
	cmd.Flags().IntVar(&c.maxRepl, "max", 0, "replace at most this many matches")
	return cmd
}

func (c *cli) println(fields []string) {
	fmt.Fprintln(c.stdout, strings.Join(fields, "\t"))
}

func captureStrings(caps []luapat.Capture) []string {
	out := make([]string, len(caps))
	for i, cp := range caps {
		out[i] = cp.String()
	}
	return out
}
