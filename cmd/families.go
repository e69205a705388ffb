/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"io"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/internal/ioreport"
	"github.com/gnames/kardex/pkg/config"
	"github.com/gnames/kardex/pkg/store"
	"github.com/spf13/cobra"
)

// getFamiliesCmd returns the families command.
func getFamiliesCmd() *cobra.Command {
	var filter store.FamilyFilter

	familiesCmd := &cobra.Command{
		Use:   "families",
		Short: "List families",
		Long: `List families, latest arrivals first. Families with unknown arrival
come last.

Examples:
  kardex families
  kardex families --active --room 5
  kardex families --label dupont --from 2024-01-01 --to 31/12/2024`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := familiesRunE(cmd, filter)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	flags := familiesCmd.Flags()
	flags.StringVarP(&filter.Room, "room", "r", "",
		"room identifier contains this text")
	flags.StringVarP(&filter.Label, "label", "l", "",
		"label contains this text (case-insensitive)")
	flags.BoolVarP(&filter.ActiveOnly, "active", "a", false,
		"only families without departure date")
	flags.String("from", "", "arrived on or after this date")
	flags.String("to", "", "arrived on or before this date")
	flags.StringP("format", "f", "text", "output format: text, json, csv or pdf")
	flags.StringP("output", "o", "", "write to this file instead of the terminal")

	return familiesCmd
}

func familiesRunE(cmd *cobra.Command, filter store.FamilyFilter) error {
	var err error
	if filter.ArrivedFrom, err = dateFlag(cmd, "from"); err != nil {
		return err
	}
	if filter.ArrivedTo, err = dateFlag(cmd, "to"); err != nil {
		return err
	}

	s, _ := cmd.Flags().GetString("format")
	format, err := ioreport.ParseFormat(s)
	if err != nil {
		return err
	}

	w, closeOut, err := outputWriter(cmd)
	if err != nil {
		return err
	}
	if err = runFamilies(cmd.Context(), cfg, w, filter, format); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func runFamilies(
	ctx context.Context,
	c *config.Config,
	w io.Writer,
	filter store.FamilyFilter,
	format ioreport.Format,
) error {
	st, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer st.Close()

	ff, err := st.Families(ctx, filter)
	if err != nil {
		return err
	}

	return ioreport.WriteFamilies(w, ff, format)
}
