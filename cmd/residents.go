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
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/internal/ioreport"
	"github.com/gnames/kardex/pkg/config"
	"github.com/gnames/kardex/pkg/store"
	"github.com/spf13/cobra"
)

// getResidentsCmd returns the residents command.
func getResidentsCmd() *cobra.Command {
	var filter store.PersonFilter

	residentsCmd := &cobra.Command{
		Use:   "residents",
		Short: "List and search residents",
		Long: `List residents with their family, rooms and age. Without flags all
members of active families are listed. Search flags narrow the list,
--archived searches members of departed families instead.

Examples:
  kardex residents
  kardex residents --family 12
  kardex residents --last dupont --room 5
  kardex residents --dob 15/06/1985 --archived
  kardex residents --date 2024-06-15 --format csv -o residents.csv`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := residentsRunE(cmd, filter)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	flags := residentsCmd.Flags()
	flags.String("family", "", "only members of this family ID")
	flags.StringVar(&filter.LastName, "last", "",
		"last name contains this text (case-insensitive)")
	flags.StringVar(&filter.FirstName, "first", "",
		"first name contains this text (case-insensitive)")
	flags.String("dob", "", "born on this date")
	flags.String("arrival", "", "family arrived on this date")
	flags.StringVarP(&filter.Room, "room", "r", "",
		"room identifier contains this text")
	flags.StringVarP(&filter.Phone, "phone", "p", "",
		"phone number contains this text")
	flags.BoolVarP(&filter.Archived, "archived", "A", false,
		"search members of departed families")
	flags.StringP("date", "d", "",
		"reference date for ages, YYYY-MM-DD or DD/MM/YYYY (default today)")
	flags.StringP("format", "f", "text", "output format: text, json, csv or pdf")
	flags.StringP("output", "o", "", "write to this file instead of the terminal")

	return residentsCmd
}

func residentsRunE(cmd *cobra.Command, filter store.PersonFilter) error {
	var err error
	if id, _ := cmd.Flags().GetString("family"); id != "" {
		if filter.FamilyID, err = familyID(id); err != nil {
			return err
		}
	}
	if filter.DOB, err = dateFlag(cmd, "dob"); err != nil {
		return err
	}
	if filter.Arrival, err = dateFlag(cmd, "arrival"); err != nil {
		return err
	}
	ref, err := refDate(cmd, "date")
	if err != nil {
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
	if err = runResidents(cmd.Context(), cfg, w, filter, ref, format); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func runResidents(
	ctx context.Context,
	c *config.Config,
	w io.Writer,
	filter store.PersonFilter,
	ref time.Time,
	format ioreport.Format,
) error {
	st, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer st.Close()

	rr, err := st.Residents(ctx, filter)
	if err != nil {
		return err
	}

	return ioreport.WriteResidents(w, rr, ref, format)
}
