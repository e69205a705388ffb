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
	"github.com/gnames/kardex/pkg/dashboard"
	"github.com/spf13/cobra"
)

// getDashboardCmd returns the dashboard command.
func getDashboardCmd() *cobra.Command {
	dashboardCmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show demographics, birthdays, tenure and alerts",
		Long: `Build the dashboard of the active roster for a reference date.

Archived families (with a departure date) and their members are left out.
The reference date defaults to today.

Examples:
  kardex dashboard
  kardex dashboard --date 2024-02-29
  kardex dashboard --date 29/02/2024 --format json
  kardex dashboard --format pdf -o dashboard.pdf`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := dashboardRunE(cmd)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	dashboardCmd.Flags().StringP("date", "d", "",
		"reference date, YYYY-MM-DD or DD/MM/YYYY (default today)")
	dashboardCmd.Flags().StringP("format", "f", "text",
		"output format: text, json, csv or pdf")
	dashboardCmd.Flags().StringP("output", "o", "",
		"write to this file instead of the terminal")

	return dashboardCmd
}

func dashboardRunE(cmd *cobra.Command) error {
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
	if err = runDashboard(cmd.Context(), cfg, w, ref, format); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func runDashboard(
	ctx context.Context,
	c *config.Config,
	w io.Writer,
	ref time.Time,
	format ioreport.Format,
) error {
	st, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer st.Close()

	r, err := st.ActiveRoster(ctx)
	if err != nil {
		return err
	}

	snap, err := dashboard.Assemble(r, ref, c.CapacityPolicy())
	if err != nil {
		return err
	}

	return ioreport.WriteSnapshot(w, snap, format)
}
