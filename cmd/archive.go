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
	"strconv"
	"time"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/config"
	"github.com/gnames/kardex/pkg/roster"
	"github.com/spf13/cobra"
)

// getArchiveCmd returns the archive command.
func getArchiveCmd() *cobra.Command {
	archiveCmd := &cobra.Command{
		Use:   "archive ID",
		Short: "Set the departure date of a family",
		Long: `Archive a family by setting its departure date. Archived families
and their members no longer appear in the dashboard.

Examples:
  kardex archive 12
  kardex archive 12 --date 15/06/2024`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := archiveRunE(cmd, args[0])
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	archiveCmd.Flags().StringP("date", "d", "",
		"departure date, YYYY-MM-DD or DD/MM/YYYY (default today)")

	return archiveCmd
}

func archiveRunE(cmd *cobra.Command, arg string) error {
	id, err := familyID(arg)
	if err != nil {
		return err
	}

	departure, err := refDate(cmd, "date")
	if err != nil {
		return err
	}

	return runArchive(cmd.Context(), cfg, id, departure)
}

func runArchive(
	ctx context.Context,
	c *config.Config,
	id int,
	departure time.Time,
) error {
	st, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer st.Close()

	if err = st.ArchiveFamily(ctx, id, departure); err != nil {
		return err
	}

	gn.Info("Family <em>%d</em> archived on <em>%s</em>",
		id, roster.FormatDate(&departure))
	return nil
}

// familyID parses a family ID argument.
func familyID(s string) (int, error) {
	id, err := strconv.Atoi(s)
	if err != nil || id <= 0 {
		return 0, ArgumentError("family ID", s, "must be a positive integer")
	}
	return id, nil
}
