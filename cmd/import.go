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
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/gnames/kardex/internal/ioimport"
	"github.com/gnames/kardex/pkg/config"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// getImportCmd returns the import command.
func getImportCmd() *cobra.Command {
	var noProgress bool

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import families and persons from a roster file",
		Long: `Import families and their persons from a YAML or JSON roster file.

The whole file is validated before anything is written. Dates are
YYYY-MM-DD or DD/MM/YYYY. Sex is F/female/femme, M/male/homme or
anything else for Other. Families with an id keep it, others get the
next free one.

File layout:

  families:
    - id: 1
      label: Dupont
      rooms: ["12", "14"]
      arrival: 2023-05-01
      phones: ["0601020304"]
      persons:
        - first_name: Marie
          last_name: Dupont
          dob: 12/03/1985
          sex: F

Examples:
  kardex import roster.yaml
  kardex --db /tmp/test.db import roster.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			progress := !noProgress && isatty.IsTerminal(os.Stderr.Fd())
			_, err := runImport(cmd.Context(), cfg, args[0], progress)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	importCmd.Flags().BoolVar(&noProgress, "no-progress", false,
		"do not show the progress bar")

	return importCmd
}

func runImport(
	ctx context.Context,
	c *config.Config,
	path string,
	progress bool,
) (ioimport.Stats, error) {
	var res ioimport.Stats
	hh, err := ioimport.Load(path)
	if err != nil {
		return res, err
	}

	st, err := openStore(ctx, c)
	if err != nil {
		return res, err
	}
	defer st.Close()

	gn.Info("Importing <em>%s</em> into <em>%s</em>", path, describeStore(c))

	res, err = ioimport.New(st, progress).Import(ctx, hh)
	if err != nil {
		return res, err
	}

	gn.Info("Imported <em>%s</em> families and <em>%s</em> persons in %s",
		humanize.Comma(int64(res.Families)),
		humanize.Comma(int64(res.Persons)),
		gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, nil
}
