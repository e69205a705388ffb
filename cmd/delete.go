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
	"fmt"
	"io"
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/config"
	"github.com/spf13/cobra"
)

// getDeleteCmd returns the delete command.
func getDeleteCmd() *cobra.Command {
	var yes bool

	deleteCmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a family and its persons",
		Long: `Delete a family together with all its persons. This cannot be
undone; use 'kardex archive' to keep the record.

Examples:
  kardex delete 12
  kardex delete 12 --yes`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := familyID(args[0])
			if err == nil {
				err = runDelete(cmd.Context(), cfg, os.Stdin, id, yes)
			}
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	deleteCmd.Flags().BoolVarP(&yes, "yes", "y", false,
		"delete without confirmation")

	return deleteCmd
}

func runDelete(
	ctx context.Context,
	c *config.Config,
	in io.Reader,
	id int,
	yes bool,
) error {
	st, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer st.Close()

	if !yes {
		ok, err := confirm(in, fmt.Sprintf("Delete family %d and all its persons?", id))
		if err != nil {
			return err
		}
		if !ok {
			gn.Info("Aborted. No changes made.")
			return nil
		}
	}

	if err = st.DeleteFamily(ctx, id); err != nil {
		return err
	}

	gn.Info("Family <em>%d</em> deleted", id)
	return nil
}
