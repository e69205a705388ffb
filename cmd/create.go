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
	"os"

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/config"
	"github.com/gnames/kardex/pkg/store"
	"github.com/spf13/cobra"
)

// getCreateCmd returns the create command.
func getCreateCmd() *cobra.Command {
	var forceCreate bool

	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create database tables",
		Long: `Create the kardex tables for families and persons.

This command:
  1. Connects to the configured storage (SQLite by default)
  2. Checks for existing tables and prompts for confirmation
  3. Drops existing tables if confirmed
  4. Creates tables and indexes

Running any other command also creates missing tables, so 'create' is
only needed to start over with an empty roster.

Examples:
  kardex create
  kardex create --force
  kardex --driver postgres create -f`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runCreate(cmd.Context(), cfg, os.Stdin, forceCreate)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	createCmd.Flags().BoolVarP(&forceCreate, "force", "f",
		false, "drop existing tables without confirmation")

	return createCmd
}

func runCreate(
	ctx context.Context,
	c *config.Config,
	in io.Reader,
	force bool,
) error {
	st, err := connectStore(ctx, c)
	if err != nil {
		return err
	}
	defer st.Close()

	gn.Info("Connected to <em>%s</em>", describeStore(c))

	if dr, ok := st.(store.Dropper); ok {
		hasTables, err := dr.HasTables(ctx)
		if err != nil {
			return err
		}

		if hasTables {
			if !force {
				gn.Warn("\nWarning: Database contains existing tables.")
				gn.Warn("Creating tables will drop ALL existing families and persons.")
				yes, err := confirm(in, "Do you want to continue?")
				if err != nil {
					return err
				}
				if !yes {
					gn.Info("Aborted. No changes made.")
					return nil
				}
			}

			gn.Info("Dropping all existing tables...")
			if err = dr.DropAll(ctx); err != nil {
				return err
			}
			gn.Info("All tables dropped")
		}
	}

	if err = st.Migrate(ctx); err != nil {
		return err
	}

	gn.Info("\nTables created.")
	gn.Info("\nNext steps:")
	gn.Info("  - Run 'kardex import FILE' to load a roster")
	gn.Info("  - Run 'kardex dashboard' to see the dashboard")

	return nil
}
