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

	"github.com/gnames/gn"
	"github.com/gnames/kardex/pkg/config"
	"github.com/gnames/kardex/pkg/store"
	"github.com/spf13/cobra"
)

// getOptimizeCmd returns the optimize command.
func getOptimizeCmd() *cobra.Command {
	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Reclaim space and refresh database statistics",
		Long: `Run database maintenance after many deletions or a large import.

SQLite runs VACUUM and ANALYZE, PostgreSQL runs VACUUM ANALYZE.

Examples:
  kardex optimize
  kardex --driver postgres optimize`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			err := runOptimize(cmd.Context(), cfg)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return optimizeCmd
}

func runOptimize(ctx context.Context, c *config.Config) error {
	st, err := openStore(ctx, c)
	if err != nil {
		return err
	}
	defer st.Close()

	gn.Info("Connected to <em>%s</em>", describeStore(c))

	opt, ok := st.(store.Optimizer)
	if !ok {
		gn.Warn("This storage has no maintenance to run")
		return nil
	}

	if err = opt.Optimize(ctx); err != nil {
		return err
	}

	gn.Info("\nDatabase optimization complete!")
	return nil
}
