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

	"github.com/gnames/kardex/internal/iopg"
	"github.com/gnames/kardex/internal/iosqlite"
	"github.com/gnames/kardex/pkg/config"
	"github.com/gnames/kardex/pkg/store"
)

// connectStore connects to the configured backend.
func connectStore(ctx context.Context, c *config.Config) (store.Store, error) {
	var st store.Store
	dbCfg := c.Database

	switch dbCfg.Driver {
	case "postgres":
		st = iopg.New()
	default:
		st = iosqlite.New()
		dbCfg.Path = c.SQLitePath()
	}

	if err := st.Connect(ctx, &dbCfg); err != nil {
		return nil, err
	}
	return st, nil
}

// openStore connects to the configured backend and brings its schema up
// to date.
func openStore(ctx context.Context, c *config.Config) (store.Store, error) {
	st, err := connectStore(ctx, c)
	if err != nil {
		return nil, err
	}

	if err = st.Migrate(ctx); err != nil {
		st.Close()
		return nil, err
	}

	return st, nil
}

// describeStore is a human readable location of the configured storage.
func describeStore(c *config.Config) string {
	if c.Database.Driver == "postgres" {
		d := c.Database
		return fmt.Sprintf("PostgreSQL %s@%s:%d/%s",
			d.User, d.Host, d.Port, d.Database)
	}
	return "SQLite " + c.SQLitePath()
}
