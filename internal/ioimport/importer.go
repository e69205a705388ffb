package ioimport

import (
	"context"
	"log/slog"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/kardex/pkg/store"
)

// Stats summarizes an import.
type Stats struct {
	Families int
	Persons  int
	Duration time.Duration
}

// Importer writes households to a store.
type Importer struct {
	st       store.Store
	progress bool
}

// New creates an Importer. With progress set, a progress bar is shown on
// the terminal.
func New(st store.Store, progress bool) *Importer {
	return &Importer{st: st, progress: progress}
}

// Import stores households in order. It stops at the first failure; the
// households stored before it stay.
func (im *Importer) Import(
	ctx context.Context,
	hh []Household,
) (Stats, error) {
	var res Stats
	start := time.Now()

	var bar *pb.ProgressBar
	if im.progress {
		bar = pb.Full.Start(len(hh))
		bar.Set("prefix", "Importing families: ")
		bar.Set(pb.CleanOnFinish, true)
		defer bar.Finish()
	}

	for _, h := range hh {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		famID, err := im.st.AddFamily(ctx, h.Family)
		if err != nil {
			return res, err
		}
		res.Families++

		for _, p := range h.Members {
			p.FamilyID = famID
			if _, err = im.st.AddPerson(ctx, p); err != nil {
				return res, err
			}
			res.Persons++
		}

		if bar != nil {
			bar.Increment()
		}
	}

	res.Duration = time.Since(start)
	slog.Info("Roster imported",
		"families", humanize.Comma(int64(res.Families)),
		"persons", humanize.Comma(int64(res.Persons)),
		"duration", gnfmt.TimeString(res.Duration.Seconds()),
	)
	return res, nil
}
