package ioreport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/gnames/kardex/pkg/roster"
)

// familyView is the flat form of a family in listings.
type familyView struct {
	ID        int    `json:"id"`
	Label     string `json:"label"`
	Rooms     string `json:"rooms"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
	Phones    string `json:"phones"`
}

func newFamilyView(f roster.Family) familyView {
	return familyView{
		ID:        f.ID,
		Label:     f.DisplayLabel(),
		Rooms:     f.RoomsText(),
		Arrival:   roster.FormatDate(f.Arrival),
		Departure: roster.FormatDate(f.Departure),
		Phones:    f.PhonesText(),
	}
}

// WriteFamilies renders a family listing.
func WriteFamilies(w io.Writer, ff []roster.Family, f Format) error {
	views := make([]familyView, len(ff))
	for i := range ff {
		views[i] = newFamilyView(ff[i])
	}

	var err error
	switch f {
	case JSON:
		err = writeJSON(w, views)
	case CSV:
		err = familiesCSV(w, views)
	case PDF:
		err = familiesPDF(w, views)
	default:
		err = familiesText(w, views)
	}
	if err != nil {
		return EncodeError(err)
	}
	return nil
}

func familiesText(w io.Writer, views []familyView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tFAMILY\tROOMS\tARRIVAL\tDEPARTURE\tPHONES")
	for _, v := range views {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.Label, v.Rooms, v.Arrival, v.Departure, v.Phones)
	}
	return tw.Flush()
}

func familiesCSV(w io.Writer, views []familyView) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{"id", "label", "rooms", "arrival", "departure", "phones"}}
	for _, v := range views {
		rows = append(rows, []string{
			strconv.Itoa(v.ID), v.Label, v.Rooms, v.Arrival, v.Departure, v.Phones,
		})
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
