package ioreport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/gnames/kardex/pkg/dashboard"
	"github.com/gnames/kardex/pkg/roster"
	"github.com/gnames/kardex/pkg/store"
)

// residentView is the flat form of a resident in listings. Age is nil and
// AgeDays is dashboard.UnknownDays when the date of birth is absent or
// after the reference date.
type residentView struct {
	ID        int    `json:"id"`
	FamilyID  int    `json:"family_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Sex       string `json:"sex"`
	DOB       string `json:"dob"`
	Age       *int   `json:"age"`
	AgeText   string `json:"age_text"`
	AgeDays   int    `json:"age_days"`
	Family    string `json:"family"`
	Rooms     string `json:"rooms"`
	Arrival   string `json:"arrival"`
	Departure string `json:"departure"`
	Phone     string `json:"phone"`
}

func newResidentView(r store.Resident, ref time.Time) residentView {
	p := r.Person
	res := residentView{
		ID:        p.ID,
		FamilyID:  p.FamilyID,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Sex:       p.Sex.String(),
		DOB:       roster.FormatDate(p.DOB),
		AgeDays:   dashboard.UnknownDays,
		Family:    r.Family.DisplayLabel(),
		Rooms:     r.Family.RoomsText(),
		Arrival:   roster.FormatDate(r.Family.Arrival),
		Departure: roster.FormatDate(r.Family.Departure),
		Phone:     roster.CleanField(p.Phone),
	}
	if age, ok := dashboard.AgeYears(p.DOB, ref); ok && age >= 0 {
		res.Age = &age
		res.AgeText = dashboard.AgeText(p.DOB, ref)
		res.AgeDays = dashboard.AgeDays(p.DOB, ref)
	}
	return res
}

func (v residentView) ageDaysText() string {
	if v.AgeDays == dashboard.UnknownDays {
		return ""
	}
	return strconv.Itoa(v.AgeDays)
}

// WriteResidents renders a resident listing with ages computed at ref.
func WriteResidents(
	w io.Writer,
	rr []store.Resident,
	ref time.Time,
	f Format,
) error {
	ref = roster.Day(ref)
	views := make([]residentView, len(rr))
	for i := range rr {
		views[i] = newResidentView(rr[i], ref)
	}

	var err error
	switch f {
	case JSON:
		err = writeJSON(w, views)
	case CSV:
		err = residentsCSV(w, views)
	case PDF:
		err = residentsPDF(w, views, ref)
	default:
		err = residentsText(w, views)
	}
	if err != nil {
		return EncodeError(err)
	}
	return nil
}

func residentsText(w io.Writer, views []residentView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw,
		"ID\tNAME\tSEX\tDOB\tAGE\tDAYS\tFAMILY\tROOMS\tARRIVAL\tDEPARTURE\tPHONE")
	for _, v := range views {
		fmt.Fprintf(tw, "%d\t%s %s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, v.FirstName, v.LastName, v.Sex, v.DOB, v.AgeText,
			v.ageDaysText(), v.Family, v.Rooms, v.Arrival, v.Departure, v.Phone)
	}
	return tw.Flush()
}

func residentsCSV(w io.Writer, views []residentView) error {
	cw := csv.NewWriter(w)
	rows := [][]string{{
		"id", "family_id", "first_name", "last_name", "sex", "dob",
		"age", "age_text", "age_days", "family", "rooms", "arrival",
		"departure", "phone",
	}}
	for _, v := range views {
		var age string
		if v.Age != nil {
			age = strconv.Itoa(*v.Age)
		}
		rows = append(rows, []string{
			strconv.Itoa(v.ID), strconv.Itoa(v.FamilyID),
			v.FirstName, v.LastName, v.Sex, v.DOB,
			age, v.AgeText, v.ageDaysText(), v.Family, v.Rooms,
			v.Arrival, v.Departure, v.Phone,
		})
	}
	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
