package ioreport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnfmt"
	"github.com/gnames/kardex/pkg/dashboard"
	"github.com/gnames/kardex/pkg/roster"
)

// WriteSnapshot renders a dashboard snapshot.
func WriteSnapshot(w io.Writer, s *dashboard.Snapshot, f Format) error {
	var err error
	switch f {
	case JSON:
		err = writeJSON(w, s)
	case CSV:
		err = snapshotCSV(w, s)
	case PDF:
		err = snapshotPDF(w, s)
	default:
		_, err = io.WriteString(w, SnapshotText(s))
	}
	if err != nil {
		return EncodeError(err)
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	bs, err := enc.Encode(v)
	if err != nil {
		return err
	}
	if _, err = w.Write(bs); err != nil {
		return err
	}
	_, err = io.WriteString(w, "\n")
	return err
}

// SnapshotText renders a snapshot for the terminal.
func SnapshotText(s *dashboard.Snapshot) string {
	var b strings.Builder
	d := s.Demographics

	fmt.Fprintf(&b, "Dashboard on %s\n", roster.FormatDate(&s.Reference))
	fmt.Fprintf(&b, "Residents: %s\n\n", humanize.Comma(int64(s.Total)))

	b.WriteString("Sex\n")
	for _, sex := range roster.Sexes() {
		fmt.Fprintf(&b, "  %-14s %d\n", sex, d.SexCounts[sex])
	}

	b.WriteString("\nAge      F    M\n")
	for _, row := range d.AgeMatrix {
		fmt.Fprintf(&b, "  %-6s %3d  %3d\n", row.Bucket, row.Female, row.Male)
	}
	fmt.Fprintf(&b, "\nAdult women: %d, adult men: %d, girls: %d, boys: %d\n",
		d.AdultFemales, d.AdultMales, d.Girls, d.Boys)

	writeAges(&b, "Oldest adults", d.OldestAdults)
	writeAges(&b, "Youngest adults", d.YoungestAdults)
	writeAges(&b, "Oldest children", d.OldestChildren)
	writeAges(&b, "Youngest children", d.YoungestChildren)

	bd := s.Birthdays
	writeBirthdays(&b, "Birthdays today", bd.Today)
	writeBirthdays(&b, "Birthdays in the next 7 days", bd.WeekAhead)
	writeBirthdays(&b, "Birthdays in the next month", bd.MonthAhead)
	writeBirthdays(&b, "Birthdays in the last 7 days", bd.WeekPast)
	writeBirthdays(&b, "Birthdays in the last month", bd.MonthPast)

	writeTenure(&b, "Longest stays", s.Tenure.Oldest)
	writeTenure(&b, "Recent arrivals", s.Tenure.Recent)

	a := s.Alerts
	b.WriteString("\nOvercrowded families\n")
	if len(a.Overcrowded) == 0 {
		b.WriteString("  none\n")
	}
	for _, o := range a.Overcrowded {
		fmt.Fprintf(&b, "  %s (rooms %s): %d persons for %d places\n",
			o.Family.DisplayLabel(), o.Family.RoomsText(), o.Members, o.Capacity)
	}
	writeAges(&b, "Women without an adult man in the family", a.IsolatedWomen)
	writeAges(&b, "Infants under one year", a.Infants)

	return b.String()
}

func writeAges(b *strings.Builder, title string, pp []dashboard.PersonAge) {
	fmt.Fprintf(b, "\n%s\n", title)
	if len(pp) == 0 {
		b.WriteString("  none\n")
	}
	for _, p := range pp {
		fmt.Fprintf(b, "  %s, %s\n", p.Person.FullName(), p.Text)
	}
}

func writeBirthdays(b *strings.Builder, title string, bb []dashboard.Birthday) {
	fmt.Fprintf(b, "\n%s\n", title)
	if len(bb) == 0 {
		b.WriteString("  none\n")
	}
	for _, v := range bb {
		fmt.Fprintf(b, "  %s  %s turns %d\n",
			roster.FormatDate(&v.Date), v.Person.FullName(), v.Age)
	}
}

func writeTenure(b *strings.Builder, title string, tt []dashboard.FamilyTenure) {
	fmt.Fprintf(b, "\n%s\n", title)
	if len(tt) == 0 {
		b.WriteString("  none\n")
	}
	for _, v := range tt {
		fmt.Fprintf(b, "  %s %s\n", v.Label, v.Text)
	}
}

// snapshotCSV writes one row per fact: section, label, value, detail.
func snapshotCSV(w io.Writer, s *dashboard.Snapshot) error {
	cw := csv.NewWriter(w)
	itoa := strconv.Itoa
	d := s.Demographics

	rows := [][]string{
		{"section", "label", "value", "detail"},
		{"reference", "date", roster.FormatDate(&s.Reference), ""},
		{"total", "residents", itoa(s.Total), ""},
	}
	for _, sex := range roster.Sexes() {
		rows = append(rows, []string{"sex", sex.String(), itoa(d.SexCounts[sex]), ""})
	}
	for _, row := range d.AgeMatrix {
		rows = append(rows,
			[]string{"age_female", row.Bucket.String(), itoa(row.Female), ""},
			[]string{"age_male", row.Bucket.String(), itoa(row.Male), ""},
		)
	}
	rows = append(rows,
		[]string{"counts", "adult_females", itoa(d.AdultFemales), ""},
		[]string{"counts", "adult_males", itoa(d.AdultMales), ""},
		[]string{"counts", "girls", itoa(d.Girls), ""},
		[]string{"counts", "boys", itoa(d.Boys), ""},
	)

	ages := []struct {
		section string
		pp      []dashboard.PersonAge
	}{
		{"oldest_adults", d.OldestAdults},
		{"youngest_adults", d.YoungestAdults},
		{"oldest_children", d.OldestChildren},
		{"youngest_children", d.YoungestChildren},
		{"isolated_women", s.Alerts.IsolatedWomen},
		{"infants", s.Alerts.Infants},
	}
	for _, v := range ages {
		for _, p := range v.pp {
			rows = append(rows,
				[]string{v.section, p.Person.FullName(), itoa(p.Age), p.Text})
		}
	}

	bd := s.Birthdays
	windows := []struct {
		section string
		bb      []dashboard.Birthday
	}{
		{"birthday_today", bd.Today},
		{"birthday_week_ahead", bd.WeekAhead},
		{"birthday_month_ahead", bd.MonthAhead},
		{"birthday_week_past", bd.WeekPast},
		{"birthday_month_past", bd.MonthPast},
	}
	for _, v := range windows {
		for _, b := range v.bb {
			rows = append(rows, []string{
				v.section, b.Person.FullName(), itoa(b.Age),
				roster.FormatDate(&b.Date),
			})
		}
	}

	for _, t := range s.Tenure.Oldest {
		rows = append(rows, []string{"tenure_oldest", t.Label, itoa(t.Days), t.Text})
	}
	for _, t := range s.Tenure.Recent {
		rows = append(rows, []string{"tenure_recent", t.Label, itoa(t.Days), t.Text})
	}
	for _, o := range s.Alerts.Overcrowded {
		rows = append(rows, []string{
			"overcrowded", o.Family.DisplayLabel(), itoa(o.Members),
			"capacity " + itoa(o.Capacity),
		})
	}

	if err := cw.WriteAll(rows); err != nil {
		return err
	}
	return cw.Error()
}
