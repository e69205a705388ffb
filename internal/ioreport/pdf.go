package ioreport

import (
	"fmt"
	"io"
	"time"

	"github.com/gnames/kardex/pkg/dashboard"
	"github.com/gnames/kardex/pkg/roster"
	"github.com/jung-kurt/gofpdf/v2"
)

// pageWidth is the printable width of an A4 page with 10mm margins.
const pageWidth = 190

// snapshotPDF renders a snapshot as a printable A4 document.
func snapshotPDF(w io.Writer, s *dashboard.Snapshot) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	// core fonts are cp1252, names often carry accents
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(pageWidth, 10, "Shelter Dashboard", "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(pageWidth, 6,
		fmt.Sprintf("Reference date: %s    Residents: %d",
			roster.FormatDate(&s.Reference), s.Total),
		"", 1, "C", false, 0, "")
	pdf.Ln(4)

	d := s.Demographics
	pdfSection(pdf, "Demographics")
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	pdf.CellFormat(40, 7, "Age", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Women", "1", 0, "C", true, 0, "")
	pdf.CellFormat(30, 7, "Men", "1", 1, "C", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	for _, row := range d.AgeMatrix {
		pdf.CellFormat(40, 6, row.Bucket.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", row.Female), "1", 0, "C", false, 0, "")
		pdf.CellFormat(30, 6, fmt.Sprintf("%d", row.Male), "1", 1, "C", false, 0, "")
	}
	pdf.Ln(2)
	for _, sex := range roster.Sexes() {
		pdf.CellFormat(pageWidth, 6,
			fmt.Sprintf("%s: %d", sex, d.SexCounts[sex]), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(pageWidth, 6,
		fmt.Sprintf("Adult women: %d, adult men: %d, girls: %d, boys: %d",
			d.AdultFemales, d.AdultMales, d.Girls, d.Boys),
		"", 1, "L", false, 0, "")
	pdf.Ln(3)

	pdfAges(pdf, tr, "Oldest adults", d.OldestAdults)
	pdfAges(pdf, tr, "Youngest adults", d.YoungestAdults)
	pdfAges(pdf, tr, "Oldest children", d.OldestChildren)
	pdfAges(pdf, tr, "Youngest children", d.YoungestChildren)

	bd := s.Birthdays
	pdfBirthdays(pdf, tr, "Birthdays today", bd.Today)
	pdfBirthdays(pdf, tr, "Birthdays in the next 7 days", bd.WeekAhead)
	pdfBirthdays(pdf, tr, "Birthdays in the next month", bd.MonthAhead)
	pdfBirthdays(pdf, tr, "Birthdays in the last 7 days", bd.WeekPast)
	pdfBirthdays(pdf, tr, "Birthdays in the last month", bd.MonthPast)

	pdfTenure(pdf, tr, "Longest stays", s.Tenure.Oldest)
	pdfTenure(pdf, tr, "Recent arrivals", s.Tenure.Recent)

	a := s.Alerts
	pdfSection(pdf, "Overcrowded families")
	if len(a.Overcrowded) == 0 {
		pdfLine(pdf, "none")
	}
	for _, o := range a.Overcrowded {
		pdf.SetFillColor(255, 200, 200)
		pdf.CellFormat(pageWidth, 6, tr(fmt.Sprintf(
			"%s (rooms %s): %d persons for %d places",
			o.Family.DisplayLabel(), o.Family.RoomsText(), o.Members, o.Capacity)),
			"1", 1, "L", true, 0, "")
	}
	pdf.Ln(3)
	pdfAges(pdf, tr, "Women without an adult man in the family", a.IsolatedWomen)
	pdfAges(pdf, tr, "Infants under one year", a.Infants)

	return pdf.Output(w)
}

func pdfSection(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFillColor(240, 240, 240)
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(pageWidth, 8, title, "1", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
}

func pdfLine(pdf *gofpdf.Fpdf, txt string) {
	pdf.CellFormat(pageWidth, 6, txt, "", 1, "L", false, 0, "")
}

func pdfAges(
	pdf *gofpdf.Fpdf,
	tr func(string) string,
	title string,
	pp []dashboard.PersonAge,
) {
	pdfSection(pdf, title)
	if len(pp) == 0 {
		pdfLine(pdf, "none")
	}
	for _, p := range pp {
		pdfLine(pdf, tr(fmt.Sprintf("%s, %s", p.Person.FullName(), p.Text)))
	}
	pdf.Ln(3)
}

func pdfBirthdays(
	pdf *gofpdf.Fpdf,
	tr func(string) string,
	title string,
	bb []dashboard.Birthday,
) {
	pdfSection(pdf, title)
	if len(bb) == 0 {
		pdfLine(pdf, "none")
	}
	for _, b := range bb {
		pdfLine(pdf, tr(fmt.Sprintf("%s  %s turns %d",
			roster.FormatDate(&b.Date), b.Person.FullName(), b.Age)))
	}
	pdf.Ln(3)
}

func pdfTenure(
	pdf *gofpdf.Fpdf,
	tr func(string) string,
	title string,
	tt []dashboard.FamilyTenure,
) {
	pdfSection(pdf, title)
	if len(tt) == 0 {
		pdfLine(pdf, "none")
	}
	for _, t := range tt {
		pdfLine(pdf, tr(t.Label+" "+t.Text))
	}
	pdf.Ln(3)
}

// familiesPDF renders a family listing as an A4 table.
func familiesPDF(w io.Writer, views []familyView) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(pageWidth, 10, "Families", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	cols := []struct {
		title string
		width float64
	}{
		{"ID", 12}, {"Family", 50}, {"Rooms", 25},
		{"Arrival", 25}, {"Departure", 25}, {"Phones", 53},
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, 7, c.title, "1", ln, "C", true, 0, "")
	}

	pdf.SetFont("Arial", "", 10)
	for _, v := range views {
		cells := []string{
			fmt.Sprintf("%d", v.ID), tr(v.Label), tr(v.Rooms),
			v.Arrival, v.Departure, tr(v.Phones),
		}
		for i, c := range cells {
			ln := 0
			if i == len(cells)-1 {
				ln = 1
			}
			pdf.CellFormat(cols[i].width, 6, c, "1", ln, "L", false, 0, "")
		}
	}

	return pdf.Output(w)
}

// residentsPDF renders a resident listing as a landscape A4 table.
func residentsPDF(w io.Writer, views []residentView, ref time.Time) error {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	title := "Residents on " + ref.Format("02/01/2006")
	pdf.CellFormat(277, 10, title, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	cols := []struct {
		title string
		width float64
	}{
		{"ID", 12}, {"Name", 55}, {"Sex", 25}, {"DOB", 22}, {"Age", 25},
		{"Days", 16}, {"Family", 45}, {"Rooms", 22}, {"Arrival", 22},
		{"Phone", 33},
	}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	for i, c := range cols {
		ln := 0
		if i == len(cols)-1 {
			ln = 1
		}
		pdf.CellFormat(c.width, 7, c.title, "1", ln, "C", true, 0, "")
	}

	pdf.SetFont("Arial", "", 9)
	for _, v := range views {
		cells := []string{
			fmt.Sprintf("%d", v.ID), tr(v.FirstName + " " + v.LastName),
			v.Sex, v.DOB, v.AgeText, v.ageDaysText(), tr(v.Family),
			tr(v.Rooms), v.Arrival, tr(v.Phone),
		}
		for i, c := range cells {
			ln := 0
			if i == len(cells)-1 {
				ln = 1
			}
			pdf.CellFormat(cols[i].width, 6, c, "1", ln, "L", false, 0, "")
		}
	}

	return pdf.Output(w)
}
