// Package testutil provides shared test utilities and fixtures.
//
// This package centralises the catalog and survey fixtures used across the
// loader, pipeline and viewer tests.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/banshee-data/msview/internal/fsutil"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// EventRow is one catalog row in source form.
type EventRow struct {
	FileName    string
	Easting     string
	Northing    string
	Depth       string
	Date        string
	Time        string
	Millisecond string
	Magnitude   string
	Stage       string
}

// CatalogHeader is the header written by EventCatalogCSV. An extra
// "Quality" column is included to show unknown columns are ignored.
const CatalogHeader = "File Name,Quality,Easting,Northing,Depth TVDSS," +
	"Origin Time - Date (UTC),Origin Time - Time (UTC),Origin Time - Millisecond (UTC)," +
	"Brune Magnitude,Stage"

// CatalogUnits is the units row written under CatalogHeader.
const CatalogUnits = ",,ft,ft,ft,MM/DD/YYYY,HH:MM:SS,ms,,"

// EventCatalogCSV renders rows as an event catalog with header and units rows.
func EventCatalogCSV(rows ...EventRow) string {
	var b strings.Builder
	b.WriteString(CatalogHeader + "\n")
	b.WriteString(CatalogUnits + "\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "%s,A,%s,%s,%s,%s,%s,%s,%s,%s\n",
			r.FileName, r.Easting, r.Northing, r.Depth, r.Date, r.Time, r.Millisecond, r.Magnitude, r.Stage)
	}
	return b.String()
}

// SampleEvents returns three events with magnitudes -1.2, -0.5, -2.0 and
// stages 1, 1, 2, in chronological order.
func SampleEvents() []EventRow {
	return []EventRow{
		{"evt_0001.sgy", "1200.5", "-350.25", "7010", "01/19/2025", "14:03:07", "125", "-1.2", "1"},
		{"evt_0002.sgy", "1210", "-340", "7022.5", "01/19/2025", "14:03:08", "500", "-0.5", "1"},
		{"evt_0003.sgy", "1190.75", "-360", "7005", "01/19/2025", "14:05:00", "999", "-2.0", "2"},
	}
}

// HeaderSurveyCSV renders stations as a survey export with header, units row
// and a five-line footer.
func HeaderSurveyCSV(stations ...[4]string) string {
	var b strings.Builder
	b.WriteString("MD,Inc,Azimuth,TVD,NS,EW,DLS\n")
	b.WriteString("ft,deg,deg,ft,ft,ft,deg/100ft\n")
	for i, s := range stations {
		fmt.Fprintf(&b, "%d,0.5,%s,%s,%s,%s,0.1\n", i*100, s[0], s[1], s[2], s[3])
	}
	for i := 0; i < 5; i++ {
		fmt.Fprintf(&b, "Footer line %d,,,,,,\n", i+1)
	}
	return b.String()
}

// FixedSurveyCSV renders stations after a 22-line free-form preamble with no header.
func FixedSurveyCSV(stations ...[4]string) string {
	var b strings.Builder
	for i := 0; i < 22; i++ {
		fmt.Fprintf(&b, "Preamble %d: operator notes, \"quoted\" text\n", i+1)
	}
	for _, s := range stations {
		fmt.Fprintf(&b, "%s,%s,%s,%s\n", s[0], s[1], s[2], s[3])
	}
	return b.String()
}

// MemFS returns a memory filesystem holding the given path/content pairs.
func MemFS(files map[string]string) *fsutil.MemoryFileSystem {
	mfs := fsutil.NewMemoryFileSystem()
	for name, content := range files {
		mfs.WriteFile(name, []byte(content))
	}
	return mfs
}
