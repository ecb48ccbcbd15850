package catalog

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/msview/internal/fsutil"
	"github.com/banshee-data/msview/internal/monitoring"
	"github.com/banshee-data/msview/internal/testutil"
)

func quietLogs(t *testing.T) {
	t.Helper()
	original := monitoring.Logf
	monitoring.SetLogger(nil)
	t.Cleanup(func() { monitoring.Logf = original })
}

func TestLoadEvents(t *testing.T) {
	quietLogs(t)
	mfs := testutil.MemFS(map[string]string{
		"/data/catalog.csv": testutil.EventCatalogCSV(testutil.SampleEvents()...),
	})

	events, err := LoadEvents(mfs, "/data/catalog.csv")
	require.NoError(t, err)
	require.Len(t, events, 3)

	want := Event{
		ID:          "evt_0001.sgy",
		Position:    Position{Easting: 1200.5, Northing: -350.25, Depth: 7010},
		Magnitude:   -1.2,
		Stage:       1,
		Date:        "01/19/2025",
		TimeOfDay:   "14:03:07",
		Millisecond: 125,
		Origin:      time.Date(2025, 1, 19, 14, 3, 7, 125*int(time.Millisecond), time.UTC),
	}
	if diff := cmp.Diff(want, events[0]); diff != "" {
		t.Errorf("first event mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, []string{"evt_0001.sgy", "evt_0002.sgy", "evt_0003.sgy"},
		[]string{events[0].ID, events[1].ID, events[2].ID})
	assert.Equal(t, 2, events[2].Stage)
	assert.Equal(t, 999*time.Millisecond, events[2].Origin.Sub(time.Date(2025, 1, 19, 14, 5, 0, 0, time.UTC)))
}

func TestLoadEvents_Idempotent(t *testing.T) {
	quietLogs(t)
	mfs := testutil.MemFS(map[string]string{
		"catalog.csv": testutil.EventCatalogCSV(testutil.SampleEvents()...),
	})

	first, err := LoadEvents(mfs, "catalog.csv")
	require.NoError(t, err)
	second, err := LoadEvents(mfs, "catalog.csv")
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reload differs (-first +second):\n%s", diff)
	}
	assert.Equal(t, 2, mfs.OpenCount("catalog.csv"))
}

func TestLoadEvents_FileNotFound(t *testing.T) {
	quietLogs(t)
	_, err := LoadEvents(fsutil.NewMemoryFileSystem(), "/missing/catalog.csv")
	require.Error(t, err)

	var nf *FileNotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "/missing/catalog.csv", nf.Path)
	assert.Contains(t, err.Error(), "/missing/catalog.csv")
	assert.True(t, errors.Is(err, ErrFileNotFound))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestLoadEvents_OSFileSystem(t *testing.T) {
	quietLogs(t)
	_, err := LoadEvents(fsutil.OSFileSystem{}, "testdata/does-not-exist.csv")
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestLoadEvents_MissingColumn(t *testing.T) {
	quietLogs(t)
	content := strings.Replace(testutil.EventCatalogCSV(testutil.SampleEvents()...), "Brune Magnitude", "Moment Magnitude", 1)
	mfs := testutil.MemFS(map[string]string{"c.csv": content})

	_, err := LoadEvents(mfs, "c.csv")
	var mc *MissingColumnError
	require.True(t, errors.As(err, &mc), "got %v", err)
	assert.Equal(t, SrcMagnitude, mc.Column)
	assert.Equal(t, "c.csv", mc.Path)
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestLoadEvents_EmptyFile(t *testing.T) {
	quietLogs(t)
	mfs := testutil.MemFS(map[string]string{"empty.csv": ""})

	_, err := LoadEvents(mfs, "empty.csv")
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestLoadEvents_HeaderOnly(t *testing.T) {
	quietLogs(t)
	mfs := testutil.MemFS(map[string]string{
		"header.csv": testutil.CatalogHeader + "\n" + testutil.CatalogUnits + "\n",
	})

	events, err := LoadEvents(mfs, "header.csv")
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestLoadEvents_CoercionErrors(t *testing.T) {
	quietLogs(t)

	tests := []struct {
		name   string
		mutate func(r *testutil.EventRow)
		column string
		field  string
	}{
		{"non-numeric magnitude", func(r *testutil.EventRow) { r.Magnitude = "weak" }, SrcMagnitude, ColMagnitude},
		{"empty magnitude", func(r *testutil.EventRow) { r.Magnitude = "" }, SrcMagnitude, ColMagnitude},
		{"NaN magnitude", func(r *testutil.EventRow) { r.Magnitude = "NaN" }, SrcMagnitude, ColMagnitude},
		{"fractional stage", func(r *testutil.EventRow) { r.Stage = "1.5" }, SrcStage, ColStage},
		{"negative stage", func(r *testutil.EventRow) { r.Stage = "-3" }, SrcStage, ColStage},
		{"bad easting", func(r *testutil.EventRow) { r.Easting = "12O0" }, SrcEasting, "Easting (ft)"},
		{"bad millisecond", func(r *testutil.EventRow) { r.Millisecond = "12.5" }, SrcMillisecond, ColMillisecond},
		{"bad date", func(r *testutil.EventRow) { r.Date = "2025/19/01" }, SrcOriginDate, "Origin Time - Date (UTC) - MM/DD/YYYY"},
		{"bad time", func(r *testutil.EventRow) { r.Time = "noon" }, SrcOriginTime, "Origin Time - Time (UTC) - HH:MM:ss"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := testutil.SampleEvents()
			tt.mutate(&rows[1])
			mfs := testutil.MemFS(map[string]string{"c.csv": testutil.EventCatalogCSV(rows...)})

			events, err := LoadEvents(mfs, "c.csv")
			assert.Nil(t, events)

			var ce *CoercionError
			require.True(t, errors.As(err, &ce), "got %v", err)
			assert.Equal(t, tt.column, ce.Column)
			assert.Equal(t, tt.field, ce.Field)
			assert.Equal(t, 4, ce.Line)
			assert.True(t, errors.Is(err, ErrCoercion))
			assert.Contains(t, err.Error(), "c.csv: line 4")
		})
	}
}

func TestLoadEvents_ShortRow(t *testing.T) {
	quietLogs(t)
	content := testutil.EventCatalogCSV(testutil.SampleEvents()...) + "evt_0004.sgy,A,1\n"
	mfs := testutil.MemFS(map[string]string{"c.csv": content})

	_, err := LoadEvents(mfs, "c.csv")
	var ce *CoercionError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, 6, ce.Line)
	assert.True(t, errors.Is(err, errMissingField))
}

func TestLoadEvents_ReorderedColumnsAndBOM(t *testing.T) {
	quietLogs(t)
	content := "\ufeffStage, Brune Magnitude,File Name,Origin Time - Millisecond (UTC),Origin Time - Time (UTC)," +
		"Origin Time - Date (UTC),Depth TVDSS,Northing,Easting\n" +
		",,,,,,,,\n" +
		"3,-1.75,evt_9.sgy,7,09:10:11,03/09/2025,7100,20,10\n"
	mfs := testutil.MemFS(map[string]string{"c.csv": content})

	events, err := LoadEvents(mfs, "c.csv")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, 3, events[0].Stage)
	assert.Equal(t, -1.75, events[0].Magnitude)
	assert.Equal(t, Position{Easting: 10, Northing: 20, Depth: 7100}, events[0].Position)
	assert.True(t, events[0].Origin.Equal(time.Date(2025, 3, 9, 9, 10, 11, 7*int(time.Millisecond), time.UTC)))
}

func TestLoadEvents_Latin1(t *testing.T) {
	quietLogs(t)
	rows := testutil.SampleEvents()[:1]
	content := []byte(testutil.EventCatalogCSV(rows...))
	// Replace the id with "évt" encoded as ISO-8859-1.
	content = []byte(strings.Replace(string(content), "evt_0001", "\xe9vt_0001", 1))
	mfs := fsutil.NewMemoryFileSystem()
	mfs.WriteFile("latin1.csv", content)

	events, err := LoadEvents(mfs, "latin1.csv")
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "évt_0001.sgy", events[0].ID)
}

func TestEvent_Attribute(t *testing.T) {
	ev := Event{
		Position:    Position{Easting: 1, Northing: 2, Depth: 3},
		Magnitude:   -1.5,
		Stage:       4,
		Millisecond: 250,
	}

	for name, want := range map[string]float64{
		ColEasting:     1,
		ColNorthing:    2,
		ColDepth:       3,
		ColMagnitude:   -1.5,
		ColStage:       4,
		ColMillisecond: 250,
	} {
		got, ok := ev.Attribute(name)
		assert.True(t, ok, name)
		assert.Equal(t, want, got, name)
		assert.True(t, IsNumericAttribute(name), name)
	}

	// Source names are not visible downstream.
	_, ok := ev.Attribute(SrcEasting)
	assert.False(t, ok)
	assert.False(t, IsNumericAttribute(ColFileName))
}

func TestCanonicalName(t *testing.T) {
	assert.Equal(t, "Easting (ft)", CanonicalName(SrcEasting))
	assert.Equal(t, "Northing (ft)", CanonicalName(SrcNorthing))
	assert.Equal(t, "Depth TVDSS (ft)", CanonicalName(SrcDepth))
	assert.Equal(t, "Origin Time - Date (UTC) - MM/DD/YYYY", CanonicalName(SrcOriginDate))
	assert.Equal(t, "Origin Time - Time (UTC) - HH:MM:ss", CanonicalName(SrcOriginTime))
	assert.Equal(t, SrcStage, CanonicalName(SrcStage))
}
