package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/msview/internal/testutil"
)

var sampleStations = [][4]string{
	{"0", "0", "0", "0"},
	{"12.5", "3500", "10.25", "-4"},
	{"91.2", "7020", "150", "820.5"},
}

func TestLoadSurvey_WithHeader(t *testing.T) {
	quietLogs(t)
	mfs := testutil.MemFS(map[string]string{"/wells/1H.csv": testutil.HeaderSurveyCSV(sampleStations...)})

	traj, err := LoadSurvey(mfs, SurveySource{Path: "/wells/1H.csv", Format: SurveyWithHeader})
	require.NoError(t, err)

	assert.Equal(t, "1H", traj.Name)
	assert.Equal(t, "/wells/1H.csv", traj.Source)
	assert.Equal(t, []Station{
		{Azimuth: 0, TVD: 0, NS: 0, EW: 0},
		{Azimuth: 12.5, TVD: 3500, NS: 10.25, EW: -4},
		{Azimuth: 91.2, TVD: 7020, NS: 150, EW: 820.5},
	}, traj.Stations)
}

func TestLoadSurvey_FixedLayout(t *testing.T) {
	quietLogs(t)
	mfs := testutil.MemFS(map[string]string{"2H.txt": testutil.FixedSurveyCSV(sampleStations...)})

	traj, err := LoadSurvey(mfs, SurveySource{Path: "2H.txt", Format: SurveyFixedLayout})
	require.NoError(t, err)
	require.Len(t, traj.Stations, 3)
	assert.Equal(t, Station{Azimuth: 12.5, TVD: 3500, NS: 10.25, EW: -4}, traj.Stations[1])
}

func TestLoadSurvey_PreservesOrder(t *testing.T) {
	quietLogs(t)
	// Non-monotonic depths stay in file order; stations are never sorted.
	stations := [][4]string{{"0", "300", "0", "0"}, {"0", "100", "0", "0"}, {"0", "200", "0", "0"}}
	mfs := testutil.MemFS(map[string]string{"w.csv": testutil.FixedSurveyCSV(stations...)})

	traj, err := LoadSurvey(mfs, SurveySource{Path: "w.csv", Format: SurveyFixedLayout})
	require.NoError(t, err)
	assert.Equal(t, []float64{300, 100, 200}, []float64{traj.Stations[0].TVD, traj.Stations[1].TVD, traj.Stations[2].TVD})
}

func TestLoadSurvey_ExtraPreamble(t *testing.T) {
	quietLogs(t)
	preamble := strings.Repeat("Company: Example Energy\n", 27)
	mfs := testutil.MemFS(map[string]string{"w.csv": preamble + testutil.HeaderSurveyCSV(sampleStations...)})

	format := SurveyWithHeader
	format.PreambleRows = 27
	traj, err := LoadSurvey(mfs, SurveySource{Path: "w.csv", Format: format})
	require.NoError(t, err)
	assert.Len(t, traj.Stations, 3)
}

func TestLoadSurvey_Latin1(t *testing.T) {
	quietLogs(t)
	content := "MD,Azimuth,TVD,NS,EW\n\xb0,\xb0,ft,ft,ft\n0,45,100,1,2\n" + strings.Repeat("\xa9 footer\n", 5)
	mfs := testutil.MemFS(map[string]string{"w.csv": content})

	traj, err := LoadSurvey(mfs, SurveySource{Path: "w.csv", Format: SurveyWithHeader})
	require.NoError(t, err)
	assert.Equal(t, []Station{{Azimuth: 45, TVD: 100, NS: 1, EW: 2}}, traj.Stations)
}

func TestLoadSurvey_FooterLongerThanData(t *testing.T) {
	quietLogs(t)
	mfs := testutil.MemFS(map[string]string{"w.csv": "Azimuth,TVD,NS,EW\ndeg,ft,ft,ft\n1,2,3,4\n"})

	traj, err := LoadSurvey(mfs, SurveySource{Path: "w.csv", Format: SurveyWithHeader})
	require.NoError(t, err)
	assert.Empty(t, traj.Stations)
}

func TestLoadSurvey_BlankLinesInFooter(t *testing.T) {
	quietLogs(t)
	content := "Azimuth,TVD,NS,EW\ndeg,ft,ft,ft\n" +
		"1,100,1,1\n2,200,2,2\n3,300,3,3\n" +
		"Survey end\n\nCertified by: J. Doe\n\nPrinted 2025-01-19\n"
	mfs := testutil.MemFS(map[string]string{"w.csv": content})

	traj, err := LoadSurvey(mfs, SurveySource{Path: "w.csv", Format: SurveyWithHeader})
	require.NoError(t, err)
	assert.Equal(t, []float64{100, 200, 300}, []float64{traj.Stations[0].TVD, traj.Stations[1].TVD, traj.Stations[2].TVD})
	assert.Len(t, traj.Stations, 3)
}

func TestLoadSurvey_FooterWithoutFinalNewline(t *testing.T) {
	quietLogs(t)
	content := "Azimuth,TVD,NS,EW\ndeg,ft,ft,ft\n1,100,1,1\n2,200,2,2\nf1\nf2\nf3\nf4\nf5"
	mfs := testutil.MemFS(map[string]string{"w.csv": content})

	traj, err := LoadSurvey(mfs, SurveySource{Path: "w.csv", Format: SurveyWithHeader})
	require.NoError(t, err)
	assert.Len(t, traj.Stations, 2)
}

func TestLoadSurvey_Errors(t *testing.T) {
	quietLogs(t)
	mfs := testutil.MemFS(map[string]string{
		"noew.csv":  "Azimuth,TVD,NS\n",
		"bad.txt":   testutil.FixedSurveyCSV([4]string{"1", "deep", "3", "4"}),
		"empty.csv": "",
	})

	_, err := LoadSurvey(mfs, SurveySource{Path: "nope.csv", Format: SurveyWithHeader})
	assert.True(t, errors.Is(err, ErrFileNotFound))

	_, err = LoadSurvey(mfs, SurveySource{Path: "noew.csv", Format: SurveyWithHeader})
	var mc *MissingColumnError
	require.True(t, errors.As(err, &mc), "got %v", err)
	assert.Equal(t, ColEW, mc.Column)

	_, err = LoadSurvey(mfs, SurveySource{Path: "empty.csv", Format: SurveyWithHeader})
	assert.True(t, errors.Is(err, ErrMissingColumn))

	_, err = LoadSurvey(mfs, SurveySource{Path: "bad.txt", Format: SurveyFixedLayout})
	var ce *CoercionError
	require.True(t, errors.As(err, &ce), "got %v", err)
	assert.Equal(t, ColTVD, ce.Column)
	assert.Equal(t, 23, ce.Line)

	_, err = LoadSurvey(mfs, SurveySource{Path: "bad.txt", Format: SurveyFormat{Columns: []string{"Azimuth"}}})
	assert.True(t, errors.Is(err, ErrMissingColumn))
}

func TestLoadSurveys(t *testing.T) {
	quietLogs(t)
	mfs := testutil.MemFS(map[string]string{
		"1H.csv": testutil.HeaderSurveyCSV(sampleStations...),
		"2H.txt": testutil.FixedSurveyCSV(sampleStations...),
	})

	trajs, err := LoadSurveys(mfs, []SurveySource{
		{Path: "1H.csv", Format: SurveyWithHeader},
		{Path: "2H.txt", Format: SurveyFixedLayout},
	})
	require.NoError(t, err)
	require.Len(t, trajs, 2)
	assert.Equal(t, "1H", trajs[0].Name)
	assert.Equal(t, "2H", trajs[1].Name)

	_, err = LoadSurveys(mfs, []SurveySource{
		{Path: "1H.csv", Format: SurveyWithHeader},
		{Path: "3H.csv", Format: SurveyWithHeader},
	})
	assert.True(t, errors.Is(err, ErrFileNotFound))
}

func TestParseSurveyFormat(t *testing.T) {
	for _, name := range []string{"", "header", "A", " Header "} {
		f, err := ParseSurveyFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, "header", f.Name)
	}
	for _, name := range []string{"fixed", "b"} {
		f, err := ParseSurveyFormat(name)
		require.NoError(t, err, name)
		assert.Equal(t, 22, f.PreambleRows)
	}
	_, err := ParseSurveyFormat("xml")
	assert.Error(t, err)
}
