package forcing

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func months(y int, m time.Month, n int) []time.Time {
	o := make([]time.Time, n)
	for i := range o {
		o[i] = time.Date(y, m+time.Month(i), 1, 0, 0, 0, 0, time.UTC)
	}
	return o
}

func TestCheck(t *testing.T) {
	ok := Forcing{T: months(2000, time.November, 3), P: []float64{1, 2, 3}, Ta: []float64{0, 1, 2}, PET: []float64{5, 5, 5}}
	if err := ok.Check(); err != nil {
		t.Fatalf("Check: %v", err)
	}

	gap := ok.Subset(0, 3)
	gap.T[2] = gap.T[2].AddDate(0, 1, 0)
	if err := gap.Check(); !errors.Is(err, ErrGap) {
		t.Fatalf("Check on gap = %v, want ErrGap", err)
	}

	dup := ok.Subset(0, 3)
	dup.T[1] = dup.T[0]
	if err := dup.Check(); !errors.Is(err, ErrGap) {
		t.Fatalf("Check on duplicate = %v, want ErrGap", err)
	}

	short := ok.Subset(0, 3)
	short.PET = short.PET[:2]
	if err := short.Check(); !errors.Is(err, ErrAlign) {
		t.Fatalf("Check on misaligned = %v, want ErrAlign", err)
	}

	nan := ok.Subset(0, 3)
	nan.P[1] = math.NaN()
	if err := nan.Check(); !errors.Is(err, ErrNotFinite) {
		t.Fatalf("Check on NaN = %v, want ErrNotFinite", err)
	}

	var empty Forcing
	if err := empty.Check(); err != nil {
		t.Fatalf("Check on empty: %v", err)
	}
}

func TestSubsetDoesNotAlias(t *testing.T) {
	frc := Forcing{T: months(2001, time.January, 2), P: []float64{1, 2}, Ta: []float64{3, 4}, PET: []float64{5, 6}}
	s := frc.Subset(0, 2)
	s.P[0] = 99.
	if frc.P[0] != 1. {
		t.Fatalf("Subset aliased the source series")
	}
}

func TestCfsToMM(t *testing.T) {
	// 100 cfs over 31 days is 7.5843 hm³; over 100 km² that is 75.843 mm
	hm3 := CfsToHm3(100., 31)
	if math.Abs(hm3-7.584344) > 1e-5 {
		t.Fatalf("CfsToHm3 = %v, want 7.584344", hm3)
	}
	if mm := CfsToMM(100., 31, 100.); math.Abs(mm-75.84344) > 1e-4 {
		t.Fatalf("CfsToMM = %v, want 75.84344", mm)
	}
}

func TestMonthly(t *testing.T) {
	var dts []time.Time
	var v []float64
	for d := time.Date(2001, 1, 30, 0, 0, 0, 0, time.UTC); d.Before(time.Date(2001, 3, 2, 0, 0, 0, 0, time.UTC)); d = d.AddDate(0, 0, 1) {
		dts = append(dts, d)
		v = append(v, 2.)
	}
	mts, s, n := Monthly(dts, v, Sum)
	if len(mts) != 3 {
		t.Fatalf("Monthly returned %d months, want 3", len(mts))
	}
	wantN := []int{2, 28, 1}
	for k := range wantN {
		if n[k] != wantN[k] {
			t.Errorf("month %d count = %d, want %d", k, n[k], wantN[k])
		}
		if s[k] != 2.*float64(wantN[k]) {
			t.Errorf("month %d sum = %v, want %v", k, s[k], 2.*float64(wantN[k]))
		}
	}
	_, m, _ := Monthly(dts, v, Mean)
	for k := range m {
		if m[k] != 2. {
			t.Errorf("month %d mean = %v, want 2", k, m[k])
		}
	}
}

func TestMonthlyPET(t *testing.T) {
	jul := MonthlyPET(43., time.Date(2001, 7, 1, 0, 0, 0, 0, time.UTC), 20.)
	jan := MonthlyPET(43., time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC), 20.)
	if jul <= jan {
		t.Fatalf("July PET %v not greater than January PET %v at equal temperature", jul, jan)
	}
	if jul < 20. || jul > 300. {
		t.Fatalf("July PET %v mm outside a plausible range at 43°N", jul)
	}
	cold := MonthlyPET(43., time.Date(2001, 7, 1, 0, 0, 0, 0, time.UTC), 5.)
	if cold >= jul || cold < 0. {
		t.Fatalf("PET at 5°C = %v, at 20°C = %v", cold, jul)
	}

	frc := Forcing{T: months(2001, time.June, 2), Ta: []float64{18., 21.}}
	frc.SetPET(43.)
	for j, mt := range frc.T {
		if want := MonthlyPET(43., mt, frc.Ta[j]); frc.PET[j] != want {
			t.Fatalf("SetPET[%d] = %v, want %v", j, frc.PET[j], want)
		}
	}
}

func TestLatitudeFromUTM(t *testing.T) {
	lat, err := LatitudeFromUTM(500000., 4649776., 17) // central meridian, ~42°N
	if err != nil {
		t.Fatalf("LatitudeFromUTM: %v", err)
	}
	if math.Abs(lat-42.) > 0.01 {
		t.Fatalf("LatitudeFromUTM = %v, want ~42", lat)
	}
}

func TestReadCSVAndAlign(t *testing.T) {
	dir := t.TempDir()
	fp := filepath.Join(dir, "frc.csv")
	src := strings.Join([]string{
		"date,P,T,PET",
		"2001-01-01,50,-3,0",
		"2001-02-01,40,-1,2",
		"2001-03-01,60,4,20",
	}, "\n")
	if err := os.WriteFile(fp, []byte(src), 0644); err != nil {
		t.Fatal(err)
	}
	frc, err := ReadCSV(fp)
	if err != nil {
		t.Fatalf("ReadCSV: %v", err)
	}
	if frc.Len() != 3 || frc.P[2] != 60. || frc.Ta[0] != -3. || frc.PET[2] != 20. {
		t.Fatalf("ReadCSV parsed %+v", frc)
	}

	ofp := filepath.Join(dir, "obs.csv")
	if err := os.WriteFile(ofp, []byte("date,Q\n2001-03-01,3\n2001-01-01,1\n2001-02-01,2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	q, err := ReadObs(ofp)
	if err != nil {
		t.Fatalf("ReadObs: %v", err)
	}
	o, err := frc.Align(q)
	if err != nil {
		t.Fatalf("Align: %v", err)
	}
	for j, want := range []float64{1, 2, 3} {
		if o[j] != want {
			t.Fatalf("Align[%d] = %v, want %v", j, o[j], want)
		}
	}
	delete(q, frc.T[1].Unix())
	if _, err := frc.Align(q); err == nil {
		t.Fatalf("Align with a missing month should fail")
	}

	out := filepath.Join(dir, "out.csv")
	if err := frc.WriteCSV(out); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	back, err := ReadCSV(out)
	if err != nil {
		t.Fatalf("ReadCSV after WriteCSV: %v", err)
	}
	if back.Len() != frc.Len() || math.Abs(back.PET[2]-frc.PET[2]) > 1e-6 || !back.T[2].Equal(frc.T[2]) {
		t.Fatalf("WriteCSV/ReadCSV mismatch")
	}
}

func TestParseTable(t *testing.T) {
	ts, vs, err := parseTable(strings.NewReader("date,Q\n2001-01-01,1.5\n2001-02,2.5\n"), "q.csv", 1)
	if err != nil {
		t.Fatalf("parseTable: %v", err)
	}
	if len(ts) != 2 || vs[0][0] != 1.5 || vs[0][1] != 2.5 || ts[1].Month() != time.February {
		t.Fatalf("parseTable = %v %v", ts, vs)
	}
	for _, src := range []string{
		"date,Q\n2001-01-01,x\n2001-02-01,1\n",
		"date,Q\nJan 2001,1\n",
		"date,P,T\n2001-01-01,1\n2001-02-01,1,1\n",
	} {
		if _, _, err := parseTable(strings.NewReader(src), "bad.csv", 2); err == nil {
			t.Errorf("parseTable(%q) accepted malformed input", src)
		}
	}
}

func TestReadCSVRejectsGap(t *testing.T) {
	fp := filepath.Join(t.TempDir(), "frc.csv")
	if err := os.WriteFile(fp, []byte("date,P,T,PET\n2001-01-01,1,1,1\n2001-03-01,1,1,1\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadCSV(fp); !errors.Is(err, ErrGap) {
		t.Fatalf("ReadCSV = %v, want ErrGap", err)
	}
}

func TestIncompleteMessage(t *testing.T) {
	feb := time.Date(2001, 2, 1, 0, 0, 0, 0, time.UTC)
	for _, c := range []struct {
		np, nt int
		want   string
	}{
		{28, 27, "(27 of 28 days)"},
		{26, 28, "(26 of 28 days)"},
	} {
		if got := incomplete(feb, c.np, c.nt); !strings.Contains(got, "2001-02") || !strings.HasSuffix(got, c.want) {
			t.Errorf("incomplete(%d, %d) = %q, want suffix %q", c.np, c.nt, got, c.want)
		}
	}
}

func TestBuild(t *testing.T) {
	d := &Daily{}
	for dt := time.Date(2001, 1, 15, 0, 0, 0, 0, time.UTC); dt.Before(time.Date(2001, 5, 10, 0, 0, 0, 0, time.UTC)); dt = dt.AddDate(0, 0, 1) {
		d.T = append(d.T, dt)
		d.P = append(d.P, 1.)
		d.Ta = append(d.Ta, 10.)
		d.Q = append(d.Q, 100.)
	}
	frc, obs, err := Build(d, 43., 100.)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if frc.Len() != 3 || !frc.T[0].Equal(time.Date(2001, 2, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("Build kept months %v, want Feb..Apr", frc.T)
	}
	if frc.P[0] != 28. || frc.P[1] != 31. {
		t.Fatalf("Build monthly P = %v", frc.P)
	}
	if math.Abs(obs[1]-CfsToMM(100., 31, 100.)) > 1e-9 {
		t.Fatalf("Build obs = %v", obs)
	}
	for j := range frc.PET {
		if frc.PET[j] <= 0. {
			t.Fatalf("Build PET[%d] = %v, want >0", j, frc.PET[j])
		}
	}

	// remove a mid-series day
	d.T = append(d.T[:60:60], d.T[61:]...)
	d.P = append(d.P[:60:60], d.P[61:]...)
	d.Ta = append(d.Ta[:60:60], d.Ta[61:]...)
	d.Q = append(d.Q[:60:60], d.Q[61:]...)
	if _, _, err := Build(d, 43., 100.); !errors.Is(err, ErrGap) {
		t.Fatalf("Build with missing day = %v, want ErrGap", err)
	}
}
