package forcing

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/maseology/mmio"
)

var dateLayouts = []string{"2006-01-02", "2006-01", "2006/01/02", "2006-01-02 15:04:05"}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range dateLayouts {
		if t, err := time.Parse(l, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// readTable reads a csv with a header line and a leading date column
func readTable(fp string, ncol int) ([]time.Time, [][]float64, error) {
	if _, ok := mmio.FileExists(fp); !ok {
		return nil, nil, fmt.Errorf(" file %s does not exist", fp)
	}
	f, err := os.Open(fp)
	if err != nil {
		return nil, nil, fmt.Errorf(" %v", err)
	}
	defer f.Close()
	return parseTable(f, fp, ncol)
}

func parseTable(r io.Reader, name string, ncol int) ([]time.Time, [][]float64, error) {
	var ferr error
	ts, vs, ln := []time.Time{}, make([][]float64, ncol), 1
	for rec := range mmio.LoadCSV(r) {
		ln++
		if ferr != nil {
			continue // drain
		}
		if len(rec) < ncol+1 {
			ferr = fmt.Errorf(" %s line %d: expecting %d columns, found %d", name, ln, ncol+1, len(rec))
			continue
		}
		t, err := parseDate(rec[0])
		if err != nil {
			ferr = fmt.Errorf(" %s line %d: %v", name, ln, err)
			continue
		}
		ts = append(ts, t)
		for k := 0; k < ncol; k++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(rec[k+1]), 64)
			if err != nil {
				ferr = fmt.Errorf(" %s line %d: %v", name, ln, err)
				break
			}
			vs[k] = append(vs[k], v)
		}
	}
	if ferr != nil {
		return nil, nil, ferr
	}
	return ts, vs, nil
}

// ReadCSV loads a monthly forcing table: date,P,T,PET
func ReadCSV(fp string) (*Forcing, error) {
	ts, vs, err := readTable(fp, 3)
	if err != nil {
		return nil, fmt.Errorf("forcing.ReadCSV%v", err)
	}
	for j := range ts {
		ts[j] = MonthStart(ts[j])
	}
	frc := Forcing{T: ts, P: vs[0], Ta: vs[1], PET: vs[2]}
	if err := frc.Check(); err != nil {
		return nil, fmt.Errorf("forcing.ReadCSV %s: %w", fp, err)
	}
	return &frc, nil
}

// ReadObs loads a monthly observed flow-depth table (date,Q in mm/mon) keyed by month
func ReadObs(fp string) (map[int64]float64, error) {
	c, err := mmio.ReadCsvDateFloat(fp)
	if err != nil {
		return nil, fmt.Errorf("forcing.ReadObs: %v", err)
	}
	o := make(map[int64]float64, len(c))
	for k, v := range c {
		o[MonthStart(time.Unix(k, 0).UTC()).Unix()] = v
	}
	return o, nil
}

// Align returns observations ordered to match the forcing months; every forcing month must be observed
func (frc *Forcing) Align(obs map[int64]float64) ([]float64, error) {
	o := make([]float64, len(frc.T))
	for j, t := range frc.T {
		v, ok := obs[MonthStart(t).Unix()]
		if !ok {
			return nil, fmt.Errorf("forcing.Align: no observation for %s", t.Format("2006-01"))
		}
		o[j] = v
	}
	return o, nil
}

// WriteCSV saves the forcing as date,P,T,PET
func (frc *Forcing) WriteCSV(fp string) error {
	csvw := mmio.NewCSVwriter(fp)
	defer csvw.Close()
	if err := csvw.WriteHead("date,P,T,PET"); err != nil {
		return fmt.Errorf("forcing.WriteCSV %v", err)
	}
	for j, t := range frc.T {
		csvw.WriteLine(t.Format("2006-01-02"), frc.P[j], frc.Ta[j], frc.PET[j])
	}
	return nil
}
