// Package ingest reads the results and region lookup CSV files into model
// values. Readers are header-driven: column order does not matter, unknown
// columns are ignored and "NA" or empty cells become null.
package ingest

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/okian/podium/internal/domain/model"
)

// Results file columns.
const (
	colID     = "id"
	colName   = "name"
	colSex    = "sex"
	colAge    = "age"
	colHeight = "height"
	colWeight = "weight"
	colTeam   = "team"
	colNOC    = "noc"
	colGames  = "games"
	colYear   = "year"
	colSeason = "season"
	colCity   = "city"
	colSport  = "sport"
	colEvent  = "event"
	colMedal  = "medal"
)

// Region file columns.
const (
	colRegion = "region"
	colNotes  = "notes"
)

const (
	naValue = "NA"
	// ctxCheckEvery is how many records are read between cancellation checks.
	ctxCheckEvery = 4096
)

var resultColumns = []string{ //nolint:gochecknoglobals // fixed column set
	colID, colName, colSex, colAge, colHeight, colWeight, colTeam, colNOC,
	colGames, colYear, colSeason, colCity, colSport, colEvent, colMedal,
}

var regionColumns = []string{colNOC, colRegion} //nolint:gochecknoglobals // fixed column set

// Dataset is the pair of inputs the normalizer consumes.
type Dataset struct {
	Results []model.RawResult
	Regions []model.RegionEntry
}

// header maps a lower-cased column name to its record index.
type header map[string]int

func readHeader(cr *csv.Reader, required []string) (header, error) {
	rec, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: empty input", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrMalformedValue, err)
	}
	h := make(header, len(rec))
	for i, name := range rec {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	var missing []string
	for _, c := range required {
		if _, ok := h[c]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingColumn, strings.Join(missing, ", "))
	}
	return h, nil
}

func (h header) get(rec []string, col string) string {
	i, ok := h[col]
	if !ok || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func newReader(r io.Reader) *csv.Reader {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true
	return cr
}

// ReadResults parses the per-athlete results file.
func ReadResults(r io.Reader) ([]model.RawResult, error) {
	return readResults(context.Background(), r)
}

func readResults(ctx context.Context, r io.Reader) ([]model.RawResult, error) {
	cr := newReader(r)
	h, err := readHeader(cr, resultColumns)
	if err != nil {
		return nil, err
	}

	var out []model.RawResult
	for n := 0; ; n++ {
		if n%ctxCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
		}
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedValue, err)
		}
		line, _ := cr.FieldPos(0)
		res, err := parseResult(h, rec)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, res)
	}
}

func parseResult(h header, rec []string) (model.RawResult, error) {
	var (
		res model.RawResult
		err error
	)
	if res.ID, err = parseInt(h.get(rec, colID), colID); err != nil {
		return res, err
	}
	if res.Year, err = parseInt(h.get(rec, colYear), colYear); err != nil {
		return res, err
	}
	if res.Age, err = parseNullFloat(h.get(rec, colAge), colAge); err != nil {
		return res, err
	}
	if res.Height, err = parseNullFloat(h.get(rec, colHeight), colHeight); err != nil {
		return res, err
	}
	if res.Weight, err = parseNullFloat(h.get(rec, colWeight), colWeight); err != nil {
		return res, err
	}
	if res.Sex, err = model.ParseSex(h.get(rec, colSex)); err != nil {
		return res, fmt.Errorf("%w: %w", ErrMalformedValue, err)
	}
	if res.Medal, err = model.ParseMedal(h.get(rec, colMedal)); err != nil {
		return res, fmt.Errorf("%w: %w", ErrMalformedValue, err)
	}
	res.Name = h.get(rec, colName)
	res.Team = h.get(rec, colTeam)
	res.NOC = h.get(rec, colNOC)
	res.Games = h.get(rec, colGames)
	res.Season = h.get(rec, colSeason)
	res.City = h.get(rec, colCity)
	res.Sport = h.get(rec, colSport)
	res.Event = h.get(rec, colEvent)
	return res, nil
}

func parseInt(s, col string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q", ErrMalformedValue, col, s)
	}
	return v, nil
}

func parseNullFloat(s, col string) (model.NullFloat, error) {
	if s == "" || s == naValue {
		return model.NullFloat{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return model.NullFloat{}, fmt.Errorf("%w: %s %q", ErrMalformedValue, col, s)
	}
	return model.Float(v), nil
}

// ReadRegions parses the NOC to region lookup. An input with no entries is
// rejected with ErrEmptyLookup.
func ReadRegions(r io.Reader) ([]model.RegionEntry, error) {
	cr := newReader(r)
	h, err := readHeader(cr, regionColumns)
	if err != nil {
		return nil, err
	}

	var out []model.RegionEntry
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedValue, err)
		}
		region := h.get(rec, colRegion)
		if region == naValue {
			region = ""
		}
		out = append(out, model.RegionEntry{
			NOC:    h.get(rec, colNOC),
			Region: region,
			Notes:  h.get(rec, colNotes),
		})
	}
	if len(out) == 0 {
		return nil, ErrEmptyLookup
	}
	return out, nil
}

// LoadFiles reads both files concurrently.
func LoadFiles(ctx context.Context, resultsPath, regionsPath string) (Dataset, error) {
	var ds Dataset
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return readFile(resultsPath, func(f io.Reader) (err error) {
			ds.Results, err = readResults(gctx, f)
			return err
		})
	})
	g.Go(func() error {
		return readFile(regionsPath, func(f io.Reader) (err error) {
			ds.Regions, err = ReadRegions(f)
			return err
		})
	})
	if err := g.Wait(); err != nil {
		return Dataset{}, err
	}
	return ds, nil
}

func readFile(path string, read func(io.Reader) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReadFile, err)
	}
	defer func() { _ = f.Close() }()
	if err := read(f); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
