package testresults

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/okian/podium/internal/domain/model"
)

// ResultsHeader is the column order of the results file.
var ResultsHeader = []string{
	"ID", "Name", "Sex", "Age", "Height", "Weight", "Team", "NOC",
	"Games", "Year", "Season", "City", "Sport", "Event", "Medal",
}

// RegionsHeader is the column order of the region lookup file.
var RegionsHeader = []string{"NOC", "region", "notes"}

// WriteResultsCSV writes results in the raw file layout.
func WriteResultsCSV(w io.Writer, results []model.RawResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ResultsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range results {
		medal := r.Medal.String()
		if medal == "" {
			medal = "NA"
		}
		rec := []string{
			strconv.Itoa(r.ID), r.Name, string(r.Sex),
			formatFloat(r.Age), formatFloat(r.Height), formatFloat(r.Weight),
			r.Team, r.NOC, r.Games, strconv.Itoa(r.Year), r.Season, r.City,
			r.Sport, r.Event, medal,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("write row %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteRegionsCSV writes the region lookup file.
func WriteRegionsCSV(w io.Writer, regions []model.RegionEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RegionsHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, e := range regions {
		if err := cw.Write([]string{e.NOC, e.Region, e.Notes}); err != nil {
			return fmt.Errorf("write region %s: %w", e.NOC, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatFloat(f model.NullFloat) string {
	if !f.Valid {
		return "NA"
	}
	return strconv.FormatFloat(f.Value, 'f', -1, 64)
}
