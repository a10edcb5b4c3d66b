// Package pricetable loads and slices the gold hourly price table.
//
// The table is one CSV file produced by an upstream pipeline: a `date_cet`
// timestamp column plus one €/MWh column per market. It is read once and held
// immutable for the process lifetime.
package pricetable

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"time"

	"github.com/bakewatt/bakewatt/core/model"
)

// TimestampColumn is the required timestamp column of the gold table.
const TimestampColumn = "date_cet"

// DefaultMarketName is preferred as the initial market selection when present.
const DefaultMarketName = "netherlands_nl"

// DateFormat renders calendar dates in selectors and API parameters.
const DateFormat = "2006-01-02"

var timestampLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	time.RFC3339,
	"2006-01-02 15:04",
}

// Row is one hour of the table. Markets without a price for that hour are
// absent from Prices.
type Row struct {
	Time   time.Time
	Prices map[string]float64
}

// Table is the in-memory gold table: rows sorted ascending by timestamp,
// timestamps unique, read-only after load.
type Table struct {
	markets []string
	rows    []Row
}

// Load reads the gold table from path. A missing file is reported as
// *model.DataNotFoundError before anything else runs.
func Load(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &model.DataNotFoundError{Path: path}
		}
		return nil, fmt.Errorf("open gold table: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse decodes a gold CSV. Rows with unparseable timestamps are dropped, the
// rest are sorted ascending by timestamp; the first row wins on duplicates.
func Parse(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	tsIdx := -1
	var markets []string
	for i, col := range header {
		if col == TimestampColumn {
			tsIdx = i
			continue
		}
		markets = append(markets, col)
	}
	if tsIdx == -1 {
		return nil, fmt.Errorf("missing %s column", TimestampColumn)
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if tsIdx >= len(rec) {
			continue
		}
		ts, ok := parseTimestamp(rec[tsIdx])
		if !ok {
			continue
		}
		row := Row{Time: ts, Prices: make(map[string]float64, len(markets))}
		m := 0
		for i, cell := range rec {
			if i == tsIdx {
				continue
			}
			if m >= len(markets) {
				break
			}
			name := markets[m]
			m++
			if cell == "" {
				continue
			}
			price, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			row.Prices[name] = price
		}
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Time.Before(rows[j].Time) })
	rows = dedupe(rows)
	return &Table{markets: markets, rows: rows}, nil
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts, true
		}
	}
	return time.Time{}, false
}

// dedupe keeps the first row of each timestamp. Rows are already sorted.
func dedupe(rows []Row) []Row {
	out := rows[:0]
	for _, r := range rows {
		if len(out) > 0 && out[len(out)-1].Time.Equal(r.Time) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Len returns the number of hourly rows.
func (t *Table) Len() int { return len(t.rows) }

// Markets returns the market columns in header order.
func (t *Table) Markets() []string {
	out := make([]string, len(t.markets))
	copy(out, t.markets)
	return out
}

// DefaultMarket returns netherlands_nl when present, else the first column.
func (t *Table) DefaultMarket() string {
	for _, m := range t.markets {
		if m == DefaultMarketName {
			return m
		}
	}
	if len(t.markets) > 0 {
		return t.markets[0]
	}
	return ""
}

// HasMarket reports whether name is a column of the table.
func (t *Table) HasMarket(name string) bool {
	for _, m := range t.markets {
		if m == name {
			return true
		}
	}
	return false
}

// Dates returns the distinct calendar dates of the table, ascending,
// formatted YYYY-MM-DD.
func (t *Table) Dates() []string {
	var dates []string
	for _, r := range t.rows {
		d := r.Time.Format(DateFormat)
		if len(dates) == 0 || dates[len(dates)-1] != d {
			dates = append(dates, d)
		}
	}
	return dates
}

// LatestDate returns the most recent calendar date, or "" for an empty table.
func (t *Table) LatestDate() string {
	if len(t.rows) == 0 {
		return ""
	}
	return t.rows[len(t.rows)-1].Time.Format(DateFormat)
}

// SelectSlice returns the market's prices for one calendar date, in time
// order, missing hours dropped. Prices stay in €/MWh.
func (t *Table) SelectSlice(market, date string) ([]model.PricePoint, error) {
	if !t.HasMarket(market) {
		return nil, &model.UnknownMarketError{Market: market}
	}
	var slice []model.PricePoint
	for _, r := range t.rows {
		if r.Time.Format(DateFormat) != date {
			continue
		}
		price, ok := r.Prices[market]
		if !ok {
			continue
		}
		slice = append(slice, model.PricePoint{Time: r.Time, Price: price})
	}
	if len(slice) == 0 {
		return nil, &model.EmptySliceError{Market: market, Date: date}
	}
	return slice, nil
}
