package pricetable

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bakewatt/bakewatt/core/model"
)

const goldCSV = `date_cet,netherlands_nl,germany_de
2025-01-01 00:00:00,50.0,45.0
not-a-timestamp,10,10
2025-01-01 01:00:00,,40.0
2025-01-02 00:00:00,60.5,
2025-01-01 02:00:00,55.0,44.0
2025-01-01 00:00:00,99.0,99.0
`

func parseGold(t *testing.T) *Table {
	t.Helper()
	table, err := Parse(strings.NewReader(goldCSV))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return table
}

func TestParseDropsAndSorts(t *testing.T) {
	table := parseGold(t)
	// 6 data rows: one unparseable timestamp dropped, one duplicate dropped
	if table.Len() != 4 {
		t.Fatalf("len = %d, want 4", table.Len())
	}
	slice, err := table.SelectSlice("netherlands_nl", "2025-01-01")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	for i := 1; i < len(slice); i++ {
		if !slice[i-1].Time.Before(slice[i].Time) {
			t.Fatalf("slice not strictly ascending at %d", i)
		}
	}
	// duplicate timestamp: the first row wins
	if slice[0].Price != 50.0 {
		t.Fatalf("duplicate row not resolved to first occurrence: %v", slice[0].Price)
	}
}

func TestParseMissingTimestampColumn(t *testing.T) {
	_, err := Parse(strings.NewReader("time,netherlands_nl\n2025-01-01 00:00:00,50\n"))
	if err == nil {
		t.Fatalf("expected error for missing date_cet column")
	}
}

func TestMarkets(t *testing.T) {
	table := parseGold(t)
	markets := table.Markets()
	if len(markets) != 2 || markets[0] != "netherlands_nl" || markets[1] != "germany_de" {
		t.Fatalf("markets = %v", markets)
	}
	if table.DefaultMarket() != "netherlands_nl" {
		t.Fatalf("default market = %s", table.DefaultMarket())
	}
	if !table.HasMarket("germany_de") || table.HasMarket("france_fr") {
		t.Fatalf("HasMarket misbehaves")
	}
}

func TestDefaultMarketFallsBackToFirstColumn(t *testing.T) {
	table, err := Parse(strings.NewReader("date_cet,belgium_be\n2025-01-01 00:00:00,50\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if table.DefaultMarket() != "belgium_be" {
		t.Fatalf("default market = %s", table.DefaultMarket())
	}
}

func TestDates(t *testing.T) {
	table := parseGold(t)
	dates := table.Dates()
	if len(dates) != 2 || dates[0] != "2025-01-01" || dates[1] != "2025-01-02" {
		t.Fatalf("dates = %v", dates)
	}
	if table.LatestDate() != "2025-01-02" {
		t.Fatalf("latest date = %s", table.LatestDate())
	}
}

func TestSelectSliceSkipsMissingPrices(t *testing.T) {
	table := parseGold(t)
	slice, err := table.SelectSlice("netherlands_nl", "2025-01-01")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	// the 01:00 row has no dutch price
	if len(slice) != 2 {
		t.Fatalf("len = %d, want 2", len(slice))
	}
	want := time.Date(2025, 1, 1, 2, 0, 0, 0, time.UTC)
	if !slice[1].Time.Equal(want) || slice[1].Price != 55.0 {
		t.Fatalf("slice[1] = %+v", slice[1])
	}
}

func TestSelectSliceEmpty(t *testing.T) {
	table := parseGold(t)
	_, err := table.SelectSlice("germany_de", "2025-01-02")
	var empty *model.EmptySliceError
	if !errors.As(err, &empty) {
		t.Fatalf("expected EmptySliceError, got %v", err)
	}
	if empty.Market != "germany_de" || empty.Date != "2025-01-02" {
		t.Fatalf("error fields: %+v", empty)
	}
}

func TestSelectSliceUnknownMarket(t *testing.T) {
	table := parseGold(t)
	_, err := table.SelectSlice("france_fr", "2025-01-01")
	var unknown *model.UnknownMarketError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownMarketError, got %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/gold.csv")
	var notFound *model.DataNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected DataNotFoundError, got %v", err)
	}
}

func TestParseTimestampLayouts(t *testing.T) {
	csv := "date_cet,netherlands_nl\n" +
		"2025-01-01T06:00:00,10\n" +
		"2025-01-01 07:00,20\n" +
		"2025-01-01T08:00:00Z,30\n"
	table, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if table.Len() != 3 {
		t.Fatalf("len = %d, want 3", table.Len())
	}
}
