package model

import "fmt"

// DataNotFoundError reports a missing gold table file. It is fatal for the
// session: nothing can be computed without the table.
type DataNotFoundError struct {
	Path string
}

func (e *DataNotFoundError) Error() string {
	return fmt.Sprintf("gold table not found at %s", e.Path)
}

// EmptySliceError reports a market/date selection with no valid rows. It ends
// the current request only; the caller may retry with another selection.
type EmptySliceError struct {
	Market string
	Date   string
}

func (e *EmptySliceError) Error() string {
	return fmt.Sprintf("no data for market %s on %s", e.Market, e.Date)
}

// UnknownMarketError reports a market that is not a column of the loaded table.
type UnknownMarketError struct {
	Market string
}

func (e *UnknownMarketError) Error() string {
	return fmt.Sprintf("unknown market: %s", e.Market)
}
