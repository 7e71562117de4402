package repository

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"deal-underwriter/domain"
)

// Column headers of the listings export.
const (
	ColumnListPrice    = "List Price"
	ColumnUnits        = "Number of Units"
	ColumnStreetNumber = "Street #"
	ColumnStreetName   = "Street Name"
	ColumnTown         = "Town"
	ColumnDaysOnMarket = "Days on Market"
	ColumnGrossRents   = "GrossRents"
	ColumnTaxes        = "Taxes"
)

var requiredColumns = []string{
	ColumnListPrice,
	ColumnUnits,
	ColumnStreetNumber,
	ColumnStreetName,
	ColumnTown,
	ColumnDaysOnMarket,
}

type CSVListingSource struct {
	path string
}

func NewCSVListingSource(path string) *CSVListingSource {
	return &CSVListingSource{path: path}
}

func (s *CSVListingSource) LoadListings(ctx context.Context) ([]domain.Listing, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open listings file: %w", err)
	}
	defer f.Close()

	return ReadListingsCSV(ctx, f)
}

func (s *CSVListingSource) Close() error {
	return nil
}

// ReadListingsCSV parses a listings export. Any unparsable value fails the
// whole read with its row number; nothing is defaulted to zero.
func ReadListingsCSV(ctx context.Context, r io.Reader) ([]domain.Listing, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("listings file is empty")
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))] = i
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("missing required column %q", col)
		}
	}

	var listings []domain.Listing
	for row := 2; ; row++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		listing, err := parseListingRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

func parseListingRecord(record []string, index map[string]int) (domain.Listing, error) {
	field := func(col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	price, err := parseAmount(ColumnListPrice, field(ColumnListPrice))
	if err != nil {
		return domain.Listing{}, err
	}
	units, err := parseCount(ColumnUnits, field(ColumnUnits))
	if err != nil {
		return domain.Listing{}, err
	}
	dom, err := parseCount(ColumnDaysOnMarket, field(ColumnDaysOnMarket))
	if err != nil {
		return domain.Listing{}, err
	}

	listing := domain.Listing{
		StreetNumber: field(ColumnStreetNumber),
		StreetName:   field(ColumnStreetName),
		Town:         field(ColumnTown),
		Units:        units,
		ListPrice:    price,
		DaysOnMarket: dom,
	}

	if raw := field(ColumnGrossRents); raw != "" {
		rents, err := parseAmount(ColumnGrossRents, raw)
		if err != nil {
			return domain.Listing{}, err
		}
		listing.GrossRents = &rents
	}
	if raw := field(ColumnTaxes); raw != "" {
		taxes, err := parseAmount(ColumnTaxes, raw)
		if err != nil {
			return domain.Listing{}, err
		}
		listing.Taxes = &taxes
	}

	return listing, nil
}

// parseAmount accepts plain numbers and dollar-formatted ones like "$1,250".
func parseAmount(col, raw string) (float64, error) {
	cleaned := strings.NewReplacer("$", "", ",", "").Replace(raw)
	if cleaned == "" {
		return 0, domain.NewInvalidInput(col, "is empty")
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domain.NewInvalidInput(col, "%q is not a number", raw)
	}
	return v, nil
}

func parseCount(col, raw string) (int, error) {
	v, err := parseAmount(col, raw)
	if err != nil {
		return 0, err
	}
	if v != float64(int(v)) {
		return 0, domain.NewInvalidInput(col, "%q is not a whole number", raw)
	}
	return int(v), nil
}
