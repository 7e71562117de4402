package repository

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"deal-underwriter/domain"
)

const sampleCSV = "\ufeffList Price,Number of Units,Street #,Street Name,Town,Days on Market,GrossRents,Taxes\n" +
	"\"$300,000\",5,12,Elm St,Springfield,14,\"$1,100\",\"$3,600\"\n" +
	"240000,4,40,Main St,Shelbyville,3,,\n"

func TestReadListingsCSV(t *testing.T) {
	listings, err := ReadListingsCSV(context.Background(), strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, listings, 2)

	first := listings[0]
	assert.Equal(t, 300000.0, first.ListPrice)
	assert.Equal(t, 5, first.Units)
	assert.Equal(t, "12", first.StreetNumber)
	assert.Equal(t, "Elm St", first.StreetName)
	assert.Equal(t, "Springfield", first.Town)
	assert.Equal(t, 14, first.DaysOnMarket)
	require.NotNil(t, first.GrossRents)
	assert.Equal(t, 1100.0, *first.GrossRents)
	require.NotNil(t, first.Taxes)
	assert.Equal(t, 3600.0, *first.Taxes)

	second := listings[1]
	assert.Equal(t, 240000.0, second.ListPrice)
	assert.Nil(t, second.GrossRents)
	assert.Nil(t, second.Taxes)
}

func TestReadListingsCSV_OptionalColumnsAbsent(t *testing.T) {
	data := "Town,Street Name,Street #,Number of Units,List Price,Days on Market\n" +
		"Springfield,Oak Ave,7,2,120000,30\n"

	listings, err := ReadListingsCSV(context.Background(), strings.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []domain.Listing{{
		StreetNumber: "7",
		StreetName:   "Oak Ave",
		Town:         "Springfield",
		Units:        2,
		ListPrice:    120000,
		DaysOnMarket: 30,
	}}, listings)
}

func TestReadListingsCSV_Errors(t *testing.T) {
	header := "List Price,Number of Units,Street #,Street Name,Town,Days on Market\n"

	tests := []struct {
		name    string
		data    string
		wantErr string
	}{
		{"empty file", "", "empty"},
		{"missing column", "List Price,Number of Units,Street #,Street Name,Town\n", `"Days on Market"`},
		{"bad price", header + "100000,2,1,A St,X,1\nabc,2,2,B St,X,1\n", "row 3"},
		{"fractional units", header + "100000,2.5,1,A St,X,1\n", "whole number"},
		{"nan price", header + "NaN,2,1,A St,X,1\n", "not a number"},
		{"infinite price", header + "Inf,2,1,A St,X,1\n", "not a number"},
		{"empty price", header + ",2,1,A St,X,1\n", "is empty"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadListingsCSV(context.Background(), strings.NewReader(tt.data))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestReadListingsCSV_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ReadListingsCSV(ctx, strings.NewReader(sampleCSV))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCSVListingSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	source := NewCSVListingSource(path)
	defer source.Close()

	listings, err := source.LoadListings(context.Background())
	require.NoError(t, err)
	assert.Len(t, listings, 2)

	_, err = NewCSVListingSource(filepath.Join(t.TempDir(), "missing.csv")).LoadListings(context.Background())
	assert.ErrorIs(t, err, os.ErrNotExist)
}
