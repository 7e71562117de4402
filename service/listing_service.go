package service

import (
	"context"
	"fmt"
	"sort"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"deal-underwriter/domain"
	"deal-underwriter/repository"
)

type listingSnapshot struct {
	listings []domain.Listing
	byID     map[string]int
	loadedAt time.Time
}

// ListingService holds the current listing snapshot. It is loaded once at
// startup and replaced wholesale on Refresh; readers share the snapshot by
// reference and must not modify it.
type ListingService struct {
	source      repository.ListingSource
	assumptions domain.Assumptions
	snapshot    atomic.Pointer[listingSnapshot]
	log         zerolog.Logger
}

func NewListingService(
	source repository.ListingSource,
	assumptions domain.Assumptions,
	log zerolog.Logger,
) *ListingService {
	return &ListingService{
		source:      source,
		assumptions: assumptions,
		log:         log.With().Str("service", "listings").Logger(),
	}
}

// Refresh reloads the source and swaps in a new snapshot. On error the
// previous snapshot stays in place.
func (s *ListingService) Refresh(ctx context.Context) error {
	raw, err := s.source.LoadListings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load listings: %w", err)
	}

	snap, err := buildSnapshot(raw)
	if err != nil {
		return err
	}
	s.snapshot.Store(snap)

	s.log.Info().Int("count", len(snap.listings)).Msg("Listings loaded")
	return nil
}

func buildSnapshot(raw []domain.Listing) (*listingSnapshot, error) {
	listings := make([]domain.Listing, 0, len(raw))
	byID := make(map[string]int, len(raw))

	for i, l := range raw {
		if l.Units < 1 {
			return nil, fmt.Errorf("listing %d: %w", i+1, domain.NewInvalidInput("units", "must be at least 1, got %d", l.Units))
		}
		if l.Units > MaxUnits {
			return nil, fmt.Errorf("listing %d: %w", i+1, domain.NewInvalidInput("units", "exceeds the maximum of %d, got %d", MaxUnits, l.Units))
		}
		if err := validateListingFigures(l); err != nil {
			return nil, fmt.Errorf("listing %d: %w", i+1, err)
		}

		l.FullAddress = domain.FullAddress(l.StreetNumber, l.StreetName)
		l.PricePerUnit = l.ListPrice / float64(l.Units)
		l.ID = domain.NewListingID(l.FullAddress, l.Town)

		if _, dup := byID[l.ID]; dup {
			return nil, fmt.Errorf("listing %d: duplicate address %q in %s", i+1, l.FullAddress, l.Town)
		}
		byID[l.ID] = -1
		listings = append(listings, l)
	}

	sort.SliceStable(listings, func(i, j int) bool {
		if listings[i].PricePerUnit != listings[j].PricePerUnit {
			return listings[i].PricePerUnit < listings[j].PricePerUnit
		}
		return listings[i].DaysOnMarket < listings[j].DaysOnMarket
	})
	for i, l := range listings {
		byID[l.ID] = i
	}

	return &listingSnapshot{
		listings: listings,
		byID:     byID,
		loadedAt: time.Now(),
	}, nil
}

func validateListingFigures(l domain.Listing) error {
	if err := requirePositive("list price", l.ListPrice); err != nil {
		return err
	}
	if l.DaysOnMarket < 0 {
		return domain.NewInvalidInput("days on market", "must not be negative, got %d", l.DaysOnMarket)
	}
	if l.GrossRents != nil {
		if err := requireNonNegative("gross rents", *l.GrossRents); err != nil {
			return err
		}
	}
	if l.Taxes != nil {
		if err := requireNonNegative("taxes", *l.Taxes); err != nil {
			return err
		}
	}
	return nil
}

func (s *ListingService) current() *listingSnapshot {
	if snap := s.snapshot.Load(); snap != nil {
		return snap
	}
	return &listingSnapshot{}
}

// Listings returns the snapshot sorted by price per unit, then days on market.
func (s *ListingService) Listings() []domain.Listing {
	return s.current().listings
}

func (s *ListingService) Count() int {
	return len(s.current().listings)
}

// LoadedAt reports when the current snapshot was built; zero before the
// first successful Refresh.
func (s *ListingService) LoadedAt() time.Time {
	return s.current().loadedAt
}

func (s *ListingService) Get(id string) (domain.Listing, error) {
	snap := s.current()
	i, ok := snap.byID[id]
	if !ok {
		return domain.Listing{}, fmt.Errorf("%w: %s", domain.ErrListingNotFound, id)
	}
	return snap.listings[i], nil
}

// Defaults pre-fills deal and projection inputs for a listing from the
// configured assumptions, preferring the listing's own rents and taxes.
func (s *ListingService) Defaults(id string) (domain.ListingDefaults, error) {
	listing, err := s.Get(id)
	if err != nil {
		return domain.ListingDefaults{}, err
	}
	a := s.assumptions

	rentPerUnit := a.RentPerUnit
	if listing.GrossRents != nil {
		rentPerUnit = *listing.GrossRents
	}
	annualTaxes := a.AnnualTaxes
	if listing.Taxes != nil {
		annualTaxes = *listing.Taxes
	}

	rents := make([]float64, listing.Units)
	for i := range rents {
		rents[i] = rentPerUnit
	}

	deal := domain.DealInputs{
		Price:          listing.ListPrice,
		Units:          listing.Units,
		DownPaymentPct: a.DownPaymentPct,
		InterestRate:   a.InterestRate,
		LoanTermYears:  a.LoanTermYears,
		MonthlyRents:   rents,
		PropertyTax:    annualTaxes / 12,
		PMFeePct:       a.PMFeePct,
		VacancyPct:     a.VacancyPct,
	}

	projection := domain.ProjectionInput{
		Years:                 a.HorizonYears,
		InitialRent:           rentPerUnit * float64(listing.Units),
		RentGrowthPct:         a.RentGrowthPct,
		InitialPrice:          listing.ListPrice,
		AppreciationPct:       a.AppreciationPct,
		InflationPct:          a.InflationPct,
		InitialTaxes:          annualTaxes,
		TaxGrowthPct:          a.TaxGrowthPct,
		AlternativeReturnPct:  a.AlternativeReturnPct,
		AlternativeInvestment: listing.ListPrice * a.DownPaymentPct / 100,
	}

	return domain.ListingDefaults{
		Listing:    listing,
		Deal:       deal,
		Projection: projection,
	}, nil
}

// Close releases the underlying source.
func (s *ListingService) Close() error {
	return s.source.Close()
}

// ListingRefreshJob adapts ListingService.Refresh to the scheduler.
type ListingRefreshJob struct {
	listings *ListingService
	timeout  time.Duration
}

func NewListingRefreshJob(listings *ListingService, timeout time.Duration) *ListingRefreshJob {
	return &ListingRefreshJob{listings: listings, timeout: timeout}
}

func (j *ListingRefreshJob) Name() string {
	return "listing_refresh"
}

func (j *ListingRefreshJob) Run() error {
	ctx, cancel := context.WithTimeout(context.Background(), j.timeout)
	defer cancel()
	return j.listings.Refresh(ctx)
}
