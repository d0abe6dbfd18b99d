package coingecko

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"coindex/internal/api/repository"

	"gorm.io/gorm"
)

const (
	listingPageSize = 100
	upsertWorkers   = 4
)

// SyncService pulls the exchange listing from CoinGecko and upserts it into
// the catalog, matched by slug. Descriptive fields entered by editors are
// never overwritten, only the market-data fields are.
type SyncService struct {
	client        *Client
	exchangeRepo  *repository.ExchangeRepo
	referenceRepo *repository.ReferenceRepo
	logger        *slog.Logger
}

func NewSyncService(
	client *Client,
	exchangeRepo *repository.ExchangeRepo,
	referenceRepo *repository.ReferenceRepo,
	logger *slog.Logger,
) *SyncService {
	return &SyncService{
		client:        client,
		exchangeRepo:  exchangeRepo,
		referenceRepo: referenceRepo,
		logger:        logger,
	}
}

// SyncExchanges walks the listing until an empty page and upserts every
// entry through a worker pool. maxPages <= 0 means no page cap.
func (s *SyncService) SyncExchanges(ctx context.Context, maxPages int) error {
	pool := NewWorkerPool(ctx, upsertWorkers, s.logger)
	pool.Start()

	var synced, failed atomic.Int64

	for page := 1; maxPages <= 0 || page <= maxPages; page++ {
		listings, err := s.client.ListExchanges(ctx, page, listingPageSize)
		if err != nil {
			pool.Shutdown()
			return err
		}
		if len(listings) == 0 {
			break
		}
		s.logger.Info("fetched listing page", "page", page, "entries", len(listings))

		for _, listing := range listings {
			listing := listing
			pool.Submit(func(taskCtx context.Context) error {
				if err := s.upsert(taskCtx, listing); err != nil {
					failed.Add(1)
					return err
				}
				synced.Add(1)
				return nil
			})
		}
	}

	pool.Wait()
	s.logger.Info("exchange sync finished", "synced", synced.Load(), "failed", failed.Load())
	return nil
}

func (s *SyncService) upsert(ctx context.Context, listing ExchangeListing) error {
	if listing.ID == "" || listing.Name == "" {
		return nil
	}

	var volume *float64
	if listing.TradeVolume24hBTC != nil {
		volume = listing.TradeVolume24hBTC
	}

	var yearFounded *int16
	if listing.YearEstablished != nil {
		year := int16(*listing.YearEstablished)
		yearFounded = &year
	}

	countryID := s.resolveCountry(ctx, listing.Country)

	return s.exchangeRepo.UpsertMarketData(ctx, listing.ID, listing.Name, volume, countryID, yearFounded)
}

// resolveCountry maps the provider's free-text country name to a reference
// row. Unknown names are tolerated; the field just stays empty.
func (s *SyncService) resolveCountry(ctx context.Context, name *string) *int64 {
	if name == nil || *name == "" {
		return nil
	}
	country, err := s.referenceRepo.FindCountryByName(ctx, *name)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Warn("country lookup failed", "name", *name, "error", err)
		}
		return nil
	}
	return &country.ID
}
