package storage

import "imoveis-sp/models"

// ListingStore is the interface a persistence backend must satisfy.
type ListingStore interface {
	Write(listings []models.Listing) error
	FetchAll() ([]models.Listing, error)
	Close() error
}
