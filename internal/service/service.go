package service

import (
	"github.com/tlcanalytics/backend/internal/domain"
)

// TripStore is re-exported from domain for convenience
type TripStore = domain.TripStore
