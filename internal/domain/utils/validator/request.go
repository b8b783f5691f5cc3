package validator

import (
	"qrbanner/internal/domain/common/errorz"
	"qrbanner/internal/domain/entity"
)

// Request rejects requests that can never render. Runs before any image
// allocation.
func Request(r entity.Request) error {
	if r.URL == "" {
		return errorz.EmptyURL
	}
	return nil
}
