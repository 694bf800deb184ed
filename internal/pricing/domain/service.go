package domain

import "context"

// Service computes quotation cost breakdowns. Implementations are pure
// over catalog and input: no persistence, no authentication.
type Service interface {
	Calculate(ctx context.Context, req Request) (*Result, error)
}
