// Package pdf renders client-facing quotation documents.
package pdf

import (
	"context"
	"io"

	quotationdomain "github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
)

type Provider interface {
	GenerateQuotation(ctx context.Context, q *quotationdomain.Quotation) (io.Reader, error)
}
