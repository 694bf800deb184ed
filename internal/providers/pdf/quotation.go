package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	pricingdomain "github.com/ParthhMahajann/rera-quotation-system/internal/pricing/domain"
	quotationdomain "github.com/ParthhMahajann/rera-quotation-system/internal/quotation/domain"
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateQuotation(_ context.Context, q *quotationdomain.Quotation) (io.Reader, error) {
	if q == nil {
		return nil, fmt.Errorf("quotation is required")
	}

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "RERA Registration Quotation", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(24,
		col.New(6).Add(
			text.New("Quotation: "+q.ID, props.Text{Top: 0}),
			text.New("Date: "+q.CreatedAt.Format("02 Jan 2006"), props.Text{Top: 4}),
			text.New("Validity: "+q.Validity, props.Text{Top: 8}),
			text.New("Payment schedule: "+q.PaymentSchedule, props.Text{Top: 12}),
		),
		col.New(6).Add(
			text.New(q.DeveloperName, props.Text{Style: fontstyle.Bold}),
			text.New(projectLine(q), props.Text{Top: 5}),
			text.New(contactLine(q), props.Text{Top: 9}),
		),
	)

	m.AddRow(10,
		text.NewCol(8, "Service", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Base", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, header := range q.PricingBreakdown.Data() {
		m.AddRow(8,
			text.NewCol(12, header.Header, props.Text{Style: fontstyle.Bold, Size: 10}),
		)
		for _, svc := range header.Services {
			m.AddRow(8,
				text.NewCol(8, serviceLine(svc), props.Text{Size: 9}),
				text.NewCol(2, formatAmount(svc.BaseAmount), props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, formatAmount(svc.TotalAmount), props.Text{Size: 9, Align: align.Right}),
			)
		}
		m.AddRow(8,
			col.New(8),
			text.NewCol(2, "Header total", props.Text{Size: 9}),
			text.NewCol(2, formatAmount(header.HeaderTotal), props.Text{Size: 9, Align: align.Right}),
		)
	}

	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Total", props.Text{Size: 9}),
		text.NewCol(2, formatAmount(q.TotalAmount), props.Text{Size: 9, Align: align.Right}),
	)
	if q.DiscountAmount > 0 || q.DiscountPercent > 0 {
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Discount", props.Text{Size: 9}),
			text.NewCol(2, discountLine(q), props.Text{Size: 9, Align: align.Right}),
		)
	}
	m.AddRow(10,
		col.New(8),
		text.NewCol(2, "Amount due", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, formatAmount(q.TotalAmount), props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	if terms := append(append([]string{}, q.ApplicableTerms...), q.CustomTerms...); len(terms) > 0 {
		m.AddRow(10,
			text.NewCol(12, "Terms and Conditions", props.Text{Style: fontstyle.Bold, Size: 10, Top: 4}),
		)
		for i, term := range terms {
			m.AddRow(6,
				text.NewCol(12, fmt.Sprintf("%d. %s", i+1, term), props.Text{Size: 8}),
			)
		}
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func serviceLine(svc pricingdomain.PricedService) string {
	if len(svc.SubServices) == 0 {
		return svc.Name
	}
	names := make([]string, 0, len(svc.SubServices))
	for _, sub := range svc.SubServices {
		names = append(names, sub.Name)
	}
	return fmt.Sprintf("%s (%s)", svc.Name, strings.Join(names, ", "))
}

func projectLine(q *quotationdomain.Quotation) string {
	if q.ProjectName == "" {
		return q.ProjectRegion
	}
	return fmt.Sprintf("%s, %s", q.ProjectName, q.ProjectRegion)
}

func contactLine(q *quotationdomain.Quotation) string {
	parts := make([]string, 0, 2)
	if q.ContactMobile != "" {
		parts = append(parts, q.ContactMobile)
	}
	if q.ContactEmail != "" {
		parts = append(parts, q.ContactEmail)
	}
	return strings.Join(parts, " | ")
}

func discountLine(q *quotationdomain.Quotation) string {
	if q.DiscountPercent > 0 {
		return fmt.Sprintf("%.2f%%", q.DiscountPercent)
	}
	return formatAmount(q.DiscountAmount)
}

func formatAmount(v float64) string {
	return fmt.Sprintf("Rs %.2f", v)
}
