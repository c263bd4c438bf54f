package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type ComplianceReportData struct {
	ProducerName string
	Jurisdiction string
	GeneratedAt  string

	Score int
	Grade string

	Factors []ReportFactor

	Obligated        bool
	ObligationReason string

	Fees []ReportFeeLine

	TotalFee      string
	TotalDiscount string
	CurrencyCode  string
}

type ReportFactor struct {
	Name   string
	Value  string
	Points int
}

type ReportFeeLine struct {
	MaterialType string
	WeightGrams  string
	BaseRate     string
	AdjustedRate string
	Fee          string
}

type Provider interface {
	GenerateComplianceReport(ctx context.Context, data ComplianceReportData) (io.Reader, error)
}

type PDFProvider struct{}

func New() Provider {
	return &PDFProvider{}
}

func (p *PDFProvider) GenerateComplianceReport(_ context.Context, data ComplianceReportData) (io.Reader, error) {
	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(12, "Packaging Compliance Report", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
	)

	m.AddRow(20,
		col.New(6).Add(
			text.New("Producer: "+data.ProducerName, props.Text{Top: 0}),
			text.New("Jurisdiction: "+data.Jurisdiction, props.Text{Top: 4}),
			text.New("Generated: "+data.GeneratedAt, props.Text{Top: 8}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Compliance score: %d / 100", data.Score), props.Text{Style: fontstyle.Bold, Top: 0}),
			text.New("Grade: "+data.Grade, props.Text{Style: fontstyle.Bold, Top: 4}),
			text.New(obligationLine(data), props.Text{Top: 8}),
		),
	)

	m.AddRow(10,
		text.NewCol(8, "Compliance factor", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Input", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Points", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)
	for _, factor := range data.Factors {
		m.AddRow(8,
			text.NewCol(8, factor.Name, props.Text{Size: 9}),
			text.NewCol(2, factor.Value, props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, fmt.Sprintf("%d", factor.Points), props.Text{Size: 9, Align: align.Right}),
		)
	}

	if len(data.Fees) > 0 {
		m.AddRow(12,
			text.NewCol(12, "Fee breakdown", props.Text{Style: fontstyle.Bold, Size: 12, Top: 4}),
		)
		m.AddRow(10,
			text.NewCol(4, "Material", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(2, "Weight (g)", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(2, "Base rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(2, "Adj. rate", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
			text.NewCol(2, "Fee", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
		for _, line := range data.Fees {
			m.AddRow(8,
				text.NewCol(4, line.MaterialType, props.Text{Size: 9}),
				text.NewCol(2, line.WeightGrams, props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, line.BaseRate, props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, line.AdjustedRate, props.Text{Size: 9, Align: align.Right}),
				text.NewCol(2, line.Fee, props.Text{Size: 9, Align: align.Right}),
			)
		}
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Total discount", props.Text{Size: 9}),
			text.NewCol(2, data.TotalDiscount+" "+data.CurrencyCode, props.Text{Size: 9, Align: align.Right}),
		)
		m.AddRow(10,
			col.New(8),
			text.NewCol(2, "Total fee", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.NewCol(2, data.TotalFee+" "+data.CurrencyCode, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

func obligationLine(data ComplianceReportData) string {
	if data.Obligated {
		return "Obligated: yes (" + data.ObligationReason + ")"
	}
	return "Obligated: no (" + data.ObligationReason + ")"
}
