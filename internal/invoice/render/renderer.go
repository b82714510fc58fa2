package render

import (
	"fmt"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"go.uber.org/zap"

	"github.com/invobook/invobook/internal/invoice/totals"
	"github.com/invobook/invobook/internal/invoice/words"
)

// Stage identifies a completed layout phase. Stages are reported in the
// fixed order below for every render.
type Stage string

const (
	StageStart    Stage = "start"
	StageHeader   Stage = "header"
	StageCustomer Stage = "customer"
	StageItems    Stage = "items"
	StageTotals   Stage = "totals"
	StageFooter   Stage = "footer"
	StageDone     Stage = "done"
)

type Renderer struct {
	log *zap.Logger
}

func NewRenderer(log *zap.Logger) *Renderer {
	return &Renderer{log: log.Named("invoice.render")}
}

// Render produces the invoice document in a single synchronous pass.
// Callers on an interactive path should go through the generate package
// instead.
func (r *Renderer) Render(in Input) (*Document, error) {
	return r.RenderWithProgress(in, nil)
}

// RenderWithProgress is Render with a stage callback, invoked after each
// band is laid out. The callback must not block.
func (r *Renderer) RenderWithProgress(in Input, onStage func(Stage)) (*Document, error) {
	notify := func(s Stage) {
		if onStage != nil {
			onStage(s)
		}
	}

	in.Settings.Split = in.Settings.Split.withDefaults()

	notify(StageStart)

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	r.addHeader(m, in)
	notify(StageHeader)

	r.addBillTo(m, in)
	notify(StageCustomer)

	r.addItems(m, in)
	notify(StageItems)

	r.addTotals(m, in)
	notify(StageTotals)

	r.addFooter(m, in)
	notify(StageFooter)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate invoice document: %w", err)
	}

	notify(StageDone)
	return &Document{inner: doc}, nil
}

// addHeader lays out the fixed-height header band: document title, the
// optional logo, and the right-aligned business identity block. The whole
// band is one row so it can never be split across pages.
func (r *Renderer) addHeader(m core.Maroto, in Input) {
	left := col.New(4).Add(
		text.New("TAX INVOICE", props.Text{
			Size:  16,
			Style: fontstyle.Bold,
		}),
	)

	if in.Settings.ShowLogo && in.Business.Logo != "" {
		raw, ext, err := decodeImageBlob(in.Business.Logo)
		if err != nil {
			// Degrade to a logo-less header rather than aborting the render.
			r.log.Warn("logo could not be placed", zap.Error(err))
		} else {
			left.Add(image.NewFromBytes(raw, ext, props.Rect{
				Top:     10,
				Percent: 70,
			}))
		}
	}

	identity := []string{
		in.Business.Name,
		in.Business.AddressLine1,
		in.Business.AddressLine2,
		joinNonEmpty(", ", in.Business.City, in.Business.State, in.Business.Pin),
		joinNonEmpty(" | ", in.Business.Phone, in.Business.Email),
	}
	if in.Business.TaxID != "" {
		identity = append(identity, "GSTIN: "+in.Business.TaxID)
	}

	right := col.New(8)
	top := 0.0
	for i, v := range identity {
		if v == "" {
			continue
		}
		style := fontstyle.Normal
		size := 9.0
		if i == 0 {
			style = fontstyle.Bold
			size = 11
		}
		right.Add(text.New(v, props.Text{
			Top:   top,
			Size:  size,
			Style: style,
			Align: align.Right,
		}))
		top += 5
	}

	m.AddRow(40, left, right)
}

// addBillTo lays out the two-column bill-to / invoice-meta band.
func (r *Renderer) addBillTo(m core.Maroto, in Input) {
	billTo := col.New(6).Add(
		text.New("BILL TO", props.Text{Size: 8, Style: fontstyle.Bold}),
		text.New(in.Invoice.CustomerName, props.Text{Top: 5, Size: 10, Style: fontstyle.Bold}),
		// Long addresses word-wrap within the half-width column.
		text.New(in.Invoice.CustomerAddress, props.Text{Top: 10, Size: 9}),
		text.New(joinNonEmpty(" | ", in.Invoice.CustomerPhone, in.Invoice.CustomerEmail), props.Text{Top: 24, Size: 9}),
	)

	meta := col.New(6).Add(
		text.New("Invoice No: "+in.Invoice.Number, props.Text{Size: 9, Align: align.Right}),
		text.New("Date: "+in.Invoice.Date.Format("02 Jan 2006"), props.Text{Top: 5, Size: 9, Align: align.Right}),
	)
	if in.Invoice.PlaceOfSupply != "" {
		meta.Add(text.New("Place of Supply: "+in.Invoice.PlaceOfSupply, props.Text{Top: 10, Size: 9, Align: align.Right}))
	}

	m.AddRow(32, billTo, meta)
}

// addItems lays out the line-items table. Each item is one row: maroto
// breaks the page between rows when the next row would overflow, and
// never inside one, so a single item is always fully contained in one
// page's content region.
func (r *Renderer) addItems(m core.Maroto, in Input) {
	header := props.Text{Size: 8.5, Style: fontstyle.Bold}
	headerRight := props.Text{Size: 8.5, Style: fontstyle.Bold, Align: align.Right}

	m.AddRow(8,
		text.NewCol(1, "#", header),
		text.NewCol(3, "Item", header),
		text.NewCol(1, "Qty", headerRight),
		text.NewCol(1, "Unit", header),
		text.NewCol(2, "Price", headerRight),
		text.NewCol(1, "Disc", headerRight),
		text.NewCol(1, "Tax", headerRight),
		text.NewCol(2, "Amount", headerRight),
	)
	m.AddRow(1, line.NewCol(12))

	cell := props.Text{Size: 9}
	cellRight := props.Text{Size: 9, Align: align.Right}
	symbol := in.Settings.CurrencySymbol

	for i, l := range in.Lines {
		unit := l.Unit
		if unit == "" {
			unit = "PCS"
		}
		m.AddRow(7,
			text.NewCol(1, fmt.Sprintf("%d", i+1), cell),
			text.NewCol(3, l.Name, cell),
			text.NewCol(1, formatQuantity(l.Quantity), cellRight),
			text.NewCol(1, unit, cell),
			text.NewCol(2, FormatAmount(symbol, l.Price), cellRight),
			text.NewCol(1, formatPercent(l.Discount), cellRight),
			text.NewCol(1, formatPercent(l.TaxRate), cellRight),
			text.NewCol(2, FormatAmount(symbol, l.Amount), cellRight),
		)
	}

	m.AddRow(1, line.NewCol(12))
}

// addTotals lays out the tax breakdown and the totals block as one atomic
// row so the pair is never separated by a page break.
func (r *Renderer) addTotals(m core.Maroto, in Input) {
	split := in.Settings.Split
	symbol := in.Settings.CurrencySymbol

	primaryRate := in.Invoice.TaxRate * split.Fraction
	secondaryRate := in.Invoice.TaxRate - primaryRate
	primaryAmount := in.Totals.TaxAmount * split.Fraction
	secondaryAmount := in.Totals.TaxAmount - primaryAmount

	breakdown := col.New(6).Add(
		text.New(taxLabel(in.Settings.TaxLabel)+" BREAKDOWN", props.Text{Size: 8, Style: fontstyle.Bold}),
		text.New(fmt.Sprintf("Taxable Value: %s", FormatAmount(symbol, in.Totals.TaxableAmount)), props.Text{Top: 5, Size: 9}),
		text.New(fmt.Sprintf("%s @ %s: %s", split.PrimaryName, formatPercent(primaryRate), FormatAmount(symbol, primaryAmount)), props.Text{Top: 10, Size: 9}),
		text.New(fmt.Sprintf("%s @ %s: %s", split.SecondaryName, formatPercent(secondaryRate), FormatAmount(symbol, secondaryAmount)), props.Text{Top: 15, Size: 9}),
	)

	totalsCol := col.New(6)
	top := 0.0
	for _, l := range totalsSummary(symbol, in.Totals) {
		style := props.Text{Top: top, Size: 9, Align: align.Right}
		if l.bold {
			top++
			style = props.Text{Top: top, Size: 12, Style: fontstyle.Bold, Align: align.Right}
		}
		totalsCol.Add(text.New(l.label+": "+l.value, style))
		top += 5
	}

	m.AddRow(30, breakdown, totalsCol)
}

type totalLine struct {
	label string
	value string
	bold  bool
}

// totalsSummary is the printed reconciliation: subtotal, less the
// invoice-level discount when one applies, plus tax and round-off, equals
// the grand total.
func totalsSummary(symbol string, t totals.Totals) []totalLine {
	lines := []totalLine{
		{label: "Subtotal", value: FormatAmount(symbol, t.Subtotal)},
	}
	if t.DiscountAmount != 0 {
		lines = append(lines, totalLine{label: "Discount", value: FormatSigned(symbol, -t.DiscountAmount)})
	}
	return append(lines,
		totalLine{label: "Tax", value: FormatAmount(symbol, t.TaxAmount)},
		totalLine{label: "Round Off", value: FormatSigned(symbol, t.RoundOff)},
		totalLine{label: "TOTAL", value: FormatAmount(symbol, t.Total), bold: true},
	)
}

// addFooter lays out the amount-in-words, the notes, and the signature
// band, again as one atomic row.
func (r *Renderer) addFooter(m core.Maroto, in Input) {
	inWords := words.NumberToWords(int64(in.Totals.Total))

	left := col.New(7).Add(
		text.New("Amount in Words", props.Text{Size: 8, Style: fontstyle.Bold}),
		text.New(inWords+" Only", props.Text{Top: 4, Size: 9}),
	)
	if strings.TrimSpace(in.Invoice.Notes) != "" {
		left.Add(
			text.New("Notes", props.Text{Top: 14, Size: 8, Style: fontstyle.Bold}),
			text.New(in.Invoice.Notes, props.Text{Top: 18, Size: 8.5}),
		)
	}

	right := col.New(5)
	if in.Business.Signature != "" {
		raw, ext, err := decodeImageBlob(in.Business.Signature)
		if err != nil {
			r.log.Warn("signature could not be placed", zap.Error(err))
		} else {
			right.Add(image.NewFromBytes(raw, ext, props.Rect{
				Top:     2,
				Percent: 55,
				Center:  true,
			}))
		}
	}
	right.Add(
		line.New(props.Line{OffsetPercent: 72, SizePercent: 70}),
		text.New("Authorised Signatory", props.Text{
			Top:   32,
			Size:  8.5,
			Align: align.Center,
		}),
	)

	m.AddRow(42, left, right)
}

func taxLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "GST"
	}
	return strings.ToUpper(label)
}

func joinNonEmpty(sep string, parts ...string) string {
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
