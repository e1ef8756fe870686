// internal/workers/spreadsheet/build-invoice-xlsx/handler.go
package buildinvoicexlsx

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/xuri/excelize/v2"
	"go.opentelemetry.io/otel/attribute"

	apperrors "sheetsmith/internal/common/errors"
	apihttp "sheetsmith/internal/common/http"
	"sheetsmith/internal/common/logger"
	"sheetsmith/internal/common/metrics"
	"sheetsmith/internal/common/observability"
	"sheetsmith/internal/common/validation"
	"sheetsmith/internal/common/workbook"
	"sheetsmith/internal/models"
)

const (
	TaskType = "build-invoice-xlsx"
	Route    = "/invoice.xlsx"
)

type Handler struct {
	config    *Config
	logger    logger.Logger
	obs       *observability.Observability
	validator *validation.Validator
}

func NewHandler(config *Config, log logger.Logger, obs *observability.Observability) *Handler {
	if obs == nil {
		obs = observability.NewNoop()
	}
	return &Handler{
		config:    config,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
		obs:       obs,
		validator: validation.MustValidator(GetInputSchema()),
	}
}

// Filename returns the attachment name for an invoice number.
func Filename(invoiceNumber string) string {
	if invoiceNumber == "" {
		invoiceNumber = models.DefaultInvoiceNumber
	}
	return invoiceNumber + ".xlsx"
}

// Handle serves POST /invoice.xlsx.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContext(r.Context(), h.logger).WithFields(map[string]interface{}{"taskType": TaskType})

	inFlight := metrics.RequestsInFlight.WithLabelValues(TaskType)
	inFlight.Inc()
	defer inFlight.Dec()

	if !h.config.Enabled {
		h.fail(w, r, log, apperrors.NewRendererDisabledError(TaskType))
		return
	}

	body, err := apihttp.ReadJSONBody(r, h.validator)
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	payload, err := models.DecodeInvoicePayload(body)
	if err != nil {
		h.fail(w, r, log, apperrors.NewInvalidPayloadError(err))
		return
	}

	ctx := r.Context()
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	output, err := h.execute(ctx, log, &Input{Invoice: payload})
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	if err := apihttp.WriteAttachment(w, output.Filename, output.Content); err != nil {
		log.Warn("failed to write response", map[string]interface{}{"error": err.Error()})
	}
}

// Execute renders the invoice workbook.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, h.logger, input)
}

func (h *Handler) execute(ctx context.Context, log logger.Logger, input *Input) (*Output, error) {
	start := time.Now()
	invoice := &input.Invoice
	ctx, span := h.obs.StartRender(ctx, TaskType)

	output, cells, err := h.render(ctx, log, invoice)
	duration := time.Since(start)
	if err != nil {
		observability.EndRender(span, err)
		h.obs.RecordRender(ctx, TaskType, "failed", duration)
		return nil, apperrors.NewRenderFailedError(TaskType, err)
	}
	observability.EndRender(span, nil,
		attribute.Int("items", output.ItemRows),
		attribute.Int("footer_row", output.FooterRow),
		attribute.Int("bytes", len(output.Content)),
	)

	metrics.DocumentsRendered.WithLabelValues(TaskType).Inc()
	metrics.RenderDuration.WithLabelValues(TaskType).Observe(duration.Seconds())
	metrics.InvoiceLineItems.Observe(float64(output.ItemRows))
	h.obs.RecordRender(ctx, TaskType, "success", duration)
	h.obs.RecordCells(ctx, TaskType, cells)

	log.Info("invoice rendered", map[string]interface{}{
		"invoiceNumber":   invoice.InvoiceNumber,
		"items":           output.ItemRows,
		"computedAmounts": output.ComputedAmounts,
		"footerRow":       output.FooterRow,
		"bytes":           len(output.Content),
		"durationMs":      duration.Milliseconds(),
	})

	return output, nil
}

func (h *Handler) render(ctx context.Context, log logger.Logger, invoice *models.InvoicePayload) (*Output, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	f, err := workbook.New("sheetsmith")
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()

	if err := f.SetSheetName(workbook.DefaultSheet, SheetName); err != nil {
		return nil, 0, fmt.Errorf("rename sheet: %w", err)
	}

	borderStyle, err := f.NewStyle(&excelize.Style{Border: workbook.ThinBorder(BorderColor)})
	if err != nil {
		return nil, 0, fmt.Errorf("border style: %w", err)
	}
	descriptionStyle, err := f.NewStyle(&excelize.Style{
		Border:    workbook.ThinBorder(BorderColor),
		Alignment: &excelize.Alignment{WrapText: true, Vertical: "top"},
	})
	if err != nil {
		return nil, 0, fmt.Errorf("description style: %w", err)
	}

	sw := workbook.NewWriter(f, SheetName)
	writeHeaderBlock(sw, invoice)
	for _, cw := range ColumnWidths {
		sw.ColWidth(cw.Column, cw.Width)
	}

	for i, label := range TableHeaders {
		sw.Set(FirstTableColumn+i, TableHeaderRow, label)
	}
	sw.Style(FirstTableColumn, TableHeaderRow, LastTableColumn, TableHeaderRow, borderStyle)

	computed := 0
	row := FirstItemRow
	for i, item := range invoice.Items {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}

		amount, ok := computeAmount(item.Quantity, item.UnitPrice, h.config.CurrencySymbols)
		if ok {
			computed++
		} else {
			log.Debug("amount not computed, echoing unit price", map[string]interface{}{
				"row":   row,
				"qty":   item.Quantity.String(),
				"price": item.UnitPrice.String(),
			})
		}

		sw.Set(ColIndex, row, i+1)
		sw.Set(ColDescription, row, FormatDescription(item.SKU, item.Description))
		sw.Set(ColQuantity, row, item.Quantity.Interface())
		sw.Set(ColUnitPrice, row, item.UnitPrice.Interface())
		sw.Set(ColAmount, row, amount.Interface())
		row++
	}
	if row > FirstItemRow {
		sw.Style(FirstTableColumn, FirstItemRow, LastTableColumn, row-1, borderStyle)
		sw.Style(ColDescription, FirstItemRow, ColDescription, row-1, descriptionStyle)
	}
	if row < PaddedUntilRow {
		sw.Style(FirstTableColumn, row, LastTableColumn, PaddedUntilRow-1, borderStyle)
	}

	footerRow := FooterStartRow(len(invoice.Items))
	sw.Set(FooterColumn, footerRow, FooterVATLabel)
	sw.Set(FooterColumn, footerRow+1, FooterTotalLabel)

	if err := sw.Err(); err != nil {
		return nil, 0, err
	}

	content, err := workbook.Bytes(f)
	if err != nil {
		return nil, 0, err
	}

	return &Output{
		Filename:        Filename(invoice.InvoiceNumber),
		Content:         content,
		ItemRows:        len(invoice.Items),
		FooterRow:       footerRow,
		ComputedAmounts: computed,
	}, sw.Cells(), nil
}

func writeHeaderBlock(sw *workbook.Writer, invoice *models.InvoicePayload) {
	label := invoice.DocumentLabel
	if label == "" {
		label = models.DefaultDocumentLabel
	}
	po := invoice.MetaField("po")
	if po == "" {
		po = invoice.PurchaseOrderNumber
	}

	sw.SetCell(HeaderDocumentLabel.Cell, HeaderDocumentLabel.Text(label))
	sw.SetCell(HeaderProject.Cell, HeaderProject.Text(invoice.ProjectName))
	sw.SetCell(HeaderCustomer.Cell, HeaderCustomer.Text(invoice.CustomerField("name")))
	sw.SetCell(HeaderAddress.Cell, HeaderAddress.Text(invoice.CustomerField("address")))
	sw.SetCell(HeaderContact.Cell, HeaderContact.Text(invoice.ClientContact))
	sw.SetCell(HeaderEmail.Cell, HeaderEmail.Text(invoice.CustomerField("email")))
	sw.SetCell(HeaderQuoteNumber.Cell, HeaderQuoteNumber.Text(invoice.InvoiceNumber))
	sw.SetCell(HeaderDate.Cell, HeaderDate.Text(invoice.IssueDate))
	sw.SetCell(HeaderPO.Cell, HeaderPO.Text(po))
	sw.SetCell(HeaderCurrency.Cell, HeaderCurrency.Text(invoice.MetaField("currency")))
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	stdErr := apihttp.WriteError(w, r, log, err)
	metrics.DocumentsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
}
