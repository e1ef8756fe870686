// internal/workers/spreadsheet/convert-html-table/handler.go
package converthtmltable

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

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
	TaskType  = "convert-html-table"
	Route     = "/html-to-excel.xlsx"
	Filename  = "table.xlsx"
	SheetName = workbook.DefaultSheet
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

// Handle serves POST /html-to-excel.xlsx.
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

	var payload models.HTMLPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		h.fail(w, r, log, apperrors.NewInvalidPayloadError(err))
		return
	}

	ctx := r.Context()
	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	output, err := h.execute(ctx, log, &Input{HTML: payload.HTML})
	if err != nil {
		h.fail(w, r, log, err)
		return
	}

	if err := apihttp.WriteAttachment(w, output.Filename, output.Content); err != nil {
		log.Warn("failed to write response", map[string]interface{}{"error": err.Error()})
	}
}

// Execute converts the first table of the input document into a workbook.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, h.logger, input)
}

func (h *Handler) execute(ctx context.Context, log logger.Logger, input *Input) (*Output, error) {
	start := time.Now()
	ctx, span := h.obs.StartRender(ctx, TaskType)

	table, content, cells, err := render(ctx, input.HTML)
	duration := time.Since(start)
	if err != nil {
		observability.EndRender(span, err)
		h.obs.RecordRender(ctx, TaskType, "failed", duration)
		return nil, apperrors.NewRenderFailedError(TaskType, err)
	}
	observability.EndRender(span, nil,
		attribute.Bool("table_found", table.Found),
		attribute.Int("rows", table.RowCount()),
		attribute.Int("bytes", len(content)),
	)

	metrics.DocumentsRendered.WithLabelValues(TaskType).Inc()
	metrics.RenderDuration.WithLabelValues(TaskType).Observe(duration.Seconds())
	metrics.HTMLTableRows.Observe(float64(table.RowCount()))
	h.obs.RecordRender(ctx, TaskType, "success", duration)
	h.obs.RecordCells(ctx, TaskType, cells)

	if !table.Found {
		log.Warn("no table found, writing empty sheet", map[string]interface{}{"htmlBytes": len(input.HTML)})
	}
	log.Info("html table converted", map[string]interface{}{
		"rows":       table.RowCount(),
		"columns":    table.Width,
		"bytes":      len(content),
		"durationMs": duration.Milliseconds(),
	})

	return &Output{Filename: Filename, Content: content, Table: table}, nil
}

func render(ctx context.Context, html string) (*Table, []byte, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, 0, err
	}

	table, err := ExtractFirstTable(html)
	if err != nil {
		return nil, nil, 0, err
	}

	if err := ctx.Err(); err != nil {
		return nil, nil, 0, err
	}

	f, err := workbook.New("sheetsmith")
	if err != nil {
		return nil, nil, 0, err
	}
	defer f.Close()

	sw := workbook.NewWriter(f, SheetName)
	row := 1
	for _, labels := range table.Header {
		for i, label := range labels {
			if table.InferredHeader {
				sw.Set(i+1, row, i)
				continue
			}
			writeText(sw, i+1, row, label)
		}
		row++
	}
	for _, values := range table.Rows {
		for i, v := range values {
			writeText(sw, i+1, row, v)
		}
		row++
	}
	if err := sw.Err(); err != nil {
		return nil, nil, 0, fmt.Errorf("write table: %w", err)
	}

	content, err := workbook.Bytes(f)
	if err != nil {
		return nil, nil, 0, err
	}
	return table, content, sw.Cells(), nil
}

func writeText(sw *workbook.Writer, col, row int, text string) {
	if text == "" {
		return
	}
	sw.Set(col, row, text)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	stdErr := apihttp.WriteError(w, r, log, err)
	metrics.DocumentsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
}
