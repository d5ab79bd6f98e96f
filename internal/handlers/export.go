package handlers

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/gdg-garage/registration-api/internal/csvexport"
)

type ExportRequest struct {
	Search string `query:"search" doc:"Substring matched against name, email, college and branch"`
}

type ExportResponse struct {
	ContentType        string `header:"Content-Type"`
	ContentDisposition string `header:"Content-Disposition"`
	CacheControl       string `header:"Cache-Control"`
	Body               []byte
}

// ExportFilename names the attachment after the UTC date of the export.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("registrations_%s.csv", now.UTC().Format("2006-01-02"))
}

func (h *RegistrationHandler) HandleExport(ctx context.Context, input *ExportRequest) (*ExportResponse, error) {
	ctx, span := tracer.Start(ctx, "registration.export")
	defer span.End()

	registrations, err := h.store.ListFiltered(ctx, input.Search)
	if err != nil {
		return nil, h.storageFailure(ctx, span, "list", err, MsgExportFailed)
	}
	span.SetAttributes(attribute.Int("export.rows", len(registrations)))

	var buf bytes.Buffer
	if err := csvexport.Write(&buf, registrations); err != nil {
		return nil, h.storageFailure(ctx, span, "encode", err, MsgExportFailed)
	}
	h.metrics.IncrementExports()

	return &ExportResponse{
		ContentType:        "text/csv",
		ContentDisposition: fmt.Sprintf(`attachment; filename="%s"`, ExportFilename(h.now())),
		CacheControl:       "no-cache",
		Body:               buf.Bytes(),
	}, nil
}
