package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/attendance-insights-api/internal/service"
	appErrors "github.com/noah-isme/attendance-insights-api/pkg/errors"
	"github.com/noah-isme/attendance-insights-api/pkg/export"
)

type fakeExportSrv struct {
	result     *service.ExportResult
	err        error
	lastFormat export.Format
}

func (f *fakeExportSrv) SnapshotExport(_ context.Context, _ service.SnapshotRequest, format export.Format) (*service.ExportResult, error) {
	f.lastFormat = format
	return f.result, f.err
}

func (f *fakeExportSrv) SeriesExport(_ context.Context, _ service.SeriesRequest, format export.Format) (*service.ExportResult, error) {
	f.lastFormat = format
	return f.result, f.err
}

func TestExportHandlerSnapshotCSV(t *testing.T) {
	srv := &fakeExportSrv{result: &service.ExportResult{
		Payload:     []byte("Department,Records\nEngineering,1\n"),
		ContentType: "text/csv",
		Filename:    "student_summary.csv",
	}}
	h := NewExportHandler(srv)

	rec, c := getRequest(t, "/exports/snapshot?type=student&format=CSV")
	h.Snapshot(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, export.FormatCSV, srv.lastFormat)
	assert.Equal(t, "text/csv", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="student_summary.csv"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, rec.Body.String(), "Engineering,1")
}

func TestExportHandlerSeriesError(t *testing.T) {
	srv := &fakeExportSrv{err: appErrors.Clone(appErrors.ErrEmptyDataset, "nothing matched")}
	h := NewExportHandler(srv)

	rec, c := getRequest(t, "/exports/series?type=student&format=csv")
	h.Series(c)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestExportHandlerNilService(t *testing.T) {
	h := NewExportHandler(nil)

	rec, c := getRequest(t, "/exports/snapshot?format=csv")
	h.Snapshot(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
