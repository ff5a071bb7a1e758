package cli

import (
	"context"

	"github.com/dmitrijs2005/followupdesk/internal/client/export"
	"github.com/dmitrijs2005/followupdesk/internal/client/models"
)

// recordsView is the last listing shown, kept so REPL lines can page through
// or narrow it.
type recordsView struct {
	filters    models.RecordFilters
	pagination models.Pagination
}

func (a *App) ListRecords(ctx context.Context, filters models.RecordFilters) error {
	page, err := a.recordService.List(ctx, filters)
	if err != nil {
		return a.failed(ctx, "Failed to load records", err)
	}
	printRecords(a.out, page)

	filters.Page = page.Pagination.Page
	a.lastRecords = &recordsView{filters: filters, pagination: page.Pagination}
	return nil
}

// TurnRecordsPage lists the page delta pages away from the last listing,
// keeping its filters.
func (a *App) TurnRecordsPage(ctx context.Context, delta int) error {
	if a.lastRecords == nil {
		return &userError{msg: "No records listed yet, run records list first"}
	}
	target := a.lastRecords.pagination.Page + delta
	if target < 1 || target > a.lastRecords.pagination.TotalPages {
		a.printf("No more pages\n")
		return nil
	}
	return a.ListRecords(ctx, a.lastRecords.filters.WithPage(target))
}

// RefineRecords adds filters to the last listing and starts again from the
// first page.
func (a *App) RefineRecords(ctx context.Context, filters models.RecordFilters) error {
	var base models.RecordFilters
	if a.lastRecords != nil {
		base = a.lastRecords.filters
	}
	return a.ListRecords(ctx, base.Merge(filters))
}

// ShowRecord prints a record followed by the first page of its remarks.
func (a *App) ShowRecord(ctx context.Context, id int64) error {
	rec, err := a.recordService.Get(ctx, id)
	if err != nil {
		return a.failed(ctx, "Failed to load record", err)
	}
	printRecord(a.out, rec)

	remarks, err := a.remarkService.List(ctx, id, models.DefaultPage, models.DefaultLimit)
	if err != nil {
		return a.failed(ctx, "Failed to load remarks", err)
	}
	a.printf("\nRemarks:\n")
	printRemarks(a.out, remarks)
	return nil
}

func (a *App) UpdateRecord(ctx context.Context, id int64, data models.UpdateRecordData) error {
	rec, err := a.recordService.Update(ctx, id, data)
	if err != nil {
		return a.failed(ctx, "Failed to update record", err)
	}
	a.printf("Record updated successfully\n")
	printRecord(a.out, rec)
	return nil
}

func (a *App) UploadRecords(ctx context.Context, path string) error {
	res, err := a.recordService.Upload(ctx, path)
	if err != nil {
		return a.failed(ctx, "Failed to upload file", err)
	}
	a.printf("Successfully uploaded %d records\n", res.Count)
	return nil
}

// DownloadRecords exports the filtered records to dir, or to the configured
// S3 bucket when toS3 is set.
func (a *App) DownloadRecords(ctx context.Context, filters models.RecordFilters, dir string, toS3 bool) error {
	var sink export.Sink = export.NewFileSink(dir)
	if toS3 {
		s3, err := a.newS3Sink(ctx)
		if err != nil {
			return a.failed(ctx, "Failed to download records", err)
		}
		sink = s3
	}

	location, err := a.recordService.Download(ctx, filters, sink)
	if err != nil {
		return a.failed(ctx, "Failed to download records", err)
	}
	a.printf("Records saved to %s\n", location)
	return nil
}
