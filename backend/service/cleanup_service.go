package service

import (
	"context"
	"fmt"
	"time"

	"filedrop/backend/common"
	"filedrop/backend/library/storage"
	"filedrop/backend/model"
)

// CleanupReport aggregates one sweep run. Deleted counts successful
// tombstones; Errors counts per-item failures (storage or registry). A
// record whose storage delete failed is still tombstoned, so it shows up in
// both counts and never in a later sweep.
type CleanupReport struct {
	TotalFound int       `json:"total_found"`
	Deleted    int       `json:"deleted"`
	Errors     int       `json:"errors"`
	Timestamp  time.Time `json:"timestamp"`
}

// CleanupExpiredFiles retires every non-permanent, non-deleted record past
// its expiration. Items fail independently; only a registry scan failure
// aborts the sweep.
func CleanupExpiredFiles(ctx context.Context) (*CleanupReport, error) {
	now := time.Now()
	expired, err := model.FindExpiredFiles(now)
	if err != nil {
		return nil, fmt.Errorf("scan for expired files: %w", err)
	}

	report := &CleanupReport{
		TotalFound: len(expired),
		Timestamp:  now,
	}
	common.SysLog(fmt.Sprintf("cleanup: found %d expired files", len(expired)))

	gateway, gatewayErr := storage.GetGateway()

	for _, file := range expired {
		if gatewayErr != nil {
			report.Errors++
			common.SysError(fmt.Sprintf("cleanup: cannot delete object for file %d: %v", file.Id, gatewayErr))
		} else if err := gateway.DeleteObject(ctx, file.StorageKey); err != nil {
			report.Errors++
			common.SysError(fmt.Sprintf("cleanup: failed to delete object for file %d: %v", file.Id, err))
		}

		// The tombstone is written regardless of the storage outcome: the
		// registry is the source of truth and an orphaned object is a
		// recoverable inconsistency.
		if err := file.MarkDeleted(now, model.DeletedBySystem); err != nil {
			report.Errors++
			common.SysError(fmt.Sprintf("cleanup: failed to tombstone file %d: %v", file.Id, err))
			continue
		}
		report.Deleted++
	}

	common.SysLog(fmt.Sprintf("cleanup: deleted %d, errors %d", report.Deleted, report.Errors))
	return report, nil
}
