package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"filedrop/backend/common"
	mcerrors "filedrop/backend/common/errors"
	"filedrop/backend/library/storage"
	"filedrop/backend/model"
)

// PublicFileMeta is the anonymous view of a file record. Expiration shows up
// as data, never as an error, so a client can render "expired" without the
// read failing.
type PublicFileMeta struct {
	Id            int64      `json:"id"`
	Filename      string     `json:"filename"`
	Size          int64      `json:"size"`
	ContentType   string     `json:"content_type"`
	DownloadCount int64      `json:"download_count"`
	ExpiresAt     *time.Time `json:"expires_at"`
	IsPermanent   bool       `json:"is_permanent"`
	CreatedAt     time.Time  `json:"created_at"`
}

// ResolveMetadata resolves a public token for a metadata read. Tombstoned
// records are indistinguishable from records that never existed.
func ResolveMetadata(token string) (*PublicFileMeta, error) {
	file, err := model.GetFileByToken(token)
	if err != nil || file.IsDeleted() {
		return nil, NewError(mcerrors.ErrFileNotFound, "file not found")
	}
	return &PublicFileMeta{
		Id:            file.Id,
		Filename:      file.Filename,
		Size:          file.Size,
		ContentType:   file.ContentType,
		DownloadCount: file.DownloadCount,
		ExpiresAt:     file.ExpiresAt,
		IsPermanent:   file.IsPermanent,
		CreatedAt:     file.CreatedAt,
	}, nil
}

// ResolveForDownload resolves a public token for the download action. Unlike
// metadata reads, a past-expiry file hard-fails here with a Gone error.
func ResolveForDownload(token string) (*model.File, error) {
	file, err := model.GetFileByToken(token)
	if err != nil || file.IsDeleted() {
		return nil, NewError(mcerrors.ErrFileNotFound, "file not found")
	}
	if file.IsExpired(time.Now()) {
		return nil, NewError(mcerrors.ErrFileGone, "file has expired")
	}
	return file, nil
}

// IssueDownload increments the download counter and returns a short-lived
// GET capability. The increment is unconditional on every resolved attempt:
// the counter is a request-count proxy, not a completed-transfer count.
func IssueDownload(ctx context.Context, file *model.File) (string, error) {
	if err := model.IncrementDownloadCount(file.Id); err != nil {
		return "", fmt.Errorf("increment download count: %w", err)
	}
	gateway, err := storage.GetGateway()
	if err != nil {
		return "", NewError(mcerrors.ErrConfiguration, "object storage is not configured")
	}
	url, err := gateway.PresignDownload(ctx, file.StorageKey, common.PresignGetExpirySeconds*time.Second)
	if err != nil {
		return "", fmt.Errorf("issue download capability: %w", err)
	}
	return url, nil
}

// AuthorizeDelete allows admins on any record and owners on their own.
// Records with no owner can only be deleted by an admin.
func AuthorizeDelete(user *model.User, file *model.File) bool {
	if user == nil {
		return false
	}
	if user.IsAdmin() {
		return true
	}
	return file.OwnerId != nil && *file.OwnerId == user.Id
}

// DeleteFile tombstones the record, then best-effort deletes the object. The
// tombstone is the durable truth; a storage failure leaves an orphaned
// object behind and is only logged.
func DeleteFile(ctx context.Context, user *model.User, fileId int64) error {
	file, err := model.GetFileById(fileId)
	if err != nil {
		return NewError(mcerrors.ErrFileNotFound, "file not found")
	}
	if !AuthorizeDelete(user, file) {
		return NewError(mcerrors.ErrForbidden, "you are not allowed to delete this file")
	}
	if err := file.MarkDeleted(time.Now(), strconv.FormatInt(user.Id, 10)); err != nil {
		if err == model.ErrAlreadyDeleted {
			return NewError(mcerrors.ErrFileNotFound, "file not found")
		}
		return fmt.Errorf("mark file deleted: %w", err)
	}

	if gateway, err := storage.GetGateway(); err == nil {
		if err := gateway.DeleteObject(ctx, file.StorageKey); err != nil {
			common.SysError("failed to delete object from storage: " + err.Error())
		}
	}
	return nil
}

// OwnedFile is a file record enriched with its shareable link, for the
// owner's file list.
type OwnedFile struct {
	*model.File
	PublicURL string `json:"public_url"`
}

func ListOwnerFiles(user *model.User) ([]*OwnedFile, error) {
	files, err := model.GetFilesByOwner(user.Id)
	if err != nil {
		return nil, err
	}
	owned := make([]*OwnedFile, 0, len(files))
	for _, file := range files {
		owned = append(owned, &OwnedFile{
			File:      file,
			PublicURL: PublicFileURL(file.PublicToken),
		})
	}
	return owned, nil
}

// RestoreFile clears a tombstone. Admin-only escape hatch, audited in the
// system log.
func RestoreFile(admin *model.User, fileId int64) error {
	file, err := model.GetFileById(fileId)
	if err != nil {
		return NewError(mcerrors.ErrFileNotFound, "file not found")
	}
	if !file.IsDeleted() {
		return NewError(mcerrors.ErrInvalidInput, "file is not deleted")
	}
	if err := file.Restore(); err != nil {
		return fmt.Errorf("restore file: %w", err)
	}
	common.SysLog(fmt.Sprintf("file %d restored by admin %d", file.Id, admin.Id))
	return nil
}
