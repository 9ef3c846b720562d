package model

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// DeletedBySystem marks tombstones written by the expiration sweeper rather
// than a user identity.
const DeletedBySystem = "system"

// File is a metadata record for one uploaded object. The record is the
// single source of truth for lifecycle state; the object in storage is a
// best-effort side effect. Active-ness is never stored: a file is active iff
// it has no tombstone and is either permanent or not yet past expires_at.
type File struct {
	Id            int64      `json:"id" gorm:"primaryKey"`
	Filename      string     `json:"filename" gorm:"size:255;not null"`
	Size          int64      `json:"size"`
	ContentType   string     `json:"content_type" gorm:"size:128"`
	StorageKey    string     `json:"-" gorm:"uniqueIndex;size:512;not null"`
	PublicToken   string     `json:"public_token" gorm:"uniqueIndex;size:36;not null"`
	OwnerId       *int64     `json:"owner_id" gorm:"index"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     *time.Time `json:"expires_at" gorm:"index"`
	IsPermanent   bool       `json:"is_permanent"`
	DownloadCount int64      `json:"download_count"`
	DeletedAt     *time.Time `json:"-" gorm:"index"`
	DeletedBy     string     `json:"-" gorm:"size:64"`
}

func (file *File) Insert() error {
	return DB.Create(file).Error
}

func GetFileById(id int64) (*File, error) {
	if id == 0 {
		return nil, errors.New("id is empty")
	}
	var file File
	if err := DB.First(&file, id).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// GetFileByToken returns the record for a public token, tombstoned or not.
// Visibility rules live in the service layer.
func GetFileByToken(token string) (*File, error) {
	if token == "" {
		return nil, errors.New("token is empty")
	}
	var file File
	if err := DB.Where("public_token = ?", token).First(&file).Error; err != nil {
		return nil, err
	}
	return &file, nil
}

// GetFilesByOwner returns the owner's non-deleted records, newest first.
func GetFilesByOwner(ownerId int64) ([]*File, error) {
	var files []*File
	err := DB.Where("owner_id = ? AND deleted_at IS NULL", ownerId).
		Order("created_at desc").Find(&files).Error
	return files, err
}

// FindExpiredFiles returns every non-permanent, non-deleted record whose
// expiration clock has passed.
func FindExpiredFiles(now time.Time) ([]*File, error) {
	var files []*File
	err := DB.Where("deleted_at IS NULL AND is_permanent = ? AND expires_at < ?", false, now).
		Find(&files).Error
	return files, err
}

// UpdateSize overwrites the declared size. Tombstoned records are terminal,
// so the update is guarded the same way MarkDeleted is.
func (file *File) UpdateSize(size int64) error {
	err := DB.Model(&File{}).
		Where("id = ? AND deleted_at IS NULL", file.Id).
		UpdateColumn("size", size).Error
	if err == nil && file.DeletedAt == nil {
		file.Size = size
	}
	return err
}

// IncrementDownloadCount bumps the counter in a single UPDATE expression so
// concurrent downloads never lose increments to read-modify-write races.
func IncrementDownloadCount(id int64) error {
	return DB.Model(&File{}).Where("id = ?", id).
		UpdateColumn("download_count", gorm.Expr("download_count + ?", 1)).Error
}

var ErrAlreadyDeleted = errors.New("file is already deleted")

// MarkDeleted writes the tombstone. A tombstoned record is terminal, so the
// update is guarded against records that already carry one.
func (file *File) MarkDeleted(now time.Time, deletedBy string) error {
	result := DB.Model(&File{}).
		Where("id = ? AND deleted_at IS NULL", file.Id).
		Updates(map[string]interface{}{
			"deleted_at": now,
			"deleted_by": deletedBy,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAlreadyDeleted
	}
	file.DeletedAt = &now
	file.DeletedBy = deletedBy
	return nil
}

// Restore clears a tombstone. Administrative escape hatch only; it is the one
// sanctioned mutation of a deleted record.
func (file *File) Restore() error {
	err := DB.Model(&File{}).Where("id = ?", file.Id).
		Updates(map[string]interface{}{
			"deleted_at": nil,
			"deleted_by": "",
		}).Error
	if err == nil {
		file.DeletedAt = nil
		file.DeletedBy = ""
	}
	return err
}

func (file *File) IsDeleted() bool {
	return file.DeletedAt != nil
}

func (file *File) IsExpired(now time.Time) bool {
	return !file.IsPermanent && file.ExpiresAt != nil && file.ExpiresAt.Before(now)
}

// Stats aggregates for the admin dashboard.
type FileStats struct {
	TotalFiles        int64 `json:"total_files"`
	DeletedFiles      int64 `json:"deleted_files"`
	ExpiredFiles      int64 `json:"expired_files"`
	TotalStorageBytes int64 `json:"total_storage_bytes"`
	TotalDownloads    int64 `json:"total_downloads"`
	TotalUsers        int64 `json:"total_users"`
}

func GetFileStats(now time.Time) (*FileStats, error) {
	var stats FileStats
	if err := DB.Model(&File{}).Where("deleted_at IS NULL").Count(&stats.TotalFiles).Error; err != nil {
		return nil, err
	}
	if err := DB.Model(&File{}).Where("deleted_at IS NOT NULL").Count(&stats.DeletedFiles).Error; err != nil {
		return nil, err
	}
	if err := DB.Model(&File{}).Where("deleted_at IS NULL AND is_permanent = ? AND expires_at < ?", false, now).
		Count(&stats.ExpiredFiles).Error; err != nil {
		return nil, err
	}
	if err := DB.Model(&File{}).Where("deleted_at IS NULL").
		Select("COALESCE(SUM(size), 0)").Scan(&stats.TotalStorageBytes).Error; err != nil {
		return nil, err
	}
	if err := DB.Model(&File{}).Select("COALESCE(SUM(download_count), 0)").Scan(&stats.TotalDownloads).Error; err != nil {
		return nil, err
	}
	stats.TotalUsers = CountUsers()
	return &stats, nil
}
