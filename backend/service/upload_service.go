package service

import (
	"context"
	"fmt"
	"time"

	"filedrop/backend/common"
	mcerrors "filedrop/backend/common/errors"
	"filedrop/backend/library/storage"
	"filedrop/backend/model"

	"github.com/google/uuid"
)

// ReserveResult is everything the client needs to perform the direct-to-
// storage upload and share the file afterwards.
type ReserveResult struct {
	UploadURL   string     `json:"upload_url"`
	FileId      int64      `json:"file_id"`
	PublicToken string     `json:"public_token"`
	ExpiresAt   *time.Time `json:"expires_at"`
	PlanName    string     `json:"plan_name"`
}

// ResolvePlanForUser returns the plan governing an upload. Authenticated
// users must have a resolvable plan; anonymous uploads fall back to the
// configured default plan. Either hole is an operator error, not a caller
// error.
func ResolvePlanForUser(user *model.User) (*model.Plan, error) {
	if user != nil {
		if user.PlanId == nil {
			return nil, NewError(mcerrors.ErrConfiguration, "user has no plan assigned")
		}
		plan, err := model.GetPlanById(*user.PlanId)
		if err != nil {
			return nil, NewError(mcerrors.ErrConfiguration, "user plan not found")
		}
		return plan, nil
	}
	plan, err := model.GetPlanByName(common.DefaultPlanName)
	if err != nil {
		return nil, NewError(mcerrors.ErrConfiguration, "default plan is not configured")
	}
	return plan, nil
}

// ReserveUpload runs the first half of the two-phase upload handshake:
// validate against the plan, persist the reservation, and hand out a
// time-limited PUT capability. The client uploads directly to storage; this
// service never sees the bytes.
func ReserveUpload(ctx context.Context, user *model.User, filename string, size int64, contentType string) (*ReserveResult, error) {
	if filename == "" || size <= 0 {
		return nil, NewError(mcerrors.ErrInvalidInput, "filename and a positive size are required")
	}

	plan, err := ResolvePlanForUser(user)
	if err != nil {
		return nil, err
	}

	if size > plan.MaxFileSize {
		return nil, NewError(mcerrors.ErrQuotaExceeded, fmt.Sprintf(
			"file too large, maximum size for the %s plan is %d bytes", plan.Name, plan.MaxFileSize))
	}

	gateway, err := storage.GetGateway()
	if err != nil {
		return nil, NewError(mcerrors.ErrConfiguration, "object storage is not configured")
	}

	now := time.Now()
	token := uuid.NewString()
	key := storage.BuildStorageKey(now, token, filename)
	isPermanent := plan.RetentionHours >= common.PermanenceThresholdHours

	file := &model.File{
		Filename:    filename,
		Size:        size,
		ContentType: contentType,
		StorageKey:  key,
		PublicToken: token,
		CreatedAt:   now,
		IsPermanent: isPermanent,
	}
	if user != nil {
		file.OwnerId = &user.Id
	}
	if !isPermanent {
		expiresAt := now.Add(time.Duration(plan.RetentionHours) * time.Hour)
		file.ExpiresAt = &expiresAt
	}

	if err := file.Insert(); err != nil {
		return nil, fmt.Errorf("create file record: %w", err)
	}

	uploadURL, err := gateway.PresignUpload(ctx, key, common.PresignPutExpirySeconds*time.Second)
	if err != nil {
		return nil, fmt.Errorf("issue upload capability: %w", err)
	}

	return &ReserveResult{
		UploadURL:   uploadURL,
		FileId:      file.Id,
		PublicToken: token,
		ExpiresAt:   file.ExpiresAt,
		PlanName:    plan.Name,
	}, nil
}

// ConfirmUpload completes the handshake. The reported size overwrites the
// declared one when given; it is trusted as-is, the record never gets
// reconciled against the object actually present in storage.
func ConfirmUpload(fileId int64, reportedSize *int64) (string, error) {
	file, err := model.GetFileById(fileId)
	if err != nil {
		return "", NewError(mcerrors.ErrFileNotFound, "file not found")
	}
	// Deleted records are invisible here like everywhere else, and terminal:
	// confirming must not resurrect or mutate one.
	if file.IsDeleted() {
		return "", NewError(mcerrors.ErrFileNotFound, "file not found")
	}
	if reportedSize != nil && *reportedSize > 0 {
		if err := file.UpdateSize(*reportedSize); err != nil {
			return "", fmt.Errorf("update file size: %w", err)
		}
	}
	return PublicFileURL(file.PublicToken), nil
}

// PublicFileURL builds the shareable download link for a token.
func PublicFileURL(token string) string {
	return common.BaseURL + "/api/f/" + token
}
