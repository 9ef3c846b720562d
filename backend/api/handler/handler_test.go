package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"filedrop/backend/api/middleware"
	"filedrop/backend/common"
	"filedrop/backend/library/storage"
	"filedrop/backend/model"
	"filedrop/backend/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
	_ = common.InitRedisClient()
	common.JWTSecret = "handler-test-secret"
	common.JWTRefreshSecret = "handler-test-refresh-secret"
}

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:h_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Plan{}, &model.File{}))
	model.DB = db
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
}

// testGateway is a stateless stand-in for object storage.
type testGateway struct{}

func (testGateway) PresignUpload(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/put/" + key, nil
}

func (testGateway) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/get/" + key, nil
}

func (testGateway) DeleteObject(context.Context, string) error {
	return nil
}

func setupRouter() *gin.Engine {
	router := gin.New()
	api := router.Group("/api")
	api.POST("/upload", middleware.OptionalJWTAuth(), ReserveUpload)
	api.POST("/upload/complete", CompleteUpload)
	api.GET("/files/public/:token", GetPublicFileMeta)
	api.GET("/f/:token", DownloadFile)
	api.GET("/files", middleware.JWTAuth(), GetMyFiles)
	api.PUT("/user/self", middleware.JWTAuth(), UpdateSelf)
	api.DELETE("/files/:id", middleware.JWTAuth(), DeleteFile)
	api.GET("/cron/cleanup", middleware.CronAuth(), CleanupExpired)
	return router
}

func seedFreePlan(t *testing.T) *model.Plan {
	t.Helper()
	plan := &model.Plan{
		Name:           common.DefaultPlanName,
		MaxFileSize:    1024 * 1024,
		RetentionHours: 5,
	}
	require.NoError(t, plan.Insert())
	return plan
}

func seedHandlerUser(t *testing.T, email string, role int) (*model.User, string) {
	t.Helper()
	user := &model.User{
		Email:       email,
		Password:    "secret123",
		DisplayName: "Handler Test",
		Role:        role,
	}
	require.NoError(t, user.Insert())
	token, err := service.GenerateToken(user)
	require.NoError(t, err)
	return user, token
}

func insertHandlerFile(t *testing.T, mutate func(*model.File)) *model.File {
	t.Helper()
	expiresAt := time.Now().Add(5 * time.Hour)
	file := &model.File{
		Filename:    "data.bin",
		Size:        512,
		PublicToken: uuid.NewString(),
		CreatedAt:   time.Now(),
		ExpiresAt:   &expiresAt,
	}
	file.StorageKey = "uploads/2026-01-01/" + file.PublicToken + "-data.bin"
	if mutate != nil {
		mutate(file)
	}
	require.NoError(t, file.Insert())
	return file
}

func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestReserveUploadEndpoint(t *testing.T) {
	setupTestDB(t)
	storage.SetGateway(testGateway{})
	t.Cleanup(func() { storage.SetGateway(nil) })
	seedFreePlan(t)
	router := setupRouter()

	w := doJSON(router, http.MethodPost, "/api/upload", "", gin.H{
		"filename": "photo.jpg",
		"size":     2048,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
}

func TestReserveUploadEndpoint_QuotaExceeded(t *testing.T) {
	setupTestDB(t)
	storage.SetGateway(testGateway{})
	t.Cleanup(func() { storage.SetGateway(nil) })
	plan := seedFreePlan(t)
	router := setupRouter()

	w := doJSON(router, http.MethodPost, "/api/upload", "", gin.H{
		"filename": "huge.bin",
		"size":     plan.MaxFileSize + 1,
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ERR_QUOTA_EXCEEDED", resp.Code)
	assert.Contains(t, resp.Message, plan.Name)
}

func TestReserveUploadEndpoint_MissingFields(t *testing.T) {
	setupTestDB(t)
	seedFreePlan(t)
	router := setupRouter()

	w := doJSON(router, http.MethodPost, "/api/upload", "", gin.H{"size": 10})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDownloadEndpoint_Redirects(t *testing.T) {
	setupTestDB(t)
	storage.SetGateway(testGateway{})
	t.Cleanup(func() { storage.SetGateway(nil) })
	router := setupRouter()
	file := insertHandlerFile(t, nil)

	w := doJSON(router, http.MethodGet, "/api/f/"+file.PublicToken, "", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "https://storage.test/get/"+file.StorageKey, w.Header().Get("Location"))

	reloaded, err := model.GetFileById(file.Id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), reloaded.DownloadCount)
}

func TestDownloadEndpoint_UnknownAndDeletedAre404(t *testing.T) {
	setupTestDB(t)
	storage.SetGateway(testGateway{})
	t.Cleanup(func() { storage.SetGateway(nil) })
	router := setupRouter()

	w := doJSON(router, http.MethodGet, "/api/f/"+uuid.NewString(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	file := insertHandlerFile(t, nil)
	require.NoError(t, file.MarkDeleted(time.Now(), model.DeletedBySystem))
	w = doJSON(router, http.MethodGet, "/api/f/"+file.PublicToken, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDownloadEndpoint_ExpiredIs410(t *testing.T) {
	setupTestDB(t)
	storage.SetGateway(testGateway{})
	t.Cleanup(func() { storage.SetGateway(nil) })
	router := setupRouter()
	past := time.Now().Add(-time.Hour)
	file := insertHandlerFile(t, func(f *model.File) { f.ExpiresAt = &past })

	w := doJSON(router, http.MethodGet, "/api/f/"+file.PublicToken, "", nil)
	assert.Equal(t, http.StatusGone, w.Code)

	// The metadata read still succeeds for the same token.
	w = doJSON(router, http.MethodGet, "/api/files/public/"+file.PublicToken, "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestDeleteEndpoint_AuthorizationMatrix(t *testing.T) {
	setupTestDB(t)
	storage.SetGateway(testGateway{})
	t.Cleanup(func() { storage.SetGateway(nil) })
	router := setupRouter()
	owner, ownerToken := seedHandlerUser(t, "owner@example.com", common.RoleUser)
	_, otherToken := seedHandlerUser(t, "other@example.com", common.RoleUser)
	_, adminToken := seedHandlerUser(t, "admin@example.com", common.RoleAdmin)

	file := insertHandlerFile(t, func(f *model.File) { f.OwnerId = &owner.Id })
	path := fmt.Sprintf("/api/files/%d", file.Id)

	// Unauthenticated
	w := doJSON(router, http.MethodDelete, path, "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Wrong user
	w = doJSON(router, http.MethodDelete, path, otherToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Owner
	w = doJSON(router, http.MethodDelete, path, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Admin can delete any file
	second := insertHandlerFile(t, nil)
	w = doJSON(router, http.MethodDelete, fmt.Sprintf("/api/files/%d", second.Id), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Unknown id
	w = doJSON(router, http.MethodDelete, "/api/files/99999", adminToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCleanupEndpoint_Auth(t *testing.T) {
	setupTestDB(t)
	storage.SetGateway(testGateway{})
	t.Cleanup(func() { storage.SetGateway(nil) })
	common.CronSecret = "sweep-secret"
	t.Cleanup(func() { common.CronSecret = "" })
	router := setupRouter()

	w := doJSON(router, http.MethodGet, "/api/cron/cleanup", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(router, http.MethodGet, "/api/cron/cleanup", "wrong", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	past := time.Now().Add(-time.Hour)
	insertHandlerFile(t, func(f *model.File) { f.ExpiresAt = &past })

	w = doJSON(router, http.MethodGet, "/api/cron/cleanup", "sweep-secret", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(1), data["total_found"])
	assert.Equal(t, float64(1), data["deleted"])
	assert.Equal(t, float64(0), data["errors"])
}

func TestUpdateSelfEndpoint(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	user, token := seedHandlerUser(t, "me@example.com", common.RoleUser)

	w := doJSON(router, http.MethodPut, "/api/user/self", token, gin.H{
		"name":     "Renamed",
		"password": "newsecret",
	})
	require.Equal(t, http.StatusOK, w.Code)

	reloaded, err := model.GetUserById(user.Id)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", reloaded.DisplayName)

	login := &model.User{Email: "me@example.com", Password: "newsecret"}
	assert.NoError(t, login.ValidateAndFill())

	// Nothing to change is a caller error.
	w = doJSON(router, http.MethodPut, "/api/user/self", token, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetMyFilesEndpoint(t *testing.T) {
	setupTestDB(t)
	router := setupRouter()
	owner, token := seedHandlerUser(t, "owner@example.com", common.RoleUser)
	insertHandlerFile(t, func(f *model.File) { f.OwnerId = &owner.Id })

	w := doJSON(router, http.MethodGet, "/api/files", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp common.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	files := resp.Data.([]interface{})
	require.Len(t, files, 1)
	entry := files[0].(map[string]interface{})
	assert.Contains(t, entry["public_url"], "/api/f/")
}
