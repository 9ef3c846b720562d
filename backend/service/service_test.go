package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"filedrop/backend/common"
	"filedrop/backend/library/storage"
	"filedrop/backend/model"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared", t.Name())
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

// fakeGateway stands in for object storage. Keys listed in failDeletes make
// DeleteObject fail, for partial-failure sweeps.
type fakeGateway struct {
	mu          sync.Mutex
	deletedKeys []string
	failDeletes map[string]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{failDeletes: make(map[string]bool)}
}

func (g *fakeGateway) PresignUpload(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/put/" + key, nil
}

func (g *fakeGateway) PresignDownload(_ context.Context, key string, _ time.Duration) (string, error) {
	return "https://storage.test/get/" + key, nil
}

func (g *fakeGateway) DeleteObject(_ context.Context, key string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failDeletes[key] {
		return fmt.Errorf("storage backend unavailable for %s", key)
	}
	g.deletedKeys = append(g.deletedKeys, key)
	return nil
}

func setupFakeGateway(t *testing.T) *fakeGateway {
	t.Helper()
	gateway := newFakeGateway()
	storage.SetGateway(gateway)
	t.Cleanup(func() {
		storage.SetGateway(nil)
	})
	return gateway
}

func seedPlans(t *testing.T) (free *model.Plan, premium *model.Plan) {
	t.Helper()
	free = &model.Plan{
		Name:           common.DefaultPlanName,
		MaxFileSize:    4 * 1024 * 1024 * 1024,
		RetentionHours: 5,
	}
	require.NoError(t, free.Insert())
	premium = &model.Plan{
		Name:           "Premium",
		MaxFileSize:    50 * 1024 * 1024 * 1024,
		RetentionHours: common.PermanenceThresholdHours,
		PriceCents:     999,
	}
	require.NoError(t, premium.Insert())
	return free, premium
}

func seedUser(t *testing.T, email string, role int, planId *int64) *model.User {
	t.Helper()
	user := &model.User{
		Email:       email,
		Password:    "secret123",
		DisplayName: "Test User",
		Role:        role,
		PlanId:      planId,
	}
	require.NoError(t, user.Insert())
	return user
}
