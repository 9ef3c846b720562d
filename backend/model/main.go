package model

import (
	"os"

	"filedrop/backend/common"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var DB *gorm.DB

func createRootAccountIfNeed() error {
	var userCount int64
	DB.Model(&User{}).Count(&userCount)
	if userCount == 0 {
		common.SysLog("no user exists, create a root/admin user for you: email is root@localhost, password is 123456")
		hashedPassword, err := common.Password2Hash("123456")
		if err != nil {
			return err
		}
		premium, err := GetPlanByName("Premium")
		var planId *int64
		if err == nil {
			planId = &premium.Id
		}
		adminUser := User{
			Email:       "root@localhost",
			Password:    hashedPassword,
			DisplayName: "Root User",
			Role:        common.RoleAdmin,
			PlanId:      planId,
		}
		if err := DB.Create(&adminUser).Error; err != nil {
			return err
		}
	}
	return nil
}

// createDefaultPlansIfNeed seeds the plan catalog on first start. Plans are
// never recomputed against existing files, so re-running is safe.
func createDefaultPlansIfNeed() error {
	var planCount int64
	DB.Model(&Plan{}).Count(&planCount)
	if planCount > 0 {
		return nil
	}
	common.SysLog("no plan exists, seeding default plans")
	plans := []Plan{
		{
			Name:           common.DefaultPlanName,
			MaxFileSize:    4 * 1024 * 1024 * 1024,
			RetentionHours: 5,
			PriceCents:     0,
		},
		{
			Name:           "Premium",
			MaxFileSize:    50 * 1024 * 1024 * 1024,
			RetentionHours: 720,
			PriceCents:     999,
		},
	}
	return DB.Create(&plans).Error
}

func InitDB() (err error) {
	var dbInstance *gorm.DB
	dsn := os.Getenv("SQL_DSN")

	if dsn != "" {
		common.SysLog("using MySQL database")
		dbInstance, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
			PrepareStmt: true,
		})
	} else {
		common.SysLog("SQL_DSN not set, using SQLite as database: " + common.SQLitePath)
		dbInstance, err = gorm.Open(sqlite.Open(common.SQLitePath), &gorm.Config{
			PrepareStmt: true,
		})
	}
	if err != nil {
		return err
	}

	DB = dbInstance

	err = DB.AutoMigrate(
		&User{},
		&Plan{},
		&File{},
	)
	if err != nil {
		return err
	}

	if err = createDefaultPlansIfNeed(); err != nil {
		return err
	}
	if err = createRootAccountIfNeed(); err != nil {
		return err
	}

	common.SysLog("database initialized successfully")
	return nil
}

func CloseDB() error {
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	common.SysLog("closing database connection")
	return sqlDB.Close()
}
