package repository

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/polybites/polybites-backend/internal/profile/domain"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&domain.Profile{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}

func TestCreateAndFindProfile(t *testing.T) {
	repo := NewGormProfileRepository(setupTestDB(t))

	profile := &domain.Profile{Name: "Dana", AuthID: "auth-sub-1"}
	if err := repo.Create(profile); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if profile.ID == 0 {
		t.Fatal("expected generated id")
	}

	byID, err := repo.FindByID(profile.ID)
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if byID.Name != "Dana" {
		t.Errorf("unexpected profile: %+v", byID)
	}

	byAuth, err := repo.FindByAuthID("auth-sub-1")
	if err != nil {
		t.Fatalf("FindByAuthID failed: %v", err)
	}
	if byAuth.ID != profile.ID {
		t.Errorf("expected same profile, got %+v", byAuth)
	}
}

func TestCreateDuplicateAuthID(t *testing.T) {
	repo := NewGormProfileRepository(setupTestDB(t))

	if err := repo.Create(&domain.Profile{Name: "First", AuthID: "auth-sub-dup"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	err := repo.Create(&domain.Profile{Name: "Second", AuthID: "auth-sub-dup"})
	if !errors.Is(err, domain.ErrProfileExists) {
		t.Errorf("expected ErrProfileExists, got %v", err)
	}
}

func TestFindProfileNotFound(t *testing.T) {
	repo := NewGormProfileRepository(setupTestDB(t))

	if _, err := repo.FindByID(42); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
	if _, err := repo.FindByAuthID("missing"); !errors.Is(err, domain.ErrProfileNotFound) {
		t.Errorf("expected ErrProfileNotFound, got %v", err)
	}
}
