package service

import (
	"errors"
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"testing"
	"time"

	"gorm.io/gorm"
)

func newAuthServiceForTest(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret-for-signing-tokens"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	user, err := svc.Register(RegisterRequest{
		Name:     "小王",
		Email:    "wang@test.local",
		Password: "secret123",
		Role:     "instructor",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != model.Instructor {
		t.Errorf("expected instructor role, got %s", user.Role)
	}
	if user.Password == "secret123" {
		t.Error("password stored in plaintext")
	}

	resp, err := svc.Login(LoginRequest{Email: "wang@test.local", Password: "secret123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.Token == "" {
		t.Error("expected a signed token")
	}

	claims, err := util.ParseJWT(resp.Token, "test-secret-for-signing-tokens")
	if err != nil {
		t.Fatalf("ParseJWT: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != model.Instructor {
		t.Errorf("claims mismatch: %+v", claims)
	}
}

func TestRegisterRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	req := RegisterRequest{Name: "A", Email: "dup@test.local", Password: "secret123"}
	if _, err := svc.Register(req); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if _, err := svc.Register(req); !errors.Is(err, util.ErrEmailRegistered) {
		t.Fatalf("expected ErrEmailRegistered, got %v", err)
	}
}

func TestRegisterCannotGrantAdmin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	user, err := svc.Register(RegisterRequest{
		Name:     "B",
		Email:    "admin-wannabe@test.local",
		Password: "secret123",
		Role:     "admin",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Role != model.Student {
		t.Errorf("admin must not be self-assignable, got role %s", user.Role)
	}
}

func TestLoginFailures(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	if _, err := svc.Register(RegisterRequest{Name: "C", Email: "c@test.local", Password: "secret123"}); err != nil {
		t.Fatalf("Register: %v", err)
	}

	if _, err := svc.Login(LoginRequest{Email: "c@test.local", Password: "wrong"}); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("wrong password: expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(LoginRequest{Email: "nobody@test.local", Password: "secret123"}); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("unknown email: expected ErrInvalidCredentials, got %v", err)
	}

	// 停用账号不可登录
	if err := db.Model(&model.User{}).Where("email = ?", "c@test.local").Update("disabled", true).Error; err != nil {
		t.Fatalf("disable user: %v", err)
	}
	if _, err := svc.Login(LoginRequest{Email: "c@test.local", Password: "secret123"}); !errors.Is(err, util.ErrInvalidCredentials) {
		t.Errorf("disabled user: expected ErrInvalidCredentials, got %v", err)
	}
}
