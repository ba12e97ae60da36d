package services

import (
	"testing"

	"imoveisBack/internal/models"
)

func TestValidateSignUp(t *testing.T) {
	valid := models.User{
		Name:     "Maria Chivukuvuku",
		Email:    "maria@example.com",
		Password: "secret1",
		Role:     models.RoleClient,
	}

	cases := []struct {
		name    string
		mutate  func(*models.User)
		wantErr bool
	}{
		{"valid client", func(u *models.User) {}, false},
		{"valid seller", func(u *models.User) { u.Role = models.RoleSeller }, false},
		{"empty role defaults later", func(u *models.User) { u.Role = "" }, false},
		{"missing name", func(u *models.User) { u.Name = "  " }, true},
		{"missing email", func(u *models.User) { u.Email = "" }, true},
		{"email without at sign", func(u *models.User) { u.Email = "maria.example.com" }, true},
		{"short password", func(u *models.User) { u.Password = "abc" }, true},
		{"admin not self-assignable", func(u *models.User) { u.Role = models.RoleAdmin }, true},
		{"unknown role", func(u *models.User) { u.Role = "owner" }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			user := valid
			tc.mutate(&user)
			err := ValidateSignUp(user)
			if tc.wantErr && err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected validation error: %v", err)
			}
		})
	}
}

func TestGenerateResetCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateResetCode()
		if err != nil {
			t.Fatalf("generateResetCode returned error: %v", err)
		}
		if len(code) != 4 {
			t.Fatalf("expected 4-digit code, got %q", code)
		}
		for _, c := range code {
			if c < '0' || c > '9' {
				t.Fatalf("code contains non-digit: %q", code)
			}
		}
	}
}
