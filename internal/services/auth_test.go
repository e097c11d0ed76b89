package services

import (
	"testing"

	"github.com/DuDupedrosa/memory-game-api/internal/models"
)

func TestTokenRoundTrip(t *testing.T) {
	auth := NewAuthService("test-secret")
	user := &models.User{ID: "u-1", NickName: "pedro", Email: "pedro@example.com"}

	token, err := auth.GenerateToken(user)
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := auth.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.UserID != "u-1" || claims.NickName != "pedro" || claims.Email != "pedro@example.com" {
		t.Errorf("claims = %+v, want original identity", claims)
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := NewAuthService("secret-a").GenerateToken(&models.User{ID: "u-1"})
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := NewAuthService("secret-b").ValidateToken(token); err == nil {
		t.Error("token signed with a different secret was accepted")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	auth := NewAuthService("test-secret")
	for _, token := range []string{"", "not-a-token", "aaa.bbb.ccc"} {
		if _, err := auth.ValidateToken(token); err == nil {
			t.Errorf("ValidateToken(%q) accepted garbage", token)
		}
	}
}
