package auth

import (
	"testing"
)

func TestGenerateAndValidateToken(t *testing.T) {
	secret := "test-secret"

	token, err := GenerateToken(secret, "operator")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	claims, err := ValidateToken(secret, token)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if claims.Operator != "operator" {
		t.Errorf("expected operator claim, got %q", claims.Operator)
	}
	if claims.ID == "" {
		t.Error("expected a JTI to be set")
	}
}

func TestValidateTokenWrongSecret(t *testing.T) {
	token, err := GenerateToken("secret-one", "operator")
	if err != nil {
		t.Fatalf("GenerateToken: %v", err)
	}

	if _, err := ValidateToken("secret-two", token); err == nil {
		t.Error("expected validation to fail with the wrong secret")
	}
}

func TestValidateTokenGarbage(t *testing.T) {
	if _, err := ValidateToken("secret", "not.a.token"); err == nil {
		t.Error("expected validation to fail for garbage input")
	}
}

func TestTokensHaveUniqueJTI(t *testing.T) {
	secret := "test-secret"

	t1, _ := GenerateToken(secret, "operator")
	t2, _ := GenerateToken(secret, "operator")

	c1, err := ValidateToken(secret, t1)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	c2, err := ValidateToken(secret, t2)
	if err != nil {
		t.Fatalf("ValidateToken: %v", err)
	}
	if c1.ID == c2.ID {
		t.Error("expected distinct JTIs")
	}
}
