package app

import (
	"context"
	"testing"
	"time"
)

func TestTokenManager_GenerateAndParse(t *testing.T) {
	cfg := TokenConfig{
		SecretKey: "user-secret",
		Expiry:    1 * time.Hour,
		Issuer:    "test-issuer",
	}
	tm := NewTokenManager(cfg)

	token, err := tm.Generate("google-1001", "01HZX3SESSION", "127.0.0.1")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	user, err := tm.Parse(token)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if user.UID != "google-1001" {
		t.Errorf("Expected UID google-1001, got %s", user.UID)
	}
	if user.SessionID() != "01HZX3SESSION" {
		t.Errorf("Expected session id 01HZX3SESSION, got %s", user.SessionID())
	}

	// 验证 ExpiresAt (秒级精度，允许 1 秒误差)
	expectedExp := time.Now().Add(cfg.Expiry)
	if user.ExpiresAt.Unix() < expectedExp.Unix()-1 || user.ExpiresAt.Unix() > expectedExp.Unix()+1 {
		t.Errorf("Expected ExpiresAt around %v, got %v", expectedExp, user.ExpiresAt)
	}

	// 错误的密钥
	wrongKeyCfg := cfg
	wrongKeyCfg.SecretKey = "wrong-secret"
	wrongToken, _ := NewTokenManager(wrongKeyCfg).Generate("google-1001", "s", "")
	if _, err = tm.Parse(wrongToken); err == nil {
		t.Error("Expected error when parsing token with wrong secret key, but got nil")
	}

	// 篡改后的 Token
	if err = tm.Validate(token + "tampered"); err == nil {
		t.Error("Expected error for tampered token, but got nil")
	}

	// 错误的签发者
	otherIssuer := cfg
	otherIssuer.Issuer = "someone-else"
	foreign, _ := NewTokenManager(otherIssuer).Generate("google-1001", "s", "")
	if _, err = tm.Parse(foreign); err == nil {
		t.Error("Expected error for foreign issuer, but got nil")
	}
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager(TokenConfig{SecretKey: "k", Expiry: -time.Minute})
	token, err := tm.Generate("u", "s", "")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if err := tm.Validate(token); err == nil {
		t.Error("Expected expired token to fail validation")
	}
}

func TestUserContext(t *testing.T) {
	if UserFromContext(context.Background()) != nil {
		t.Fatal("expected nil user on empty context")
	}
	ctx := WithUser(context.Background(), &UserEntity{UID: "u1"})
	if got := UserFromContext(ctx); got == nil || got.UID != "u1" {
		t.Fatalf("UserFromContext = %+v", got)
	}
}
