package googletasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/oauth2"

	"ltask/internal/config"
)

const testClientJSON = `{"installed":{"client_id":"id","client_secret":"secret","auth_uri":"https://accounts.google.com/o/oauth2/auth","token_uri":"https://oauth2.googleapis.com/token","redirect_uris":["http://localhost"]}}`

func TestSaveLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.TokenFile)

	if err := SaveToken(path, &oauth2.Token{AccessToken: "a", RefreshToken: "r"}); err != nil {
		t.Fatalf("SaveToken: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("mode = %v, want 0600", info.Mode().Perm())
	}

	tok, err := LoadToken(path)
	if err != nil {
		t.Fatalf("LoadToken: %v", err)
	}
	if tok.RefreshToken != "r" {
		t.Errorf("RefreshToken = %q, want r", tok.RefreshToken)
	}
}

func TestLoadTokenInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.TokenFile)
	os.WriteFile(path, []byte("not json"), 0600)

	_, err := LoadToken(path)
	if err == nil {
		t.Fatal("expected error for invalid token file")
	}
	if !errors.Is(err, ErrAuth) {
		t.Errorf("expected ErrAuth, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "invalid token.json: ") {
		t.Errorf("message = %q", err.Error())
	}
}

func TestOAuthConfig(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	if _, err := OAuthConfig(cfg); err == nil {
		t.Error("expected error when oauth_client.json is missing")
	}

	os.WriteFile(cfg.OAuthClientPath(), []byte(testClientJSON), 0600)
	oc, err := OAuthConfig(cfg)
	if err != nil {
		t.Fatalf("OAuthConfig: %v", err)
	}
	if oc.ClientID != "id" {
		t.Errorf("ClientID = %q, want id", oc.ClientID)
	}
	if len(oc.Scopes) != 1 || oc.Scopes[0] != Scope {
		t.Errorf("Scopes = %v, want [%s]", oc.Scopes, Scope)
	}
}

func TestTokenValidWithoutRefreshToken(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	os.WriteFile(cfg.OAuthClientPath(), []byte(testClientJSON), 0600)
	SaveToken(cfg.TokenPath(), &oauth2.Token{AccessToken: "a"})

	if TokenValid(context.Background(), cfg) {
		t.Error("token without refresh token should not be valid")
	}
}
