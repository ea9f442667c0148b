package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ARTICLES_JWT_SECRET", "s3cret")

	c, err := Load(nil)
	if err != nil {
		t.Fatal(err)
	}

	if c.Addr != ":3333" || c.DiagAddr != ":9999" {
		t.Errorf("addrs = %q %q", c.Addr, c.DiagAddr)
	}
	if c.Store != StoreMongo || c.MongoDatabase != "articles" {
		t.Errorf("store = %q db = %q", c.Store, c.MongoDatabase)
	}
	if c.StoreTimeout != 5*time.Second {
		t.Errorf("timeout = %s", c.StoreTimeout)
	}
	if c.JWTSecret != "s3cret" {
		t.Errorf("secret = %q", c.JWTSecret)
	}
}

func TestFlagsOverrideEnv(t *testing.T) {
	t.Setenv("ARTICLES_ADDR", ":8080")
	t.Setenv("ARTICLES_DEBUG", "true")

	c, err := Load([]string{"-addr", ":9090", "-store", "memory", "-jwt_secret", "x"})
	if err != nil {
		t.Fatal(err)
	}

	if c.Addr != ":9090" {
		t.Errorf("addr = %q", c.Addr)
	}
	if !c.Debug {
		t.Error("debug from env ignored")
	}
	if c.Store != StoreMemory {
		t.Errorf("store = %q", c.Store)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no secret", []string{"-store", "memory"}},
		{"unknown store", []string{"-store", "redis", "-jwt_secret", "x"}},
		{"empty mongo uri", []string{"-mongo_uri", "", "-jwt_secret", "x"}},
		{"negative timeout", []string{"-store_timeout", "-1s", "-jwt_secret", "x"}},
		{"unknown flag", []string{"-nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Load(tt.args); err == nil {
				t.Fatal("expected an error")
			}
		})
	}
}

func TestRoutesSkipsValidation(t *testing.T) {
	if _, err := Load([]string{"-routes"}); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDotEnv(t *testing.T) {
	if err := LoadDotEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file: %v", err)
	}

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("ARTICLES_MONGO_DB=fromfile\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("ARTICLES_MONGO_DB", "")
	os.Unsetenv("ARTICLES_MONGO_DB")

	if err := LoadDotEnv(path); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("ARTICLES_MONGO_DB") })

	c, err := Load([]string{"-jwt_secret", "x"})
	if err != nil {
		t.Fatal(err)
	}
	if c.MongoDatabase != "fromfile" {
		t.Fatalf("mongo db = %q", c.MongoDatabase)
	}
}
