package bootstrap

import (
	"context"
	"testing"

	"cie-backend/internal/shared/config"
)

func TestBuildMemoryMode(t *testing.T) {
	cfg := config.Config{
		Port:            "8080",
		Env:             "dev",
		ObjectStoreType: "local",
		LocalStoreDir:   t.TempDir(),
		ApplicationsDir: t.TempDir(),
		ScriptsDir:      t.TempDir(),
	}

	app, err := Build(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if app.Engine == nil {
		t.Fatal("engine not built")
	}
	if app.DB != nil {
		t.Fatal("no DATABASE_URL means no DB connection")
	}
}

func TestShortlistStorageMismatch(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.Config
		want bool
	}{
		{name: "s3 with shortlist enabled", cfg: config.Config{MistralAPIKey: "key", ObjectStoreType: "s3"}, want: true},
		{name: "local store", cfg: config.Config{MistralAPIKey: "key", ObjectStoreType: "local"}, want: false},
		{name: "shortlist disabled", cfg: config.Config{ObjectStoreType: "s3"}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shortlistStorageMismatch(tt.cfg); got != tt.want {
				t.Fatalf("shortlistStorageMismatch = %v, want %v", got, tt.want)
			}
		})
	}
}
