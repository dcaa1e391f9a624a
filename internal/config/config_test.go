package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "secret")
	t.Setenv("ADMIN_TOKEN", "tok")
	t.Setenv("STORE_BACKEND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "3000" {
		t.Fatalf("port=%s", cfg.Port)
	}
	if cfg.StoreBackend != BackendFile {
		t.Fatalf("backend=%s", cfg.StoreBackend)
	}
	if cfg.DataFile != "data/messages.json" {
		t.Fatalf("data file=%s", cfg.DataFile)
	}
	if cfg.AdminUsername != "admin" {
		t.Fatalf("admin username=%s", cfg.AdminUsername)
	}
}

func TestLoadRequiresAdminSecrets(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_TOKEN", "")
	if _, err := Load(); err == nil {
		t.Fatal("expected error without admin secrets")
	}
}

func TestLoadBackendValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"memory", map[string]string{"STORE_BACKEND": "memory"}, false},
		{"upper case", map[string]string{"STORE_BACKEND": "MEMORY"}, false},
		{"unknown", map[string]string{"STORE_BACKEND": "redis"}, true},
		{"mysql missing db", map[string]string{"STORE_BACKEND": "mysql"}, true},
		{"mysql ok", map[string]string{"STORE_BACKEND": "mysql", "DB_USER": "u", "DB_NAME": "board", "DB_HOST": "localhost"}, false},
		{"gcs missing bucket", map[string]string{"STORE_BACKEND": "gcs"}, true},
		{"gcs ok", map[string]string{"STORE_BACKEND": "gcs", "STORAGE_BUCKET": "b"}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ADMIN_PASSWORD", "secret")
			t.Setenv("ADMIN_TOKEN", "tok")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if (err != nil) != tt.wantErr {
				t.Fatalf("err=%v wantErr=%v", err, tt.wantErr)
			}
		})
	}
}
