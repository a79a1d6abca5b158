package herdlib

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		checkFn func(t *testing.T, cfg *Config)
	}{
		{
			name: "full config",
			yaml: `client_id: tester
gateway: gw1:7000
communicator: grpc
log_dir: /tmp/herd-logs
log_level: DEBUG
etcd:
  endpoints: ["etcd1:2379", "etcd2:2379"]
  prefix: /custom/gateways/
`,
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.ClientID != "tester" || cfg.Gateway != "gw1:7000" {
					t.Errorf("identity fields = (%q, %q)", cfg.ClientID, cfg.Gateway)
				}
				if cfg.LogDir != "/tmp/herd-logs" || cfg.LogLevel != "DEBUG" {
					t.Errorf("log fields = (%q, %q)", cfg.LogDir, cfg.LogLevel)
				}
				if len(cfg.Etcd.Endpoints) != 2 || cfg.Etcd.Prefix != "/custom/gateways/" {
					t.Errorf("etcd fields = %+v", cfg.Etcd)
				}
			},
		},
		{
			name: "partial config keeps defaults",
			yaml: "client_id: tester\n",
			checkFn: func(t *testing.T, cfg *Config) {
				if cfg.Communicator != CommunicatorGRPC {
					t.Errorf("communicator = %q, want default %q", cfg.Communicator, CommunicatorGRPC)
				}
				if cfg.Gateway != "localhost:7000" {
					t.Errorf("gateway = %q, want default", cfg.Gateway)
				}
			},
		},
		{
			name:    "malformed yaml",
			yaml:    "client_id: [unterminated\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.yaml), 0644); err != nil {
				t.Fatalf("failed to write config: %v", err)
			}

			cfg, err := LoadConfig(path)

			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.checkFn != nil {
				tt.checkFn(t, cfg)
			}
		})
	}
}

func TestLoadConfig_MissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Errorf("LoadConfig() on missing file returned nil error")
	}
}

func TestNewHerdClient_UnknownCommunicator(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Communicator = "carrier-pigeon"
	if _, err := NewHerdClient(context.Background(), cfg); err == nil {
		t.Errorf("NewHerdClient() accepted unknown communicator")
	}
}

// Full client stack on the in-process cluster: create, snapshot, clone and
// block I/O all through the public SDK surface.
func TestHerdClient_InMemoryEndToEnd(t *testing.T) {
	cfg := &Config{
		ClientID:     "e2e",
		Communicator: CommunicatorInMemory,
		LogDir:       t.TempDir(),
		LogLevel:     "ERROR",
	}

	client, err := NewHerdClient(context.Background(), cfg)
	if err != nil {
		t.Fatalf("NewHerdClient() error = %v", err)
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.CreateVDI(ctx, "vol0", 64<<20); err != nil {
		t.Fatalf("CreateVDI() error = %v", err)
	}

	v, err := client.OpenVDI(ctx, "vol0")
	if err != nil {
		t.Fatalf("OpenVDI() error = %v", err)
	}

	payload := []byte("end to end payload")
	if _, err := v.WriteAt(payload, 512); err != nil {
		t.Fatalf("WriteAt() error = %v", err)
	}
	got := make([]byte, len(payload))
	if _, err := v.ReadAt(got, 512); err != nil {
		t.Fatalf("ReadAt() error = %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Fatalf("ReadAt() = %q, want %q", got, payload)
	}
	if err := v.Close(ctx); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	if err := client.SnapshotVDI(ctx, "vol0", "golden"); err != nil {
		t.Fatalf("SnapshotVDI() error = %v", err)
	}
	if err := client.CloneVDI(ctx, "vol0", "golden", "copy"); err != nil {
		t.Fatalf("CloneVDI() error = %v", err)
	}

	clone, err := client.OpenVDI(ctx, "copy")
	if err != nil {
		t.Fatalf("OpenVDI(copy) error = %v", err)
	}
	defer clone.Close(ctx)

	got = make([]byte, len(payload))
	if _, err := clone.ReadAt(got, 512); err != nil {
		t.Fatalf("ReadAt(copy) error = %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("clone ReadAt() = %q, want %q", got, payload)
	}
}
