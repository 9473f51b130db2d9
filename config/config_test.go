package config

import (
	"os"
	"path/filepath"
	"testing"
)

//nolint:gocyclo
func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := `store:
  snapshot_path: "/var/lib/skycoord/state.json"
audit:
  backend: "sqlite"
  path: "/var/lib/skycoord/audit.db"
metrics:
  prometheus_enabled: true
  prometheus_port: "9100"
mqtt:
  enabled: true
  ack_timeout_seconds: 3
  client:
    broker: "tcp://localhost:1883"
    client_id: "skycoord"
    username: "user"
    password: "pass"
    ack_topic: "field/+/ack"
    use_tls: false
sweep:
  enabled: true
  interval_seconds: 30
api:
  enabled: true
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"snapshot_path", cfg.Store.SnapshotPath, "/var/lib/skycoord/state.json"},
		{"audit.backend", cfg.Audit.Backend, "sqlite"},
		{"audit.path", cfg.Audit.Path, "/var/lib/skycoord/audit.db"},
		{"prometheus_enabled", cfg.Metrics.PrometheusEnabled, true},
		{"prometheus_port", cfg.Metrics.PrometheusPort, "9100"},
		{"mqtt.enabled", cfg.MQTT.Enabled, true},
		{"ack_timeout_seconds", cfg.MQTT.AckTimeoutSeconds, 3},
		{"broker", cfg.MQTT.Client.Broker, "tcp://localhost:1883"},
		{"client_id", cfg.MQTT.Client.ClientID, "skycoord"},
		{"ack_topic", cfg.MQTT.Client.AckTopic, "field/+/ack"},
		{"sweep.interval", cfg.Sweep.IntervalSeconds, 30},
		{"api.address", cfg.API.Address, ":8080"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s mismatch: %v", c.name, c.got)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Store.SnapshotPath != "skycoord.json" {
		t.Errorf("snapshot default: %s", cfg.Store.SnapshotPath)
	}
	if cfg.Audit.Backend != "jsonl" || cfg.Audit.Path != "audit.log" {
		t.Errorf("audit defaults: %+v", cfg.Audit)
	}
	if cfg.Sweep.IntervalSeconds != 60 {
		t.Errorf("sweep default: %d", cfg.Sweep.IntervalSeconds)
	}
	if cfg.Metrics.PrometheusPort != "9090" {
		t.Errorf("prometheus port default: %s", cfg.Metrics.PrometheusPort)
	}
}

func TestLoadRejectsBadBackend(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	data := "audit:\n  backend: \"postgres\"\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for unknown audit backend")
	}
}

func TestLoadRejectsUnknownExtension(t *testing.T) {
	if _, err := Load("config.toml"); err == nil {
		t.Fatal("expected error for unsupported format")
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("SKY_STORE__SNAPSHOT_PATH", "/tmp/override.json")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"store":{"snapshot_path":"ignored.json"}}`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Store.SnapshotPath != "/tmp/override.json" {
		t.Errorf("env override not applied: %s", cfg.Store.SnapshotPath)
	}
}
