package update

import "testing"

func TestRuntimeConfigDefaults(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	if cfg.FocusWorkMinutes != 25 || cfg.FocusBreakMinutes != 5 {
		t.Fatalf("unexpected focus defaults: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 64 {
		t.Fatalf("unexpected runtime defaults: %+v", cfg)
	}
	if cfg.DatabasePath != "matrixd.db" {
		t.Fatalf("unexpected database default: %+v", cfg)
	}
}

func TestRuntimeConfigFromEnv(t *testing.T) {
	t.Setenv("MATRIXD_DESKTOP_NOTIFICATIONS", "true")
	t.Setenv("MATRIXD_FOCUS_WORK_MINUTES", "30")
	t.Setenv("MATRIXD_FOCUS_BREAK_MINUTES", "7")
	t.Setenv("MATRIXD_SCHEDULER_BUFFER", "128")
	t.Setenv("MATRIXD_DB_PATH", "state/matrix.db")
	t.Setenv("MATRIXD_SNAPSHOT_PATH", "state/backup.json")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if !cfg.DesktopNotifications {
		t.Fatal("expected desktop notifications true from env")
	}
	if cfg.FocusWorkMinutes != 30 || cfg.FocusBreakMinutes != 7 {
		t.Fatalf("unexpected focus config: %+v", cfg)
	}
	if cfg.SchedulerBuffer != 128 {
		t.Fatalf("unexpected buffer override: %+v", cfg)
	}
	if cfg.DatabasePath != "state/matrix.db" || cfg.SnapshotPath != "state/backup.json" {
		t.Fatalf("unexpected path overrides: %+v", cfg)
	}
}

func TestRuntimeConfigIgnoresBadValues(t *testing.T) {
	t.Setenv("MATRIXD_FOCUS_WORK_MINUTES", "not-a-number")
	t.Setenv("MATRIXD_DESKTOP_NOTIFICATIONS", "maybe")

	cfg := RuntimeConfigFromEnv(DefaultRuntimeConfig())
	if cfg.FocusWorkMinutes != 25 {
		t.Fatalf("bad int must keep default: %+v", cfg)
	}
	if cfg.DesktopNotifications {
		t.Fatalf("bad bool must keep default: %+v", cfg)
	}
}
