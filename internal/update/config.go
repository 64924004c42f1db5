package update

import (
	"os"
	"strconv"
	"strings"
)

type RuntimeConfig struct {
	DatabasePath         string
	SnapshotPath         string
	DesktopNotifications bool
	FocusWorkMinutes     int
	FocusBreakMinutes    int
	SchedulerBuffer      int
}

func DefaultRuntimeConfig() RuntimeConfig {
	return RuntimeConfig{
		DatabasePath:         "matrixd.db",
		SnapshotPath:         "",
		DesktopNotifications: false,
		FocusWorkMinutes:     25,
		FocusBreakMinutes:    5,
		SchedulerBuffer:      64,
	}
}

func RuntimeConfigFromEnv(base RuntimeConfig) RuntimeConfig {
	cfg := base
	if v := strings.TrimSpace(os.Getenv("MATRIXD_DB_PATH")); v != "" {
		cfg.DatabasePath = v
	}
	if v := strings.TrimSpace(os.Getenv("MATRIXD_SNAPSHOT_PATH")); v != "" {
		cfg.SnapshotPath = v
	}
	if v, ok := getEnvBool("MATRIXD_DESKTOP_NOTIFICATIONS"); ok {
		cfg.DesktopNotifications = v
	}
	if v, ok := getEnvInt("MATRIXD_FOCUS_WORK_MINUTES"); ok && v > 0 {
		cfg.FocusWorkMinutes = v
	}
	if v, ok := getEnvInt("MATRIXD_FOCUS_BREAK_MINUTES"); ok && v > 0 {
		cfg.FocusBreakMinutes = v
	}
	if v, ok := getEnvInt("MATRIXD_SCHEDULER_BUFFER"); ok && v > 0 {
		cfg.SchedulerBuffer = v
	}
	return cfg
}

func getEnvInt(name string) (int, bool) {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return 0, false
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, false
	}
	return v, true
}

func getEnvBool(name string) (bool, bool) {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return false, false
	}
	switch raw {
	case "1", "true", "yes", "y", "on":
		return true, true
	case "0", "false", "no", "n", "off":
		return false, true
	default:
		return false, false
	}
}
