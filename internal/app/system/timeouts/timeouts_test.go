package timeouts

import (
	"testing"
	"time"
)

func TestDefaults(t *testing.T) {
	Reset()

	if Ping() != DefaultPing {
		t.Errorf("Ping: got %v, want %v", Ping(), DefaultPing)
	}
	if Short() != DefaultShort {
		t.Errorf("Short: got %v, want %v", Short(), DefaultShort)
	}
	if Medium() != DefaultMedium {
		t.Errorf("Medium: got %v, want %v", Medium(), DefaultMedium)
	}
	if Long() != DefaultLong {
		t.Errorf("Long: got %v, want %v", Long(), DefaultLong)
	}
}

func TestConfigure(t *testing.T) {
	defer Reset()

	Configure(Config{Short: 12 * time.Second})

	if Short() != 12*time.Second {
		t.Errorf("Short: got %v, want 12s", Short())
	}
	// Unset values keep defaults.
	if Medium() != DefaultMedium {
		t.Errorf("Medium: got %v, want %v", Medium(), DefaultMedium)
	}
}

func TestConfigureFromEnv(t *testing.T) {
	defer Reset()

	t.Setenv("WEKEZA_TIMEOUT_SHORT", "3s")
	t.Setenv("WEKEZA_TIMEOUT_LONG", "bogus")

	n := ConfigureFromEnv()
	if n != 1 {
		t.Errorf("configured: got %d, want 1", n)
	}
	if Short() != 3*time.Second {
		t.Errorf("Short: got %v, want 3s", Short())
	}
	if Long() != DefaultLong {
		t.Errorf("Long: got %v, want default after bogus value", Long())
	}
}
