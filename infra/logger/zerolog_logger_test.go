package logger

import "testing"

func TestNewReturnsLogger(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	log := New("test")
	if log == nil {
		t.Fatal("nil logger")
	}
	log.Infof("hello %s", "world")
	log.Debugw("structured", map[string]any{"key": "value"})
}

func TestSetLevel(t *testing.T) {
	if err := SetLevel("warn"); err != nil {
		t.Fatalf("valid level rejected: %v", err)
	}
	t.Cleanup(func() {
		if err := SetLevel("info"); err != nil {
			t.Fatalf("restore level: %v", err)
		}
	})
	if err := SetLevel("loud"); err == nil {
		t.Fatal("invalid level accepted")
	}
	// loggers created after a failed SetLevel keep the last valid level
	New("test").Debugf("suppressed at warn")
}

func TestNopLogger(t *testing.T) {
	var log Logger = NopLogger{}
	log.Debugf("ignored")
	log.Debugw("ignored", nil)
	log.Infof("ignored")
	log.Warnf("ignored")
	log.Errorf("ignored")
}
