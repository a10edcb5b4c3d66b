package cmd

import "testing"

func TestDefaultConfigPath(t *testing.T) {
	t.Setenv("BAKEWATT_CONFIG", "")
	if got := defaultConfigPath(); got != "config.yaml" {
		t.Fatalf("default = %s", got)
	}
	t.Setenv("BAKEWATT_CONFIG", "/etc/bakewatt/config.yaml")
	if got := defaultConfigPath(); got != "/etc/bakewatt/config.yaml" {
		t.Fatalf("env override = %s", got)
	}
}
