package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
)

func TestValidateBinary(t *testing.T) {
	if ValidateBinary("") {
		t.Error("ValidateBinary(\"\") = true; want false")
	}

	missing := filepath.Join(t.TempDir(), "no-such-bin")
	if ValidateBinary(missing) {
		t.Error("ValidateBinary on missing path = true; want false")
	}

	plain := filepath.Join(t.TempDir(), "plain")
	if err := os.WriteFile(plain, []byte("data"), 0644); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if ValidateBinary(plain) {
		t.Error("ValidateBinary on non-executable file = true; want false")
	}

	bin := filepath.Join(t.TempDir(), "bin")
	if err := os.WriteFile(bin, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if !ValidateBinary(bin) {
		t.Error("ValidateBinary on executable file = false; want true")
	}
}

func TestLoadFromViper(t *testing.T) {
	defer viper.Reset()

	LoadDefaults()
	viper.Set("qsub_bin", "/usr/bin/qsub")
	viper.Set("account", "st-alloc-1")
	viper.Set("modules", []string{"gcc", "openmpi"})
	viper.Set("walltime", "02:00:00")
	viper.Set("submit_job", false)

	LoadFromViper()

	if Global.QsubBin != "/usr/bin/qsub" {
		t.Errorf("QsubBin = %q; want /usr/bin/qsub", Global.QsubBin)
	}
	if Global.Account != "st-alloc-1" {
		t.Errorf("Account = %q; want st-alloc-1", Global.Account)
	}
	if len(Global.Modules) != 2 || Global.Modules[0] != "gcc" || Global.Modules[1] != "openmpi" {
		t.Errorf("Modules = %v; want [gcc openmpi] in order", Global.Modules)
	}
	if Global.Walltime != "02:00:00" {
		t.Errorf("Walltime = %q; want 02:00:00", Global.Walltime)
	}
	if Global.SubmitJob {
		t.Error("SubmitJob = true; want false")
	}
}

func TestLoadFromViperKeepsDefaults(t *testing.T) {
	defer viper.Reset()

	LoadDefaults()
	setDefaults()
	LoadFromViper()

	if !Global.SubmitJob {
		t.Error("SubmitJob default lost")
	}
	if Global.Walltime != "01:00:00" {
		t.Errorf("Walltime default = %q; want 01:00:00", Global.Walltime)
	}
}
