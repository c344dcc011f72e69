package crawlsched

import "testing"

func TestSetDefaultConfigSatisfiesInvariants(t *testing.T) {
	SetDefaultConfig()
	if err := assertConfigInvariants(); err != nil {
		t.Errorf("default config failed its own invariants: %v", err)
	}
}

func TestReadConfigFileOverridesDefaults(t *testing.T) {
	defer SetDefaultConfig()

	if err := ReadConfigFile("helpers/test-data/test-config.yaml"); err != nil {
		t.Fatalf("unexpected error reading test config: %v", err)
	}

	if Config.Scheduler.Eps != 0.25 {
		t.Errorf("expected Scheduler.Eps 0.25, got %v", Config.Scheduler.Eps)
	}
	if Config.Scheduler.BalancingTemperature != 2.0 {
		t.Errorf("expected Scheduler.BalancingTemperature 2.0, got %v", Config.Scheduler.BalancingTemperature)
	}
	if Config.Scheduler.BatchSize != 5 {
		t.Errorf("expected Scheduler.BatchSize 5, got %v", Config.Scheduler.BatchSize)
	}
	if Config.Reprioritizer.Period != "1m" {
		t.Errorf("expected Reprioritizer.Period 1m, got %v", Config.Reprioritizer.Period)
	}
	if Config.Goal.RelevancyThreshold != 0.3 {
		t.Errorf("expected Goal.RelevancyThreshold 0.3, got %v", Config.Goal.RelevancyThreshold)
	}
	if Config.LinkIntake.CacheSize != 42 {
		t.Errorf("expected LinkIntake.CacheSize 42, got %v", Config.LinkIntake.CacheSize)
	}
	if len(Config.LinkIntake.IgnoredExtensions) != 2 || Config.LinkIntake.IgnoredExtensions[0] != "foo" {
		t.Errorf("expected overridden ignored extensions [foo bar], got %v", Config.LinkIntake.IgnoredExtensions)
	}
	if !Config.LinkIntake.DeduplicateLocal || !Config.LinkIntake.SameDomainOnly {
		t.Errorf("expected both link intake booleans to be true, got %+v", Config.LinkIntake)
	}
	if Config.Console.Port != 9000 {
		t.Errorf("expected Console.Port 9000, got %v", Config.Console.Port)
	}
}

func TestReadConfigFileMissingFile(t *testing.T) {
	defer SetDefaultConfig()
	if err := ReadConfigFile("helpers/test-data/does-not-exist.yaml"); err == nil {
		t.Errorf("expected an error reading a missing config file")
	}
}

func TestAssertConfigInvariantsCatchesBadEps(t *testing.T) {
	SetDefaultConfig()
	defer SetDefaultConfig()
	Config.Scheduler.Eps = 1.5
	if err := assertConfigInvariants(); err == nil {
		t.Errorf("expected an error for Eps out of [0, 1]")
	}
}

func TestAssertConfigInvariantsCatchesNonPositiveTemperature(t *testing.T) {
	SetDefaultConfig()
	defer SetDefaultConfig()
	Config.Scheduler.BalancingTemperature = 0
	if err := assertConfigInvariants(); err == nil {
		t.Errorf("expected an error for a non-positive balancing temperature")
	}
}

func TestAssertConfigInvariantsCatchesBadPeriod(t *testing.T) {
	SetDefaultConfig()
	defer SetDefaultConfig()
	Config.Reprioritizer.Period = "not-a-duration"
	if err := assertConfigInvariants(); err == nil {
		t.Errorf("expected an error for an unparseable reprioritizer period")
	}
}
