package crawlsched

import (
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"gopkg.in/yaml.v2"

	log4go "github.com/ccpaging/log4go"
)

// Config is the configuration instance the rest of crawlsched should
// access for global tunables. See CrawlschedConfig for available
// members. Grounded on the teacher's config.go global Config/readConfig
// pattern.
var Config CrawlschedConfig

// ConfigName is the path (relative or absolute) to the config file that
// should be read.
var ConfigName = "crawlsched.yaml"

func init() {
	err := readConfig()
	if err != nil {
		if strings.Contains(err.Error(), "no such file or directory") {
			log4go.Info("Did not find config file %v, continuing with defaults", ConfigName)
		} else {
			panic(err.Error())
		}
	}
}

// CrawlschedConfig defines the available global configuration parameters.
// It reads values straight from the config file (crawlsched.yaml by
// default).
type CrawlschedConfig struct {
	Scheduler struct {
		Eps                  float64 `yaml:"eps"`
		BalancingTemperature float64 `yaml:"balancing_temperature"`
		BatchSize            int     `yaml:"batch_size"`
		PopRandomAttempts    int     `yaml:"pop_random_attempts"`
	} `yaml:"scheduler"`

	Reprioritizer struct {
		Period string `yaml:"period"`
	} `yaml:"reprioritizer"`

	Goal struct {
		RelevancyThreshold           float64 `yaml:"relevancy_threshold"`
		MaxRequestsPerDomain         int     `yaml:"max_requests_per_domain"`
		MaxRelevantPagesPerDomain    float64 `yaml:"max_relevant_pages_per_domain"`
		FormFindingThreshold         float64 `yaml:"form_finding_threshold"`
	} `yaml:"goal"`

	LinkIntake struct {
		CacheSize         int      `yaml:"cache_size"`
		IgnoredExtensions []string `yaml:"ignored_extensions"`
		DeduplicateLocal  bool     `yaml:"deduplicate_local"`
		SameDomainOnly    bool     `yaml:"same_domain_only"`
	} `yaml:"link_intake"`

	Console struct {
		Port              int    `yaml:"port"`
		TemplateDirectory string `yaml:"template_directory"`
		PublicFolder      string `yaml:"public_folder"`
	} `yaml:"console"`
}

// SetDefaultConfig resets Config to default values, regardless of what
// was set by any configuration file.
//
// NOTE: go-yaml has a bug where it does not overwrite sequence values
// (lists), it appends to them instead. See
// https://github.com/go-yaml/yaml/issues/48. Until this is fixed, for any
// sequence value, readConfig must nil it first and then fill in the
// default if yaml.Unmarshal did not fill anything in - mirroring the
// teacher's config.go workaround.
func SetDefaultConfig() {
	Config.Scheduler.Eps = 0.1
	Config.Scheduler.BalancingTemperature = 1.0
	Config.Scheduler.BatchSize = 0
	Config.Scheduler.PopRandomAttempts = 10

	Config.Reprioritizer.Period = "30s"

	Config.Goal.RelevancyThreshold = 0.1
	Config.Goal.MaxRequestsPerDomain = 0
	Config.Goal.MaxRelevantPagesPerDomain = 0
	Config.Goal.FormFindingThreshold = 0.7

	Config.LinkIntake.CacheSize = 100000
	Config.LinkIntake.IgnoredExtensions = []string{
		"7z", "7zip", "xz", "gz", "tar", "bz2", "cdr", "apk",
		"zip", "rar", "gzip", "mp3", "mp4", "avi", "mov", "mpg", "mpeg",
		"wmv", "flv", "wav", "png", "jpg", "jpeg", "gif", "bmp", "tiff",
		"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "exe", "dmg",
		"iso",
	}
	Config.LinkIntake.DeduplicateLocal = false
	Config.LinkIntake.SameDomainOnly = false

	Config.Console.Port = 3000
	Config.Console.TemplateDirectory = "console/templates"
	Config.Console.PublicFolder = "console/public"
}

// ReadConfigFile sets a new path to find the crawlsched yaml config file
// and forces a reload of the config.
func ReadConfigFile(path string) error {
	ConfigName = path
	return readConfig()
}

func assertConfigInvariants() error {
	var errs []string
	sched := &Config.Scheduler
	if sched.Eps < 0 || sched.Eps > 1 {
		errs = append(errs, "Scheduler.Eps must be between 0 and 1")
	}
	if sched.BalancingTemperature <= 0 {
		errs = append(errs, "Scheduler.BalancingTemperature must be greater than 0")
	}
	if sched.BatchSize < 0 {
		errs = append(errs, "Scheduler.BatchSize must not be negative")
	}
	if sched.PopRandomAttempts < 1 {
		errs = append(errs, "Scheduler.PopRandomAttempts must be at least 1")
	}

	if _, err := time.ParseDuration(Config.Reprioritizer.Period); err != nil {
		errs = append(errs, fmt.Sprintf("Reprioritizer.Period failed to parse: %v", err))
	}

	if Config.LinkIntake.CacheSize < 1 {
		errs = append(errs, "LinkIntake.CacheSize must be at least 1")
	}

	if len(errs) > 0 {
		em := ""
		for _, e := range errs {
			log4go.Error("Config Error: %v", e)
			em += "\t" + e + "\n"
		}
		return fmt.Errorf("Config Error:\n%v", em)
	}
	return nil
}

func readConfig() error {
	SetDefaultConfig()

	// See NOTE in SetDefaultConfig regarding sequence values.
	Config.LinkIntake.IgnoredExtensions = []string{}

	data, err := ioutil.ReadFile(ConfigName)
	if err != nil {
		return fmt.Errorf("Failed to read config file (%v): %v", ConfigName, err)
	}
	if err := yaml.Unmarshal(data, &Config); err != nil {
		return fmt.Errorf("Failed to unmarshal yaml from config file (%v): %v", ConfigName, err)
	}

	if len(Config.LinkIntake.IgnoredExtensions) == 0 {
		Config.LinkIntake.IgnoredExtensions = []string{
			"7z", "7zip", "xz", "gz", "tar", "bz2", "cdr", "apk",
			"zip", "rar", "gzip", "mp3", "mp4", "avi", "mov", "mpg", "mpeg",
			"wmv", "flv", "wav", "png", "jpg", "jpeg", "gif", "bmp", "tiff",
			"pdf", "doc", "docx", "xls", "xlsx", "ppt", "pptx", "exe", "dmg",
			"iso",
		}
	}

	err = assertConfigInvariants()
	if err == nil {
		log4go.Info("Loaded config file %v", ConfigName)
	}
	return err
}
