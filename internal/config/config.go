package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"weekhours-service/internal/timecalc"
)

type Config struct {
	Port           string
	Env            string
	MongoURI       string
	MongoDB        string
	IdentityURL    string
	IdentityAPIKey string
	DefaultLocale  string
	RulesFile      string
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "3000"),
		Env:            getEnv("ENV", "development"),
		MongoURI:       getEnv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGODB_DATABASE", "weekhours"),
		IdentityURL:    strings.TrimRight(getEnv("IDENTITY_URL", "http://localhost:9099"), "/"),
		IdentityAPIKey: getEnv("IDENTITY_API_KEY", ""),
		DefaultLocale:  getEnv("DEFAULT_LOCALE", "es"),
		RulesFile:      getEnv("RULES_FILE", ""),
	}
}

// LoadRules returns the work-hour policy, starting from the defaults and
// applying overrides from a YAML file when one is configured.
func LoadRules(path string) (timecalc.Rules, error) {
	rules := timecalc.DefaultRules()
	if path == "" {
		return rules, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules file: %w", err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parse rules file: %w", err)
	}

	if rules.RequiredWeeklyHours <= 0 || rules.WorkingDays <= 0 ||
		rules.MinimumDailyHours < 0 || rules.MaximumDailyHours < rules.MinimumDailyHours {
		return rules, fmt.Errorf("rules file %s: inconsistent work rules", path)
	}
	return rules, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
