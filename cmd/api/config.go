package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/Budorazhka/LastDance-sub001/internal/entity"
)

type Config struct {
	Port          string
	CurrentUserID string
	Rule          entity.DistributionRule
	Locale        language.Tag
	RosterFile    string
	DatabaseURL   string
	RabbitMQURL   string
	StatsInterval time.Duration
	CORSOrigins   []string

	Mail MailConfig
}

type MailConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func (m MailConfig) Enabled() bool {
	return m.Host != ""
}

// loadConfig reads settings through getenv so tests can supply their own source.
func loadConfig(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:          envOr(getenv, "HTTP_PORT", "8080"),
		CurrentUserID: strings.TrimSpace(getenv("CURRENT_USER_ID")),
		Rule:          entity.DistributionRule(envOr(getenv, "DISTRIBUTION_RULE", string(entity.RuleRoundRobin))),
		RosterFile:    getenv("ROSTER_FILE"),
		DatabaseURL:   getenv("DATABASE_URL"),
		RabbitMQURL:   getenv("RABBITMQ_URL"),
		Mail: MailConfig{
			Host:     getenv("MAIL_HOST"),
			User:     getenv("MAIL_USER"),
			Password: getenv("MAIL_PASS"),
			From:     envOr(getenv, "MAIL_FROM", "no-reply@leads.local"),
		},
	}

	var errs []error

	if cfg.CurrentUserID == "" {
		errs = append(errs, errors.New("CURRENT_USER_ID is required"))
	}
	if !cfg.Rule.IsValid() {
		errs = append(errs, fmt.Errorf("DISTRIBUTION_RULE %q is not one of round_robin, by_load, manual", cfg.Rule))
	}

	locale, err := language.Parse(envOr(getenv, "LOCALE", "en"))
	if err != nil {
		errs = append(errs, fmt.Errorf("LOCALE: %w", err))
	}
	cfg.Locale = locale

	port, err := strconv.Atoi(envOr(getenv, "MAIL_PORT", "587"))
	if err != nil {
		errs = append(errs, fmt.Errorf("MAIL_PORT: %w", err))
	}
	cfg.Mail.Port = port

	interval, err := time.ParseDuration(envOr(getenv, "STATS_INTERVAL", "1m"))
	if err != nil {
		errs = append(errs, fmt.Errorf("STATS_INTERVAL: %w", err))
	} else if interval <= 0 {
		errs = append(errs, errors.New("STATS_INTERVAL must be positive"))
	}
	cfg.StatsInterval = interval

	for _, origin := range strings.Split(envOr(getenv, "CORS_ORIGINS", "http://localhost:5173"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	if len(errs) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return cfg, nil
}

func envOr(getenv func(string) string, key, fallback string) string {
	if v := strings.TrimSpace(getenv(key)); v != "" {
		return v
	}
	return fallback
}
