package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// AgencyProfile holds the agency identity used in agent-facing drafts.
type AgencyProfile struct {
	AgencyName string   `yaml:"agency_name"`
	Currency   string   `yaml:"currency"`
	Signature  []string `yaml:"signature"`
}

// DefaultAgencyProfile is used when no profile file is configured.
func DefaultAgencyProfile() AgencyProfile {
	return AgencyProfile{
		AgencyName: "Property Team",
		Currency:   "GYD",
		Signature:  []string{"Best regards,", "Property Team"},
	}
}

// LoadAgencyProfile reads a YAML profile from path. Missing fields fall back
// to DefaultAgencyProfile; an empty path returns the defaults.
func LoadAgencyProfile(path string) (AgencyProfile, error) {
	profile := DefaultAgencyProfile()
	if strings.TrimSpace(path) == "" {
		return profile, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return AgencyProfile{}, fmt.Errorf("read agency profile: %w", err)
	}
	return ParseAgencyProfile(data)
}

// ParseAgencyProfile decodes a YAML document on top of the defaults.
func ParseAgencyProfile(data []byte) (AgencyProfile, error) {
	var parsed AgencyProfile
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return AgencyProfile{}, fmt.Errorf("parse agency profile: %w", err)
	}

	profile := DefaultAgencyProfile()
	if name := strings.TrimSpace(parsed.AgencyName); name != "" {
		profile.AgencyName = name
		profile.Signature = []string{"Best regards,", name}
	}
	if code := strings.TrimSpace(parsed.Currency); code != "" {
		profile.Currency = strings.ToUpper(code)
	}
	if len(parsed.Signature) > 0 {
		profile.Signature = parsed.Signature
	}
	return profile, nil
}
