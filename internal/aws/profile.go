package aws

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/ini.v1"
)

// Profile describes one assumed-role profile to persist in the AWS shared
// config file.
type Profile struct {
	Name          string
	SourceProfile string
	RoleARN       string
	SessionName   string
}

// DefaultSharedConfigPath returns the path of the AWS shared config file.
func DefaultSharedConfigPath() (string, error) {
	if envPath := os.Getenv("AWS_CONFIG_FILE"); envPath != "" {
		return envPath, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".aws", "config"), nil
}

var profileNamePunctuation = regexp.MustCompile("[!@#$%^&*()\\[\\]{};:,./<>?|`~=_+ ]")

// DefaultProfileName derives the profile name offered by the save flow:
// lowercased "<display name>-<role name>" with punctuation and spaces
// replaced by dashes.
func DefaultProfileName(displayName, roleName string) string {
	return profileNamePunctuation.ReplaceAllString(strings.ToLower(displayName+"-"+roleName), "-")
}

// ProfileExists reports whether a profile section is already present in the
// AWS shared config file at path.
func ProfileExists(path, profile string) bool {
	cfg, err := ini.Load(path)
	if err != nil {
		return false
	}
	_, err = cfg.GetSection(sectionName(profile))
	return err == nil
}

// SaveProfile writes the profile into the AWS shared config file at path.
// The source profile's section is copied wholesale so region, output and
// friends carry over, then the role keys are set on top. The file ends up
// with 0600 permissions.
func SaveProfile(path string, profile Profile) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create AWS config directory: %w", err)
	}

	cfg, err := ini.LooseLoad(path)
	if err != nil {
		return fmt.Errorf("failed to load AWS config file: %w", err)
	}

	target := cfg.Section(sectionName(profile.Name))
	if source, err := cfg.GetSection(sectionName(profile.SourceProfile)); err == nil {
		for _, key := range source.Keys() {
			target.Key(key.Name()).SetValue(key.Value())
		}
	}
	target.Key("source_profile").SetValue(profile.SourceProfile)
	target.Key("role_session_name").SetValue(profile.SessionName)
	target.Key("role_arn").SetValue(profile.RoleARN)

	if err := cfg.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save AWS config file: %w", err)
	}

	if err := secureFilePermissions(path); err != nil {
		return fmt.Errorf("failed to set AWS config file permissions: %w", err)
	}

	return nil
}

// secureFilePermissions tightens the shared config file to 0600.
// No-op on Windows, which has no POSIX permission bits.
func secureFilePermissions(path string) error {
	if runtime.GOOS == "windows" {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Mode().Perm() == 0600 {
		return nil
	}
	return os.Chmod(path, 0600)
}

// sectionName maps a profile name to its shared config section header. The
// default profile lives in the bare [default] section; everything else is
// [profile <name>].
func sectionName(profile string) string {
	if profile == "default" {
		return profile
	}
	return "profile " + profile
}
