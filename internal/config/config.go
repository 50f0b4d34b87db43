// Package config loads client profiles from YAML files. A profile names
// the WSDL to read plus transport and security settings for the service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/soapbind-project/soapbind-go/pkg/soap"
)

// Security configures the WS-Security header attached to requests
type Security struct {
	Username string `yaml:"username"`
	Password string `yaml:"password"`

	// Digest sends a derived password digest instead of the clear password
	Digest bool `yaml:"digest"`

	// Timestamp adds a validity window to the header
	Timestamp bool `yaml:"timestamp"`
}

// Profile configures a client for one service
type Profile struct {
	// WSDL is the service description path. Relative paths are resolved
	// against the profile file's directory.
	WSDL string `yaml:"wsdl"`

	// Endpoint overrides the service address declared in the WSDL
	Endpoint string `yaml:"endpoint"`

	// SOAPVersion forces "1.1" or "1.2" instead of the version detected
	// from the bindings
	SOAPVersion string `yaml:"soapVersion"`

	// Timeout is the HTTP request timeout as a duration string such as "30s"
	Timeout string `yaml:"timeout"`

	// Headers are added to every outgoing request
	Headers map[string]string `yaml:"headers"`

	Security *Security `yaml:"security"`
}

// Load reads a profile file, substituting ${env.VAR} references before
// parsing so credentials can stay out of the file.
func Load(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	// Substitute environment variables
	data = []byte(substituteEnvVars(string(data)))

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal YAML: %w", err)
	}

	if profile.WSDL == "" {
		return nil, fmt.Errorf("profile %s does not name a wsdl document", path)
	}
	if !filepath.IsAbs(profile.WSDL) {
		profile.WSDL = filepath.Join(filepath.Dir(path), profile.WSDL)
	}
	return &profile, nil
}

// Version returns the configured SOAP version override, or "" when the
// profile leaves the version to WSDL detection.
func (p *Profile) Version() (soap.Version, error) {
	switch p.SOAPVersion {
	case "":
		return "", nil
	case "1.1":
		return soap.SOAP11, nil
	case "1.2":
		return soap.SOAP12, nil
	default:
		return "", fmt.Errorf("unsupported soapVersion %q", p.SOAPVersion)
	}
}

// RequestTimeout returns the configured HTTP timeout, zero when unset
func (p *Profile) RequestTimeout() (time.Duration, error) {
	if p.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", p.Timeout, err)
	}
	return d, nil
}

// substituteEnvVars replaces ${env.VAR} and ${env.VAR:-default} with environment variable values
func substituteEnvVars(content string) string {
	re := regexp.MustCompile(`\$\{env\.([A-Z0-9_]+)(:-([^}]+))?\}`)
	return re.ReplaceAllStringFunc(content, func(match string) string {
		groups := re.FindStringSubmatch(match)
		envVar := groups[1]
		defaultValue := groups[3]
		if value, exists := os.LookupEnv(envVar); exists {
			return value
		}
		return defaultValue
	})
}
