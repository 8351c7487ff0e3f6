// config/overlay.go
package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type SitesFile struct {
	Sites []Site `yaml:"sites"`
}

// OverlaySites replaces cfg.Sites with the list in sitesPath when that file
// exists and is non-empty.
func OverlaySites(cfg *Config, sitesPath string) error {
	b, err := os.ReadFile(sitesPath)
	if err != nil {
		// Missing sites file should not kill startup
		return nil
	}

	var sf SitesFile
	if err := yaml.Unmarshal(b, &sf); err != nil {
		return err
	}

	if len(sf.Sites) > 0 {
		cfg.Sites = sf.Sites
	}
	return nil
}
