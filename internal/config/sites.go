package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrSitesFileNotFound is returned when the site list file does not exist.
var ErrSitesFileNotFound = errors.New("sites file not found")

// SitesFile is the structure of a site list file:
//
//	sites:
//	  - https://www.tesla.com
//	  - https://stripe.com
type SitesFile struct {
	Sites []string `yaml:"sites"`
}

// LoadSitesFile reads an ordered site list from a YAML file.
// Blank entries are dropped and order is preserved.
func LoadSitesFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrSitesFileNotFound
		}
		return nil, err
	}

	var sf SitesFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse sites file: %w", err)
	}

	sites := make([]string, 0, len(sf.Sites))
	for _, s := range sf.Sites {
		if s = strings.TrimSpace(s); s != "" {
			sites = append(sites, s)
		}
	}
	if len(sites) == 0 {
		return nil, fmt.Errorf("sites file %s lists no sites", path)
	}
	return sites, nil
}
