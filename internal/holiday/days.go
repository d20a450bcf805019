package holiday

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// LoadDays reads named days from a YAML file. A missing file yields no days.
func LoadDays(path string) ([]Day, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var days []Day
	if err := yaml.Unmarshal(data, &days); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return days, nil
}

// SaveDays atomically writes named days sorted by date.
func SaveDays(path string, days []Day) error {
	sort.SliceStable(days, func(i, j int) bool { return days[i].Date < days[j].Date })
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}
	data, err := yaml.Marshal(days)
	if err != nil {
		return fmt.Errorf("marshalling days: %w", err)
	}
	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("saving %s: %w", path, err)
	}
	return nil
}
