package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// SheetConfig points at the CSV exports of the itinerary spreadsheet.
type SheetConfig struct {
	ItineraryURL string `yaml:"itinerary_url"`
	LodgingURL   string `yaml:"lodging_url"`
}

// FilesConfig points at local CSV files, used instead of (or while
// offline from) the sheet. Watched for changes while the UI runs.
type FilesConfig struct {
	Itinerary string `yaml:"itinerary"`
	Lodging   string `yaml:"lodging"`
}

// ColumnsConfig maps SourceEvent fields to feed header names, so the
// sheet can keep its own column labels (the original sheet was Korean).
type ColumnsConfig struct {
	StartDate   string `yaml:"start_date"`
	StartTime   string `yaml:"start_time"`
	EndDate     string `yaml:"end_date"`
	EndTime     string `yaml:"end_time"`
	Title       string `yaml:"title"`
	Zone        string `yaml:"zone"`
	Note        string `yaml:"note"`
	LodgingDate string `yaml:"lodging_date"`
	LodgingName string `yaml:"lodging_name"`
}

// Config is the top-level application configuration.
type Config struct {
	// Zones is the closed set of display zones, each with an integer
	// hour offset relative to the reference zone (the one at 0). These
	// are relative offsets between supported zones, not UTC offsets.
	Zones map[string]int `yaml:"zones"`

	// DisplayZone is the zone shown at startup.
	DisplayZone string `yaml:"display_zone"`

	// LocalZone names the zone the host clock reads; the now indicator
	// is projected from it.
	LocalZone string `yaml:"local_zone"`

	Sheet   SheetConfig   `yaml:"sheet"`
	Files   FilesConfig   `yaml:"files"`
	Columns ColumnsConfig `yaml:"columns"`

	// Refresh is the data re-fetch interval, NowTick the now-indicator
	// recompute interval. Both are Go duration strings.
	Refresh string `yaml:"refresh"`
	NowTick string `yaml:"now_tick"`

	DaysPerPage int `yaml:"days_per_page"`

	// Parsed by Validate; not serialized.
	RefreshRate time.Duration `yaml:"-"`
	NowRate     time.Duration `yaml:"-"`
}

func DefaultConfig() *Config {
	return &Config{
		Zones:       map[string]int{"KST": 0, "PST": -17},
		DisplayZone: "KST",
		LocalZone:   "KST",
		Columns: ColumnsConfig{
			StartDate:   "Start Date",
			StartTime:   "Start Time",
			EndDate:     "End Date",
			EndTime:     "End Time",
			Title:       "Title",
			Zone:        "Timezone",
			Note:        "Note",
			LodgingDate: "Date",
			LodgingName: "Hotel",
		},
		Refresh:     "5m",
		NowTick:     "30s",
		DaysPerPage: 2,
	}
}

// Normalize fills missing values with defaults so partial configs from
// older versions keep working.
func (c *Config) Normalize() {
	def := DefaultConfig()

	if len(c.Zones) == 0 {
		c.Zones = def.Zones
	}
	if c.DisplayZone == "" {
		c.DisplayZone = def.DisplayZone
	}
	if c.LocalZone == "" {
		c.LocalZone = def.LocalZone
	}
	if c.Refresh == "" {
		c.Refresh = def.Refresh
	}
	if c.NowTick == "" {
		c.NowTick = def.NowTick
	}
	if c.DaysPerPage < 1 {
		c.DaysPerPage = def.DaysPerPage
	}

	cols := &c.Columns
	defCols := def.Columns
	if cols.StartDate == "" {
		cols.StartDate = defCols.StartDate
	}
	if cols.StartTime == "" {
		cols.StartTime = defCols.StartTime
	}
	if cols.EndDate == "" {
		cols.EndDate = defCols.EndDate
	}
	if cols.EndTime == "" {
		cols.EndTime = defCols.EndTime
	}
	if cols.Title == "" {
		cols.Title = defCols.Title
	}
	if cols.Zone == "" {
		cols.Zone = defCols.Zone
	}
	if cols.Note == "" {
		cols.Note = defCols.Note
	}
	if cols.LodgingDate == "" {
		cols.LodgingDate = defCols.LodgingDate
	}
	if cols.LodgingName == "" {
		cols.LodgingName = defCols.LodgingName
	}
}

// Validate rejects configurations that would corrupt downstream time
// computations. Zone problems fail here, at load time, rather than
// silently defaulting later.
func (c *Config) Validate() error {
	if len(c.Zones) == 0 {
		return errors.New("no zones configured")
	}
	if _, ok := c.Zones[c.DisplayZone]; !ok {
		return fmt.Errorf("display_zone %q is not in the zone table", c.DisplayZone)
	}
	if _, ok := c.Zones[c.LocalZone]; !ok {
		return fmt.Errorf("local_zone %q is not in the zone table", c.LocalZone)
	}

	rate, err := time.ParseDuration(c.Refresh)
	if err != nil || rate <= 0 {
		return fmt.Errorf("invalid refresh interval %q", c.Refresh)
	}
	c.RefreshRate = rate

	now, err := time.ParseDuration(c.NowTick)
	if err != nil || now <= 0 {
		return fmt.Errorf("invalid now_tick interval %q", c.NowTick)
	}
	c.NowRate = now

	return nil
}

// DefaultPath returns the standard config location.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "tripline", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "tripline", "config.yaml")
}

// Load reads the YAML config at path. A missing file is a first run:
// the default config is written there and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			if err := cfg.Validate(); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration atomically with 0600 permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tripline-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
