package editor

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/wandb/spectra/internal/observability"
	"github.com/wandb/spectra/internal/spectrum"
)

const (
	EnvConfigDir = "SPECTRA_CONFIG_DIR"
	configName   = "config.yaml"

	MinSnapSeconds, MaxSnapSeconds = 1, 3600
	MinCells, MaxCells             = 0.5, 10.0

	DefaultSnapSeconds   = 1
	DefaultDragThreshold = 1.0
)

// Config stores the editor configuration.
type Config struct {
	// Palette is cycled through by the recolor key.
	Palette []string `json:"palette" yaml:"palette"`

	// SnapSeconds is the rounding applied to dragged times.
	SnapSeconds int `json:"snap_seconds" yaml:"snap_seconds"`

	// DragThresholdCells is how far a pressed point moves before it drags.
	DragThresholdCells float64 `json:"drag_threshold_cells" yaml:"drag_threshold_cells"`

	// HitRadiusCells is how close the pointer has to be to hit a point.
	HitRadiusCells float64 `json:"hit_radius_cells" yaml:"hit_radius_cells"`

	// Suggested intensity axis bounds. Data outside widens the axis.
	YSuggestedMin float64 `json:"y_suggested_min" yaml:"y_suggested_min"`
	YSuggestedMax float64 `json:"y_suggested_max" yaml:"y_suggested_max"`

	SidebarVisible bool `json:"sidebar_visible" yaml:"sidebar_visible"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() Config {
	return Config{
		Palette:            append([]string(nil), defaultPalette...),
		SnapSeconds:        DefaultSnapSeconds,
		DragThresholdCells: DefaultDragThreshold,
		HitRadiusCells:     DefaultHitRadius,
		YSuggestedMin:      0,
		YSuggestedMax:      100,
		SidebarVisible:     true,
	}
}

// SnapStep returns the snap step as a duration.
func (c Config) SnapStep() time.Duration {
	return time.Duration(c.SnapSeconds) * time.Second
}

// Axis returns the axis window the config describes.
func (c Config) Axis() spectrum.AxisConfig {
	axis := spectrum.DefaultAxisConfig()
	axis.YSuggestedMin = c.YSuggestedMin
	axis.YSuggestedMax = c.YSuggestedMax
	return axis
}

// ConfigManager manages the editor configuration with thread-safe access
// and automatic persistence.
//
// All setter methods save changes. The file format follows the extension:
// .yaml and .yml are YAML, anything else is JSON.
type ConfigManager struct {
	mu     sync.RWMutex
	fs     afero.Fs
	path   string
	config Config
	logger *observability.CoreLogger
}

func NewConfigManager(
	fs afero.Fs,
	path string,
	logger *observability.CoreLogger,
) *ConfigManager {
	if logger == nil {
		logger = observability.NewNoOpLogger()
	}
	cm := &ConfigManager{
		fs:     fs,
		path:   path,
		config: DefaultConfig(),
		logger: logger,
	}
	if err := cm.loadOrCreateConfig(); err != nil {
		cm.logger.CaptureWarn("config: using defaults", "error", err.Error())
	}
	return cm
}

// loadOrCreateConfig loads the configuration or stores and uses defaults.
func (cm *ConfigManager) loadOrCreateConfig() error {
	data, err := afero.ReadFile(cm.fs, cm.path)

	if errors.Is(err, os.ErrNotExist) {
		if dir := filepath.Dir(cm.path); dir != "" {
			_ = cm.fs.MkdirAll(dir, 0o755)
		}
		cm.normalizeConfig()
		return cm.save()
	}
	if err != nil {
		return err
	}

	if err := cm.unmarshal(data, &cm.config); err != nil {
		return err
	}
	cm.normalizeConfig()
	return nil
}

func (cm *ConfigManager) isYAML() bool {
	switch strings.ToLower(filepath.Ext(cm.path)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func (cm *ConfigManager) unmarshal(data []byte, cfg *Config) error {
	if cm.isYAML() {
		return yaml.Unmarshal(data, cfg)
	}
	return json.Unmarshal(data, cfg)
}

func (cm *ConfigManager) marshal(cfg Config) ([]byte, error) {
	if cm.isYAML() {
		return yaml.Marshal(cfg)
	}
	return json.MarshalIndent(cfg, "", "  ")
}

// normalizeConfig ensures all config values are within valid ranges.
func (cm *ConfigManager) normalizeConfig() {
	cm.config.SnapSeconds = clamp(cm.config.SnapSeconds, MinSnapSeconds, MaxSnapSeconds)
	cm.config.DragThresholdCells = clamp(cm.config.DragThresholdCells, MinCells, MaxCells)
	cm.config.HitRadiusCells = clamp(cm.config.HitRadiusCells, MinCells, MaxCells)

	if cm.config.YSuggestedMax <= cm.config.YSuggestedMin {
		cm.config.YSuggestedMin = 0
		cm.config.YSuggestedMax = 100
	}

	palette := make([]string, 0, len(cm.config.Palette))
	for _, raw := range cm.config.Palette {
		c, err := spectrum.ParseColor(raw)
		if err != nil {
			cm.logger.Warn("config: dropping invalid palette color", "color", raw)
			continue
		}
		palette = append(palette, c.String())
	}
	if len(palette) == 0 {
		palette = append(palette, defaultPalette...)
	}
	cm.config.Palette = palette
}

func clamp[T int | float64](val, minimum, maximum T) T {
	if val < minimum {
		return minimum
	}
	if val > maximum {
		return maximum
	}
	return val
}

// save writes the current configuration.
//
// Must be called while holding the lock.
func (cm *ConfigManager) save() error {
	data, err := cm.marshal(cm.config)
	if err != nil {
		return err
	}

	targetPath := cm.path
	tempPath := targetPath + ".tmp"

	// Write atomically via temp file + rename.
	if err := afero.WriteFile(cm.fs, tempPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp config file: %v", err)
	}
	if err := cm.fs.Rename(tempPath, targetPath); err != nil {
		return fmt.Errorf("failed to rename tmp config file: %v", err)
	}
	return nil
}

// Path returns the config file path.
func (cm *ConfigManager) Path() string {
	return cm.path
}

// Snapshot returns a copy of the current config.
func (cm *ConfigManager) Snapshot() Config {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	cfg := cm.config
	cfg.Palette = append([]string(nil), cm.config.Palette...)
	return cfg
}

// Palette returns the recolor palette.
func (cm *ConfigManager) Palette() []spectrum.Color {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	colors := make([]spectrum.Color, len(cm.config.Palette))
	for i, c := range cm.config.Palette {
		colors[i] = spectrum.Color(c)
	}
	return colors
}

// SetSnapSeconds sets the drag snap step.
func (cm *ConfigManager) SetSnapSeconds(seconds int) error {
	if seconds < MinSnapSeconds || seconds > MaxSnapSeconds {
		return fmt.Errorf("snap seconds must be between %d and %d",
			MinSnapSeconds, MaxSnapSeconds)
	}

	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.SnapSeconds = seconds
	return cm.save()
}

// SidebarVisible returns whether the spectra sidebar should be visible.
func (cm *ConfigManager) SidebarVisible() bool {
	cm.mu.RLock()
	defer cm.mu.RUnlock()
	return cm.config.SidebarVisible
}

// SetSidebarVisible sets the spectra sidebar visibility.
func (cm *ConfigManager) SetSidebarVisible(visible bool) error {
	cm.mu.Lock()
	defer cm.mu.Unlock()
	cm.config.SidebarVisible = visible
	return cm.save()
}

// ConfigPath returns the path where the config should be stored.
//
// Tries SPECTRA_CONFIG_DIR, then ~/.config/spectra, then the OS user config
// dir, then a fresh temp dir.
func ConfigPath(fs afero.Fs) string {
	if raw := strings.TrimSpace(os.Getenv(EnvConfigDir)); raw != "" {
		if p, ok := configPathFromDir(fs, raw); ok {
			return p
		}
	}

	if home, err := homedir.Dir(); err == nil {
		if p, ok := configPathFromDir(fs, filepath.Join(home, ".config", "spectra")); ok {
			return p
		}
	}

	if base, err := os.UserConfigDir(); err == nil {
		if p, ok := configPathFromDir(fs, filepath.Join(base, "spectra")); ok {
			return p
		}
	}

	if tmp, err := afero.TempDir(fs, "", "spectra-*"); err == nil {
		return filepath.Join(tmp, configName)
	}
	return filepath.Join(os.TempDir(), configName)
}

func configPathFromDir(fs afero.Fs, dir string) (string, bool) {
	d := expandAndClean(dir)
	if err := ensureWritableDir(fs, d); err != nil {
		return "", false
	}
	return filepath.Join(d, configName), true
}

// ExpandPath expands a leading ~ and makes the path absolute.
func ExpandPath(p string) string {
	return expandAndClean(p)
}

func expandAndClean(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return p
	}
	if expanded, err := homedir.Expand(p); err == nil {
		p = expanded
	}
	if abs, err := filepath.Abs(p); err == nil {
		p = abs
	}
	return filepath.Clean(p)
}

// ensureWritableDir verifies directory writability without leaving files behind.
func ensureWritableDir(fs afero.Fs, dir string) error {
	if dir == "" {
		return errors.New("empty dir")
	}
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	f, err := afero.TempFile(fs, dir, ".spectra-writecheck-*")
	if err != nil {
		return err
	}
	name := f.Name()
	_ = f.Close()
	_ = fs.Remove(name)
	return nil
}
