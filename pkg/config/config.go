// Package config provides hierarchical configuration management.
// Priority: defaults < system < user < project < env < flags
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"sync"

	"gopkg.in/yaml.v3"
)

// Config holds all atomlens configuration.
type Config struct {
	Version int `yaml:"version"`

	Paths  PathsConfig  `yaml:"paths"`
	Report ReportConfig `yaml:"report"`
	Scan   ScanConfig   `yaml:"scan"`
}

// PathsConfig locates the three input collections.
type PathsConfig struct {
	Processes string `yaml:"processes"` // definitions collection
	Execution string `yaml:"execution"` // execution-history collection
	Logs      string `yaml:"logs"`      // shared container logs
}

// ReportConfig controls the rendered output.
type ReportConfig struct {
	TopN int    `yaml:"top_n"`
	CSV  string `yaml:"csv"`  // empty disables the CSV export
	XLSX string `yaml:"xlsx"` // empty disables the XLSX export
}

// ScanConfig controls the collection passes.
type ScanConfig struct {
	Workers  int  `yaml:"workers"` // 0 = sequential
	KeepTemp bool `yaml:"keep_temp"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Version: 1,
		Paths: PathsConfig{
			Processes: "/opt/atom/processes",
			Execution: "/opt/atom/execution",
			Logs:      "/opt/atom/logs",
		},
		Report: ReportConfig{
			TopN: 5,
		},
		Scan: ScanConfig{
			Workers: 4,
		},
	}
}

// Manager handles configuration loading and merging.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	paths  []string // paths that were loaded
}

// NewManager creates a new configuration manager.
func NewManager() *Manager {
	return &Manager{config: Default()}
}

// Load loads configuration from all sources in priority order.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.config = Default()

	for _, path := range m.getConfigPaths() {
		if err := m.loadFile(path); err != nil {
			if !os.IsNotExist(err) {
				return err
			}
		} else {
			m.paths = append(m.paths, path)
		}
	}

	m.loadEnv()
	return nil
}

// getConfigPaths returns config file paths in priority order.
func (m *Manager) getConfigPaths() []string {
	var paths []string

	if runtime.GOOS != "windows" {
		paths = append(paths, "/etc/atomlens/config.yaml")
	}

	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".atomlens", "config.yaml"))
	}

	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".atomlens.yaml"))
	}

	return paths
}

// loadFile loads a single config file and merges it.
func (m *Manager) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var partial Config
	if err := yaml.Unmarshal(data, &partial); err != nil {
		return err
	}

	m.merge(&partial)
	return nil
}

// merge merges non-zero values from src into config.
func (m *Manager) merge(src *Config) {
	if src.Paths.Processes != "" {
		m.config.Paths.Processes = src.Paths.Processes
	}
	if src.Paths.Execution != "" {
		m.config.Paths.Execution = src.Paths.Execution
	}
	if src.Paths.Logs != "" {
		m.config.Paths.Logs = src.Paths.Logs
	}

	if src.Report.TopN != 0 {
		m.config.Report.TopN = src.Report.TopN
	}
	if src.Report.CSV != "" {
		m.config.Report.CSV = src.Report.CSV
	}
	if src.Report.XLSX != "" {
		m.config.Report.XLSX = src.Report.XLSX
	}

	if src.Scan.Workers != 0 {
		m.config.Scan.Workers = src.Scan.Workers
	}
	if src.Scan.KeepTemp {
		m.config.Scan.KeepTemp = true
	}
}

// loadEnv loads configuration from environment variables.
func (m *Manager) loadEnv() {
	if v := os.Getenv("ATOMLENS_PROCESSES_DIR"); v != "" {
		m.config.Paths.Processes = v
	}
	if v := os.Getenv("ATOMLENS_EXECUTION_DIR"); v != "" {
		m.config.Paths.Execution = v
	}
	if v := os.Getenv("ATOMLENS_LOGS_DIR"); v != "" {
		m.config.Paths.Logs = v
	}
	if v := os.Getenv("ATOMLENS_TOP_N"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			m.config.Report.TopN = n
		}
	}
	if v := os.Getenv("ATOMLENS_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			m.config.Scan.Workers = n
		}
	}
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// GetPaths returns the config file paths that were loaded.
func (m *Manager) GetPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.paths
}
