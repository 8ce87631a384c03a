package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"
)

type Config struct {
	BoardSize     int    `json:"board_size"`
	WinLength     int    `json:"win_length"`
	MoveTimeoutMs int    `json:"move_timeout_ms"`
	MaxDepth      int    `json:"max_depth"`
	SearchRange   int    `json:"search_range"`
	EvalCacheSize int    `json:"eval_cache_size"`
	MaxSessions   int    `json:"max_sessions"`
	TeamName      string `json:"team_name"`
	Port          int    `json:"port"`
	HTTPAddr      string `json:"http_addr"`
	JournalPath   string `json:"journal_path"`
	LogLevel      string `json:"log_level"`
	LogSearch     bool   `json:"log_search_stats"`
}

type ConfigStore struct {
	mu     sync.RWMutex
	config Config
}

const (
	minPort = 1024
	maxPort = 65535
)

func DefaultConfig() Config {
	return Config{
		BoardSize:     31,
		WinLength:     5,
		MoveTimeoutMs: 5000,
		MaxDepth:      1,
		SearchRange:   4,

		// ~64k boards; one entry holds a 961 byte key at the default size.
		EvalCacheSize: 1 << 16,
		MaxSessions:   64,

		TeamName:  "TEAM ANGLERS",
		HTTPAddr:  "",
		LogLevel:  "info",
		LogSearch: false,
	}
}

var configStore = &ConfigStore{config: DefaultConfig()}

func GetConfig() Config {
	return configStore.Get()
}

func (c *ConfigStore) Get() Config {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.config
}

func (c *ConfigStore) Update(newConfig Config) {
	c.mu.Lock()
	c.config = newConfig
	c.mu.Unlock()
}

func (c Config) MoveTimeout() time.Duration {
	return time.Duration(c.MoveTimeoutMs) * time.Millisecond
}

func (c Config) Center() Move {
	return Move{X: c.BoardSize / 2, Y: c.BoardSize / 2}
}

func (c Config) Validate() error {
	if c.BoardSize < 1 {
		return fmt.Errorf("board_size must be positive, got %d", c.BoardSize)
	}
	if c.WinLength < 1 {
		return fmt.Errorf("win_length must be positive, got %d", c.WinLength)
	}
	if c.MoveTimeoutMs <= 0 {
		return fmt.Errorf("move_timeout_ms must be positive, got %d", c.MoveTimeoutMs)
	}
	if c.MaxDepth < 1 {
		return fmt.Errorf("max_depth must be at least 1, got %d", c.MaxDepth)
	}
	if c.MaxSessions < 1 {
		return fmt.Errorf("max_sessions must be at least 1, got %d", c.MaxSessions)
	}
	if c.SearchRange < 0 {
		return fmt.Errorf("search_range must not be negative, got %d", c.SearchRange)
	}
	if c.Port != 0 && (c.Port < minPort || c.Port > maxPort) {
		return fmt.Errorf("port must be between %d and %d", minPort, maxPort)
	}
	return nil
}

// LoadConfigFile overlays the JSON document at path onto base.
func LoadConfigFile(path string, base Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, fmt.Errorf("read config %s: %w", path, err)
	}
	config := base
	if err := json.Unmarshal(data, &config); err != nil {
		return base, fmt.Errorf("parse config %s: %w", path, err)
	}
	return config, nil
}

// ApplyEnv overlays RENJU_* environment variables onto base.
func ApplyEnv(base Config) Config {
	config := base
	config.HTTPAddr = getenv("RENJU_HTTP_ADDR", config.HTTPAddr)
	config.JournalPath = getenv("RENJU_JOURNAL_PATH", config.JournalPath)
	config.LogLevel = getenv("RENJU_LOG_LEVEL", config.LogLevel)
	config.TeamName = getenv("RENJU_TEAM_NAME", config.TeamName)
	config.MoveTimeoutMs = getenvInt("RENJU_MOVE_TIMEOUT_MS", config.MoveTimeoutMs)
	config.EvalCacheSize = getenvInt("RENJU_EVAL_CACHE_SIZE", config.EvalCacheSize)
	config.MaxSessions = getenvInt("RENJU_MAX_SESSIONS", config.MaxSessions)
	return config
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getenvInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
