/*
Copyright © 2025 The statctl Authors
SPDX-License-Identifier: Apache-2.0
*/

package daemon

import (
	"fmt"
	"os"
	"time"

	"golang.org/x/time/rate"

	"github.com/mtaops/statctl/pkg/defaults"
)

// Config holds daemon configuration
type Config struct {
	// Server identity
	Name    string
	Version string

	// NodeName identifies this node in query responses
	NodeName string

	// Server configuration
	Address string
	Port    int

	// Rate limiting configuration
	RateLimit      rate.Limit // requests per second
	RateLimitBurst int        // burst size

	// Timeouts
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// NewConfig returns a new Config with sensible defaults, overridable
// through the environment. Use this when you want to customize config
// programmatically.
func NewConfig() *Config {
	cfg := &Config{
		Name:            "statd",
		Version:         "undefined",
		NodeName:        nodeName(),
		Address:         "",
		Port:            8080,
		RateLimit:       100, // 100 req/s
		RateLimitBurst:  200, // burst of 200
		ReadTimeout:     defaults.ServerReadTimeout,
		WriteTimeout:    defaults.ServerWriteTimeout,
		IdleTimeout:     defaults.ServerIdleTimeout,
		ShutdownTimeout: defaults.ServerShutdownTimeout,
	}

	// Override with environment variables if set
	if portStr := os.Getenv("STATD_PORT"); portStr != "" {
		var port int
		if _, err := fmt.Sscanf(portStr, "%d", &port); err == nil {
			cfg.Port = port
		}
	}

	if limitStr := os.Getenv("STATD_RATE_LIMIT"); limitStr != "" {
		var limit int
		if _, err := fmt.Sscanf(limitStr, "%d", &limit); err == nil && limit > 0 {
			cfg.RateLimit = rate.Limit(limit)
			cfg.RateLimitBurst = limit * 2
		}
	}

	// Allow customization of shutdown timeout to match the host's
	// service manager grace period
	if shutdownStr := os.Getenv("STATD_SHUTDOWN_TIMEOUT_SECONDS"); shutdownStr != "" {
		var seconds int
		if _, err := fmt.Sscanf(shutdownStr, "%d", &seconds); err == nil && seconds > 0 {
			cfg.ShutdownTimeout = time.Duration(seconds) * time.Second
		}
	}

	return cfg
}

// nodeName resolves this node's identity from STATD_NODE_NAME, falling
// back to HOSTNAME and finally the kernel hostname.
func nodeName() string {
	if name := os.Getenv("STATD_NODE_NAME"); name != "" {
		return name
	}
	if name := os.Getenv("HOSTNAME"); name != "" {
		return name
	}
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
