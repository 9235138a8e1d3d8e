package config

import (
	"net"
	"strconv"
)

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host  string `yaml:"host"`
	Port  int    `yaml:"port"`
	Debug bool   `yaml:"debug"`
}

// Addr returns the host:port address the server binds to.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// Limits bounds the work a single request may perform and the request
// volume a single client may submit.
type Limits struct {
	MaxSteps          int `yaml:"max_steps"`
	RequestsPerMinute int `yaml:"requests_per_minute"`
}

// Config represents the collatz.yaml file.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Limits Limits       `yaml:"limits"`
}
