// Package config loads runtime configuration for the vehireg CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file: --config, or vehireg.{yaml,json,toml} in the
//     working directory or $HOME/.vehireg.
//  3. Environment variables VEHIREG_<KEY>, dashes replaced by underscores
//     (VEHIREG_SERVER_URL, VEHIREG_REQUEST_TIMEOUT, ...).
//  4. Command-line flags registered by RegisterFlags.
//
// # File schema
//
// Durations accept Go duration strings:
//
//	server-url: http://127.0.0.1:8080/api/vehicles
//	request-timeout: 10s
//	log-backend: zap
//	log-level: debug
//	s3-region: eu-west-1
//
// Primary API
//
//   - type Config                         — the resolved settings
//   - func Load(v, file) (*Config, error) — applies all sources and validates
//   - func RegisterFlags(v, fs) error     — adds and binds the flags
package config
