// Package appconf holds application-level configuration shared across the
// server, the refresh job, and the HTTP layer.
package appconf

import "time"

type Environment int

const (
	Development Environment = iota
	Test
	Production
)

func (e Environment) String() string {
	switch e {
	case Test:
		return "test"
	case Production:
		return "production"
	default:
		return "development"
	}
}

// EnvFlagToEnvironment maps the -env flag value to an Environment.
// Unknown values fall back to Development.
func EnvFlagToEnvironment(flag string) Environment {
	switch flag {
	case "test":
		return Test
	case "production":
		return Production
	default:
		return Development
	}
}

// Config is the top-level application configuration, populated from
// command-line flags in cmd/api.
type Config struct {
	Port            int
	Env             Environment
	Verbose         bool
	ApiKeys         []string
	RateLimit       int
	DatasetPath     string
	DBPath          string
	RefreshInterval time.Duration
}
