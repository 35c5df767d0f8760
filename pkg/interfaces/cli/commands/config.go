package commands

import (
	"io"
	"os"

	"github.com/vsinha/liquorstore/pkg/infrastructure/clock"
)

// Config holds configuration shared by the storefront commands
type Config struct {
	DataDir    string
	ConfigFile string
	ReportType string
	StartDate  string
	EndDate    string
	OutputDir  string
	Format     string
	TopN       int
	Address    string
	Verbose    bool
	Help       bool

	// Clock overrides the store clock. Nil uses the system clock in the store timezone.
	Clock clock.Clock
	// Out receives command output. Nil means stdout.
	Out io.Writer
}

func (c Config) out() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
