package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseFetchSize sets the number of observation rows fetched per
// round trip when streaming survey tables.
func OptDatabaseFetchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Fetch Size", i) {
			c.Database.FetchSize = i
		}
	}
}

// OptBuildDatasetNames sets the list of dataset names to process.
// Empty slice means build all datasets from datasets.yaml.
// Runtime-only field - not in ToOptions().
func OptBuildDatasetNames(ss []string) Option {
	return func(c *Config) {
		if len(ss) > 0 {
			c.Build.DatasetNames = ss
		}
	}
}

// OptBuildSizeClass keeps observations from plots of one size class only.
// Uses pointer to distinguish between unset (nil) and zero.
// Runtime-only field - not in ToOptions().
func OptBuildSizeClass(f *float64) Option {
	return func(c *Config) {
		if f != nil {
			c.Build.SizeClass = f
		}
	}
}

// OptBuildRenumber sets whether matrix rows are relabeled with ordinal
// site numbers after alignment is verified.
// Uses pointer to distinguish between unset (nil) and false.
// Runtime-only field - not in ToOptions().
func OptBuildRenumber(b *bool) Option {
	return func(c *Config) {
		if b != nil {
			c.Build.Renumber = b
		}
	}
}

// OptPlotScaling selects the biplot projection.
// Valid values: 1 (distance), 2 (correlation).
func OptPlotScaling(i int) Option {
	return func(c *Config) {
		if isValidScaling("Plot.Scaling", i) {
			c.Plot.Scaling = i
		}
	}
}

// OptPlotFormat sets the image format of saved plots.
// Valid values: "svg", "png", "pdf".
func OptPlotFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Plot.Format", s) {
			c.Plot.Format = s
		}
	}
}

// OptPlotWidth sets the plot width in inches.
func OptPlotWidth(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Plot Width", f) {
			c.Plot.Width = f
		}
	}
}

// OptPlotHeight sets the plot height in inches.
func OptPlotHeight(f float64) Option {
	return func(c *Config) {
		if isValidFloat("Plot Height", f) {
			c.Plot.Height = f
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdout", "stderr".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
