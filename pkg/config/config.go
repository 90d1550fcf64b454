package config

import (
	"time"
)

// Config is the complete archup configuration.
type Config struct {
	Workdir  string         `koanf:"workdir"`
	Shell    ShellConfig    `koanf:"shell"`
	Packages PackagesConfig `koanf:"packages"`
	Database DatabaseConfig `koanf:"database"`
	Project  ProjectConfig  `koanf:"project"`
	GitHub   GitHubConfig   `koanf:"github"`
	Python   PythonConfig   `koanf:"python"`
}

// ShellConfig controls alias injection.
type ShellConfig struct {
	RCFile    string `koanf:"rc_file"`
	AliasFile string `koanf:"alias_file"`
}

// PackagesConfig controls system and AUR package installation.
type PackagesConfig struct {
	Manager       string   `koanf:"manager"`
	System        []string `koanf:"system"`
	AURHelper     string   `koanf:"aur_helper"`
	AURHelperRepo string   `koanf:"aur_helper_repo"`
	AUR           []string `koanf:"aur"`
}

// Database drivers
const (
	DriverCLI    = "cli"
	DriverSocket = "socket"
)

// DatabaseConfig controls the MariaDB server setup.
type DatabaseConfig struct {
	Driver          string        `koanf:"driver"`
	Client          string        `koanf:"client"`
	Service         string        `koanf:"service"`
	InstallDB       string        `koanf:"install_db"`
	DataDir         string        `koanf:"datadir"`
	Socket          string        `koanf:"socket"`
	DefaultName     string        `koanf:"default_name"`
	DefaultPassword string        `koanf:"default_password"`
	ReadyTimeout    time.Duration `koanf:"ready_timeout"`
}

// ProjectConfig describes the repository that gets cloned.
type ProjectConfig struct {
	DefaultName string `koanf:"default_name"`
	Owner       string `koanf:"owner"`
	Branch      string `koanf:"branch"`
	URLTemplate string `koanf:"url_template"`
}

// GitHubConfig controls gh authentication.
type GitHubConfig struct {
	MaxLoginAttempts int `koanf:"max_login_attempts"`
}

// PythonConfig controls the virtual environment.
type PythonConfig struct {
	Interpreter string `koanf:"interpreter"`
	VenvDir     string `koanf:"venv_dir"`
}
