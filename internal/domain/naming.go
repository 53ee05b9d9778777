package domain

import "path/filepath"

// Directory and file names for systask.
const (
	AppDirName        = "systask"     // Directory name under XDG config/state homes
	ProjectDirName    = ".systask"    // Project-local directory
	ConfigFileName    = "config.toml" // Config file name
	GlobalLogFileName = "systask.log" // Log file name
)

// ProjectConfigDir returns the project config directory for a working directory.
func ProjectConfigDir(dir string) string {
	return filepath.Join(dir, ProjectDirName)
}

// GlobalConfigDir returns the global config directory.
// configHome is typically XDG_CONFIG_HOME or ~/.config (resolved by caller).
func GlobalConfigDir(configHome string) string {
	return filepath.Join(configHome, AppDirName)
}

// StateDir returns the state directory.
// stateHome is typically XDG_STATE_HOME or ~/.local/state (resolved by caller).
func StateDir(stateHome string) string {
	return filepath.Join(stateHome, AppDirName)
}

// GlobalLogPath returns the path to the log file.
func GlobalLogPath(stateDir string) string {
	return filepath.Join(stateDir, "logs", GlobalLogFileName)
}
