// Package paths provides centralized path management for dwapp.
package paths

import (
	"os"
	"path/filepath"
)

// File name constants.
const (
	ConfigFile   = "dwapp.toml"
	MnemonicFile = "mnemonic"
	HistoryFile  = "history.db"
)

const DefaultHomeDirName = ".dwapp"

// DefaultHomeDir returns $HOME/.dwapp or falls back to the current directory.
func DefaultHomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return DefaultHomeDirName
	}
	return filepath.Join(home, DefaultHomeDirName)
}

func ConfigPath(homeDir string) string {
	return filepath.Join(homeDir, ConfigFile)
}

func MnemonicPath(homeDir string) string {
	return filepath.Join(homeDir, MnemonicFile)
}

func HistoryPath(homeDir string) string {
	return filepath.Join(homeDir, HistoryFile)
}
