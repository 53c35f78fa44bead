package config

import (
	configUtil "github.com/fox-one/pkg/config"

	"lever/core"
)

// Load load config file
func Load(configFile string, config *core.Config) error {
	configUtil.AutomaticLoadEnv("LEVER")
	if err := configUtil.LoadYaml(configFile, config); err != nil {
		return err
	}

	return nil
}
