package store

import (
	"github.com/oratio-tech/competitor-cli/internal/config"
)

func storeConfig(driver, dir string) config.StoreConfig {
	return config.StoreConfig{Driver: driver, Dir: dir}
}
