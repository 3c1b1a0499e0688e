package simulator

import (
	"errors"
	"fmt"

	set "github.com/deckarep/golang-set/v2"
)

// Test stand configuration, i.e. which of the four ESCs are powered
type Config int

const (
	SINGLE   Config = 1
	CROSS_02 Config = 2
	CROSS_13 Config = 3
	ALL_4    Config = 4
)

var ErrInvalidConfig = errors.New("invalid test configuration")

var validConfigs = set.NewSet[Config](SINGLE, CROSS_02, CROSS_13, ALL_4)

func ParseConfig(value int) (Config, error) {
	config := Config(value)
	if !validConfigs.Contains(config) {
		return 0, fmt.Errorf("%w: %d", ErrInvalidConfig, value)
	}
	return config, nil
}

func (c Config) String() string {
	switch c {
	case SINGLE:
		return "single"
	case CROSS_02:
		return "cross_02"
	case CROSS_13:
		return "cross_13"
	case ALL_4:
		return "all_4"
	}
	return fmt.Sprintf("config(%d)", int(c))
}
