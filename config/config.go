package config

import (
	"fmt"
	"strconv"

	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

// Recognized configuration keys.
const (
	ChunkingAlgoKey      = "chunking_algo"
	HashingAlgoKey       = "hashing_algo"
	FCSizeKey            = "fc_size"
	RabincWindowSizeKey  = "rabinc_window_size"
	RabincMinBlockKey    = "rabinc_min_block_size"
	RabincAvgBlockKey    = "rabinc_avg_block_size"
	RabincMaxBlockKey    = "rabinc_max_block_size"
	AEAvgBlockKey        = "ae_avg_block_size"
	AEExtremeModeKey     = "ae_extreme_mode"
)

// ChunkingTech enumerates the supported chunking algorithms.
type ChunkingTech int

const (
	ChunkingUnknown ChunkingTech = iota
	ChunkingFixed
	ChunkingRabins
	ChunkingAE
)

// HashingTech enumerates the supported chunk hash algorithms.
type HashingTech int

const (
	HashingUnknown HashingTech = iota
	HashingMD5
	HashingSHA1
	HashingSHA256
)

// AEMode selects which extremum triggers an AE cut.
type AEMode int

const (
	AEModeMax AEMode = iota
	AEModeMin
)

// Config exposes typed accessors over a parsed configuration file. Values
// are validated on access, so a broken key only surfaces when it is needed.
type Config struct {
	parser *Parser
}

// New loads the configuration file at path.
func New(path string) (*Config, error) {
	parser, err := NewParser(path)
	if err != nil {
		return nil, err
	}
	return &Config{parser: parser}, nil
}

// ChunkingAlgo returns the configured chunking technique.
func (c *Config) ChunkingAlgo() (ChunkingTech, error) {
	value, err := c.parser.Property(ChunkingAlgoKey)
	if err != nil {
		return ChunkingUnknown, err
	}
	switch value {
	case "fixed":
		return ChunkingFixed, nil
	case "rabins":
		return ChunkingRabins, nil
	case "ae":
		return ChunkingAE, nil
	}
	return ChunkingUnknown, fmt.Errorf("%w: %s=%q", internal.ErrConfigInvalid, ChunkingAlgoKey, value)
}

// HashingAlgo returns the configured chunk hash technique.
func (c *Config) HashingAlgo() (HashingTech, error) {
	value, err := c.parser.Property(HashingAlgoKey)
	if err != nil {
		return HashingUnknown, err
	}
	switch value {
	case "md5":
		return HashingMD5, nil
	case "sha1":
		return HashingSHA1, nil
	case "sha256":
		return HashingSHA256, nil
	}
	return HashingUnknown, fmt.Errorf("%w: %s=%q", internal.ErrConfigInvalid, HashingAlgoKey, value)
}

// FCSize returns the chunk length for fixed-size chunking.
func (c *Config) FCSize() (int, error) {
	return c.positiveInt(FCSizeKey, 1)
}

// RabincWindowSize returns the Rabin sliding window size in bytes.
func (c *Config) RabincWindowSize() (int, error) {
	return c.positiveInt(RabincWindowSizeKey, 1)
}

// RabincMinBlockSize returns the minimum Rabin chunk length.
func (c *Config) RabincMinBlockSize() (int, error) {
	return c.positiveInt(RabincMinBlockKey, 1)
}

// RabincAvgBlockSize returns the target average Rabin chunk length.
func (c *Config) RabincAvgBlockSize() (int, error) {
	return c.positiveInt(RabincAvgBlockKey, 1)
}

// RabincMaxBlockSize returns the hard upper bound on Rabin chunk length.
func (c *Config) RabincMaxBlockSize() (int, error) {
	return c.positiveInt(RabincMaxBlockKey, 1)
}

// AEAvgBlockSize returns the target average AE chunk length.
func (c *Config) AEAvgBlockSize() (int, error) {
	return c.positiveInt(AEAvgBlockKey, 2)
}

// AEExtremeMode returns which extremum the AE chunker cuts on.
func (c *Config) AEExtremeMode() (AEMode, error) {
	value, err := c.parser.Property(AEExtremeModeKey)
	if err != nil {
		return AEModeMax, err
	}
	switch value {
	case "min":
		return AEModeMin, nil
	case "max":
		return AEModeMax, nil
	}
	return AEModeMax, fmt.Errorf("%w: %s=%q", internal.ErrConfigInvalid, AEExtremeModeKey, value)
}

func (c *Config) positiveInt(key string, floor int) (int, error) {
	value, err := c.parser.Property(key)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", internal.ErrConfigInvalid, key, value)
	}
	if n < floor {
		return 0, fmt.Errorf("%w: %s=%d is below %d", internal.ErrConfigInvalid, key, n, floor)
	}
	return n, nil
}
