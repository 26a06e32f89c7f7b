// Package config loads chunking parameters from a delimited key/value file.
//
// The file is UTF-8, line oriented. A line is either blank, a comment
// starting with '#', or a key=value pair. Whitespace around '=' is part of
// the key or value, not trimmed. When a key appears more than once the last
// occurrence wins.
package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/zhengshuai-xiao/ChunkerS/internal"
)

const (
	delimiter = '='
	comment   = '#'
)

// Parser holds the raw key/value pairs of one configuration file.
type Parser struct {
	dict map[string]string
}

// NewParser reads and parses the configuration file at path.
func NewParser(path string) (*Parser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	p := &Parser{dict: make(map[string]string)}

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if len(line) == 0 || line[0] == comment {
			continue
		}
		idx := strings.IndexByte(line, delimiter)
		if idx <= 0 {
			continue
		}
		// last write wins for duplicate keys
		p.dict[line[:idx]] = line[idx+1:]
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return p, nil
}

// Property returns the raw value of key, or ErrConfigMissing.
func (p *Parser) Property(key string) (string, error) {
	value, ok := p.dict[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", internal.ErrConfigMissing, key)
	}
	return value, nil
}
