// Package nodes reads allocated node lists for distributed-worker bootstrap.
package nodes

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// NodeFileEnv is the environment variable PBS sets to the node file path.
const NodeFileEnv = "PBS_NODEFILE"

var (
	// ErrNodeFileNotFound indicates the node file was not found
	ErrNodeFileNotFound = errors.New("node file not found")

	// ErrNotInJob indicates PBS_NODEFILE is not set
	ErrNotInJob = errors.New("PBS_NODEFILE is not set (not inside a PBS job)")
)

// ReadNodeFile reads hostnames from a PBS node file, preserving order and
// multiplicity (PBS lists one line per allocated slot). Blank lines and
// #-comments are skipped.
func ReadNodeFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNodeFileNotFound, path)
		}
		return nil, err
	}
	defer file.Close()

	var hosts []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		hosts = append(hosts, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading node file: %w", err)
	}
	return hosts, nil
}

// Hosts reads the node list of the current job from PBS_NODEFILE.
func Hosts() ([]string, error) {
	path, ok := os.LookupEnv(NodeFileEnv)
	if !ok || path == "" {
		return nil, ErrNotInJob
	}
	return ReadNodeFile(path)
}

// UniqueHosts deduplicates a host list, preserving first-seen order.
func UniqueHosts(hosts []string) []string {
	seen := make(map[string]struct{}, len(hosts))
	unique := make([]string, 0, len(hosts))
	for _, h := range hosts {
		if _, ok := seen[h]; ok {
			continue
		}
		seen[h] = struct{}{}
		unique = append(unique, h)
	}
	return unique
}
