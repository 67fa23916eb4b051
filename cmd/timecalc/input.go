package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

// readInput reads one expression per line from the named file, or from the
// command's input if the name is empty or "-". Blank lines and lines starting
// with # are skipped.
func readInput(cmd *cobra.Command, inname string) ([]string, error) {
	in, closer, err := infile(cmd, inname)
	if err != nil {
		return nil, err
	}
	defer closer()
	var srcs []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		srcs = append(srcs, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return srcs, nil
}

func infile(cmd *cobra.Command, inname string) (io.Reader, func() error, error) {
	switch inname {
	case "", "-":
		return cmd.InOrStdin(), func() error { return nil }, nil
	}
	f, err := os.Open(inname)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
