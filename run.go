package main

import (
	"fmt"
	"os"

	"github.com/takoeight0821/ewkt/driver"
)

// RunFile parses a file with one EWKT literal per line and prints each
// parsed tree.
func RunFile(path string) error {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	results, err := driver.ParseLines(string(bytes))
	if err != nil {
		return err
	}

	for _, result := range results {
		fmt.Println(result)
	}

	return nil
}
