package fs

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// ReadURLList loads URLs from a text file, one per line. Blank lines and
// `#` comment lines are skipped.
func ReadURLList(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var urls []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}

	return urls, scanner.Err()
}

// WriteURLList writes URLs to a text file, one per line, creating parent
// directories as needed.
func WriteURLList(path string, urls []string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var b strings.Builder
	for _, u := range urls {
		b.WriteString(u)
		b.WriteByte('\n')
	}

	return os.WriteFile(path, []byte(b.String()), 0644)
}
