// Package fileutils provides the file operations of the CLI: opening inputs
// and outputs and splitting message batches.
package fileutils

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// maxMessageSize bounds a single line of input.
const maxMessageSize = 1 << 20

// Mode selects how a batch is split into messages.
type Mode int

const (
	// Lines treats every non-blank line as one message.
	Lines Mode = iota
	// Paragraphs treats runs of non-blank lines separated by blank lines as
	// one message, joined with single spaces.
	Paragraphs
)

// Message is one entry of a batch. Line is the 1-based line it starts on.
type Message struct {
	Line int
	Text string
}

// FileExists checks if a file exists and is not a directory
func FileExists(filePath string) bool {
	info, err := os.Stat(filePath)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// DirectoryExists checks if a directory exists
func DirectoryExists(dirPath string) bool {
	info, err := os.Stat(dirPath)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// EnsureDirectoryExists creates a directory if it doesn't exist
func EnsureDirectoryExists(dirPath string) error {
	if !DirectoryExists(dirPath) {
		if err := os.MkdirAll(dirPath, 0750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	return nil
}

// OpenInput opens filePath for reading; "" and "-" select stdin, which is
// returned with a no-op Close.
func OpenInput(filePath string) (io.ReadCloser, error) {
	if filePath == "" || filePath == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	if !FileExists(filePath) {
		return nil, fmt.Errorf("file does not exist: %s", filePath)
	}
	file, err := os.Open(filePath) // #nosec G304 -- path is a user-provided CLI argument
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	return file, nil
}

// CreateOutput creates or truncates filePath for writing, creating parent
// directories; "" and "-" select stdout, returned with a no-op Close.
func CreateOutput(filePath string) (io.WriteCloser, error) {
	if filePath == "" || filePath == "-" {
		return nopWriteCloser{os.Stdout}, nil
	}
	if err := EnsureDirectoryExists(filepath.Dir(filePath)); err != nil {
		return nil, err
	}
	file, err := os.Create(filePath) // #nosec G304 -- path is a user-provided CLI argument
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	return file, nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

// ReadMessages splits r into messages according to mode. Lines are trimmed
// and blank messages are dropped.
func ReadMessages(r io.Reader, mode Mode) ([]Message, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxMessageSize)

	var (
		messages []Message
		current  []string
		start    int
		line     int
	)
	flush := func() {
		if len(current) > 0 {
			messages = append(messages, Message{Line: start, Text: strings.Join(current, " ")})
			current = nil
		}
	}

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			flush()
			continue
		}
		if mode == Lines {
			messages = append(messages, Message{Line: line, Text: text})
			continue
		}
		if len(current) == 0 {
			start = line
		}
		current = append(current, text)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read messages: %w", err)
	}
	flush()
	return messages, nil
}

// ReadMessagesFile opens filePath (or stdin) and reads its messages.
func ReadMessagesFile(filePath string, mode Mode) ([]Message, error) {
	in, err := OpenInput(filePath)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()
	return ReadMessages(in, mode)
}
