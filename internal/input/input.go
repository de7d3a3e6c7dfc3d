package input

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mitchellh/go-homedir"
)

// Stdin is the path name that selects standard input.
const Stdin = "-"

// Read returns the whole content of the named file, or of stdin when path
// is "-". A leading ~ is expanded to the user's home directory.
func Read(path string, stdin io.Reader) (string, error) {
	if path == Stdin {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		return string(data), nil
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %s: %w", path, err)
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Pair reads the endpoint and attachment inputs. At most one of them may be
// stdin.
func Pair(endpointPath, attachmentPath string, stdin io.Reader) (endpoint, attachments string, err error) {
	if endpointPath == Stdin && attachmentPath == Stdin {
		return "", "", errors.New("only one input can be read from stdin")
	}

	endpoint, err = Read(endpointPath, stdin)
	if err != nil {
		return "", "", err
	}
	attachments, err = Read(attachmentPath, stdin)
	if err != nil {
		return "", "", err
	}
	return endpoint, attachments, nil
}

// Write stores content in the named file, or writes it to stdout when path
// is empty or "-".
func Write(path, content string, stdout io.Writer) error {
	if path == "" || path == Stdin {
		_, err := io.WriteString(stdout, content)
		return err
	}

	expanded, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("expand %s: %w", path, err)
	}
	if err := os.WriteFile(expanded, []byte(content), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
