// Package util opens the log and reads the config file for the commands.
package util

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Validator is a config able to check itself after loading.
type Validator interface {
	Validate() error
}

// OpenLog opens path for appending, discarding output when it cannot.
// The terminal belongs to the dashboard, so logs never go to stdout.
func OpenLog(path string, mode os.FileMode) (file io.Writer) {

	err := os.MkdirAll(filepath.Dir(path), 0o755)
	if err == nil {
		file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: %s\n", err.Error())
		file = io.Discard
	}

	return
}

func CloseLog(file io.Writer) {

	actually, ok := file.(*os.File)
	if ok {
		actually.Close()
	}
}

// LoadConfig reads yaml from path into cfg and validates it.
func LoadConfig(cfg Validator, path string) (err error) {

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", path)
		return
	}

	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to unmarshal %s", path)
		return
	}

	err = cfg.Validate()
	err = errors.Wrapf(err, "failed to validate %s", path)
	return
}

// SampleConfig writes data to path unless a config is already there.
func SampleConfig(data []byte, path string, mode os.FileMode) (created bool, err error) {

	_, err = os.Stat(path)
	if err == nil {
		return // already have a cfg
	}

	err = os.MkdirAll(filepath.Dir(path), 0o755)
	if err != nil {
		err = errors.Wrapf(err, "failed to create dir for %s", path)
		return
	}

	err = os.WriteFile(path, data, mode)
	if err != nil {
		err = errors.Wrapf(err, "failed to write to %s", path)
		return
	}

	created = true
	return
}

// ConfigPath returns the default config file location.
func ConfigPath(app string) string {

	dir, err := os.UserConfigDir()
	if err != nil {
		return app + ".yaml"
	}
	return filepath.Join(dir, app, "config.yaml")
}
