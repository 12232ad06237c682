package fsutils

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Decoder decodes
type Decoder interface {
	Decode(o interface{}) error
}

var (
	osGetwd       = os.Getwd
	osUserHomeDir = os.UserHomeDir
)

func ReadJSONFile(filePath string, required bool, o interface{}) (err error) {
	jsonDecoderFactory := func(r io.Reader) Decoder {
		return json.NewDecoder(r)
	}
	return ReadFile(filePath, required, o, jsonDecoderFactory)
}

// ReadYAMLFile decodes a YAML document. An empty file leaves o untouched.
func ReadYAMLFile(filePath string, required bool, o interface{}) (err error) {
	yamlDecoderFactory := func(r io.Reader) Decoder {
		return yamlDecoder{yaml.NewDecoder(r)}
	}
	return ReadFile(filePath, required, o, yamlDecoderFactory)
}

type yamlDecoder struct {
	*yaml.Decoder
}

func (d yamlDecoder) Decode(o interface{}) error {
	if err := d.Decoder.Decode(o); err != nil && err != io.EOF {
		return err
	}
	return nil
}

func ReadFile(filePath string, required bool, o interface{}, newDecoder func(r io.Reader) Decoder) (err error) {
	var file *os.File
	if file, err = os.Open(filePath); err != nil {
		if os.IsNotExist(err) && !required {
			err = nil
		}
		return err
	}
	defer func() {
		if err := file.Close(); err != nil {
			logrus.WithError(err).WithField("path", filePath).Warn("failed to close file")
		}
	}()
	decoder := newDecoder(file)
	if err = decoder.Decode(o); err != nil {
		return err
	}
	return err
}

// ExpandHome expands leading ~ to the user's home directory.
func ExpandHome(p string) string {
	if p == "" {
		return p
	}
	if strings.HasPrefix(p, "~/") || strings.HasPrefix(p, `~\`) || p == "~" {
		home, err := osUserHomeDir()
		if err == nil {
			if p == "~" {
				return home
			}
			return filepath.Join(home, p[2:])
		}
	}
	return p
}

// NormalizePath turns user input into an absolute path.
// It trims whitespace and one layer of matching quotes, expands
// environment variables and a leading ~, then makes the path absolute.
// The path does not have to exist.
func NormalizePath(raw string) string {
	p := unquote(strings.TrimSpace(raw))
	p = ExpandHome(os.ExpandEnv(p))
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	wd, err := osGetwd()
	if err != nil {
		return p
	}
	return filepath.Join(wd, p)
}

func unquote(s string) string {
	if len(s) < 2 {
		return s
	}
	first, last := s[0], s[len(s)-1]
	if first == last && (first == '"' || first == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}

// WriteJSONFile writes o as indented JSON, replacing the file.
func WriteJSONFile(filePath string, o interface{}) error {
	data, err := json.MarshalIndent(o, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filePath, append(data, '\n'), 0o644)
}
