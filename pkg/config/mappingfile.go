package config

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"

	"github.com/arthur-debert/dotfiles/pkg/errors"
	"github.com/arthur-debert/dotfiles/pkg/filesystem"
	"github.com/arthur-debert/dotfiles/pkg/logging"
	"github.com/arthur-debert/dotfiles/pkg/mappings"
	toml "github.com/pelletier/go-toml/v2"
)

// CurrentVersion is the config_version written to new mappings files.
const CurrentVersion = 1

// File is the on-disk layout of the mappings file.
type File struct {
	ConfigVersion int      `toml:"config_version"`
	Mappings      []string `toml:"mappings"`
}

// MappingFile is a loaded mappings file together with its location.
type MappingFile struct {
	Path     string
	Version  int
	Mappings *mappings.Set
}

// Exists reports whether a mappings file is present at path.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if stderrors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, errors.Wrapf(err, errors.ErrConfigLoad, "cannot access config file %s", path).
		WithDetail("path", path)
}

// Load reads and validates the mappings file at path. Unknown keys are an
// error, as are absolute or nested mappings.
func Load(path string) (*MappingFile, error) {
	logger := logging.GetLogger("config")

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "could not read config file %s", path).
			WithDetail("path", path)
	}

	var raw File
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&raw); err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "could not parse config file %s", path).
			WithDetail("path", path)
	}

	set, err := mappings.New(raw.Mappings)
	if err != nil {
		return nil, err
	}

	logger.Debug().
		Str("path", path).
		Int("version", raw.ConfigVersion).
		Int("mappings", set.Len()).
		Msg("Loaded mappings file")

	return &MappingFile{Path: path, Version: raw.ConfigVersion, Mappings: set}, nil
}

// NewEmpty returns an empty mappings file for path. Nothing is written.
func NewEmpty(path string) *MappingFile {
	set, _ := mappings.New(nil)
	return &MappingFile{Path: path, Version: CurrentVersion, Mappings: set}
}

// Encode renders the file as TOML.
func (m *MappingFile) Encode() ([]byte, error) {
	raw := File{ConfigVersion: m.Version, Mappings: m.Mappings.Strings()}
	if raw.Mappings == nil {
		raw.Mappings = []string{}
	}

	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.SetIndentTables(true)
	if err := enc.Encode(raw); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigSerialize, "could not serialize config")
	}
	return buf.Bytes(), nil
}

// Save overwrites the whole file at m.Path, creating parent directories.
func (m *MappingFile) Save() error {
	logger := logging.GetLogger("config")

	data, err := m.Encode()
	if err != nil {
		return err
	}
	if err := filesystem.AtomicWrite(m.Path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigWrite, "could not write config file %s", m.Path).
			WithDetail("path", m.Path)
	}

	logger.Info().Str("path", m.Path).Int("mappings", m.Mappings.Len()).Msg("Saved mappings file")
	return nil
}
