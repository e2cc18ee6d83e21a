package config

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/hesapmakinesi/hesap/pkg/utils/ptr"
)

var (
	defaultFileConfig = &RawFileConfig{
		AllowNonRootAccess: ptr.To(false),
		ColorScheme:        ptr.To(ColorSchemeDark),
		Theme:              ptr.To(ThemeClassic),
		Metrics:            ptr.To(true),
	}
)

var _ Config = &File{}

// File is a Config backed by a JSON or YAML file. The format follows the file
// extension: .yaml and .yml are YAML, anything else is JSON.
type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	err := f.Load()
	if err != nil {
		return nil, err
	}

	return f, nil
}

func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = &RawFileConfig{}
	}

	f := &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}

	return f
}

type RawFileConfig struct {
	AllowNonRootAccess *bool        `json:"allowNonRootAccess,omitempty" yaml:"allowNonRootAccess,omitempty"`
	ColorScheme        *ColorScheme `json:"colorScheme,omitempty" yaml:"colorScheme,omitempty"`
	Theme              *Theme       `json:"theme,omitempty" yaml:"theme,omitempty"`
	Metrics            *bool        `json:"metrics,omitempty" yaml:"metrics,omitempty"`
}

func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}

	rawConfig := &RawFileConfig{
		AllowNonRootAccess: ptr.To(c.AllowNonRootAccess()),
		ColorScheme:        ptr.To(c.ColorScheme()),
		Theme:              ptr.To(c.Theme()),
		Metrics:            ptr.To(c.MetricsEnabled()),
	}

	return rawConfig, nil
}

func (f *File) AllowNonRootAccess() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.AllowNonRootAccess, *defaultFileConfig.AllowNonRootAccess)
}

func (f *File) ColorScheme() ColorScheme {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	switch s := ptr.Deref(f.c.ColorScheme, ""); s {
	case ColorSchemeLight, ColorSchemeDark:
		return s
	default:
		return *defaultFileConfig.ColorScheme
	}
}

func (f *File) Theme() Theme {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	switch t := ptr.Deref(f.c.Theme, ""); t {
	case ThemeClassic, ThemeGlass:
		return t
	default:
		return *defaultFileConfig.Theme
	}
}

func (f *File) MetricsEnabled() bool {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.RLock()
	defer f.mu.RUnlock()

	return ptr.Deref(f.c.Metrics, *defaultFileConfig.Metrics)
}

func (f *File) SetAllowNonRootAccess(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.AllowNonRootAccess = &b
}

func (f *File) SetColorScheme(s ColorScheme) {
	if f.c == nil {
		panic("config is nil")
	}
	if s != ColorSchemeLight && s != ColorSchemeDark {
		panic("color scheme must be light or dark")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ColorScheme = &s
}

func (f *File) SetTheme(t Theme) {
	if f.c == nil {
		panic("config is nil")
	}
	if t != ThemeClassic && t != ThemeGlass {
		panic("theme must be classic or glass")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Theme = &t
}

func (f *File) SetMetricsEnabled(b bool) {
	if f.c == nil {
		panic("config is nil")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Metrics = &b
}

func (f *File) isYAML() bool {
	switch strings.ToLower(filepath.Ext(f.filepath)) {
	case ".yaml", ".yml":
		return true
	default:
		return false
	}
}

func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	fp, err := os.Open(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			// If the file does not exist, return the empty config.
			// Do not make f.c a nil.
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to open file %s", f.filepath)
	}
	defer func(fp *os.File) {
		err := fp.Close()
		if err != nil {
			logrus.Warnf("failed to close file %s", f.filepath)
		}
	}(fp)

	b, err := io.ReadAll(fp)
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to read file %s", f.filepath)
	}

	if len(bytes.TrimSpace(b)) == 0 {
		// If the file is empty, return the empty config.
		// Do not make f.c a nil.
		f.c = &RawFileConfig{}
		return nil
	}

	conf := RawFileConfig{}
	if f.isYAML() {
		err = yaml.Unmarshal(b, &conf)
	} else {
		err = json.Unmarshal(b, &conf)
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to unmarshal config from file %s", f.filepath)
	}
	f.c = &conf

	return nil
}

func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	if f.c == nil {
		return pkgerrors.New("config is nil")
	}

	var (
		b   []byte
		err error
	)
	if f.isYAML() {
		b, err = yaml.Marshal(f.c)
	} else {
		b, err = json.MarshalIndent(f.c, "", "  ")
		b = append(b, '\n')
	}
	if err != nil {
		return pkgerrors.Wrapf(err, "failed to encode config for file %s", f.filepath)
	}

	if err := os.MkdirAll(filepath.Dir(f.filepath), 0755); err != nil {
		return pkgerrors.Wrapf(err, "failed to create config dir for %s", f.filepath)
	}

	if err := os.WriteFile(f.filepath, b, 0644); err != nil {
		return pkgerrors.Wrapf(err, "failed to write file %s", f.filepath)
	}

	return nil
}

func (f *File) LogrusFields() logrus.Fields {
	if f.c == nil {
		panic("config is nil")
	}

	return logrus.Fields{
		"allowNonRootAccess": f.AllowNonRootAccess(),
		"colorScheme":        f.ColorScheme(),
		"theme":              f.Theme(),
		"metrics":            f.MetricsEnabled(),
	}
}
