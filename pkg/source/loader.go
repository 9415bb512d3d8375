package source

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ktoml "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/afero"

	"github.com/mattcl/confpiler/pkg/logger"
	"github.com/mattcl/confpiler/pkg/value"
)

var (
	// ErrUnsupportedFormat is returned for a file whose extension has no
	// registered parser.
	ErrUnsupportedFormat = errors.New("unsupported config format")

	// ErrSourceNotFound is returned when neither the identifier nor any
	// identifier.<ext> names a regular file.
	ErrSourceNotFound = errors.New("config source not found")
)

// Extensions lists the supported extensions in resolution order.
var Extensions = []string{"toml", "json", "yaml", "yml", "ini"}

// Loader reads configuration sources from a filesystem.
type Loader struct {
	fs      afero.Fs
	parsers map[string]koanf.Parser
	order   []string
	log     logger.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger.
func WithLogger(log logger.Logger) Option {
	return func(l *Loader) {
		if log != nil {
			l.log = log
		}
	}
}

// WithParser registers (or replaces) the parser for ext. A new extension is
// tried last when resolving identifiers without an extension.
func WithParser(ext string, parser koanf.Parser) Option {
	return func(l *Loader) {
		ext = normalizeExt(ext)
		if _, exists := l.parsers[ext]; !exists {
			l.order = append(l.order, ext)
		}
		l.parsers[ext] = parser
	}
}

// NewLoader creates a loader over fs with parsers for every supported
// format.
func NewLoader(fs afero.Fs, opts ...Option) *Loader {
	yamlParser := YAMLParser()

	l := &Loader{
		fs: fs,
		parsers: map[string]koanf.Parser{
			"toml": ktoml.Parser(),
			"json": JSONParser(),
			"yaml": yamlParser,
			"yml":  yamlParser,
			"ini":  IniParser(),
		},
		order: append([]string(nil), Extensions...),
		log:   logger.Nop(),
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// Load resolves source to a file, parses it and converts the document to a
// value tree.
func (l *Loader) Load(source string) (value.Table, error) {
	path, ext, err := l.Resolve(source)
	if err != nil {
		return nil, err
	}

	l.log.WithFields(logger.Fields{
		"source": source,
		"path":   path,
		"format": ext,
	}).Debug("Reading config file")

	data, err := afero.ReadFile(l.fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(bytes.TrimSpace(data)) == 0 {
		return value.Table{}, nil
	}

	doc, err := l.parsers[ext].Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	tree, err := value.TableFromNative(doc)
	if err != nil {
		return nil, fmt.Errorf("convert %s: %w", path, err)
	}

	return tree, nil
}

// Resolve returns the file backing source and its format.
func (l *Loader) Resolve(source string) (string, string, error) {
	if l.isFile(source) {
		ext := normalizeExt(filepath.Ext(source))
		if _, ok := l.parsers[ext]; !ok {
			return "", "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, source)
		}
		return source, ext, nil
	}

	for _, ext := range l.order {
		candidate := source + "." + ext
		if l.isFile(candidate) {
			l.log.WithFields(logger.Fields{
				"source": source,
				"path":   candidate,
			}).Trace("Resolved source by extension")
			return candidate, ext, nil
		}
	}

	return "", "", fmt.Errorf("%w: %s", ErrSourceNotFound, source)
}

func (l *Loader) isFile(path string) bool {
	info, err := l.fs.Stat(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			l.log.WithFields(logger.Fields{
				"path":  path,
				"error": err,
			}).Debug("Failed to stat path")
		}
		return false
	}
	return info.Mode().IsRegular()
}

func normalizeExt(ext string) string {
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
