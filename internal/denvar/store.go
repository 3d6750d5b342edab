package denvar

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

var errNested = errors.New("nested values are not supported")

// Store reads source documents and selects the layers of one environment.
// A Store keeps no state between reads.
type Store struct {
	opts Options
}

// NewStore returns a Store using opts, with defaults for unset fields.
func NewStore(opts Options) (*Store, error) {
	opts, err := opts.withDefaults()
	if err != nil {
		return nil, err
	}
	return &Store{opts: opts}, nil
}

// Read parses the file at path and returns its common layer and the layer
// of env. An empty env selects the default environment. On error no layers
// are returned.
func (s *Store) Read(path, env string) (Layers, error) {
	if env == "" {
		env = s.opts.DefaultEnvironment
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Layers{}, fmt.Errorf("%w: %w", ErrSourceNotFound, err)
		}
		return Layers{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	doc, err := parseDocument(path, data)
	if err != nil {
		return Layers{}, &ParseError{Path: path, Err: err}
	}

	if !doc.has(env) {
		return Layers{}, &MissingEnvironmentError{Environment: env, Path: path}
	}

	layers := Layers{Path: path, Environment: env}
	if doc.has(s.opts.CommonKey) {
		layers.Common, err = doc.layer(s.opts.CommonKey)
		if err != nil {
			return Layers{}, &ParseError{Path: path, Err: err}
		}
	}
	layers.Env, err = doc.layer(env)
	if err != nil {
		return Layers{}, &ParseError{Path: path, Err: err}
	}

	return layers, nil
}

// Discover returns the source file in dir: the JSON file if present,
// otherwise the legacy file.
func (s *Store) Discover(dir string) (string, error) {
	for _, name := range []string{s.opts.Files[FileTypeJSON], s.opts.LegacyFile} {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", fmt.Errorf("%w in %s", ErrSourceNotFound, dir)
}

// document is a parsed source whose layers are decoded on demand.
type document interface {
	has(key string) bool
	layer(key string) (Layer, error)
}

// parseDocument picks the format from the file extension. Anything that is
// not YAML is read as JSON, including the legacy ".env" name.
func parseDocument(path string, data []byte) (document, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return parseYAML(data)
	default:
		return parseJSON(data)
	}
}

type jsonDocument map[string]json.RawMessage

func parseJSON(data []byte) (document, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(data, &top); err != nil {
		return nil, err
	}
	return jsonDocument(top), nil
}

func (d jsonDocument) has(key string) bool {
	_, ok := d[key]
	return ok
}

// layer decodes the object at key token by token to keep variable order.
func (d jsonDocument) layer(key string) (Layer, error) {
	dec := json.NewDecoder(bytes.NewReader(d[key]))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return nil, nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%q is not an object", key)
	}

	var l Layer
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		name, _ := tok.(string)
		if err := checkName(name); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}

		var v any
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		value, err := jsonScalar(v)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", key, name, err)
		}
		l = l.set(name, value)
	}
	return l, nil
}

func jsonScalar(v any) (string, error) {
	switch v := v.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case nil:
		return "", nil
	default:
		return "", errNested
	}
}

type yamlDocument map[string]*yaml.Node

func parseYAML(data []byte) (document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}

	doc := yamlDocument{}
	if len(root.Content) == 0 {
		return doc, nil
	}
	top := resolveAlias(root.Content[0])
	if top.Kind != yaml.MappingNode {
		return nil, errors.New("top level is not a mapping")
	}
	for i := 0; i+1 < len(top.Content); i += 2 {
		doc[top.Content[i].Value] = top.Content[i+1]
	}
	return doc, nil
}

func (d yamlDocument) has(key string) bool {
	_, ok := d[key]
	return ok
}

func (d yamlDocument) layer(key string) (Layer, error) {
	node := resolveAlias(d[key])
	if isYAMLNull(node) {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%q is not a mapping", key)
	}

	var l Layer
	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value
		if err := checkName(name); err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		value := resolveAlias(node.Content[i+1])
		if value.Kind != yaml.ScalarNode {
			return nil, fmt.Errorf("%s.%s: %w", key, name, errNested)
		}
		if isYAMLNull(value) {
			l = l.set(name, "")
			continue
		}
		l = l.set(name, value.Value)
	}
	return l, nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}

func isYAMLNull(n *yaml.Node) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == "!!null"
}
