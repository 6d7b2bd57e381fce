package prompt

import (
	"os"
	"path/filepath"
	"strconv"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/zen-systems/promptgen/pkg/render"
)

// ErrInvalidConfig marks every error caused by a prompt file or the template it names.
var ErrInvalidConfig = errors.New("invalid prompt configuration")

// Required keys of a prompt file.
const (
	KeyTemplate    = "template"
	KeyVariables   = "variables"
	KeyInstruction = "instruction"
	KeyModelParams = "model_params"
	KeyOutputFile  = "output_file"
)

// Config is one generation task, read from a JSON prompt file.
type Config struct {
	Path        string
	Template    string
	Variables   []render.Var
	Instruction string
	ModelParams ModelParams
	OutputFile  string
}

// ModelParams holds the recognized model options. Nil means the option was not set.
type ModelParams struct {
	MaxTokens   *int64
	Temperature *float64
}

// Load reads and validates the prompt file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Mark(errors.Wrapf(err, "read prompt file %s", path), ErrInvalidConfig)
	}
	return Parse(path, data)
}

// Parse validates data as a prompt file. path is only used in messages.
func Parse(path string, data []byte) (*Config, error) {
	if !utf8.Valid(data) {
		return nil, configErrorf(path, "not valid UTF-8")
	}
	if !gjson.ValidBytes(data) {
		return nil, configErrorf(path, "not valid JSON")
	}
	doc := gjson.ParseBytes(data)
	if !doc.IsObject() {
		return nil, configErrorf(path, "top level must be an object")
	}
	root := fieldsOf(doc)

	cfg := &Config{Path: path}
	var err error

	if cfg.Template, err = requireString(path, root, KeyTemplate); err != nil {
		return nil, err
	}
	if !filepath.IsLocal(cfg.Template) {
		// IsLocal also rejects the empty string.
		return nil, configErrorf(path, "%s %q must be a relative path inside the templates directory", KeyTemplate, cfg.Template)
	}

	vars, err := requireObject(path, root, KeyVariables)
	if err != nil {
		return nil, err
	}
	cfg.Variables = parseVariables(vars)

	if cfg.Instruction, err = requireString(path, root, KeyInstruction); err != nil {
		return nil, err
	}

	params, err := requireObject(path, root, KeyModelParams)
	if err != nil {
		return nil, err
	}
	if cfg.ModelParams, err = parseModelParams(path, params); err != nil {
		return nil, err
	}

	if cfg.OutputFile, err = requireString(path, root, KeyOutputFile); err != nil {
		return nil, err
	}
	if !filepath.IsLocal(cfg.OutputFile) {
		return nil, configErrorf(path, "%s %q must be a relative path inside the output directory", KeyOutputFile, cfg.OutputFile)
	}

	return cfg, nil
}

// parseVariables walks the object in document order. A repeated key keeps its
// first position and its last value.
func parseVariables(obj gjson.Result) []render.Var {
	var vars []render.Var
	index := make(map[string]int)
	obj.ForEach(func(key, value gjson.Result) bool {
		v := render.Var{Name: key.String(), Value: valueString(value)}
		if i, ok := index[v.Name]; ok {
			vars[i] = v
			return true
		}
		index[v.Name] = len(vars)
		vars = append(vars, v)
		return true
	})
	return vars
}

// valueString renders JSON strings as their text and everything else as its JSON literal.
func valueString(value gjson.Result) string {
	if value.Type == gjson.String {
		return value.String()
	}
	return value.Raw
}

func parseModelParams(path string, obj gjson.Result) (ModelParams, error) {
	var mp ModelParams
	params := fieldsOf(obj)

	if r, ok := params["max_tokens"]; ok {
		if r.Type != gjson.Number {
			return mp, configErrorf(path, "%s.max_tokens must be a number", KeyModelParams)
		}
		n, err := strconv.ParseInt(r.Raw, 10, 64)
		if err != nil || n <= 0 {
			return mp, configErrorf(path, "%s.max_tokens must be a positive integer, got %s", KeyModelParams, r.Raw)
		}
		mp.MaxTokens = &n
	}

	if r, ok := params["temperature"]; ok {
		if r.Type != gjson.Number {
			return mp, configErrorf(path, "%s.temperature must be a number", KeyModelParams)
		}
		t := r.Float()
		mp.Temperature = &t
	}

	return mp, nil
}

// fields indexes the members of a JSON object. A repeated key takes its last
// value, as in parseVariables.
type fields map[string]gjson.Result

func fieldsOf(obj gjson.Result) fields {
	f := make(fields)
	obj.ForEach(func(key, value gjson.Result) bool {
		f[key.String()] = value
		return true
	})
	return f
}

func requireString(path string, root fields, key string) (string, error) {
	r, ok := root[key]
	if !ok {
		return "", configErrorf(path, "missing required key %q", key)
	}
	if r.Type != gjson.String {
		return "", configErrorf(path, "%q must be a string", key)
	}
	return r.String(), nil
}

func requireObject(path string, root fields, key string) (gjson.Result, error) {
	r, ok := root[key]
	if !ok {
		return r, configErrorf(path, "missing required key %q", key)
	}
	if !r.IsObject() {
		return r, configErrorf(path, "%q must be an object", key)
	}
	return r, nil
}

func configErrorf(path, format string, args ...any) error {
	err := errors.Newf(format, args...)
	return errors.Mark(errors.Wrapf(err, "prompt file %s", path), ErrInvalidConfig)
}
