package filestore

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	yaml "gopkg.in/yaml.v3"

	"github.com/idilsaglam/todolist/internal/model"
)

// Format is an on-disk encoding of the task list.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor maps a file extension to a format. Unknown extensions use JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

type codec interface {
	encode([]model.Task) ([]byte, error)
	decode([]byte) ([]model.Task, error)
}

func codecFor(f Format) codec {
	switch f {
	case FormatYAML:
		return yamlCodec{}
	case FormatTOML:
		return tomlCodec{}
	default:
		return jsonCodec{}
	}
}

type jsonCodec struct{}

func (jsonCodec) encode(tasks []model.Task) ([]byte, error) {
	b, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func (jsonCodec) decode(b []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := json.Unmarshal(b, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

type yamlCodec struct{}

func (yamlCodec) encode(tasks []model.Task) ([]byte, error) {
	return yaml.Marshal(tasks)
}

func (yamlCodec) decode(b []byte) ([]model.Task, error) {
	var tasks []model.Task
	if err := yaml.Unmarshal(b, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// TOML has no top-level arrays, so the list lives under [[tasks]].
type tomlDocument struct {
	Tasks []model.Task `toml:"tasks"`
}

type tomlCodec struct{}

func (tomlCodec) encode(tasks []model.Task) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(tomlDocument{Tasks: tasks}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (tomlCodec) decode(b []byte) ([]model.Task, error) {
	var doc tomlDocument
	if err := toml.Unmarshal(b, &doc); err != nil {
		return nil, err
	}
	return doc.Tasks, nil
}
