package filestore

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/idilsaglam/todolist/internal/model"
)

//go:embed task-list.schema.json
var taskListSchemaJSON string

var taskListSchema = jsonschema.MustCompileString("task-list.schema.json", taskListSchemaJSON)

// ValidationError points at the part of the file that broke a task invariant.
type ValidationError struct {
	Path string // e.g. "[2].due_date"
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// checkSchema runs decoded tasks back through JSON so every format is
// checked against the same schema.
func checkSchema(tasks []model.Task) error {
	b, err := json.Marshal(tasks)
	if err != nil {
		return fmt.Errorf("marshal for validation: %w", err)
	}
	var doc interface{}
	if err := json.Unmarshal(b, &doc); err != nil {
		return fmt.Errorf("unmarshal for validation: %w", err)
	}
	err = taskListSchema.Validate(doc)
	if err == nil {
		return nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	var errs []error
	collectSchemaErrors(&errs, ve)
	return errors.Join(errs...)
}

func collectSchemaErrors(errs *[]error, err *jsonschema.ValidationError) {
	if len(err.Causes) == 0 {
		*errs = append(*errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  errors.New(err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(errs, cause)
	}
}

func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}
	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}

var (
	errBlankTitle  = errors.New("title is blank")
	errInvalidUTF8 = errors.New("not valid UTF-8")
)

// checkText covers what the schema's regexps cannot: Unicode whitespace
// in titles and byte strings that are not UTF-8.
func checkText(tasks []model.Task) error {
	var errs []error
	for i, t := range tasks {
		switch {
		case !utf8.ValidString(t.Title):
			errs = append(errs, &ValidationError{Path: fmt.Sprintf("[%d].title", i), Err: errInvalidUTF8})
		case strings.TrimSpace(t.Title) == "":
			errs = append(errs, &ValidationError{Path: fmt.Sprintf("[%d].title", i), Err: errBlankTitle})
		}
		if !utf8.ValidString(t.Description) {
			errs = append(errs, &ValidationError{Path: fmt.Sprintf("[%d].description", i), Err: errInvalidUTF8})
		}
	}
	return errors.Join(errs...)
}
