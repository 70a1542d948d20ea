package contracts

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"accomodate-service/internal/core/domain"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

//go:embed schemas
var schemasFS embed.FS

// Имена схем тел запросов.
const (
	RegisterRequest    = "register/v1"
	LoginRequest       = "login/v1"
	ListingFormRequest = "listing-form/v1"
	FiltersRequest     = "filters/v1"
	SearchRequest      = "search/v1"
	StreetRequest      = "street/v1"
	SelectionRequest   = "selection/v1"
)

var (
	compileOnce     sync.Once
	compiledSchemas map[string]*jsonschema.Schema
	compileErr      error
)

// Load компилирует все встроенные схемы. Повторные вызовы возвращают результат первого.
func Load() error {
	compileOnce.Do(func() {
		compiledSchemas, compileErr = compileAll()
	})
	return compileErr
}

func compileAll() (map[string]*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat = true

	var paths []string
	err := fs.WalkDir(schemasFS, "schemas", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".json") {
			return nil
		}
		file, err := schemasFS.Open(path)
		if err != nil {
			return err
		}
		defer file.Close()
		// ресурсы добавляются до компиляции, чтобы работали $ref между схемами
		if err := compiler.AddResource(path, file); err != nil {
			return fmt.Errorf("failed to add schema resource %s: %w", path, err)
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking schema resources: %w", err)
	}

	result := make(map[string]*jsonschema.Schema, len(paths))
	for _, path := range paths {
		schema, err := compiler.Compile(path)
		if err != nil {
			return nil, fmt.Errorf("could not compile schema %s: %w", path, err)
		}
		result[keyFromPath(path)] = schema
	}
	return result, nil
}

// keyFromPath:
//
//	schemas/requests/listing-form/v1.json -> listing-form/v1
//	schemas/events/listing-event/v1.json  -> ListingEvent/1.0.0
func keyFromPath(path string) string {
	trimmed := strings.TrimSuffix(strings.TrimPrefix(path, "schemas/"), ".json")
	parts := strings.Split(trimmed, "/")
	if len(parts) != 3 {
		return trimmed
	}
	kind, name, version := parts[0], parts[1], parts[2]
	if kind != "events" {
		return name + "/" + version
	}

	caser := cases.Title(language.English)
	var eventName strings.Builder
	for _, p := range strings.Split(name, "-") {
		eventName.WriteString(caser.String(p))
	}
	return fmt.Sprintf("%s/%s.0.0", eventName.String(), strings.TrimPrefix(version, "v"))
}

func lookup(key string) (*jsonschema.Schema, error) {
	if err := Load(); err != nil {
		return nil, err
	}
	schema, ok := compiledSchemas[key]
	if !ok {
		return nil, fmt.Errorf("schema %q not found", key)
	}
	return schema, nil
}

// ValidateRequest проверяет тело запроса по схеме name.
// Нарушение схемы возвращается как *domain.ValidationError с именем поля.
func ValidateRequest(name string, body []byte) error {
	schema, err := lookup(name)
	if err != nil {
		return err
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return domain.NewValidationError("body", "request body is not valid JSON")
	}

	if err := schema.Validate(v); err != nil {
		var vErr *jsonschema.ValidationError
		if errors.As(err, &vErr) {
			leaf := deepestCause(vErr)
			return domain.NewValidationError(fieldOf(leaf), leaf.Message)
		}
		return domain.NewValidationError("body", err.Error())
	}
	return nil
}

// ValidateEvent проверяет тело сообщения брокера по схеме события.
func ValidateEvent(eventType, eventVersion string, body []byte) error {
	schema, err := lookup(eventType + "/" + eventVersion)
	if err != nil {
		return err
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		return fmt.Errorf("message body is not a valid JSON: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("JSON schema validation failed: %w", err)
	}
	return nil
}

func deepestCause(e *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(e.Causes) > 0 {
		e = e.Causes[0]
	}
	return e
}

// fieldOf достает имя поля из InstanceLocation ("/address" -> "address"),
// а для отсутствующих полей - из сообщения `missing properties: 'email'`.
func fieldOf(e *jsonschema.ValidationError) string {
	if loc := strings.Trim(e.InstanceLocation, "/"); loc != "" {
		segments := strings.Split(loc, "/")
		return segments[len(segments)-1]
	}
	if rest, ok := strings.CutPrefix(e.Message, "missing properties:"); ok {
		if name := firstQuoted(rest); name != "" {
			return name
		}
	}
	return "body"
}

// firstQuoted возвращает первое имя в кавычках: jsonschema берет одинарные, но принимаем и двойные.
func firstQuoted(s string) string {
	start := strings.IndexAny(s, `'"`)
	if start < 0 {
		return ""
	}
	quote := s[start]
	rest := s[start+1:]
	end := strings.IndexByte(rest, quote)
	if end < 0 {
		return ""
	}
	return rest[:end]
}
