package pipeline

import (
	"io"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/askiada/go-arraytransformer/pkg/collection"
	"github.com/askiada/go-arraytransformer/pkg/pipeline/model"
)

// Definition describes a pipeline in YAML:
//
//	steps:
//	  - op: values
//	  - op: diff
//	    args: [["a", "c"], ["e"]]
//	  - op: mergeLeft
//	    args: [["m", "n"]]
//
// Mappings inside args become collections keeping their key order. Operations taking a function,
// map and filter with a predicate, cannot be described.
type Definition struct {
	Steps []StepDefinition `yaml:"steps" validate:"dive"`
}

// StepDefinition is a single step of a [Definition].
type StepDefinition struct {
	Op   string      `yaml:"op" validate:"required"`
	Args []yaml.Node `yaml:"args"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func definitionValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name, _, _ := strings.Cut(fld.Tag.Get("yaml"), ",")
			if name == "" || name == "-" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// Validate checks the shape of the definition. Step arguments are checked when the steps are
// registered.
func (d *Definition) Validate() error {
	err := definitionValidator().Struct(d)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(ErrInvalidDefinition, err.Error())
	}
	messages := make([]string, 0, len(fieldErrs))
	for _, fieldErr := range fieldErrs {
		field := strings.TrimPrefix(fieldErr.Namespace(), "Definition.")
		switch fieldErr.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return errors.Wrap(ErrInvalidDefinition, strings.Join(messages, "; "))
}

// LoadDefinition reads a YAML [Definition] from r and registers its steps on a new pipeline.
func LoadDefinition(r io.Reader, opts ...model.PipelineOption) (*Pipeline, error) {
	var def Definition
	err := yaml.NewDecoder(r).Decode(&def)
	if err != nil {
		return nil, errors.Wrap(err, "unable to decode definition")
	}
	err = def.Validate()
	if err != nil {
		return nil, err
	}
	pipe, err := New(opts...)
	if err != nil {
		return nil, err
	}
	for i, step := range def.Steps {
		args := make([]any, len(step.Args))
		for j := range step.Args {
			args[j], err = nodeValue(&step.Args[j])
			if err != nil {
				return nil, errors.Wrapf(err, "definition step %d (%s): argument %d", i+1, step.Op, j+1)
			}
		}
		_, err = pipe.Register(Operation(step.Op), args...)
		if err != nil {
			return nil, errors.Wrapf(err, "definition step %d", i+1)
		}
	}
	return pipe, nil
}

// nodeValue converts a YAML node into a plain value, sequences and mappings becoming collections.
func nodeValue(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.AliasNode:
		return nodeValue(node.Alias)
	case yaml.SequenceNode:
		c := collection.New()
		for _, item := range node.Content {
			v, err := nodeValue(item)
			if err != nil {
				return nil, err
			}
			c.Append(v)
		}
		return c, nil
	case yaml.MappingNode:
		c := collection.New()
		for i := 0; i+1 < len(node.Content); i += 2 {
			rawKey, err := nodeValue(node.Content[i])
			if err != nil {
				return nil, err
			}
			key, err := collection.KeyOf(rawKey)
			if err != nil {
				return nil, errors.Wrapf(err, "line %d", node.Content[i].Line)
			}
			v, err := nodeValue(node.Content[i+1])
			if err != nil {
				return nil, err
			}
			c.Set(key, v)
		}
		return c, nil
	}
	var v any
	err := node.Decode(&v)
	if err != nil {
		return nil, errors.Wrapf(err, "line %d", node.Line)
	}
	return v, nil
}
