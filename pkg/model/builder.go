package model

import (
	"fmt"

	"github.com/goliatone/go-docschema/internal/model"
	"github.com/goliatone/go-docschema/pkg/schema"
)

// Builder converts document types into form models.
type Builder interface {
	Build(doc schema.FieldDescriptor) (FormModel, error)
}

// BuilderOption configures the builder behaviour.
type BuilderOption func(*builderOptions)

type builderOptions struct {
	labeler    func(string) string
	decorators []Decorator
}

// WithLabeler overrides the default label generation function.
func WithLabeler(labeler func(string) string) BuilderOption {
	return func(opts *builderOptions) {
		opts.labeler = labeler
	}
}

// WithDecorators runs the decorators, in order, on every built model.
func WithDecorators(decorators ...Decorator) BuilderOption {
	return func(opts *builderOptions) {
		opts.decorators = append(opts.decorators, decorators...)
	}
}

// NewBuilder returns a Builder backed by the internal implementation.
func NewBuilder(options ...BuilderOption) Builder {
	cfg := builderOptions{}
	for _, opt := range options {
		opt(&cfg)
	}

	internalOpts := model.Options{}
	if cfg.labeler != nil {
		internalOpts.Labeler = cfg.labeler
	}

	base := model.New(internalOpts)
	if len(cfg.decorators) == 0 {
		return base
	}
	return decoratedBuilder{base: base, decorators: cfg.decorators}
}

type decoratedBuilder struct {
	base       Builder
	decorators []Decorator
}

func (b decoratedBuilder) Build(doc schema.FieldDescriptor) (FormModel, error) {
	form, err := b.base.Build(doc)
	if err != nil {
		return FormModel{}, err
	}
	for _, decorator := range b.decorators {
		if decorator == nil {
			continue
		}
		if err := decorator.Decorate(&form); err != nil {
			return FormModel{}, fmt.Errorf("model builder: decorate %s: %w", doc.Name, err)
		}
	}
	return form, nil
}
