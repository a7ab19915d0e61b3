package options

import (
	"dict-binder/diagnostic"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// DefaultMaxDepth bounds the nesting of configuration sections bound in one call.
const DefaultMaxDepth = 64

// Options controls a single bind call. The zero value is ready to use.
type Options struct {
	// ErrorOnUnknownConfiguration makes any per-entry failure fatal for the
	// whole call. By default failing entries are skipped.
	ErrorOnUnknownConfiguration bool

	// Strategy picks the container materialization strategy; zero means StrategyCached.
	Strategy StrategyEnum `validate:"strategy"`

	// MaxDepth bounds section nesting below the root; zero means DefaultMaxDepth.
	MaxDepth int `validate:"gte=0"`

	// DisabledConversions turns off textual representations for leaf values.
	DisabledConversions CategoryEnum `validate:"categories"`

	// Diagnostics, when set, collects the entries skipped under the default policy.
	Diagnostics *diagnostic.Diagnostics `validate:"-"`
}

// Option mutates Options.
type Option func(*Options)

// New returns Options with every opt applied.
func New(opts ...Option) Options {
	var o Options
	for _, opt := range opts {
		opt(&o)
	}

	return o
}

// WithStrict sets ErrorOnUnknownConfiguration.
func WithStrict(strict bool) Option {
	return func(o *Options) { o.ErrorOnUnknownConfiguration = strict }
}

func WithStrategy(s StrategyEnum) Option {
	return func(o *Options) { o.Strategy = s }
}

func WithMaxDepth(depth int) Option {
	return func(o *Options) { o.MaxDepth = depth }
}

// WithoutConversions disables the given conversion categories.
func WithoutConversions(c CategoryEnum) Option {
	return func(o *Options) { o.DisabledConversions |= c }
}

func WithDiagnostics(d *diagnostic.Diagnostics) Option {
	return func(o *Options) { o.Diagnostics = d }
}

// EffectiveStrategy resolves the zero strategy to StrategyCached.
func (o Options) EffectiveStrategy() StrategyEnum {
	if o.Strategy == 0 {
		return StrategyCached
	}

	return o.Strategy
}

// EffectiveMaxDepth resolves the zero depth to DefaultMaxDepth.
func (o Options) EffectiveMaxDepth() int {
	if o.MaxDepth == 0 {
		return DefaultMaxDepth
	}

	return o.MaxDepth
}

// Conversions returns the enabled conversion categories.
func (o Options) Conversions() CategoryEnum {
	return CategoryAll &^ o.DisabledConversions
}

// Validate checks the option values.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return fmt.Errorf("invalid bind options: %w", err)
	}

	return nil
}

// Package-level validator used by Options.Validate.
var validate *validator.Validate

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	if err := validate.RegisterValidation("strategy", validateStrategy); err != nil {
		panic(fmt.Errorf("register validator strategy: %w", err))
	}
	if err := validate.RegisterValidation("categories", validateCategories); err != nil {
		panic(fmt.Errorf("register validator categories: %w", err))
	}
}

func validateStrategy(fl validator.FieldLevel) bool {
	s := fl.Field().Int()
	return s >= 0 && s < int64(StrategyTotal)
}

func validateCategories(fl validator.FieldLevel) bool {
	c := CategoryEnum(fl.Field().Int())
	return c >= 0 && c&^CategoryAll == 0
}
