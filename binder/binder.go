package binder

import (
	"dict-binder/diagnostic"
	"dict-binder/options"
	"dict-binder/section"
	"errors"
	"fmt"
	"reflect"

	"go.uber.org/zap"
)

// Binder binds configuration sections into dictionaries.
// A Binder is safe for concurrent use.
type Binder struct {
	cache  *AdapterCache
	logger *zap.Logger
	values ValueBinder

	materializers [options.StrategyTotal]Materializer
}

// Option configures a Binder.
type Option func(*Binder)

// WithCache shares an adapter cache between binders.
func WithCache(c *AdapterCache) Option {
	return func(b *Binder) { b.cache = c }
}

// WithLogger sets the logger for skipped and fatal entries.
func WithLogger(l *zap.Logger) Option {
	return func(b *Binder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithValueBinder wraps the value binder. The wrapper receives the default
// value binder as next.
func WithValueBinder(wrap func(next ValueBinder) ValueBinder) Option {
	return func(b *Binder) { b.values = wrap(b.values) }
}

// New creates a Binder. Without options it owns a fresh AdapterCache and
// logs nothing.
func New(opts ...Option) *Binder {
	b := &Binder{
		cache:  NewAdapterCache(),
		logger: zap.NewNop(),
	}
	b.values = ValueBinderFunc(b.BindValue)

	for _, opt := range opts {
		opt(b)
	}

	for s := range b.materializers {
		b.materializers[s] = newMaterializer(options.StrategyEnum(s), b.cache)
	}

	return b
}

// Cache returns the adapter cache of b.
func (b *Binder) Cache() *AdapterCache {
	return b.cache
}

// Describe describes t through the adapter cache.
func (b *Binder) Describe(t reflect.Type) (*Descriptor, error) {
	return b.cache.Describe(t)
}

// Bind binds the children of sec into the dictionary described by d.
//
// source is the dictionary currently held by the caller and may be invalid
// or nil. Mutable sources are populated in place; read-only views are copied
// first and never modified. The result is the populated container, or an
// invalid Value with a nil error when the key type of d cannot be bound.
//
// Entries whose key or value fail to bind are skipped, unless
// opts.ErrorOnUnknownConfiguration is set, in which case the first failure
// aborts the call.
func (b *Binder) Bind(source reflect.Value, d *Descriptor, sec section.Section, opts options.Options) (reflect.Value, error) {
	if err := opts.Validate(); err != nil {
		return reflect.Value{}, err
	}

	out, err := b.bind(source, d, sec, opts, rootFrame)

	var entry *EntryError
	if err != nil && opts.ErrorOnUnknownConfiguration && errors.As(err, &entry) {
		return reflect.Value{}, b.abort(d, sec, err, opts)
	}

	return out, err
}

func (b *Binder) bind(source reflect.Value, d *Descriptor, sec section.Section, opts options.Options, f frame) (reflect.Value, error) {
	class := Classify(d.Key)
	if class == KeyUnsupported {
		b.logger.Debug("dictionary key type cannot be bound",
			zap.Stringer("target", d.Type),
			zap.String("path", sec.Path()))

		if opts.Diagnostics != nil {
			opts.Diagnostics.AddInfo(diagnostic.CodeUnsupported,
				fmt.Sprintf("key type %s is not supported", d.Key), d.Type.String(), sec.Path())
		}

		return reflect.Value{}, nil
	}

	if source.IsValid() && source.Kind() == reflect.Interface {
		source = source.Elem()
	}

	if present(source) {
		if !source.Type().AssignableTo(d.Type) {
			return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrSourceMismatch, source.Type(), d.Type)
		}

		// named map types share the container with their unnamed form
		if d.Capability == CapabilityMutableConcrete && source.Type() != d.Type {
			source = source.Convert(d.Type)
		}
	}

	if f.root < 0 {
		f.root = section.Depth(sec.Path())
	}

	if depth := section.Depth(sec.Path()) - f.root; depth > opts.EffectiveMaxDepth() {
		return reflect.Value{}, fmt.Errorf("%w: %q is %d levels below the bound section", ErrMaxDepth, sec.Path(), depth)
	}

	// entries of a copied container are still shared with its source
	shared := present(source) && (f.shared || d.Capability == CapabilityReadOnlyView)
	if f.shared && present(source) && d.Capability == CapabilityMutableConcrete {
		source = b.cache.Adapter(d).Copy(source)
	}

	c := b.materializers[opts.EffectiveStrategy()].Materialize(source, d)

	if err := b.populate(c, d, class, sec, opts, frame{root: f.root, shared: shared}); err != nil {
		return reflect.Value{}, err
	}

	return c.Value(), nil
}

// populate binds every child of sec into c. In strict mode the first failure
// is returned as is; Bind adds the context once.
func (b *Binder) populate(c Container, d *Descriptor, class KeyClass, sec section.Section, opts options.Options, f frame) error {
	for _, child := range sec.Children() {
		err := b.bindEntry(c, d, class, child, opts, f)
		if err == nil {
			continue
		}

		if opts.ErrorOnUnknownConfiguration {
			return err
		}

		b.skip(d, err, opts)
	}

	return nil
}

func (b *Binder) bindEntry(c Container, d *Descriptor, class KeyClass, child section.Section, opts options.Options, f frame) error {
	key, err := convertKey(class, d.Key, child.Key())
	if err != nil {
		return &EntryError{Path: child.Path(), Kind: ErrKeyConversion, Err: err}
	}

	p := newBindingPoint(func() (reflect.Value, bool) { return c.Get(key) }, f)
	if err := b.values.BindValue(p, d.Value, child, opts); err != nil {
		return &EntryError{Path: child.Path(), Kind: ErrValueBinding, Err: err}
	}

	if v, ok := p.Value(); ok {
		c.Set(key, v)
	}

	return nil
}

// abort reports the entry that failed a strict bind of sec.
func (b *Binder) abort(d *Descriptor, sec section.Section, err error, opts options.Options) error {
	entry := innermost(err)

	b.logger.Warn("configuration entry failed",
		zap.Stringer("target", d.Type),
		zap.String("path", entry.Path),
		zap.Error(err))

	if opts.Diagnostics != nil {
		opts.Diagnostics.AddError(codeOf(entry), entry.Err.Error(), d.Type.String(), entry.Path)
	}

	return fmt.Errorf("binding %s into %s with ErrorOnUnknownConfiguration set: %w", pathLabel(sec.Path()), d.Type, err)
}

func (b *Binder) skip(d *Descriptor, err error, opts options.Options) {
	b.logger.Debug("skipping configuration entry",
		zap.Stringer("target", d.Type),
		zap.Error(err))

	if opts.Diagnostics == nil {
		return
	}

	var entry *EntryError
	if !errors.As(err, &entry) {
		opts.Diagnostics.AddWarning(diagnostic.CodeValueBinding, err.Error(), d.Type.String(), "")
		return
	}

	opts.Diagnostics.AddWarning(codeOf(entry), entry.Err.Error(), d.Type.String(), entry.Path)
}

// innermost returns the deepest EntryError of a nested failure.
func innermost(err error) *EntryError {
	var entry *EntryError
	for {
		var next *EntryError
		if !errors.As(err, &next) {
			return entry
		}

		entry, err = next, next.Err
	}
}

func codeOf(entry *EntryError) string {
	if errors.Is(entry.Kind, ErrKeyConversion) {
		return diagnostic.CodeKeyConversion
	}

	return diagnostic.CodeValueBinding
}

func pathLabel(path string) string {
	if path == "" {
		return "the root section"
	}

	return fmt.Sprintf("section %q", path)
}

func (b *Binder) describe(t reflect.Type, opts options.Options) (*Descriptor, error) {
	if opts.EffectiveStrategy() == options.StrategyCached {
		return b.cache.Describe(t)
	}

	return Describe(t)
}
