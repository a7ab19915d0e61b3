package binder

import (
	"dict-binder/diagnostic"
	"dict-binder/dict"
	"dict-binder/options"
	"dict-binder/section"
	"reflect"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestBind_ReadOnlyOverlayKeepsComparer(t *testing.T) {
	for _, s := range options.Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			src := ignoreCase(dict.Pair[string, int]{Key: "a", Value: 1})
			sec := section.FromPairs(map[string]string{"B": "2"})

			got, ok, err := Into[dict.ReadOnly[string, int]](New(), src, sec, options.New(options.WithStrategy(s)))
			require.NoError(t, err)
			require.True(t, ok)

			out := got.Clone()
			assert.Equal(t, []dict.Pair[string, int]{{Key: "a", Value: 1}, {Key: "B", Value: 2}}, out.Pairs())
			assert.Equal(t, dict.IgnoreCase[string](), got.Comparer())

			v, found := got.Get("b")
			assert.True(t, found)
			assert.Equal(t, 2, v)

			// the source view is never written to
			assert.Equal(t, 1, src.Len())
			assert.NotSame(t, src, got)
		})
	}
}

func TestBind_NilReadOnlyEnumKeys(t *testing.T) {
	for _, s := range options.Strategies() {
		t.Run(s.String(), func(t *testing.T) {
			sec := section.FromPairs(map[string]string{"Red": "x", "blue": "y"})

			got, ok, err := Into[dict.ReadOnly[Color, string]](New(), nil, sec, options.New(options.WithStrategy(s)))
			require.NoError(t, err)
			require.True(t, ok)

			assert.Equal(t, 2, got.Len())

			v, _ := got.Get(Red)
			assert.Equal(t, "x", v)
			v, _ = got.Get(Blue)
			assert.Equal(t, "y", v)
		})
	}
}

func TestBind_InvalidIntegerKey(t *testing.T) {
	sec := section.FromPairs(map[string]string{"1": "10", "NotANumber": "5"})

	t.Run("skipped by default", func(t *testing.T) {
		var diags diagnostic.Diagnostics

		got, ok, err := BindMap[int32, int](New(), nil, sec, options.New(options.WithDiagnostics(&diags)))
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, map[int32]int{1: 10}, got)

		require.Equal(t, 1, diags.Len())
		entry := diags.All()[0]
		assert.Equal(t, diagnostic.CodeKeyConversion, entry.Code)
		assert.Equal(t, "NotANumber", entry.Path)
		assert.Equal(t, diagnostic.DiagnosticWarning, entry.Severity)
	})

	t.Run("fatal when strict", func(t *testing.T) {
		got, ok, err := BindMap[int32, int](New(), nil, sec, options.New(options.WithStrict(true)))
		require.ErrorIs(t, err, ErrKeyConversion)
		assert.Contains(t, err.Error(), "ErrorOnUnknownConfiguration")
		assert.False(t, ok)
		assert.Nil(t, got)

		var entry *EntryError
		require.ErrorAs(t, err, &entry)
		assert.Equal(t, "NotANumber", entry.Path)
	})
}

func TestBind_InvalidValue(t *testing.T) {
	sec := section.FromPairs(map[string]string{"good": "1", "bad": "abc"})

	var diags diagnostic.Diagnostics
	got, _, err := BindMap[string, int](New(), nil, sec, options.New(options.WithDiagnostics(&diags)))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"good": 1}, got)

	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diagnostic.CodeValueBinding, diags.All()[0].Code)
	assert.Equal(t, "bad", diags.All()[0].Path)

	_, _, err = BindMap[string, int](New(), nil, sec, options.New(options.WithStrict(true)))
	require.ErrorIs(t, err, ErrValueBinding)
}

func TestBind_MutableInPlace(t *testing.T) {
	sec := section.FromPairs(map[string]string{"y": "2"})

	t.Run("map", func(t *testing.T) {
		m := map[string]int{"x": 1}

		got, ok, err := BindMap(New(), m, sec, options.Options{})
		require.NoError(t, err)
		require.True(t, ok)

		assert.Equal(t, reflect.ValueOf(m).Pointer(), reflect.ValueOf(got).Pointer())
		assert.Equal(t, map[string]int{"x": 1, "y": 2}, m)
	})

	t.Run("dict", func(t *testing.T) {
		d := ignoreCase(dict.Pair[string, int]{Key: "Y", Value: 1})

		got, ok, err := BindDict(New(), d, sec, options.Options{})
		require.NoError(t, err)
		require.True(t, ok)

		assert.Same(t, d, got)
		assert.Equal(t, []dict.Pair[string, int]{{Key: "Y", Value: 2}}, d.Pairs())
	})
}

func TestBind_OverlayNested(t *testing.T) {
	m := map[string]map[string]int{
		"db":    {"port": 1, "pool": 5},
		"cache": {"ttl": 60},
	}
	sec := section.FromPairs(map[string]string{"db:port": "2", "queue:size": "10"})

	_, _, err := BindMap(New(), m, sec, options.Options{})
	require.NoError(t, err)

	assert.Equal(t, map[string]map[string]int{
		"db":    {"port": 2, "pool": 5},
		"cache": {"ttl": 60},
		"queue": {"size": 10},
	}, m)
}

func TestBind_OverlayNestedReadOnly(t *testing.T) {
	inner := ignoreCase(dict.Pair[string, int]{Key: "port", Value: 1})
	m := map[string]dict.ReadOnly[string, int]{"db": inner}
	sec := section.FromPairs(map[string]string{"db:Pool": "4"})

	_, _, err := BindMap(New(), m, sec, options.Options{})
	require.NoError(t, err)

	got := m["db"]
	assert.NotSame(t, inner, got)
	assert.Equal(t, 1, inner.Len())
	assert.Equal(t, []dict.Pair[string, int]{{Key: "port", Value: 1}, {Key: "Pool", Value: 4}}, got.Clone().Pairs())
}

func TestBind_EmptySectionLeavesEntryUnchanged(t *testing.T) {
	root := section.NewRoot()
	root.Ensure("empty")
	root.Set("set", "3")

	m := map[string]int{"empty": 7}
	_, _, err := BindMap(New(), m, root, options.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"empty": 7, "set": 3}, m)

	fresh, _, err := BindMap[string, int](New(), nil, root, options.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"set": 3}, fresh)
}

func TestBind_Idempotent(t *testing.T) {
	sec := section.FromPairs(map[string]string{"a:x": "1", "b:c": "2", "b:d": "3"})
	want := map[string]map[string]int{"a": {"x": 1}, "b": {"c": 2, "d": 3}}

	b := New()
	m := map[string]map[string]int{}
	for range 2 {
		_, _, err := BindMap(b, m, sec, options.Options{})
		require.NoError(t, err)
		assert.Equal(t, want, m)
	}
}

func TestBind_ValueOnDictionaryEntry(t *testing.T) {
	sec := section.FromPairs(map[string]string{"a": "1"})
	m := map[string]map[string]int{"a": {"x": 1}}

	_, _, err := BindMap(New(), m, sec, options.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]int{"a": {"x": 1}}, m)
}

func TestBind_UnsupportedKey(t *testing.T) {
	sec := section.FromPairs(map[string]string{"1": "one"})

	var diags diagnostic.Diagnostics
	got, ok, err := BindMap[int, string](New(), map[int]string{2: "two"}, sec, options.New(options.WithDiagnostics(&diags), options.WithStrict(true)))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, got)

	require.Equal(t, 1, diags.Len())
	assert.Equal(t, diagnostic.CodeUnsupported, diags.All()[0].Code)
	assert.Equal(t, diagnostic.DiagnosticInfo, diags.All()[0].Severity)

	d, err := Describe(reflect.TypeFor[map[float64]string]())
	require.NoError(t, err)

	out, err := New().Bind(reflect.Value{}, d, sec, options.Options{})
	require.NoError(t, err)
	assert.False(t, out.IsValid())
}

func TestBind_SourceMismatch(t *testing.T) {
	d, err := Describe(reflect.TypeFor[map[string]string]())
	require.NoError(t, err)

	_, err = New().Bind(reflect.ValueOf(map[string]int{}), d, section.NewRoot(), options.Options{})
	require.ErrorIs(t, err, ErrSourceMismatch)
}

func TestBind_InvalidOptions(t *testing.T) {
	_, _, err := BindMap[string, int](New(), nil, section.NewRoot(), options.Options{MaxDepth: -1})
	require.Error(t, err)
}

func TestBind_MaxDepth(t *testing.T) {
	sec := section.FromPairs(map[string]string{"a:b:c": "1"})
	opts := options.New(options.WithMaxDepth(1))

	got, _, err := BindMap[string, map[string]map[string]int](New(), nil, sec, opts)
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]map[string]int{"a": {}}, got)

	opts.ErrorOnUnknownConfiguration = true
	_, _, err = BindMap[string, map[string]map[string]int](New(), nil, sec, opts)
	require.ErrorIs(t, err, ErrMaxDepth)
}

func TestBind_UntypedValues(t *testing.T) {
	sec := section.FromPairs(map[string]string{
		"name":       "api",
		"limits:cpu": "2",
		"limits:mem": "1Gi",
	})

	got, _, err := BindMap[string, any](New(), nil, sec, options.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"name":   "api",
		"limits": map[string]any{"cpu": "2", "mem": "1Gi"},
	}, got)
}

func TestBind_PointerValues(t *testing.T) {
	shared := new(int)
	m := map[string]*int{"a": shared}
	sec := section.FromPairs(map[string]string{"a": "6", "b": "7"})

	_, _, err := BindMap(New(), m, sec, options.Options{})
	require.NoError(t, err)

	assert.Equal(t, 0, *shared)
	assert.NotSame(t, shared, m["a"])
	assert.Equal(t, 6, *m["a"])
	assert.Equal(t, 7, *m["b"])
}

func TestBind_DisabledConversions(t *testing.T) {
	sec := section.FromPairs(map[string]string{"tls": "yes", "debug": "1"})

	got, _, err := BindMap[string, bool](New(), nil, sec, options.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"tls": true, "debug": true}, got)

	got, _, err = BindMap[string, bool](New(), nil, sec, options.New(options.WithoutConversions(options.CategoryTextualBool)))
	require.NoError(t, err)
	assert.Equal(t, map[string]bool{"debug": true}, got)
}

func TestBind_UnsupportedValue(t *testing.T) {
	type endpoint struct{ Host string }

	sec := section.FromPairs(map[string]string{"main:host": "localhost"})

	got, _, err := BindMap[string, endpoint](New(), nil, sec, options.Options{})
	require.NoError(t, err)
	assert.Empty(t, got)

	_, _, err = BindMap[string, endpoint](New(), nil, sec, options.New(options.WithStrict(true)))
	require.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestBind_WithValueBinder(t *testing.T) {
	upper := func(next ValueBinder) ValueBinder {
		return ValueBinderFunc(func(p *BindingPoint, typ reflect.Type, sec section.Section, opts options.Options) error {
			if err := next.BindValue(p, typ, sec, opts); err != nil {
				return err
			}

			if v, ok := p.Value(); ok && v.Kind() == reflect.String {
				p.Set(reflect.ValueOf(strings.ToUpper(v.String())))
			}

			return nil
		})
	}

	sec := section.FromPairs(map[string]string{"a": "x", "n:b": "y"})

	got, _, err := BindMap[string, map[string]string](New(WithValueBinder(upper)), nil, sec, options.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]string{"n": {"b": "Y"}}, got)
}

func TestBind_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	b := New(WithLogger(zap.New(core)))
	sec := section.FromPairs(map[string]string{"x": "not-a-number"})

	_, _, err := BindMap[string, int](b, nil, sec, options.Options{})
	require.NoError(t, err)
	require.Equal(t, 1, logs.FilterMessage("skipping configuration entry").Len())

	_, _, err = BindMap[string, int](b, nil, sec, options.New(options.WithStrict(true)))
	require.Error(t, err)

	warnings := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, warnings, 1)
	assert.Equal(t, "x", warnings[0].ContextMap()["path"])
}

func TestBindingPoint(t *testing.T) {
	calls := 0
	p := NewBindingPoint(func() (reflect.Value, bool) {
		calls++
		return reflect.ValueOf(5), true
	})

	_, ok := p.Value()
	assert.False(t, ok)
	assert.Equal(t, 0, calls)

	v, ok := p.Current()
	assert.True(t, ok)
	assert.Equal(t, 5, v.Interface())

	p.Current()
	assert.Equal(t, 1, calls)

	p.Set(reflect.ValueOf(6))
	v, ok = p.Value()
	assert.True(t, ok)
	assert.Equal(t, 6, v.Interface())

	_, ok = NewBindingPoint(nil).Current()
	assert.False(t, ok)
	assert.False(t, p.Shared())
}

func TestBind_NamedMapSource(t *testing.T) {
	type weights map[string]int

	w := weights{"a": 1}
	sec := section.FromPairs(map[string]string{"b": "2"})

	b := New()
	d, err := b.Describe(reflect.TypeFor[map[string]int]())
	require.NoError(t, err)

	b.Cache().Register(TypedMap[string, int]())

	out, err := b.Bind(reflect.ValueOf(w), d, sec, options.Options{})
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"a": 1, "b": 2}, out.Interface())
	assert.Equal(t, weights{"a": 1, "b": 2}, w)

	named, _, err := Into(b, w, section.FromPairs(map[string]string{"c": "3"}), options.Options{})
	require.NoError(t, err)
	assert.Len(t, named, 3)
}

func TestBind_ReadOnlyLeavesNestedValuesUnchanged(t *testing.T) {
	sec := section.FromPairs(map[string]string{"db:pool": "4"})

	for _, s := range options.Strategies() {
		opts := options.New(options.WithStrategy(s))

		t.Run(s.String()+"/map", func(t *testing.T) {
			inner := map[string]int{"port": 1}
			src := dict.New[string, map[string]int](nil)
			src.Set("db", inner)

			got, ok, err := BindReadOnly[string, map[string]int](New(), src, sec, opts)
			require.NoError(t, err)
			require.True(t, ok)

			v, _ := got.Get("db")
			assert.Equal(t, map[string]int{"port": 1, "pool": 4}, v)
			assert.Equal(t, map[string]int{"port": 1}, inner)
		})

		t.Run(s.String()+"/pointer", func(t *testing.T) {
			inner := map[string]int{"port": 1}
			ptr := &inner
			src := dict.New[string, *map[string]int](nil)
			src.Set("db", ptr)

			got, ok, err := BindReadOnly[string, *map[string]int](New(), src, sec, opts)
			require.NoError(t, err)
			require.True(t, ok)

			v, _ := got.Get("db")
			require.NotNil(t, v)
			assert.NotSame(t, ptr, v)
			assert.Equal(t, map[string]int{"port": 1, "pool": 4}, *v)
			assert.Equal(t, map[string]int{"port": 1}, inner)

			held, _ := src.Get("db")
			assert.Same(t, ptr, held)
		})

		t.Run(s.String()+"/nested", func(t *testing.T) {
			leaf := map[string]int{"x": 1}
			src := dict.New[string, map[string]map[string]int](nil)
			src.Set("a", map[string]map[string]int{"b": leaf})

			got, _, err := BindReadOnly[string, map[string]map[string]int](New(), src,
				section.FromPairs(map[string]string{"a:b:y": "2"}), opts)
			require.NoError(t, err)

			v, _ := got.Get("a")
			assert.Equal(t, map[string]map[string]int{"b": {"x": 1, "y": 2}}, v)
			assert.Equal(t, map[string]int{"x": 1}, leaf)
		})
	}
}

func TestBind_StrictErrorContext(t *testing.T) {
	root := section.FromPairs(map[string]string{"cfg:2:a": "1"})

	t.Run("root section", func(t *testing.T) {
		var diags diagnostic.Diagnostics

		_, _, err := BindMap[string, map[int8]map[int8]int](New(), nil, root,
			options.New(options.WithStrict(true), options.WithDiagnostics(&diags)))
		require.ErrorIs(t, err, ErrKeyConversion)

		msg := err.Error()
		assert.True(t, strings.HasPrefix(msg, "binding the root section into map[string]map[int8]map[int8]int "), msg)
		assert.Equal(t, 1, strings.Count(msg, "ErrorOnUnknownConfiguration"), msg)
		assert.NotContains(t, msg, "  ")

		require.Len(t, diags.Errors, 1)
		assert.Equal(t, "cfg:2:a", diags.Errors[0].Path)
		assert.Equal(t, diagnostic.CodeKeyConversion, diags.Errors[0].Code)
		assert.Empty(t, diags.Warnings)
	})

	t.Run("sub section", func(t *testing.T) {
		cfg, ok := root.Lookup("cfg")
		require.True(t, ok)

		_, _, err := BindMap[int8, map[int8]int](New(), nil, cfg, options.New(options.WithStrict(true)))
		require.Error(t, err)
		assert.True(t, strings.HasPrefix(err.Error(), `binding section "cfg" into map[int8]map[int8]int `), err.Error())
		assert.Equal(t, 1, strings.Count(err.Error(), "ErrorOnUnknownConfiguration"))
	})
}

func TestBind_ChildlessSectionKeepsEntries(t *testing.T) {
	for _, s := range options.Strategies() {
		opts := options.New(options.WithStrategy(s))

		t.Run(s.String()+"/map", func(t *testing.T) {
			m := map[string]int{"a": 1, "b": 2}

			got, ok, err := BindMap(New(), m, section.NewRoot(), opts)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, map[string]int{"a": 1, "b": 2}, got)
			assert.Equal(t, reflect.ValueOf(m).Pointer(), reflect.ValueOf(got).Pointer())
		})

		t.Run(s.String()+"/dict", func(t *testing.T) {
			d := ignoreCase(dict.Pair[string, int]{Key: "a", Value: 1}, dict.Pair[string, int]{Key: "B", Value: 2})

			got, ok, err := BindDict(New(), d, section.NewRoot(), opts)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Same(t, d, got)
			assert.Equal(t, []dict.Pair[string, int]{{Key: "a", Value: 1}, {Key: "B", Value: 2}}, d.Pairs())
		})
	}
}

func TestBind_MaxDepthIsRelative(t *testing.T) {
	segments := make([]string, options.DefaultMaxDepth+6)
	for i := range segments {
		segments[i] = "l"
	}

	deep := section.JoinPath(segments...)
	root := section.FromPairs(map[string]string{deep + ":x": "1"})

	sec, ok := root.Lookup(deep)
	require.True(t, ok)

	got, _, err := BindMap[string, int](New(), nil, sec, options.New(options.WithStrict(true)))
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"x": 1}, got)

	ab, ok := section.FromPairs(map[string]string{"a:b:c:d": "1"}).Lookup("a:b")
	require.True(t, ok)

	nested, _, err := BindMap[string, map[string]int](New(), nil, ab, options.New(options.WithMaxDepth(1), options.WithStrict(true)))
	require.NoError(t, err)
	assert.Equal(t, map[string]map[string]int{"c": {"d": 1}}, nested)
}
