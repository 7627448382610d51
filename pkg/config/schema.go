package config

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/ytcrawl/ytcrawl/pkg/errors"
)

// Kind is the declared type of an option.
type Kind string

const (
	KindInt     Kind = "int"
	KindIntList Kind = "int list"
	KindString  Kind = "string"
)

// option declares one schema entry: its kind, accessors, and an optional
// value validator beyond the kind check.
type option struct {
	kind     Kind
	get      func(*Options) any
	set      func(*Options, any)
	validate func(any) error
}

// schema maps option names to their declarations. Raw values are converted
// by one function (convert) against the declared kind instead of
// trial-and-error parsing; integer options reject negative values.
var schema = map[string]option{
	"number": {
		kind: KindIntList,
		get:  func(o *Options) any { return o.Number },
		set:  func(o *Options, v any) { o.Number = v.([]int) },
		validate: func(v any) error {
			for _, n := range v.([]int) {
				if n < 1 || n > 50 {
					return errors.New(errors.ErrCodeInvalidOption, "branching factor %d out of range 1..50", n)
				}
			}
			return nil
		},
	},
	"max_depth": {
		kind: KindInt,
		get:  func(o *Options) any { return o.MaxDepth },
		set:  func(o *Options, v any) { o.MaxDepth = v.(int) },
		validate: func(v any) error {
			if n := v.(int); n > 100 {
				return errors.New(errors.ErrCodeInvalidOption, "max depth %d out of range 0..100", n)
			}
			return nil
		},
	},
	"api_key": {
		kind: KindString,
		get:  func(o *Options) any { return o.APIKey },
		set:  func(o *Options, v any) { o.APIKey = v.(string) },
	},
	"output_dir": {
		kind: KindString,
		get:  func(o *Options) any { return o.OutputDir },
		set:  func(o *Options, v any) { o.OutputDir = v.(string) },
	},
	"output_format": {
		kind: KindString,
		get:  func(o *Options) any { return o.OutputFormat },
		set:  func(o *Options, v any) { o.OutputFormat = v.(string) },
		validate: func(v any) error {
			s := v.(string)
			if s == "" || slices.Contains(Formats, s) {
				return nil
			}
			return errors.New(errors.ErrCodeInvalidOption,
				"invalid output format %q (expected %s)", s, strings.Join(Formats, ", "))
		},
	},
	"region_code": {
		kind: KindString,
		get:  func(o *Options) any { return o.RegionCode },
		set:  func(o *Options, v any) { o.RegionCode = v.(string) },
	},
	"lang_code": {
		kind: KindString,
		get:  func(o *Options) any { return o.LangCode },
		set:  func(o *Options, v any) { o.LangCode = v.(string) },
	},
	"safe_search": {
		kind:     KindString,
		get:      func(o *Options) any { return o.SafeSearch },
		set:      func(o *Options, v any) { o.SafeSearch = v.(string) },
		validate: func(v any) error { return errors.ValidateSafeSearch(v.(string)) },
	},
	"encoding": {
		kind:     KindString,
		get:      func(o *Options) any { return o.Encoding },
		set:      func(o *Options, v any) { o.Encoding = v.(string) },
		validate: func(v any) error { return errors.ValidateEncoding(v.(string)) },
	},
}

// Formats lists the supported export formats.
var Formats = []string{"csv", "json", "dot", "mongo"}

// Names returns all option names in sorted order.
func Names() []string {
	names := make([]string, 0, len(schema))
	for name := range schema {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// KindOf returns the declared kind of an option.
func KindOf(name string) (Kind, error) {
	opt, ok := schema[name]
	if !ok {
		return "", unknownOption(name)
	}
	return opt.kind, nil
}

// Get returns the current value of a named option.
func Get(opts *Options, name string) (any, error) {
	opt, ok := schema[name]
	if !ok {
		return nil, unknownOption(name)
	}
	return opt.get(opts), nil
}

// Set converts raw against the option's declared kind, validates it, and
// stores it. A value of the wrong type or a negative integer is rejected
// with INVALID_OPTION.
func Set(opts *Options, name, raw string) error {
	opt, ok := schema[name]
	if !ok {
		return unknownOption(name)
	}

	value, err := convert(name, opt.kind, raw)
	if err != nil {
		return err
	}
	if opt.validate != nil {
		if err := opt.validate(value); err != nil {
			return err
		}
	}
	opt.set(opts, value)
	return nil
}

// Unset resets a named option to its default.
func Unset(opts *Options, name string) error {
	opt, ok := schema[name]
	if !ok {
		return unknownOption(name)
	}
	defaults := Defaults()
	opt.set(opts, opt.get(&defaults))
	return nil
}

// convert is the single conversion function from raw strings to typed
// values. Integer kinds reject values that do not parse and values below
// zero; int lists accept comma-separated entries.
func convert(name string, kind Kind, raw string) (any, error) {
	switch kind {
	case KindInt:
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return nil, errors.New(errors.ErrCodeInvalidOption,
				"%q is not a valid value for %s (expected %s)", raw, name, kind)
		}
		if n < 0 {
			return nil, errors.New(errors.ErrCodeInvalidOption,
				"%s cannot be negative (got %d)", name, n)
		}
		return n, nil

	case KindIntList:
		parts := strings.Split(raw, ",")
		ns := make([]int, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil {
				return nil, errors.New(errors.ErrCodeInvalidOption,
					"%q is not a valid value for %s (expected %s, e.g. \"10,3\")", raw, name, kind)
			}
			if n < 0 {
				return nil, errors.New(errors.ErrCodeInvalidOption,
					"%s cannot contain negative values (got %d)", name, n)
			}
			ns = append(ns, n)
		}
		return ns, nil

	case KindString:
		return raw, nil

	default:
		return nil, fmt.Errorf("unhandled option kind %q", kind)
	}
}

func unknownOption(name string) error {
	return errors.New(errors.ErrCodeInvalidOption,
		"unknown option %q (available: %s)", name, strings.Join(Names(), ", "))
}
