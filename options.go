package respack

import (
	"log/slog"

	"github.com/signadot/respack/category"
	"github.com/signadot/respack/filetree"
)

type options struct {
	logger   *slog.Logger
	registry *category.Registry[*Resources]
	indent   string
	lenient  bool
	treeOpts []filetree.Option
}

// Option configures a Writer or a Reader.
type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithRegistry replaces the categories a container is written and read
// with.
func WithRegistry(r *category.Registry[*Resources]) Option {
	return func(o *options) { o.registry = r }
}

// WithIndent indents every JSON document written. The default is compact
// output.
func WithIndent(indent string) Option {
	return func(o *options) { o.indent = indent }
}

// Lenient accepts comments and trailing commas when reading JSON entries.
func Lenient(v bool) Option {
	return func(o *options) { o.lenient = v }
}

// WithTreeOptions passes options to the trees created by WriteToDir,
// WriteToZip and Build, e.g. the compression method.
func WithTreeOptions(opts ...filetree.Option) Option {
	return func(o *options) { o.treeOpts = append(o.treeOpts, opts...) }
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	if o.registry == nil {
		o.registry = NewRegistry()
	}
	o.registry = o.registry.WithLogger(o.logger)
	return o
}

// trees returns defaults, then the caller's tree options, so the latter win.
func (o *options) trees(defaults ...filetree.Option) []filetree.Option {
	res := []filetree.Option{filetree.WithIndent(o.indent), filetree.WithLogger(o.logger)}
	res = append(res, defaults...)
	return append(res, o.treeOpts...)
}
