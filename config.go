package bintree

import (
	"fmt"

	"github.com/npillmayer/bintree/alloc"
	"github.com/npillmayer/bintree/augment"
	"github.com/npillmayer/bintree/node"
	"github.com/npillmayer/schuko/tracing"
)

// Augmentation describes a layer to stack on a tree. Every tree creates its
// own layer instances from it.
type Augmentation struct {
	name string
	make func() (augment.Layer, error)
}

// Name returns the name of the augmentation.
func (a Augmentation) Name() string {
	return a.name
}

// Balancing keeps a tree height-balanced (AVL). Balanced trees reject
// client-requested rotations.
func Balancing() Augmentation {
	return Augmentation{"avl", func() (augment.Layer, error) { return augment.NewAVL(), nil }}
}

// Indexing maintains subtree sizes, enabling ElementAt, At and IndexOf.
func Indexing() Augmentation {
	return Augmentation{"indexing", func() (augment.Layer, error) { return augment.NewIndexing(), nil }}
}

// Marking lets clients mark nodes with k independent flags, enabling Mark,
// Unmark and the marked navigation operations.
func Marking(k int) Augmentation {
	return Augmentation{"marking", func() (augment.Layer, error) { return augment.NewMarking(k) }}
}

// Ordering enables Order, the comparison of positions by in-order sequence.
func Ordering() Augmentation {
	return Augmentation{"ordering", func() (augment.Layer, error) { return augment.NewOrdering(), nil }}
}

// Config collects the options of a tree.
type Config struct {
	// Allocator is an alloc.Allocator[node.Node[T]] for the tree's value type
	// T. If nil, each tree gets its own slab.
	Allocator any
	// Augmentations are stacked in order: the first one is innermost. The
	// order does not change observable behaviour.
	Augmentations []Augmentation
	// Trace receives the tree's log output. If nil, T() is used.
	Trace tracing.Trace
}

// Option configures a tree.
type Option func(*Config)

// WithAllocator lets a tree take its nodes from a. N must be node.Node[T]
// for the tree's value type T.
func WithAllocator[N any](a alloc.Allocator[N]) Option {
	return func(cfg *Config) {
		cfg.Allocator = a
	}
}

// With stacks augmentations on a tree, in addition to the ones configured
// so far.
func With(augs ...Augmentation) Option {
	return func(cfg *Config) {
		cfg.Augmentations = append(cfg.Augmentations, augs...)
	}
}

// WithTracing sets the trace a tree logs to.
func WithTracing(trace tracing.Trace) Option {
	return func(cfg *Config) {
		cfg.Trace = trace
	}
}

func (cfg Config) apply(opts ...Option) Config {
	cfg.Augmentations = append([]Augmentation(nil), cfg.Augmentations...)
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

func (cfg Config) normalized() Config {
	if cfg.Trace == nil {
		cfg.Trace = T()
	}
	return cfg
}

func validate[T any](cfg Config) error {
	if cfg.Allocator != nil {
		if _, ok := cfg.Allocator.(alloc.Allocator[node.Node[T]]); !ok {
			return fmt.Errorf("%w: allocator of type %T does not allocate tree nodes of %T",
				ErrInvalidConfig, cfg.Allocator, *new(T))
		}
	}
	seen := make(map[string]bool, len(cfg.Augmentations))
	for _, a := range cfg.Augmentations {
		if a.make == nil {
			return fmt.Errorf("%w: empty augmentation", ErrInvalidConfig)
		}
		if seen[a.name] {
			return fmt.Errorf("%w: augmentation %q given twice", ErrInvalidConfig, a.name)
		}
		seen[a.name] = true
	}
	return nil
}

// allocator returns the configured allocator, or a fresh slab.
func allocator[T any](cfg Config) alloc.Allocator[node.Node[T]] {
	if cfg.Allocator == nil {
		return alloc.NewSlab[node.Node[T]]()
	}
	return cfg.Allocator.(alloc.Allocator[node.Node[T]])
}
