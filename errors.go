package bintree

import (
	"errors"
	"fmt"

	"github.com/npillmayer/bintree/alloc"
	"github.com/npillmayer/bintree/augment"
	"github.com/npillmayer/bintree/node"
)

var (
	// ErrInvalidOperation signals the violation of an operation's
	// precondition, e.g. attaching to an occupied child slot. The tree is
	// left unchanged.
	ErrInvalidOperation = node.ErrInvalidOperation
	// ErrIndexOutOfRange signals an index beyond the number of nodes. It
	// wraps ErrInvalidOperation.
	ErrIndexOutOfRange = node.ErrIndexOutOfRange
	// ErrOutOfMemory signals the failure of the tree's allocator. The tree is
	// left unchanged.
	ErrOutOfMemory = alloc.ErrOutOfMemory
	// ErrAllocatorMismatch signals an operation between two trees with
	// incompatible allocators. It wraps ErrInvalidOperation.
	ErrAllocatorMismatch = fmt.Errorf("%w: allocators differ", ErrInvalidOperation)
	// ErrAugmentationUnavailable signals that an augmentation-specific
	// operation was used on a tree without that augmentation.
	ErrAugmentationUnavailable = errors.New("bintree: augmentation unavailable")
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("bintree: invalid configuration")
	// ErrInvariantViolated is returned by Check for a corrupt tree.
	ErrInvariantViolated = augment.ErrInvariantViolated
)
