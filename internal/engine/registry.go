package engine

// Note: Factory does not expose Register because it takes the unexported
// coreOperation type. Tests outside this package use DefaultFactory or mocks.

import (
	"fmt"
	"sort"
	"sync"
)

// Factory looks up operations by name. It allows the service layer to be
// built against a custom set of operations.
type Factory interface {
	// Get returns the operation registered under name.
	// The error wraps ErrUnknownOperation if name is not registered.
	Get(name string) (Operation, error)

	// List returns the sorted names of all registered operations.
	List() []string

	// GetAll returns a map of all registered operations.
	GetAll() map[string]Operation

	// Has reports whether an operation is registered under name.
	Has(name string) bool
}

// DefaultFactory is the default Factory implementation. It maintains a
// thread-safe registry of operation creators and caches the decorated
// Operation instances.
type DefaultFactory struct {
	mu         sync.RWMutex
	creators   map[string]func() coreOperation
	operations map[string]Operation
}

// NewDefaultFactory creates a factory with every built-in operation
// registered: parse, neg, add, sub, mul, div, mod, divmod, pow, degree, rhs,
// lead, isnum and eval.
//
// Returns:
//   - *DefaultFactory: A new factory with the built-in operations.
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators:   make(map[string]func() coreOperation),
		operations: make(map[string]Operation),
	}
	for _, creator := range builtins {
		_ = f.Register(creator().Name(), creator)
	}
	return f
}

// Register adds an operation to the factory, replacing any operation with
// the same name. The creator is called lazily on first lookup.
//
// Parameters:
//   - name: The unique identifier of the operation.
//   - creator: A function returning the core operation.
//
// Returns:
//   - error: An error if creator is nil.
func (f *DefaultFactory) Register(name string, creator func() coreOperation) error {
	if creator == nil {
		return fmt.Errorf("engine: nil creator for operation %q", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.operations, name)
	return nil
}

// Get returns the operation registered under name. Instances are cached.
//
// Parameters:
//   - name: The operation name.
//
// Returns:
//   - Operation: The decorated operation.
//   - error: An error wrapping ErrUnknownOperation if name is not registered.
func (f *DefaultFactory) Get(name string) (Operation, error) {
	f.mu.RLock()
	if op, exists := f.operations[name]; exists {
		f.mu.RUnlock()
		return op, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	// Double-check after acquiring write lock
	if op, exists := f.operations[name]; exists {
		return op, nil
	}

	creator, ok := f.creators[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownOperation, name)
	}

	op := NewOperation(creator())
	f.operations[name] = op
	return op, nil
}

// List returns the registered operation names, sorted alphabetically.
// The CLI uses it for usage text, completion and validation.
//
// Returns:
//   - []string: The sorted operation names.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the name to operation map, creating any operation
// that has not been looked up yet.
func (f *DefaultFactory) GetAll() map[string]Operation {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.operations[name]; !exists {
			f.operations[name] = NewOperation(creator())
		}
	}

	result := make(map[string]Operation, len(f.operations))
	for name, op := range f.operations {
		result[name] = op
	}
	return result
}

// MustGet is like Get but panics if the operation is not registered.
// It is meant for names known at compile time.
//
// Parameters:
//   - name: The operation name.
//
// Returns:
//   - Operation: The decorated operation.
func (f *DefaultFactory) MustGet(name string) Operation {
	op, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("engine: required operation not found: %s", name))
	}
	return op
}

// Has reports whether an operation is registered under name.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory with the built-in operations.
//
// Returns:
//   - *DefaultFactory: The shared factory used by the application.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}
