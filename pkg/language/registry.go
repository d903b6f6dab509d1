package language

import (
	"fmt"
	"sort"
	"sync"

	"github.com/seglabco/segtok/internal/logging"
	"github.com/seglabco/segtok/pkg/rules"
)

// Factory lazily constructs the Resource for a language tag. It is
// called at most once per tag.
type Factory func(tag string) (*Resource, error)

// Registry maps language tags to Resources. Reads are guarded by an
// RWMutex; resources themselves are immutable, so the steady-state
// tokenization path shares them freely across goroutines.
type Registry struct {
	mu        sync.RWMutex
	resources map[string]*Resource
	factory   Factory
	failed    map[string]error
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		resources: make(map[string]*Resource),
		failed:    make(map[string]error),
	}
}

// SetFactory installs a lazy constructor for unregistered tags.
func (r *Registry) SetFactory(f Factory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factory = f
}

// Register adds a resource under its tag, replacing any previous one.
func (r *Registry) Register(res *Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[res.Tag] = res
}

// RegisterAs adds a resource under an explicit tag, so one resource can
// also serve as the default.
func (r *Registry) RegisterAs(tag string, res *Resource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.resources[tag] = res
}

// Get retrieves the resource for a tag without fallback.
func (r *Registry) Get(tag string) (*Resource, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	res, ok := r.resources[tag]
	return res, ok
}

// Tags returns the registered language tags, sorted.
func (r *Registry) Tags() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tags := make([]string, 0, len(r.resources))
	for tag := range r.resources {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Resolve returns the resource for a tag, constructing it through the
// factory on first use when one is installed, and falling back to the
// default resource for unknown tags. The fallback is logged, not an
// error; a missing default is.
func (r *Registry) Resolve(tag string) (*Resource, error) {
	if tag == "" {
		tag = DefaultTag
	}

	r.mu.RLock()
	res, ok := r.resources[tag]
	r.mu.RUnlock()
	if ok {
		return res, nil
	}

	if res := r.construct(tag); res != nil {
		return res, nil
	}

	if tag != DefaultTag {
		logging.Default().Warn("unsupported language, using default resource",
			logging.FieldLanguage, tag,
			logging.FieldFallback, DefaultTag,
		)
		return r.Resolve(DefaultTag)
	}
	return nil, fmt.Errorf("%w: no default language resource registered", rules.ErrInitialization)
}

// construct runs the factory for tag under the write lock, recording
// failures so a broken tag is not rebuilt on every call.
func (r *Registry) construct(tag string) *Resource {
	r.mu.Lock()
	defer r.mu.Unlock()

	if res, ok := r.resources[tag]; ok {
		return res
	}
	if r.factory == nil {
		return nil
	}
	if _, tried := r.failed[tag]; tried {
		return nil
	}

	res, err := r.factory(tag)
	if err != nil || res == nil {
		if err != nil {
			logging.Default().Warn("language resource construction failed",
				logging.FieldLanguage, tag,
				logging.FieldError, err,
			)
		}
		r.failed[tag] = err
		return nil
	}
	res.Tag = tag
	r.resources[tag] = res
	return res
}
