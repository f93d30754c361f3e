package integrations

import (
	"errors"
	"fmt"
	"sync"
)

var (
	ErrProviderExists   = errors.New("источник уже зарегистрирован")
	ErrProviderNotFound = errors.New("источник не зарегистрирован")
	ErrNoActiveProvider = errors.New("активный источник не выбран")
)

// RegistryInterface хранит источники таблицы (local, remote) и знает, какой из них читается сейчас.
type RegistryInterface interface {
	Register(provider SourceProvider) error
	Get(name string) (SourceProvider, error)
	// SetActive переключает источник; новый источник используется со следующего обновления.
	SetActive(name string) error
	GetActive() (SourceProvider, error)
	// Active - имя активного источника или "".
	Active() string
}

type Registry struct {
	mu        sync.RWMutex
	providers map[string]SourceProvider
	active    string
}

func NewRegistry() RegistryInterface {
	return &Registry{providers: make(map[string]SourceProvider)}
}

func (r *Registry) Register(provider SourceProvider) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := provider.Name()
	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("%w: %s", ErrProviderExists, name)
	}
	r.providers[name] = provider
	return nil
}

func (r *Registry) Get(name string) (SourceProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.lookup(name)
}

func (r *Registry) SetActive(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.lookup(name); err != nil {
		return err
	}
	r.active = name
	return nil
}

func (r *Registry) GetActive() (SourceProvider, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.active == "" {
		return nil, ErrNoActiveProvider
	}
	return r.lookup(r.active)
}

func (r *Registry) Active() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

// lookup вызывается под блокировкой.
func (r *Registry) lookup(name string) (SourceProvider, error) {
	provider, ok := r.providers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrProviderNotFound, name)
	}
	return provider, nil
}
