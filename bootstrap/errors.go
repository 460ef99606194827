package bootstrap

import "errors"

var (
	// ErrViewportRequired is returned when a viewport is not provided.
	ErrViewportRequired = errors.New("viewport required")

	// ErrPanelRequired is returned when a panel element is not provided.
	ErrPanelRequired = errors.New("panel element required")

	// ErrScrollSourceRequired is returned when a scroll source is not provided.
	ErrScrollSourceRequired = errors.New("scroll source required")

	// ErrFetcherRequired is returned when a fetcher is not provided.
	ErrFetcherRequired = errors.New("fetcher required")

	// ErrModuleLoaderRequired is returned when a module loader is not provided.
	ErrModuleLoaderRequired = errors.New("module loader required")

	// ErrPublisherRequired is returned when a publisher is not provided.
	ErrPublisherRequired = errors.New("publisher required")

	// ErrAlreadyRun is returned when Run is called more than once.
	ErrAlreadyRun = errors.New("bootstrap already run")

	// ErrModuleLoadFailed is returned when the rendering modules fail to load.
	ErrModuleLoadFailed = errors.New("module load failed")

	// ErrInvalidDebounce is returned for a negative debounce interval.
	ErrInvalidDebounce = errors.New("debounce interval must not be negative")
)
