package storage

// Store persists named blobs.
type Store interface {
	Save(name string, data []byte) error
	Load(name string) ([]byte, error)
	Delete(name string) error
}

// Notifier broadcasts store events.
type Notifier interface {
	Notify(event string, payload ...any)
}

// helper is unexported and skipped unless requested.
type helper interface {
	Help() string
}
