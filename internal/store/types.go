package store

// Settings is the persistence interface for user settings. Network state is
// never written here.
type Settings interface {
	SetConfig(key, value string) error
	GetConfig(key string) (string, error)
	ListConfig() (map[string]string, error)
	DeleteConfig(key string) error

	Close() error
}
