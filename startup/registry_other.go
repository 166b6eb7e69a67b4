//go:build !windows

package startup

type unsupportedStore struct{}

// NewRunKeyStore returns a store that is never available outside Windows.
func NewRunKeyStore() KeyStore {
	return unsupportedStore{}
}

func (unsupportedStore) Open(Access) (Key, error) {
	return nil, ErrUnsupported
}
