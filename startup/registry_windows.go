//go:build windows

package startup

import (
	"errors"
	"fmt"

	"golang.org/x/sys/windows/registry"
)

type runKeyStore struct {
	root registry.Key
	path string
}

// NewRunKeyStore opens HKCU\Software\Microsoft\Windows\CurrentVersion\Run.
func NewRunKeyStore() KeyStore {
	return &runKeyStore{
		root: registry.CURRENT_USER,
		path: RunKeyPath,
	}
}

func (s *runKeyStore) Open(access Access) (Key, error) {
	mode := uint32(registry.READ)
	if access == AccessWrite {
		mode = registry.WRITE
	}
	k, err := registry.OpenKey(s.root, s.path, mode)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", s.path, err)
	}
	return &registryKey{key: k}, nil
}

type registryKey struct {
	key registry.Key
}

func (k *registryKey) SetString(name, value string) error {
	return k.key.SetStringValue(name, value)
}

func (k *registryKey) GetString(name string) (string, error) {
	value, valueType, err := k.key.GetStringValue(name)
	if errors.Is(err, registry.ErrNotExist) {
		return "", ErrValueNotFound
	}
	if err != nil {
		return "", err
	}
	if valueType != registry.SZ {
		return "", fmt.Errorf("value %s has type %d, want REG_SZ", name, valueType)
	}
	return value, nil
}

func (k *registryKey) DeleteValue(name string) error {
	err := k.key.DeleteValue(name)
	if errors.Is(err, registry.ErrNotExist) {
		return ErrValueNotFound
	}
	return err
}

func (k *registryKey) Close() error {
	return k.key.Close()
}
