//go:build windows

package toolkit

import (
	"fmt"

	"golang.org/x/sys/windows/registry"
)

type systemRegistry struct{}

// SystemRegistry returns the HKEY_LOCAL_MACHINE registry of this machine.
func SystemRegistry() Registry {
	return systemRegistry{}
}

func (systemRegistry) GetDWORD(path, name string) (uint32, error) {
	key, err := registry.OpenKey(registry.LOCAL_MACHINE, path, registry.QUERY_VALUE)
	if err != nil {
		return 0, fmt.Errorf(`open HKLM\%s: %w`, path, err)
	}
	defer key.Close()

	v, _, err := key.GetIntegerValue(name)
	if err != nil {
		return 0, fmt.Errorf(`read HKLM\%s\%s: %w`, path, name, err)
	}
	return uint32(v), nil
}

func (systemRegistry) SetDWORD(path, name string, value uint32) error {
	key, _, err := registry.CreateKey(registry.LOCAL_MACHINE, path, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf(`open HKLM\%s: %w`, path, err)
	}
	defer key.Close()

	if err := key.SetDWordValue(name, value); err != nil {
		return fmt.Errorf(`write HKLM\%s\%s: %w`, path, name, err)
	}
	return nil
}
