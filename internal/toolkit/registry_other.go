//go:build !windows

package toolkit

type systemRegistry struct{}

func SystemRegistry() Registry {
	return systemRegistry{}
}

func (systemRegistry) GetDWORD(path, name string) (uint32, error) {
	return 0, ErrUnsupported
}

func (systemRegistry) SetDWORD(path, name string, value uint32) error {
	return ErrUnsupported
}
