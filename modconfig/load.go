// Package modconfig loads a module's `nova-mod.toml` descriptor: the
// module's name, its interface/body source file pair, its declared
// dependencies, and whether it is an unsafe module (permitted to use raw
// pointer types).
package modconfig

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml"

	"nova/common"
)

// tomlModuleFile mirrors the on-disk shape of a module descriptor.
type tomlModuleFile struct {
	Module *tomlModule `toml:"module"`
}

type tomlModule struct {
	Name           string   `toml:"name"`
	InterfaceFile  string   `toml:"interface-file"`
	BodyFile       string   `toml:"body-file"`
	Unsafe         bool     `toml:"unsafe"`
	Dependencies   []string `toml:"dependencies,omitempty"`
	NovaVersion    string   `toml:"nova-version"`
}

// Module is the resolved, validated descriptor for one module directory.
type Module struct {
	Name          string
	Root          string
	InterfacePath string
	BodyPath      string
	Unsafe        bool
	Dependencies  []string
}

// Load reads and validates the `nova-mod.toml` file in dir.
func Load(dir string) (*Module, error) {
	f, err := os.Open(filepath.Join(dir, common.ModuleConfigFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buff, err := ioutil.ReadAll(f)
	if err != nil {
		return nil, err
	}

	tmf := &tomlModuleFile{}
	if err := toml.Unmarshal(buff, tmf); err != nil {
		return nil, err
	}

	if tmf.Module == nil {
		return nil, fmt.Errorf("%s: missing [module] table", filepath.Join(dir, common.ModuleConfigFile))
	}

	m := tmf.Module
	if m.Name == "" {
		return nil, fmt.Errorf("module at %s has no name", dir)
	}
	if !common.IsValidIdentifier(m.Name) {
		return nil, fmt.Errorf("module name `%s` must be a valid identifier", m.Name)
	}
	if m.InterfaceFile == "" || m.BodyFile == "" {
		return nil, fmt.Errorf("module `%s` must declare both an interface-file and a body-file", m.Name)
	}

	return &Module{
		Name:          m.Name,
		Root:          dir,
		InterfacePath: filepath.Join(dir, m.InterfaceFile),
		BodyPath:      filepath.Join(dir, m.BodyFile),
		Unsafe:        m.Unsafe,
		Dependencies:  m.Dependencies,
	}, nil
}
