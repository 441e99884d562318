package common

const (
	SrcFileExtension  = ".nv"
	ModuleConfigFile  = "nova-mod.toml"
	InterfaceSuffix   = ".nvi"
	CompilerVersion   = "0.1.0"
)

// NovaPath is the path to the standard library root.  It is empty by
// default; nothing in this repository sets it or reads it, and the core
// pipeline itself never reads the filesystem.
var NovaPath = ""
