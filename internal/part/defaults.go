package part

import (
	"github.com/hdlforge/bob/internal/domain"
)

// BuiltinParts returns the part templates that ship with bob.
//
// The command shapes target the standard FPGA/embedded-linux toolchain flow:
// fusesoc for HDL builds, buildroot for the linux userland, genimage for
// disk images, and script as an escape hatch for anything else. The
// {_project_name} and {_pwd} placeholders are injected implicitly at
// expansion time; everything else comes from the project specification.
func BuiltinParts() []*domain.PartTemplate {
	return []*domain.PartTemplate{
		{
			Name: "fusesoc",
			Commands: []domain.CommandTemplate{
				{"fusesoc", "--cores-root", "{path}", "run", "--build", "--work-root", "output/hdl/{_project_name}", "--target", "{target}", "{project}"},
			},
		},
		{
			Name: "buildroot",
			Commands: []domain.CommandTemplate{
				{"make", "-C", "{path}", "clean", "all"},
				{"make", "O={_pwd}/output/linux/{_project_name}", "-C", "{path}", "{config}"},
				{"make", "O={_pwd}/output/linux/{_project_name}", "-C", "{path}"},
			},
		},
		{
			Name: "script",
			Commands: []domain.CommandTemplate{
				{"{exec}", "{file}", "{_project_name}", "{args}"},
			},
		},
		{
			Name: "genimage",
			Commands: []domain.CommandTemplate{
				{"mkdir", "-p", "{_pwd}/output/genimage/tmp/{_project_name}"},
				{"genimage", "--config", "{path}/{_project_name}.cfg"},
			},
		},
	}
}

// DefaultRegistry returns a registry pre-populated with the built-in parts.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range BuiltinParts() {
		// Built-in names are unique by construction.
		_ = r.Register(p)
	}
	return r
}
