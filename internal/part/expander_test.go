package part

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hdlforge/bob/internal/domain"
	boberrors "github.com/hdlforge/bob/internal/errors"
)

func testExpander(workDir string) *Expander {
	return NewExpander(workDir, zerolog.Nop())
}

func echoRegistry(t *testing.T) *Registry {
	t.Helper()
	r := NewRegistry()
	require.NoError(t, r.Register(&domain.PartTemplate{
		Name:     "echo",
		Commands: []domain.CommandTemplate{{"echo", "{_project_name}"}},
	}))
	return r
}

func TestExpander_SingleSequentialPart(t *testing.T) {
	spec := &domain.Spec{Projects: []domain.ProjectSpec{{
		Name: "demo",
		Groups: []domain.RunGroup{{
			Kind:  domain.RunGroupSequential,
			Parts: []domain.PartInvocation{{Part: "echo"}},
		}},
	}}}

	plan, err := testExpander("/work").Expand(spec, echoRegistry(t))
	require.NoError(t, err)

	require.Len(t, plan.Projects, 1)
	require.Len(t, plan.Projects[0].Groups, 1)
	require.Len(t, plan.Projects[0].Groups[0].Parts, 1)
	assert.Equal(t, domain.ExpandedCommand{"echo", "demo"}, plan.Projects[0].Groups[0].Parts[0][0])
	assert.Equal(t, 1, plan.CommandCount())
}

func TestExpander_ImplicitValuesInjected(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&domain.PartTemplate{
		Name:     "mkdirs",
		Commands: []domain.CommandTemplate{{"mkdir", "-p", "{_pwd}/output/{_project_name}"}},
	}))

	spec := &domain.Spec{Projects: []domain.ProjectSpec{{
		Name: "zed_blinky",
		Groups: []domain.RunGroup{{
			Kind:  domain.RunGroupSequential,
			Parts: []domain.PartInvocation{{Part: "mkdirs"}},
		}},
	}}}

	plan, err := testExpander("/builds").Expand(spec, r)
	require.NoError(t, err)
	assert.Equal(t,
		domain.ExpandedCommand{"mkdir", "-p", "/builds/output/zed_blinky"},
		plan.Projects[0].Groups[0].Parts[0][0])
}

func TestExpander_ImplicitKeysAlwaysWin(t *testing.T) {
	spec := &domain.Spec{Projects: []domain.ProjectSpec{{
		Name: "demo",
		Groups: []domain.RunGroup{{
			Kind: domain.RunGroupSequential,
			Parts: []domain.PartInvocation{{
				Part:   "echo",
				Params: map[string]string{"_project_name": "spoofed"},
			}},
		}},
	}}}

	plan, err := testExpander("/work").Expand(spec, echoRegistry(t))
	require.NoError(t, err)
	assert.Equal(t, domain.ExpandedCommand{"echo", "demo"}, plan.Projects[0].Groups[0].Parts[0][0])
}

func TestExpander_UnknownPart_AbortsWholeExpansion(t *testing.T) {
	spec := &domain.Spec{Projects: []domain.ProjectSpec{
		{
			Name: "first",
			Groups: []domain.RunGroup{{
				Kind:  domain.RunGroupSequential,
				Parts: []domain.PartInvocation{{Part: "echo"}},
			}},
		},
		{
			Name: "second",
			Groups: []domain.RunGroup{{
				Kind:  domain.RunGroupSequential,
				Parts: []domain.PartInvocation{{Part: "foo"}},
			}},
		},
	}}

	plan, err := testExpander("/work").Expand(spec, echoRegistry(t))
	require.ErrorIs(t, err, boberrors.ErrUnknownPart)
	assert.Contains(t, err.Error(), "foo")
	assert.Contains(t, err.Error(), "second")
	assert.Nil(t, plan)
}

func TestExpander_UnresolvedPlaceholder(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, r.Register(&domain.PartTemplate{
		Name:     "script",
		Commands: []domain.CommandTemplate{{"{exec}", "{file}"}},
	}))

	spec := &domain.Spec{Projects: []domain.ProjectSpec{{
		Name: "demo",
		Groups: []domain.RunGroup{{
			Kind: domain.RunGroupSequential,
			Parts: []domain.PartInvocation{{
				Part:   "script",
				Params: map[string]string{"exec": "bash"},
			}},
		}},
	}}}

	_, err := testExpander("/work").Expand(spec, r)
	require.ErrorIs(t, err, boberrors.ErrUnresolvedPlaceholder)
	assert.Contains(t, err.Error(), "{file}")
}

func TestExpander_ValueWithSpaceSplitsIntoTokens(t *testing.T) {
	// Documented substitution model: values containing spaces split into
	// multiple tokens because substitution joins and re-splits on spaces.
	r := NewRegistry()
	require.NoError(t, r.Register(&domain.PartTemplate{
		Name:     "script",
		Commands: []domain.CommandTemplate{{"bash", "{args}"}},
	}))

	spec := &domain.Spec{Projects: []domain.ProjectSpec{{
		Name: "demo",
		Groups: []domain.RunGroup{{
			Kind: domain.RunGroupSequential,
			Parts: []domain.PartInvocation{{
				Part:   "script",
				Params: map[string]string{"args": "-x run.sh"},
			}},
		}},
	}}}

	plan, err := testExpander("/work").Expand(spec, r)
	require.NoError(t, err)
	assert.Equal(t, domain.ExpandedCommand{"bash", "-x", "run.sh"}, plan.Projects[0].Groups[0].Parts[0][0])
}

func TestExpander_PreservesTemplateAndGroupOrder(t *testing.T) {
	r := DefaultRegistry()

	spec := &domain.Spec{Projects: []domain.ProjectSpec{{
		Name: "demo",
		Groups: []domain.RunGroup{{
			Kind: domain.RunGroupSequential,
			Parts: []domain.PartInvocation{{
				Part:   "buildroot",
				Params: map[string]string{"path": "br", "config": "def_config"},
			}},
		}},
	}}}

	plan, err := testExpander("/w").Expand(spec, r)
	require.NoError(t, err)

	cmds := plan.Projects[0].Groups[0].Parts[0]
	require.Len(t, cmds, 3)
	assert.Equal(t, domain.ExpandedCommand{"make", "-C", "br", "clean", "all"}, cmds[0])
	assert.Equal(t, domain.ExpandedCommand{"make", "O=/w/output/linux/demo", "-C", "br", "def_config"}, cmds[1])
	assert.Equal(t, domain.ExpandedCommand{"make", "O=/w/output/linux/demo", "-C", "br"}, cmds[2])
}

func TestExpander_Idempotent(t *testing.T) {
	r := DefaultRegistry()
	spec := &domain.Spec{Projects: []domain.ProjectSpec{{
		Name: "demo",
		Groups: []domain.RunGroup{
			{
				Kind: domain.RunGroupConcurrent,
				Parts: []domain.PartInvocation{
					{Part: "fusesoc", Params: map[string]string{"path": "cores", "target": "zed", "project": "::blinky:1.0.0"}},
					{Part: "genimage", Params: map[string]string{"path": "cfg"}},
				},
			},
			{
				Kind:  domain.RunGroupSequential,
				Parts: []domain.PartInvocation{{Part: "buildroot", Params: map[string]string{"path": "br", "config": "def"}}},
			},
		},
	}}}

	e := testExpander("/w")
	first, err := e.Expand(spec, r)
	require.NoError(t, err)
	second, err := e.Expand(spec, r)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestExpander_ExpandsUnknownGroupKinds(t *testing.T) {
	// Unknown kinds are still expanded so configuration errors inside them
	// surface, but they are excluded from the command count because the
	// engine skips them.
	spec := &domain.Spec{Projects: []domain.ProjectSpec{{
		Name: "demo",
		Groups: []domain.RunGroup{{
			Kind:  domain.RunGroupKind("staged"),
			Parts: []domain.PartInvocation{{Part: "echo"}},
		}},
	}}}

	plan, err := testExpander("/w").Expand(spec, echoRegistry(t))
	require.NoError(t, err)
	require.Len(t, plan.Projects[0].Groups, 1)
	assert.Equal(t, 0, plan.CommandCount())
}
