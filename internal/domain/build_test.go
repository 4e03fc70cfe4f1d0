package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunGroupKind_Known(t *testing.T) {
	assert.True(t, RunGroupConcurrent.Known())
	assert.True(t, RunGroupSequential.Known())
	assert.False(t, RunGroupKind("staged").Known())
	assert.False(t, RunGroupKind("").Known())
}

func TestPartTemplate_Clone(t *testing.T) {
	original := &PartTemplate{
		Name: "script",
		Commands: []CommandTemplate{
			{"{exec}", "{file}", "{_project_name}"},
		},
	}

	clone := original.Clone()
	require.Equal(t, original, clone)

	clone.Commands[0][0] = "mutated"
	assert.Equal(t, "{exec}", original.Commands[0][0])
}

func TestSpec_Project(t *testing.T) {
	spec := &Spec{Projects: []ProjectSpec{
		{Name: "zed_blinky"},
		{Name: "demo"},
	}}

	require.NotNil(t, spec.Project("demo"))
	assert.Equal(t, "demo", spec.Project("demo").Name)
	assert.Nil(t, spec.Project("missing"))
}

func TestBuildPlan_CommandCount(t *testing.T) {
	plan := &BuildPlan{Projects: []ProjectPlan{
		{
			Project: "demo",
			Groups: []GroupPlan{
				{
					Kind: RunGroupConcurrent,
					Parts: []PartCommands{
						{{"make", "clean"}, {"make"}},
						{{"fusesoc", "run"}},
					},
				},
				{
					Kind:  RunGroupSequential,
					Parts: []PartCommands{{{"genimage"}}},
				},
			},
		},
	}}

	assert.Equal(t, 4, plan.CommandCount())
}

func TestBuildPlan_CommandCount_SkipsUnknownKinds(t *testing.T) {
	plan := &BuildPlan{Projects: []ProjectPlan{
		{
			Project: "demo",
			Groups: []GroupPlan{
				{Kind: RunGroupKind("staged"), Parts: []PartCommands{{{"true"}}}},
				{Kind: RunGroupSequential, Parts: []PartCommands{{{"true"}}}},
			},
		},
	}}

	assert.Equal(t, 1, plan.CommandCount())
}

func TestBuildPlan_CommandCount_Empty(t *testing.T) {
	assert.Equal(t, 0, (&BuildPlan{}).CommandCount())
}
