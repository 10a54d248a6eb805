package registry

import (
	"testing"

	"github.com/confmesh/confmesh/core"
	"github.com/stretchr/testify/assert"
)

func TestList_FixedOrder(t *testing.T) {
	names := []string{}
	for _, a := range List() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{core.AgentTriage, core.AgentSchedule, core.AgentNetworking}, names)
}

func TestFind_DefaultsToTriage(t *testing.T) {
	assert.Equal(t, core.AgentNetworking, Find(core.AgentNetworking).Name)
	assert.Equal(t, core.AgentTriage, Find("No Such Agent").Name)
	assert.Equal(t, core.AgentTriage, Find("").Name)
}

func TestStarTopology(t *testing.T) {
	for _, a := range List() {
		if a.Name == core.AgentTriage {
			continue
		}
		assert.True(t, a.CanHandOffTo(core.AgentTriage),
			"%s must be able to hand off to triage", a.Name)
	}
}

func TestSerialize_NoNilSlices(t *testing.T) {
	for _, view := range SerializeAll() {
		assert.NotNil(t, view.Handoffs)
		assert.NotNil(t, view.Tools)
		assert.NotNil(t, view.InputGuardrails)
	}

	// A descriptor with absent optional fields serializes to empty lists.
	view := Serialize(core.AgentDescriptor{Name: "Bare Agent"})
	assert.Equal(t, []string{}, view.Handoffs)
	assert.Equal(t, []string{}, view.Tools)
	assert.Equal(t, []string{}, view.InputGuardrails)
}

func TestNetworkingToolSet(t *testing.T) {
	networking := Find(core.AgentNetworking)
	assert.Len(t, networking.Tools, 6)
	triage := Find(core.AgentTriage)
	assert.Empty(t, triage.Tools)
}
