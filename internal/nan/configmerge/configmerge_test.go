package configmerge

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"nanhostd/internal/config"
	"nanhostd/internal/nan/event"
)

func Test_Merge_NoClientsNoRequest(t *testing.T) {
	_, ok := Merge(nil, nil)

	assert.False(t, ok)
}

func Test_Merge_SingleClientIsIdentity(t *testing.T) {
	c := event.ConfigRequest{Support5gBand: true, MasterPreference: 5, ClusterLow: 1, ClusterHigh: 2}

	merged, ok := Merge(nil, []event.ConfigRequest{c})

	assert.True(t, ok)
	assert.Equal(t, c, merged)
}

func Test_Merge_S5_SpecExample(t *testing.T) {
	a := event.ConfigRequest{Support5gBand: false, MasterPreference: 10, ClusterLow: 0, ClusterHigh: config.ClusterIDMax}
	b := event.ConfigRequest{Support5gBand: true, MasterPreference: 3, ClusterLow: 5, ClusterHigh: 20}

	merged, ok := Merge(nil, []event.ConfigRequest{a, b})

	assert.True(t, ok)
	assert.True(t, merged.Support5gBand)
	assert.Equal(t, 10, merged.MasterPreference)
	assert.Equal(t, 5, merged.ClusterLow)
	assert.Equal(t, 20, merged.ClusterHigh)
}

func Test_Merge_AllDefaultRangeStaysDefault(t *testing.T) {
	a := Default()
	b := Default()

	merged, ok := Merge(nil, []event.ConfigRequest{a, b})

	assert.True(t, ok)
	assert.Equal(t, Default().ClusterLow, merged.ClusterLow)
	assert.Equal(t, Default().ClusterHigh, merged.ClusterHigh)
}

func Test_Merge_Commutative(t *testing.T) {
	a := event.ConfigRequest{Support5gBand: true, MasterPreference: 7, ClusterLow: 2, ClusterHigh: 9}
	b := event.ConfigRequest{Support5gBand: false, MasterPreference: 12, ClusterLow: 1, ClusterHigh: 4}

	m1, _ := Merge(nil, []event.ConfigRequest{a, b})
	m2, _ := Merge(nil, []event.ConfigRequest{b, a})

	assert.Equal(t, m1, m2)
}

func Test_Merge_Associative(t *testing.T) {
	a := event.ConfigRequest{MasterPreference: 1, ClusterLow: 1, ClusterHigh: 5}
	b := event.ConfigRequest{MasterPreference: 2, ClusterLow: 2, ClusterHigh: 9}
	c := event.ConfigRequest{MasterPreference: 3, ClusterLow: 0, ClusterHigh: 30}

	left, _ := Merge(&c, []event.ConfigRequest{a, b})
	right, _ := Merge(&a, []event.ConfigRequest{b, c})

	assert.Equal(t, left, right)
}

func Test_Merge_RequestedPlusExisting(t *testing.T) {
	existing := []event.ConfigRequest{{MasterPreference: 4, ClusterLow: 0, ClusterHigh: config.ClusterIDMax}}
	requested := event.ConfigRequest{Support5gBand: true, MasterPreference: 1, ClusterLow: 0, ClusterHigh: config.ClusterIDMax}

	merged, ok := Merge(&requested, existing)

	assert.True(t, ok)
	assert.True(t, merged.Support5gBand)
	assert.Equal(t, 4, merged.MasterPreference)
}
