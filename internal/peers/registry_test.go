package peers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liftedinit/chaind/internal/peers"
)

func TestRegisterNormalizesAddresses(t *testing.T) {
	tests := []struct {
		address string
		want    string
	}{
		{"http://192.168.0.5:5000", "192.168.0.5:5000"},
		{"https://node.example.com:5001", "node.example.com:5001"},
		{"192.168.0.5:5000", "192.168.0.5:5000"},
		{"http://192.168.0.5:5000/chain", "192.168.0.5:5000"},
		{" 192.168.0.5:5000 ", "192.168.0.5:5000"},
	}

	for _, tt := range tests {
		registry := peers.NewRegistry()
		identity, err := registry.Register(tt.address)
		require.NoError(t, err, tt.address)
		assert.Equal(t, tt.want, identity, tt.address)
		assert.Equal(t, []string{tt.want}, registry.List())
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	registry := peers.NewRegistry()

	for i := 0; i < 3; i++ {
		_, err := registry.Register("http://10.0.0.1:5000")
		require.NoError(t, err)
	}
	// The same node behind a different spelling collapses too.
	_, err := registry.Register("10.0.0.1:5000")
	require.NoError(t, err)

	assert.Equal(t, []string{"10.0.0.1:5000"}, registry.List())
}

func TestRegisterRejectsUnusableAddresses(t *testing.T) {
	registry := peers.NewRegistry()

	for _, address := range []string{"", "   ", "http://"} {
		_, err := registry.Register(address)
		assert.Error(t, err, "address %q", address)
	}
	assert.Empty(t, registry.List())
}

func TestListIsSorted(t *testing.T) {
	registry := peers.NewRegistry()
	for _, address := range []string{"c.example.com:5000", "a.example.com:5000", "b.example.com:5000"} {
		_, err := registry.Register(address)
		require.NoError(t, err)
	}

	assert.Equal(t, []string{"a.example.com:5000", "b.example.com:5000", "c.example.com:5000"}, registry.List())
}
