package magnet

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/polarity/internal/core"
)

func TestStateIsACopy(t *testing.T) {
	r := newRun(t, corridor())
	place(t, r, 9, 1, Positive)
	r.Start()
	r.Simulate(10)

	s := r.State()
	s.Poles[0].Strength = 99
	s.Trajectory[0] = core.V(-1, -1)

	again := r.State()
	assert.Equal(t, 1.0, again.Poles[0].Strength)
	assert.NotEqual(t, core.V(-1, -1), again.Trajectory[0])
}

func TestStateHashChanges(t *testing.T) {
	r := newRun(t, corridor())
	place(t, r, 9, 1, Positive)
	r.Start()

	h0 := r.State().Hash()
	r.Tick()
	assert.NotEqual(t, h0, r.State().Hash())
}

func TestStateJSON(t *testing.T) {
	r := newRun(t, corridor())
	place(t, r, 9, 1, Negative)
	r.ActivatePowerUp(PowerUpGhostMode)

	data, err := json.Marshal(r.State())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "designing", decoded["mode"])
	poles := decoded["poles"].([]any)
	require.Len(t, poles, 1)
	assert.Equal(t, "negative", poles[0].(map[string]any)["charge"])
	ups := decoded["power_ups"].([]any)
	assert.Equal(t, "ghost_mode", ups[0].(map[string]any)["kind"])
}
