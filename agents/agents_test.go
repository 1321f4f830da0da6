package agents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForName(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		agent, err := ForName(name)
		require.NoError(t, err, "agent %q", name)
		assert.Equal(t, name, agent.Name)
		assert.NotEmpty(t, agent.Instructions)
		require.NotNil(t, agent.Tools)
	}
}

func TestForName_Unknown(t *testing.T) {
	t.Parallel()

	_, err := ForName("klm")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown agent")
}

func TestSaudia_ToolSet(t *testing.T) {
	t.Parallel()

	agent := Saudia()
	assert.Equal(t, []string{
		"current_time", "book_flight", "book_hotel", "book_cab", "select_meal", "process_payment",
	}, agent.Tools.Names())
	assert.Contains(t, agent.Instructions, "Saudia Airways")
	assert.Contains(t, agent.Instructions, "book_flight")
}

func TestLufthansa_ToolSet(t *testing.T) {
	t.Parallel()

	agent := Lufthansa()
	assert.Equal(t, []string{"current_time"}, agent.Tools.Names())
	assert.Contains(t, agent.Instructions, "Lufthansa Airways")
}

func TestPizzaCombo_NoTools(t *testing.T) {
	t.Parallel()

	agent := PizzaCombo()
	assert.Equal(t, 0, agent.Tools.Len())
	assert.Nil(t, agent.Tools.Declarations())
	assert.Contains(t, agent.Instructions, "pizza ordering agent")
}
