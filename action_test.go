package reduce

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCreateAction(t *testing.T) {
	t.Run("builds tagged actions", func(t *testing.T) {
		increment := CreateAction("counter/increment")

		a := increment.Create(2)

		assert.Equal(t, Action{Type: "counter/increment", Payload: 2}, a)
		assert.Equal(t, "counter/increment", increment.String())
	})

	t.Run("nil payload", func(t *testing.T) {
		a := CreateAction("reset").Create(nil)

		assert.Equal(t, "reset", a.Type)
		assert.Nil(t, a.Payload)
		assert.Nil(t, a.Meta)
	})

	t.Run("prepare shapes payload and meta", func(t *testing.T) {
		add := CreateAction("todos/add", WithPrepare(func(input any) Prepared {
			return Prepared{
				Payload: map[string]any{"title": input},
				Meta:    "prepared",
			}
		}))

		a := add.Create("write tests")

		assert.Equal(t, map[string]any{"title": "write tests"}, a.Payload)
		assert.Equal(t, "prepared", a.Meta)
	})

	t.Run("panicking prepare propagates", func(t *testing.T) {
		bad := CreateAction("bad", WithPrepare(func(any) Prepared { panic("nope") }))

		assert.PanicsWithValue(t, "nope", func() { bad.Create(nil) })
	})

	t.Run("each call builds a fresh action", func(t *testing.T) {
		c := CreateAction("x")

		a := c.Create(1)
		b := c.Create(1)
		a.Payload = 2

		assert.Equal(t, 1, b.Payload)
	})
}

func TestActionCreator_Match(t *testing.T) {
	increment := CreateAction("counter/increment")

	assert.True(t, increment.Match(Action{Type: "counter/increment"}))
	assert.False(t, increment.Match(Action{Type: "counter/decrement"}))
}

func TestPayloadAs(t *testing.T) {
	a := Action{Type: "x", Payload: 42}

	n, ok := PayloadAs[int](a)
	assert.True(t, ok)
	assert.Equal(t, 42, n)

	_, ok = PayloadAs[string](a)
	assert.False(t, ok)

	_, ok = PayloadAs[int](Action{Type: "x"})
	assert.False(t, ok)
}
