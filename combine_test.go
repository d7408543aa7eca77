package reduce

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCombined() (*CombinedReducer, *HandlerReducer[counterState], *HandlerReducer[todoState]) {
	counter := CreateReducer(counterState{}, HandlerMap[counterState]{
		"counter/increment": func(d *counterState, _ Action) { d.Value++ },
	})
	todos := CreateReducer(todoState{Items: []string{"a"}}, HandlerMap[todoState]{
		"todos/add": func(d *todoState, a Action) {
			s, _ := PayloadAs[string](a)
			d.Items = append(d.Items, s)
		},
	})
	root := Combine(map[string]Reducer[any]{
		"todos":   Erase(todos),
		"counter": Erase(counter),
	})
	return root, counter, todos
}

func mapPointer(m map[string]any) uintptr {
	return reflect.ValueOf(m).Pointer()
}

func TestCombine_Keys(t *testing.T) {
	root, _, _ := newCombined()

	assert.Equal(t, []string{"counter", "todos"}, root.Keys())
}

func TestCombine_Initial(t *testing.T) {
	root, _, _ := newCombined()

	state := root.Initial()

	assert.Equal(t, counterState{}, state["counter"])
	assert.Equal(t, todoState{Items: []string{"a"}}, state["todos"])
}

func TestCombine_UnhandledActionReturnsSameMap(t *testing.T) {
	root, _, _ := newCombined()
	state := root.Initial()

	next := root.Reduce(state, Action{Type: "unrelated"})

	assert.Equal(t, mapPointer(state), mapPointer(next))
}

func TestCombine_UpdatesOnlyAffectedKey(t *testing.T) {
	root, _, _ := newCombined()
	state := root.Initial()

	next := root.Reduce(state, Action{Type: "counter/increment"})

	assert.NotEqual(t, mapPointer(state), mapPointer(next))
	assert.Equal(t, counterState{}, state["counter"])
	assert.Equal(t, counterState{Value: 1}, next["counter"])

	prevTodos, _ := Select[todoState](state, "todos")
	nextTodos, _ := Select[todoState](next, "todos")
	assert.Same(t, &prevTodos.Items[0], &nextTodos.Items[0])
}

func TestCombine_MissingKeyStartsFromInitial(t *testing.T) {
	root, _, _ := newCombined()
	partial := map[string]any{"counter": counterState{Value: 5}}

	next := root.Reduce(partial, Action{Type: "noop"})

	require.Len(t, next, 2)
	assert.Equal(t, counterState{Value: 5}, next["counter"])
	assert.Equal(t, todoState{Items: []string{"a"}}, next["todos"])
}

func TestCombine_DropsUnknownKeys(t *testing.T) {
	root, _, _ := newCombined()
	state := root.Initial()
	state["stale"] = 1

	next := root.Reduce(state, Action{Type: "noop"})

	assert.NotContains(t, next, "stale")
}

func TestErase_WrongTypeFallsBackToInitial(t *testing.T) {
	_, counter, _ := newCombined()
	r := Erase[counterState](counter)

	next := r.Reduce("not a counter", Action{Type: "counter/increment"})

	assert.Equal(t, counterState{Value: 1}, next)
}

func TestSelect(t *testing.T) {
	state := map[string]any{"n": 1}

	n, ok := Select[int](state, "n")
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	_, ok = Select[string](state, "n")
	assert.False(t, ok)
}

type pointerCounter struct {
	Value int
}

func TestCombine_PointerSubState(t *testing.T) {
	counter := CreateReducer(&pointerCounter{}, HandlerMap[*pointerCounter]{
		"counter/increment": func(d **pointerCounter, _ Action) { (*d).Value++ },
	})
	root := Combine(map[string]Reducer[any]{
		"counter": Erase[*pointerCounter](counter),
	})
	state := root.Initial()

	var next map[string]any
	require.NotPanics(t, func() {
		next = root.Reduce(state, Action{Type: "unrelated"})
	})
	assert.Equal(t, mapPointer(state), mapPointer(next))

	next = root.Reduce(state, Action{Type: "counter/increment"})
	c, ok := Select[*pointerCounter](next, "counter")
	require.True(t, ok)
	assert.Equal(t, 1, c.Value)
	assert.Equal(t, 0, state["counter"].(*pointerCounter).Value)
}
