package draft

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name string
	Tags []string
}

type todo struct {
	Title string
	Done  bool
}

type appState struct {
	Count   int
	User    *profile
	Todos   []todo
	Index   map[string]int
	Extra   any
	private []int
}

func samePointer(t *testing.T, want, got any) {
	t.Helper()
	assert.Equal(t, reflect.ValueOf(want).Pointer(), reflect.ValueOf(got).Pointer())
}

func fixture() appState {
	return appState{
		Count:   1,
		User:    &profile{Name: "ada", Tags: []string{"admin"}},
		Todos:   []todo{{Title: "a"}, {Title: "b"}},
		Index:   map[string]int{"a": 0, "b": 1},
		Extra:   map[string]any{"theme": "dark"},
		private: []int{1, 2},
	}
}

func TestProduce_NoChangeReturnsBase(t *testing.T) {
	base := fixture()

	next := Produce(base, func(d *appState) {})

	samePointer(t, base.User, next.User)
	samePointer(t, base.Todos, next.Todos)
	samePointer(t, base.Index, next.Index)
	samePointer(t, base.Extra, next.Extra)
}

func TestProduce_WriteOfSameValueIsNoChange(t *testing.T) {
	base := map[string]int{"a": 1}

	next := Produce(base, func(d *map[string]int) {
		(*d)["a"] = 1
	})

	samePointer(t, base, next)
}

func TestProduce_ScalarChangeSharesSiblings(t *testing.T) {
	base := fixture()

	next := Produce(base, func(d *appState) {
		d.Count = 5
	})

	assert.Equal(t, 1, base.Count)
	assert.Equal(t, 5, next.Count)
	samePointer(t, base.User, next.User)
	samePointer(t, base.Todos, next.Todos)
	samePointer(t, base.Index, next.Index)
	samePointer(t, base.Extra, next.Extra)
}

func TestProduce_NestedChangeCopiesPath(t *testing.T) {
	base := fixture()

	next := Produce(base, func(d *appState) {
		d.User.Name = "grace"
	})

	assert.Equal(t, "ada", base.User.Name)
	assert.Equal(t, "grace", next.User.Name)
	assert.NotSame(t, base.User, next.User)
	samePointer(t, base.User.Tags, next.User.Tags)
	samePointer(t, base.Todos, next.Todos)
}

func TestProduce_SliceAppendDoesNotTouchBase(t *testing.T) {
	base := fixture()

	next := Produce(base, func(d *appState) {
		d.Todos = append(d.Todos, todo{Title: "c"})
		d.Todos[0].Done = true
	})

	require.Len(t, base.Todos, 2)
	assert.False(t, base.Todos[0].Done)
	require.Len(t, next.Todos, 3)
	assert.True(t, next.Todos[0].Done)
	assert.Equal(t, "c", next.Todos[2].Title)
}

func TestProduce_MapDeleteAndInsert(t *testing.T) {
	base := fixture()

	next := Produce(base, func(d *appState) {
		delete(d.Index, "a")
		d.Index["c"] = 2
	})

	assert.Equal(t, map[string]int{"a": 0, "b": 1}, base.Index)
	assert.Equal(t, map[string]int{"b": 1, "c": 2}, next.Index)
	samePointer(t, base.User, next.User)
}

func TestProduce_InterfaceHoldingMap(t *testing.T) {
	base := fixture()

	next := Produce(base, func(d *appState) {
		d.Extra.(map[string]any)["theme"] = "light"
	})

	assert.Equal(t, "dark", base.Extra.(map[string]any)["theme"])
	assert.Equal(t, "light", next.Extra.(map[string]any)["theme"])
}

func TestProduce_PointerState(t *testing.T) {
	base := &profile{Name: "ada", Tags: []string{"x"}}

	same := Produce(base, func(d **profile) {})
	assert.Same(t, base, same)

	next := Produce(base, func(d **profile) {
		(*d).Tags = append((*d).Tags, "y")
	})
	assert.NotSame(t, base, next)
	assert.Equal(t, []string{"x"}, base.Tags)
	assert.Equal(t, []string{"x", "y"}, next.Tags)
}

func TestProduce_UnexportedFieldsAreShared(t *testing.T) {
	base := fixture()

	next := Produce(base, func(d *appState) {
		d.Count++
	})

	samePointer(t, base.private, next.private)
}

func TestProduce_PanicLeavesBaseUntouched(t *testing.T) {
	base := fixture()

	assert.Panics(t, func() {
		Produce(base, func(d *appState) {
			d.User.Name = "mallory"
			panic("boom")
		})
	})
	assert.Equal(t, "ada", base.User.Name)
}

func TestProduce_NilToValue(t *testing.T) {
	base := appState{}

	next := Produce(base, func(d *appState) {
		d.Index = map[string]int{"a": 1}
	})

	assert.Nil(t, base.Index)
	assert.Equal(t, 1, next.Index["a"])
}

func TestClone_IsIndependent(t *testing.T) {
	base := fixture()

	c := Clone(base)
	c.User.Name = "changed"
	c.Index["a"] = 9

	assert.Equal(t, "ada", base.User.Name)
	assert.Equal(t, 0, base.Index["a"])
}

func TestChanged(t *testing.T) {
	base := fixture()

	assert.False(t, Changed(base, base))
	assert.False(t, Changed(base, Clone(base)))

	next := Clone(base)
	next.Todos[1].Title = "z"
	assert.True(t, Changed(base, next))
}

type node struct {
	Label string
	Next  *node
}

type linked struct {
	Head *node
	tail *node
}

func TestChanged_Pointers(t *testing.T) {
	p := &node{Label: "a"}

	assert.NotPanics(t, func() {
		assert.False(t, Changed(p, p))
	})
	assert.False(t, Changed(p, &node{Label: "a"}))
	assert.True(t, Changed(p, &node{Label: "b"}))
}

func TestChanged_StructWithPointerField(t *testing.T) {
	s := linked{Head: &node{Label: "a", Next: &node{Label: "b"}}}

	assert.NotPanics(t, func() {
		assert.False(t, Changed(s, s))
	})

	next := Clone(s)
	next.Head.Next.Label = "c"
	assert.True(t, Changed(s, next))
}

func TestProduce_UnexportedPointerField(t *testing.T) {
	n := &node{Label: "t"}
	base := linked{Head: &node{Label: "h"}, tail: n}

	var next linked
	require.NotPanics(t, func() {
		next = Produce(base, func(d *linked) {
			d.Head.Label = "h2"
		})
	})
	assert.Equal(t, "h2", next.Head.Label)
	assert.Same(t, n, next.tail)

	same := Produce(base, func(d *linked) {})
	assert.Same(t, base.Head, same.Head)
}
