package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardFilter(t *testing.T) {
	in := NewStandardFilter(In, []string{"a", "b"}, false)
	assert.True(t, in.Filter([]string{"x", "a"}))
	assert.False(t, in.Filter([]string{"x"}))
	assert.True(t, in.Filter(nil))

	strict := NewStandardFilter(In, []string{"a"}, true)
	assert.False(t, strict.Filter(nil))

	notIn := NewStandardFilter(NotIn, []string{"a"}, false)
	assert.False(t, notIn.Accepts("a"))
	assert.True(t, notIn.Accepts("b"))
	assert.False(t, NewStandardFilter(NotIn, nil, false).Accepts("b"))
	assert.Panics(t, func() { NewStandardFilter(Operator("between"), []string{"a"}, false).Accepts("a") })
}

func TestOutput(t *testing.T) {
	o := New([]string{"id", "email", "passwd", "name"}, []string{"id", "name", "passwd"}, "passwd")
	assert.Equal(t, []string{"id", "email", "name"}, o.Available)
	assert.Equal(t, []string{"id", "name"}, o.Default)

	fields, err := o.Select("")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "name"}, fields)

	fields, err = o.Select("email, id,email")
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "id"}, fields)

	_, err = o.Select("passwd")
	assert.EqualError(t, err, "unknown field: passwd")

	assert.Equal(t,
		map[string]interface{}{"id": "1", "name": "n"},
		Project(map[string]interface{}{"id": "1", "name": "n", "passwd": "x"}, []string{"id", "name", "image"}))
}

func TestOutputWithoutHidden(t *testing.T) {
	o := New([]string{"id", "name"}, nil)
	assert.Equal(t, []string{"id", "name"}, o.Available)
	assert.Equal(t, []string{"id", "name"}, o.Default)
}
