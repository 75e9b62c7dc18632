package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackquote(t *testing.T) {
	assert.Equal(t, "`users`", Backquote("users"))
	assert.Equal(t, "`a``b`", Backquote("a`b"))
	assert.Equal(t, []string{"`id`", "`name`"}, BackquoteAll([]string{"id", "name"}))
}

func TestPlaceholders(t *testing.T) {
	assert.Equal(t, "", Placeholders(0))
	assert.Equal(t, "?", Placeholders(1))
	assert.Equal(t, "?, ?, ?", Placeholders(3))
}

func TestFlatten(t *testing.T) {
	assert.Equal(t, []interface{}{1, 2}, Flatten([]int{1, 2}))
	assert.Equal(t, []interface{}{"a"}, Flatten("a"))
	assert.Equal(t, []interface{}{[]byte("ab")}, Flatten([]byte("ab")))
}

func TestToString(t *testing.T) {
	assert.Equal(t, "", ToString(nil))
	assert.Equal(t, "abc", ToString([]byte("abc")))
	assert.Equal(t, "42", ToString(int64(42)))
	assert.Equal(t, "1.5", ToString(1.5))
	assert.Equal(t, "true", ToString(true))
}

func TestSplit(t *testing.T) {
	assert.Equal(t, []string{}, Split("", ","))
	assert.Equal(t, []string{"a", "b"}, Split("a,b", ","))
}
