package models

import (
	"testing"
	"time"

	"github.com/go-awesome/components/orm"
	"github.com/stretchr/testify/assert"
)

func TestNextID(t *testing.T) {
	a, b := NextID(), NextID()
	assert.Len(t, a, 50)
	assert.NotEqual(t, a, b)
}

func TestUserSchema(t *testing.T) {
	assert.Equal(t, "users", User.Table())
	assert.Equal(t, "id", User.PrimaryKey())
	assert.Equal(t, "select `id`, `email`, `passwd`, `admin`, `name`, `image`, `created_at` from `users`", User.SelectSQL())
	assert.Equal(t, "insert into `users` (`email`, `passwd`, `admin`, `name`, `image`, `created_at`, `id`) values (?, ?, ?, ?, ?, ?, ?)", User.InsertSQL())

	s, ok := orm.Lookup("User")
	assert.True(t, ok)
	assert.Same(t, User, s)
}

func TestUserDefaults(t *testing.T) {
	before := float64(time.Now().Unix())
	u := NewUser(orm.Values{"email": "a@example.com"})

	id, _ := u.GetValueOrDefault("id").(string)
	assert.Len(t, id, 50)
	assert.Equal(t, false, u.GetValueOrDefault("admin"))
	created, _ := u.GetValueOrDefault("created_at").(float64)
	assert.GreaterOrEqual(t, created, before)
	assert.Nil(t, u.GetValueOrDefault("name"))
}
