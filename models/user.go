package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-awesome/components/orm"
	"github.com/google/uuid"
)

// NextID returns a 50 character id that sorts by creation time.
func NextID() string {
	now := time.Now()
	return fmt.Sprintf("%015d%s000", now.UnixNano()/int64(time.Millisecond), strings.ReplaceAll(uuid.New().String(), "-", ""))
}

// Now returns the current unix time in seconds.
func Now() float64 {
	return float64(time.Now().UnixNano()) / 1e9
}

var User = orm.MustDefine("User", "users", orm.Mappings{
	{Attr: "id", Field: orm.StringField(orm.PrimaryKey(), orm.Default(NextID), orm.DDL("varchar(50)"))},
	{Attr: "email", Field: orm.StringField(orm.DDL("varchar(50)"))},
	{Attr: "passwd", Field: orm.StringField(orm.DDL("varchar(50)"))},
	{Attr: "admin", Field: orm.BooleanField()},
	{Attr: "name", Field: orm.StringField(orm.DDL("varchar(50)"))},
	{Attr: "image", Field: orm.StringField(orm.DDL("varchar(500)"))},
	{Attr: "created_at", Field: orm.FloatField(orm.Default(Now))},
})

// NewUser creates an unsaved user record.
func NewUser(values orm.Values) *orm.Model {
	return User.New(values)
}
