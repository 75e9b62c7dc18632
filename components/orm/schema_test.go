package orm

import (
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func userMappings() Mappings {
	return Mappings{
		{"id", IntegerField(PrimaryKey())},
		{"email", StringField(DDL("varchar(50)"))},
		{"passwd", StringField(DDL("varchar(50)"))},
		{"admin", BooleanField()},
		{"name", StringField(DDL("varchar(50)"))},
		{"image", StringField(DDL("varchar(500)"))},
		{"created_at", FloatField()},
	}
}

func TestDefineTemplates(t *testing.T) {
	s, err := Define("User", "users", userMappings())
	require.NoError(t, err)

	assert.Equal(t, "users", s.Table())
	assert.Equal(t, "id", s.PrimaryKey())
	assert.Equal(t, []string{"email", "passwd", "admin", "name", "image", "created_at"}, s.Fields())
	assert.Equal(t, "select `id`, `email`, `passwd`, `admin`, `name`, `image`, `created_at` from `users`", s.SelectSQL())
	assert.Equal(t, "insert into `users` (`email`, `passwd`, `admin`, `name`, `image`, `created_at`, `id`) values (?, ?, ?, ?, ?, ?, ?)", s.InsertSQL())
	assert.Equal(t, "update `users` set `email`=?, `passwd`=?, `admin`=?, `name`=?, `image`=?, `created_at`=? where `id`=?", s.UpdateSQL())
	assert.Equal(t, "delete from `users` where `id`=?", s.DeleteSQL())
}

func TestInsertPlaceholderCount(t *testing.T) {
	for n := 0; n < 5; n++ {
		mappings := Mappings{{"pk", StringField(PrimaryKey())}}
		for i := 0; i < n; i++ {
			mappings = append(mappings, Mapping{Attr: string(rune('a' + i)), Field: IntegerField()})
		}
		s, err := Define("Counted", "", mappings)
		require.NoError(t, err)
		assert.Equal(t, n+1, strings.Count(s.InsertSQL(), "?"), "non-key fields: %d", n)
	}
}

func TestDefinePrimaryKeyErrors(t *testing.T) {
	_, err := Define("NoKey", "", Mappings{{"name", StringField()}})
	assert.True(t, errors.Is(err, ErrPrimaryKeyNotFound))

	_, err = Define("TwoKeys", "", Mappings{
		{"id", IntegerField(PrimaryKey())},
		{"code", StringField(PrimaryKey())},
	})
	assert.True(t, errors.Is(err, ErrDuplicatePrimaryKey))

	_, err = Define("Empty", "", nil)
	assert.True(t, errors.Is(err, ErrPrimaryKeyNotFound))

	assert.Panics(t, func() { MustDefine("Panics", "", Mappings{{"name", StringField()}}) })
}

func TestDefineDuplicateAttribute(t *testing.T) {
	_, err := Define("Dup", "", Mappings{
		{"id", IntegerField(PrimaryKey())},
		{"id", StringField()},
	})
	assert.True(t, errors.Is(err, ErrDuplicateAttribute))
}

func TestDefineColumnOverride(t *testing.T) {
	s, err := Define("Blog", "", Mappings{
		{"id", StringField(PrimaryKey(), Column("blog_id"))},
		{"title", StringField(Column("blog_title"))},
	})
	require.NoError(t, err)

	assert.Equal(t, "Blog", s.Table())
	assert.Equal(t, "select `blog_id`, `blog_title` from `Blog`", s.SelectSQL())
	assert.Equal(t, "update `Blog` set `blog_title`=? where `blog_id`=?", s.UpdateSQL())
	assert.Equal(t, "title", s.Attr("blog_title"))
	assert.Equal(t, "_num_", s.Attr("_num_"))
}

func TestDefineOnlyPrimaryKey(t *testing.T) {
	s, err := Define("Tag", "tags", Mappings{{"name", StringField(PrimaryKey())}})
	require.NoError(t, err)
	assert.Equal(t, "select `name` from `tags`", s.SelectSQL())
	assert.Equal(t, "insert into `tags` (`name`) values (?)", s.InsertSQL())
	assert.Equal(t, "", s.UpdateSQL())
}

func TestRegistry(t *testing.T) {
	s := MustDefine("Registered", "registered", Mappings{{"id", IntegerField(PrimaryKey())}})
	got, ok := Lookup("Registered")
	require.True(t, ok)
	assert.Same(t, s, got)

	names := make([]string, 0)
	for _, sc := range Schemas() {
		names = append(names, sc.Name())
	}
	assert.Contains(t, names, "Registered")
	assert.IsNonDecreasing(t, names)
}

func TestCreateTableSQL(t *testing.T) {
	s := MustDefine("Ddl", "ddl", Mappings{
		{"id", StringField(PrimaryKey(), DDL("varchar(50)"))},
		{"admin", BooleanField()},
		{"content", TextField()},
	})
	assert.Equal(t, "create table if not exists `ddl` (\n"+
		"  `id` varchar(50) not null,\n"+
		"  `admin` boolean,\n"+
		"  `content` mediumtext,\n"+
		"  primary key (`id`)\n"+
		") engine=innodb default charset=utf8", s.CreateTableSQL())
}

func TestFieldDefaults(t *testing.T) {
	assert.Nil(t, StringField().DefaultValue())
	assert.Equal(t, int64(0), IntegerField().DefaultValue())
	assert.Equal(t, false, BooleanField().DefaultValue())
	assert.Equal(t, 0.0, FloatField().DefaultValue())
	assert.False(t, TextField().HasDefault())

	calls := 0
	f := StringField(Default(func() interface{} {
		calls++
		return "generated"
	}))
	assert.Equal(t, "generated", f.DefaultValue())
	assert.Equal(t, "generated", f.DefaultValue())
	assert.Equal(t, 2, calls)

	assert.Equal(t, "<Field, bigint:id>", IntegerField(Column("id")).String())
}
