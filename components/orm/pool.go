package orm

import (
	"context"
	"net"
	"strconv"

	"github.com/go-awesome/iface/executor"
	"github.com/go-awesome/logging"
	"github.com/go-sql-driver/mysql"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/pkg/errors"
)

type PoolConfig struct {
	Host       string
	Port       int
	User       string
	Password   string
	Db         string
	Charset    string
	Autocommit bool
	MaxSize    int
	MinSize    int
	LogSQL     bool
}

// DSN renders the go-sql-driver data source name.
func (c PoolConfig) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	cfg.DBName = c.Db
	cfg.Params = map[string]string{
		"charset":    c.Charset,
		"autocommit": strconv.FormatBool(c.Autocommit),
	}
	return cfg.FormatDSN()
}

// Pool is the shared connection pool. It is created once at startup and
// passed to every model call.
type Pool struct {
	db *gorm.DB
}

var _ executor.Executor = (*Pool)(nil)

func CreatePool(c PoolConfig) (*Pool, error) {
	logging.Info().Str("host", c.Host).Int("port", c.Port).Str("db", c.Db).Msg("create database connection pool")
	db, err := gorm.Open("mysql", c.DSN())
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	db.DB().SetMaxOpenConns(c.MaxSize)
	db.DB().SetMaxIdleConns(c.MinSize)
	return NewPool(db, c.LogSQL), nil
}

// NewPool wraps an opened gorm handle.
func NewPool(db *gorm.DB, logSQL bool) *Pool {
	db.SetLogger(gorm.Logger{LogWriter: logging.GormWriter{}})
	db.LogMode(logSQL)
	return &Pool{db: db}
}

func (p *Pool) DB() *gorm.DB {
	return p.db
}

func (p *Pool) Close() error {
	logging.Info().Msg("close database connection pool")
	return p.db.Close()
}

func startSpan(ctx context.Context, op, query string) opentracing.Span {
	if ctx == nil {
		ctx = context.Background()
	}
	span, _ := opentracing.StartSpanFromContext(ctx, op)
	ext.DBType.Set(span, "sql")
	ext.DBStatement.Set(span, query)
	return span
}

func (p *Pool) Select(ctx context.Context, query string, args []interface{}, size int) ([]executor.Row, error) {
	span := startSpan(ctx, "orm.select", query)
	defer span.Finish()

	rows, err := p.db.Raw(query, args...).Rows()
	if err != nil {
		ext.Error.Set(span, true)
		return nil, errors.Wrap(err, "select")
	}
	defer func() {
		if closeErr := rows.Close(); closeErr != nil {
			logging.Warn().Err(closeErr).Msg("close rows")
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.Wrap(err, "select columns")
	}
	var rs []executor.Row
	for rows.Next() {
		if size > 0 && len(rs) >= size {
			break
		}
		current := makeResultReceiver(len(columns))
		if err := rows.Scan(current...); err != nil {
			return nil, errors.Wrap(err, "select scan")
		}
		row := make(executor.Row, len(columns))
		for i, col := range columns {
			val := *(current[i]).(*interface{})
			if b, ok := val.([]byte); ok {
				val = string(b)
			}
			row[col] = val
		}
		rs = append(rs, row)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "select rows")
	}
	logging.Debug().Int("rows", len(rs)).Msg("rows returned")
	return rs, nil
}

func (p *Pool) Execute(ctx context.Context, query string, args []interface{}) (int64, error) {
	span := startSpan(ctx, "orm.execute", query)
	defer span.Finish()

	res := p.db.Exec(query, args...)
	if res.Error != nil {
		ext.Error.Set(span, true)
		return 0, errors.Wrap(res.Error, "execute")
	}
	logging.Debug().Int64("rows", res.RowsAffected).Msg("rows affected")
	return res.RowsAffected, nil
}

func makeResultReceiver(length int) []interface{} {
	result := make([]interface{}, 0, length)
	for i := 0; i < length; i++ {
		var current interface{}
		result = append(result, &current)
	}
	return result
}
