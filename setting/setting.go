package setting

import (
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
)

type App struct {
	Name    string
	RunMode string
}

type Server struct {
	Host         string
	HttpPort     int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

type Database struct {
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

type Template struct {
	Path       string
	StaticPath string
	LeftDelim  string
	RightDelim string
	AutoReload bool
}

type Log struct {
	Level  string
	Format string
}

type Setting struct {
	App      App
	Server   Server
	Database Database
	Template Template
	Log      Log
}

// Default returns the values used when a key is absent from the file.
func Default() *Setting {
	return &Setting{
		App:    App{Name: "awesome", RunMode: "debug"},
		Server: Server{Host: "127.0.0.1", HttpPort: 9000, ReadTimeout: 60 * time.Second, WriteTimeout: 60 * time.Second},
		Database: Database{
			Host:       "localhost",
			Port:       3306,
			Charset:    "utf8",
			Autocommit: true,
			MaxSize:    10,
			MinSize:    1,
		},
		Template: Template{Path: "templates", StaticPath: "static", LeftDelim: "{{", RightDelim: "}}"},
		Log:      Log{Level: "info", Format: "json"},
	}
}

// Load reads an ini file on top of Default and applies environment overrides.
func Load(path string) (*Setting, error) {
	s := Default()
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrapf(err, "setting: load %s", path)
	}
	sections := map[string]interface{}{
		"app":      &s.App,
		"server":   &s.Server,
		"database": &s.Database,
		"template": &s.Template,
		"log":      &s.Log,
	}
	for name, v := range sections {
		if err := cfg.Section(name).MapTo(v); err != nil {
			return nil, errors.Wrapf(err, "setting: map section %s", name)
		}
	}
	// durations are written in seconds
	if s.Server.ReadTimeout < time.Second {
		s.Server.ReadTimeout *= time.Second
	}
	if s.Server.WriteTimeout < time.Second {
		s.Server.WriteTimeout *= time.Second
	}
	applyEnv(s)
	return s, nil
}

func applyEnv(s *Setting) {
	if v := os.Getenv("AWESOME_DB_PASSWORD"); v != "" {
		s.Database.Password = v
	}
	if v := os.Getenv("AWESOME_HTTP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			s.Server.HttpPort = port
		}
	}
}
