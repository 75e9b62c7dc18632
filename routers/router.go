package routers

import (
	"github.com/gin-gonic/gin"
	"github.com/go-awesome/components/orm"
	"github.com/go-awesome/components/orm/condition"
	"github.com/go-awesome/components/web"
	"github.com/go-awesome/iface/executor"
	"github.com/go-awesome/routers/api"
	"github.com/go-awesome/setting"
)

func Routes(exec executor.Executor) []*web.Route {
	users := &api.Users{Exec: exec}
	return []*web.Route{
		web.Get("/", users.Index),
		web.Get("/api/users", users.List, web.VarKeywords("kw")),
		web.Get("/api/users/:id", users.Get, web.Arg("id"), web.KeywordOnlyDefault("fields", "")),
		web.Post("/api/users", users.Create,
			web.KeywordOnly("email"), web.KeywordOnly("name"), web.KeywordOnly("passwd"), web.KeywordOnlyDefault("image", "")),
		web.Post("/api/users/:id", users.Update,
			web.Arg("id"), web.KeywordOnlyDefault("name", ""), web.KeywordOnlyDefault("image", "")),
		web.Post("/api/users/:id/delete", users.Delete, web.Arg("id")),
	}
}

// InitRouter builds the application. Templates and static files are skipped
// when their paths are empty.
func InitRouter(exec executor.Executor, tpl setting.Template) (*web.App, error) {
	r := gin.New()
	app := web.New(r)
	app.Use(gin.Recovery(), web.Logger(), web.Tracing(), web.ErrorBoundary(orm.ErrInvalidLimit, condition.ErrInvalidOperator))

	if tpl.Path != "" {
		err := web.InitTemplates(app, web.TemplateOptions{
			Path:       tpl.Path,
			LeftDelim:  tpl.LeftDelim,
			RightDelim: tpl.RightDelim,
			AutoReload: tpl.AutoReload,
		})
		if err != nil {
			return nil, err
		}
	}
	if tpl.StaticPath != "" {
		web.AddStatic(app, tpl.StaticPath)
	}
	if err := web.AddRoutes(app, Routes(exec)...); err != nil {
		return nil, err
	}
	return app, nil
}
