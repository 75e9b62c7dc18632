package web

import (
	"html/template"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

var ErrNoTemplates = errors.New("templates not initialized")

// App is a gin engine plus the template set used by the response coercion.
type App struct {
	*gin.Engine

	mu        sync.RWMutex
	templates *template.Template
	loader    func() (*template.Template, error)
	reload    bool
}

func New(engine *gin.Engine) *App {
	return &App{Engine: engine}
}

// SetTemplates replaces the template set.
func (a *App) SetTemplates(t *template.Template) {
	a.mu.Lock()
	a.templates = t
	a.mu.Unlock()
}

func (a *App) template() (*template.Template, error) {
	if a.reload && a.loader != nil {
		t, err := a.loader()
		if err != nil {
			return nil, err
		}
		a.SetTemplates(t)
		return t, nil
	}
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.templates == nil {
		return nil, ErrNoTemplates
	}
	return a.templates, nil
}
