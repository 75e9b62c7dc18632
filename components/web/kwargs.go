package web

import (
	"github.com/gin-gonic/gin"
	"github.com/go-awesome/utils"
	"github.com/go-awesome/utils/validate"
	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
)

// Kwargs is the keyword set a handler is invoked with.
type Kwargs map[string]interface{}

// String returns the named value as a string, "" when absent.
func (kw Kwargs) String(name string) string {
	return utils.ToString(kw[name])
}

// Request returns the injected request, nil unless the handler declared it.
func (kw Kwargs) Request() *gin.Context {
	c, _ := kw[RequestParam].(*gin.Context)
	return c
}

// Bind decodes the keywords into dst (a struct pointer) and validates it.
func (kw Kwargs) Bind(dst interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           dst,
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		),
	})
	if err != nil {
		return errors.WithStack(err)
	}
	if err = decoder.Decode(kw.withoutRequest()); err != nil {
		return errors.Wrap(err, "bind keywords")
	}
	return validate.StructParam(dst)
}

func (kw Kwargs) withoutRequest() map[string]interface{} {
	out := make(map[string]interface{}, len(kw))
	for k, v := range kw {
		if k == RequestParam {
			continue
		}
		out[k] = v
	}
	return out
}
