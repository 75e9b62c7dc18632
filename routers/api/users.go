package api

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"strings"

	"github.com/go-awesome/components/orm"
	"github.com/go-awesome/components/orm/condition"
	"github.com/go-awesome/components/output"
	"github.com/go-awesome/components/web"
	"github.com/go-awesome/iface/executor"
	"github.com/go-awesome/iface/validator"
	"github.com/go-awesome/models"
	"github.com/go-awesome/utils"
	"github.com/go-awesome/utils/validate"
	"github.com/go-awesome/validators/query"
	"github.com/pkg/errors"
	"github.com/unknwon/com"
)

const (
	defaultImage = "about:blank"
	defaultOrder = "created_at desc"
)

var userOutput = output.New(append([]string{models.User.PrimaryKey()}, models.User.Fields()...), nil, "passwd")

var userFilters = map[string]validator.Validator{
	"email": query.ListFilter{MaxLen: 500},
	"name":  query.LikeFilter{},
	"admin": query.BoolFilter{},
}

var userOrders = []string{"created_at", "name", "email"}

// Users serves the user resource.
type Users struct {
	Exec executor.Executor
}

type createUser struct {
	Email  string `mapstructure:"email" validate:"required,email,max=50"`
	Name   string `mapstructure:"name" validate:"required,max=50"`
	Passwd string `mapstructure:"passwd" validate:"required,min=6,max=50"`
	Image  string `mapstructure:"image" validate:"omitempty,max=500"`
}

type updateUser struct {
	ID    string `mapstructure:"id" validate:"required"`
	Name  string `mapstructure:"name" validate:"omitempty,max=50"`
	Image string `mapstructure:"image" validate:"omitempty,max=500"`
}

func bind(kw web.Kwargs, dst interface{}) error {
	if err := kw.Bind(dst); err != nil {
		var fe *validate.FieldError
		if errors.As(err, &fe) {
			return web.APIValueError(fe.Field, fe.Message)
		}
		return err
	}
	return nil
}

func public(u *orm.Model, fields []string) map[string]interface{} {
	return output.Project(u.Values(), fields)
}

func publicAll(users []*orm.Model, fields []string) []map[string]interface{} {
	out := make([]map[string]interface{}, 0, len(users))
	for _, u := range users {
		out = append(out, public(u, fields))
	}
	return out
}

func hashPasswd(id, passwd string) string {
	sum := sha1.Sum([]byte(id + ":" + passwd))
	return hex.EncodeToString(sum[:])
}

func (h *Users) where(kw web.Kwargs) ([]orm.QueryOption, error) {
	params, err := query.Conditions("", kw, userFilters)
	if err != nil {
		return nil, err
	}
	if len(params) == 0 {
		return nil, nil
	}
	where, args, err := condition.Build(params)
	if err != nil {
		return nil, err
	}
	return []orm.QueryOption{orm.Where(where, args...)}, nil
}

func (h *Users) find(ctx context.Context, id string) (*orm.Model, error) {
	u, err := models.User.Find(ctx, h.Exec, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, web.APIResourceNotFoundError("user", "user "+id+" not found")
	}
	return u, nil
}

// List pages through users, filtered by email, name and admin.
func (h *Users) List(ctx context.Context, kw web.Kwargs) (interface{}, error) {
	p, err := query.ParsePagination(kw)
	if err != nil {
		return nil, err
	}
	fields, err := userOutput.Select(kw.String("fields"))
	if err != nil {
		return nil, err
	}
	order := defaultOrder
	if v := kw.String("order_by"); v != "" {
		order = v
	}
	if order, err = query.ParseOrder(order, userOrders...); err != nil {
		return nil, err
	}
	opts, err := h.where(kw)
	if err != nil {
		return nil, err
	}

	num, err := models.User.FindNumber(ctx, h.Exec, "count(`id`)", opts...)
	if err != nil {
		return nil, err
	}
	total, err := com.StrTo(utils.ToString(num)).Int()
	if err != nil {
		total = 0
	}
	p.Init(total)
	if p.Empty() {
		return map[string]interface{}{"page": p, "users": []map[string]interface{}{}}, nil
	}

	users, err := models.User.FindAll(ctx, h.Exec, append(opts, orm.OrderBy(order), p.Limit())...)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"page": p, "users": publicAll(users, fields)}, nil
}

func (h *Users) Get(ctx context.Context, kw web.Kwargs) (interface{}, error) {
	fields, err := userOutput.Select(kw.String("fields"))
	if err != nil {
		return nil, err
	}
	u, err := h.find(ctx, kw.String("id"))
	if err != nil {
		return nil, err
	}
	return public(u, fields), nil
}

// Create registers a user; the email must not be taken.
func (h *Users) Create(ctx context.Context, kw web.Kwargs) (interface{}, error) {
	var in createUser
	if err := bind(kw, &in); err != nil {
		return nil, err
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)

	existing, err := models.User.FindAll(ctx, h.Exec, orm.Where("`email`=?", in.Email))
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, web.NewAPIError("register:failed", "email", "Email is already in use.")
	}

	image := in.Image
	if image == "" {
		image = defaultImage
	}
	id := models.NextID()
	u := models.NewUser(orm.Values{
		"id":     id,
		"email":  in.Email,
		"name":   in.Name,
		"passwd": hashPasswd(id, in.Passwd),
		"image":  image,
	})
	if err = u.Save(ctx, h.Exec); err != nil {
		return nil, err
	}
	return public(u, userOutput.Default), nil
}

// Update changes the name and image of a user.
func (h *Users) Update(ctx context.Context, kw web.Kwargs) (interface{}, error) {
	var in updateUser
	if err := bind(kw, &in); err != nil {
		return nil, err
	}
	u, err := h.find(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if in.Name = strings.TrimSpace(in.Name); in.Name != "" {
		u.Set("name", in.Name)
	}
	if in.Image != "" {
		u.Set("image", in.Image)
	}
	if err = u.Update(ctx, h.Exec); err != nil {
		return nil, err
	}
	return public(u, userOutput.Default), nil
}

func (h *Users) Delete(ctx context.Context, kw web.Kwargs) (interface{}, error) {
	id := kw.String("id")
	u, err := h.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if err = u.Remove(ctx, h.Exec); err != nil {
		return nil, err
	}
	return map[string]interface{}{"id": id}, nil
}

// Index renders the home page with the latest users.
func (h *Users) Index(ctx context.Context, kw web.Kwargs) (interface{}, error) {
	users, err := models.User.FindAll(ctx, h.Exec, orm.OrderBy("`created_at` desc"), orm.Limit(query.DefaultPageSize))
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		web.TemplateKey: "index.html",
		"users":         publicAll(users, userOutput.Default),
	}, nil
}
