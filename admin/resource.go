package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/kianvosoft/site-backend/errs"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var uuidType = reflect.TypeOf(uuid.UUID{})

type defaulter interface {
	SetDefaults()
}

// ListParams selects one page of an entity list.
type ListParams struct {
	Query   string
	Filters map[string]string
	Page    int
	PerPage int
}

// ListResult is one page of items plus the total matching count.
type ListResult[T any] struct {
	Items   []*T  `json:"items"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	PerPage int   `json:"perPage"`
}

// Resource is the CRUD engine for one model type, driven by its Descriptor.
type Resource[T any] struct {
	desc     Descriptor
	db       *gorm.DB
	validate *validator.Validate
	schema   *schema.Schema
	fields   map[string]*schema.Field // by json name
}

func NewResource[T any](db *gorm.DB, validate *validator.Validate, desc Descriptor) (*Resource[T], error) {
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("parse %s schema: %w", desc.Name, err)
	}

	fields := make(map[string]*schema.Field, len(stmt.Schema.FieldsByDBName))
	for _, f := range stmt.Schema.FieldsByDBName {
		name := jsonName(f)
		if name == "" {
			continue
		}
		fields[name] = f
	}

	r := &Resource[T]{
		desc:     desc,
		db:       db,
		validate: validate,
		schema:   stmt.Schema,
		fields:   fields,
	}
	if err := r.checkDescriptor(); err != nil {
		return nil, err
	}
	return r, nil
}

// checkDescriptor rejects descriptors naming fields the model does not have.
func (r *Resource[T]) checkDescriptor() error {
	var names []string
	names = append(names, r.desc.ListEditable...)
	names = append(names, r.desc.ListFilter...)
	if r.desc.SlugField != "" {
		names = append(names, r.desc.SlugField, r.desc.SlugSource)
	}
	for _, name := range names {
		if _, ok := r.fields[name]; !ok {
			return fmt.Errorf("%s descriptor: unknown field %q", r.desc.Name, name)
		}
	}
	for _, col := range r.desc.SearchFields {
		if _, ok := r.schema.FieldsByDBName[col]; !ok {
			return fmt.Errorf("%s descriptor: unknown search column %q", r.desc.Name, col)
		}
	}
	return nil
}

func jsonName(f *schema.Field) string {
	tag := f.StructField.Tag.Get("json")
	name, _, _ := strings.Cut(tag, ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}

func (r *Resource[T]) Descriptor() Descriptor {
	return r.desc
}

func (r *Resource[T]) query(ctx context.Context) *gorm.DB {
	q := r.db.WithContext(ctx)
	for _, p := range r.desc.Preload {
		q = q.Preload(p)
	}
	return q
}

// ParseListParams reads q, page, per_page and the descriptor's filters from
// a query string. Unknown parameters are rejected.
func (r *Resource[T]) ParseListParams(values url.Values) (ListParams, error) {
	params := ListParams{
		Query:   strings.TrimSpace(values.Get("q")),
		Filters: map[string]string{},
		Page:    1,
		PerPage: DefaultPerPage,
	}
	for key := range values {
		switch key {
		case "q":
		case "page":
			page, err := strconv.Atoi(values.Get(key))
			if err != nil || page < 1 {
				return params, errs.NewInvalidFieldError("page", "must be a positive integer")
			}
			params.Page = page
		case "per_page":
			perPage, err := strconv.Atoi(values.Get(key))
			if err != nil || perPage < 1 {
				return params, errs.NewInvalidFieldError("per_page", "must be a positive integer")
			}
			params.PerPage = min(perPage, MaxPerPage)
		default:
			if !r.desc.isFilter(key) {
				return params, errs.NewInvalidFieldError(key, "not a filter of "+r.desc.Name)
			}
			params.Filters[key] = values.Get(key)
		}
	}
	return params, nil
}

func (r *Resource[T]) List(ctx context.Context, params ListParams) (*ListResult[T], error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.PerPage < 1 {
		params.PerPage = DefaultPerPage
	}
	params.PerPage = min(params.PerPage, MaxPerPage)

	conds, err := r.conditions(params)
	if err != nil {
		return nil, err
	}
	where := func(db *gorm.DB) *gorm.DB {
		for _, c := range conds {
			db = db.Where(c)
		}
		return db
	}

	var total int64
	if err := r.db.WithContext(ctx).Model(new(T)).Scopes(where).Count(&total).Error; err != nil {
		return nil, errs.NewDatabaseError("count", r.desc.Name, err)
	}

	items := []*T{}
	q := r.query(ctx).Scopes(where)
	if r.desc.Ordering != "" {
		q = q.Order(r.desc.Ordering)
	}
	err = q.Offset((params.Page - 1) * params.PerPage).Limit(params.PerPage).Find(&items).Error
	if err != nil {
		return nil, errs.NewDatabaseError("list", r.desc.Name, err)
	}

	return &ListResult[T]{Items: items, Total: total, Page: params.Page, PerPage: params.PerPage}, nil
}

// likeEscaper makes LIKE wildcards in search text match literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

// conditions turns filters into exact matches and q into a case-insensitive
// substring match over the search columns.
func (r *Resource[T]) conditions(params ListParams) ([]clause.Expression, error) {
	var conds []clause.Expression
	for key, raw := range params.Filters {
		field, ok := r.fields[key]
		if !ok || !r.desc.isFilter(key) {
			return nil, errs.NewInvalidFieldError(key, "not a filter of "+r.desc.Name)
		}
		value, err := filterValue(field, raw)
		if err != nil {
			return nil, errs.NewInvalidFieldError(key, err.Error())
		}
		conds = append(conds, clause.Eq{Column: clause.Column{Name: field.DBName}, Value: value})
	}

	if params.Query != "" && len(r.desc.SearchFields) > 0 {
		pattern := "%" + likeEscaper.Replace(strings.ToLower(params.Query)) + "%"
		likes := make([]string, 0, len(r.desc.SearchFields))
		vars := make([]any, 0, len(r.desc.SearchFields))
		for _, col := range r.desc.SearchFields {
			likes = append(likes, fmt.Sprintf(`LOWER(%s) LIKE ? ESCAPE '\'`, col))
			vars = append(vars, pattern)
		}
		conds = append(conds, clause.Expr{SQL: "(" + strings.Join(likes, " OR ") + ")", Vars: vars})
	}
	return conds, nil
}

// filterValue converts a query string value to the column's Go type. The
// literal "null" matches NULL on nullable columns.
func filterValue(field *schema.Field, raw string) (any, error) {
	if raw == "null" && field.FieldType.Kind() == reflect.Ptr {
		return nil, nil
	}
	switch {
	case field.IndirectFieldType == uuidType:
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("must be a UUID")
		}
		return id, nil
	case field.DataType == schema.Bool:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("must be true or false")
		}
		return b, nil
	case field.DataType == schema.Int, field.DataType == schema.Uint:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("must be an integer")
		}
		return n, nil
	}
	return raw, nil
}

func (r *Resource[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	item := new(T)
	if err := r.query(ctx).First(item, "id = ?", id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", r.desc.Label, err)
	}
	return item, nil
}

// Create builds a new row from a JSON payload. Model defaults apply to keys
// the payload leaves out.
func (r *Resource[T]) Create(ctx context.Context, body []byte) (*T, error) {
	payload, err := r.decodePayload(body)
	if err != nil {
		return nil, err
	}

	item := new(T)
	if d, ok := any(item).(defaulter); ok {
		d.SetDefaults()
	}
	if err := r.apply(item, payload); err != nil {
		return nil, err
	}
	if err := r.prepopulate(ctx, item); err != nil {
		return nil, err
	}
	if err := r.check(item); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(item).Error; err != nil {
		return nil, errs.NewDatabaseError("create", r.desc.Label, err)
	}
	return r.Get(ctx, r.primaryKey(ctx, item))
}

// Update replaces every writable field present in the payload and saves the
// whole row.
func (r *Resource[T]) Update(ctx context.Context, id uuid.UUID, body []byte) (*T, error) {
	payload, err := r.decodePayload(body)
	if err != nil {
		return nil, err
	}

	item := new(T)
	if err := r.db.WithContext(ctx).First(item, "id = ?", id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", r.desc.Label, err)
	}
	if err := r.apply(item, payload); err != nil {
		return nil, err
	}
	if err := r.check(item); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Omit(clause.Associations).Save(item).Error; err != nil {
		return nil, errs.NewDatabaseError("update", r.desc.Label, err)
	}
	return r.Get(ctx, id)
}

// Patch updates list-editable fields only.
func (r *Resource[T]) Patch(ctx context.Context, id uuid.UUID, body []byte) (*T, error) {
	payload, err := r.decodePayload(body)
	if err != nil {
		return nil, err
	}
	if len(payload) == 0 {
		return nil, errs.NewBadRequestError("no fields to update")
	}

	var columns []string
	for key := range payload {
		if !r.desc.isEditable(key) {
			return nil, errs.NewInvalidFieldError(key, "not editable from the list")
		}
		columns = append(columns, r.fields[key].DBName)
	}

	item := new(T)
	if err := r.db.WithContext(ctx).First(item, "id = ?", id).Error; err != nil {
		return nil, errs.NewDatabaseError("find", r.desc.Label, err)
	}
	if err := r.apply(item, payload); err != nil {
		return nil, err
	}
	if err := r.check(item); err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).Model(item).Select(columns).Updates(item).Error; err != nil {
		return nil, errs.NewDatabaseError("update", r.desc.Label, err)
	}
	return r.Get(ctx, id)
}

func (r *Resource[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if r.desc.Delete != nil {
		return errs.NewDatabaseError("delete", r.desc.Label, r.desc.Delete(ctx, id))
	}
	res := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return errs.NewDatabaseError("delete", r.desc.Label, res.Error)
	}
	if res.RowsAffected == 0 {
		return errs.NewNotFoundError(r.desc.Label)
	}
	return nil
}

// decodePayload keeps the writable model fields of a JSON object. Read-only
// keys, relations and computed keys are dropped.
func (r *Resource[T]) decodePayload(body []byte) (map[string]json.RawMessage, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errs.NewMalformedPayloadError(r.desc.Name, err)
	}
	payload := make(map[string]json.RawMessage, len(raw))
	for key, value := range raw {
		if _, ok := r.fields[key]; !ok || r.desc.isReadOnly(key) {
			continue
		}
		payload[key] = value
	}
	return payload, nil
}

func (r *Resource[T]) apply(item *T, payload map[string]json.RawMessage) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return errs.NewMalformedPayloadError(r.desc.Name, err)
	}
	if err := json.Unmarshal(body, item); err != nil {
		return errs.NewMalformedPayloadError(r.desc.Name, err)
	}
	return nil
}

// prepopulate derives the slug from its source field when it was left blank.
func (r *Resource[T]) prepopulate(ctx context.Context, item *T) error {
	if r.desc.SlugField == "" {
		return nil
	}
	rv := reflect.ValueOf(item).Elem()
	slugField := r.fields[r.desc.SlugField]
	current, _ := slugField.ValueOf(ctx, rv)
	if s, _ := current.(string); strings.TrimSpace(s) != "" {
		return nil
	}
	source, _ := r.fields[r.desc.SlugSource].ValueOf(ctx, rv)
	text, _ := source.(string)
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return slugField.Set(ctx, rv, slug.Make(text))
}

func (r *Resource[T]) check(item *T) error {
	if err := r.validate.Struct(item); err != nil {
		return errs.FromValidation(err)
	}
	return nil
}

func (r *Resource[T]) primaryKey(ctx context.Context, item *T) uuid.UUID {
	v, _ := r.schema.PrioritizedPrimaryField.ValueOf(ctx, reflect.ValueOf(item).Elem())
	id, _ := v.(uuid.UUID)
	return id
}
