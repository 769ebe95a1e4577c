package postgres

import (
	"reflect"
	"sync"
)

// columnPlan is the cached "db" tag layout of one struct type.
type columnPlan struct {
	columns []string
	index   [][]int
}

var plans sync.Map // map[reflect.Type]*columnPlan

func planFor(t reflect.Type) *columnPlan {
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if cached, ok := plans.Load(t); ok {
		return cached.(*columnPlan)
	}

	p := &columnPlan{}
	if t.Kind() == reflect.Struct {
		collect(t, nil, p)
	}
	plans.Store(t, p)
	return p
}

// collect walks embedded structs depth-first so that columns appear in
// declaration order.
func collect(t reflect.Type, prefix []int, p *columnPlan) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		path := append(append([]int(nil), prefix...), i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			collect(field.Type, path, p)
			continue
		}

		tag := field.Tag.Get("db")
		if tag == "" || tag == "-" {
			continue
		}
		p.columns = append(p.columns, tag)
		p.index = append(p.index, path)
	}
}

// ExtractDBColumns lists the "db" columns of T, embedded structs included.
//
//	columns := ExtractDBColumns[category.Category]()
//	// ["id", "name", "slug", "image", "is_active", "created_at", "updated_at"]
func ExtractDBColumns[T any]() []string {
	var zero T
	return append([]string(nil), planFor(reflect.TypeOf(zero)).columns...)
}

// StructToMap converts a struct to a column→value map using "db" tags.
func StructToMap(v any) map[string]any {
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil
	}

	p := planFor(rv.Type())
	res := make(map[string]any, len(p.columns))
	for i, col := range p.columns {
		res[col] = rv.FieldByIndex(p.index[i]).Interface()
	}
	return res
}

// StructToMapExcept is StructToMap without the listed columns.
func StructToMapExcept(v any, skip ...string) map[string]any {
	res := StructToMap(v)
	for _, col := range skip {
		delete(res, col)
	}
	return res
}
