package engine

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/quelldb/quell/query"
	"github.com/quelldb/quell/schema"
)

// All runs a whole-entity query and materializes every row as T. The query
// must have been started with SelectFrom; tuple projections go through Fetch.
func All[T any](ctx context.Context, s *Session, b query.Builder) ([]T, error) {
	d := b.Root()
	if d == nil {
		return nil, query.ErrIncompleteQuery
	}
	if !b.EntityProjection() {
		return nil, query.ErrNotEntityProjection
	}
	if d.GoType() != reflect.TypeOf((*T)(nil)).Elem() {
		return nil, fmt.Errorf("%w: query selects %s", query.ErrNotEntityProjection, d.Name)
	}

	stmt, err := b.Build()
	if err != nil {
		return nil, err
	}
	rows, err := s.Fetch(ctx, b)
	if err != nil {
		return nil, err
	}

	fetched := make(map[string]bool)
	for _, j := range stmt.Joins {
		if j.Fetch && j.Relation != "" {
			fetched[j.Relation] = true
		}
	}

	out := make([]T, 0, len(rows))
	for _, row := range rows {
		ev := reflect.New(d.GoType()).Elem()
		if err := scanEntity(d, row, ev); err != nil {
			return nil, err
		}
		if err := s.wireRelations(ctx, d, ev, fetched); err != nil {
			return nil, err
		}
		out = append(out, ev.Interface().(T))
	}
	return out, nil
}

// One is All expecting exactly one entity.
func One[T any](ctx context.Context, s *Session, b query.Builder) (T, error) {
	var zero T
	all, err := All[T](ctx, s, b)
	if err != nil {
		return zero, err
	}
	switch len(all) {
	case 0:
		return zero, ErrNoResult
	case 1:
		return all[0], nil
	default:
		return zero, ErrNonUniqueResult
	}
}

// First is All with a limit of one.
func First[T any](ctx context.Context, s *Session, b query.Builder) (T, error) {
	var zero T
	all, err := All[T](ctx, s, b.Limit(1))
	if err != nil {
		return zero, err
	}
	if len(all) == 0 {
		return zero, ErrNoResult
	}
	return all[0], nil
}

// scanEntity fills ev from a row whose columns are the descriptor's fields in
// declaration order, which is exactly what an entity projection compiles to.
func scanEntity(d *schema.Descriptor, row Row, ev reflect.Value) error {
	fields := d.Fields()
	if row.Len() < len(fields) {
		return fmt.Errorf("engine: row has %d columns, entity %s needs %d", row.Len(), d.Name, len(fields))
	}
	for i, fm := range fields {
		if err := convertAssign(ev.Field(fm.Index), row.Index(i)); err != nil {
			return fmt.Errorf("engine: %s.%s: %w", d.Name, fm.Name, err)
		}
	}
	return nil
}

// wireRelations attaches a resolver to every declared relation of the entity.
// Relations named in fetched are resolved immediately, so the returned entity
// observes Loaded()==true; the rest stay lazy until Get.
func (s *Session) wireRelations(ctx context.Context, d *schema.Descriptor, ev reflect.Value, fetched map[string]bool) error {
	for _, rel := range d.Relations() {
		binder, ok := ev.Field(rel.Index).Addr().Interface().(schema.RelBinder)
		if !ok {
			return fmt.Errorf("engine: %s.%s is not a relation field", d.Name, rel.Field)
		}

		fm, _ := d.Field(rel.FKColumn)
		fkVal := ev.Field(fm.Index).Interface()
		if fkv := reflect.ValueOf(fkVal); fkv.Kind() == reflect.Pointer {
			if fkv.IsNil() {
				binder.BindResolver(func(context.Context) (any, error) { return nil, ErrNoResult })
				continue
			}
			fkVal = fkv.Elem().Interface()
		}

		rel := rel
		resolve := func(ctx context.Context) (any, error) {
			return s.resolveRelation(ctx, rel, fkVal)
		}
		binder.BindResolver(resolve)

		if fetched[rel.Field] {
			v, err := resolve(ctx)
			if err == ErrNoResult {
				continue
			}
			if err != nil {
				return err
			}
			if err := binder.SetLoadedAny(v); err != nil {
				return err
			}
		}
	}
	return nil
}

// resolveRelation loads the single related entity a foreign key points at.
func (s *Session) resolveRelation(ctx context.Context, rel *schema.Relation, fkVal any) (any, error) {
	b := query.SelectFrom(rel.Target).
		Where(query.Col(rel.Target, rel.RefColumn).Eq(fkVal))
	rows, err := s.Fetch(ctx, b)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrNoResult
	}
	if len(rows) > 1 {
		return nil, ErrNonUniqueResult
	}
	ev := reflect.New(rel.Target.GoType()).Elem()
	if err := scanEntity(rel.Target, rows[0], ev); err != nil {
		return nil, err
	}
	if err := s.wireRelations(ctx, rel.Target, ev, nil); err != nil {
		return nil, err
	}
	return ev.Interface(), nil
}

var timeType = reflect.TypeOf(time.Time{})

// convertAssign stores a scanned value into a struct field, normalizing the
// width differences between store drivers.
func convertAssign(field reflect.Value, raw any) error {
	if raw == nil {
		field.SetZero()
		return nil
	}
	if field.Kind() == reflect.Pointer {
		p := reflect.New(field.Type().Elem())
		if err := convertAssign(p.Elem(), raw); err != nil {
			return err
		}
		field.Set(p)
		return nil
	}

	rv := reflect.ValueOf(raw)
	if rv.Type() == field.Type() {
		field.Set(rv)
		return nil
	}

	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		switch v := raw.(type) {
		case int64:
			field.SetInt(v)
		case int32:
			field.SetInt(int64(v))
		case int:
			field.SetInt(int64(v))
		case float64:
			field.SetInt(int64(v))
		default:
			return fmt.Errorf("cannot assign %T to %s", raw, field.Type())
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch v := raw.(type) {
		case int64:
			field.SetUint(uint64(v))
		case uint64:
			field.SetUint(v)
		default:
			return fmt.Errorf("cannot assign %T to %s", raw, field.Type())
		}
	case reflect.Float32, reflect.Float64:
		switch v := raw.(type) {
		case float64:
			field.SetFloat(v)
		case float32:
			field.SetFloat(float64(v))
		case int64:
			field.SetFloat(float64(v))
		default:
			return fmt.Errorf("cannot assign %T to %s", raw, field.Type())
		}
	case reflect.String:
		switch v := raw.(type) {
		case string:
			field.SetString(v)
		case []byte:
			field.SetString(string(v))
		default:
			return fmt.Errorf("cannot assign %T to %s", raw, field.Type())
		}
	case reflect.Bool:
		switch v := raw.(type) {
		case bool:
			field.SetBool(v)
		case int64:
			field.SetBool(v != 0)
		default:
			return fmt.Errorf("cannot assign %T to %s", raw, field.Type())
		}
	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.Uint8 {
			switch v := raw.(type) {
			case []byte:
				field.SetBytes(v)
			case string:
				field.SetBytes([]byte(v))
			default:
				return fmt.Errorf("cannot assign %T to %s", raw, field.Type())
			}
			return nil
		}
		return fmt.Errorf("cannot assign %T to %s", raw, field.Type())
	case reflect.Struct:
		if field.Type() == timeType {
			switch v := raw.(type) {
			case time.Time:
				field.Set(reflect.ValueOf(v))
			case string:
				t, err := time.Parse(time.RFC3339, v)
				if err != nil {
					return fmt.Errorf("cannot parse %q as time: %w", v, err)
				}
				field.Set(reflect.ValueOf(t))
			default:
				return fmt.Errorf("cannot assign %T to %s", raw, field.Type())
			}
			return nil
		}
		return fmt.Errorf("cannot assign %T to %s", raw, field.Type())
	default:
		return fmt.Errorf("cannot assign %T to %s", raw, field.Type())
	}
	return nil
}
