// Package schema turns domain structs into immutable entity descriptors: the
// table name, the ordered typed fields, and the declared relations a query
// builder and the execution adapter work from. Descriptors are created once
// at startup and shared for the process lifetime.
package schema

import (
	"fmt"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/quelldb/quell/ast"
)

// FieldMeta is one typed column of an entity.
type FieldMeta struct {
	Name     string // Go struct field name
	Column   string
	Kind     ast.Kind
	Nullable bool
	Index    int // struct field index
}

// Relation is a declared foreign-key association. Field names the Rel[T]
// struct field the related entity materializes into; FKColumn lives on the
// owning entity, RefColumn on the target.
type Relation struct {
	Field     string
	Index     int
	Target    *Descriptor
	FKColumn  string
	RefColumn string
}

// Descriptor is the typed schema of one entity. It is immutable after the
// startup declaration phase (Describe plus any BelongsTo calls) and safe for
// concurrent use.
type Descriptor struct {
	Name  string
	Table string
	Alias string

	goType       reflect.Type
	fields       []*FieldMeta
	fieldsByName map[string]*FieldMeta
	relations    []*Relation
}

var descriptors sync.Map // reflect.Type -> *Descriptor

var relType = reflect.TypeOf(Rel[struct{}]{})

// Describe introspects T and returns its descriptor. Repeated calls for the
// same type return the same descriptor, so relations declared once are seen
// everywhere. An optional table name overrides the derived plural snake_case.
func Describe[T any](table ...string) (*Descriptor, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	if cached, ok := descriptors.Load(t); ok {
		return cached.(*Descriptor), nil
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("schema: %s is not a struct", t)
	}

	d := &Descriptor{
		Name:         t.Name(),
		Table:        TableName(t.Name()),
		goType:       t,
		fieldsByName: make(map[string]*FieldMeta),
	}
	if len(table) > 0 && table[0] != "" {
		d.Table = table[0]
	}
	d.Alias = d.Table

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		if !sf.IsExported() || isRelField(sf.Type) {
			continue
		}
		tag := sf.Tag.Get("db")
		if tag == "-" {
			continue
		}
		column, nullable := parseTag(tag)
		if column == "" {
			column = ColumnName(sf.Name)
		}
		kind, ptr, err := kindOfType(sf.Type)
		if err != nil {
			return nil, fmt.Errorf("schema: field %s.%s: %w", t.Name(), sf.Name, err)
		}
		fm := &FieldMeta{
			Name:     sf.Name,
			Column:   column,
			Kind:     kind,
			Nullable: nullable || ptr,
			Index:    i,
		}
		d.fields = append(d.fields, fm)
		d.fieldsByName[sf.Name] = fm
		d.fieldsByName[column] = fm
	}
	if len(d.fields) == 0 {
		return nil, fmt.Errorf("schema: %s has no mapped fields", t.Name())
	}

	if existing, loaded := descriptors.LoadOrStore(t, d); loaded {
		return existing.(*Descriptor), nil
	}
	return d, nil
}

// MustDescribe is Describe for startup-time declarations.
func MustDescribe[T any](table ...string) *Descriptor {
	d, err := Describe[T](table...)
	if err != nil {
		panic(err)
	}
	return d
}

// BelongsTo declares a foreign-key relation resolved into the named Rel[T]
// struct field. It is a startup-time declaration and panics on a field that
// does not exist or is not a Rel. Returns d for chaining.
func (d *Descriptor) BelongsTo(field string, target *Descriptor, fkColumn, refColumn string) *Descriptor {
	sf, ok := d.goType.FieldByName(field)
	if !ok || !isRelField(sf.Type) {
		panic(fmt.Sprintf("schema: %s.%s is not a Rel field", d.Name, field))
	}
	if _, ok := d.fieldsByName[fkColumn]; !ok {
		panic(fmt.Sprintf("schema: %s has no column %q for relation %s", d.Name, fkColumn, field))
	}
	if refColumn == "" {
		refColumn = "id"
	}
	d.relations = append(d.relations, &Relation{
		Field:     field,
		Index:     sf.Index[0],
		Target:    target,
		FKColumn:  fkColumn,
		RefColumn: refColumn,
	})
	return d
}

// As returns a view of the descriptor under a different alias, for joining
// the same entity twice or naming a subquery source. Fields and relations
// are shared with the original.
func (d *Descriptor) As(alias string) *Descriptor {
	c := *d
	c.Alias = alias
	return &c
}

// Col returns a typed field handle qualified by the descriptor's alias.
func (d *Descriptor) Col(name string) (*ast.Field, bool) {
	fm, ok := d.fieldsByName[name]
	if !ok {
		return nil, false
	}
	return &ast.Field{
		Table:     d.Alias,
		Name:      fm.Column,
		ValueKind: fm.Kind,
		Nullable:  fm.Nullable,
	}, true
}

// Cols returns handles for every mapped field in declaration order; this is
// the projection a select-from-entity query uses.
func (d *Descriptor) Cols() []ast.Node {
	nodes := make([]ast.Node, len(d.fields))
	for i, fm := range d.fields {
		nodes[i] = &ast.Field{
			Table:     d.Alias,
			Name:      fm.Column,
			ValueKind: fm.Kind,
			Nullable:  fm.Nullable,
		}
	}
	return nodes
}

// Fields returns the ordered field metadata.
func (d *Descriptor) Fields() []*FieldMeta { return d.fields }

// Field looks up metadata by struct field name or column name.
func (d *Descriptor) Field(name string) (*FieldMeta, bool) {
	fm, ok := d.fieldsByName[name]
	return fm, ok
}

// Relations returns the declared relations.
func (d *Descriptor) Relations() []*Relation { return d.relations }

// Relation looks up a relation by its struct field name.
func (d *Descriptor) Relation(field string) (*Relation, bool) {
	for _, r := range d.relations {
		if r.Field == field {
			return r, true
		}
	}
	return nil, false
}

// GoType is the struct type the descriptor was derived from.
func (d *Descriptor) GoType() reflect.Type { return d.goType }

func isRelField(t reflect.Type) bool {
	return t.Kind() == reflect.Struct &&
		t.PkgPath() == relType.PkgPath() &&
		strings.HasPrefix(t.Name(), "Rel[")
}

func parseTag(tag string) (column string, nullable bool) {
	parts := strings.Split(tag, ",")
	column = parts[0]
	for _, opt := range parts[1:] {
		if opt == "nullable" {
			nullable = true
		}
	}
	return column, nullable
}

var timeType = reflect.TypeOf(time.Time{})

func kindOfType(t reflect.Type) (kind ast.Kind, ptr bool, err error) {
	if t.Kind() == reflect.Pointer {
		kind, _, err = kindOfType(t.Elem())
		return kind, true, err
	}
	if t == timeType {
		return ast.KindTime, false, nil
	}
	switch t.Kind() {
	case reflect.Bool:
		return ast.KindBool, false, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return ast.KindInt, false, nil
	case reflect.Float32, reflect.Float64:
		return ast.KindFloat, false, nil
	case reflect.String:
		return ast.KindString, false, nil
	case reflect.Slice:
		if t.Elem().Kind() == reflect.Uint8 {
			return ast.KindBytes, false, nil
		}
	}
	return ast.KindNone, false, fmt.Errorf("unsupported field type %s", t)
}
