package ast

import "github.com/quelldb/quell/utils"

// Table names a query source. Alias is how the source is referred to in the
// rest of the statement; it defaults to the table name.
type Table struct {
	Name  string
	Alias string
}

func (t *Table) Type() NodeType         { return NodeTable }
func (t *Table) Kind() Kind             { return KindNone }
func (t *Table) Accept(v Visitor) error { return v.VisitTable(t) }
func (t *Table) Fingerprint() uint64 {
	return utils.FingerprintString("table:" + t.Name + ":" + t.Alias)
}
