package model

// UnitsKind distinguishes the shapes a Units value can take.
type UnitsKind uint8

const (
	UnitsNone UnitsKind = iota
	// UnitsDisplay is a cosmetic unit string rendered after the input.
	UnitsDisplay
	// UnitsTable maps unit labels to multipliers; only valid on number fields.
	UnitsTable
)

func (k UnitsKind) String() string {
	switch k {
	case UnitsDisplay:
		return "display"
	case UnitsTable:
		return "table"
	default:
		return "none"
	}
}

// Unit is one entry of a unit table.
type Unit struct {
	Label      string
	Multiplier float64
}

// Units is either absent, a single display string or an ordered unit table.
type Units struct {
	kind    UnitsKind
	display string
	table   []Unit
}

// DisplayUnits returns cosmetic units shown next to the input.
func DisplayUnits(label string) Units {
	return Units{kind: UnitsDisplay, display: label}
}

// UnitTable returns a multiplier table. Order is preserved for rendering.
func UnitTable(units ...Unit) Units {
	table := make([]Unit, len(units))
	copy(table, units)
	return Units{kind: UnitsTable, table: table}
}

// Kind reports the shape of u.
func (u Units) Kind() UnitsKind { return u.kind }

// Display returns the cosmetic label for UnitsDisplay values.
func (u Units) Display() string { return u.display }

// Table returns a copy of the unit table.
func (u Units) Table() []Unit {
	if len(u.table) == 0 {
		return nil
	}
	out := make([]Unit, len(u.table))
	copy(out, u.table)
	return out
}

// Labels returns the unit labels in table order.
func (u Units) Labels() []string {
	if len(u.table) == 0 {
		return nil
	}
	out := make([]string, 0, len(u.table))
	for _, unit := range u.table {
		out = append(out, unit.Label)
	}
	return out
}

// Multiplier looks up label in the unit table.
func (u Units) Multiplier(label string) (float64, bool) {
	for _, unit := range u.table {
		if unit.Label == label {
			return unit.Multiplier, true
		}
	}
	return 0, false
}
