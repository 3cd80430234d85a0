package cost

import (
	"fmt"
	"strconv"
	"time"
)

type Unit int

const (
	UnitUnknown Unit = iota
	UnitTracepoint
	// UnitTime means the cost is measured in nanoseconds.
	UnitTime
)

// Costs maps tree node ids to per-type cost counters. It is owned
// independently of the tree it annotates, so one tree can carry several
// cost views (self vs. inclusive) without duplicating topology.
//
// The type-width of a Costs must be fixed before use, either via
// AddType or by InitializeFrom on an already-typed instance.
type Costs struct {
	typeNames []string
	units     []Unit
	columns   [][]int64
	totals    []int64
}

func (c *Costs) AddType(typ int, name string, unit Unit) {
	for len(c.columns) <= typ {
		c.columns = append(c.columns, nil)
		c.typeNames = append(c.typeNames, "")
		c.units = append(c.units, UnitUnknown)
		c.totals = append(c.totals, 0)
	}
	c.typeNames[typ] = name
	c.units[typ] = unit
}

// InitializeFrom adopts the cost types (names, units, totals) of rhs
// with empty per-id columns. Results derived from a source profile are
// sized this way before any Add.
func (c *Costs) InitializeFrom(rhs *Costs) {
	c.typeNames = append([]string(nil), rhs.typeNames...)
	c.units = append([]Unit(nil), rhs.units...)
	c.totals = append([]int64(nil), rhs.totals...)
	c.columns = make([][]int64, len(rhs.columns))
}

func (c *Costs) NumTypes() int {
	return len(c.typeNames)
}

func (c *Costs) TypeName(typ int) string {
	return c.typeNames[typ]
}

func (c *Costs) Unit(typ int) Unit {
	return c.units[typ]
}

func (c *Costs) AddValue(typ int, id uint32, delta int64) {
	c.ensureSpace(typ, id)
	c.columns[typ][id] += delta
}

func (c *Costs) AddTotalCost(typ int, delta int64) {
	c.totals[typ] += delta
}

func (c *Costs) TotalCost(typ int) int64 {
	return c.totals[typ]
}

func (c *Costs) TotalCosts() Vector {
	return Vector(c.totals).Clone()
}

func (c *Costs) Value(typ int, id uint32) int64 {
	if col := c.columns[typ]; uint32(len(col)) > id {
		return col[id]
	}
	return 0
}

// ItemCost gathers the full cost vector of one node id. Ids that were
// never written read as zero.
func (c *Costs) ItemCost(id uint32) Vector {
	v := make(Vector, len(c.columns))
	for typ := range c.columns {
		v[typ] = c.Value(typ, id)
	}
	return v
}

// Add accumulates a full-width vector into one node id. The vector
// width must match the number of cost types; anything else is a
// caller bug.
func (c *Costs) Add(id uint32, v Vector) {
	if len(v) != len(c.columns) {
		panic(fmt.Sprintf("cost: vector width %d does not match %d cost types", len(v), len(c.columns)))
	}
	for typ, x := range v {
		c.ensureSpace(typ, id)
		c.columns[typ][id] += x
	}
}

func (c *Costs) ensureSpace(typ int, id uint32) {
	for uint32(len(c.columns[typ])) <= id {
		c.columns[typ] = append(c.columns[typ], 0)
	}
}

func (c *Costs) FormatValue(typ int, value int64) string {
	return FormatValue(c.units[typ], value)
}

func FormatValue(unit Unit, value int64) string {
	switch unit {
	case UnitTime:
		return time.Duration(value).String()
	default:
		return strconv.FormatInt(value, 10)
	}
}
