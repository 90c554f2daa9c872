package timesheet

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/cmlabs-hris/timesheet-backend-go/internal/domain/employee"
)

// Code is a one-letter attendance status held by a shift slot.
type Code string

const (
	CodeEmpty    Code = ""
	CodeAbsent   Code = "A"
	CodePresent  Code = "P"
	CodeExcused  Code = "E"
	CodeSick     Code = "S"
	CodeVacation Code = "V"
)

// Codes lists the codes an edit may set.
var Codes = []Code{CodeAbsent, CodePresent, CodeExcused, CodeSick, CodeVacation}

func (c Code) IsValid() bool {
	switch c {
	case CodeAbsent, CodePresent, CodeExcused, CodeSick, CodeVacation:
		return true
	}
	return false
}

// Credited reports whether the code earns day credit. Only P does.
func (c Code) Credited() bool {
	return c == CodePresent
}

// DayCell is the attendance of one working day.
type DayCell struct {
	DayName string    `json:"dayName"`
	Date    time.Time `json:"date"`
	AM      Code      `json:"am"`
	Mid     Code      `json:"mid"`
	PM      Code      `json:"pm"`
	LT      Code      `json:"lt"`
}

func (c DayCell) Get(s employee.Shift) Code {
	switch s {
	case employee.ShiftAM:
		return c.AM
	case employee.ShiftMid:
		return c.Mid
	case employee.ShiftPM:
		return c.PM
	case employee.ShiftLT:
		return c.LT
	}
	return CodeEmpty
}

func (c *DayCell) Set(s employee.Shift, code Code) {
	switch s {
	case employee.ShiftAM:
		c.AM = code
	case employee.ShiftMid:
		c.Mid = code
	case employee.ShiftPM:
		c.PM = code
	case employee.ShiftLT:
		c.LT = code
	}
}

// Matches counts the credited slots of the day.
func (c DayCell) Matches() int {
	n := 0
	for _, s := range employee.Shifts {
		if c.Get(s).Credited() {
			n++
		}
	}
	return n
}

// Grid maps "YYYY-MM-DD" keys to day cells. Keys are kept in date order and
// serialize as a JSON object in that order.
type Grid struct {
	keys  []string
	cells map[string]DayCell
}

func NewGrid() Grid {
	return Grid{cells: make(map[string]DayCell)}
}

// Put inserts or replaces the cell under key.
func (g *Grid) Put(key string, cell DayCell) {
	if g.cells == nil {
		g.cells = make(map[string]DayCell)
	}
	if _, ok := g.cells[key]; !ok {
		g.keys = append(g.keys, key)
		sort.Strings(g.keys)
	}
	g.cells[key] = cell
}

func (g Grid) Get(key string) (DayCell, bool) {
	cell, ok := g.cells[key]
	return cell, ok
}

// Keys returns the day keys in date order.
func (g Grid) Keys() []string {
	out := make([]string, len(g.keys))
	copy(out, g.keys)
	return out
}

func (g Grid) Len() int {
	return len(g.keys)
}

// Clone returns a deep copy of the grid.
func (g Grid) Clone() Grid {
	out := Grid{
		keys:  make([]string, len(g.keys)),
		cells: make(map[string]DayCell, len(g.cells)),
	}
	copy(out.keys, g.keys)
	for k, v := range g.cells {
		out.cells[k] = v
	}
	return out
}

func (g Grid) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range g.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(g.cells[key])
		if err != nil {
			return nil, fmt.Errorf("failed to marshal day %s: %w", key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (g *Grid) UnmarshalJSON(data []byte) error {
	var cells map[string]DayCell
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	*g = NewGrid()
	for k, v := range cells {
		g.Put(k, v)
	}
	return nil
}
