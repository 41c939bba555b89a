package layout

import "github.com/aretw0/vignette/pkg/domain"

const (
	colFarLeft = iota
	colLeft
	colCenter
	colRight
	colFarRight
)

const (
	rowBack = iota
	rowMid
	rowFront
)

var preferences = map[domain.Position][]string{
	domain.PositionCenter: columnsFirst([][]int{{colCenter}, {colLeft, colRight}, {colFarLeft, colFarRight}}),
	domain.PositionLeft:   columnsFirst([][]int{{colLeft}, {colFarLeft}, {colCenter}, {colRight}, {colFarRight}}),
	domain.PositionRight:  columnsFirst([][]int{{colRight}, {colFarRight}, {colCenter}, {colLeft}, {colFarLeft}}),
	domain.PositionTop:    rowsFirst([]int{rowBack, rowMid, rowFront}),
	domain.PositionBottom: rowsFirst([]int{rowFront, rowMid, rowBack}),
}

// Preferences returns the ordered slot names tried for a symbolic position.
// Off-stage sentinels have no slots; unknown symbols use the center list.
func Preferences(pos domain.Position) []string {
	if pos.Offstage() {
		return nil
	}
	if names, ok := preferences[pos]; ok {
		return names
	}
	return preferences[domain.PositionCenter]
}

// columnsFirst walks column groups outward; inside a group it fills mid, front, back,
// alternating between the group's columns on each row.
func columnsFirst(groups [][]int) []string {
	rows := []int{rowMid, rowFront, rowBack}
	names := make([]string, 0, Columns*Rows)
	for _, group := range groups {
		for _, row := range rows {
			for _, col := range group {
				names = append(names, SlotName(col, row))
			}
		}
	}
	return names
}

// rowsFirst fills whole rows in order, each from the center column outward.
func rowsFirst(rows []int) []string {
	cols := []int{colCenter, colLeft, colRight, colFarLeft, colFarRight}
	names := make([]string, 0, Columns*Rows)
	for _, row := range rows {
		for _, col := range cols {
			names = append(names, SlotName(col, row))
		}
	}
	return names
}
