package input

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	CursorIndex int
	Selected    int
	Full        bool
	Results     int
}

// Cursor returns the row under the cursor
func (c *ModelContext) Cursor() int {
	return c.CursorIndex
}

// SelectedCount returns the number of selected companies
func (c *ModelContext) SelectedCount() int {
	return c.Selected
}

// OnAddControl reports whether the cursor sits on the add control, which
// follows the last selected company
func (c *ModelContext) OnAddControl() bool {
	return c.CursorIndex >= c.Selected
}

// CanAdd reports whether the add control is enabled
func (c *ModelContext) CanAdd() bool {
	return !c.Full
}

// PickerResults returns the number of companies listed in the picker
func (c *ModelContext) PickerResults() int {
	return c.Results
}
