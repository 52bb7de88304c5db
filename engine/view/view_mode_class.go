package view

// ViewModeClass is a named factory for ViewMode instances.
// Classes are compared by pointer: two classes with the same name are still distinct.
type ViewModeClass struct {
	name    string
	factory func(owner Owner) ViewMode
}

// NewViewModeClass creates a class that builds modes with factory.
//
// Parameters:
//   - name: the class name
//   - factory: creates one mode for an owner
//
// Returns:
//   - *ViewModeClass: the class
func NewViewModeClass(name string, factory func(owner Owner) ViewMode) *ViewModeClass {
	return &ViewModeClass{name: name, factory: factory}
}

// Name returns the class name.
func (c *ViewModeClass) Name() string {
	if c == nil {
		return ""
	}
	return c.name
}

// NewInstance builds a mode for owner. It returns nil for a nil class or factory.
func (c *ViewModeClass) NewInstance(owner Owner) ViewMode {
	if c == nil || c.factory == nil {
		return nil
	}
	return c.factory(owner)
}
