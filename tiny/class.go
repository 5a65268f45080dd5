package tiny

// Class is a name plus an ordered method table, built once at load time and
// immutable afterwards. Instances keep a non-owning reference back to their
// class for method lookup.
type Class struct {
	Name    string
	methods []*Function
	index   map[string]int
}

func newClass(name string) *Class {
	return &Class{Name: name, index: make(map[string]int)}
}

func (c *Class) addMethod(fn *Function) bool {
	if _, exists := c.index[fn.Name]; exists {
		return false
	}
	c.index[fn.Name] = len(c.methods)
	c.methods = append(c.methods, fn)
	return true
}

func (c *Class) Method(name string) (*Function, bool) {
	i, ok := c.index[name]
	if !ok {
		return nil, false
	}
	return c.methods[i], true
}

// MethodNames returns the method names in declaration order.
func (c *Class) MethodNames() []string {
	names := make([]string, len(c.methods))
	for i, fn := range c.methods {
		names[i] = fn.Name
	}
	return names
}

// Instance pairs a class reference with a private field table. Fields start
// empty and appear through member writes, typically in the constructor.
type Instance struct {
	Class  *Class
	Fields *Dict
}

func newInstance(cl *Class) *Instance {
	return &Instance{Class: cl, Fields: newDict()}
}
