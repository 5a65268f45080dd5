package tiny

func NewNull() Value            { return Value{kind: KindNull} }
func NewBool(b bool) Value      { return Value{kind: KindBool, data: b} }
func NewInt(i int64) Value      { return Value{kind: KindInt, data: i} }
func NewFloat(f float64) Value  { return Value{kind: KindFloat, data: f} }
func NewString(s string) Value  { return Value{kind: KindString, data: s} }
func NewList(l *List) Value     { return Value{kind: KindList, data: l} }
func NewDict(d *Dict) Value     { return Value{kind: KindDict, data: d} }
func NewClass(cl *Class) Value  { return Value{kind: KindClass, data: cl} }
func NewFunction(fn *Function) Value {
	return Value{kind: KindFunction, data: fn}
}
func NewInstance(inst *Instance) Value {
	return Value{kind: KindInstance, data: inst}
}
func NewBuiltin(name string, fn BuiltinFunc) Value {
	return Value{kind: KindBuiltin, data: &Builtin{Name: name, Fn: fn}}
}

// NewListOf wraps the given values in a fresh list container.
func NewListOf(items ...Value) Value {
	return NewList(&List{Items: items})
}
