package tiny

import (
	"fmt"
	"strings"
)

func (k ValueKind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindDict:
		return "dict"
	case KindInstance:
		return "instance"
	case KindFunction:
		return "function"
	case KindClass:
		return "class"
	case KindBuiltin:
		return "builtin"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

func (v Value) String() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		if v.Bool() {
			return "true"
		}
		return "false"
	case KindInt:
		return fmt.Sprintf("%d", v.data.(int64))
	case KindFloat:
		return fmt.Sprintf("%g", v.data.(float64))
	case KindString:
		return v.data.(string)
	case KindList:
		items := v.data.(*List).Items
		parts := make([]string, len(items))
		for i, item := range items {
			parts[i] = item.String()
		}
		return fmt.Sprintf("[%s]", strings.Join(parts, ", "))
	case KindDict:
		d := v.data.(*Dict)
		if d.Len() == 0 {
			return "{}"
		}
		parts := make([]string, 0, d.Len())
		for _, pair := range d.pairs {
			parts = append(parts, fmt.Sprintf("%s: %s", pair.Key, pair.Value.String()))
		}
		return fmt.Sprintf("{%s}", strings.Join(parts, ", "))
	case KindInstance:
		return fmt.Sprintf("<%s instance>", v.data.(*Instance).Class.Name)
	case KindClass:
		return fmt.Sprintf("<class %s>", v.data.(*Class).Name)
	case KindFunction:
		return fmt.Sprintf("<fn %s>", v.data.(*Function).Name)
	case KindBuiltin:
		return fmt.Sprintf("<builtin %s>", v.data.(*Builtin).Name)
	default:
		return fmt.Sprintf("<%v>", v.kind)
	}
}

// Truthy reports whether a value counts as true in conditions and asserts.
// Only null and false are falsy; zero and the empty string are truthy.
func (v Value) Truthy() bool {
	switch v.kind {
	case KindNull:
		return false
	case KindBool:
		return v.Bool()
	default:
		return true
	}
}

// Equal is structural for scalars and identity for containers. Kinds never
// compare across: an int is not equal to a float of the same magnitude.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.Bool() == other.Bool()
	case KindInt:
		return v.data.(int64) == other.data.(int64)
	case KindFloat:
		return v.data.(float64) == other.data.(float64)
	case KindString:
		return v.data.(string) == other.data.(string)
	case KindList:
		return v.data.(*List) == other.data.(*List)
	case KindDict:
		return v.data.(*Dict) == other.data.(*Dict)
	case KindInstance:
		return v.data.(*Instance) == other.data.(*Instance)
	case KindClass:
		return v.data.(*Class) == other.data.(*Class)
	case KindFunction:
		return v.data.(*Function) == other.data.(*Function)
	case KindBuiltin:
		return v.data.(*Builtin) == other.data.(*Builtin)
	default:
		return false
	}
}
