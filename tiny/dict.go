package tiny

// Dict is an insertion-ordered string-keyed mapping. Writes to an existing
// key keep its original slot; new keys append. Like List it is always
// handled through a pointer so aliases share one table.
type Dict struct {
	pairs []dictPair
	index map[string]int
}

type dictPair struct {
	Key   string
	Value Value
}

func newDict() *Dict {
	return &Dict{index: make(map[string]int)}
}

func (d *Dict) Get(key string) (Value, bool) {
	i, ok := d.index[key]
	if !ok {
		return Value{}, false
	}
	return d.pairs[i].Value, true
}

func (d *Dict) Has(key string) bool {
	_, ok := d.index[key]
	return ok
}

// Set creates the key or overwrites it in place.
func (d *Dict) Set(key string, val Value) {
	if i, ok := d.index[key]; ok {
		d.pairs[i].Value = val
		return
	}
	if d.index == nil {
		d.index = make(map[string]int)
	}
	d.index[key] = len(d.pairs)
	d.pairs = append(d.pairs, dictPair{Key: key, Value: val})
}

func (d *Dict) Len() int { return len(d.pairs) }

// Keys returns the keys in insertion order.
func (d *Dict) Keys() []string {
	keys := make([]string, len(d.pairs))
	for i, pair := range d.pairs {
		keys[i] = pair.Key
	}
	return keys
}
