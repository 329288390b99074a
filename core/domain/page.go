package domain

// Page is a row of a database parent page. Values are keyed by property id;
// a key that is absent means the cell is empty.
type Page struct {
	ID     string
	Title  string
	Values *PropertyValues
}

// Value is a nil-safe accessor for a single cell.
func (p Page) Value(propertyID string) Value {
	if p.Values == nil {
		return None()
	}
	return p.Values.Get(propertyID)
}

// PropertyValues holds the per-page cells. Setting a none value deletes the
// key, keeping "absent" the single representation of emptiness.
type PropertyValues struct {
	data map[string]Value
}

func NewPropertyValues() *PropertyValues {
	return &PropertyValues{data: map[string]Value{}}
}

func NewPropertyValuesFromMap(data map[string]Value) *PropertyValues {
	values := NewPropertyValues()
	for k, v := range data {
		values.Set(k, v)
	}
	return values
}

func (d *PropertyValues) Len() int {
	return len(d.data)
}

func (d *PropertyValues) Get(key string) Value {
	return d.data[key]
}

func (d *PropertyValues) Has(key string) bool {
	_, ok := d.data[key]
	return ok
}

func (d *PropertyValues) Set(key string, value Value) {
	if !value.Ok() {
		delete(d.data, key)
		return
	}
	d.data[key] = value
}

func (d *PropertyValues) Delete(key string) {
	delete(d.data, key)
}

func (d *PropertyValues) Keys() []string {
	keys := make([]string, 0, len(d.data))
	for k := range d.data {
		keys = append(keys, k)
	}
	return keys
}

func (d *PropertyValues) Iterate(proc func(key string, value Value) bool) {
	for k, v := range d.data {
		if !proc(k, v) {
			return
		}
	}
}

func (d *PropertyValues) GetString(key string) (string, bool) {
	return d.Get(key).String()
}

func (d *PropertyValues) GetStringOrDefault(key string, def string) string {
	return d.Get(key).StringOrDefault(def)
}

func (d *PropertyValues) GetFloat(key string) (float64, bool) {
	return d.Get(key).Float()
}

func (d *PropertyValues) GetFloatOrDefault(key string, def float64) float64 {
	return d.Get(key).FloatOrDefault(def)
}

func (d *PropertyValues) GetBool(key string) (bool, bool) {
	return d.Get(key).Bool()
}

func (d *PropertyValues) GetBoolOrDefault(key string, def bool) bool {
	return d.Get(key).BoolOrDefault(def)
}

func (d *PropertyValues) GetStringList(key string) ([]string, bool) {
	return d.Get(key).StringList()
}

func (d *PropertyValues) GetStringListOrDefault(key string, def []string) []string {
	return d.Get(key).StringListOrDefault(def)
}

func (d *PropertyValues) ShallowCopy() *PropertyValues {
	newData := make(map[string]Value, len(d.data))
	for k, v := range d.data {
		newData[k] = v
	}
	return &PropertyValues{data: newData}
}

func (d *PropertyValues) Equal(other *PropertyValues) bool {
	if d == nil || other == nil {
		return d == other
	}
	if d.Len() != other.Len() {
		return false
	}
	for k, v := range d.data {
		otherV, ok := other.data[k]
		if !ok {
			return false
		}
		if !v.Equal(otherV) {
			return false
		}
	}
	return true
}
