package domain

// FieldKey is the internal name of a record field.
type FieldKey string

// Field keys, one per spreadsheet column.
const (
	FieldPropertyType   FieldKey = "propertyType"
	FieldKothiNumber    FieldKey = "kothiNumber"
	FieldPlotNumber     FieldKey = "plotNumber"
	FieldProject        FieldKey = "project"
	FieldFloor          FieldKey = "floor"
	FieldBHK            FieldKey = "bhk"
	FieldCommercialType FieldKey = "commercialType"
	FieldArea           FieldKey = "area"
	FieldSectorPhase    FieldKey = "sectorPhase"
	FieldPlotSize       FieldKey = "plotSize"
	FieldMarla          FieldKey = "marla"
	FieldPLC            FieldKey = "plc"
	FieldRoad           FieldKey = "road"
	FieldCPName         FieldKey = "cpName"
	FieldContactNumber  FieldKey = "contactNumber"
	FieldCPFirmName     FieldKey = "cpFirmName"
	FieldDemand         FieldKey = "demand"
	FieldExpectations   FieldKey = "expectations"
	FieldDate           FieldKey = "date"
	FieldFacing         FieldKey = "facing"
)

// String returns the string representation.
func (k FieldKey) String() string {
	return string(k)
}

// Fields is a flat bag of field values keyed by FieldKey.
// A key is present only when it carries a non-empty value.
type Fields map[FieldKey]string

// Get returns the value for key, or "" when absent.
func (f Fields) Get(key FieldKey) string {
	if f == nil {
		return ""
	}
	return f[key]
}

// Has reports whether key carries a value.
func (f Fields) Has(key FieldKey) bool {
	return f.Get(key) != ""
}

// Set stores value under key. Empty values remove the key.
func (f Fields) Set(key FieldKey, value string) {
	if value == "" {
		delete(f, key)
		return
	}
	f[key] = value
}

// Clone returns a shallow copy.
func (f Fields) Clone() Fields {
	out := make(Fields, len(f))
	for k, v := range f {
		out[k] = v
	}
	return out
}

// Keys returns the present keys in column order.
func (f Fields) Keys() []FieldKey {
	keys := make([]FieldKey, 0, len(f))
	for _, col := range Columns {
		if f.Has(col.Key) {
			keys = append(keys, col.Key)
		}
	}
	return keys
}
