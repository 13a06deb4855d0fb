package subneg

import "strings"

// MSDP control bytes, per §6.
const (
	msdpVAR        byte = 1
	msdpVAL        byte = 2
	msdpTableOpen  byte = 3
	msdpTableClose byte = 4
	msdpArrayOpen  byte = 5
	msdpArrayClose byte = 6
)

// MSDPValueKind tags the variant held by an MSDPValue.
type MSDPValueKind byte

const (
	MSDPString MSDPValueKind = iota
	MSDPArray
	MSDPTableKind
)

// MSDPValue is the MSDP wire grammar's recursive value type: a string,
// an array of values, or a string-keyed table of values.
type MSDPValue struct {
	Kind  MSDPValueKind
	Str   string
	Array []MSDPValue
	Table *MSDPTable
}

// NewMSDPString builds a string-valued MSDPValue.
func NewMSDPString(s string) MSDPValue { return MSDPValue{Kind: MSDPString, Str: s} }

// NewMSDPArray builds an array-valued MSDPValue.
func NewMSDPArray(items ...MSDPValue) MSDPValue {
	return MSDPValue{Kind: MSDPArray, Array: items}
}

// NewMSDPTable builds a table-valued MSDPValue from an existing table.
func NewMSDPTable(t *MSDPTable) MSDPValue { return MSDPValue{Kind: MSDPTableKind, Table: t} }

func (v MSDPValue) String() string {
	switch v.Kind {
	case MSDPArray:
		parts := make([]string, len(v.Array))
		for i, item := range v.Array {
			parts[i] = item.String()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case MSDPTableKind:
		return v.Table.String()
	default:
		return v.Str
	}
}

// encode appends the wire form of v (without any surrounding VAR/VAL
// marker - those belong to the caller, a table entry or a top-level
// pair) to dst.
func (v MSDPValue) encode(dst []byte) []byte {
	switch v.Kind {
	case MSDPArray:
		dst = append(dst, msdpArrayOpen)
		for _, item := range v.Array {
			dst = append(dst, msdpVAL)
			dst = item.encode(dst)
		}
		dst = append(dst, msdpArrayClose)
		return dst
	case MSDPTableKind:
		return v.Table.encode(dst)
	default:
		return append(dst, v.Str...)
	}
}

// decodeMSDPValue reads one value starting at src[0], returning the
// value and the position just past it. Per §6's grammar, a bare string
// is any run of bytes not in {VAR, VAL, ARRAY_CLOSE, TABLE_CLOSE}.
func decodeMSDPValue(src []byte) (MSDPValue, int) {
	if len(src) == 0 {
		return NewMSDPString(""), 0
	}

	switch src[0] {
	case msdpArrayOpen:
		items, n := decodeMSDPArrayBody(src[1:])
		return NewMSDPArray(items...), 1 + n
	case msdpTableOpen:
		table, n := decodeMSDPTableBody(src[1:])
		return NewMSDPTable(table), 1 + n
	default:
		i := 0
		for i < len(src) && !isMSDPStringBoundary(src[i]) {
			i++
		}
		return NewMSDPString(string(src[:i])), i
	}
}

func isMSDPStringBoundary(b byte) bool {
	return b == msdpVAR || b == msdpVAL || b == msdpArrayClose || b == msdpTableClose
}

// decodeMSDPArrayBody reads `(VAL value)*` up to and including a
// trailing ARRAY_CLOSE, returning the values and the number of bytes
// consumed (including ARRAY_CLOSE if present; missing terminator at
// buffer end is accepted, per the decoder's total-function contract).
func decodeMSDPArrayBody(src []byte) ([]MSDPValue, int) {
	var items []MSDPValue
	i := 0
	for i < len(src) {
		if src[i] == msdpArrayClose {
			return items, i + 1
		}
		if src[i] != msdpVAL {
			// Malformed: skip the stray byte rather than looping forever.
			i++
			continue
		}
		i++
		val, n := decodeMSDPValue(src[i:])
		items = append(items, val)
		i += n
	}
	return items, i
}

func decodeMSDPTableBody(src []byte) (*MSDPTable, int) {
	table := NewMSDPTableEmpty()
	i := 0
	for i < len(src) {
		if src[i] == msdpTableClose {
			return table, i + 1
		}
		if src[i] != msdpVAR {
			i++
			continue
		}
		i++
		keyStart := i
		for i < len(src) && src[i] != msdpVAL {
			i++
		}
		key := string(src[keyStart:i])
		if i < len(src) && src[i] == msdpVAL {
			i++
		}
		val, n := decodeMSDPValue(src[i:])
		table.Set(key, val)
		i += n
	}
	return table, i
}

// MSDPTable is the convenience wrapper over the recursive MSDP value
// tree's table case, mirroring the teacher corpus original's
// MudServerData/MudServerDataTable split: ordered keys with map lookup.
type MSDPTable struct {
	order  []string
	values map[string]MSDPValue
}

// NewMSDPTableEmpty creates an empty table.
func NewMSDPTableEmpty() *MSDPTable {
	return &MSDPTable{values: make(map[string]MSDPValue)}
}

// Set assigns key to value, preserving insertion order for first-seen
// keys and overwriting in place for repeats.
func (t *MSDPTable) Set(key string, value MSDPValue) {
	if _, exists := t.values[key]; !exists {
		t.order = append(t.order, key)
	}
	t.values[key] = value
}

// Get retrieves the value for key, if present.
func (t *MSDPTable) Get(key string) (MSDPValue, bool) {
	v, ok := t.values[key]
	return v, ok
}

// Keys returns the table's keys in insertion order.
func (t *MSDPTable) Keys() []string {
	return append([]string(nil), t.order...)
}

func (t *MSDPTable) String() string {
	parts := make([]string, 0, len(t.order))
	for _, k := range t.order {
		parts = append(parts, k+": "+t.values[k].String())
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func (t *MSDPTable) encode(dst []byte) []byte {
	dst = append(dst, msdpTableOpen)
	for _, k := range t.order {
		dst = append(dst, msdpVAR)
		dst = append(dst, k...)
		dst = append(dst, msdpVAL)
		dst = t.values[k].encode(dst)
	}
	dst = append(dst, msdpTableClose)
	return dst
}

// MudServerData is the top-level MSDP argument: a flat sequence of
// `VAR key VAL value` pairs (not themselves wrapped in TABLE_OPEN/
// TABLE_CLOSE, unlike a nested table value), represented the same way
// as MSDPTable for a uniform Get/Set/Keys API.
type MudServerData struct {
	*MSDPTable
}

// NewMudServerData creates an empty MSDP argument.
func NewMudServerData() MudServerData {
	return MudServerData{MSDPTable: NewMSDPTableEmpty()}
}

func (m MudServerData) Option() byte { return optionMSDP }

func (m MudServerData) Encode(dst []byte) []byte {
	for _, k := range m.order {
		dst = append(dst, msdpVAR)
		dst = append(dst, k...)
		dst = append(dst, msdpVAL)
		dst = m.values[k].encode(dst)
	}
	return dst
}

// DecodeMSDP parses a top-level MSDP subnegotiation payload: a flat
// `(VAR key VAL value)*` sequence with no enclosing TABLE_OPEN/CLOSE.
func DecodeMSDP(payload []byte) MudServerData {
	data := NewMudServerData()
	i := 0
	for i < len(payload) {
		if payload[i] != msdpVAR {
			i++
			continue
		}
		i++
		keyStart := i
		for i < len(payload) && payload[i] != msdpVAL {
			i++
		}
		key := string(payload[keyStart:i])
		if i < len(payload) && payload[i] == msdpVAL {
			i++
		}
		val, n := decodeMSDPValue(payload[i:])
		data.Set(key, val)
		i += n
	}
	return data
}
