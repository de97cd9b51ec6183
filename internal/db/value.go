package db

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ValueKind discriminates the engine-native cell variants the
// marshaler understands.
type ValueKind int

const (
	KindNull ValueKind = iota
	KindInteger
	KindReal
	KindText
	KindBlob
	KindError
)

// Value is a single result cell in engine-native form. It carries type
// information internally and is rendered to a display string only at
// the boundary. Blob content is never carried, only its length.
type Value struct {
	Kind  ValueKind
	Int   int64
	Real  float64
	Text  string
	Bytes int
}

// String renders the cell per the fixed display policy: NULL for null,
// decimal text for integers, default float formatting for reals, the
// (lossily decoded) text itself, BLOB(<len>) for blobs, and ERROR for
// cells that could not be read.
func (v Value) String() string {
	switch v.Kind {
	case KindNull:
		return "NULL"
	case KindInteger:
		return strconv.FormatInt(v.Int, 10)
	case KindReal:
		return strconv.FormatFloat(v.Real, 'g', -1, 64)
	case KindText:
		return v.Text
	case KindBlob:
		return fmt.Sprintf("BLOB(%d)", v.Bytes)
	default:
		return "ERROR"
	}
}

// valueOf converts a scanned driver value into a Value. isBlob
// distinguishes raw byte columns from text the driver carries as
// []byte. Types outside the five core variants degrade to their
// natural text form rather than failing.
func valueOf(raw any, isBlob bool) Value {
	switch t := raw.(type) {
	case nil:
		return Value{Kind: KindNull}
	case int64:
		return Value{Kind: KindInteger, Int: t}
	case int32:
		return Value{Kind: KindInteger, Int: int64(t)}
	case int16:
		return Value{Kind: KindInteger, Int: int64(t)}
	case int8:
		return Value{Kind: KindInteger, Int: int64(t)}
	case int:
		return Value{Kind: KindInteger, Int: int64(t)}
	case uint64:
		return Value{Kind: KindText, Text: strconv.FormatUint(t, 10)}
	case uint32:
		return Value{Kind: KindInteger, Int: int64(t)}
	case uint16:
		return Value{Kind: KindInteger, Int: int64(t)}
	case uint8:
		return Value{Kind: KindInteger, Int: int64(t)}
	case float64:
		return Value{Kind: KindReal, Real: t}
	case float32:
		return Value{Kind: KindReal, Real: float64(t)}
	case string:
		return Value{Kind: KindText, Text: strings.ToValidUTF8(t, "�")}
	case []byte:
		if isBlob {
			return Value{Kind: KindBlob, Bytes: len(t)}
		}
		return Value{Kind: KindText, Text: strings.ToValidUTF8(string(t), "�")}
	case bool:
		return Value{Kind: KindText, Text: strconv.FormatBool(t)}
	case time.Time:
		return Value{Kind: KindText, Text: t.Format(time.RFC3339Nano)}
	default:
		return Value{Kind: KindText, Text: fmt.Sprint(t)}
	}
}
