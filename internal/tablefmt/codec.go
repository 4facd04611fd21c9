package tablefmt

// codec.go holds the value conversions used by table columns.
//
// Each Codec pairs an Encode and a Decode function with the Kind of rule it
// implements. Formatting is driven by the Format passed in, so output is the
// same on every host:
//   - Fixed writes decimals with a fixed number of places ("0.00" when absent)
//   - Date writes calendar dates with Format.DateLayout ("" when absent)
//   - Optional writes "" for absent values and skips empty cells on read
//   - Enum writes symbolic names and rejects unknown names on read

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"
)

// Kind identifies the conversion rule of a codec.
type Kind int

const (
	KindPlain Kind = iota
	KindFixed
	KindDate
	KindOptional
	KindEnum
)

func (k Kind) String() string {
	switch k {
	case KindPlain:
		return "plain"
	case KindFixed:
		return "fixed"
	case KindDate:
		return "date"
	case KindOptional:
		return "optional"
	case KindEnum:
		return "enum"
	default:
		return "unknown"
	}
}

// Format holds the number and date conventions shared by all codecs.
type Format struct {
	DecimalPlaces int32  // places written by Fixed
	DateLayout    string // Go layout used by Date
}

// DefaultFormat returns two decimal places and MM.dd.yyyy dates.
func DefaultFormat() Format {
	return Format{
		DecimalPlaces: 2,
		DateLayout:    "01.02.2006",
	}
}

// Codec converts a value of type V to and from cell text.
type Codec[V any] struct {
	Kind   Kind
	Encode func(v V, f Format) string
	Decode func(s string, f Format) (V, error)
}

// String passes text through unchanged.
func String() Codec[string] {
	return Codec[string]{
		Kind:   KindPlain,
		Encode: func(v string, _ Format) string { return v },
		Decode: func(s string, _ Format) (string, error) { return s, nil },
	}
}

// Int converts base-10 integers.
func Int() Codec[int] {
	return Codec[int]{
		Kind:   KindPlain,
		Encode: func(v int, _ Format) string { return strconv.Itoa(v) },
		Decode: func(s string, _ Format) (int, error) {
			return strconv.Atoi(strings.TrimSpace(s))
		},
	}
}

// Int64 converts base-10 64-bit integers.
func Int64() Codec[int64] {
	return Codec[int64]{
		Kind:   KindPlain,
		Encode: func(v int64, _ Format) string { return strconv.FormatInt(v, 10) },
		Decode: func(s string, _ Format) (int64, error) {
			return strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		},
	}
}

// Bool writes True/False, the spelling used by existing tables, and reads any
// spelling strconv.ParseBool accepts.
func Bool() Codec[bool] {
	return Codec[bool]{
		Kind: KindPlain,
		Encode: func(v bool, _ Format) string {
			if v {
				return "True"
			}
			return "False"
		},
		Decode: func(s string, _ Format) (bool, error) {
			return strconv.ParseBool(strings.TrimSpace(s))
		},
	}
}

// Float writes the shortest text that reads back to the same value.
func Float() Codec[float64] {
	return Codec[float64]{
		Kind:   KindPlain,
		Encode: func(v float64, _ Format) string { return strconv.FormatFloat(v, 'f', -1, 64) },
		Decode: parseDecimal,
	}
}

// Fixed writes decimals rounded half away from zero to Format.DecimalPlaces.
func Fixed() Codec[float64] {
	return Codec[float64]{
		Kind: KindFixed,
		Encode: func(v float64, f Format) string {
			if math.IsNaN(v) {
				v = 0
			}
			if math.IsInf(v, 0) {
				return strconv.FormatFloat(v, 'f', -1, 64)
			}
			return decimal.NewFromFloat(v).StringFixed(f.DecimalPlaces)
		},
		Decode: parseDecimal,
	}
}

func parseDecimal(s string, _ Format) (float64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, err
	}
	return d.InexactFloat64(), nil
}

// Date converts calendar dates. The zero time is written as an empty cell and
// an empty cell reads back as the zero time.
func Date() Codec[time.Time] {
	return Codec[time.Time]{
		Kind: KindDate,
		Encode: func(v time.Time, f Format) string {
			if v.IsZero() {
				return ""
			}
			return v.Format(f.DateLayout)
		},
		Decode: func(s string, f Format) (time.Time, error) {
			s = strings.TrimSpace(s)
			if s == "" {
				return time.Time{}, nil
			}
			return time.Parse(f.DateLayout, s)
		},
	}
}

// Optional wraps base for a nullable type N. unwrap reports the held value and
// whether it is present; wrap builds a present N from a value.
func Optional[N, V any](base Codec[V], unwrap func(N) (V, bool), wrap func(V) N) Codec[N] {
	return Codec[N]{
		Kind: KindOptional,
		Encode: func(n N, f Format) string {
			v, ok := unwrap(n)
			if !ok {
				return ""
			}
			return base.Encode(v, f)
		},
		Decode: func(s string, f Format) (N, error) {
			v, err := base.Decode(s, f)
			if err != nil {
				var zero N
				return zero, err
			}
			return wrap(v), nil
		},
	}
}

// OptionalInt8 converts nullable 64-bit integers.
func OptionalInt8() Codec[pgtype.Int8] {
	return Optional(Int64(),
		func(n pgtype.Int8) (int64, bool) { return n.Int64, n.Valid },
		func(v int64) pgtype.Int8 { return pgtype.Int8{Int64: v, Valid: true} },
	)
}

// OptionalDate converts nullable calendar dates.
func OptionalDate() Codec[pgtype.Date] {
	return Optional(Date(),
		func(d pgtype.Date) (time.Time, bool) { return d.Time, d.Valid },
		func(t time.Time) pgtype.Date { return pgtype.Date{Time: t, Valid: true} },
	)
}

// Symbol names one value of an enumeration.
type Symbol[E comparable] struct {
	Name  string
	Value E
}

// Enum converts values by their symbolic names. Names must match exactly;
// any other text fails with a *ConversionError.
func Enum[E comparable](symbols ...Symbol[E]) Codec[E] {
	names := make([]string, len(symbols))
	for i, s := range symbols {
		names[i] = s.Name
	}

	return Codec[E]{
		Kind: KindEnum,
		Encode: func(v E, _ Format) string {
			for _, s := range symbols {
				if s.Value == v {
					return s.Name
				}
			}
			return fmt.Sprint(v)
		},
		Decode: func(text string, _ Format) (E, error) {
			for _, s := range symbols {
				if s.Name == text {
					return s.Value, nil
				}
			}
			var zero E
			return zero, &ConversionError{Value: text, Symbols: names}
		},
	}
}
