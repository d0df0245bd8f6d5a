package sheetinspect

import (
	"fmt"
	"strconv"
	"time"
)

const (
	TypeInt      = "int64"
	TypeFloat    = "float64"
	TypeBool     = "bool"
	TypeDateTime = "datetime64"
	TypeObject   = "object"
)

func valueKind(v interface{}) string {
	switch v.(type) {
	case nil:
		return ""
	case int64:
		return TypeInt
	case float64:
		return TypeFloat
	case bool:
		return TypeBool
	case time.Time:
		return TypeDateTime
	default:
		return TypeObject
	}
}

// predominantType picks the most common kind. Ints and floats vote together
// as numbers; one float makes the column float64. A column with no values is
// float64, ties fall back to object.
func predominantType(counts map[string]int) string {
	numeric := counts[TypeInt] + counts[TypeFloat]
	if numeric+counts[TypeBool]+counts[TypeDateTime]+counts[TypeObject] == 0 {
		return TypeFloat
	}

	best, bestCount, tie := "", 0, false
	for _, kind := range []string{TypeObject, TypeBool, TypeDateTime} {
		n := counts[kind]
		switch {
		case n > bestCount:
			best, bestCount, tie = kind, n, false
		case n == bestCount && n > 0:
			tie = true
		}
	}
	switch {
	case numeric > bestCount:
		if counts[TypeFloat] > 0 {
			return TypeFloat
		}
		return TypeInt
	case numeric == bestCount || tie:
		return TypeObject
	}
	return best
}

// formatValue renders a cell for console and markdown output.
func formatValue(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return "True"
		}
		return "False"
	case time.Time:
		if x.Hour() == 0 && x.Minute() == 0 && x.Second() == 0 && x.Nanosecond() == 0 {
			return x.Format("2006-01-02")
		}
		return x.Format("2006-01-02 15:04:05")
	default:
		return fmt.Sprintf("%v", x)
	}
}
