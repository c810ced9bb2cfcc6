// pkg/creditscore/profile.go
package creditscore

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Profile field names as they appear in JSON documents and job variables.
const (
	FieldPaymentHistoryScore = "paymentHistoryScore"
	FieldMonthlyIncome       = "monthlyIncome"
	FieldMonthsEmployed      = "monthsEmployed"
	FieldReferenceScore      = "referenceScore"
	FieldLocationScore       = "locationScore"
)

// ProfileFields lists every required profile field in a stable order.
var ProfileFields = []string{
	FieldPaymentHistoryScore,
	FieldMonthlyIncome,
	FieldMonthsEmployed,
	FieldReferenceScore,
	FieldLocationScore,
}

// ParseProfile builds a ClientProfile from loosely typed fields, such as decoded
// job variables. Absent, null or non-numeric fields yield an *InvalidProfileError.
// Numeric ranges are not checked.
func ParseProfile(fields map[string]interface{}) (ClientProfile, error) {
	values := make(map[string]float64, len(ProfileFields))
	perr := &InvalidProfileError{}

	for _, name := range ProfileFields {
		raw, ok := fields[name]
		if !ok || raw == nil {
			perr.Missing = append(perr.Missing, name)
			continue
		}
		v, err := parseNumber(raw)
		if err != nil {
			perr.Invalid = append(perr.Invalid, name)
			continue
		}
		values[name] = v
	}

	if len(perr.Missing) > 0 || len(perr.Invalid) > 0 {
		return ClientProfile{}, perr
	}

	return ClientProfile{
		PaymentHistoryScore: toInt(values[FieldPaymentHistoryScore]),
		MonthlyIncome:       values[FieldMonthlyIncome],
		MonthsEmployed:      toInt(values[FieldMonthsEmployed]),
		ReferenceScore:      toInt(values[FieldReferenceScore]),
		LocationScore:       toInt(values[FieldLocationScore]),
	}, nil
}

// DecodeProfile parses a JSON object into a ClientProfile.
func DecodeProfile(data []byte) (ClientProfile, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]interface{}
	if err := dec.Decode(&fields); err != nil {
		return ClientProfile{}, fmt.Errorf("%w: %v", ErrInvalidProfile, err)
	}
	if fields == nil {
		return ClientProfile{}, &InvalidProfileError{Missing: append([]string(nil), ProfileFields...)}
	}
	return ParseProfile(fields)
}

// ToMap renders the profile with its JSON field names.
func (p ClientProfile) ToMap() map[string]interface{} {
	return map[string]interface{}{
		FieldPaymentHistoryScore: p.PaymentHistoryScore,
		FieldMonthlyIncome:       p.MonthlyIncome,
		FieldMonthsEmployed:      p.MonthsEmployed,
		FieldReferenceScore:      p.ReferenceScore,
		FieldLocationScore:       p.LocationScore,
	}
}

// toInt truncates f toward zero, saturating at the int range so huge inputs keep
// their sign.
func toInt(f float64) int {
	switch {
	case f >= math.MaxInt:
		return math.MaxInt
	case f <= math.MinInt:
		return math.MinInt
	default:
		return int(f)
	}
}

func parseNumber(raw interface{}) (float64, error) {
	var f float64
	switch v := raw.(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int32:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, err
		}
		f = parsed
	case string:
		cleaned := strings.TrimSpace(strings.ReplaceAll(v, ",", ""))
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, err
		}
		f = parsed
	default:
		return 0, fmt.Errorf("not a number: %T", raw)
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("not a finite number: %v", f)
	}
	return f, nil
}
