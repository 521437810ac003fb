package model

import "strconv"

// Storage keeps platform settings as strings: booleans are the literal
// "true"/"false", numbers are decimal strings, everything else is the
// raw value. The registry below is the single source of the per-key
// value kind; the encode/decode helpers are explicit rather than
// sniffing types on read.

type settingKind int

const (
	settingString settingKind = iota
	settingBool
	settingInt
	settingFloat
)

var settingKinds = map[string]settingKind{
	"siteName":           settingString,
	"supportEmail":       settingString,
	"currency":           settingString,
	"maintenanceMode":    settingBool,
	"allowRegistration":  settingBool,
	"autoApproveOwners":  settingBool,
	"maxBookingsPerUser": settingInt,
	"commissionRate":     settingFloat,
}

// KnownSettingKey reports whether key is one the store understands.
// Unknown keys in a patch are ignored, not rejected, to tolerate skew
// between UI and store versions.
func KnownSettingKey(key string) bool {
	_, ok := settingKinds[key]
	return ok
}

// SettingRows encodes a typed settings value into its string-per-key
// storage form.
func SettingRows(s PlatformSettings) map[string]string {
	return map[string]string{
		"siteName":           s.SiteName,
		"supportEmail":       s.SupportEmail,
		"currency":           s.Currency,
		"maintenanceMode":    encodeBool(s.MaintenanceMode),
		"allowRegistration":  encodeBool(s.AllowRegistration),
		"autoApproveOwners":  encodeBool(s.AutoApproveOwners),
		"maxBookingsPerUser": strconv.Itoa(s.MaxBookingsPerUser),
		"commissionRate":     strconv.FormatFloat(s.CommissionRate, 'f', -1, 64),
	}
}

// ApplySettingRow decodes one persisted row onto s. It returns false
// for unknown keys and for values that fail to parse; in both cases s
// keeps its previous (default) value for that key.
func ApplySettingRow(s *PlatformSettings, key, value string) bool {
	switch key {
	case "siteName":
		s.SiteName = value
	case "supportEmail":
		s.SupportEmail = value
	case "currency":
		s.Currency = value
	case "maintenanceMode":
		return applyBool(&s.MaintenanceMode, value)
	case "allowRegistration":
		return applyBool(&s.AllowRegistration, value)
	case "autoApproveOwners":
		return applyBool(&s.AutoApproveOwners, value)
	case "maxBookingsPerUser":
		n, err := strconv.Atoi(value)
		if err != nil {
			return false
		}
		s.MaxBookingsPerUser = n
	case "commissionRate":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return false
		}
		s.CommissionRate = f
	default:
		return false
	}
	return true
}

// EncodeSettingValue converts a decoded JSON patch value into the
// storage string for key. ok is false when the key is unknown or the
// value's type does not match the key's kind; callers skip such
// entries.
func EncodeSettingValue(key string, v any) (string, bool) {
	kind, known := settingKinds[key]
	if !known {
		return "", false
	}
	switch kind {
	case settingString:
		s, ok := v.(string)
		return s, ok
	case settingBool:
		b, ok := v.(bool)
		if !ok {
			return "", false
		}
		return encodeBool(b), true
	case settingInt:
		switch n := v.(type) {
		case float64: // JSON numbers decode as float64
			return strconv.Itoa(int(n)), true
		case int:
			return strconv.Itoa(n), true
		}
		return "", false
	case settingFloat:
		switch n := v.(type) {
		case float64:
			return strconv.FormatFloat(n, 'f', -1, 64), true
		case int:
			return strconv.Itoa(n), true
		}
		return "", false
	}
	return "", false
}

func encodeBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

func applyBool(dst *bool, value string) bool {
	switch value {
	case "true":
		*dst = true
	case "false":
		*dst = false
	default:
		return false
	}
	return true
}
