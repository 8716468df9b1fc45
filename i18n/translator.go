package i18n

import "strings"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "type" or "constraint").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

var dictionaries = map[string]map[string]string{
	"en": {
		"cast_error":             "value does not conform to type {type} with format {format}",
		"required":               "value is required",
		"unique":                 "value must be unique",
		"too_short":              "too short",
		"too_long":               "too long",
		"too_small":              "too small",
		"too_big":                "too big",
		"pattern":                "does not match pattern",
		"invalid_enum":           "value is not one of the allowed values",
		"constraint_error":       "constraint {constraint} not satisfied",
		"row_length":             "row length does not match the number of fields",
		"parse_error":            "parse error",
		"schema_no_fields":       "schema has no fields",
		"schema_field_name":      "field has no name",
		"schema_duplicate_field": "duplicate field {name}",
		"schema_field_invalid":   "field {name} has an invalid descriptor",
		"schema_primary_key":     "primary key references unknown field {name}",
		"schema_foreign_key":     "foreign key references unknown field {name}",
		"schema_reference_size":  "foreign key has {fields} fields but reference has {reference}",
		"schema_constraints":     "constraints of field {name} must be an object",
		"schema_keys":            "{member} must be a field name or a list of field names",
	},
	"ja": {
		"cast_error":             "型 {type}（形式 {format}）に変換できません",
		"required":               "必須項目です",
		"unique":                 "値が重複しています",
		"too_short":              "短すぎます",
		"too_long":               "長すぎます",
		"too_small":              "小さすぎます",
		"too_big":                "大きすぎます",
		"pattern":                "パターンに一致しません",
		"invalid_enum":           "許可された値ではありません",
		"constraint_error":       "制約 {constraint} を満たしていません",
		"row_length":             "行の列数がフィールド数と一致しません",
		"parse_error":            "解析エラー",
		"schema_no_fields":       "フィールドがありません",
		"schema_field_name":      "フィールド名がありません",
		"schema_duplicate_field": "フィールド {name} が重複しています",
		"schema_field_invalid":   "フィールド {name} の定義が不正です",
		"schema_primary_key":     "主キーが未知のフィールド {name} を参照しています",
		"schema_foreign_key":     "外部キーが未知のフィールド {name} を参照しています",
		"schema_reference_size":  "外部キーのフィールド数 {fields} と参照先 {reference} が一致しません",
		"schema_constraints":     "フィールド {name} の制約はオブジェクトでなければなりません",
		"schema_keys":            "{member} はフィールド名またはその配列でなければなりません",
	},
}

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg, ok := dictionaries[t.lang][code]
	if !ok {
		return code
	}
	for k, v := range data {
		msg = strings.ReplaceAll(msg, "{"+k+"}", v)
	}
	return msg
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
