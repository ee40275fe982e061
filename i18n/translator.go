package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "kind" or "key").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	msg := t.lookup(code)
	if exp := data["expected"]; exp != "" {
		if t.lang == "ja" {
			return msg + "（期待値: " + exp + "）"
		}
		return msg + ": expected " + exp
	}
	return msg
}

func (t dictTranslator) lookup(code string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "mismatch":
			return "スキーマに一致しません"
		case "invalid_type":
			return "型が不正です"
		case "required":
			return "必須キーが不足しています"
		case "missing_item":
			return "要素が見つかりません"
		case "no_alternative":
			return "いずれの候補にも一致しません"
		case "duplicate_key":
			return "キーが重複しています"
		case "parse_error":
			return "解析エラー"
		case "truncated":
			return "打ち切られました"
		}
	default: // "en"
		switch code {
		case "mismatch":
			return "value does not match schema"
		case "invalid_type":
			return "invalid type"
		case "required":
			return "required key missing"
		case "missing_item":
			return "no list item matches"
		case "no_alternative":
			return "no alternative matches"
		case "duplicate_key":
			return "duplicate key"
		case "parse_error":
			return "parse error"
		case "truncated":
			return "truncated"
		}
	}
	return code
}

var (
	translatorMu      sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	SetTranslator(dictTranslator{lang: lang})
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version). Nil restores the English dictionary.
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	translatorMu.Lock()
	currentTranslator = tr
	translatorMu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	translatorMu.RLock()
	tr := currentTranslator
	translatorMu.RUnlock()
	return tr.Message(code, data)
}
