package entity

import "encoding/json"

// AnswerKind discriminates the shapes an answer value can take.
type AnswerKind int

const (
	AnswerKindString AnswerKind = iota
	AnswerKindNumber
	AnswerKindBool
	AnswerKindStringList
)

// AnswerValue is a closed union over the value shapes a suggested answer can
// take: string, number, boolean or list of strings. The active shape always
// matches the owning question's declared type; values enter the union through
// shape coercion, never straight from model output.
type AnswerValue struct {
	kind AnswerKind
	str  string
	num  float64
	b    bool
	list []string
}

func StringAnswer(s string) AnswerValue { return AnswerValue{kind: AnswerKindString, str: s} }

func NumberAnswer(n float64) AnswerValue { return AnswerValue{kind: AnswerKindNumber, num: n} }

func BoolAnswer(v bool) AnswerValue { return AnswerValue{kind: AnswerKindBool, b: v} }

func ListAnswer(items []string) AnswerValue {
	if items == nil {
		items = []string{}
	}
	return AnswerValue{kind: AnswerKindStringList, list: items}
}

func (v AnswerValue) Kind() AnswerKind { return v.kind }

func (v AnswerValue) Text() string { return v.str }

func (v AnswerValue) Number() float64 { return v.num }

func (v AnswerValue) Bool() bool { return v.b }

func (v AnswerValue) List() []string { return v.list }

// Raw returns the underlying value as a plain Go value, the shape answer
// maps carry it in.
func (v AnswerValue) Raw() any {
	switch v.kind {
	case AnswerKindNumber:
		return v.num
	case AnswerKindBool:
		return v.b
	case AnswerKindStringList:
		return v.list
	default:
		return v.str
	}
}

// MarshalJSON emits the bare underlying value, so the union is invisible on
// the wire: "text", 3, true or ["a","b"].
func (v AnswerValue) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Raw())
}
