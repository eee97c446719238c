package domain

// AnswerKind is the semantic category of a reply.
type AnswerKind string

const (
	AnswerYes      AnswerKind = "yes"
	AnswerNo       AnswerKind = "no"
	AnswerDuration AnswerKind = "duration"
	AnswerDelivery AnswerKind = "delivery"
	AnswerQuery    AnswerKind = "query"
)

// DeliveryMethod is how a document reaches the citizen.
type DeliveryMethod string

const (
	DeliveryBranch DeliveryMethod = "branch"
	DeliveryPost   DeliveryMethod = "post"
)

// Answer is a classified reply. Value carries the raw text for Duration and Query;
// Delivery is set only for AnswerDelivery.
type Answer struct {
	Kind     AnswerKind     `json:"kind"`
	Value    string         `json:"value,omitempty"`
	Delivery DeliveryMethod `json:"delivery,omitempty"`
}

// Yes is the affirmative answer.
func Yes() Answer { return Answer{Kind: AnswerYes} }

// No is the negative answer.
func No() Answer { return Answer{Kind: AnswerNo} }

// Duration carries the raw duration text verbatim.
func Duration(raw string) Answer { return Answer{Kind: AnswerDuration, Value: raw} }

// Delivery carries the resolved delivery method.
func Delivery(method DeliveryMethod) Answer {
	return Answer{Kind: AnswerDelivery, Delivery: method}
}

// FreeQuery carries the raw trimmed text.
func FreeQuery(raw string) Answer { return Answer{Kind: AnswerQuery, Value: raw} }

// Valid reports whether the answer has a known kind and its payload is consistent.
func (a Answer) Valid() bool {
	switch a.Kind {
	case AnswerYes, AnswerNo, AnswerDuration, AnswerQuery:
		return true
	case AnswerDelivery:
		return a.Delivery == DeliveryBranch || a.Delivery == DeliveryPost
	}
	return false
}
