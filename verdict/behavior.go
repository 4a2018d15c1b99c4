package verdict

import "strings"

// Behavior is the verdict the fuzzing engine assigns to a case.
type Behavior string

const (
	OK             Behavior = "OK"
	NonStrict      Behavior = "NON_STRICT"
	WrongCode      Behavior = "WRONG_CODE"
	Unclean        Behavior = "UNCLEAN"
	Failed         Behavior = "FAILED"
	FailedByClient Behavior = "FAILED_BY_CLIENT"
	Informational  Behavior = "INFORMATIONAL"
	Unimplemented  Behavior = "UNIMPLEMENTED"
)

// AllBehaviors lists every known verdict.
var AllBehaviors = []Behavior{
	OK,
	NonStrict,
	WrongCode,
	Unclean,
	Failed,
	FailedByClient,
	Informational,
	Unimplemented,
}

var separatorReplacer = strings.NewReplacer(" ", "_", "-", "_")

// ParseBehavior converts an engine verdict string such as "NON-STRICT" or "WRONG CODE"
// to a Behavior. Strings outside the known vocabulary give an UnknownBehaviorError.
func ParseBehavior(value string) (Behavior, error) {
	b := Behavior(separatorReplacer.Replace(value))
	for _, known := range AllBehaviors {
		if b == known {
			return known, nil
		}
	}
	return "", &UnknownBehaviorError{Value: value}
}

func (b Behavior) String() string {
	return string(b)
}
