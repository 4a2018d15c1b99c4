package verdict

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBehavior(t *testing.T) {
	for _, p := range []struct {
		value    string
		expected Behavior
	}{
		{"OK", OK},
		{"NON-STRICT", NonStrict},
		{"NON_STRICT", NonStrict},
		{"WRONG CODE", WrongCode},
		{"UNCLEAN", Unclean},
		{"FAILED", Failed},
		{"FAILED BY CLIENT", FailedByClient},
		{"FAILED-BY-CLIENT", FailedByClient},
		{"INFORMATIONAL", Informational},
		{"UNIMPLEMENTED", Unimplemented},
	} {
		t.Run(p.value, func(t *testing.T) {
			b, err := ParseBehavior(p.value)
			require.NoError(t, err)
			assert.Equal(t, p.expected, b)
		})
	}
}

func TestParseBehaviorRejectsUnknownValues(t *testing.T) {
	for _, value := range []string{"", "ok", "PASSED", "WRONG  CODE", "OK "} {
		t.Run(value, func(t *testing.T) {
			_, err := ParseBehavior(value)
			var unknown *UnknownBehaviorError
			require.True(t, errors.As(err, &unknown), "unexpected error: %v", err)
			assert.Equal(t, value, unknown.Value)
		})
	}
}

func TestEveryBehaviorParsesAsItself(t *testing.T) {
	for _, b := range AllBehaviors {
		parsed, err := ParseBehavior(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, parsed)
	}
}
