package stringsutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitTrimmed(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, SplitTrimmed(" a , ,b ", ","))
	assert.Nil(t, SplitTrimmed("", ","))
}
