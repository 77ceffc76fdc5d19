package helpers

import (
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
)

func TestFoldErrors(t *testing.T) {
	t.Parallel()

	e1 := errors.New("first")
	e2 := errors.NotValidf("second")
	cases := []struct {
		name   string
		input  []error
		expect string
	}{
		{"empty", nil, ""},
		{"all-nil", []error{nil, nil}, ""},
		{"single", []error{nil, e1}, "first"},
		{"many", []error{e1, nil, e2}, "first\nsecond not valid"},
	}
	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			err := FoldErrors(c.input)
			if c.expect == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, c.expect)
		})
	}

	assert.True(t, errors.IsNotValid(FoldErrors([]error{nil, e2})))
}
