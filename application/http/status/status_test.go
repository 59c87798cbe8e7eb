package status

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromCode(t *testing.T) {
	testcases := []struct {
		desc     string
		code     int
		expected Status
		found    bool
	}{
		{
			desc:     "ok",
			code:     200,
			expected: OK,
			found:    true,
		},
		{
			desc:     "not modified",
			code:     304,
			expected: Status{304, "Not Modified"},
			found:    true,
		},
		{
			desc:     "non standard",
			code:     599,
			expected: Status{599, ""},
		},
		{
			desc:     "unused 306",
			code:     306,
			expected: Status{306, ""},
		},
	}

	for _, tc := range testcases {
		t.Run(tc.desc, func(t *testing.T) {
			s, ok := FromCode(tc.code)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.expected, s)
		})
	}
}

func TestText(t *testing.T) {
	assert.Equal(t, "Not Found", Text(404))
	assert.Equal(t, "Too Many Requests", Text(429))
	assert.Equal(t, "", Text(799))
}

func TestIsNullBody(t *testing.T) {
	for _, code := range []int{101, 103, 204, 205, 304} {
		assert.True(t, IsNullBody(code), code)
	}
	for _, code := range []int{100, 200, 206, 302, 404, 500} {
		assert.False(t, IsNullBody(code), code)
	}
}
