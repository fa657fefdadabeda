package assert

import "testing"

func TestFieldsString(t *testing.T) {
	testCases := []struct {
		title    string
		fields   Fields
		expected string
	}{
		{title: "nil_fields", fields: nil, expected: ""},
		{title: "single_field", fields: Fields{"seed": 1}, expected: "seed:1"},
		{title: "sorted_keys", fields: Fields{"workers": 4, "chunk": 16}, expected: "chunk:16,workers:4"},
	}
	for _, tc := range testCases {
		t.Run(tc.title, func(t *testing.T) {
			if actual := tc.fields.String(); actual != tc.expected {
				t.Errorf("expected %q, actual %q", tc.expected, actual)
			}
		})
	}
}
