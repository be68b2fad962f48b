package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSecureFilename(t *testing.T) {
	testCases := []struct {
		Name     string
		Input    string
		Expected string
	}{
		{
			Name:     "plain filename",
			Input:    "lamp.png",
			Expected: "lamp.png",
		},
		{
			Name:     "path traversal",
			Input:    "../../etc/passwd",
			Expected: "passwd",
		},
		{
			Name:     "windows path",
			Input:    `C:\Users\fadi\photo.jpg`,
			Expected: "photo.jpg",
		},
		{
			Name:     "spaces and unicode",
			Input:    "my fancy lämp.png",
			Expected: "my_fancy_l_mp.png",
		},
		{
			Name:     "leading dots stripped",
			Input:    "..hidden.png",
			Expected: "hidden.png",
		},
		{
			Name:     "only dots",
			Input:    "...",
			Expected: "",
		},
		{
			Name:     "empty",
			Input:    "",
			Expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			assert.Equal(t, tc.Expected, SecureFilename(tc.Input))
		})
	}
}
