package application

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanUnlink(t *testing.T) {
	tests := []struct {
		name      string
		requester string
		owner     string
		admin     string
		want      bool
	}{
		{"owner", "100", "100", "999", true},
		{"admin", "999", "100", "999", true},
		{"stranger", "200", "100", "999", false},
		{"no admin configured", "200", "100", "", false},
		{"empty requester never matches empty admin", "", "100", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, canUnlink(tt.requester, tt.owner, tt.admin))
		})
	}
}
