package auth

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spec-kit/catalog-service/internal/domain"
)

func TestMayMutate(t *testing.T) {
	tests := []struct {
		name      string
		subjectID int64
		role      domain.Role
		ownerID   int64
		want      bool
	}{
		{"owner may mutate own resource", 1, domain.RoleUser, 1, true},
		{"user may not mutate another's resource", 2, domain.RoleUser, 1, false},
		{"admin may mutate any resource", 3, domain.RoleAdmin, 1, true},
		{"admin may mutate own resource", 1, domain.RoleAdmin, 1, true},
		{"unknown role is denied even for owner", 1, domain.Role("SUPERVISOR"), 1, false},
		{"empty role is denied", 1, domain.Role(""), 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, MayMutate(tt.subjectID, tt.role, tt.ownerID))
		})
	}
}
