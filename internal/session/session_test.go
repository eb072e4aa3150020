package session

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ownerID = "3f59dca2-903e-495c-90c3-7f4d01f3a2aa"

func TestHints_VisitsPath(t *testing.T) {
	tests := []struct {
		name    string
		hints   Hints
		want    string
		wantErr bool
	}{
		{
			name:  "admin",
			hints: Hints{Roles: []string{RoleAdmin, RoleVet}},
			want:  "/visits",
		},
		{
			name:  "vet uses practitioner id before the comma",
			hints: Hints{Roles: []string{RoleVet}, PractitionerIDAndMonth: "69f85d2e-625b-11ee-8c99-0242ac120002,2024-05"},
			want:  "/visits/vets/69f85d2e-625b-11ee-8c99-0242ac120002",
		},
		{
			name:  "vet without month",
			hints: Hints{Roles: []string{RoleVet}, PractitionerIDAndMonth: "vet-1"},
			want:  "/visits/vets/vet-1",
		},
		{
			name:    "vet without practitioner id",
			hints:   Hints{Roles: []string{RoleVet}, PractitionerIDAndMonth: ",2024-05"},
			wantErr: true,
		},
		{
			name:  "owner",
			hints: Hints{Roles: []string{RoleOwner}, UUID: ownerID},
			want:  "/visits/owners/" + ownerID,
		},
		{
			name:    "owner without id",
			hints:   Hints{Roles: []string{RoleOwner}},
			wantErr: true,
		},
		{
			name:    "no matching role",
			hints:   Hints{Roles: []string{"INVENTORY_MANAGER"}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.hints.VisitsPath()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoVisitAccess)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:  "valid",
			input: `{"roles":["OWNER"],"UUID":"` + ownerID + `","email":"owner@example.com"}`,
		},
		{
			name:    "no roles",
			input:   `{"roles":[]}`,
			wantErr: "Roles",
		},
		{
			name:    "bad uuid",
			input:   `{"roles":["OWNER"],"UUID":"not-a-uuid"}`,
			wantErr: "UUID",
		},
		{
			name:    "bad email",
			input:   `{"roles":["ADMIN"],"email":"nope"}`,
			wantErr: "Email",
		},
		{
			name:    "not json",
			input:   `roles=ADMIN`,
			wantErr: "failed to decode",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.input))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"roles":["ADMIN"],"email":"admin@example.com"}`), 0o600))

	h, err := Load(path)
	require.NoError(t, err)
	assert.True(t, h.HasRole(RoleAdmin))
	assert.False(t, h.HasRole(RoleOwner))

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
