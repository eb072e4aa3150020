//go:build ignore

package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"petclinic-console/internal/session"
)

// generateSampleSessions writes one session hints file per role, matching the
// demo data the seed script inserts.
//
//	admin.json  sees every visit
//	vet.json    sees the visits of vet-helen
//	owner.json  sees the visits of George, the owner of Rex
//
// Point SESSION_FILE at one of them before running "livelist visits".
func main() {
	dataDir := "data/sessions"

	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	sessions := map[string]session.Hints{
		"admin.json": {
			Roles: []string{session.RoleAdmin},
			Email: "admin@petclinic.test",
		},
		"vet.json": {
			Roles:                  []string{session.RoleVet},
			PractitionerIDAndMonth: "vet-helen,2026-11",
			Email:                  "helen.leary@petclinic.test",
		},
		"owner.json": {
			Roles: []string{session.RoleOwner},
			UUID:  "3f59dca2-903e-495c-90c3-7f4d01f3a2aa",
			Email: "george@petclinic.test",
		},
	}

	for filename, hints := range sessions {
		path, err := hints.VisitsPath()
		if err != nil {
			log.Fatalf("Sample %s is invalid: %v", filename, err)
		}

		filePath := filepath.Join(dataDir, filename)
		if err := writeHints(filePath, hints); err != nil {
			log.Fatalf("Failed to create %s: %v", filename, err)
		}

		fmt.Printf("Created %s (visits stream: %s)\n", filePath, path)
	}
}

func writeHints(filePath string, hints session.Hints) error {
	data, err := json.MarshalIndent(hints, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode hints: %w", err)
	}
	return os.WriteFile(filePath, append(data, '\n'), 0o644)
}
