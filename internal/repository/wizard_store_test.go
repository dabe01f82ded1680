package repository

import (
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestWizardKey(t *testing.T) {
	id := uuid.MustParse("6f1c3a4e-8a51-4c86-9f0e-3d2b1a0c9e77")
	key := wizardKey(id)
	if !strings.HasPrefix(key, wizardKeyPrefix) || !strings.HasSuffix(key, id.String()) {
		t.Fatalf("unexpected key %s", key)
	}
}
