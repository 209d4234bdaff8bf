package ports

import (
	"testing"

	"github.com/aretw0/stepwise/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// RunFormContract verifies that a Form implementation adheres to the interface contract.
// answered must hold at least one property set to an explicit value.
func RunFormContract[S any](t *testing.T, form Form[S], answered S) {
	t.Helper()

	keys := form.Properties()
	require.NotEmpty(t, keys, "form should declare properties")

	t.Run("Every property has a lens", func(t *testing.T) {
		for _, key := range keys {
			_, ok := form.Lens(key)
			assert.True(t, ok, "missing lens for %q", key)
		}
	})

	t.Run("Visibility is idempotent", func(t *testing.T) {
		assigned := domain.NewKeySet()
		for _, key := range keys {
			first := form.CanShowProperty(key, answered, assigned)
			second := form.CanShowProperty(key, answered, assigned)
			assert.Equal(t, first, second, "visibility of %q changed between calls", key)
		}
	})

	t.Run("Set properties are not shown", func(t *testing.T) {
		for _, key := range keys {
			lens, _ := form.Lens(key)
			s := answered
			if _, set := lens.Get(&s); set {
				assert.False(t, form.CanShowProperty(key, answered, domain.NewKeySet()), "%q is already answered", key)
			}
		}
	})

	t.Run("Defaults are non-destructive", func(t *testing.T) {
		before := answered
		defaulted := form.ApplyDefaults(answered, domain.NewKeySet(keys...))
		for _, key := range keys {
			lens, _ := form.Lens(key)
			want, set := lens.Get(&before)
			if !set {
				continue
			}
			got, ok := lens.Get(&defaulted)
			assert.True(t, ok)
			assert.Equal(t, want, got, "default overwrote explicit answer for %q", key)
		}
	})
}
