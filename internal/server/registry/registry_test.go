package registry

import (
	"testing"

	"github.com/NaFo61/BervinovAcademy/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_ResolveCaseInsensitive(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("Specialization", []string{"title"}, nil))

	for _, name := range []string{"Specialization", "specialization", "SPECIALIZATION"} {
		k, ok := r.Resolve(name)
		require.True(t, ok, name)
		assert.Equal(t, "Specialization", k.Name)
	}

	_, ok := r.Resolve("Lesson")
	assert.False(t, ok)
}

func TestRegistry_DuplicateRegistration(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("Course", []string{"title"}, nil))

	err := r.Register("course", []string{"title"}, nil)
	assert.ErrorIs(t, err, common.ErrKindRegistered)
}

func TestKind_HasField(t *testing.T) {
	r := New()
	require.NoError(t, r.Register("Specialization", []string{"title", "description"}, nil))

	k, ok := r.Resolve("specialization")
	require.True(t, ok)

	assert.True(t, k.HasField("title"))
	assert.True(t, k.HasField("title_ru"))
	assert.True(t, k.HasField("title_en"))
	assert.True(t, k.HasField("description_en"))
	assert.False(t, k.HasField("slug"))
	assert.False(t, k.HasField("title_de"))
}
