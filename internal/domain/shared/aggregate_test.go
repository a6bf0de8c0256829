package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBaseAggregateRoot_VersionMovesOncePerSave(t *testing.T) {
	a := NewBaseAggregateRoot()
	assert.Equal(t, 1, a.GetVersion())
	assert.False(t, a.IsPersisted())

	a.IncrementVersion()
	a.IncrementVersion()
	assert.Equal(t, 2, a.GetVersion())

	a.MarkPersisted()
	assert.True(t, a.IsPersisted())
	assert.Equal(t, 2, a.StoredVersion())

	a.IncrementVersion()
	assert.Equal(t, 3, a.GetVersion())
	assert.Equal(t, 2, a.StoredVersion())
}

func TestRestoreAggregateRoot(t *testing.T) {
	entity := NewBaseEntity()
	a := RestoreAggregateRoot(entity, 7)

	assert.Equal(t, entity.ID, a.ID)
	assert.Equal(t, 7, a.StoredVersion())
	assert.True(t, a.IsPersisted())
	assert.Empty(t, a.GetDomainEvents())

	a.AddDomainEvent(nil)
	assert.Len(t, a.GetDomainEvents(), 1)
	a.ClearDomainEvents()
	assert.Empty(t, a.GetDomainEvents())
}

func TestDomainError_Is(t *testing.T) {
	err := NewDomainError(ErrNotFound.Code, "Product not found")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrInvalidInput)
}

func TestFilter_Offset(t *testing.T) {
	f := DefaultFilter()
	assert.Equal(t, 0, f.Offset())
	f.Page = 3
	assert.Equal(t, 40, f.Offset())
}

func TestNewPaginated(t *testing.T) {
	p := NewPaginated([]int{1, 2}, 41, 1, 20)
	assert.Equal(t, 3, p.TotalPages)

	empty := NewPaginated([]int{}, 5, 1, 0)
	assert.Equal(t, 0, empty.TotalPages)
}
