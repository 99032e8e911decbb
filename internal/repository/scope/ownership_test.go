package scope

import (
	"testing"

	"smartnotes-be/internal/pkg/apperror"
	"smartnotes-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOwnedPrependsOwnerWithoutMutatingInput(t *testing.T) {
	userId := uuid.New()
	noteId := uuid.New()
	input := make([]specification.Specification, 1, 4)
	input[0] = specification.ByID{ID: noteId}

	scoped := Owned(userId, input...)

	require.Len(t, scoped, 2)
	assert.Equal(t, specification.OwnedBy{UserID: userId}, scoped[0])
	assert.Equal(t, specification.ByID{ID: noteId}, scoped[1])

	// The spare capacity of the input must stay untouched.
	assert.Len(t, input, 1)
	assert.Equal(t, specification.ByID{ID: noteId}, input[0])
	assert.Nil(t, input[:2][1])
}

func TestOwnedWithNoSpecs(t *testing.T) {
	userId := uuid.New()

	scoped := Owned(userId)

	assert.Equal(t, []specification.Specification{specification.OwnedBy{UserID: userId}}, scoped)
}

func TestNotebookFilter(t *testing.T) {
	notebookId := uuid.New()

	tests := []struct {
		name    string
		raw     string
		want    specification.Specification
		wantErr bool
	}{
		{"absent", "", nil, false},
		{"unassigned", "unassigned", specification.Unassigned{}, false},
		{"unassigned any case", "UnAssigned", specification.Unassigned{}, false},
		{"notebook id", notebookId.String(), specification.ByNotebookID{NotebookID: notebookId}, false},
		{"garbage", "not-an-id", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NotebookFilter(tt.raw)
			if tt.wantErr {
				assert.True(t, apperror.Is(err, apperror.KindValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestPage(t *testing.T) {
	assert.Equal(t, specification.Pagination{Limit: 10, Offset: 10}, Page(2, 10))
	assert.Equal(t, specification.Pagination{Limit: 25, Offset: 0}, Page(1, 25))
}
