package mapper

import (
	"testing"

	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

func TestNoteMapperEmbeddingAndScores(t *testing.T) {
	m := NewNoteMapper()
	note := &entity.Note{
		Id:        uuid.New(),
		Title:     "t",
		Content:   "c",
		UserId:    uuid.New(),
		TagScores: map[string]float64{"Work": 0.9},
		Embedding: []float32{0.1, 0.2},
	}

	row := m.ToModel(note)
	assert.Equal(t, entity.DefaultAiTag, row.AiTag)
	if assert.NotNil(t, row.Embedding) {
		assert.Equal(t, []float32{0.1, 0.2}, row.Embedding.Slice())
	}

	back := m.ToEntity(row)
	assert.Equal(t, note.Embedding, back.Embedding)
	assert.InDelta(t, 0.9, back.TagScores["Work"], 1e-9)
}

func TestNoteMapperWithoutEmbedding(t *testing.T) {
	m := NewNoteMapper()

	row := m.ToModel(&entity.Note{Id: uuid.New(), AiTag: "Work"})
	assert.Nil(t, row.Embedding)
	assert.Nil(t, row.TagScores)

	back := m.ToEntity(&model.Note{Id: row.Id, AiTag: "Work"})
	assert.False(t, back.HasEmbedding())
	assert.Nil(t, back.NotebookId)
}

func TestNoteMapperToColumns(t *testing.T) {
	m := NewNoteMapper()
	title := "renamed"
	notebookId := uuid.New()

	assert.Empty(t, m.ToColumns(entity.NotePatch{}))

	cols := m.ToColumns(entity.NotePatch{Title: &title, SetNotebook: true, NotebookId: &notebookId})
	assert.Equal(t, map[string]interface{}{"title": "renamed", "notebook_id": notebookId}, cols)

	cleared := m.ToColumns(entity.NotePatch{SetNotebook: true, TagScores: map[string]float64{}})
	assert.Contains(t, cleared, "notebook_id")
	assert.Nil(t, cleared["notebook_id"])
	assert.Contains(t, cleared, "tag_scores")
	assert.Nil(t, cleared["tag_scores"])

	scored := m.ToColumns(entity.NotePatch{TagScores: map[string]float64{"Work": 0.5}})
	assert.JSONEq(t, `{"Work":0.5}`, string(scored["tag_scores"].(datatypes.JSON)))
}
