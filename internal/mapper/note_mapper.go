package mapper

import (
	"encoding/json"

	"smartnotes-be/internal/entity"
	"smartnotes-be/internal/model"

	"github.com/pgvector/pgvector-go"
	"gorm.io/datatypes"
)

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

func (m *NoteMapper) ToEntity(n *model.Note) *entity.Note {
	if n == nil {
		return nil
	}

	var embedding []float32
	if n.Embedding != nil {
		embedding = n.Embedding.Slice()
	}

	var scores map[string]float64
	if len(n.TagScores) > 0 {
		// Malformed scores are dropped; the tag itself stays authoritative.
		_ = json.Unmarshal(n.TagScores, &scores)
	}

	return &entity.Note{
		Id:         n.Id,
		Title:      n.Title,
		Content:    n.Content,
		NotebookId: n.NotebookId,
		UserId:     n.UserId,
		AiTag:      n.AiTag,
		TagScores:  scores,
		Embedding:  embedding,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

func (m *NoteMapper) ToModel(n *entity.Note) *model.Note {
	if n == nil {
		return nil
	}

	var embedding *pgvector.Vector
	if len(n.Embedding) > 0 {
		v := pgvector.NewVector(n.Embedding)
		embedding = &v
	}

	var scores datatypes.JSON
	if len(n.TagScores) > 0 {
		if raw, err := json.Marshal(n.TagScores); err == nil {
			scores = datatypes.JSON(raw)
		}
	}

	aiTag := n.AiTag
	if aiTag == "" {
		aiTag = entity.DefaultAiTag
	}

	return &model.Note{
		Id:         n.Id,
		Title:      n.Title,
		Content:    n.Content,
		NotebookId: n.NotebookId,
		UserId:     n.UserId,
		AiTag:      aiTag,
		TagScores:  scores,
		Embedding:  embedding,
		CreatedAt:  n.CreatedAt,
		UpdatedAt:  n.UpdatedAt,
	}
}

// ToColumns maps a patch to the column assignments it overwrites.
func (m *NoteMapper) ToColumns(p entity.NotePatch) map[string]interface{} {
	cols := make(map[string]interface{})
	if p.Title != nil {
		cols["title"] = *p.Title
	}
	if p.Content != nil {
		cols["content"] = *p.Content
	}
	if p.SetNotebook {
		if p.NotebookId == nil {
			cols["notebook_id"] = nil
		} else {
			cols["notebook_id"] = *p.NotebookId
		}
	}
	if p.AiTag != nil {
		cols["ai_tag"] = *p.AiTag
	}
	if p.TagScores != nil {
		cols["tag_scores"] = nil
		if len(p.TagScores) > 0 {
			if raw, err := json.Marshal(p.TagScores); err == nil {
				cols["tag_scores"] = datatypes.JSON(raw)
			}
		}
	}
	return cols
}

func (m *NoteMapper) ToEntities(notes []*model.Note) []*entity.Note {
	entities := make([]*entity.Note, len(notes))
	for i, n := range notes {
		entities[i] = m.ToEntity(n)
	}
	return entities
}

func (m *NoteMapper) ToScoredEntities(rows []*model.ScoredNote) []*entity.ScoredNote {
	scored := make([]*entity.ScoredNote, len(rows))
	for i, r := range rows {
		scored[i] = &entity.ScoredNote{
			Note:  m.ToEntity(&r.Note),
			Score: r.Score,
		}
	}
	return scored
}
