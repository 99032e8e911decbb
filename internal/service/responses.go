package service

import (
	"smartnotes-be/internal/dto"
	"smartnotes-be/internal/entity"
)

func toNoteResponse(n *entity.Note) *dto.NoteResponse {
	return &dto.NoteResponse{
		Id:           n.Id,
		Title:        n.Title,
		Content:      n.Content,
		NotebookId:   n.NotebookId,
		UserId:       n.UserId,
		AiTag:        n.AiTag,
		TagScores:    n.TagScores,
		HasEmbedding: n.HasEmbedding(),
		CreatedAt:    n.CreatedAt,
		UpdatedAt:    n.UpdatedAt,
	}
}

func toNoteResponses(notes []*entity.Note) []*dto.NoteResponse {
	res := make([]*dto.NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, toNoteResponse(n))
	}
	return res
}

func toNotebookResponse(nb *entity.Notebook) *dto.NotebookResponse {
	return &dto.NotebookResponse{
		Id:        nb.Id,
		Name:      nb.Name,
		UserId:    nb.UserId,
		CreatedAt: nb.CreatedAt,
		UpdatedAt: nb.UpdatedAt,
	}
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		Id:        u.Id,
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		HasGoogle: u.GoogleId != nil,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
