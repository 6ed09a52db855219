package dto

type CreateTributeRequestDTO struct {
	AuthorName string `json:"author_name" binding:"required"`
	Message    string `json:"message" binding:"required"`
}
