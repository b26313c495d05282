package handlers

import "github.com/almahdy86/t-event/internal/models"

type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

type MessageResponse struct {
	Message string `json:"message" example:"operation successful"`
}

// Type aliases so swag can resolve models in annotations.
type Participant = models.Participant
type Question = models.Question
type Photo = models.Photo
