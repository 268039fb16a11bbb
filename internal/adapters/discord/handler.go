package discord

import (
	"valuelife/internal/ports/input"
	"valuelife/internal/ports/output"
)

// Handler handles Discord interactions using the network use case.
type Handler struct {
	network    input.NetworkUseCase
	translator output.T
}

// NewHandler creates a Handler.
func NewHandler(network input.NetworkUseCase, translator output.T) *Handler {
	return &Handler{
		network:    network,
		translator: translator,
	}
}
