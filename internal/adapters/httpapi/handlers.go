package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"valuelife/internal/domain"
	"valuelife/internal/domain/entities"
)

type earningsView struct {
	Direct int64 `json:"direct"`
	Pair   int64 `json:"pair"`
	Total  int64 `json:"total"`
}

type participantView struct {
	ID                  uint         `json:"id"`
	Name                string       `json:"name"`
	SponsorID           uint         `json:"sponsor_id"`
	ParentID            uint         `json:"parent_id,omitempty"`
	Side                string       `json:"side,omitempty"`
	Active              bool         `json:"active"`
	DirectReferralCount int          `json:"direct_referral_count"`
	PairCount           int          `json:"pair_count"`
	Earnings            earningsView `json:"earnings"`
	LeftVolume          int          `json:"left_volume"`
	RightVolume         int          `json:"right_volume"`
	CreatedAt           time.Time    `json:"created_at"`
	ActivatedAt         *time.Time   `json:"activated_at,omitempty"`
}

type treeView struct {
	Participant participantView `json:"participant"`
	Left        *treeView       `json:"left,omitempty"`
	Right       *treeView       `json:"right,omitempty"`
}

type eventView struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

type statsView struct {
	Participants int   `json:"participants"`
	Active       int   `json:"active"`
	PairsFormed  int   `json:"pairs_formed"`
	DirectPaid   int64 `json:"direct_paid"`
	PairPaid     int64 `json:"pair_paid"`
	TotalPaid    int64 `json:"total_paid"`
}

func toParticipantView(p *entities.Participant) participantView {
	v := participantView{
		ID:                  p.ID,
		Name:                p.Name,
		SponsorID:           p.SponsorID,
		ParentID:            p.ParentID,
		Side:                string(p.Side),
		Active:              p.Active,
		DirectReferralCount: p.DirectReferralCount,
		PairCount:           p.PairCount,
		Earnings: earningsView{
			Direct: p.Earnings.Direct,
			Pair:   p.Earnings.Pair,
			Total:  p.Earnings.Total,
		},
		LeftVolume:  p.LeftVolume,
		RightVolume: p.RightVolume,
		CreatedAt:   p.CreatedAt,
	}
	if !p.ActivatedAt.IsZero() {
		t := p.ActivatedAt
		v.ActivatedAt = &t
	}
	return v
}

func toTreeView(n *entities.TreeNode) *treeView {
	if n == nil {
		return nil
	}
	return &treeView{
		Participant: toParticipantView(&n.Participant),
		Left:        toTreeView(n.Left),
		Right:       toTreeView(n.Right),
	}
}

func toEventViews(events []entities.AuditEvent) []eventView {
	out := make([]eventView, len(events))
	for i, ev := range events {
		out[i] = eventView{
			ID:         ev.ID,
			Kind:       ev.Kind,
			Message:    ev.Message,
			OccurredAt: ev.OccurredAt,
		}
	}
	return out
}

func parseID(r *http.Request) (uint, bool) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

type addParticipantRequest struct {
	SponsorID uint   `json:"sponsor_id"`
	Name      string `json:"name"`
}

func (s *Server) handleAddParticipant(w http.ResponseWriter, r *http.Request) {
	var req addParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    "invalid_body",
			Message: "request body must be JSON with sponsor_id and name",
		}})
		return
	}
	p, err := s.network.AddParticipant(r.Context(), req.SponsorID, req.Name)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toParticipantView(p))
}

type activateResponse struct {
	Changed bool        `json:"changed"`
	Events  []eventView `json:"events"`
}

func (s *Server) handleActivate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    "invalid_id",
			Message: "participant id must be a positive integer",
		}})
		return
	}
	events, err := s.network.MarkActive(r.Context(), id)
	if err != nil {
		// Already active is a benign no-op, distinguishable from success.
		if errors.Is(err, domain.ErrAlreadyActive) {
			writeJSON(w, http.StatusOK, activateResponse{Changed: false, Events: []eventView{}})
			return
		}
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activateResponse{Changed: true, Events: toEventViews(events)})
}

func (s *Server) handleGetParticipant(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(r)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
			Code:    "invalid_id",
			Message: "participant id must be a positive integer",
		}})
		return
	}
	p, err := s.network.GetParticipant(r.Context(), id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toParticipantView(p))
}

func (s *Server) handleListParticipants(w http.ResponseWriter, r *http.Request) {
	participants, err := s.network.ListParticipants(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	out := make([]participantView, len(participants))
	for i := range participants {
		out[i] = toParticipantView(&participants[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleGetTree(w http.ResponseWriter, r *http.Request) {
	tree, err := s.network.GetTree(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]*treeView{"root": toTreeView(tree)})
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.network.ListEvents(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toEventViews(events))
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.network.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, statsView{
		Participants: stats.Participants,
		Active:       stats.Active,
		PairsFormed:  stats.PairsFormed,
		DirectPaid:   stats.DirectPaid,
		PairPaid:     stats.PairPaid,
		TotalPaid:    stats.TotalPaid,
	})
}
