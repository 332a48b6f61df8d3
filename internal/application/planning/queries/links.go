package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/factoryplanner-go/internal/application/mediator"
	"github.com/andrescamacho/factoryplanner-go/internal/application/planning"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/logistics"
	"github.com/andrescamacho/factoryplanner-go/internal/domain/planner"
)

// ListLinksQuery lists logistics links, optionally only those touching FactoryID
type ListLinksQuery struct {
	FactoryID string
}

// ListLinksResponse holds links in creation order
type ListLinksResponse struct {
	Links []planner.LinkResponse
}

// ListLinksHandler handles the ListLinks query
type ListLinksHandler struct {
	session *planning.Session
}

// NewListLinksHandler creates a new ListLinksHandler
func NewListLinksHandler(session *planning.Session) *ListLinksHandler {
	return &ListLinksHandler{session: session}
}

// Handle executes the ListLinks query
func (h *ListLinksHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*ListLinksQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ListLinksQuery")
	}

	resp := &ListLinksResponse{Links: []planner.LinkResponse{}}
	err := h.session.Read(func(e *planner.Engine) error {
		links := e.Links()
		if query.FactoryID != "" {
			var err error
			if links, err = e.LinksForFactory(query.FactoryID); err != nil {
				return err
			}
		}
		resp.Links = appendLinks(resp.Links, links)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list links: %w", err)
	}
	return resp, nil
}

func appendLinks(dst []planner.LinkResponse, links []*logistics.Link) []planner.LinkResponse {
	for _, l := range links {
		dst = append(dst, planner.NewLinkResponse(l))
	}
	return dst
}
