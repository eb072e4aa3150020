package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"petclinic-console/internal/model"
)

// GetVisit returns one visit.
func (c *Client) GetVisit(ctx context.Context, visitID string) (model.Visit, error) {
	var out model.Visit
	err := c.DoJSON(ctx, http.MethodGet, "/visits/"+url.PathEscape(visitID), nil, nil, &out)
	return out, err
}

// UpdateVisitStatus moves a visit to status.
func (c *Client) UpdateVisitStatus(ctx context.Context, visitID string, status model.VisitStatus) (model.Visit, error) {
	if !status.Valid() {
		return model.Visit{}, fmt.Errorf("invalid visit status %q", status)
	}

	var out model.Visit
	path := "/visits/" + url.PathEscape(visitID) + "/status/" + url.PathEscape(string(status))
	err := c.DoJSON(ctx, http.MethodPut, path, nil, nil, &out)
	return out, err
}

// AdvanceVisit moves a visit one step along UPCOMING, CONFIRMED, COMPLETED.
func (c *Client) AdvanceVisit(ctx context.Context, v model.Visit) (model.Visit, error) {
	next := v.Status.Next()
	if next == v.Status {
		return v, nil
	}
	return c.UpdateVisitStatus(ctx, v.VisitID, next)
}

// DeleteVisit removes a visit.
func (c *Client) DeleteVisit(ctx context.Context, visitID string) error {
	return c.DoJSON(ctx, http.MethodDelete, "/visits/"+url.PathEscape(visitID), nil, nil, nil)
}
