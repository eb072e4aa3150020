package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"petclinic-console/internal/sse"
)

// CollectStream reads a whole streamed response and decodes every "data:"
// chunk as a T. Chunks that do not decode are dropped.
func CollectStream[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	req, err := c.newRequest(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", sse.ContentType)

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}

	chunks := sse.SplitData(string(raw))
	out := make([]T, 0, len(chunks))
	for _, chunk := range chunks {
		var item T
		if err := json.Unmarshal([]byte(chunk), &item); err != nil {
			c.logger.Debug().Err(err).Str("path", path).Msg("dropping unparsable chunk")
			continue
		}
		out = append(out, item)
	}
	return out, nil
}
