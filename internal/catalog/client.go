package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"reshelf/internal/config"
	"reshelf/internal/services"
)

// Client describes the catalog operations the rename pipeline depends on.
type Client interface {
	FindScene(ctx context.Context, id string) (*Scene, error)
	FindStudio(ctx context.Context, id string) (*Studio, error)
	MoveFile(ctx context.Context, fileID, destinationFolder, destinationBasename string) error
}

// StudioLookup is the narrow read-only interface used by the template
// resolver's parent-chain walk.
type StudioLookup interface {
	FindStudio(ctx context.Context, id string) (*Studio, error)
}

// HTTPDoer describes the HTTP client used by the GraphQL catalog client.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

const findSceneQuery = `query FindScene($id: ID!) {
  findScene(id: $id) {
    id
    title
    date
    director
    code
    studio {
      id
      name
      parent_studio { id }
      stash_ids { endpoint stash_id }
    }
    files {
      id
      path
      basename
      format
      width
      height
      video_codec
      audio_codec
    }
  }
}`

const findStudioQuery = `query FindStudio($id: ID!) {
  findStudio(id: $id) {
    id
    name
    parent_studio { id }
    stash_ids { endpoint stash_id }
  }
}`

const moveFilesMutation = `mutation MoveFiles($input: MoveFilesInput!) {
  moveFiles(input: $input)
}`

type graphQLClient struct {
	url    string
	apiKey string
	client HTTPDoer
}

// NewClient constructs a GraphQL catalog client from configuration.
func NewClient(cfg *config.Config) Client {
	timeout := 15 * time.Second
	if cfg.Stash.RequestTimeout > 0 {
		timeout = time.Duration(cfg.Stash.RequestTimeout) * time.Second
	}
	return NewClientWithDoer(cfg.Stash.URL, cfg.Stash.APIKey, &http.Client{Timeout: timeout})
}

// NewClientWithDoer allows injecting the HTTP transport (used in tests).
func NewClientWithDoer(url, apiKey string, client HTTPDoer) Client {
	return &graphQLClient{
		url:    strings.TrimRight(strings.TrimSpace(url), "/"),
		apiKey: strings.TrimSpace(apiKey),
		client: client,
	}
}

func (c *graphQLClient) FindScene(ctx context.Context, id string) (*Scene, error) {
	var payload struct {
		FindScene *Scene `json:"findScene"`
	}
	if err := c.execute(ctx, findSceneQuery, map[string]any{"id": id}, &payload); err != nil {
		return nil, err
	}
	if payload.FindScene == nil {
		return nil, services.Wrap(services.ErrNotFound, "catalog", "find scene", fmt.Sprintf("scene %s does not exist", id), nil)
	}
	return payload.FindScene, nil
}

func (c *graphQLClient) FindStudio(ctx context.Context, id string) (*Studio, error) {
	var payload struct {
		FindStudio *Studio `json:"findStudio"`
	}
	if err := c.execute(ctx, findStudioQuery, map[string]any{"id": id}, &payload); err != nil {
		return nil, err
	}
	if payload.FindStudio == nil {
		return nil, services.Wrap(services.ErrNotFound, "catalog", "find studio", fmt.Sprintf("studio %s does not exist", id), nil)
	}
	return payload.FindStudio, nil
}

func (c *graphQLClient) MoveFile(ctx context.Context, fileID, destinationFolder, destinationBasename string) error {
	input := map[string]any{
		"ids":                  []string{fileID},
		"destination_folder":   destinationFolder,
		"destination_basename": destinationBasename,
	}
	var payload struct {
		MoveFiles bool `json:"moveFiles"`
	}
	if err := c.execute(ctx, moveFilesMutation, map[string]any{"input": input}, &payload); err != nil {
		return err
	}
	if !payload.MoveFiles {
		return services.Wrap(services.ErrExternalTool, "catalog", "move file", fmt.Sprintf("catalog refused to move file %s", fileID), nil)
	}
	return nil
}

type graphQLError struct {
	Message string `json:"message"`
}

func (c *graphQLClient) execute(ctx context.Context, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("encode graphql request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build graphql request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("ApiKey", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "catalog", "graphql request", "catalog unreachable", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read graphql response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return services.Wrap(services.ErrExternalTool, "catalog", "graphql request", fmt.Sprintf("catalog returned %d", resp.StatusCode), nil)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphQLError  `json:"errors"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("decode graphql response: %w", err)
	}
	if len(envelope.Errors) > 0 {
		messages := make([]string, 0, len(envelope.Errors))
		for _, gqlErr := range envelope.Errors {
			messages = append(messages, gqlErr.Message)
		}
		return services.Wrap(services.ErrExternalTool, "catalog", "graphql request", strings.Join(messages, "; "), nil)
	}
	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("decode graphql data: %w", err)
		}
	}
	return nil
}
