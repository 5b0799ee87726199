package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/ward-admin/internal/domain/entity"
)

// UserIndex mirrors users into an Elasticsearch index for directory search.
// A nil client turns every call into a no-op.
type UserIndex struct {
	es    *elasticsearch.Client
	index string
}

func NewUserIndex(es *elasticsearch.Client, index string) *UserIndex {
	return &UserIndex{es: es, index: index}
}

func (x *UserIndex) enabled() bool {
	return x != nil && x.es != nil && x.index != ""
}

// Document is the indexed representation of a user.
func Document(u entity.User) map[string]any {
	doc := map[string]any{
		"id":         u.ID,
		"name":       u.Name,
		"email":      u.Email,
		"user_type":  string(u.Role),
		"role_label": u.Role.Label(),
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	if u.ApprovalDate != nil {
		doc["approval_date"] = u.ApprovalDate.Format(time.RFC3339Nano)
	}
	return doc
}

func (x *UserIndex) Index(ctx context.Context, u entity.User) error {
	if !x.enabled() {
		return nil
	}
	b, err := json.Marshal(Document(u))
	if err != nil {
		return err
	}
	req := esapi.IndexRequest{
		Index:      x.index,
		DocumentID: strconv.FormatInt(u.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es index %s: %s", x.index, res.Status())
	}
	return nil
}

// IndexMany writes users through the bulk API in a single request.
func (x *UserIndex) IndexMany(ctx context.Context, users []entity.User) error {
	if !x.enabled() || len(users) == 0 {
		return nil
	}
	var body bytes.Buffer
	enc := json.NewEncoder(&body)
	for _, u := range users {
		meta := map[string]any{"index": map[string]any{"_id": strconv.FormatInt(u.ID, 10)}}
		if err := enc.Encode(meta); err != nil {
			return err
		}
		if err := enc.Encode(Document(u)); err != nil {
			return err
		}
	}
	req := esapi.BulkRequest{
		Index:   x.index,
		Body:    &body,
		Refresh: "false",
	}
	c, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	res, err := req.Do(c, x.es)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("es bulk %s: %s", x.index, res.Status())
	}
	var parsed struct {
		Errors bool `json:"errors"`
		Items  []map[string]struct {
			ID    string         `json:"_id"`
			Error map[string]any `json:"error"`
		} `json:"items"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return err
	}
	if parsed.Errors {
		failed := 0
		for _, item := range parsed.Items {
			for _, r := range item {
				if r.Error != nil {
					failed++
				}
			}
		}
		return fmt.Errorf("es bulk %s: %d of %d documents failed", x.index, failed, len(users))
	}
	return nil
}

// Search runs a multi_match over email and name, optionally restricted to one role.
func (x *UserIndex) Search(ctx context.Context, q string, role entity.Role, size int) ([]map[string]any, error) {
	if !x.enabled() {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	boolQuery := map[string]any{
		"must": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "name"},
			},
		},
	}
	if role != "" {
		boolQuery["filter"] = map[string]any{"term": map[string]any{"user_type": string(role)}}
	}
	query := map[string]any{
		"query": map[string]any{"bool": boolQuery},
		"size":  size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := x.es.Search(
		x.es.Search.WithContext(c),
		x.es.Search.WithIndex(x.index),
		x.es.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("es search %s: %s", x.index, res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
