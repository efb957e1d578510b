package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v9"

	"github.com/vpetrakov/webshop/internal/models"
)

type SearchService struct {
	ES    *elasticsearch.Client
	Index string
}

func (s *SearchService) IndexProduct(ctx context.Context, prod *models.Product) error {
	doc, err := json.Marshal(prod)
	if err != nil {
		return fmt.Errorf("search: marshal product: %w", err)
	}

	res, err := s.ES.Index(
		s.Index,
		bytes.NewReader(doc),
		s.ES.Index.WithDocumentID(fmt.Sprint(prod.ID)),
		s.ES.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("search: index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("search: index: %s", res.Status())
	}
	return nil
}

func (s *SearchService) DeleteProduct(ctx context.Context, id uint) error {
	res, err := s.ES.Delete(s.Index, fmt.Sprint(id), s.ES.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("search: delete: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != 404 {
		return fmt.Errorf("search: delete: %s", res.Status())
	}
	return nil
}

// Search runs a fuzzy multi_match over product names and descriptions.
func (s *SearchService) Search(ctx context.Context, query string, from, size int) (int64, []models.Product, error) {
	body := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":     query,
				"fields":    []string{"name^2", "description"},
				"fuzziness": "AUTO",
			},
		},
		"from": from,
		"size": size,
	}

	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(body); err != nil {
		return 0, nil, fmt.Errorf("search: encode query: %w", err)
	}

	res, err := s.ES.Search(
		s.ES.Search.WithContext(ctx),
		s.ES.Search.WithIndex(s.Index),
		s.ES.Search.WithBody(&buf),
	)
	if err != nil {
		return 0, nil, fmt.Errorf("search: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return 0, nil, fmt.Errorf("search: %s", res.Status())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			Hits []struct {
				Source models.Product `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return 0, nil, err
	}

	prods := make([]models.Product, len(r.Hits.Hits))
	for i, hit := range r.Hits.Hits {
		prods[i] = hit.Source
	}
	return r.Hits.Total.Value, prods, nil
}
