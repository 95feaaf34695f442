package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/nextstep/school-api/internal/domain/entity"
	"github.com/nextstep/school-api/internal/domain/repository"
	"github.com/nextstep/school-api/pkg/helpers"
)

// DocumentService stores document metadata in postgres, blobs in GCS, and
// mirrors each document into an Elasticsearch index for full-text search.
// GCS and ES are both optional; when unconfigured, upload fails explicitly
// and search degrades to an empty result.
type DocumentService struct {
	Repo      repository.DocumentRepository
	GCS       *storage.Client
	GCSBucket string
	ES        *elasticsearch.Client
	ESIndex   string
	Logger    *logrus.Logger
}

func NewDocumentService(repo repository.DocumentRepository, gcs *storage.Client, gcsBucket string,
	es *elasticsearch.Client, esIndex string, logger *logrus.Logger) *DocumentService {
	return &DocumentService{Repo: repo, GCS: gcs, GCSBucket: gcsBucket, ES: es, ESIndex: esIndex, Logger: logger}
}

// Create persists metadata for a file that already lives somewhere reachable
// by URL, then indexes it.
func (s *DocumentService) Create(ctx context.Context, d *entity.Document) error {
	if err := s.Repo.Create(ctx, d); err != nil {
		return err
	}
	s.index(ctx, d)
	return nil
}

// Upload streams a file into GCS and records its metadata.
func (s *DocumentService) Upload(ctx context.Context, d *entity.Document, r io.Reader, filename, contentType string) error {
	if s.GCS == nil || s.GCSBucket == "" {
		return errors.New("document storage not configured")
	}
	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("documents",
		fmt.Sprintf("%d-%d%s", d.UploadedBy, time.Now().UnixNano(), ext)))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return err
	}
	d.FileURL = url
	return s.Create(ctx, d)
}

func (s *DocumentService) Delete(ctx context.Context, id int64) (*entity.Document, error) {
	d, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	s.unindex(ctx, id)
	return d, nil
}

func (s *DocumentService) index(ctx context.Context, d *entity.Document) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	doc := map[string]any{
		"id":          d.ID,
		"title":       d.Title,
		"category":    d.Category,
		"description": d.Description,
		"file_url":    d.FileURL,
		"created_at":  d.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{
		Index:      s.ESIndex,
		DocumentID: strconv.FormatInt(d.ID, 10),
		Body:       strings.NewReader(string(b)),
		Refresh:    "false",
	}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("document_id", d.ID).Warn("es index failed")
		}
		return
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("document_id", d.ID).Warn("es index response error")
	}
}

func (s *DocumentService) unindex(ctx context.Context, id int64) {
	if s.ES == nil || s.ESIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESIndex, DocumentID: strconv.FormatInt(id, 10)}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("document_id", id).Warn("es delete failed")
		}
		return
	}
	_ = res.Body.Close()
}

// Search performs a multi_match query on title, description and category.
func (s *DocumentService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "category"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

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
