package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"booknest-be/internal/entity"
	"booknest-be/internal/pkg/logger"
	"booknest-be/pkg/isbn"
	"booknest-be/pkg/taxonomy"

	gocache "github.com/patrickmn/go-cache"
)

type ILookupService interface {
	Resolve(ctx context.Context, rawIsbn string) (*entity.BookMetadata, error)
}

type LookupConfig struct {
	OpenLibraryBaseUrl string
	GoogleBooksBaseUrl string
	GoogleBooksApiKey  string
	Timeout            time.Duration
}

type lookupService struct {
	cfg    LookupConfig
	client *http.Client
	cache  *gocache.Cache
	log    logger.ILogger
}

func NewLookupService(cfg LookupConfig, log logger.ILogger) ILookupService {
	if cfg.OpenLibraryBaseUrl == "" {
		cfg.OpenLibraryBaseUrl = "https://openlibrary.org"
	}
	if cfg.GoogleBooksBaseUrl == "" {
		cfg.GoogleBooksBaseUrl = "https://www.googleapis.com"
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &lookupService{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		cache:  gocache.New(6*time.Hour, 30*time.Minute),
		log:    log,
	}
}

// Resolve tries the sources in order and returns the first usable record.
// Results are cached per ISBN so re-scanning the same book is free.
func (s *lookupService) Resolve(ctx context.Context, rawIsbn string) (*entity.BookMetadata, error) {
	code := isbn.Normalize(rawIsbn)
	if !isbn.IsValid(code) {
		return nil, ErrInvalidIsbn
	}

	if cached, ok := s.cache.Get(code); ok {
		return cached.(*entity.BookMetadata), nil
	}

	meta, err := s.fromOpenLibrary(ctx, code)
	if err != nil {
		s.log.Warn("lookup", "open library lookup failed", map[string]interface{}{
			"isbn":  code,
			"error": err.Error(),
		})
	}
	if meta == nil && s.cfg.GoogleBooksApiKey != "" {
		meta, err = s.fromGoogleBooks(ctx, code)
		if err != nil {
			s.log.Warn("lookup", "google books lookup failed", map[string]interface{}{
				"isbn":  code,
				"error": err.Error(),
			})
		}
	}
	if meta == nil {
		return nil, ErrLookupFailed
	}

	if meta.Title == "" {
		meta.Title = "Unknown"
	}
	if meta.Author == "" {
		meta.Author = "Unknown"
	}
	if meta.ImageUrl == "" {
		meta.ImageUrl = isbn.CoverURL(code)
	}
	if meta.Category == "" {
		meta.Category = taxonomy.DefaultCategory
	}

	s.cache.Set(code, meta, gocache.DefaultExpiration)
	return meta, nil
}

// --- Open Library ---

type openLibraryRecord struct {
	Title   string `json:"title"`
	Authors []struct {
		Name string `json:"name"`
	} `json:"authors"`
	Cover struct {
		Small  string `json:"small"`
		Medium string `json:"medium"`
		Large  string `json:"large"`
	} `json:"cover"`
	Subjects []struct {
		Name string `json:"name"`
	} `json:"subjects"`
	Works []struct {
		Key string `json:"key"`
	} `json:"works"`
}

type openLibraryWork struct {
	Subjects []string `json:"subjects"`
}

func (s *lookupService) fromOpenLibrary(ctx context.Context, code string) (*entity.BookMetadata, error) {
	endpoint := fmt.Sprintf("%s/api/books?bibkeys=ISBN:%s&format=json&jscmd=data", s.cfg.OpenLibraryBaseUrl, code)
	body, err := s.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var payload map[string]openLibraryRecord
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	record, ok := payload["ISBN:"+code]
	if !ok {
		return nil, nil
	}

	meta := &entity.BookMetadata{
		Title: record.Title,
	}
	names := make([]string, 0, len(record.Authors))
	for _, author := range record.Authors {
		names = append(names, author.Name)
	}
	meta.Author = strings.Join(names, ", ")
	switch {
	case record.Cover.Medium != "":
		meta.ImageUrl = record.Cover.Medium
	case record.Cover.Large != "":
		meta.ImageUrl = record.Cover.Large
	case record.Cover.Small != "":
		meta.ImageUrl = record.Cover.Small
	}
	meta.ImageUrl = forceHttps(meta.ImageUrl)

	// Edition records carry sparse subjects. The parent work usually has
	// the richer list, so prefer it and fall back to the edition's own.
	subjects := s.workSubjects(ctx, record)
	if len(subjects) == 0 {
		for _, sub := range record.Subjects {
			subjects = append(subjects, sub.Name)
		}
	}
	meta.Category = taxonomy.Normalize(subjects)

	return meta, nil
}

func (s *lookupService) workSubjects(ctx context.Context, record openLibraryRecord) []string {
	if len(record.Works) == 0 || record.Works[0].Key == "" {
		return nil
	}
	body, err := s.fetch(ctx, s.cfg.OpenLibraryBaseUrl+record.Works[0].Key+".json")
	if err != nil {
		// The edition subjects still work, so a missing work is not fatal.
		return nil
	}
	var work openLibraryWork
	if err := json.Unmarshal(body, &work); err != nil {
		return nil
	}
	return work.Subjects
}

// --- Google Books ---

type googleBooksResponse struct {
	TotalItems int `json:"totalItems"`
	Items      []struct {
		VolumeInfo struct {
			Title      string   `json:"title"`
			Authors    []string `json:"authors"`
			Categories []string `json:"categories"`
			ImageLinks struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (s *lookupService) fromGoogleBooks(ctx context.Context, code string) (*entity.BookMetadata, error) {
	endpoint := fmt.Sprintf("%s/books/v1/volumes?q=isbn:%s&key=%s",
		s.cfg.GoogleBooksBaseUrl, code, url.QueryEscape(s.cfg.GoogleBooksApiKey))
	body, err := s.fetch(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var payload googleBooksResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if payload.TotalItems == 0 || len(payload.Items) == 0 {
		return nil, nil
	}

	info := payload.Items[0].VolumeInfo
	meta := &entity.BookMetadata{
		Title:    info.Title,
		Author:   strings.Join(info.Authors, ", "),
		ImageUrl: forceHttps(info.ImageLinks.Thumbnail),
		Category: taxonomy.Normalize(info.Categories),
	}
	return meta, nil
}

func (s *lookupService) fetch(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("lookup source returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func forceHttps(link string) string {
	if len(link) >= 7 && link[:7] == "http://" {
		return "https://" + link[7:]
	}
	return link
}
