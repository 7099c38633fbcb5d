package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

// Metadata is the type-specific detail of a collection item. Each
// CollectionType has exactly one concrete variant.
type Metadata interface {
	CollectionType() CollectionType
}

type WikipediaMetadata struct {
	WikiPageID string   `json:"wikiPageId,omitempty"`
	Extract    string   `json:"extract,omitempty"`
	Categories []string `json:"categories,omitempty"`
}

type ArtMetadata struct {
	Artist     string `json:"artist,omitempty"`
	Year       int    `json:"year,omitempty"`
	Medium     string `json:"medium,omitempty"`
	Dimensions string `json:"dimensions,omitempty"`
	Museum     string `json:"museum,omitempty"`
	Style      string `json:"style,omitempty"`
}

type BookMetadata struct {
	Author        string   `json:"author,omitempty"`
	ISBN          string   `json:"isbn,omitempty"`
	PublishedYear int      `json:"publishedYear,omitempty"`
	Publisher     string   `json:"publisher,omitempty"`
	Pages         int      `json:"pages,omitempty"`
	Genre         []string `json:"genre,omitempty"`
	Quote         string   `json:"quote,omitempty"`
}

type YouTubeMetadata struct {
	ChannelID       string `json:"channelId,omitempty"`
	SubscriberCount int64  `json:"subscriberCount,omitempty"`
	VideoCount      int64  `json:"videoCount,omitempty"`
	Category        string `json:"category,omitempty"`
	VideoID         string `json:"videoId,omitempty"`
	ChannelName     string `json:"channelName,omitempty"`
	Duration        string `json:"duration,omitempty"`
	ViewCount       int64  `json:"viewCount,omitempty"`
	PublishedAt     string `json:"publishedAt,omitempty"`
	IsChannel       bool   `json:"isChannel,omitempty"`
}

type ProductMetadata struct {
	Brand       string  `json:"brand,omitempty"`
	Price       float64 `json:"price,omitempty"`
	Currency    string  `json:"currency,omitempty"`
	Category    string  `json:"category,omitempty"`
	PurchaseURL string  `json:"purchaseUrl,omitempty"`
	Color       string  `json:"color,omitempty"`
	Size        string  `json:"size,omitempty"`
}

type MusicMetadata struct {
	Artist        string   `json:"artist,omitempty"`
	Album         string   `json:"album,omitempty"`
	Year          int      `json:"year,omitempty"`
	Genre         []string `json:"genre,omitempty"`
	SpotifyURL    string   `json:"spotifyUrl,omitempty"`
	AppleMusicURL string   `json:"appleMusicUrl,omitempty"`
}

type ArticleMetadata struct {
	Author        string `json:"author,omitempty"`
	Publication   string `json:"publication,omitempty"`
	PublishedDate string `json:"publishedDate,omitempty"`
	ReadingTime   int    `json:"readingTime,omitempty"`
}

type PodcastMetadata struct {
	Host             string `json:"host,omitempty"`
	EpisodeNumber    int    `json:"episodeNumber,omitempty"`
	Duration         string `json:"duration,omitempty"`
	SpotifyURL       string `json:"spotifyUrl,omitempty"`
	ApplePodcastsURL string `json:"applePodcastsUrl,omitempty"`
}

type MovieMetadata struct {
	Director          string   `json:"director,omitempty"`
	Year              int      `json:"year,omitempty"`
	Genre             []string `json:"genre,omitempty"`
	Runtime           int      `json:"runtime,omitempty"`
	IMDbID            string   `json:"imdbId,omitempty"`
	IMDbRating        float64  `json:"imdbRating,omitempty"`
	Cast              []string `json:"cast,omitempty"`
	StreamingPlatform string   `json:"streamingPlatform,omitempty"`
}

type GitHubMetadata struct {
	Owner       string   `json:"owner,omitempty"`
	Repo        string   `json:"repo,omitempty"`
	Stars       int      `json:"stars,omitempty"`
	Forks       int      `json:"forks,omitempty"`
	Language    string   `json:"language,omitempty"`
	Topics      []string `json:"topics,omitempty"`
	License     string   `json:"license,omitempty"`
	Description string   `json:"description,omitempty"`
}

// OtherMetadata is free-form.
type OtherMetadata map[string]any

func (WikipediaMetadata) CollectionType() CollectionType { return CollectionTypeWikipedia }
func (ArtMetadata) CollectionType() CollectionType       { return CollectionTypeArt }
func (BookMetadata) CollectionType() CollectionType      { return CollectionTypeBook }
func (YouTubeMetadata) CollectionType() CollectionType   { return CollectionTypeYouTube }
func (ProductMetadata) CollectionType() CollectionType   { return CollectionTypeProduct }
func (MusicMetadata) CollectionType() CollectionType     { return CollectionTypeMusic }
func (ArticleMetadata) CollectionType() CollectionType   { return CollectionTypeArticle }
func (PodcastMetadata) CollectionType() CollectionType   { return CollectionTypePodcast }
func (MovieMetadata) CollectionType() CollectionType     { return CollectionTypeMovie }
func (GitHubMetadata) CollectionType() CollectionType    { return CollectionTypeGitHub }
func (OtherMetadata) CollectionType() CollectionType     { return CollectionTypeOther }

func newMetadata(t CollectionType) (Metadata, error) {
	switch t {
	case CollectionTypeWikipedia:
		return &WikipediaMetadata{}, nil
	case CollectionTypeArt:
		return &ArtMetadata{}, nil
	case CollectionTypeBook:
		return &BookMetadata{}, nil
	case CollectionTypeYouTube:
		return &YouTubeMetadata{}, nil
	case CollectionTypeProduct:
		return &ProductMetadata{}, nil
	case CollectionTypeMusic:
		return &MusicMetadata{}, nil
	case CollectionTypeArticle:
		return &ArticleMetadata{}, nil
	case CollectionTypePodcast:
		return &PodcastMetadata{}, nil
	case CollectionTypeMovie:
		return &MovieMetadata{}, nil
	case CollectionTypeGitHub:
		return &GitHubMetadata{}, nil
	case CollectionTypeOther:
		return &OtherMetadata{}, nil
	}

	return nil, fmt.Errorf("unknown collection type %q", t)
}

// DecodeMetadata parses raw JSON into the variant for t. Strict decoding
// rejects fields that do not belong to the variant and trailing data, and is
// used for writes. Stored rows are decoded leniently: a value that does not
// fit the variant comes back as OtherMetadata, or nil when it is not an
// object. Empty input and JSON null yield nil.
func DecodeMetadata(t CollectionType, raw []byte, strict bool) (Metadata, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	target, err := newMetadata(t)
	if err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	if strict {
		dec.DisallowUnknownFields()
	}
	err = dec.Decode(target)
	if err == nil {
		err = expectEOF(dec)
	}
	if err != nil {
		if strict {
			return nil, fmt.Errorf("invalid %s metadata: %w", t, err)
		}
		return looseMetadata(raw), nil
	}

	return deref(target), nil
}

func expectEOF(dec *json.Decoder) error {
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after metadata object")
	}
	return nil
}

func looseMetadata(raw []byte) Metadata {
	var m OtherMetadata
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil
	}
	return m
}

// EncodeMetadata returns nil for nil metadata so the column stays NULL.
func EncodeMetadata(m Metadata) ([]byte, error) {
	if m == nil {
		return nil, nil
	}

	return json.Marshal(m)
}

func deref(m Metadata) Metadata {
	switch v := m.(type) {
	case *WikipediaMetadata:
		return *v
	case *ArtMetadata:
		return *v
	case *BookMetadata:
		return *v
	case *YouTubeMetadata:
		return *v
	case *ProductMetadata:
		return *v
	case *MusicMetadata:
		return *v
	case *ArticleMetadata:
		return *v
	case *PodcastMetadata:
		return *v
	case *MovieMetadata:
		return *v
	case *GitHubMetadata:
		return *v
	case *OtherMetadata:
		return *v
	}
	return m
}
